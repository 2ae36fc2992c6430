package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
)

// BillRepository defines the interface for vendor bill data operations
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByNumber(ctx context.Context, number string) (*entity.Bill, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	Update(ctx context.Context, bill *entity.Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *BillFilterParams) ([]entity.Bill, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BillStatus) error
	GetNextSequenceNumber(ctx context.Context) (int, error)
	// ListByDateRange returns bills dated within [from, to] for TDS summaries
	ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Bill, error)
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.BillStatus
	VendorID   *uuid.UUID
	TDSSection *string
	SortBy     string
	SortOrder  string
}

// BillItemRepository defines the interface for bill item data operations
type BillItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.BillItem) error
	GetByBillID(ctx context.Context, billID uuid.UUID) ([]entity.BillItem, error)
	DeleteByBillID(ctx context.Context, billID uuid.UUID) error
}
