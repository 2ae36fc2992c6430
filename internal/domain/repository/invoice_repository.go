package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*entity.Invoice, error)
	// GetWithItems retrieves an invoice with its line items and customer preloaded
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error
	// GetNextSequenceNumber returns the next invoice sequence for numbering
	GetNextSequenceNumber(ctx context.Context) (int, error)
	// ListByDateRange returns invoices dated within [from, to] for registers
	ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Invoice, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
	SortBy     string
	SortOrder  string
}

// InvoiceItemRepository defines the interface for invoice item data operations
type InvoiceItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.InvoiceItem) error
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceItem, error)
	DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error
}
