package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
)

// QuoteRepository defines the interface for quote data operations
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetByNumber(ctx context.Context, number string) (*entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *QuoteFilterParams) ([]entity.Quote, int64, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error
	GetNextSequenceNumber(ctx context.Context) (int, error)
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}

// QuoteItemRepository defines the interface for quote item data operations
type QuoteItemRepository interface {
	Create(ctx context.Context, item *entity.QuoteItem) error
	CreateBatch(ctx context.Context, items []entity.QuoteItem) error
	GetByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]entity.QuoteItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByQuoteID(ctx context.Context, quoteID uuid.UUID) error
}
