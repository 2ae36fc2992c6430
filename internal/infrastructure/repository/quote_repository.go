package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	domainRepo "github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"gorm.io/gorm"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) domainRepo.QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) GetByNumber(ctx context.Context, number string) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).First(&quote, "quote_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) Update(ctx context.Context, quote *entity.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

func (r *quoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Quote{}, "id = ?", id).Error
}

func (r *quoteRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.QuoteFilterParams) ([]entity.Quote, int64, error) {
	var quotes []entity.Quote
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Quote{})

	// Only filter by user_id if a non-zero userID is provided (super-admin can see all)
	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("quote_number ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Find(&quotes).Error

	return quotes, total, err
}

func (r *quoteRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Product").
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Quote{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *quoteRepository) GetNextSequenceNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Quote{}).Count(&count).Error
	return int(count) + 1, err
}

type quoteItemRepository struct {
	db *gorm.DB
}

// NewQuoteItemRepository creates a new quote item repository
func NewQuoteItemRepository(db *gorm.DB) domainRepo.QuoteItemRepository {
	return &quoteItemRepository{db: db}
}

func (r *quoteItemRepository) Create(ctx context.Context, item *entity.QuoteItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *quoteItemRepository) CreateBatch(ctx context.Context, items []entity.QuoteItem) error {
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *quoteItemRepository) GetByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]entity.QuoteItem, error) {
	var items []entity.QuoteItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("quote_id = ?", quoteID).
		Find(&items).Error
	return items, err
}

func (r *quoteItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.QuoteItem{}, "id = ?", id).Error
}

func (r *quoteItemRepository) DeleteByQuoteID(ctx context.Context, quoteID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.QuoteItem{}, "quote_id = ?", quoteID).Error
}
