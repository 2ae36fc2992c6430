package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	domainRepo "github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByNumber(ctx context.Context, number string) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).First(&bill, "bill_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Items.Product").
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Save(bill).Error
}

func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Bill{}, "id = ?", id).Error
}

func (r *billRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{})

	// Only filter by user_id if a non-zero userID is provided (super-admin can see all)
	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("bill_number ILIKE ? OR vendor_bill_ref ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
	}

	if params.TDSSection != nil {
		query = query.Where("tds_section = ?", *params.TDSSection)
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
		Preload("Vendor").
		Order(sortBy + " " + sortOrder).
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BillStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *billRepository) GetNextSequenceNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Bill{}).Count(&count).Error
	return int(count) + 1, err
}

func (r *billRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Where("bill_date >= ? AND bill_date <= ?", from, to).
		Where("status <> ?", enum.BillStatusCancelled).
		Order("bill_date ASC, bill_number ASC").
		Find(&bills).Error
	return bills, err
}

type billItemRepository struct {
	db *gorm.DB
}

// NewBillItemRepository creates a new bill item repository
func NewBillItemRepository(db *gorm.DB) domainRepo.BillItemRepository {
	return &billItemRepository{db: db}
}

func (r *billItemRepository) CreateBatch(ctx context.Context, items []entity.BillItem) error {
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *billItemRepository) GetByBillID(ctx context.Context, billID uuid.UUID) ([]entity.BillItem, error) {
	var items []entity.BillItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("bill_id = ?", billID).
		Find(&items).Error
	return items, err
}

func (r *billItemRepository) DeleteByBillID(ctx context.Context, billID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.BillItem{}, "bill_id = ?", billID).Error
}
