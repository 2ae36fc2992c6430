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

type journalRepository struct {
	db *gorm.DB
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *gorm.DB) domainRepo.JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Create(ctx context.Context, entry *entity.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *journalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error) {
	var entry entity.JournalEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *journalRepository) GetByNumber(ctx context.Context, number string) (*entity.JournalEntry, error) {
	var entry entity.JournalEntry
	err := r.db.WithContext(ctx).First(&entry, "entry_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *journalRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error) {
	var entry entity.JournalEntry
	err := r.db.WithContext(ctx).
		Preload("Lines.Account").
		First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *journalRepository) Update(ctx context.Context, entry *entity.JournalEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.JournalLine{}, "entry_id = ?", entry.ID).Error; err != nil {
			return err
		}
		return tx.Save(entry).Error
	})
}

func (r *journalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.JournalLine{}, "entry_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.JournalEntry{}, "id = ?", id).Error
	})
}

func (r *journalRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.JournalFilterParams) ([]entity.JournalEntry, int64, error) {
	var entries []entity.JournalEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.JournalEntry{})

	// Only filter by user_id if a non-zero userID is provided (super-admin can see all)
	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("entry_number ILIKE ? OR narration ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.AccountID != nil {
		query = query.Where("id IN (?)",
			r.db.Model(&entity.JournalLine{}).Select("entry_id").Where("account_id = ?", *params.AccountID))
	}

	if params.FromDate != nil {
		query = query.Where("entry_date >= ?", *params.FromDate)
	}

	if params.ToDate != nil {
		query = query.Where("entry_date <= ?", *params.ToDate)
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
		Order(sortBy + " " + sortOrder).
		Find(&entries).Error

	return entries, total, err
}

func (r *journalRepository) MarkPosted(ctx context.Context, id uuid.UUID, postedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.JournalEntry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    enum.JournalStatusPosted,
			"posted_at": postedAt,
		}).Error
}

func (r *journalRepository) MarkReversed(ctx context.Context, id uuid.UUID, reversedBy uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.JournalEntry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      enum.JournalStatusReversed,
			"reversed_by": reversedBy,
		}).Error
}

func (r *journalRepository) GetNextSequenceNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.JournalEntry{}).Count(&count).Error
	return int(count) + 1, err
}
