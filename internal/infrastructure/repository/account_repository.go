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

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domainRepo.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var account entity.Account
	err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &account, err
}

func (r *accountRepository) GetByCode(ctx context.Context, code string) (*entity.Account, error) {
	var account entity.Account
	err := r.db.WithContext(ctx).First(&account, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &account, err
}

func (r *accountRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Account, error) {
	var accounts []entity.Account
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&accounts).Error
	return accounts, err
}

func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Account{}, "id = ?", id).Error
}

func (r *accountRepository) List(ctx context.Context, accountType *enum.AccountType, activeOnly bool) ([]entity.Account, error) {
	var accounts []entity.Account

	query := r.db.WithContext(ctx).Model(&entity.Account{})
	if accountType != nil {
		query = query.Where("type = ?", *accountType)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	err := query.Order("code ASC").Find(&accounts).Error
	return accounts, err
}

func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Account{}).Count(&count).Error
	return count, err
}
