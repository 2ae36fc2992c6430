package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	domainRepo "github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"gorm.io/gorm"
)

type taxDeclarationRepository struct {
	db *gorm.DB
}

// NewTaxDeclarationRepository creates a new tax declaration repository
func NewTaxDeclarationRepository(db *gorm.DB) domainRepo.TaxDeclarationRepository {
	return &taxDeclarationRepository{db: db}
}

func (r *taxDeclarationRepository) Create(ctx context.Context, declaration *entity.TaxDeclaration) error {
	return r.db.WithContext(ctx).Create(declaration).Error
}

func (r *taxDeclarationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxDeclaration, error) {
	var declaration entity.TaxDeclaration
	err := r.db.WithContext(ctx).First(&declaration, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &declaration, err
}

func (r *taxDeclarationRepository) GetByEmployeeAndYear(ctx context.Context, employeeID uuid.UUID, fiscalYear string) (*entity.TaxDeclaration, error) {
	var declaration entity.TaxDeclaration
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&declaration, "employee_id = ? AND fiscal_year = ?", employeeID, fiscalYear).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &declaration, err
}

func (r *taxDeclarationRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.TaxDeclaration, error) {
	var declaration entity.TaxDeclaration
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Items").
		First(&declaration, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &declaration, err
}

func (r *taxDeclarationRepository) Update(ctx context.Context, declaration *entity.TaxDeclaration) error {
	return r.db.WithContext(ctx).Save(declaration).Error
}

func (r *taxDeclarationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.DeclarationItem{}, "declaration_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.TaxDeclaration{}, "id = ?", id).Error
	})
}

func (r *taxDeclarationRepository) ListByFiscalYear(ctx context.Context, fiscalYear string) ([]entity.TaxDeclaration, error) {
	var declarations []entity.TaxDeclaration
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("fiscal_year = ?", fiscalYear).
		Find(&declarations).Error
	return declarations, err
}

func (r *taxDeclarationRepository) ReplaceItems(ctx context.Context, declaration *entity.TaxDeclaration, items []entity.DeclarationItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.DeclarationItem{}, "declaration_id = ?", declaration.ID).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return tx.Save(declaration).Error
	})
}
