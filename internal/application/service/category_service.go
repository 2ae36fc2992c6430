package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
	"github.com/sahajbooks/sahaj-api/pkg/utils"
)

// CategoryService handles category and unit operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository, unitRepo repository.UnitRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, unitRepo: unitRepo}
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	slug := utils.Slugify(name)

	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	category := &entity.Category{
		UserID: userID,
		Name:   name,
		Slug:   slug,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists categories
func (s *CategoryService) ListCategories(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// UpdateCategory updates a category's name
func (s *CategoryService) UpdateCategory(ctx context.Context, userID, id uuid.UUID, name string, isSuperAdmin bool) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	// Check permission
	if !isSuperAdmin && category.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	category.Name = name
	category.Slug = utils.Slugify(name)

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory deletes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	// Check permission
	if !isSuperAdmin && category.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.categoryRepo.Delete(ctx, id)
}

// CreateUnit creates a new unit of measurement
func (s *CategoryService) CreateUnit(ctx context.Context, userID uuid.UUID, name, shortCode string) (*entity.Unit, error) {
	slug := utils.Slugify(name)

	existing, err := s.unitRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Unit already exists")
	}

	unit := &entity.Unit{
		UserID:    userID,
		Name:      name,
		Slug:      slug,
		ShortCode: shortCode,
	}

	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// GetUnit retrieves a unit by ID
func (s *CategoryService) GetUnit(ctx context.Context, id uuid.UUID) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}
	return unit, nil
}

// ListUnits lists units
func (s *CategoryService) ListUnits(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Unit], error) {
	units, total, err := s.unitRepo.List(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(units, pag), nil
}

// UpdateUnit updates a unit
func (s *CategoryService) UpdateUnit(ctx context.Context, userID, id uuid.UUID, name, shortCode string, isSuperAdmin bool) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}

	// Check permission
	if !isSuperAdmin && unit.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	unit.Name = name
	unit.Slug = utils.Slugify(name)
	unit.ShortCode = shortCode

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// DeleteUnit deletes a unit
func (s *CategoryService) DeleteUnit(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if unit == nil {
		return apperror.NewNotFoundError("Unit")
	}

	// Check permission
	if !isSuperAdmin && unit.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.unitRepo.Delete(ctx, id)
}
