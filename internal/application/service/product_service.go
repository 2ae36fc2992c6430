package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
	"github.com/sahajbooks/sahaj-api/pkg/utils"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UserID       uuid.UUID
	CategoryID   *uuid.UUID
	UnitID       *uuid.UUID
	Name         string
	Code         string
	Type         enum.ProductType
	HSNCode      *string
	GSTRate      float64
	SellingPrice float64
	BuyingPrice  float64
	Notes        *string
}

func validateProductInput(hsnCode *string, gstRate float64) error {
	var fieldErrors []apperror.FieldError

	if hsnCode != nil && *hsnCode != "" && !utils.IsValidHSN(*hsnCode) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "hsn_code", Message: "HSN/SAC must be 4, 6 or 8 digits"})
	}
	if gstRate < 0 || gstRate > 100 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "gst_rate", Message: "GST rate must be between 0 and 100"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if err := validateProductInput(input.HSNCode, input.GSTRate); err != nil {
		return nil, err
	}

	// Check code uniqueness
	existing, err := s.productRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	if input.UnitID != nil {
		unit, err := s.unitRepo.GetByID(ctx, *input.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, apperror.NewNotFoundError("Unit")
		}
	}

	product := &entity.Product{
		UserID:       input.UserID,
		CategoryID:   input.CategoryID,
		UnitID:       input.UnitID,
		Name:         input.Name,
		Slug:         utils.Slugify(input.Name),
		Code:         input.Code,
		Type:         input.Type,
		HSNCode:      input.HSNCode,
		GSTRate:      input.GSTRate,
		SellingPrice: input.SellingPrice,
		BuyingPrice:  input.BuyingPrice,
		Notes:        input.Notes,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, userID uuid.UUID, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	IsSuperAdmin bool
	CategoryID   *uuid.UUID
	UnitID       *uuid.UUID
	Name         *string
	Type         *enum.ProductType
	HSNCode      *string
	GSTRate      *float64
	SellingPrice *float64
	BuyingPrice  *float64
	Notes        *string
}

// UpdateProduct updates an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	// Check permission
	if !input.IsSuperAdmin && product.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	gstRate := product.GSTRate
	if input.GSTRate != nil {
		gstRate = *input.GSTRate
	}
	if err := validateProductInput(input.HSNCode, gstRate); err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
		product.Slug = utils.Slugify(*input.Name)
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.UnitID != nil {
		product.UnitID = input.UnitID
	}
	if input.Type != nil {
		product.Type = *input.Type
	}
	if input.HSNCode != nil {
		product.HSNCode = input.HSNCode
	}
	if input.GSTRate != nil {
		product.GSTRate = *input.GSTRate
	}
	if input.SellingPrice != nil {
		product.SellingPrice = *input.SellingPrice
	}
	if input.BuyingPrice != nil {
		product.BuyingPrice = *input.BuyingPrice
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	// Check permission
	if !isSuperAdmin && product.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.productRepo.Delete(ctx, id)
}
