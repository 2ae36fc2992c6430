package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
	"github.com/sahajbooks/sahaj-api/pkg/finance"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
)

// VendorService handles vendor-related operations
type VendorService struct {
	vendorRepo repository.VendorRepository
}

// NewVendorService creates a new vendor service
func NewVendorService(vendorRepo repository.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// CreateVendorInput represents the create vendor input
type CreateVendorInput struct {
	UserID            uuid.UUID
	Name              string
	Email             *string
	Phone             *string
	GSTIN             *string
	PAN               *string
	StateCode         string
	DefaultTDSSection *string
	Address           *string
	AccountHolder     *string
	AccountNumber     *string
	BankName          *string
	IFSC              *string
}

// CreateVendor creates a new vendor
func (s *VendorService) CreateVendor(ctx context.Context, input *CreateVendorInput) (*entity.Vendor, error) {
	if err := validatePartyIdentifiers(input.GSTIN, input.PAN, input.IFSC, &input.StateCode); err != nil {
		return nil, err
	}

	if input.DefaultTDSSection != nil && *input.DefaultTDSSection != "" {
		if _, ok := finance.TDSRate(*input.DefaultTDSSection); !ok {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "default_tds_section", Message: "unknown TDS section"},
			})
		}
	}

	vendor := &entity.Vendor{
		UserID:            input.UserID,
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		GSTIN:             input.GSTIN,
		PAN:               input.PAN,
		StateCode:         input.StateCode,
		DefaultTDSSection: input.DefaultTDSSection,
		Address:           input.Address,
		AccountHolder:     input.AccountHolder,
		AccountNumber:     input.AccountNumber,
		BankName:          input.BankName,
		IFSC:              input.IFSC,
	}

	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

// GetVendor retrieves a vendor by ID
func (s *VendorService) GetVendor(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}
	return vendor, nil
}

// ListVendors lists vendors. If isSuperAdmin is true, returns all vendors.
func (s *VendorService) ListVendors(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Vendor], error) {
	vendors, total, err := s.vendorRepo.List(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(vendors, pag), nil
}

// UpdateVendorInput represents the update vendor input
type UpdateVendorInput struct {
	UserID            uuid.UUID
	ID                uuid.UUID
	IsSuperAdmin      bool
	Name              *string
	Email             *string
	Phone             *string
	GSTIN             *string
	PAN               *string
	StateCode         *string
	DefaultTDSSection *string
	Address           *string
	AccountHolder     *string
	AccountNumber     *string
	BankName          *string
	IFSC              *string
}

// UpdateVendor updates an existing vendor
func (s *VendorService) UpdateVendor(ctx context.Context, input *UpdateVendorInput) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}

	// Check permission
	if !input.IsSuperAdmin && vendor.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if err := validatePartyIdentifiers(input.GSTIN, input.PAN, input.IFSC, nil); err != nil {
		return nil, err
	}

	if input.DefaultTDSSection != nil && *input.DefaultTDSSection != "" {
		if _, ok := finance.TDSRate(*input.DefaultTDSSection); !ok {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "default_tds_section", Message: "unknown TDS section"},
			})
		}
	}

	if input.Name != nil {
		vendor.Name = *input.Name
	}
	if input.Email != nil {
		vendor.Email = input.Email
	}
	if input.Phone != nil {
		vendor.Phone = input.Phone
	}
	if input.GSTIN != nil {
		vendor.GSTIN = input.GSTIN
	}
	if input.PAN != nil {
		vendor.PAN = input.PAN
	}
	if input.StateCode != nil {
		vendor.StateCode = *input.StateCode
	}
	if input.DefaultTDSSection != nil {
		vendor.DefaultTDSSection = input.DefaultTDSSection
	}
	if input.Address != nil {
		vendor.Address = input.Address
	}
	if input.AccountHolder != nil {
		vendor.AccountHolder = input.AccountHolder
	}
	if input.AccountNumber != nil {
		vendor.AccountNumber = input.AccountNumber
	}
	if input.BankName != nil {
		vendor.BankName = input.BankName
	}
	if input.IFSC != nil {
		vendor.IFSC = input.IFSC
	}

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

// DeleteVendor deletes a vendor
func (s *VendorService) DeleteVendor(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vendor == nil {
		return apperror.NewNotFoundError("Vendor")
	}

	// Check permission
	if !isSuperAdmin && vendor.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.vendorRepo.Delete(ctx, id)
}
