package service

import (
	"context"

	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
	"github.com/sahajbooks/sahaj-api/pkg/utils"
)

// CompanyService handles the company profile. The books belong to a
// single company; onboarding creates it and everything else reads it.
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

func validateCompanyIdentifiers(gstin, pan, tan *string) error {
	var fieldErrors []apperror.FieldError

	if gstin != nil && *gstin != "" && !utils.IsValidGSTIN(*gstin) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "gstin", Message: "invalid GSTIN format"})
	}
	if pan != nil && *pan != "" && !utils.IsValidPAN(*pan) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "pan", Message: "invalid PAN format"})
	}
	if tan != nil && *tan != "" && !utils.IsValidTAN(*tan) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "tan", Message: "invalid TAN format"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateCompanyInput represents the onboarding input
type CreateCompanyInput struct {
	Name         string
	LegalName    string
	GSTIN        *string
	PAN          *string
	TAN          *string
	StateCode    string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	Pincode      *string
	Email        *string
	Phone        *string
	Settings     entity.CompanySettings
}

// CreateCompany creates the company profile during onboarding
func (s *CompanyService) CreateCompany(ctx context.Context, input *CreateCompanyInput) (*entity.Company, error) {
	existing, err := s.companyRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Company profile already exists")
	}

	if err := validateCompanyIdentifiers(input.GSTIN, input.PAN, input.TAN); err != nil {
		return nil, err
	}

	stateCode := input.StateCode
	if stateCode == "" && input.GSTIN != nil && *input.GSTIN != "" {
		stateCode = utils.GSTINStateCode(*input.GSTIN)
	}
	if stateCode == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "state_code", Message: "state code is required when no GSTIN is given"},
		})
	}

	company := &entity.Company{
		Name:         input.Name,
		LegalName:    input.LegalName,
		GSTIN:        input.GSTIN,
		PAN:          input.PAN,
		TAN:          input.TAN,
		StateCode:    stateCode,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		Pincode:      input.Pincode,
		Email:        input.Email,
		Phone:        input.Phone,
		Settings:     input.Settings,
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// GetCompany retrieves the company profile
func (s *CompanyService) GetCompany(ctx context.Context) (*entity.Company, error) {
	company, err := s.companyRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// UpdateCompanyInput represents the update company input
type UpdateCompanyInput struct {
	Name         *string
	LegalName    *string
	GSTIN        *string
	PAN          *string
	TAN          *string
	StateCode    *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	Pincode      *string
	Email        *string
	Phone        *string
	Settings     *entity.CompanySettings
}

// UpdateCompany updates the company profile
func (s *CompanyService) UpdateCompany(ctx context.Context, input *UpdateCompanyInput) (*entity.Company, error) {
	company, err := s.companyRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	if err := validateCompanyIdentifiers(input.GSTIN, input.PAN, input.TAN); err != nil {
		return nil, err
	}

	if input.Name != nil {
		company.Name = *input.Name
	}
	if input.LegalName != nil {
		company.LegalName = *input.LegalName
	}
	if input.GSTIN != nil {
		company.GSTIN = input.GSTIN
		if *input.GSTIN != "" {
			company.StateCode = utils.GSTINStateCode(*input.GSTIN)
		}
	}
	if input.PAN != nil {
		company.PAN = input.PAN
	}
	if input.TAN != nil {
		company.TAN = input.TAN
	}
	if input.StateCode != nil && *input.StateCode != "" {
		company.StateCode = *input.StateCode
	}
	if input.AddressLine1 != nil {
		company.AddressLine1 = input.AddressLine1
	}
	if input.AddressLine2 != nil {
		company.AddressLine2 = input.AddressLine2
	}
	if input.City != nil {
		company.City = input.City
	}
	if input.Pincode != nil {
		company.Pincode = input.Pincode
	}
	if input.Email != nil {
		company.Email = input.Email
	}
	if input.Phone != nil {
		company.Phone = input.Phone
	}
	if input.Settings != nil {
		company.Settings = *input.Settings
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}
