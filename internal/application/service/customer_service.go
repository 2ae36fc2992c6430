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

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// validatePartyIdentifiers checks the statutory identifiers shared by
// customers and vendors. GSTIN implies the state code when one is absent.
func validatePartyIdentifiers(gstin, pan, ifsc *string, stateCode *string) error {
	var fieldErrors []apperror.FieldError

	if gstin != nil && *gstin != "" {
		if !utils.IsValidGSTIN(*gstin) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "gstin", Message: "invalid GSTIN format"})
		} else if stateCode != nil && *stateCode == "" {
			*stateCode = utils.GSTINStateCode(*gstin)
		}
	}
	if pan != nil && *pan != "" && !utils.IsValidPAN(*pan) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "pan", Message: "invalid PAN format"})
	}
	if ifsc != nil && *ifsc != "" && !utils.IsValidIFSC(*ifsc) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "ifsc", Message: "invalid IFSC format"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	UserID        uuid.UUID
	Name          string
	Email         *string
	Phone         *string
	GSTIN         *string
	PAN           *string
	StateCode     string
	BillingAddr   *string
	ShippingAddr  *string
	AccountHolder *string
	AccountNumber *string
	BankName      *string
	IFSC          *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if err := validatePartyIdentifiers(input.GSTIN, input.PAN, input.IFSC, &input.StateCode); err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		UserID:        input.UserID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		GSTIN:         input.GSTIN,
		PAN:           input.PAN,
		StateCode:     input.StateCode,
		BillingAddr:   input.BillingAddr,
		ShippingAddr:  input.ShippingAddr,
		AccountHolder: input.AccountHolder,
		AccountNumber: input.AccountNumber,
		BankName:      input.BankName,
		IFSC:          input.IFSC,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers. If isSuperAdmin is true, returns all customers.
func (s *CustomerService) ListCustomers(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	UserID        uuid.UUID
	ID            uuid.UUID
	IsSuperAdmin  bool
	Name          *string
	Email         *string
	Phone         *string
	GSTIN         *string
	PAN           *string
	StateCode     *string
	BillingAddr   *string
	ShippingAddr  *string
	AccountHolder *string
	AccountNumber *string
	BankName      *string
	IFSC          *string
}

// UpdateCustomer updates an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	// Check permission
	if !input.IsSuperAdmin && customer.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if err := validatePartyIdentifiers(input.GSTIN, input.PAN, input.IFSC, nil); err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.GSTIN != nil {
		customer.GSTIN = input.GSTIN
	}
	if input.PAN != nil {
		customer.PAN = input.PAN
	}
	if input.StateCode != nil {
		customer.StateCode = *input.StateCode
	}
	if input.BillingAddr != nil {
		customer.BillingAddr = input.BillingAddr
	}
	if input.ShippingAddr != nil {
		customer.ShippingAddr = input.ShippingAddr
	}
	if input.AccountHolder != nil {
		customer.AccountHolder = input.AccountHolder
	}
	if input.AccountNumber != nil {
		customer.AccountNumber = input.AccountNumber
	}
	if input.BankName != nil {
		customer.BankName = input.BankName
	}
	if input.IFSC != nil {
		customer.IFSC = input.IFSC
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	// Check permission
	if !isSuperAdmin && customer.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.customerRepo.Delete(ctx, id)
}
