package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
	"github.com/sahajbooks/sahaj-api/pkg/finance"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
	"github.com/sahajbooks/sahaj-api/pkg/utils"
)

// EmployeeService handles employee master data and salary structures
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	salaryRepo   repository.SalaryStructureRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repository.EmployeeRepository, salaryRepo repository.SalaryStructureRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo, salaryRepo: salaryRepo}
}

func validateEmployeeIdentifiers(pan, uan, ifsc *string) error {
	var fieldErrors []apperror.FieldError

	if pan != nil && *pan != "" && !utils.IsValidPAN(*pan) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "pan", Message: "invalid PAN format"})
	}
	if uan != nil && *uan != "" && !utils.IsValidUAN(*uan) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "uan", Message: "UAN must be 12 digits"})
	}
	if ifsc != nil && *ifsc != "" && !utils.IsValidIFSC(*ifsc) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "ifsc", Message: "invalid IFSC format"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateEmployeeInput represents the create employee input
type CreateEmployeeInput struct {
	UserID        uuid.UUID
	EmployeeCode  string
	FirstName     string
	LastName      string
	Email         *string
	Phone         *string
	PAN           *string
	UAN           *string
	DateOfBirth   *time.Time
	DateOfJoining time.Time
	Designation   *string
	Department    *string
	BankName      *string
	AccountNumber *string
	IFSC          *string
	PFOptOut      bool
}

// CreateEmployee creates a new employee
func (s *EmployeeService) CreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*entity.Employee, error) {
	if err := validateEmployeeIdentifiers(input.PAN, input.UAN, input.IFSC); err != nil {
		return nil, err
	}

	existing, err := s.employeeRepo.GetByCode(ctx, input.EmployeeCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Employee code already exists")
	}

	employee := &entity.Employee{
		UserID:        input.UserID,
		EmployeeCode:  input.EmployeeCode,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		Phone:         input.Phone,
		PAN:           input.PAN,
		UAN:           input.UAN,
		DateOfBirth:   input.DateOfBirth,
		DateOfJoining: input.DateOfJoining,
		Designation:   input.Designation,
		Department:    input.Department,
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		IFSC:          input.IFSC,
		PFOptOut:      input.PFOptOut,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	return employee, nil
}

// GetEmployee retrieves an employee by ID
func (s *EmployeeService) GetEmployee(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return employee, nil
}

// ListEmployees lists employees
func (s *EmployeeService) ListEmployees(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, activeOnly bool) (*pagination.PaginatedResult[entity.Employee], error) {
	employees, total, err := s.employeeRepo.List(ctx, userID, params, search, activeOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(employees, pag), nil
}

// UpdateEmployeeInput represents the update employee input
type UpdateEmployeeInput struct {
	ID            uuid.UUID
	FirstName     *string
	LastName      *string
	Email         *string
	Phone         *string
	PAN           *string
	UAN           *string
	DateOfBirth   *time.Time
	DateOfLeaving *time.Time
	Designation   *string
	Department    *string
	BankName      *string
	AccountNumber *string
	IFSC          *string
	PFOptOut      *bool
}

// UpdateEmployee updates an existing employee
func (s *EmployeeService) UpdateEmployee(ctx context.Context, input *UpdateEmployeeInput) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	if err := validateEmployeeIdentifiers(input.PAN, input.UAN, input.IFSC); err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		employee.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		employee.LastName = *input.LastName
	}
	if input.Email != nil {
		employee.Email = input.Email
	}
	if input.Phone != nil {
		employee.Phone = input.Phone
	}
	if input.PAN != nil {
		employee.PAN = input.PAN
	}
	if input.UAN != nil {
		employee.UAN = input.UAN
	}
	if input.DateOfBirth != nil {
		employee.DateOfBirth = input.DateOfBirth
	}
	if input.DateOfLeaving != nil {
		employee.DateOfLeaving = input.DateOfLeaving
	}
	if input.Designation != nil {
		employee.Designation = input.Designation
	}
	if input.Department != nil {
		employee.Department = input.Department
	}
	if input.BankName != nil {
		employee.BankName = input.BankName
	}
	if input.AccountNumber != nil {
		employee.AccountNumber = input.AccountNumber
	}
	if input.IFSC != nil {
		employee.IFSC = input.IFSC
	}
	if input.PFOptOut != nil {
		employee.PFOptOut = *input.PFOptOut
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	return employee, nil
}

// DeleteEmployee removes an employee from the roster
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if employee == nil {
		return apperror.NewNotFoundError("Employee")
	}

	return s.employeeRepo.Delete(ctx, id)
}

// CreateSalaryStructureInput represents the input for assigning a salary
// structure from an annual CTC
type CreateSalaryStructureInput struct {
	EmployeeID    uuid.UUID
	AnnualCTC     float64
	EffectiveFrom time.Time
}

// CreateSalaryStructure decomposes an annual CTC into monthly components
// and records it as the structure effective from the given date
func (s *EmployeeService) CreateSalaryStructure(ctx context.Context, input *CreateSalaryStructureInput) (*entity.SalaryStructure, error) {
	employee, err := s.employeeRepo.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	components, err := finance.DecomposeCTC(input.AnnualCTC)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	structure := &entity.SalaryStructure{
		EmployeeID:       input.EmployeeID,
		AnnualCTC:        finance.Round2(input.AnnualCTC),
		MonthlyCTC:       components.MonthlyCTC,
		Basic:            components.Basic,
		HRA:              components.HRA,
		DA:               components.DA,
		Conveyance:       components.Conveyance,
		Medical:          components.Medical,
		SpecialAllowance: components.SpecialAllowance,
		OtherAllowances:  components.OtherAllowances,
		PFEmployer:       components.PFEmployer,
		ESIEmployer:      components.ESIEmployer,
		Gratuity:         components.Gratuity,
		EffectiveFrom:    input.EffectiveFrom,
	}

	if err := s.salaryRepo.Create(ctx, structure); err != nil {
		return nil, err
	}

	return structure, nil
}

// GetEffectiveSalaryStructure returns the structure in force for an
// employee on a date
func (s *EmployeeService) GetEffectiveSalaryStructure(ctx context.Context, employeeID uuid.UUID, asOf time.Time) (*entity.SalaryStructure, error) {
	structure, err := s.salaryRepo.GetEffective(ctx, employeeID, asOf)
	if err != nil {
		return nil, err
	}
	if structure == nil {
		return nil, apperror.NewNotFoundError("Salary structure")
	}
	return structure, nil
}

// ListSalaryStructures returns an employee's structure history
func (s *EmployeeService) ListSalaryStructures(ctx context.Context, employeeID uuid.UUID) ([]entity.SalaryStructure, error) {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	return s.salaryRepo.ListByEmployee(ctx, employeeID)
}
