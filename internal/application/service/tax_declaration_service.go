package service

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
	"github.com/sahajbooks/sahaj-api/pkg/finance"
)

var fiscalYearRegex = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// TaxDeclarationService handles employee investment declarations.
// Statutory section caps annotate the allowed amounts but never reject a
// submission; a missing or malformed PAN is a hard block.
type TaxDeclarationService struct {
	declarationRepo repository.TaxDeclarationRepository
	employeeRepo    repository.EmployeeRepository
}

// NewTaxDeclarationService creates a new tax declaration service
func NewTaxDeclarationService(declarationRepo repository.TaxDeclarationRepository, employeeRepo repository.EmployeeRepository) *TaxDeclarationService {
	return &TaxDeclarationService{declarationRepo: declarationRepo, employeeRepo: employeeRepo}
}

// DeclarationItemInput represents one declared investment
type DeclarationItemInput struct {
	Section  string
	Label    string
	Declared float64
}

// SubmitDeclarationInput represents a full declaration submission for a
// fiscal year. Re-submitting replaces the previous items.
type SubmitDeclarationInput struct {
	EmployeeID uuid.UUID
	FiscalYear string
	Items      []DeclarationItemInput
}

func validateFiscalYear(fiscalYear string) (time.Time, error) {
	m := fiscalYearRegex.FindStringSubmatch(fiscalYear)
	if m == nil {
		return time.Time{}, apperror.NewValidationError([]apperror.FieldError{
			{Field: "fiscal_year", Message: "fiscal year must look like 2025-2026"},
		})
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if end != start+1 {
		return time.Time{}, apperror.NewValidationError([]apperror.FieldError{
			{Field: "fiscal_year", Message: "fiscal year must span consecutive years"},
		})
	}
	return time.Date(start, time.April, 1, 0, 0, 0, 0, time.UTC), nil
}

// seniorCitizenAt reports whether the employee is 60 or older at the
// fiscal year start. 80D and interest limits double for senior citizens.
func seniorCitizenAt(dateOfBirth *time.Time, fyStart time.Time) bool {
	if dateOfBirth == nil {
		return false
	}
	return !dateOfBirth.AddDate(60, 0, 0).After(fyStart)
}

// SubmitDeclaration validates and stores a declaration, computing the
// allowed amount per item from the statutory section limits
func (s *TaxDeclarationService) SubmitDeclaration(ctx context.Context, input *SubmitDeclarationInput) (*entity.TaxDeclaration, error) {
	fyStart, err := validateFiscalYear(input.FiscalYear)
	if err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Declaration requires at least one item")
	}
	for _, item := range input.Items {
		if item.Declared < 0 {
			return nil, apperror.NewBadRequestError("Declared amounts cannot be negative")
		}
	}

	employee, err := s.employeeRepo.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	if employee.PAN == nil || *employee.PAN == "" {
		return nil, apperror.NewBusinessRuleError("Employee PAN is required before declaring investments")
	}

	flags := finance.DeclarantFlags{SeniorCitizen: seniorCitizenAt(employee.DateOfBirth, fyStart)}

	financeItems := make([]finance.DeclarationItem, 0, len(input.Items))
	for _, item := range input.Items {
		financeItems = append(financeItems, finance.DeclarationItem{
			Section:  item.Section,
			Label:    item.Label,
			Declared: item.Declared,
		})
	}
	results := finance.ApplyDeclarationLimits(financeItems, flags)

	// Allowed per section pool; items inside a capped pool share the
	// allowance in proportion to what they declared.
	ratios := make(map[string]float64, len(results))
	for _, r := range results {
		if r.Declared > 0 {
			ratios[r.Section] = r.Allowed / r.Declared
		}
	}

	items := make([]entity.DeclarationItem, 0, len(input.Items))
	var totalClaimed float64
	for _, item := range input.Items {
		ratio, ok := ratios[poolSection(item.Section)]
		if !ok {
			ratio = 1
		}
		items = append(items, entity.DeclarationItem{
			Section:  item.Section,
			Label:    item.Label,
			Declared: finance.Round2(item.Declared),
			Allowed:  finance.Round2(item.Declared * ratio),
		})
		totalClaimed += item.Declared
	}

	declaration, err := s.declarationRepo.GetByEmployeeAndYear(ctx, input.EmployeeID, input.FiscalYear)
	if err != nil {
		return nil, err
	}

	if declaration == nil {
		declaration = &entity.TaxDeclaration{
			EmployeeID:   input.EmployeeID,
			FiscalYear:   input.FiscalYear,
			TotalClaimed: finance.Round2(totalClaimed),
			TotalAllowed: finance.Round2(finance.TotalAllowed(results)),
			Items:        items,
		}
		if err := s.declarationRepo.Create(ctx, declaration); err != nil {
			return nil, err
		}
	} else {
		declaration.TotalClaimed = finance.Round2(totalClaimed)
		declaration.TotalAllowed = finance.Round2(finance.TotalAllowed(results))
		if err := s.declarationRepo.ReplaceItems(ctx, declaration, items); err != nil {
			return nil, err
		}
	}

	return s.declarationRepo.GetWithItems(ctx, declaration.ID)
}

// poolSection mirrors the 80C family pooling used by the limit calculator
func poolSection(section string) string {
	switch section {
	case "80C", "80CCC", "80CCD(1)":
		return "80C"
	}
	return section
}

// GetDeclaration retrieves a declaration with its items
func (s *TaxDeclarationService) GetDeclaration(ctx context.Context, id uuid.UUID) (*entity.TaxDeclaration, error) {
	declaration, err := s.declarationRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if declaration == nil {
		return nil, apperror.NewNotFoundError("Tax declaration")
	}
	return declaration, nil
}

// GetEmployeeDeclaration retrieves an employee's declaration for a fiscal year
func (s *TaxDeclarationService) GetEmployeeDeclaration(ctx context.Context, employeeID uuid.UUID, fiscalYear string) (*entity.TaxDeclaration, error) {
	declaration, err := s.declarationRepo.GetByEmployeeAndYear(ctx, employeeID, fiscalYear)
	if err != nil {
		return nil, err
	}
	if declaration == nil {
		return nil, apperror.NewNotFoundError("Tax declaration")
	}
	return s.declarationRepo.GetWithItems(ctx, declaration.ID)
}

// ListDeclarations lists declarations for a fiscal year
func (s *TaxDeclarationService) ListDeclarations(ctx context.Context, fiscalYear string) ([]entity.TaxDeclaration, error) {
	if _, err := validateFiscalYear(fiscalYear); err != nil {
		return nil, err
	}
	return s.declarationRepo.ListByFiscalYear(ctx, fiscalYear)
}

// DeleteDeclaration deletes a declaration
func (s *TaxDeclarationService) DeleteDeclaration(ctx context.Context, id uuid.UUID) error {
	declaration, err := s.declarationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if declaration == nil {
		return apperror.NewNotFoundError("Tax declaration")
	}

	return s.declarationRepo.Delete(ctx, id)
}
