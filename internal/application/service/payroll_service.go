package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
	"github.com/sahajbooks/sahaj-api/pkg/finance"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
)

// PayrollService handles monthly payroll runs. Processing a draft run
// snapshots each active employee's effective salary structure into a
// payslip and applies the statutory deductions in force.
type PayrollService struct {
	payrollRepo  repository.PayrollRepository
	payslipRepo  repository.PayslipRepository
	employeeRepo repository.EmployeeRepository
	salaryRepo   repository.SalaryStructureRepository
	companyRepo  repository.CompanyRepository
}

// NewPayrollService creates a new payroll service
func NewPayrollService(
	payrollRepo repository.PayrollRepository,
	payslipRepo repository.PayslipRepository,
	employeeRepo repository.EmployeeRepository,
	salaryRepo repository.SalaryStructureRepository,
	companyRepo repository.CompanyRepository,
) *PayrollService {
	return &PayrollService{
		payrollRepo:  payrollRepo,
		payslipRepo:  payslipRepo,
		employeeRepo: employeeRepo,
		salaryRepo:   salaryRepo,
		companyRepo:  companyRepo,
	}
}

// CreatePayrollRun opens a draft run for a period. One run per month.
func (s *PayrollService) CreatePayrollRun(ctx context.Context, userID uuid.UUID, year, month int) (*entity.PayrollRun, error) {
	if month < 1 || month > 12 {
		return nil, apperror.NewBadRequestError("Month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, apperror.NewBadRequestError("Year is out of range")
	}

	existing, err := s.payrollRepo.GetByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A payroll run already exists for this period")
	}

	run := &entity.PayrollRun{
		UserID: userID,
		Year:   year,
		Month:  month,
		Status: enum.PayrollStatusDraft,
	}

	if err := s.payrollRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	return run, nil
}

// GetPayrollRun retrieves a run with its payslips
func (s *PayrollService) GetPayrollRun(ctx context.Context, id uuid.UUID) (*entity.PayrollRun, error) {
	run, err := s.payrollRepo.GetWithPayslips(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, apperror.NewNotFoundError("Payroll run")
	}
	return run, nil
}

// ListPayrollRuns lists runs, optionally filtered by status
func (s *PayrollService) ListPayrollRuns(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, status *enum.PayrollStatus) (*pagination.PaginatedResult[entity.PayrollRun], error) {
	runs, total, err := s.payrollRepo.List(ctx, userID, params, status)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(runs, pag), nil
}

// ProcessPayrollRunInput represents the input for processing a run.
// TDSOverrides carries per-employee monthly withholding decided outside
// the run, keyed by employee ID.
type ProcessPayrollRunInput struct {
	UserID       uuid.UUID
	RunID        uuid.UUID
	IsSuperAdmin bool
	TDSOverrides map[uuid.UUID]float64
}

// buildPayslip computes one employee's slip from the structure effective
// in the period.
func buildPayslip(employee *entity.Employee, structure *entity.SalaryStructure, professionalTax, tdsAmount float64) (*entity.Payslip, error) {
	gross := finance.Round2(structure.MonthlyGross())

	var pfEmployee, pfEmployer float64
	if !employee.PFOptOut {
		pfBase := structure.Basic
		if pfBase > finance.PFBasicCeiling {
			pfBase = finance.PFBasicCeiling
		}
		d, err := finance.ComputeDeduction(pfBase, finance.PFEmployeeRate)
		if err != nil {
			return nil, err
		}
		pfEmployee = d.Deducted
		d, err = finance.ComputeDeduction(pfBase, finance.PFEmployerRate)
		if err != nil {
			return nil, err
		}
		pfEmployer = d.Deducted
	}

	var esiEmployee, esiEmployer float64
	if gross <= finance.ESIGrossThreshold {
		d, err := finance.ComputeDeduction(gross, finance.ESIEmployeeRate)
		if err != nil {
			return nil, err
		}
		esiEmployee = d.Deducted
		d, err = finance.ComputeDeduction(gross, finance.ESIEmployerRate)
		if err != nil {
			return nil, err
		}
		esiEmployer = d.Deducted
	}

	totalDeductions := finance.Round2(pfEmployee + esiEmployee + professionalTax + tdsAmount)

	return &entity.Payslip{
		EmployeeID:      employee.ID,
		Basic:           structure.Basic,
		HRA:             structure.HRA,
		DA:              structure.DA,
		OtherEarnings:   finance.Round2(gross - structure.Basic - structure.HRA - structure.DA),
		GrossPay:        gross,
		PFEmployee:      pfEmployee,
		PFEmployer:      pfEmployer,
		ESIEmployee:     esiEmployee,
		ESIEmployer:     esiEmployer,
		ProfessionalTax: professionalTax,
		TDSAmount:       finance.Round2(tdsAmount),
		TotalDeductions: totalDeductions,
		NetPay:          finance.Round2(gross - totalDeductions),
	}, nil
}

// ProcessPayrollRun computes payslips for every active employee with a
// salary structure and transitions the run to processed. Re-processing a
// draft run replaces its payslips.
func (s *PayrollService) ProcessPayrollRun(ctx context.Context, input *ProcessPayrollRunInput) (*entity.PayrollRun, error) {
	run, err := s.payrollRepo.GetByID(ctx, input.RunID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, apperror.NewNotFoundError("Payroll run")
	}

	// Check permission
	if !input.IsSuperAdmin && run.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if run.Status == enum.PayrollStatusPaid {
		return nil, apperror.NewBusinessRuleError("Paid runs cannot be re-processed")
	}

	var professionalTax float64
	company, err := s.companyRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if company != nil {
		professionalTax = company.Settings.ProfessionalTaxMonthly
	}

	periodEnd := time.Date(run.Year, time.Month(run.Month)+1, 0, 0, 0, 0, 0, time.UTC)
	employees, err := s.employeeRepo.ListActive(ctx, periodEnd)
	if err != nil {
		return nil, err
	}

	payslips := make([]entity.Payslip, 0, len(employees))
	var grossTotal, deductionTotal, netTotal float64

	for i := range employees {
		employee := &employees[i]
		structure, err := s.salaryRepo.GetEffective(ctx, employee.ID, periodEnd)
		if err != nil {
			return nil, err
		}
		if structure == nil {
			// No structure assigned yet; the employee sits out this run.
			continue
		}

		slip, err := buildPayslip(employee, structure, professionalTax, input.TDSOverrides[employee.ID])
		if err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}

		payslips = append(payslips, *slip)
		grossTotal += slip.GrossPay
		deductionTotal += slip.TotalDeductions
		netTotal += slip.NetPay
	}

	if len(payslips) == 0 {
		return nil, apperror.NewBusinessRuleError("No employees with salary structures to process")
	}

	for i := range payslips {
		payslips[i].PayrollRunID = run.ID
	}

	run.EmployeeCount = len(payslips)
	run.GrossTotal = finance.Round2(grossTotal)
	run.DeductionTotal = finance.Round2(deductionTotal)
	run.NetTotal = finance.Round2(netTotal)
	run.Status = enum.PayrollStatusProcessed

	processedAt := time.Now()
	if err := s.payrollRepo.MarkProcessed(ctx, run, payslips, processedAt); err != nil {
		return nil, err
	}

	return s.payrollRepo.GetWithPayslips(ctx, run.ID)
}

// MarkPayrollPaid transitions a processed run to paid
func (s *PayrollService) MarkPayrollPaid(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) (*entity.PayrollRun, error) {
	run, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, apperror.NewNotFoundError("Payroll run")
	}

	// Check permission
	if !isSuperAdmin && run.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	if run.Status != enum.PayrollStatusProcessed {
		return nil, apperror.NewBusinessRuleError("Only processed runs can be marked paid")
	}

	if err := s.payrollRepo.UpdateStatus(ctx, id, enum.PayrollStatusPaid); err != nil {
		return nil, err
	}
	run.Status = enum.PayrollStatusPaid

	return run, nil
}

// DeletePayrollRun deletes a draft run
func (s *PayrollService) DeletePayrollRun(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	run, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if run == nil {
		return apperror.NewNotFoundError("Payroll run")
	}

	// Check permission
	if !isSuperAdmin && run.UserID != userID {
		return apperror.ErrForbidden
	}

	if run.Status != enum.PayrollStatusDraft {
		return apperror.NewBusinessRuleError("Only draft runs can be deleted")
	}

	return s.payrollRepo.Delete(ctx, id)
}

// GetPayslip retrieves a single payslip
func (s *PayrollService) GetPayslip(ctx context.Context, id uuid.UUID) (*entity.Payslip, error) {
	slip, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slip == nil {
		return nil, apperror.NewNotFoundError("Payslip")
	}
	return slip, nil
}

// ListEmployeePayslips returns an employee's payslips since the start of
// the fiscal year containing asOf. Indian fiscal years begin in April.
func (s *PayrollService) ListEmployeePayslips(ctx context.Context, employeeID uuid.UUID, asOf time.Time) ([]entity.Payslip, error) {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	fyStart := time.Date(asOf.Year(), time.April, 1, 0, 0, 0, 0, time.UTC)
	if asOf.Month() < time.April {
		fyStart = fyStart.AddDate(-1, 0, 0)
	}

	return s.payslipRepo.ListByEmployee(ctx, employeeID, fyStart)
}
