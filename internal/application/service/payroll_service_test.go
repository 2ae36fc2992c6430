package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/infrastructure/repository"
)

type payrollFixture struct {
	svc    *service.PayrollService
	db     *gorm.DB
	userID uuid.UUID
}

func newPayrollFixture(t *testing.T) *payrollFixture {
	t.Helper()

	db := newTestDB(t)
	svc := service.NewPayrollService(
		repository.NewPayrollRepository(db),
		repository.NewPayslipRepository(db),
		repository.NewEmployeeRepository(db),
		repository.NewSalaryStructureRepository(db),
		repository.NewCompanyRepository(db),
	)

	company := entity.Company{
		Name:      "Sahaj Traders",
		StateCode: "29",
		Settings:  entity.CompanySettings{ProfessionalTaxMonthly: 200},
	}
	require.NoError(t, db.Create(&company).Error)

	return &payrollFixture{svc: svc, db: db, userID: uuid.New()}
}

// employee adds a person with the given monthly components effective from
// the start of 2025.
func (f *payrollFixture) employee(t *testing.T, code string, basic, hra, special float64, pfOptOut bool) *entity.Employee {
	t.Helper()

	employee := entity.Employee{
		UserID:        f.userID,
		EmployeeCode:  code,
		FirstName:     "Asha",
		LastName:      "Nair",
		DateOfJoining: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		PFOptOut:      pfOptOut,
	}
	require.NoError(t, f.db.Create(&employee).Error)

	monthly := basic + hra + special
	structure := entity.SalaryStructure{
		EmployeeID:       employee.ID,
		AnnualCTC:        monthly * 12,
		MonthlyCTC:       monthly,
		Basic:            basic,
		HRA:              hra,
		SpecialAllowance: special,
		EffectiveFrom:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.db.Create(&structure).Error)

	return &employee
}

func TestCreatePayrollRun(t *testing.T) {
	f := newPayrollFixture(t)

	run, err := f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 6)
	require.NoError(t, err)

	assert.Equal(t, 2025, run.Year)
	assert.Equal(t, 6, run.Month)
	assert.Equal(t, enum.PayrollStatusDraft, run.Status)
	assert.Equal(t, "2025-06", run.Period())
}

func TestCreatePayrollRunRejectsDuplicatePeriod(t *testing.T) {
	f := newPayrollFixture(t)

	_, err := f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 6)
	require.NoError(t, err)

	_, err = f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreatePayrollRunValidatesPeriod(t *testing.T) {
	f := newPayrollFixture(t)

	_, err := f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 0)
	require.Error(t, err)
	_, err = f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 13)
	require.Error(t, err)
	_, err = f.svc.CreatePayrollRun(context.Background(), f.userID, 1999, 6)
	require.Error(t, err)
}

func TestProcessPayrollRun(t *testing.T) {
	f := newPayrollFixture(t)
	employee := f.employee(t, "EMP-001", 20000, 8000, 12000, false)

	run, err := f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 6)
	require.NoError(t, err)

	processed, err := f.svc.ProcessPayrollRun(context.Background(), &service.ProcessPayrollRunInput{
		UserID: f.userID,
		RunID:  run.ID,
		TDSOverrides: map[uuid.UUID]float64{
			employee.ID: 1500,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.PayrollStatusProcessed, processed.Status)
	assert.Equal(t, 1, processed.EmployeeCount)
	require.NotNil(t, processed.ProcessedAt)
	require.Len(t, processed.Payslips, 1)

	slip := processed.Payslips[0]
	assert.Equal(t, employee.ID, slip.EmployeeID)
	assert.Equal(t, 40000.0, slip.GrossPay)
	assert.Equal(t, 12000.0, slip.OtherEarnings)
	// PF wages cap at 15000 even though basic is 20000
	assert.Equal(t, 1800.0, slip.PFEmployee)
	assert.Equal(t, 1800.0, slip.PFEmployer)
	// Gross above the ESI threshold attracts no ESI
	assert.Equal(t, 0.0, slip.ESIEmployee)
	assert.Equal(t, 0.0, slip.ESIEmployer)
	assert.Equal(t, 200.0, slip.ProfessionalTax)
	assert.Equal(t, 1500.0, slip.TDSAmount)
	assert.Equal(t, 3500.0, slip.TotalDeductions)
	assert.Equal(t, 36500.0, slip.NetPay)

	assert.Equal(t, 40000.0, processed.GrossTotal)
	assert.Equal(t, 3500.0, processed.DeductionTotal)
	assert.Equal(t, 36500.0, processed.NetTotal)
}

func TestProcessPayrollRunAppliesESIUnderThreshold(t *testing.T) {
	f := newPayrollFixture(t)
	f.employee(t, "EMP-002", 9000, 4000, 5000, false)

	run, err := f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 6)
	require.NoError(t, err)

	processed, err := f.svc.ProcessPayrollRun(context.Background(), &service.ProcessPayrollRunInput{
		UserID: f.userID,
		RunID:  run.ID,
	})
	require.NoError(t, err)

	require.Len(t, processed.Payslips, 1)
	slip := processed.Payslips[0]
	assert.Equal(t, 18000.0, slip.GrossPay)
	// Basic below the PF ceiling is deducted in full
	assert.Equal(t, 1080.0, slip.PFEmployee)
	assert.Equal(t, 135.0, slip.ESIEmployee)
	assert.Equal(t, 585.0, slip.ESIEmployer)
	assert.Equal(t, 1415.0, slip.TotalDeductions)
	assert.Equal(t, 16585.0, slip.NetPay)
}

func TestProcessPayrollRunHonorsPFOptOut(t *testing.T) {
	f := newPayrollFixture(t)
	f.employee(t, "EMP-003", 20000, 8000, 12000, true)

	run, err := f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 6)
	require.NoError(t, err)

	processed, err := f.svc.ProcessPayrollRun(context.Background(), &service.ProcessPayrollRunInput{
		UserID: f.userID,
		RunID:  run.ID,
	})
	require.NoError(t, err)

	require.Len(t, processed.Payslips, 1)
	slip := processed.Payslips[0]
	assert.Equal(t, 0.0, slip.PFEmployee)
	assert.Equal(t, 0.0, slip.PFEmployer)
	assert.Equal(t, 200.0, slip.TotalDeductions)
}

func TestProcessPayrollRunSkipsEmployeesWithoutStructure(t *testing.T) {
	f := newPayrollFixture(t)
	f.employee(t, "EMP-004", 20000, 8000, 12000, false)

	bare := entity.Employee{
		UserID:        f.userID,
		EmployeeCode:  "EMP-005",
		FirstName:     "Ravi",
		LastName:      "Iyer",
		DateOfJoining: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.db.Create(&bare).Error)

	run, err := f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 6)
	require.NoError(t, err)

	processed, err := f.svc.ProcessPayrollRun(context.Background(), &service.ProcessPayrollRunInput{
		UserID: f.userID,
		RunID:  run.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, processed.EmployeeCount)
}

func TestProcessPayrollRunSkipsLeftEmployees(t *testing.T) {
	f := newPayrollFixture(t)
	employee := f.employee(t, "EMP-006", 20000, 8000, 12000, false)

	left := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.db.Model(employee).Update("date_of_leaving", left).Error)

	run, err := f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 6)
	require.NoError(t, err)

	_, err = f.svc.ProcessPayrollRun(context.Background(), &service.ProcessPayrollRunInput{
		UserID: f.userID,
		RunID:  run.ID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No employees")
}

func TestReprocessDraftRunReplacesPayslips(t *testing.T) {
	f := newPayrollFixture(t)
	employee := f.employee(t, "EMP-007", 20000, 8000, 12000, false)

	run, err := f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 6)
	require.NoError(t, err)

	_, err = f.svc.ProcessPayrollRun(context.Background(), &service.ProcessPayrollRunInput{
		UserID: f.userID,
		RunID:  run.ID,
	})
	require.NoError(t, err)

	// Processing again with an override replaces the earlier slips
	processed, err := f.svc.ProcessPayrollRun(context.Background(), &service.ProcessPayrollRunInput{
		UserID: f.userID,
		RunID:  run.ID,
		TDSOverrides: map[uuid.UUID]float64{
			employee.ID: 2000,
		},
	})
	require.NoError(t, err)
	require.Len(t, processed.Payslips, 1)
	assert.Equal(t, 2000.0, processed.Payslips[0].TDSAmount)
}

func TestMarkPayrollPaid(t *testing.T) {
	f := newPayrollFixture(t)
	f.employee(t, "EMP-008", 20000, 8000, 12000, false)

	run, err := f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 6)
	require.NoError(t, err)

	// Draft runs cannot be paid
	_, err = f.svc.MarkPayrollPaid(context.Background(), f.userID, run.ID, false)
	require.Error(t, err)

	_, err = f.svc.ProcessPayrollRun(context.Background(), &service.ProcessPayrollRunInput{
		UserID: f.userID,
		RunID:  run.ID,
	})
	require.NoError(t, err)

	paid, err := f.svc.MarkPayrollPaid(context.Background(), f.userID, run.ID, false)
	require.NoError(t, err)
	assert.Equal(t, enum.PayrollStatusPaid, paid.Status)

	// Paid runs are frozen
	_, err = f.svc.ProcessPayrollRun(context.Background(), &service.ProcessPayrollRunInput{
		UserID: f.userID,
		RunID:  run.ID,
	})
	require.Error(t, err)
}

func TestDeletePayrollRunOnlyDraft(t *testing.T) {
	f := newPayrollFixture(t)
	f.employee(t, "EMP-009", 20000, 8000, 12000, false)

	run, err := f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 6)
	require.NoError(t, err)
	require.NoError(t, f.svc.DeletePayrollRun(context.Background(), f.userID, run.ID, false))

	run, err = f.svc.CreatePayrollRun(context.Background(), f.userID, 2025, 7)
	require.NoError(t, err)
	_, err = f.svc.ProcessPayrollRun(context.Background(), &service.ProcessPayrollRunInput{
		UserID: f.userID,
		RunID:  run.ID,
	})
	require.NoError(t, err)
	assert.Error(t, f.svc.DeletePayrollRun(context.Background(), f.userID, run.ID, false))
}

func TestListEmployeePayslipsFiscalYearWindow(t *testing.T) {
	f := newPayrollFixture(t)
	employee := f.employee(t, "EMP-010", 20000, 8000, 12000, false)

	// One run before the 2025-26 fiscal year, one inside it
	for _, period := range []struct{ year, month int }{{2025, 2}, {2025, 5}} {
		run, err := f.svc.CreatePayrollRun(context.Background(), f.userID, period.year, period.month)
		require.NoError(t, err)
		_, err = f.svc.ProcessPayrollRun(context.Background(), &service.ProcessPayrollRunInput{
			UserID: f.userID,
			RunID:  run.ID,
		})
		require.NoError(t, err)
	}

	slips, err := f.svc.ListEmployeePayslips(context.Background(), employee.ID, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, slips, 1)
}
