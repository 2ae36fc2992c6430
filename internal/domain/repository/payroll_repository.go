package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
)

// PayrollRepository defines the interface for payroll run data operations
type PayrollRepository interface {
	Create(ctx context.Context, run *entity.PayrollRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PayrollRun, error)
	GetByPeriod(ctx context.Context, year, month int) (*entity.PayrollRun, error)
	// GetWithPayslips retrieves a run with payslips and their employees preloaded
	GetWithPayslips(ctx context.Context, id uuid.UUID) (*entity.PayrollRun, error)
	Update(ctx context.Context, run *entity.PayrollRun) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, status *enum.PayrollStatus) ([]entity.PayrollRun, int64, error)
	// MarkProcessed transitions a run to processed, replacing its payslips
	// and totals in one transaction
	MarkProcessed(ctx context.Context, run *entity.PayrollRun, payslips []entity.Payslip, processedAt time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PayrollStatus) error
}

// PayslipRepository defines the interface for payslip data operations
type PayslipRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payslip, error)
	GetByRunAndEmployee(ctx context.Context, runID, employeeID uuid.UUID) (*entity.Payslip, error)
	ListByRun(ctx context.Context, runID uuid.UUID) ([]entity.Payslip, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, fiscalYearStart time.Time) ([]entity.Payslip, error)
}

// CalculationRuleRepository defines the interface for calculation rule data operations
type CalculationRuleRepository interface {
	Create(ctx context.Context, rule *entity.CalculationRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CalculationRule, error)
	GetByCode(ctx context.Context, code string) (*entity.CalculationRule, error)
	Update(ctx context.Context, rule *entity.CalculationRule) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]entity.CalculationRule, error)
}
