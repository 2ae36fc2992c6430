package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	domainRepo "github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
	"gorm.io/gorm"
)

type payrollRepository struct {
	db *gorm.DB
}

// NewPayrollRepository creates a new payroll repository
func NewPayrollRepository(db *gorm.DB) domainRepo.PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) Create(ctx context.Context, run *entity.PayrollRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *payrollRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PayrollRun, error) {
	var run entity.PayrollRun
	err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &run, err
}

func (r *payrollRepository) GetByPeriod(ctx context.Context, year, month int) (*entity.PayrollRun, error) {
	var run entity.PayrollRun
	err := r.db.WithContext(ctx).First(&run, "year = ? AND month = ?", year, month).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &run, err
}

func (r *payrollRepository) GetWithPayslips(ctx context.Context, id uuid.UUID) (*entity.PayrollRun, error) {
	var run entity.PayrollRun
	err := r.db.WithContext(ctx).
		Preload("Payslips.Employee").
		First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &run, err
}

func (r *payrollRepository) Update(ctx context.Context, run *entity.PayrollRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *payrollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.Payslip{}, "payroll_run_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.PayrollRun{}, "id = ?", id).Error
	})
}

func (r *payrollRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, status *enum.PayrollStatus) ([]entity.PayrollRun, int64, error) {
	var runs []entity.PayrollRun
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PayrollRun{})
	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("year DESC, month DESC").
		Find(&runs).Error

	return runs, total, err
}

func (r *payrollRepository) MarkProcessed(ctx context.Context, run *entity.PayrollRun, payslips []entity.Payslip, processedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.Payslip{}, "payroll_run_id = ?", run.ID).Error; err != nil {
			return err
		}
		if len(payslips) > 0 {
			if err := tx.Create(&payslips).Error; err != nil {
				return err
			}
		}
		run.Status = enum.PayrollStatusProcessed
		run.ProcessedAt = &processedAt
		return tx.Save(run).Error
	})
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PayrollStatus) error {
	return r.db.WithContext(ctx).Model(&entity.PayrollRun{}).
		Where("id = ?", id).
		Update("status", status).Error
}

type payslipRepository struct {
	db *gorm.DB
}

// NewPayslipRepository creates a new payslip repository
func NewPayslipRepository(db *gorm.DB) domainRepo.PayslipRepository {
	return &payslipRepository{db: db}
}

func (r *payslipRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payslip, error) {
	var payslip entity.Payslip
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&payslip, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payslip, err
}

func (r *payslipRepository) GetByRunAndEmployee(ctx context.Context, runID, employeeID uuid.UUID) (*entity.Payslip, error) {
	var payslip entity.Payslip
	err := r.db.WithContext(ctx).
		First(&payslip, "payroll_run_id = ? AND employee_id = ?", runID, employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payslip, err
}

func (r *payslipRepository) ListByRun(ctx context.Context, runID uuid.UUID) ([]entity.Payslip, error) {
	var payslips []entity.Payslip
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("payroll_run_id = ?", runID).
		Find(&payslips).Error
	return payslips, err
}

func (r *payslipRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, fiscalYearStart time.Time) ([]entity.Payslip, error) {
	var payslips []entity.Payslip
	err := r.db.WithContext(ctx).
		Joins("JOIN payroll_runs ON payroll_runs.id = payslips.payroll_run_id").
		Where("payslips.employee_id = ?", employeeID).
		Where("payroll_runs.year > ? OR (payroll_runs.year = ? AND payroll_runs.month >= ?)",
			fiscalYearStart.Year(), fiscalYearStart.Year(), int(fiscalYearStart.Month())).
		Find(&payslips).Error
	return payslips, err
}

type calculationRuleRepository struct {
	db *gorm.DB
}

// NewCalculationRuleRepository creates a new calculation rule repository
func NewCalculationRuleRepository(db *gorm.DB) domainRepo.CalculationRuleRepository {
	return &calculationRuleRepository{db: db}
}

func (r *calculationRuleRepository) Create(ctx context.Context, rule *entity.CalculationRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *calculationRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CalculationRule, error) {
	var rule entity.CalculationRule
	err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rule, err
}

func (r *calculationRuleRepository) GetByCode(ctx context.Context, code string) (*entity.CalculationRule, error) {
	var rule entity.CalculationRule
	err := r.db.WithContext(ctx).First(&rule, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rule, err
}

func (r *calculationRuleRepository) Update(ctx context.Context, rule *entity.CalculationRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *calculationRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CalculationRule{}, "id = ?", id).Error
}

func (r *calculationRuleRepository) List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]entity.CalculationRule, error) {
	var rules []entity.CalculationRule

	query := r.db.WithContext(ctx).Model(&entity.CalculationRule{})
	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	err := query.Order("code ASC").Find(&rules).Error
	return rules, err
}
