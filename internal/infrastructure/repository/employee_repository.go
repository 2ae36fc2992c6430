package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	domainRepo "github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
	"gorm.io/gorm"
)

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) domainRepo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &employee, err
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).First(&employee, "employee_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &employee, err
}

func (r *employeeRepository) GetByPAN(ctx context.Context, pan string) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).First(&employee, "pan = ?", pan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &employee, err
}

func (r *employeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Employee{}, "id = ?", id).Error
}

func (r *employeeRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, activeOnly bool) ([]entity.Employee, int64, error) {
	var employees []entity.Employee
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Employee{})
	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	if search != "" {
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR employee_code ILIKE ? OR pan ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if activeOnly {
		query = query.Where("date_of_leaving IS NULL")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("employee_code ASC").
		Find(&employees).Error

	return employees, total, err
}

func (r *employeeRepository) ListActive(ctx context.Context, asOf time.Time) ([]entity.Employee, error) {
	var employees []entity.Employee
	err := r.db.WithContext(ctx).
		Where("date_of_joining <= ?", asOf).
		Where("date_of_leaving IS NULL OR date_of_leaving >= ?", asOf).
		Order("employee_code ASC").
		Find(&employees).Error
	return employees, err
}

type salaryStructureRepository struct {
	db *gorm.DB
}

// NewSalaryStructureRepository creates a new salary structure repository
func NewSalaryStructureRepository(db *gorm.DB) domainRepo.SalaryStructureRepository {
	return &salaryStructureRepository{db: db}
}

func (r *salaryStructureRepository) Create(ctx context.Context, structure *entity.SalaryStructure) error {
	return r.db.WithContext(ctx).Create(structure).Error
}

func (r *salaryStructureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalaryStructure, error) {
	var structure entity.SalaryStructure
	err := r.db.WithContext(ctx).First(&structure, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &structure, err
}

func (r *salaryStructureRepository) GetEffective(ctx context.Context, employeeID uuid.UUID, asOf time.Time) (*entity.SalaryStructure, error) {
	var structure entity.SalaryStructure
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND effective_from <= ?", employeeID, asOf).
		Order("effective_from DESC").
		First(&structure).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &structure, err
}

func (r *salaryStructureRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]entity.SalaryStructure, error) {
	var structures []entity.SalaryStructure
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC").
		Find(&structures).Error
	return structures, err
}

func (r *salaryStructureRepository) Update(ctx context.Context, structure *entity.SalaryStructure) error {
	return r.db.WithContext(ctx).Save(structure).Error
}

func (r *salaryStructureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.SalaryStructure{}, "id = ?", id).Error
}
