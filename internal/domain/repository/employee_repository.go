package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
)

// EmployeeRepository defines the interface for employee data operations
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	GetByCode(ctx context.Context, code string) (*entity.Employee, error)
	GetByPAN(ctx context.Context, pan string) (*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, activeOnly bool) ([]entity.Employee, int64, error)
	// ListActive returns employees employed during the given period
	ListActive(ctx context.Context, asOf time.Time) ([]entity.Employee, error)
}

// SalaryStructureRepository defines the interface for salary structure data operations
type SalaryStructureRepository interface {
	Create(ctx context.Context, structure *entity.SalaryStructure) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalaryStructure, error)
	// GetEffective returns the structure in force for an employee on a date
	GetEffective(ctx context.Context, employeeID uuid.UUID, asOf time.Time) (*entity.SalaryStructure, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]entity.SalaryStructure, error)
	Update(ctx context.Context, structure *entity.SalaryStructure) error
	Delete(ctx context.Context, id uuid.UUID) error
}
