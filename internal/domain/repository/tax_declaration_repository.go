package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
)

// TaxDeclarationRepository defines the interface for tax declaration data operations
type TaxDeclarationRepository interface {
	Create(ctx context.Context, declaration *entity.TaxDeclaration) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxDeclaration, error)
	// GetByEmployeeAndYear returns the employee's declaration for a fiscal year
	GetByEmployeeAndYear(ctx context.Context, employeeID uuid.UUID, fiscalYear string) (*entity.TaxDeclaration, error)
	// GetWithItems retrieves a declaration with its items preloaded
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.TaxDeclaration, error)
	Update(ctx context.Context, declaration *entity.TaxDeclaration) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByFiscalYear(ctx context.Context, fiscalYear string) ([]entity.TaxDeclaration, error)
	// ReplaceItems swaps a declaration's items and updates its totals in one transaction
	ReplaceItems(ctx context.Context, declaration *entity.TaxDeclaration, items []entity.DeclarationItem) error
}
