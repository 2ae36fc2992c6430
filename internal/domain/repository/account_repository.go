package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
)

// AccountRepository defines the interface for chart-of-accounts operations
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	GetByCode(ctx context.Context, code string) (*entity.Account, error)
	// GetByIDs retrieves multiple accounts in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, accountType *enum.AccountType, activeOnly bool) ([]entity.Account, error)
	Count(ctx context.Context) (int64, error)
}
