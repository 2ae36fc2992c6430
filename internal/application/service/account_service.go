package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
)

// AccountService handles chart-of-accounts operations. System accounts are
// seeded at startup and cannot be removed.
type AccountService struct {
	accountRepo repository.AccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo repository.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// CreateAccountInput represents the create account input
type CreateAccountInput struct {
	Code     string
	Name     string
	Type     enum.AccountType
	ParentID *uuid.UUID
}

// CreateAccount creates a new ledger account
func (s *AccountService) CreateAccount(ctx context.Context, input *CreateAccountInput) (*entity.Account, error) {
	existing, err := s.accountRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Account code already exists")
	}

	if input.ParentID != nil {
		parent, err := s.accountRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewNotFoundError("Parent account")
		}
		if parent.Type != input.Type {
			return nil, apperror.NewBusinessRuleError("Child account must share its parent's type")
		}
	}

	account := &entity.Account{
		Code:     input.Code,
		Name:     input.Name,
		Type:     input.Type,
		ParentID: input.ParentID,
		IsActive: true,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Account")
	}
	return account, nil
}

// ListAccounts lists the chart of accounts, optionally filtered by type
func (s *AccountService) ListAccounts(ctx context.Context, accountType *enum.AccountType, activeOnly bool) ([]entity.Account, error) {
	return s.accountRepo.List(ctx, accountType, activeOnly)
}

// UpdateAccountInput represents the update account input
type UpdateAccountInput struct {
	ID       uuid.UUID
	Name     *string
	IsActive *bool
}

// UpdateAccount renames or toggles an account. Codes and types are fixed
// once created so historical entries keep their meaning.
func (s *AccountService) UpdateAccount(ctx context.Context, input *UpdateAccountInput) (*entity.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Account")
	}

	if account.IsSystem && input.IsActive != nil && !*input.IsActive {
		return nil, apperror.NewBusinessRuleError("System accounts cannot be deactivated")
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount deletes a non-system account
func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		return apperror.NewNotFoundError("Account")
	}

	if account.IsSystem {
		return apperror.NewBusinessRuleError("System accounts cannot be deleted")
	}

	return s.accountRepo.Delete(ctx, id)
}
