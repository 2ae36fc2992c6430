package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/infrastructure/repository"
)

func newAccountService(t *testing.T) (*service.AccountService, *entity.Account) {
	t.Helper()

	db := newTestDB(t)
	svc := service.NewAccountService(repository.NewAccountRepository(db))

	system := entity.Account{Code: "1000", Name: "Bank", Type: enum.AccountTypeAsset, IsSystem: true, IsActive: true}
	require.NoError(t, db.Create(&system).Error)

	return svc, &system
}

func TestCreateAccount(t *testing.T) {
	svc, _ := newAccountService(t)

	account, err := svc.CreateAccount(context.Background(), &service.CreateAccountInput{
		Code: "5200",
		Name: "Office Rent",
		Type: enum.AccountTypeExpense,
	})
	require.NoError(t, err)

	assert.Equal(t, "5200", account.Code)
	assert.True(t, account.IsActive)
	assert.False(t, account.IsSystem)
}

func TestCreateAccountRejectsDuplicateCode(t *testing.T) {
	svc, system := newAccountService(t)

	_, err := svc.CreateAccount(context.Background(), &service.CreateAccountInput{
		Code: system.Code,
		Name: "Another Bank",
		Type: enum.AccountTypeAsset,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateAccountParentTypeMustMatch(t *testing.T) {
	svc, system := newAccountService(t)

	_, err := svc.CreateAccount(context.Background(), &service.CreateAccountInput{
		Code:     "4200",
		Name:     "Service Income",
		Type:     enum.AccountTypeIncome,
		ParentID: &system.ID,
	})
	require.Error(t, err)

	child, err := svc.CreateAccount(context.Background(), &service.CreateAccountInput{
		Code:     "1010",
		Name:     "Petty Cash",
		Type:     enum.AccountTypeAsset,
		ParentID: &system.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, system.ID, *child.ParentID)
}

func TestUpdateAccountProtectsSystemAccounts(t *testing.T) {
	svc, system := newAccountService(t)

	inactive := false
	_, err := svc.UpdateAccount(context.Background(), &service.UpdateAccountInput{
		ID:       system.ID,
		IsActive: &inactive,
	})
	require.Error(t, err)

	// Renaming a system account is fine
	name := "Primary Bank"
	updated, err := svc.UpdateAccount(context.Background(), &service.UpdateAccountInput{
		ID:   system.ID,
		Name: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Primary Bank", updated.Name)
}

func TestDeleteAccountProtectsSystemAccounts(t *testing.T) {
	svc, system := newAccountService(t)

	require.Error(t, svc.DeleteAccount(context.Background(), system.ID))

	account, err := svc.CreateAccount(context.Background(), &service.CreateAccountInput{
		Code: "5300",
		Name: "Travel",
		Type: enum.AccountTypeExpense,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteAccount(context.Background(), account.ID))
}

func TestListAccountsFilters(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.CreateAccount(context.Background(), &service.CreateAccountInput{
		Code: "5400", Name: "Utilities", Type: enum.AccountTypeExpense,
	})
	require.NoError(t, err)

	expense := enum.AccountTypeExpense
	accounts, err := svc.ListAccounts(context.Background(), &expense, false)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Utilities", accounts[0].Name)

	all, err := svc.ListAccounts(context.Background(), nil, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
