package finance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sahajbooks/sahaj-api/pkg/finance"
)

func TestCheckBalanceBalanced(t *testing.T) {
	result, err := finance.CheckBalance([]finance.BalanceLine{
		{AccountID: "cash", Debit: 100},
		{AccountID: "sales", Credit: 100},
	})
	assert.NoError(t, err)
	assert.True(t, result.Balanced)
	assert.Equal(t, 0.0, result.Difference)
	assert.Equal(t, 2, result.FundedLines)
	assert.Empty(t, result.DuplicateAccounts)
	assert.NoError(t, result.PostingError())
}

func TestCheckBalanceUnbalanced(t *testing.T) {
	result, err := finance.CheckBalance([]finance.BalanceLine{
		{AccountID: "cash", Debit: 100},
		{AccountID: "sales", Credit: 90},
	})
	assert.NoError(t, err)
	assert.False(t, result.Balanced)
	assert.Equal(t, 10.0, result.Difference)
	assert.ErrorIs(t, result.PostingError(), finance.ErrUnbalanced)
}

func TestCheckBalanceTolerance(t *testing.T) {
	// paise drift under the tolerance still balances
	result, err := finance.CheckBalance([]finance.BalanceLine{
		{AccountID: "cash", Debit: 100.004},
		{AccountID: "sales", Credit: 100},
	})
	assert.NoError(t, err)
	assert.True(t, result.Balanced)
}

func TestCheckBalanceDuplicateAccountsWarn(t *testing.T) {
	result, err := finance.CheckBalance([]finance.BalanceLine{
		{AccountID: "cash", Debit: 60},
		{AccountID: "cash", Debit: 40},
		{AccountID: "sales", Credit: 100},
	})
	assert.NoError(t, err)
	assert.True(t, result.Balanced)
	assert.Equal(t, []string{"cash"}, result.DuplicateAccounts)
	// duplicates warn, they never block posting
	assert.NoError(t, result.PostingError())
}

func TestCheckBalanceRejectsBothSides(t *testing.T) {
	_, err := finance.CheckBalance([]finance.BalanceLine{
		{AccountID: "cash", Debit: 100, Credit: 50},
	})
	assert.ErrorIs(t, err, finance.ErrBothSides)
}

func TestCheckBalanceRejectsNegativeAmounts(t *testing.T) {
	_, err := finance.CheckBalance([]finance.BalanceLine{
		{AccountID: "cash", Debit: -100},
	})
	assert.ErrorIs(t, err, finance.ErrNegativeAmount)
}

func TestPostingErrorTooFewLines(t *testing.T) {
	result, err := finance.CheckBalance([]finance.BalanceLine{
		{AccountID: "cash"},
		{AccountID: "sales"},
	})
	assert.NoError(t, err)
	assert.True(t, result.Balanced)
	assert.ErrorIs(t, result.PostingError(), finance.ErrTooFewLines)
}
