package finance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sahajbooks/sahaj-api/pkg/finance"
)

func TestDecomposeCTC(t *testing.T) {
	sc, err := finance.DecomposeCTC(600000)
	assert.NoError(t, err)

	// monthly CTC 50,000: basic 45%, HRA 50% of basic, DA 10% of basic
	assert.Equal(t, 50000.0, sc.MonthlyCTC)
	assert.Equal(t, 22500.0, sc.Basic)
	assert.Equal(t, 11250.0, sc.HRA)
	assert.Equal(t, 2250.0, sc.DA)
	assert.Equal(t, 1600.0, sc.Conveyance)
	assert.Equal(t, 1250.0, sc.Medical)

	// remaining 11,150 splits 80/20
	assert.Equal(t, 8920.0, sc.SpecialAllowance)
	assert.Equal(t, 2230.0, sc.OtherAllowances)

	// employer PF on basic capped at 15,000
	assert.Equal(t, 1800.0, sc.PFEmployer)
	// ESI not auto-computed at decomposition time
	assert.Equal(t, 0.0, sc.ESIEmployer)
	// gratuity 4.81% of basic
	assert.Equal(t, 1082.0, sc.Gratuity)

	assert.Equal(t, 50000.0, sc.MonthlyGross())
}

func TestDecomposeCTCIsPure(t *testing.T) {
	first, err := finance.DecomposeCTC(600000)
	assert.NoError(t, err)
	second, err := finance.DecomposeCTC(600000)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecomposeCTCPFCeiling(t *testing.T) {
	sc, err := finance.DecomposeCTC(1200000)
	assert.NoError(t, err)

	// basic 45,000 exceeds the 15,000 PF ceiling
	assert.Equal(t, 45000.0, sc.Basic)
	assert.Equal(t, 1800.0, sc.PFEmployer)
}

func TestDecomposeCTCLowCTC(t *testing.T) {
	// monthly 10,000: fixed allowances eat past the remainder, which must
	// clamp at zero instead of going negative
	sc, err := finance.DecomposeCTC(120000)
	assert.NoError(t, err)
	assert.Equal(t, 4500.0, sc.Basic)
	assert.Equal(t, 0.0, sc.SpecialAllowance)
	assert.Equal(t, 0.0, sc.OtherAllowances)
}

func TestDecomposeCTCRejectsNonPositive(t *testing.T) {
	_, err := finance.DecomposeCTC(0)
	assert.ErrorIs(t, err, finance.ErrInvalidCTC)

	_, err = finance.DecomposeCTC(-50000)
	assert.ErrorIs(t, err, finance.ErrInvalidCTC)
}
