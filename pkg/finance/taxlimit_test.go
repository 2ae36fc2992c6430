package finance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sahajbooks/sahaj-api/pkg/finance"
)

func TestApplyDeclarationLimits80CPool(t *testing.T) {
	// PPF + ELSS declared at 1,00,000 each: pooled 80C caps at 1,50,000
	// while the declared total stays visible
	results := finance.ApplyDeclarationLimits([]finance.DeclarationItem{
		{Section: "80C", Label: "PPF", Declared: 100000},
		{Section: "80C", Label: "ELSS", Declared: 100000},
	}, finance.DeclarantFlags{})

	assert.Len(t, results, 1)
	assert.Equal(t, "80C", results[0].Section)
	assert.Equal(t, 200000.0, results[0].Declared)
	assert.Equal(t, 150000.0, results[0].Allowed)
	assert.True(t, results[0].Capped)
}

func TestApplyDeclarationLimits80CFamilyShares(t *testing.T) {
	// 80CCC and 80CCD(1) draw from the same pool as 80C
	results := finance.ApplyDeclarationLimits([]finance.DeclarationItem{
		{Section: "80C", Declared: 100000},
		{Section: "80CCC", Declared: 40000},
		{Section: "80CCD(1)", Declared: 30000},
	}, finance.DeclarantFlags{})

	assert.Len(t, results, 1)
	assert.Equal(t, 170000.0, results[0].Declared)
	assert.Equal(t, 150000.0, results[0].Allowed)
	assert.True(t, results[0].Capped)
}

func TestApplyDeclarationLimitsSectionsAreIndependent(t *testing.T) {
	results := finance.ApplyDeclarationLimits([]finance.DeclarationItem{
		{Section: "80C", Declared: 150000},
		{Section: "80CCD(1B)", Declared: 50000},
		{Section: "80D", Declared: 20000},
	}, finance.DeclarantFlags{})

	assert.Len(t, results, 3)
	for _, r := range results {
		assert.False(t, r.Capped)
		assert.Equal(t, r.Declared, r.Allowed)
	}
	assert.Equal(t, 220000.0, finance.TotalAllowed(results))
}

func TestApplyDeclarationLimitsSeniorCitizen80D(t *testing.T) {
	items := []finance.DeclarationItem{{Section: "80D", Declared: 40000}}

	regular := finance.ApplyDeclarationLimits(items, finance.DeclarantFlags{})
	assert.Equal(t, 25000.0, regular[0].Allowed)
	assert.True(t, regular[0].Capped)

	senior := finance.ApplyDeclarationLimits(items, finance.DeclarantFlags{SeniorCitizen: true})
	assert.Equal(t, 40000.0, senior[0].Allowed)
	assert.False(t, senior[0].Capped)
}

func TestApplyDeclarationLimitsUncappedSection(t *testing.T) {
	// 80E education loan interest has no ceiling
	results := finance.ApplyDeclarationLimits([]finance.DeclarationItem{
		{Section: "80E", Declared: 500000},
	}, finance.DeclarantFlags{})

	assert.Equal(t, 500000.0, results[0].Allowed)
	assert.False(t, results[0].Capped)
	assert.Equal(t, 0.0, results[0].Limit)
}

func TestSectionLimit(t *testing.T) {
	limit, ok := finance.SectionLimit("80CCC", finance.DeclarantFlags{})
	assert.True(t, ok)
	assert.Equal(t, finance.Limit80CPool, limit)

	limit, ok = finance.SectionLimit("24(b)", finance.DeclarantFlags{})
	assert.True(t, ok)
	assert.Equal(t, finance.Limit24B, limit)

	_, ok = finance.SectionLimit("80ZZ", finance.DeclarantFlags{})
	assert.False(t, ok)
}
