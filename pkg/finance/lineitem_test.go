package finance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sahajbooks/sahaj-api/pkg/finance"
)

func TestComputeLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		qty      float64
		price    float64
		discount float64
		tax      float64
		want     float64
	}{
		{"plain", 2, 500, 0, 0, 1000},
		{"with gst", 2, 500, 0, 18, 1180},
		{"discount before tax", 1, 1000, 10, 18, 1062},
		{"fractional qty", 2.5, 99.99, 0, 0, 249.98},
		{"zero qty", 0, 500, 0, 18, 0},
		{"full discount", 3, 100, 100, 18, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := finance.ComputeLineTotal(tt.qty, tt.price, tt.discount, tt.tax)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeLineTotalRejectsBadInput(t *testing.T) {
	_, err := finance.ComputeLineTotal(-1, 100, 0, 0)
	assert.ErrorIs(t, err, finance.ErrNegativeAmount)

	_, err = finance.ComputeLineTotal(1, -100, 0, 0)
	assert.ErrorIs(t, err, finance.ErrNegativeAmount)

	_, err = finance.ComputeLineTotal(1, 100, 120, 0)
	assert.ErrorIs(t, err, finance.ErrRateOutOfRange)

	_, err = finance.ComputeLineTotal(1, 100, 0, -5)
	assert.ErrorIs(t, err, finance.ErrRateOutOfRange)
}

func TestItemizedTotals(t *testing.T) {
	// invoice with [{qty:2, price:500, tax:18}] and no document discount
	totals, err := finance.ItemizedTotals([]finance.LineItem{
		{Quantity: 2, UnitPrice: 500, TaxRate: 18},
	}, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, totals.SubTotal)
	assert.Equal(t, 180.0, totals.TaxAmount)
	assert.Equal(t, 1180.0, totals.TotalAmount)
}

func TestItemizedTotalsMixedRates(t *testing.T) {
	totals, err := finance.ItemizedTotals([]finance.LineItem{
		{Quantity: 1, UnitPrice: 100, TaxRate: 5},
		{Quantity: 3, UnitPrice: 200, DiscountRate: 10, TaxRate: 12},
	}, 50)
	assert.NoError(t, err)
	assert.Equal(t, 640.0, totals.SubTotal)       // 100 + 540
	assert.Equal(t, 69.8, totals.TaxAmount)       // 5 + 64.80
	assert.Equal(t, 659.8, totals.TotalAmount)    // 640 + 69.80 - 50
	assert.Equal(t, 50.0, totals.DiscountAmount)
}

func TestItemizedTotalsClampsAggregateOnly(t *testing.T) {
	// discount larger than the document keeps the total at zero
	totals, err := finance.ItemizedTotals([]finance.LineItem{
		{Quantity: 1, UnitPrice: 10},
	}, 100)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, totals.TotalAmount)

	// but an invalid line is an error, not a clamp
	_, err = finance.ItemizedTotals([]finance.LineItem{
		{Quantity: -1, UnitPrice: 10},
	}, 0)
	assert.Error(t, err)
}

func TestDocumentLevelTotals(t *testing.T) {
	totals, err := finance.DocumentLevelTotals(1000, 18, 5, 75)
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, totals.SubTotal)
	assert.Equal(t, 180.0, totals.TaxAmount)
	assert.Equal(t, 50.0, totals.DiscountAmount)
	assert.Equal(t, 1205.0, totals.TotalAmount)

	_, err = finance.DocumentLevelTotals(1000, 101, 0, 0)
	assert.ErrorIs(t, err, finance.ErrRateOutOfRange)
}

func TestSplitGST(t *testing.T) {
	intra := finance.SplitGST(180, false)
	assert.Equal(t, 90.0, intra.CGST)
	assert.Equal(t, 90.0, intra.SGST)
	assert.Equal(t, 0.0, intra.IGST)

	// odd paise remainder lands on SGST, heads still sum to the tax
	odd := finance.SplitGST(0.03, false)
	assert.Equal(t, 0.02, odd.CGST)
	assert.Equal(t, 0.01, odd.SGST)

	inter := finance.SplitGST(180, true)
	assert.Equal(t, 180.0, inter.IGST)
	assert.Equal(t, 0.0, inter.CGST)
}

func TestRound2HalfUp(t *testing.T) {
	assert.Equal(t, 2.68, finance.Round2(2.675))
	assert.Equal(t, 0.01, finance.Round2(0.005))
	assert.Equal(t, 100.0, finance.Round2(99.999))
}
