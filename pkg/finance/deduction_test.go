package finance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sahajbooks/sahaj-api/pkg/finance"
)

func TestComputeDeduction(t *testing.T) {
	tests := []struct {
		name     string
		gross    float64
		rate     float64
		deducted float64
		net      float64
	}{
		{"tds on professional fees", 50000, 10, 5000, 45000},
		{"contractor", 120000, 2, 2400, 117600},
		{"zero rate", 10000, 0, 0, 10000},
		{"zero gross", 0, 10, 0, 0},
		{"paise rounding", 333.33, 10, 33.33, 300},
		{"purchase of goods", 1000000, 0.1, 1000, 999000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := finance.ComputeDeduction(tt.gross, tt.rate)
			assert.NoError(t, err)
			assert.Equal(t, tt.deducted, d.Deducted)
			assert.Equal(t, tt.net, d.Net)
			// deducted + net reconstructs gross within rounding tolerance
			assert.InDelta(t, tt.gross, d.Deducted+d.Net, 0.01)
		})
	}
}

func TestComputeDeductionRejectsBadInput(t *testing.T) {
	_, err := finance.ComputeDeduction(-1, 10)
	assert.ErrorIs(t, err, finance.ErrNegativeAmount)

	_, err = finance.ComputeDeduction(1000, 101)
	assert.ErrorIs(t, err, finance.ErrRateOutOfRange)

	_, err = finance.ComputeDeduction(1000, -1)
	assert.ErrorIs(t, err, finance.ErrRateOutOfRange)
}

func TestTDSRate(t *testing.T) {
	rate, ok := finance.TDSRate("194J")
	assert.True(t, ok)
	assert.Equal(t, 10.0, rate)

	rate, ok = finance.TDSRate("194C")
	assert.True(t, ok)
	assert.Equal(t, 2.0, rate)

	_, ok = finance.TDSRate("999Z")
	assert.False(t, ok)

	assert.NotEmpty(t, finance.TDSSections())
}
