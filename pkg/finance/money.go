package finance

import (
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum debit/credit difference (in rupees) at
// which a journal entry is still considered balanced.
const BalanceTolerance = 0.01

// Round2 rounds a monetary amount to two decimal places (paise precision)
// using half-up rounding. Decimal arithmetic is used so that amounts like
// 2.675 round to 2.68 rather than drifting on float representation.
func Round2(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}

// RoundRupee rounds a monetary amount to the nearest whole rupee, half-up.
// Salary components are conventionally held in whole rupees.
func RoundRupee(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(0).Float64()
	return v
}

// EqualWithin reports whether two amounts differ by less than tol.
func EqualWithin(a, b, tol float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < tol
}

// clampZero truncates negative aggregates to zero. Per-line negatives are
// validation errors and must be rejected before this is reached.
func clampZero(amount float64) float64 {
	if amount < 0 {
		return 0
	}
	return amount
}
