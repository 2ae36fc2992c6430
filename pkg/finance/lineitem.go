package finance

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeAmount is returned when a quantity or unit price is below zero.
	ErrNegativeAmount = errors.New("quantity and unit price must not be negative")
	// ErrRateOutOfRange is returned when a percentage rate falls outside [0,100].
	ErrRateOutOfRange = errors.New("rate must be between 0 and 100")
)

// LineItem is one document line: quantity, unit price and the percentage
// rates applied to it. Discount always reduces the taxable base before tax
// is applied.
type LineItem struct {
	Quantity     float64
	UnitPrice    float64
	DiscountRate float64
	TaxRate      float64
}

// Validate checks the line's ranges without computing anything.
func (li LineItem) Validate() error {
	if li.Quantity < 0 || li.UnitPrice < 0 {
		return ErrNegativeAmount
	}
	if li.DiscountRate < 0 || li.DiscountRate > 100 {
		return fmt.Errorf("discount %w", ErrRateOutOfRange)
	}
	if li.TaxRate < 0 || li.TaxRate > 100 {
		return fmt.Errorf("tax %w", ErrRateOutOfRange)
	}
	return nil
}

// TaxableValue is the line amount after discount, before tax.
func (li LineItem) TaxableValue() float64 {
	return Round2(li.Quantity * li.UnitPrice * (1 - li.DiscountRate/100))
}

// TaxAmount is the tax charged on the discounted base.
func (li LineItem) TaxAmount() float64 {
	return Round2(li.TaxableValue() * li.TaxRate / 100)
}

// ComputeLineTotal returns quantity*unitPrice with discount applied before
// tax, rounded to two decimals. Out-of-range inputs are rejected, never
// clamped.
func ComputeLineTotal(quantity, unitPrice, discountRate, taxRate float64) (float64, error) {
	li := LineItem{Quantity: quantity, UnitPrice: unitPrice, DiscountRate: discountRate, TaxRate: taxRate}
	if err := li.Validate(); err != nil {
		return 0, err
	}
	return Round2(quantity * unitPrice * (1 - discountRate/100) * (1 + taxRate/100)), nil
}

// DocumentTotals is the aggregate of a document's lines.
type DocumentTotals struct {
	SubTotal       float64 `json:"sub_total"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	ShippingAmount float64 `json:"shipping_amount"`
	TotalAmount    float64 `json:"total_amount"`
}

// ItemizedTotals aggregates per-line amounts for documents whose tax is
// tracked per line (the invoice-with-items variant): the subtotal is the sum
// of discounted line values and the tax amount is the sum of per-line tax.
// A document-level discount amount is subtracted from the grand total only.
// Negative aggregates clamp to zero; an invalid line is an error.
func ItemizedTotals(items []LineItem, documentDiscount float64) (*DocumentTotals, error) {
	if documentDiscount < 0 {
		return nil, ErrNegativeAmount
	}

	var subtotal, tax float64
	for i, li := range items {
		if err := li.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		subtotal += li.TaxableValue()
		tax += li.TaxAmount()
	}

	totals := &DocumentTotals{
		SubTotal:       Round2(subtotal),
		DiscountAmount: Round2(documentDiscount),
		TaxAmount:      Round2(tax),
	}
	totals.TotalAmount = Round2(clampZero(totals.SubTotal + totals.TaxAmount - totals.DiscountAmount))
	return totals, nil
}

// DocumentLevelTotals aggregates for documents that apply a single tax and
// discount percentage to the whole subtotal (the quote variant). The two
// variants are intentionally not interchangeable.
func DocumentLevelTotals(subtotal, taxRate, discountRate, shipping float64) (*DocumentTotals, error) {
	if subtotal < 0 || shipping < 0 {
		return nil, ErrNegativeAmount
	}
	if taxRate < 0 || taxRate > 100 || discountRate < 0 || discountRate > 100 {
		return nil, ErrRateOutOfRange
	}

	totals := &DocumentTotals{
		SubTotal:       Round2(subtotal),
		TaxAmount:      Round2(subtotal * taxRate / 100),
		DiscountAmount: Round2(subtotal * discountRate / 100),
		ShippingAmount: Round2(shipping),
	}
	totals.TotalAmount = Round2(clampZero(totals.SubTotal + totals.TaxAmount - totals.DiscountAmount + totals.ShippingAmount))
	return totals, nil
}

// GSTBreakup is the tax amount split into its GST heads.
type GSTBreakup struct {
	CGST float64 `json:"cgst"`
	SGST float64 `json:"sgst"`
	IGST float64 `json:"igst"`
}

// SplitGST books the tax under IGST for inter-state supplies, otherwise
// splits it into equal CGST and SGST halves. Any rounding remainder of the
// half-split lands on SGST so the heads always sum to the tax amount.
func SplitGST(taxAmount float64, interState bool) GSTBreakup {
	if interState {
		return GSTBreakup{IGST: Round2(taxAmount)}
	}
	cgst := Round2(taxAmount / 2)
	return GSTBreakup{CGST: cgst, SGST: Round2(taxAmount - cgst)}
}
