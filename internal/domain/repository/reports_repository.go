package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MonthlyRevenueResult represents invoiced revenue for one month
type MonthlyRevenueResult struct {
	Month   time.Time
	Revenue float64
}

// ReceivableResult represents an unpaid invoice balance per customer
type ReceivableResult struct {
	CustomerID   uuid.UUID
	CustomerName string
	Outstanding  float64
	InvoiceCount int
}

// GSTSummaryResult represents tax collected aggregated by rate
type GSTSummaryResult struct {
	TaxRate      float64
	TaxableValue float64
	CGST         float64
	SGST         float64
	IGST         float64
}

// TDSSummaryResult represents tax withheld aggregated by section
type TDSSummaryResult struct {
	Section     string
	GrossAmount float64
	TDSAmount   float64
	BillCount   int
}

// ReportsRepository defines interface for reporting/aggregation queries
type ReportsRepository interface {
	// GetTotalRevenue returns the invoiced total for the period, cancelled excluded
	GetTotalRevenue(ctx context.Context, from, to time.Time) (float64, error)

	// GetMonthlyRevenue returns invoiced revenue per month for the last N months
	GetMonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenueResult, error)

	// GetReceivables returns outstanding balances grouped by customer
	GetReceivables(ctx context.Context) ([]ReceivableResult, error)

	// GetGSTSummary returns tax collected grouped by rate for the period
	GetGSTSummary(ctx context.Context, from, to time.Time) ([]GSTSummaryResult, error)

	// GetTDSSummary returns tax withheld grouped by section for the period
	GetTDSSummary(ctx context.Context, from, to time.Time) ([]TDSSummaryResult, error)

	// GetPayrollCost returns gross and net payroll totals for the period
	GetPayrollCost(ctx context.Context, from, to time.Time) (gross float64, net float64, err error)
}
