package repository

import (
	"context"
	"time"

	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	domainRepo "github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportsRepository struct {
	db *gorm.DB
}

// NewReportsRepository creates a new reports repository
func NewReportsRepository(db *gorm.DB) domainRepo.ReportsRepository {
	return &reportsRepository{db: db}
}

func (r *reportsRepository) GetTotalRevenue(ctx context.Context, from, to time.Time) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("invoice_date >= ? AND invoice_date <= ?", from, to).
		Where("status <> ?", enum.InvoiceStatusCancelled).
		Scan(&revenue).Error
	return revenue, err
}

func (r *reportsRepository) GetMonthlyRevenue(ctx context.Context, months int) ([]domainRepo.MonthlyRevenueResult, error) {
	var results []domainRepo.MonthlyRevenueResult

	since := time.Now().AddDate(0, -months, 0)
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Select("DATE_TRUNC('month', invoice_date) as month, COALESCE(SUM(total_amount), 0) as revenue").
		Where("invoice_date >= ?", since).
		Where("status <> ?", enum.InvoiceStatusCancelled).
		Group("DATE_TRUNC('month', invoice_date)").
		Order("month ASC").
		Scan(&results).Error

	return results, err
}

func (r *reportsRepository) GetReceivables(ctx context.Context) ([]domainRepo.ReceivableResult, error) {
	var results []domainRepo.ReceivableResult

	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Select(`customers.id as customer_id,
			customers.name as customer_name,
			COALESCE(SUM(invoices.total_amount - invoices.amount_paid), 0) as outstanding,
			COUNT(invoices.id) as invoice_count`).
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.status = ?", enum.InvoiceStatusSent).
		Where("invoices.total_amount > invoices.amount_paid").
		Group("customers.id, customers.name").
		Order("outstanding DESC").
		Scan(&results).Error

	return results, err
}

func (r *reportsRepository) GetGSTSummary(ctx context.Context, from, to time.Time) ([]domainRepo.GSTSummaryResult, error) {
	var results []domainRepo.GSTSummaryResult

	err := r.db.WithContext(ctx).Model(&entity.InvoiceItem{}).
		Select(`invoice_items.tax_rate,
			COALESCE(SUM(invoice_items.taxable_value), 0) as taxable_value,
			COALESCE(SUM(CASE WHEN invoices.inter_state THEN 0 ELSE invoice_items.tax_amount / 2 END), 0) as cgst,
			COALESCE(SUM(CASE WHEN invoices.inter_state THEN 0 ELSE invoice_items.tax_amount / 2 END), 0) as sgst,
			COALESCE(SUM(CASE WHEN invoices.inter_state THEN invoice_items.tax_amount ELSE 0 END), 0) as igst`).
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoices.invoice_date >= ? AND invoices.invoice_date <= ?", from, to).
		Where("invoices.status <> ?", enum.InvoiceStatusCancelled).
		Group("invoice_items.tax_rate").
		Order("invoice_items.tax_rate ASC").
		Scan(&results).Error

	return results, err
}

func (r *reportsRepository) GetTDSSummary(ctx context.Context, from, to time.Time) ([]domainRepo.TDSSummaryResult, error) {
	var results []domainRepo.TDSSummaryResult

	err := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Select(`tds_section as section,
			COALESCE(SUM(total_amount), 0) as gross_amount,
			COALESCE(SUM(tds_amount), 0) as tds_amount,
			COUNT(id) as bill_count`).
		Where("bill_date >= ? AND bill_date <= ?", from, to).
		Where("tds_section IS NOT NULL").
		Where("status <> ?", enum.BillStatusCancelled).
		Group("tds_section").
		Order("tds_section ASC").
		Scan(&results).Error

	return results, err
}

func (r *reportsRepository) GetPayrollCost(ctx context.Context, from, to time.Time) (float64, float64, error) {
	var totals struct {
		Gross float64
		Net   float64
	}

	err := r.db.WithContext(ctx).Model(&entity.PayrollRun{}).
		Select("COALESCE(SUM(gross_total), 0) as gross, COALESCE(SUM(net_total), 0) as net").
		Where("status <> ?", enum.PayrollStatusDraft).
		Where("MAKE_DATE(year, month, 1) >= ? AND MAKE_DATE(year, month, 1) <= ?", from, to).
		Scan(&totals).Error

	return totals.Gross, totals.Net, err
}
