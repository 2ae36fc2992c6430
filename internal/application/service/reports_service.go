package service

import (
	"context"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
	"github.com/sahajbooks/sahaj-api/pkg/export"
	"github.com/sahajbooks/sahaj-api/pkg/finance"
)

// ReportsService aggregates the books into dashboard figures, filing
// summaries and downloadable registers.
type ReportsService struct {
	reportsRepo repository.ReportsRepository
	invoiceRepo repository.InvoiceRepository
	billRepo    repository.BillRepository
	payrollRepo repository.PayrollRepository
}

// NewReportsService creates a new reports service
func NewReportsService(
	reportsRepo repository.ReportsRepository,
	invoiceRepo repository.InvoiceRepository,
	billRepo repository.BillRepository,
	payrollRepo repository.PayrollRepository,
) *ReportsService {
	return &ReportsService{
		reportsRepo: reportsRepo,
		invoiceRepo: invoiceRepo,
		billRepo:    billRepo,
		payrollRepo: payrollRepo,
	}
}

// DashboardSummary is the headline view of the books
type DashboardSummary struct {
	TotalRevenue     float64                           `json:"total_revenue"`
	TotalOutstanding float64                           `json:"total_outstanding"`
	PayrollGross     float64                           `json:"payroll_gross"`
	PayrollNet       float64                           `json:"payroll_net"`
	MonthlyRevenue   []repository.MonthlyRevenueResult `json:"monthly_revenue"`
	TopReceivables   []repository.ReceivableResult     `json:"top_receivables"`
}

// GetDashboardSummary builds the dashboard for a period
func (s *ReportsService) GetDashboardSummary(ctx context.Context, from, to time.Time, months int) (*DashboardSummary, error) {
	if months <= 0 {
		months = 12
	}

	revenue, err := s.reportsRepo.GetTotalRevenue(ctx, from, to)
	if err != nil {
		return nil, err
	}

	monthly, err := s.reportsRepo.GetMonthlyRevenue(ctx, months)
	if err != nil {
		return nil, err
	}

	receivables, err := s.reportsRepo.GetReceivables(ctx)
	if err != nil {
		return nil, err
	}
	var outstanding float64
	for _, r := range receivables {
		outstanding += r.Outstanding
	}
	if len(receivables) > 10 {
		receivables = receivables[:10]
	}

	gross, net, err := s.reportsRepo.GetPayrollCost(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalRevenue:     finance.Round2(revenue),
		TotalOutstanding: finance.Round2(outstanding),
		PayrollGross:     finance.Round2(gross),
		PayrollNet:       finance.Round2(net),
		MonthlyRevenue:   monthly,
		TopReceivables:   receivables,
	}, nil
}

// GetGSTSummary returns output tax grouped by rate for a filing period
func (s *ReportsService) GetGSTSummary(ctx context.Context, from, to time.Time) ([]repository.GSTSummaryResult, error) {
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("Period end precedes its start")
	}
	return s.reportsRepo.GetGSTSummary(ctx, from, to)
}

// GetTDSSummary returns withheld tax grouped by section for a filing period
func (s *ReportsService) GetTDSSummary(ctx context.Context, from, to time.Time) ([]repository.TDSSummaryResult, error) {
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("Period end precedes its start")
	}
	return s.reportsRepo.GetTDSSummary(ctx, from, to)
}

// ExportInvoiceRegister builds the invoice register workbook for a period
func (s *ReportsService) ExportInvoiceRegister(ctx context.Context, from, to time.Time) (*excelize.File, error) {
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("Period end precedes its start")
	}

	invoices, err := s.invoiceRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]export.InvoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		customer := ""
		gstin := ""
		if inv.Customer != nil {
			customer = inv.Customer.Name
			if inv.Customer.GSTIN != nil {
				gstin = *inv.Customer.GSTIN
			}
		}
		rows = append(rows, export.InvoiceRow{
			Number:   inv.InvoiceNumber,
			Date:     inv.InvoiceDate.Format("02-01-2006"),
			Customer: customer,
			GSTIN:    gstin,
			SubTotal: inv.SubTotal,
			CGST:     inv.CGSTAmount,
			SGST:     inv.SGSTAmount,
			IGST:     inv.IGSTAmount,
			Total:    inv.TotalAmount,
			Status:   inv.Status.String(),
		})
	}

	return export.InvoiceRegister(rows)
}

// ExportPayrollRegister builds the payroll register workbook for a period
func (s *ReportsService) ExportPayrollRegister(ctx context.Context, year, month int) (*excelize.File, error) {
	run, err := s.payrollRepo.GetByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, apperror.NewNotFoundError("Payroll run")
	}

	run, err = s.payrollRepo.GetWithPayslips(ctx, run.ID)
	if err != nil {
		return nil, err
	}

	rows := make([]export.PayrollRow, 0, len(run.Payslips))
	for _, slip := range run.Payslips {
		pan := ""
		if slip.Employee.PAN != nil {
			pan = *slip.Employee.PAN
		}
		rows = append(rows, export.PayrollRow{
			Employee:        slip.Employee.FullName(),
			PAN:             pan,
			Period:          run.Period(),
			Basic:           slip.Basic,
			HRA:             slip.HRA,
			Allowances:      slip.OtherEarnings,
			Gross:           slip.GrossPay,
			PFEmployee:      slip.PFEmployee,
			ESIEmployee:     slip.ESIEmployee,
			ProfessionalTax: slip.ProfessionalTax,
			TDS:             slip.TDSAmount,
			NetPay:          slip.NetPay,
		})
	}

	return export.PayrollRegister(rows)
}
