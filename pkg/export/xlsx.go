// Package export renders back-office registers as xlsx workbooks for
// download. Registers are flat row projections of documents; building the
// rows is the caller's job.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// InvoiceRow is one line of the invoice register.
type InvoiceRow struct {
	Number    string
	Date      string
	Customer  string
	GSTIN     string
	SubTotal  float64
	CGST      float64
	SGST      float64
	IGST      float64
	Total     float64
	Status    string
}

// PayrollRow is one line of the payroll register.
type PayrollRow struct {
	Employee        string
	PAN             string
	Period          string
	Basic           float64
	HRA             float64
	Allowances      float64
	Gross           float64
	PFEmployee      float64
	ESIEmployee     float64
	ProfessionalTax float64
	TDS             float64
	NetPay          float64
}

// InvoiceRegister builds a single-sheet workbook listing invoices with
// their GST head breakup.
func InvoiceRegister(rows []InvoiceRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Invoice Register"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Invoice No", "Date", "Customer", "GSTIN", "Taxable Value", "CGST", "SGST", "IGST", "Total", "Status"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := []interface{}{
			row.Number, row.Date, row.Customer, row.GSTIN,
			row.SubTotal, row.CGST, row.SGST, row.IGST, row.Total, row.Status,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// PayrollRegister builds a single-sheet workbook listing payslips for a
// payroll run.
func PayrollRegister(rows []PayrollRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Payroll Register"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Employee", "PAN", "Period", "Basic", "HRA", "Allowances", "Gross", "PF", "ESI", "Prof Tax", "TDS", "Net Pay"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := []interface{}{
			row.Employee, row.PAN, row.Period,
			row.Basic, row.HRA, row.Allowances, row.Gross,
			row.PFEmployee, row.ESIEmployee, row.ProfessionalTax, row.TDS, row.NetPay,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
