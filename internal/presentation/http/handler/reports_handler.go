package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/dto/response"
)

// ReportsHandler handles dashboard, filing summary and register export
// HTTP requests
type ReportsHandler struct {
	reportsService *service.ReportsService
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(reportsService *service.ReportsService) *ReportsHandler {
	return &ReportsHandler{reportsService: reportsService}
}

// parsePeriod reads from/to query dates, defaulting to the current
// fiscal year when absent. Indian fiscal years begin in April.
func parsePeriod(c *gin.Context) (time.Time, time.Time, string) {
	now := time.Now()
	from := time.Date(now.Year(), time.April, 1, 0, 0, 0, 0, time.UTC)
	if now.Month() < time.April {
		from = from.AddDate(-1, 0, 0)
	}
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, "Invalid from date. Use YYYY-MM-DD"
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, "Invalid to date. Use YYYY-MM-DD"
		}
		to = parsed
	}

	return from, to, ""
}

// Dashboard handles the dashboard summary
// @Summary Dashboard Summary
// @Description Get headline figures, monthly revenue and top receivables
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param months query int false "Months of revenue history"
// @Success 200 {object} response.APIResponse
// @Router /reports/dashboard [get]
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	from, to, errMsg := parsePeriod(c)
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}

	months := 12
	if v := c.Query("months"); v != "" {
		if parsed, err := parsePositiveInt(v); err == nil {
			months = parsed
		}
	}

	summary, err := h.reportsService.GetDashboardSummary(c.Request.Context(), from, to, months)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", summary)
}

// GSTSummary handles the GST filing summary
// @Summary GST Summary
// @Description Get output tax grouped by rate for a filing period
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /reports/gst-summary [get]
func (h *ReportsHandler) GSTSummary(c *gin.Context) {
	from, to, errMsg := parsePeriod(c)
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}

	summary, err := h.reportsService.GetGSTSummary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "GST summary retrieved successfully", summary)
}

// TDSSummary handles the TDS filing summary
// @Summary TDS Summary
// @Description Get withheld tax grouped by section for a filing period
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /reports/tds-summary [get]
func (h *ReportsHandler) TDSSummary(c *gin.Context) {
	from, to, errMsg := parsePeriod(c)
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}

	summary, err := h.reportsService.GetTDSSummary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "TDS summary retrieved successfully", summary)
}

// ExportInvoiceRegister handles downloading the invoice register workbook
// @Summary Export Invoice Register
// @Description Download the invoice register for a period as an Excel workbook
// @Tags reports
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200
// @Router /reports/invoice-register [get]
func (h *ReportsHandler) ExportInvoiceRegister(c *gin.Context) {
	from, to, errMsg := parsePeriod(c)
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}

	file, err := h.reportsService.ExportInvoiceRegister(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	fileName := fmt.Sprintf("invoice_register_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := file.Write(c.Writer); err != nil {
		response.InternalServerError(c, "Failed to write workbook")
	}
}

// ExportPayrollRegister handles downloading the payroll register workbook
// @Summary Export Payroll Register
// @Description Download the payroll register for a period as an Excel workbook
// @Tags reports
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Success 200
// @Router /reports/payroll-register [get]
func (h *ReportsHandler) ExportPayrollRegister(c *gin.Context) {
	year, err := parsePositiveInt(c.Query("year"))
	if err != nil {
		response.BadRequest(c, "Invalid year")
		return
	}
	month, err := parsePositiveInt(c.Query("month"))
	if err != nil {
		response.BadRequest(c, "Invalid month")
		return
	}

	file, err := h.reportsService.ExportPayrollRegister(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}

	fileName := fmt.Sprintf("payroll_register_%04d_%02d.xlsx", year, month)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := file.Write(c.Writer); err != nil {
		response.InternalServerError(c, "Failed to write workbook")
	}
}
