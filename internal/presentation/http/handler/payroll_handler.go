package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/dto/response"
)

// PayrollHandler handles payroll run and payslip HTTP requests
type PayrollHandler struct {
	payrollService *service.PayrollService
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(payrollService *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// CreateRun handles opening a draft payroll run
// @Summary Create Payroll Run
// @Description Open a draft payroll run for a period
// @Tags payroll
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /payroll/runs [post]
func (h *PayrollHandler) CreateRun(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Year  int `json:"year" binding:"required"`
		Month int `json:"month" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	run, err := h.payrollService.CreatePayrollRun(c.Request.Context(), *userID, req.Year, req.Month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payroll run created successfully", run)
}

// GetRun handles getting a run with its payslips
// @Summary Get Payroll Run
// @Description Get a payroll run with its payslips
// @Tags payroll
// @Security BearerAuth
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.APIResponse
// @Router /payroll/runs/{id} [get]
func (h *PayrollHandler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid run ID")
		return
	}

	run, err := h.payrollService.GetPayrollRun(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payroll run retrieved successfully", run)
}

// ListRuns handles listing payroll runs
// @Summary List Payroll Runs
// @Description Get all payroll runs with pagination
// @Tags payroll
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /payroll/runs [get]
func (h *PayrollHandler) ListRuns(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var scopeID uuid.UUID
	if !IsSuperAdmin(c) {
		scopeID = *userID
	}

	var status *enum.PayrollStatus
	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.PayrollStatus(parsed)
			status = &st
		}
	}

	result, err := h.payrollService.ListPayrollRuns(c.Request.Context(), scopeID, paginationFromQuery(c), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payroll runs retrieved successfully", result)
}

// ProcessRun handles processing a draft run
// @Summary Process Payroll Run
// @Description Compute payslips for every active employee and mark the run processed
// @Tags payroll
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.APIResponse
// @Router /payroll/runs/{id}/process [post]
func (h *PayrollHandler) ProcessRun(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid run ID")
		return
	}

	var req struct {
		TDSOverrides map[string]float64 `json:"tds_overrides"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	overrides := make(map[uuid.UUID]float64, len(req.TDSOverrides))
	for key, amount := range req.TDSOverrides {
		employeeID, err := uuid.Parse(key)
		if err != nil {
			response.BadRequest(c, "Invalid employee ID in TDS overrides")
			return
		}
		if amount < 0 {
			response.BadRequest(c, "TDS override cannot be negative")
			return
		}
		overrides[employeeID] = amount
	}

	run, err := h.payrollService.ProcessPayrollRun(c.Request.Context(), &service.ProcessPayrollRunInput{
		UserID:       *userID,
		RunID:        id,
		IsSuperAdmin: IsSuperAdmin(c),
		TDSOverrides: overrides,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payroll run processed successfully", run)
}

// MarkRunPaid handles marking a processed run paid
// @Summary Mark Payroll Paid
// @Description Transition a processed run to paid
// @Tags payroll
// @Security BearerAuth
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.APIResponse
// @Router /payroll/runs/{id}/pay [post]
func (h *PayrollHandler) MarkRunPaid(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid run ID")
		return
	}

	run, err := h.payrollService.MarkPayrollPaid(c.Request.Context(), *userID, id, IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payroll run marked paid successfully", run)
}

// DeleteRun handles deleting a draft run
// @Summary Delete Payroll Run
// @Description Delete a draft payroll run
// @Tags payroll
// @Security BearerAuth
// @Param id path string true "Run ID"
// @Success 204
// @Router /payroll/runs/{id} [delete]
func (h *PayrollHandler) DeleteRun(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid run ID")
		return
	}

	if err := h.payrollService.DeletePayrollRun(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetPayslip handles getting a single payslip
// @Summary Get Payslip
// @Description Get a payslip by ID
// @Tags payroll
// @Security BearerAuth
// @Produce json
// @Param id path string true "Payslip ID"
// @Success 200 {object} response.APIResponse
// @Router /payroll/payslips/{id} [get]
func (h *PayrollHandler) GetPayslip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payslip ID")
		return
	}

	slip, err := h.payrollService.GetPayslip(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payslip retrieved successfully", slip)
}

// ListEmployeePayslips handles listing an employee's fiscal-year payslips
// @Summary List Employee Payslips
// @Description Get an employee's payslips for the current fiscal year
// @Tags payroll
// @Security BearerAuth
// @Produce json
// @Param id path string true "Employee ID"
// @Param as_of query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.APIResponse
// @Router /employees/{id}/payslips [get]
func (h *PayrollHandler) ListEmployeePayslips(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	asOf := time.Now()
	if v := c.Query("as_of"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid date. Use YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	slips, err := h.payrollService.ListEmployeePayslips(c.Request.Context(), id, asOf)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payslips retrieved successfully", slips)
}
