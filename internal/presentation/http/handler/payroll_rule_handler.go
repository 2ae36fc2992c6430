package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/dto/response"
)

// PayrollRuleHandler handles calculation rule HTTP requests
type PayrollRuleHandler struct {
	ruleService *service.PayrollRuleService
}

// NewPayrollRuleHandler creates a new payroll rule handler
func NewPayrollRuleHandler(ruleService *service.PayrollRuleService) *PayrollRuleHandler {
	return &PayrollRuleHandler{ruleService: ruleService}
}

// RuleRequest represents the rule create request body
type RuleRequest struct {
	Name        string            `json:"name" binding:"required,min=2,max=255"`
	Code        string            `json:"code" binding:"required,max=50"`
	IsDeduction bool              `json:"is_deduction"`
	Config      entity.RuleConfig `json:"config" binding:"required"`
}

// UpdateRuleRequest represents the rule update request body
type UpdateRuleRequest struct {
	Name        *string            `json:"name" binding:"omitempty,min=2,max=255"`
	IsDeduction *bool              `json:"is_deduction"`
	IsActive    *bool              `json:"is_active"`
	Config      *entity.RuleConfig `json:"config"`
}

// List handles listing calculation rules
// @Summary List Calculation Rules
// @Description Get all payroll calculation rules
// @Tags payroll-rules
// @Security BearerAuth
// @Produce json
// @Param active_only query bool false "Only active rules"
// @Success 200 {object} response.APIResponse
// @Router /payroll/rules [get]
func (h *PayrollRuleHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var scopeID uuid.UUID
	if !IsSuperAdmin(c) {
		scopeID = *userID
	}

	rules, err := h.ruleService.ListRules(c.Request.Context(), scopeID, c.Query("active_only") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rules retrieved successfully", rules)
}

// Get handles getting a single rule
// @Summary Get Calculation Rule
// @Description Get a payroll calculation rule by ID
// @Tags payroll-rules
// @Security BearerAuth
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} response.APIResponse
// @Router /payroll/rules/{id} [get]
func (h *PayrollRuleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid rule ID")
		return
	}

	rule, err := h.ruleService.GetRule(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rule retrieved successfully", rule)
}

// Create handles creating a rule
// @Summary Create Calculation Rule
// @Description Create a new payroll calculation rule
// @Tags payroll-rules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RuleRequest true "Rule data"
// @Success 201 {object} response.APIResponse
// @Router /payroll/rules [post]
func (h *PayrollRuleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	rule, err := h.ruleService.CreateRule(c.Request.Context(), &service.CreateRuleInput{
		UserID:      *userID,
		Name:        req.Name,
		Code:        req.Code,
		IsDeduction: req.IsDeduction,
		Config:      req.Config,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Rule created successfully", rule)
}

// Update handles updating a rule
// @Summary Update Calculation Rule
// @Description Update an existing payroll calculation rule
// @Tags payroll-rules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param request body UpdateRuleRequest true "Rule data"
// @Success 200 {object} response.APIResponse
// @Router /payroll/rules/{id} [put]
func (h *PayrollRuleHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid rule ID")
		return
	}

	var req UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	rule, err := h.ruleService.UpdateRule(c.Request.Context(), &service.UpdateRuleInput{
		UserID:       *userID,
		ID:           id,
		IsSuperAdmin: IsSuperAdmin(c),
		Name:         req.Name,
		IsDeduction:  req.IsDeduction,
		IsActive:     req.IsActive,
		Config:       req.Config,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rule updated successfully", rule)
}

// Delete handles deleting a rule
// @Summary Delete Calculation Rule
// @Description Delete a payroll calculation rule
// @Tags payroll-rules
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Success 204
// @Router /payroll/rules/{id} [delete]
func (h *PayrollRuleHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid rule ID")
		return
	}

	if err := h.ruleService.DeleteRule(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ValidateFormula handles checking a formula expression
// @Summary Validate Formula
// @Description Parse a formula and evaluate it against sample payroll figures
// @Tags payroll-rules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /payroll/rules/validate-formula [post]
func (h *PayrollRuleHandler) ValidateFormula(c *gin.Context) {
	var req struct {
		Expression string `json:"expression" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result := h.ruleService.ValidateFormula(req.Expression)
	response.OK(c, "Formula validated", result)
}

// Preview handles trial-running a rule config
// @Summary Preview Calculation
// @Description Evaluate a rule config against given payslip figures without saving
// @Tags payroll-rules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /payroll/rules/preview [post]
func (h *PayrollRuleHandler) Preview(c *gin.Context) {
	var req struct {
		Config entity.RuleConfig `json:"config" binding:"required"`
		Basic  float64           `json:"basic" binding:"min=0"`
		Gross  float64           `json:"gross" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result := h.ruleService.PreviewCalculation(&req.Config, req.Basic, req.Gross)
	response.OK(c, "Calculation previewed", result)
}
