package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/dto/response"
)

// TaxDeclarationHandler handles investment declaration HTTP requests
type TaxDeclarationHandler struct {
	declarationService *service.TaxDeclarationService
}

// NewTaxDeclarationHandler creates a new tax declaration handler
func NewTaxDeclarationHandler(declarationService *service.TaxDeclarationService) *TaxDeclarationHandler {
	return &TaxDeclarationHandler{declarationService: declarationService}
}

// DeclarationItemRequest represents one declared investment
type DeclarationItemRequest struct {
	Section  string  `json:"section" binding:"required,max=20"`
	Label    string  `json:"label" binding:"required,max=255"`
	Declared float64 `json:"declared" binding:"min=0"`
}

// DeclarationRequest represents the declaration submission body
type DeclarationRequest struct {
	EmployeeID string                   `json:"employee_id" binding:"required"`
	FiscalYear string                   `json:"fiscal_year" binding:"required"`
	Items      []DeclarationItemRequest `json:"items" binding:"required,min=1"`
}

// Submit handles submitting a declaration
// @Summary Submit Tax Declaration
// @Description Submit or replace an employee's investment declaration for a fiscal year
// @Tags declarations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body DeclarationRequest true "Declaration data"
// @Success 201 {object} response.APIResponse
// @Router /declarations [post]
func (h *TaxDeclarationHandler) Submit(c *gin.Context) {
	var req DeclarationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	items := make([]service.DeclarationItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.DeclarationItemInput{
			Section:  item.Section,
			Label:    item.Label,
			Declared: item.Declared,
		}
	}

	declaration, err := h.declarationService.SubmitDeclaration(c.Request.Context(), &service.SubmitDeclarationInput{
		EmployeeID: employeeID,
		FiscalYear: req.FiscalYear,
		Items:      items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Declaration submitted successfully", declaration)
}

// Get handles getting a declaration by ID
// @Summary Get Tax Declaration
// @Description Get a declaration with its items
// @Tags declarations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Declaration ID"
// @Success 200 {object} response.APIResponse
// @Router /declarations/{id} [get]
func (h *TaxDeclarationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid declaration ID")
		return
	}

	declaration, err := h.declarationService.GetDeclaration(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Declaration retrieved successfully", declaration)
}

// GetForEmployee handles getting an employee's declaration for a year
// @Summary Get Employee Declaration
// @Description Get an employee's declaration for a fiscal year
// @Tags declarations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Employee ID"
// @Param fiscal_year query string true "Fiscal year (e.g. 2025-2026)"
// @Success 200 {object} response.APIResponse
// @Router /employees/{id}/declarations [get]
func (h *TaxDeclarationHandler) GetForEmployee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	fiscalYear := c.Query("fiscal_year")
	if fiscalYear == "" {
		response.BadRequest(c, "Fiscal year is required")
		return
	}

	declaration, err := h.declarationService.GetEmployeeDeclaration(c.Request.Context(), id, fiscalYear)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Declaration retrieved successfully", declaration)
}

// List handles listing declarations for a fiscal year
// @Summary List Tax Declarations
// @Description Get all declarations for a fiscal year
// @Tags declarations
// @Security BearerAuth
// @Produce json
// @Param fiscal_year query string true "Fiscal year (e.g. 2025-2026)"
// @Success 200 {object} response.APIResponse
// @Router /declarations [get]
func (h *TaxDeclarationHandler) List(c *gin.Context) {
	fiscalYear := c.Query("fiscal_year")
	if fiscalYear == "" {
		response.BadRequest(c, "Fiscal year is required")
		return
	}

	declarations, err := h.declarationService.ListDeclarations(c.Request.Context(), fiscalYear)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Declarations retrieved successfully", declarations)
}

// Delete handles deleting a declaration
// @Summary Delete Tax Declaration
// @Description Delete a declaration
// @Tags declarations
// @Security BearerAuth
// @Param id path string true "Declaration ID"
// @Success 204
// @Router /declarations/{id} [delete]
func (h *TaxDeclarationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid declaration ID")
		return
	}

	if err := h.declarationService.DeleteDeclaration(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
