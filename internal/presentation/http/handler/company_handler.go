package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/dto/response"
)

// CompanyHandler handles company profile HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// CompanyRequest represents the company create request body
type CompanyRequest struct {
	Name         string                  `json:"name" binding:"required,min=2,max=255"`
	LegalName    string                  `json:"legal_name" binding:"required,min=2,max=255"`
	GSTIN        *string                 `json:"gstin"`
	PAN          *string                 `json:"pan"`
	TAN          *string                 `json:"tan"`
	StateCode    string                  `json:"state_code"`
	AddressLine1 *string                 `json:"address_line1"`
	AddressLine2 *string                 `json:"address_line2"`
	City         *string                 `json:"city"`
	Pincode      *string                 `json:"pincode"`
	Email        *string                 `json:"email" binding:"omitempty,email"`
	Phone        *string                 `json:"phone"`
	Settings     *entity.CompanySettings `json:"settings"`
}

// UpdateCompanyRequest represents the company update request body
type UpdateCompanyRequest struct {
	Name         *string                 `json:"name" binding:"omitempty,min=2,max=255"`
	LegalName    *string                 `json:"legal_name" binding:"omitempty,min=2,max=255"`
	GSTIN        *string                 `json:"gstin"`
	PAN          *string                 `json:"pan"`
	TAN          *string                 `json:"tan"`
	StateCode    *string                 `json:"state_code"`
	AddressLine1 *string                 `json:"address_line1"`
	AddressLine2 *string                 `json:"address_line2"`
	City         *string                 `json:"city"`
	Pincode      *string                 `json:"pincode"`
	Email        *string                 `json:"email" binding:"omitempty,email"`
	Phone        *string                 `json:"phone"`
	Settings     *entity.CompanySettings `json:"settings"`
}

// Create handles company onboarding
// @Summary Create Company
// @Description Create the company profile
// @Tags company
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CompanyRequest true "Company data"
// @Success 201 {object} response.APIResponse
// @Router /company [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateCompanyInput{
		Name:         req.Name,
		LegalName:    req.LegalName,
		GSTIN:        req.GSTIN,
		PAN:          req.PAN,
		TAN:          req.TAN,
		StateCode:    req.StateCode,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		Pincode:      req.Pincode,
		Email:        req.Email,
		Phone:        req.Phone,
	}
	if req.Settings != nil {
		input.Settings = *req.Settings
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Company created successfully", company)
}

// Get handles getting the company profile
// @Summary Get Company
// @Description Get the company profile
// @Tags company
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /company [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companyService.GetCompany(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company retrieved successfully", company)
}

// Update handles updating the company profile
// @Summary Update Company
// @Description Update the company profile
// @Tags company
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateCompanyRequest true "Company data"
// @Success 200 {object} response.APIResponse
// @Router /company [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), &service.UpdateCompanyInput{
		Name:         req.Name,
		LegalName:    req.LegalName,
		GSTIN:        req.GSTIN,
		PAN:          req.PAN,
		TAN:          req.TAN,
		StateCode:    req.StateCode,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		Pincode:      req.Pincode,
		Email:        req.Email,
		Phone:        req.Phone,
		Settings:     req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company updated successfully", company)
}
