package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/dto/response"
)

// VendorHandler handles vendor-related HTTP requests
type VendorHandler struct {
	vendorService *service.VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// VendorRequest represents the vendor create request body
type VendorRequest struct {
	Name              string  `json:"name" binding:"required,min=2,max=255"`
	Email             *string `json:"email" binding:"omitempty,email"`
	Phone             *string `json:"phone"`
	GSTIN             *string `json:"gstin"`
	PAN               *string `json:"pan"`
	StateCode         string  `json:"state_code"`
	DefaultTDSSection *string `json:"default_tds_section"`
	Address           *string `json:"address"`
	AccountHolder     *string `json:"account_holder"`
	AccountNumber     *string `json:"account_number"`
	BankName          *string `json:"bank_name"`
	IFSC              *string `json:"ifsc"`
}

// List handles listing vendors
// @Summary List Vendors
// @Description Get all vendors with pagination and search
// @Tags vendors
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Success 200 {object} response.APIResponse
// @Router /vendors [get]
func (h *VendorHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)
	params := paginationFromQuery(c)
	search := c.Query("search")

	result, err := h.vendorService.ListVendors(c.Request.Context(), *userID, params, search, isSuperAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Vendors retrieved successfully", result)
}

// Create handles creating a vendor
// @Summary Create Vendor
// @Description Create a new vendor
// @Tags vendors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body VendorRequest true "Vendor data"
// @Success 201 {object} response.APIResponse
// @Router /vendors [post]
func (h *VendorHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), &service.CreateVendorInput{
		UserID:            *userID,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		GSTIN:             req.GSTIN,
		PAN:               req.PAN,
		StateCode:         req.StateCode,
		DefaultTDSSection: req.DefaultTDSSection,
		Address:           req.Address,
		AccountHolder:     req.AccountHolder,
		AccountNumber:     req.AccountNumber,
		BankName:          req.BankName,
		IFSC:              req.IFSC,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Vendor created successfully", vendor)
}

// Get handles getting a single vendor
// @Summary Get Vendor
// @Description Get a vendor by ID
// @Tags vendors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} response.APIResponse
// @Router /vendors/{id} [get]
func (h *VendorHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid vendor ID")
		return
	}

	vendor, err := h.vendorService.GetVendor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vendor retrieved successfully", vendor)
}

// UpdateVendorRequest represents the vendor update request body
type UpdateVendorRequest struct {
	Name              *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email             *string `json:"email" binding:"omitempty,email"`
	Phone             *string `json:"phone"`
	GSTIN             *string `json:"gstin"`
	PAN               *string `json:"pan"`
	StateCode         *string `json:"state_code"`
	DefaultTDSSection *string `json:"default_tds_section"`
	Address           *string `json:"address"`
	AccountHolder     *string `json:"account_holder"`
	AccountNumber     *string `json:"account_number"`
	BankName          *string `json:"bank_name"`
	IFSC              *string `json:"ifsc"`
}

// Update handles updating a vendor
// @Summary Update Vendor
// @Description Update an existing vendor
// @Tags vendors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param request body UpdateVendorRequest true "Vendor data"
// @Success 200 {object} response.APIResponse
// @Router /vendors/{id} [put]
func (h *VendorHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid vendor ID")
		return
	}

	var req UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	vendor, err := h.vendorService.UpdateVendor(c.Request.Context(), &service.UpdateVendorInput{
		UserID:            *userID,
		ID:                id,
		IsSuperAdmin:      isSuperAdmin,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		GSTIN:             req.GSTIN,
		PAN:               req.PAN,
		StateCode:         req.StateCode,
		DefaultTDSSection: req.DefaultTDSSection,
		Address:           req.Address,
		AccountHolder:     req.AccountHolder,
		AccountNumber:     req.AccountNumber,
		BankName:          req.BankName,
		IFSC:              req.IFSC,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vendor updated successfully", vendor)
}

// Delete handles deleting a vendor
// @Summary Delete Vendor
// @Description Delete a vendor by ID
// @Tags vendors
// @Security BearerAuth
// @Param id path string true "Vendor ID"
// @Success 204
// @Router /vendors/{id} [delete]
func (h *VendorHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid vendor ID")
		return
	}

	if err := h.vendorService.DeleteVendor(c.Request.Context(), *userID, id, isSuperAdmin); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
