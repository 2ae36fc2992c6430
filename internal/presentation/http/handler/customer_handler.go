package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/dto/response"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CustomerRequest represents the customer create/update request body
type CustomerRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	GSTIN         *string `json:"gstin"`
	PAN           *string `json:"pan"`
	StateCode     string  `json:"state_code"`
	BillingAddr   *string `json:"billing_address"`
	ShippingAddr  *string `json:"shipping_address"`
	AccountHolder *string `json:"account_holder"`
	AccountNumber *string `json:"account_number"`
	BankName      *string `json:"bank_name"`
	IFSC          *string `json:"ifsc"`
}

// List handles listing customers
// @Summary List Customers
// @Description Get all customers with pagination and search
// @Tags customers
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Success 200 {object} response.APIResponse
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)
	params := paginationFromQuery(c)
	search := c.Query("search")

	result, err := h.customerService.ListCustomers(c.Request.Context(), *userID, params, search, isSuperAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Create handles creating a customer
// @Summary Create Customer
// @Description Create a new customer
// @Tags customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CustomerRequest true "Customer data"
// @Success 201 {object} response.APIResponse
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		UserID:        *userID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		GSTIN:         req.GSTIN,
		PAN:           req.PAN,
		StateCode:     req.StateCode,
		BillingAddr:   req.BillingAddr,
		ShippingAddr:  req.ShippingAddr,
		AccountHolder: req.AccountHolder,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		IFSC:          req.IFSC,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
// @Summary Get Customer
// @Description Get a customer by ID
// @Tags customers
// @Security BearerAuth
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.APIResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// UpdateCustomerRequest represents the customer update request body
type UpdateCustomerRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	GSTIN         *string `json:"gstin"`
	PAN           *string `json:"pan"`
	StateCode     *string `json:"state_code"`
	BillingAddr   *string `json:"billing_address"`
	ShippingAddr  *string `json:"shipping_address"`
	AccountHolder *string `json:"account_holder"`
	AccountNumber *string `json:"account_number"`
	BankName      *string `json:"bank_name"`
	IFSC          *string `json:"ifsc"`
}

// Update handles updating a customer
// @Summary Update Customer
// @Description Update an existing customer
// @Tags customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body UpdateCustomerRequest true "Customer data"
// @Success 200 {object} response.APIResponse
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		UserID:        *userID,
		ID:            id,
		IsSuperAdmin:  isSuperAdmin,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		GSTIN:         req.GSTIN,
		PAN:           req.PAN,
		StateCode:     req.StateCode,
		BillingAddr:   req.BillingAddr,
		ShippingAddr:  req.ShippingAddr,
		AccountHolder: req.AccountHolder,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		IFSC:          req.IFSC,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
// @Summary Delete Customer
// @Description Delete a customer by ID
// @Tags customers
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 204
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), *userID, id, isSuperAdmin); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// paginationFromQuery parses page/per_page query parameters with defaults
func paginationFromQuery(c *gin.Context) *pagination.PaginationParams {
	params := &pagination.PaginationParams{Page: 1, PerPage: 15}
	if p := c.Query("page"); p != "" {
		if parsed, err := parsePositiveInt(p); err == nil {
			params.Page = parsed
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if parsed, err := parsePositiveInt(pp); err == nil {
			params.PerPage = parsed
		}
	}
	return params
}
