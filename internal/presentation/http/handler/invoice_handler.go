package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// InvoiceItemRequest represents a line item in the request
type InvoiceItemRequest struct {
	ProductID    *string `json:"product_id"`
	Description  string  `json:"description"`
	HSNCode      *string `json:"hsn_code"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice    float64 `json:"unit_price" binding:"min=0"`
	DiscountRate float64 `json:"discount_rate" binding:"min=0,max=100"`
	TaxRate      float64 `json:"tax_rate" binding:"min=0,max=100"`
}

// InvoiceRequest represents the invoice create/update request body
type InvoiceRequest struct {
	CustomerID     *string              `json:"customer_id"`
	InvoiceDate    string               `json:"invoice_date" binding:"required"`
	DueDate        *string              `json:"due_date"`
	DiscountAmount float64              `json:"discount_amount" binding:"min=0"`
	ShippingAmount float64              `json:"shipping_amount" binding:"min=0"`
	Note           *string              `json:"note"`
	Items          []InvoiceItemRequest `json:"items" binding:"required,min=1"`
}

func parseInvoiceItems(items []InvoiceItemRequest) ([]service.InvoiceItemInput, bool) {
	inputs := make([]service.InvoiceItemInput, len(items))
	for i, item := range items {
		var productID *uuid.UUID
		if item.ProductID != nil && *item.ProductID != "" {
			parsed, err := uuid.Parse(*item.ProductID)
			if err != nil {
				return nil, false
			}
			productID = &parsed
		}
		inputs[i] = service.InvoiceItemInput{
			ProductID:    productID,
			Description:  item.Description,
			HSNCode:      item.HSNCode,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			DiscountRate: item.DiscountRate,
			TaxRate:      item.TaxRate,
		}
	}
	return inputs, true
}

// List handles listing invoices
// @Summary List Invoices
// @Description Get all invoices with pagination and filtering
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Param customer_id query string false "Customer filter"
// @Param from query string false "Start date YYYY-MM-DD"
// @Param to query string false "End date YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input := &service.ListInvoicesInput{
		UserID:       *userID,
		IsSuperAdmin: IsSuperAdmin(c),
		Pagination:   paginationFromQuery(c),
		Search:       c.Query("search"),
	}

	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.InvoiceStatus(parsed)
			input.Status = &st
		}
	}
	if cid := c.Query("customer_id"); cid != "" {
		if id, err := uuid.Parse(cid); err == nil {
			input.CustomerID = &id
		}
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			input.FromDate = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			input.ToDate = &t
		}
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting a single invoice
// @Summary Get Invoice
// @Description Get an invoice with its line items
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Create handles creating an invoice
// @Summary Create Invoice
// @Description Create a new draft invoice
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body InvoiceRequest true "Invoice data"
// @Success 201 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	invoiceDate, err := time.Parse("2006-01-02", req.InvoiceDate)
	if err != nil {
		response.BadRequest(c, "Invalid invoice date. Use YYYY-MM-DD")
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			response.BadRequest(c, "Invalid due date. Use YYYY-MM-DD")
			return
		}
		dueDate = &parsed
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil && *req.CustomerID != "" {
		parsed, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		customerID = &parsed
	}

	items, ok := parseInvoiceItems(req.Items)
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		UserID:         *userID,
		CustomerID:     customerID,
		InvoiceDate:    invoiceDate,
		DueDate:        dueDate,
		DiscountAmount: req.DiscountAmount,
		ShippingAmount: req.ShippingAmount,
		Note:           req.Note,
		Items:          items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Update handles updating a draft invoice
// @Summary Update Invoice
// @Description Update a draft invoice
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body InvoiceRequest true "Invoice data"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	invoiceDate, err := time.Parse("2006-01-02", req.InvoiceDate)
	if err != nil {
		response.BadRequest(c, "Invalid invoice date. Use YYYY-MM-DD")
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			response.BadRequest(c, "Invalid due date. Use YYYY-MM-DD")
			return
		}
		dueDate = &parsed
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil && *req.CustomerID != "" {
		parsed, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		customerID = &parsed
	}

	items, ok := parseInvoiceItems(req.Items)
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), &service.UpdateInvoiceInput{
		UserID:         *userID,
		ID:             id,
		IsSuperAdmin:   IsSuperAdmin(c),
		CustomerID:     customerID,
		InvoiceDate:    invoiceDate,
		DueDate:        dueDate,
		DiscountAmount: req.DiscountAmount,
		ShippingAmount: req.ShippingAmount,
		Note:           req.Note,
		Items:          items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Send handles sending an invoice to the customer
// @Summary Send Invoice
// @Description Mark a draft invoice sent and email it to the customer
// @Tags invoices
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.SendInvoice(c.Request.Context(), *userID, id, IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice sent successfully", invoice)
}

// RecordPayment handles recording a payment against an invoice
// @Summary Record Payment
// @Description Apply a payment to a sent invoice
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		UserID:       *userID,
		ID:           id,
		IsSuperAdmin: IsSuperAdmin(c),
		Amount:       req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", invoice)
}

// Cancel handles cancelling an invoice
// @Summary Cancel Invoice
// @Description Cancel an unpaid invoice
// @Tags invoices
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 204
// @Router /invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.CancelInvoice(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Delete handles deleting a draft invoice
// @Summary Delete Invoice
// @Description Delete a draft invoice
// @Tags invoices
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 204
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
