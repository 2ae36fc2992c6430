package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/dto/response"
)

// QuoteHandler handles quote-related HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// QuoteItemRequest represents a line item in the request
type QuoteItemRequest struct {
	ProductID   *string `json:"product_id"`
	ProductName string  `json:"product_name"`
	ProductCode string  `json:"product_code"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"min=0"`
}

// QuoteRequest represents the quote create/update request body
type QuoteRequest struct {
	CustomerID         *string            `json:"customer_id"`
	CustomerName       string             `json:"customer_name"`
	QuoteDate          string             `json:"quote_date" binding:"required"`
	ValidUntil         *string            `json:"valid_until"`
	TaxPercentage      float64            `json:"tax_percentage" binding:"min=0,max=100"`
	DiscountPercentage float64            `json:"discount_percentage" binding:"min=0,max=100"`
	ShippingAmount     float64            `json:"shipping_amount" binding:"min=0"`
	Note               *string            `json:"note"`
	Items              []QuoteItemRequest `json:"items" binding:"required,min=1"`
}

func parseQuoteRequest(req *QuoteRequest) (*uuid.UUID, time.Time, *time.Time, []service.QuoteItemInput, string) {
	quoteDate, err := time.Parse("2006-01-02", req.QuoteDate)
	if err != nil {
		return nil, time.Time{}, nil, nil, "Invalid quote date. Use YYYY-MM-DD"
	}

	var validUntil *time.Time
	if req.ValidUntil != nil && *req.ValidUntil != "" {
		parsed, err := time.Parse("2006-01-02", *req.ValidUntil)
		if err != nil {
			return nil, time.Time{}, nil, nil, "Invalid validity date. Use YYYY-MM-DD"
		}
		validUntil = &parsed
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil && *req.CustomerID != "" {
		parsed, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, time.Time{}, nil, nil, "Invalid customer ID"
		}
		customerID = &parsed
	}

	items := make([]service.QuoteItemInput, len(req.Items))
	for i, item := range req.Items {
		var productID *uuid.UUID
		if item.ProductID != nil && *item.ProductID != "" {
			parsed, err := uuid.Parse(*item.ProductID)
			if err != nil {
				return nil, time.Time{}, nil, nil, "Invalid product ID"
			}
			productID = &parsed
		}
		items[i] = service.QuoteItemInput{
			ProductID:   productID,
			ProductName: item.ProductName,
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	return customerID, quoteDate, validUntil, items, ""
}

// List handles listing quotes
// @Summary List Quotes
// @Description Get all quotes with pagination and filtering
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input := &service.ListQuotesInput{
		UserID:       *userID,
		IsSuperAdmin: IsSuperAdmin(c),
		Pagination:   paginationFromQuery(c),
		Search:       c.Query("search"),
	}

	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.QuoteStatus(parsed)
			input.Status = &st
		}
	}
	if cid := c.Query("customer_id"); cid != "" {
		if id, err := uuid.Parse(cid); err == nil {
			input.CustomerID = &id
		}
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotes retrieved successfully", result)
}

// Get handles getting a single quote
// @Summary Get Quote
// @Description Get a quote with its line items
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// Create handles creating a quote
// @Summary Create Quote
// @Description Create a new quote
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body QuoteRequest true "Quote data"
// @Success 201 {object} response.APIResponse
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerID, quoteDate, validUntil, items, errMsg := parseQuoteRequest(&req)
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), &service.CreateQuoteInput{
		UserID:             *userID,
		CustomerID:         customerID,
		CustomerName:       req.CustomerName,
		QuoteDate:          quoteDate,
		ValidUntil:         validUntil,
		TaxPercentage:      req.TaxPercentage,
		DiscountPercentage: req.DiscountPercentage,
		ShippingAmount:     req.ShippingAmount,
		Note:               req.Note,
		Items:              items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", quote)
}

// Update handles updating a quote
// @Summary Update Quote
// @Description Update a quote that has not been answered
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body QuoteRequest true "Quote data"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id} [put]
func (h *QuoteHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerID, quoteDate, validUntil, items, errMsg := parseQuoteRequest(&req)
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), &service.UpdateQuoteInput{
		UserID:             *userID,
		ID:                 id,
		IsSuperAdmin:       IsSuperAdmin(c),
		CustomerID:         customerID,
		CustomerName:       req.CustomerName,
		QuoteDate:          quoteDate,
		ValidUntil:         validUntil,
		TaxPercentage:      req.TaxPercentage,
		DiscountPercentage: req.DiscountPercentage,
		ShippingAmount:     req.ShippingAmount,
		Note:               req.Note,
		Items:              items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote updated successfully", quote)
}

// UpdateStatus handles moving a quote through its lifecycle
// @Summary Update Quote Status
// @Description Transition a quote's status
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id}/status [patch]
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req struct {
		Status int `json:"status" binding:"min=0,max=3"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quote, err := h.quoteService.UpdateQuoteStatus(c.Request.Context(), *userID, id, enum.QuoteStatus(req.Status), IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote status updated successfully", quote)
}

// Delete handles deleting a quote
// @Summary Delete Quote
// @Description Delete a quote that has not been accepted
// @Tags quotes
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 204
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
