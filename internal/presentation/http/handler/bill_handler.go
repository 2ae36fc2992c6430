package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/dto/response"
)

// BillHandler handles vendor bill HTTP requests
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// BillItemRequest represents a line item in the request
type BillItemRequest struct {
	ProductID   *string `json:"product_id"`
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitCost    float64 `json:"unit_cost" binding:"min=0"`
	TaxRate     float64 `json:"tax_rate" binding:"min=0,max=100"`
}

// BillRequest represents the bill create/update request body
type BillRequest struct {
	VendorID      *string           `json:"vendor_id"`
	VendorBillRef *string           `json:"vendor_bill_ref"`
	BillDate      string            `json:"bill_date" binding:"required"`
	DueDate       *string           `json:"due_date"`
	TDSSection    *string           `json:"tds_section"`
	Note          *string           `json:"note"`
	Items         []BillItemRequest `json:"items" binding:"required,min=1"`
}

func parseBillRequest(req *BillRequest) (*uuid.UUID, time.Time, *time.Time, []service.BillItemInput, string) {
	billDate, err := time.Parse("2006-01-02", req.BillDate)
	if err != nil {
		return nil, time.Time{}, nil, nil, "Invalid bill date. Use YYYY-MM-DD"
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, time.Time{}, nil, nil, "Invalid due date. Use YYYY-MM-DD"
		}
		dueDate = &parsed
	}

	var vendorID *uuid.UUID
	if req.VendorID != nil && *req.VendorID != "" {
		parsed, err := uuid.Parse(*req.VendorID)
		if err != nil {
			return nil, time.Time{}, nil, nil, "Invalid vendor ID"
		}
		vendorID = &parsed
	}

	items := make([]service.BillItemInput, len(req.Items))
	for i, item := range req.Items {
		var productID *uuid.UUID
		if item.ProductID != nil && *item.ProductID != "" {
			parsed, err := uuid.Parse(*item.ProductID)
			if err != nil {
				return nil, time.Time{}, nil, nil, "Invalid product ID"
			}
			productID = &parsed
		}
		items[i] = service.BillItemInput{
			ProductID:   productID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			TaxRate:     item.TaxRate,
		}
	}

	return vendorID, billDate, dueDate, items, ""
}

// List handles listing bills
// @Summary List Bills
// @Description Get all vendor bills with pagination and filtering
// @Tags bills
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Param vendor_id query string false "Vendor filter"
// @Param tds_section query string false "TDS section filter"
// @Success 200 {object} response.APIResponse
// @Router /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input := &service.ListBillsInput{
		UserID:       *userID,
		IsSuperAdmin: IsSuperAdmin(c),
		Pagination:   paginationFromQuery(c),
		Search:       c.Query("search"),
	}

	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.BillStatus(parsed)
			input.Status = &st
		}
	}
	if vid := c.Query("vendor_id"); vid != "" {
		if id, err := uuid.Parse(vid); err == nil {
			input.VendorID = &id
		}
	}
	if section := c.Query("tds_section"); section != "" {
		input.TDSSection = &section
	}

	result, err := h.billService.ListBills(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Get handles getting a single bill
// @Summary Get Bill
// @Description Get a bill with its line items
// @Tags bills
// @Security BearerAuth
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} response.APIResponse
// @Router /bills/{id} [get]
func (h *BillHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Create handles recording a bill
// @Summary Create Bill
// @Description Record a new vendor bill
// @Tags bills
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body BillRequest true "Bill data"
// @Success 201 {object} response.APIResponse
// @Router /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	vendorID, billDate, dueDate, items, errMsg := parseBillRequest(&req)
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), &service.CreateBillInput{
		UserID:        *userID,
		VendorID:      vendorID,
		VendorBillRef: req.VendorBillRef,
		BillDate:      billDate,
		DueDate:       dueDate,
		TDSSection:    req.TDSSection,
		Note:          req.Note,
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// Update handles updating a draft bill
// @Summary Update Bill
// @Description Update a draft bill
// @Tags bills
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param request body BillRequest true "Bill data"
// @Success 200 {object} response.APIResponse
// @Router /bills/{id} [put]
func (h *BillHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	vendorID, billDate, dueDate, items, errMsg := parseBillRequest(&req)
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), &service.UpdateBillInput{
		UserID:        *userID,
		ID:            id,
		IsSuperAdmin:  IsSuperAdmin(c),
		VendorID:      vendorID,
		VendorBillRef: req.VendorBillRef,
		BillDate:      billDate,
		DueDate:       dueDate,
		TDSSection:    req.TDSSection,
		Note:          req.Note,
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill updated successfully", bill)
}

// UpdateStatus handles moving a bill through its lifecycle
// @Summary Update Bill Status
// @Description Transition a bill's status
// @Tags bills
// @Security BearerAuth
// @Accept json
// @Param id path string true "Bill ID"
// @Success 200 {object} response.APIResponse
// @Router /bills/{id}/status [patch]
func (h *BillHandler) UpdateStatus(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req struct {
		Status int `json:"status" binding:"min=0,max=3"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	bill, err := h.billService.UpdateBillStatus(c.Request.Context(), *userID, id, enum.BillStatus(req.Status), IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill status updated successfully", bill)
}

// Delete handles deleting a draft bill
// @Summary Delete Bill
// @Description Delete a draft bill
// @Tags bills
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Success 204
// @Router /bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
