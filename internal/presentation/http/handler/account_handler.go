package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/dto/response"
)

// AccountHandler handles chart-of-accounts HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// List handles listing the chart of accounts
// @Summary List Accounts
// @Description Get the chart of accounts, optionally filtered by type
// @Tags accounts
// @Security BearerAuth
// @Produce json
// @Param type query int false "Account type filter"
// @Param active_only query bool false "Only active accounts"
// @Success 200 {object} response.APIResponse
// @Router /accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	var accountType *enum.AccountType
	if t := c.Query("type"); t != "" {
		parsed, err := parseNonNegativeInt(t)
		if err != nil {
			response.BadRequest(c, "Invalid account type")
			return
		}
		at := enum.AccountType(parsed)
		accountType = &at
	}

	activeOnly := c.Query("active_only") == "true"

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), accountType, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Accounts retrieved successfully", accounts)
}

// Get handles getting a single account
// @Summary Get Account
// @Description Get a ledger account by ID
// @Tags accounts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.APIResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account retrieved successfully", account)
}

// Create handles creating an account
// @Summary Create Account
// @Description Create a new ledger account
// @Tags accounts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req struct {
		Code     string  `json:"code" binding:"required,max=20"`
		Name     string  `json:"name" binding:"required,min=2,max=255"`
		Type     int     `json:"type" binding:"min=0,max=4"`
		ParentID *string `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != nil && *req.ParentID != "" {
		parsed, err := uuid.Parse(*req.ParentID)
		if err != nil {
			response.BadRequest(c, "Invalid parent account ID")
			return
		}
		parentID = &parsed
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), &service.CreateAccountInput{
		Code:     req.Code,
		Name:     req.Name,
		Type:     enum.AccountType(req.Type),
		ParentID: parentID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Account created successfully", account)
}

// Update handles renaming or toggling an account
// @Summary Update Account
// @Description Rename an account or toggle its active flag
// @Tags accounts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.APIResponse
// @Router /accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID")
		return
	}

	var req struct {
		Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), &service.UpdateAccountInput{
		ID:       id,
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account updated successfully", account)
}

// Delete handles deleting a non-system account
// @Summary Delete Account
// @Description Delete a non-system ledger account
// @Tags accounts
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 204
// @Router /accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID")
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
