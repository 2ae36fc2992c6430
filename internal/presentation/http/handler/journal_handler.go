package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/dto/response"
)

// JournalHandler handles journal entry HTTP requests
type JournalHandler struct {
	journalService *service.JournalService
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(journalService *service.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// JournalLineRequest represents one leg of an entry
type JournalLineRequest struct {
	AccountID string  `json:"account_id" binding:"required"`
	Debit     float64 `json:"debit" binding:"min=0"`
	Credit    float64 `json:"credit" binding:"min=0"`
	Memo      *string `json:"memo"`
}

// JournalEntryRequest represents the entry create/update request body
type JournalEntryRequest struct {
	EntryDate string               `json:"entry_date" binding:"required"`
	Narration string               `json:"narration" binding:"required,max=500"`
	Lines     []JournalLineRequest `json:"lines" binding:"required,min=2"`
}

func parseJournalRequest(req *JournalEntryRequest) (time.Time, []service.JournalLineInput, string) {
	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		return time.Time{}, nil, "Invalid entry date. Use YYYY-MM-DD"
	}

	lines := make([]service.JournalLineInput, len(req.Lines))
	for i, line := range req.Lines {
		accountID, err := uuid.Parse(line.AccountID)
		if err != nil {
			return time.Time{}, nil, "Invalid account ID"
		}
		lines[i] = service.JournalLineInput{
			AccountID: accountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
			Memo:      line.Memo,
		}
	}

	return entryDate, lines, ""
}

// List handles listing journal entries
// @Summary List Journal Entries
// @Description Get all journal entries with pagination and filtering
// @Tags journals
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Param account_id query string false "Account filter"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /journals [get]
func (h *JournalHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input := &service.ListJournalEntriesInput{
		UserID:       *userID,
		IsSuperAdmin: IsSuperAdmin(c),
		Pagination:   paginationFromQuery(c),
		Search:       c.Query("search"),
	}

	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.JournalStatus(parsed)
			input.Status = &st
		}
	}
	if aid := c.Query("account_id"); aid != "" {
		if id, err := uuid.Parse(aid); err == nil {
			input.AccountID = &id
		}
	}
	if from := c.Query("from"); from != "" {
		if parsed, err := time.Parse("2006-01-02", from); err == nil {
			input.FromDate = &parsed
		}
	}
	if to := c.Query("to"); to != "" {
		if parsed, err := time.Parse("2006-01-02", to); err == nil {
			input.ToDate = &parsed
		}
	}

	result, err := h.journalService.ListJournalEntries(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Journal entries retrieved successfully", result)
}

// Get handles getting a single entry
// @Summary Get Journal Entry
// @Description Get a journal entry with its lines
// @Tags journals
// @Security BearerAuth
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.APIResponse
// @Router /journals/{id} [get]
func (h *JournalHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Journal entry retrieved successfully", entry)
}

// Create handles creating a draft entry
// @Summary Create Journal Entry
// @Description Create a new draft journal entry
// @Tags journals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body JournalEntryRequest true "Entry data"
// @Success 201 {object} response.APIResponse
// @Router /journals [post]
func (h *JournalHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entryDate, lines, errMsg := parseJournalRequest(&req)
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), &service.CreateJournalEntryInput{
		UserID:    *userID,
		EntryDate: entryDate,
		Narration: req.Narration,
		Lines:     lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Journal entry created successfully", entry)
}

// Update handles updating a draft entry
// @Summary Update Journal Entry
// @Description Update a draft journal entry
// @Tags journals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body JournalEntryRequest true "Entry data"
// @Success 200 {object} response.APIResponse
// @Router /journals/{id} [put]
func (h *JournalHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	var req JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entryDate, lines, errMsg := parseJournalRequest(&req)
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}

	entry, err := h.journalService.UpdateJournalEntry(c.Request.Context(), &service.UpdateJournalEntryInput{
		UserID:       *userID,
		ID:           id,
		IsSuperAdmin: IsSuperAdmin(c),
		EntryDate:    entryDate,
		Narration:    req.Narration,
		Lines:        lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Journal entry updated successfully", entry)
}

// Post handles posting a draft entry
// @Summary Post Journal Entry
// @Description Post a balanced draft entry to the ledger
// @Tags journals
// @Security BearerAuth
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.APIResponse
// @Router /journals/{id}/post [post]
func (h *JournalHandler) Post(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.journalService.PostJournalEntry(c.Request.Context(), *userID, id, IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Journal entry posted successfully", entry)
}

// Reverse handles reversing a posted entry
// @Summary Reverse Journal Entry
// @Description Create and post a mirror entry that undoes a posted entry
// @Tags journals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Success 201 {object} response.APIResponse
// @Router /journals/{id}/reverse [post]
func (h *JournalHandler) Reverse(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	var req struct {
		EntryDate string `json:"entry_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		response.BadRequest(c, "Invalid entry date. Use YYYY-MM-DD")
		return
	}

	mirror, err := h.journalService.ReverseJournalEntry(c.Request.Context(), *userID, id, entryDate, IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Journal entry reversed successfully", mirror)
}

// Delete handles deleting a draft entry
// @Summary Delete Journal Entry
// @Description Delete a draft journal entry
// @Tags journals
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 204
// @Router /journals/{id} [delete]
func (h *JournalHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.journalService.DeleteJournalEntry(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
