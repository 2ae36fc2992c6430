package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
	"github.com/sahajbooks/sahaj-api/pkg/finance"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
	"github.com/sahajbooks/sahaj-api/pkg/utils"
)

// JournalService handles double-entry journal operations. Entries start as
// drafts, may only post when the lines balance, and once posted can only
// be undone by a reversal entry.
type JournalService struct {
	journalRepo repository.JournalRepository
	accountRepo repository.AccountRepository
}

// NewJournalService creates a new journal service
func NewJournalService(journalRepo repository.JournalRepository, accountRepo repository.AccountRepository) *JournalService {
	return &JournalService{journalRepo: journalRepo, accountRepo: accountRepo}
}

// JournalLineInput represents one leg of an entry
type JournalLineInput struct {
	AccountID uuid.UUID
	Debit     float64
	Credit    float64
	Memo      *string
}

// CreateJournalEntryInput represents the input for creating an entry
type CreateJournalEntryInput struct {
	UserID    uuid.UUID
	EntryDate time.Time
	Narration string
	Lines     []JournalLineInput
}

// validateLines checks the legs against the ledger and returns the entity
// lines with debit and credit totals.
func (s *JournalService) validateLines(ctx context.Context, inputs []JournalLineInput) ([]entity.JournalLine, *finance.BalanceResult, error) {
	if len(inputs) < 2 {
		return nil, nil, apperror.NewBadRequestError("Journal entry requires at least two lines")
	}

	accountIDs := make([]uuid.UUID, 0, len(inputs))
	balanceLines := make([]finance.BalanceLine, 0, len(inputs))
	lines := make([]entity.JournalLine, 0, len(inputs))

	for _, in := range inputs {
		accountIDs = append(accountIDs, in.AccountID)
		balanceLines = append(balanceLines, finance.BalanceLine{
			AccountID: in.AccountID.String(),
			Debit:     in.Debit,
			Credit:    in.Credit,
		})
		lines = append(lines, entity.JournalLine{
			AccountID: in.AccountID,
			Debit:     finance.Round2(in.Debit),
			Credit:    finance.Round2(in.Credit),
			Memo:      in.Memo,
		})
	}

	accounts, err := s.accountRepo.GetByIDs(ctx, accountIDs)
	if err != nil {
		return nil, nil, err
	}
	known := make(map[uuid.UUID]entity.Account, len(accounts))
	for _, a := range accounts {
		known[a.ID] = a
	}
	for _, id := range accountIDs {
		account, ok := known[id]
		if !ok {
			return nil, nil, apperror.NewNotFoundError("Account")
		}
		if !account.IsActive {
			return nil, nil, apperror.NewBusinessRuleError("Account " + account.Code + " is inactive")
		}
	}

	result, err := finance.CheckBalance(balanceLines)
	if err != nil {
		return nil, nil, apperror.NewBadRequestError(err.Error())
	}

	return lines, result, nil
}

// CreateJournalEntry creates a draft entry. Balance is checked at posting,
// not at creation, so a bookkeeper can save work in progress.
func (s *JournalService) CreateJournalEntry(ctx context.Context, input *CreateJournalEntryInput) (*entity.JournalEntry, error) {
	lines, result, err := s.validateLines(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	nextNum, err := s.journalRepo.GetNextSequenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	entry := &entity.JournalEntry{
		UserID:      input.UserID,
		EntryNumber: utils.FormatDocNumber("JRN-", nextNum),
		EntryDate:   input.EntryDate,
		Narration:   input.Narration,
		DebitTotal:  result.DebitTotal,
		CreditTotal: result.CreditTotal,
		Status:      enum.JournalStatusDraft,
		Lines:       lines,
	}

	if err := s.journalRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return s.journalRepo.GetWithLines(ctx, entry.ID)
}

// GetJournalEntry retrieves an entry by ID
func (s *JournalService) GetJournalEntry(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error) {
	entry, err := s.journalRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Journal entry")
	}
	return entry, nil
}

// ListJournalEntriesInput represents the input for listing entries
type ListJournalEntriesInput struct {
	UserID       uuid.UUID
	IsSuperAdmin bool
	Pagination   *pagination.PaginationParams
	Search       string
	Status       *enum.JournalStatus
	AccountID    *uuid.UUID
	FromDate     *time.Time
	ToDate       *time.Time
}

// ListJournalEntries lists entries with filtering
func (s *JournalService) ListJournalEntries(ctx context.Context, input *ListJournalEntriesInput) (*pagination.PaginatedResult[entity.JournalEntry], error) {
	params := &repository.JournalFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		AccountID:  input.AccountID,
		FromDate:   input.FromDate,
		ToDate:     input.ToDate,
	}

	var userID uuid.UUID
	if !input.IsSuperAdmin {
		userID = input.UserID
	}

	entries, total, err := s.journalRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}

// UpdateJournalEntryInput represents the input for updating a draft entry
type UpdateJournalEntryInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	IsSuperAdmin bool
	EntryDate    time.Time
	Narration    string
	Lines        []JournalLineInput
}

// UpdateJournalEntry replaces the header and lines of a draft entry
func (s *JournalService) UpdateJournalEntry(ctx context.Context, input *UpdateJournalEntryInput) (*entity.JournalEntry, error) {
	entry, err := s.journalRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Journal entry")
	}

	// Check permission
	if !input.IsSuperAdmin && entry.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if entry.Status != enum.JournalStatusDraft {
		return nil, apperror.NewBusinessRuleError("Only draft entries can be edited")
	}

	lines, result, err := s.validateLines(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	entry.EntryDate = input.EntryDate
	entry.Narration = input.Narration
	entry.DebitTotal = result.DebitTotal
	entry.CreditTotal = result.CreditTotal
	entry.Lines = lines

	if err := s.journalRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return s.journalRepo.GetWithLines(ctx, entry.ID)
}

// PostJournalEntry posts a balanced draft entry to the ledger
func (s *JournalService) PostJournalEntry(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) (*entity.JournalEntry, error) {
	entry, err := s.journalRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Journal entry")
	}

	// Check permission
	if !isSuperAdmin && entry.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	if entry.Status != enum.JournalStatusDraft {
		return nil, apperror.NewBusinessRuleError("Only draft entries can be posted")
	}

	balanceLines := make([]finance.BalanceLine, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		balanceLines = append(balanceLines, finance.BalanceLine{
			AccountID: line.AccountID.String(),
			Debit:     line.Debit,
			Credit:    line.Credit,
		})
	}
	result, err := finance.CheckBalance(balanceLines)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	if postErr := result.PostingError(); postErr != nil {
		return nil, apperror.NewBusinessRuleError(postErr.Error())
	}

	postedAt := time.Now()
	if err := s.journalRepo.MarkPosted(ctx, id, postedAt); err != nil {
		return nil, err
	}
	entry.Status = enum.JournalStatusPosted
	entry.PostedAt = &postedAt

	return entry, nil
}

// ReverseJournalEntry creates and posts a mirror entry that undoes a
// posted entry, then links the two.
func (s *JournalService) ReverseJournalEntry(ctx context.Context, userID, id uuid.UUID, entryDate time.Time, isSuperAdmin bool) (*entity.JournalEntry, error) {
	entry, err := s.journalRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Journal entry")
	}

	// Check permission
	if !isSuperAdmin && entry.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	if entry.Status != enum.JournalStatusPosted {
		return nil, apperror.NewBusinessRuleError("Only posted entries can be reversed")
	}
	if entry.ReversedByID != nil {
		return nil, apperror.NewBusinessRuleError("Entry has already been reversed")
	}

	nextNum, err := s.journalRepo.GetNextSequenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	mirror := &entity.JournalEntry{
		UserID:      userID,
		EntryNumber: utils.FormatDocNumber("JRN-", nextNum),
		EntryDate:   entryDate,
		Narration:   "Reversal of " + entry.EntryNumber,
		DebitTotal:  entry.CreditTotal,
		CreditTotal: entry.DebitTotal,
		Status:      enum.JournalStatusPosted,
		PostedAt:    &now,
		ReversesID:  &entry.ID,
	}
	for _, line := range entry.Lines {
		mirror.Lines = append(mirror.Lines, entity.JournalLine{
			AccountID: line.AccountID,
			Debit:     line.Credit,
			Credit:    line.Debit,
			Memo:      line.Memo,
		})
	}

	if err := s.journalRepo.Create(ctx, mirror); err != nil {
		return nil, err
	}

	if err := s.journalRepo.MarkReversed(ctx, entry.ID, mirror.ID); err != nil {
		return nil, err
	}

	return s.journalRepo.GetWithLines(ctx, mirror.ID)
}

// DeleteJournalEntry deletes a draft entry
func (s *JournalService) DeleteJournalEntry(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	entry, err := s.journalRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return apperror.NewNotFoundError("Journal entry")
	}

	// Check permission
	if !isSuperAdmin && entry.UserID != userID {
		return apperror.ErrForbidden
	}

	if entry.Status != enum.JournalStatusDraft {
		return apperror.NewBusinessRuleError("Only draft entries can be deleted")
	}

	return s.journalRepo.Delete(ctx, id)
}
