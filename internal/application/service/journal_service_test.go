package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/infrastructure/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
)

type journalFixture struct {
	svc    *service.JournalService
	db     *gorm.DB
	userID uuid.UUID
	cash   entity.Account
	sales  entity.Account
}

func newJournalFixture(t *testing.T) *journalFixture {
	t.Helper()

	db := newTestDB(t)
	svc := service.NewJournalService(
		repository.NewJournalRepository(db),
		repository.NewAccountRepository(db),
	)

	cash := entity.Account{Code: "1100", Name: "Cash", Type: enum.AccountTypeAsset, IsActive: true}
	sales := entity.Account{Code: "4100", Name: "Sales", Type: enum.AccountTypeIncome, IsActive: true}
	require.NoError(t, db.Create(&cash).Error)
	require.NoError(t, db.Create(&sales).Error)

	return &journalFixture{
		svc:    svc,
		db:     db,
		userID: uuid.New(),
		cash:   cash,
		sales:  sales,
	}
}

func (f *journalFixture) draftEntry(t *testing.T, debit, credit float64) *entity.JournalEntry {
	t.Helper()

	entry, err := f.svc.CreateJournalEntry(context.Background(), &service.CreateJournalEntryInput{
		UserID:    f.userID,
		EntryDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Narration: "Cash sale",
		Lines: []service.JournalLineInput{
			{AccountID: f.cash.ID, Debit: debit},
			{AccountID: f.sales.ID, Credit: credit},
		},
	})
	require.NoError(t, err)
	return entry
}

func TestCreateJournalEntryDraft(t *testing.T) {
	f := newJournalFixture(t)

	entry := f.draftEntry(t, 1180, 1180)

	assert.Equal(t, "JRN-000001", entry.EntryNumber)
	assert.Equal(t, enum.JournalStatusDraft, entry.Status)
	assert.Equal(t, 1180.0, entry.DebitTotal)
	assert.Equal(t, 1180.0, entry.CreditTotal)
	assert.Len(t, entry.Lines, 2)
	assert.Nil(t, entry.PostedAt)
}

func TestCreateJournalEntryAllowsUnbalancedDraft(t *testing.T) {
	f := newJournalFixture(t)

	entry := f.draftEntry(t, 100, 90)

	assert.Equal(t, enum.JournalStatusDraft, entry.Status)
	assert.Equal(t, 100.0, entry.DebitTotal)
	assert.Equal(t, 90.0, entry.CreditTotal)
}

func TestCreateJournalEntryRequiresTwoLines(t *testing.T) {
	f := newJournalFixture(t)

	_, err := f.svc.CreateJournalEntry(context.Background(), &service.CreateJournalEntryInput{
		UserID:    f.userID,
		EntryDate: time.Now(),
		Narration: "One-legged",
		Lines: []service.JournalLineInput{
			{AccountID: f.cash.ID, Debit: 100},
		},
	})
	require.Error(t, err)
}

func TestCreateJournalEntryRejectsUnknownAccount(t *testing.T) {
	f := newJournalFixture(t)

	_, err := f.svc.CreateJournalEntry(context.Background(), &service.CreateJournalEntryInput{
		UserID:    f.userID,
		EntryDate: time.Now(),
		Narration: "Ghost account",
		Lines: []service.JournalLineInput{
			{AccountID: f.cash.ID, Debit: 100},
			{AccountID: uuid.New(), Credit: 100},
		},
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestCreateJournalEntryRejectsInactiveAccount(t *testing.T) {
	f := newJournalFixture(t)

	dormant := entity.Account{Code: "1900", Name: "Dormant", Type: enum.AccountTypeAsset, IsActive: false}
	require.NoError(t, f.db.Create(&dormant).Error)

	_, err := f.svc.CreateJournalEntry(context.Background(), &service.CreateJournalEntryInput{
		UserID:    f.userID,
		EntryDate: time.Now(),
		Narration: "Inactive leg",
		Lines: []service.JournalLineInput{
			{AccountID: dormant.ID, Debit: 100},
			{AccountID: f.sales.ID, Credit: 100},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactive")
}

func TestPostJournalEntry(t *testing.T) {
	f := newJournalFixture(t)
	entry := f.draftEntry(t, 500, 500)

	posted, err := f.svc.PostJournalEntry(context.Background(), f.userID, entry.ID, false)
	require.NoError(t, err)

	assert.Equal(t, enum.JournalStatusPosted, posted.Status)
	require.NotNil(t, posted.PostedAt)
}

func TestPostJournalEntryRejectsUnbalanced(t *testing.T) {
	f := newJournalFixture(t)
	entry := f.draftEntry(t, 100, 90)

	_, err := f.svc.PostJournalEntry(context.Background(), f.userID, entry.ID, false)
	require.Error(t, err)

	reloaded, err := f.svc.GetJournalEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.JournalStatusDraft, reloaded.Status)
}

func TestPostJournalEntryTwiceRejected(t *testing.T) {
	f := newJournalFixture(t)
	entry := f.draftEntry(t, 500, 500)

	_, err := f.svc.PostJournalEntry(context.Background(), f.userID, entry.ID, false)
	require.NoError(t, err)

	_, err = f.svc.PostJournalEntry(context.Background(), f.userID, entry.ID, false)
	require.Error(t, err)
}

func TestPostJournalEntryForbiddenForOtherUser(t *testing.T) {
	f := newJournalFixture(t)
	entry := f.draftEntry(t, 500, 500)

	_, err := f.svc.PostJournalEntry(context.Background(), uuid.New(), entry.ID, false)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	// A super admin may post on behalf of anyone
	_, err = f.svc.PostJournalEntry(context.Background(), uuid.New(), entry.ID, true)
	assert.NoError(t, err)
}

func TestReverseJournalEntry(t *testing.T) {
	f := newJournalFixture(t)
	entry := f.draftEntry(t, 750, 750)

	_, err := f.svc.PostJournalEntry(context.Background(), f.userID, entry.ID, false)
	require.NoError(t, err)

	reversalDate := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	mirror, err := f.svc.ReverseJournalEntry(context.Background(), f.userID, entry.ID, reversalDate, false)
	require.NoError(t, err)

	assert.Equal(t, enum.JournalStatusPosted, mirror.Status)
	require.NotNil(t, mirror.ReversesID)
	assert.Equal(t, entry.ID, *mirror.ReversesID)
	assert.Contains(t, mirror.Narration, entry.EntryNumber)

	// Debits and credits swap sides on the mirror
	require.Len(t, mirror.Lines, 2)
	for _, line := range mirror.Lines {
		switch line.AccountID {
		case f.cash.ID:
			assert.Equal(t, 0.0, line.Debit)
			assert.Equal(t, 750.0, line.Credit)
		case f.sales.ID:
			assert.Equal(t, 750.0, line.Debit)
			assert.Equal(t, 0.0, line.Credit)
		}
	}

	original, err := f.svc.GetJournalEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.JournalStatusReversed, original.Status)
	require.NotNil(t, original.ReversedByID)
	assert.Equal(t, mirror.ID, *original.ReversedByID)
}

func TestReverseJournalEntryOnlyOnce(t *testing.T) {
	f := newJournalFixture(t)
	entry := f.draftEntry(t, 300, 300)

	_, err := f.svc.PostJournalEntry(context.Background(), f.userID, entry.ID, false)
	require.NoError(t, err)
	_, err = f.svc.ReverseJournalEntry(context.Background(), f.userID, entry.ID, time.Now(), false)
	require.NoError(t, err)

	_, err = f.svc.ReverseJournalEntry(context.Background(), f.userID, entry.ID, time.Now(), false)
	require.Error(t, err)
}

func TestReverseDraftRejected(t *testing.T) {
	f := newJournalFixture(t)
	entry := f.draftEntry(t, 300, 300)

	_, err := f.svc.ReverseJournalEntry(context.Background(), f.userID, entry.ID, time.Now(), false)
	require.Error(t, err)
}

func TestUpdateJournalEntryOnlyDraft(t *testing.T) {
	f := newJournalFixture(t)
	entry := f.draftEntry(t, 200, 200)

	memo := "adjusted"
	updated, err := f.svc.UpdateJournalEntry(context.Background(), &service.UpdateJournalEntryInput{
		UserID:    f.userID,
		ID:        entry.ID,
		EntryDate: entry.EntryDate,
		Narration: "Corrected narration",
		Lines: []service.JournalLineInput{
			{AccountID: f.cash.ID, Debit: 250, Memo: &memo},
			{AccountID: f.sales.ID, Credit: 250},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Corrected narration", updated.Narration)
	assert.Equal(t, 250.0, updated.DebitTotal)

	_, err = f.svc.PostJournalEntry(context.Background(), f.userID, entry.ID, false)
	require.NoError(t, err)

	_, err = f.svc.UpdateJournalEntry(context.Background(), &service.UpdateJournalEntryInput{
		UserID:    f.userID,
		ID:        entry.ID,
		EntryDate: entry.EntryDate,
		Narration: "Too late",
		Lines: []service.JournalLineInput{
			{AccountID: f.cash.ID, Debit: 1},
			{AccountID: f.sales.ID, Credit: 1},
		},
	})
	require.Error(t, err)
}

func TestDeleteJournalEntryOnlyDraft(t *testing.T) {
	f := newJournalFixture(t)

	draft := f.draftEntry(t, 50, 50)
	require.NoError(t, f.svc.DeleteJournalEntry(context.Background(), f.userID, draft.ID, false))

	posted := f.draftEntry(t, 60, 60)
	_, err := f.svc.PostJournalEntry(context.Background(), f.userID, posted.ID, false)
	require.NoError(t, err)
	assert.Error(t, f.svc.DeleteJournalEntry(context.Background(), f.userID, posted.ID, false))
}
