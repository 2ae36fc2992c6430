package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
)

// JournalRepository defines the interface for journal entry data operations
type JournalRepository interface {
	// Create persists an entry together with its lines in one transaction
	Create(ctx context.Context, entry *entity.JournalEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error)
	GetByNumber(ctx context.Context, number string) (*entity.JournalEntry, error)
	// GetWithLines retrieves an entry with its lines and their accounts preloaded
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error)
	// Update replaces a draft entry's header and lines in one transaction
	Update(ctx context.Context, entry *entity.JournalEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *JournalFilterParams) ([]entity.JournalEntry, int64, error)
	// MarkPosted transitions a draft entry to posted with the posting time
	MarkPosted(ctx context.Context, id uuid.UUID, postedAt time.Time) error
	// MarkReversed links a posted entry to the entry that reverses it
	MarkReversed(ctx context.Context, id uuid.UUID, reversedBy uuid.UUID) error
	GetNextSequenceNumber(ctx context.Context) (int, error)
}

// JournalFilterParams contains filtering parameters for journal queries
type JournalFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.JournalStatus
	AccountID  *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
	SortBy     string
	SortOrder  string
}
