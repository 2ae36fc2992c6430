package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"gorm.io/gorm"
)

// JournalEntry represents a manual double-entry voucher. An entry can only
// be posted when its lines balance; a posted entry is immutable and can
// only be undone with a reversal entry.
type JournalEntry struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	EntryNumber  string             `gorm:"size:100;unique;not null" json:"entry_number"`
	EntryDate    time.Time          `gorm:"type:date;not null" json:"entry_date"`
	Narration    string             `gorm:"type:text" json:"narration"`
	DebitTotal   float64            `gorm:"type:decimal(15,2);default:0" json:"debit_total"`
	CreditTotal  float64            `gorm:"type:decimal(15,2);default:0" json:"credit_total"`
	Status       enum.JournalStatus `gorm:"default:0" json:"status"`
	PostedAt     *time.Time         `json:"posted_at,omitempty"`
	ReversedByID *uuid.UUID         `gorm:"type:uuid;column:reversed_by" json:"reversed_by,omitempty"`
	ReversesID   *uuid.UUID         `gorm:"type:uuid;column:reverses" json:"reverses,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User       User          `gorm:"foreignKey:UserID" json:"-"`
	Lines      []JournalLine `gorm:"foreignKey:EntryID" json:"lines,omitempty"`
	ReversedBy *JournalEntry `gorm:"foreignKey:ReversedByID" json:"-"`
	Reverses   *JournalEntry `gorm:"foreignKey:ReversesID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new journal entry
func (je *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if je.ID == uuid.Nil {
		je.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the JournalEntry model
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// JournalLine represents one leg of a journal entry. Exactly one of Debit
// and Credit may be non-zero.
type JournalLine struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	EntryID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"entry_id"`
	AccountID uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	Debit     float64        `gorm:"type:decimal(15,2);default:0" json:"debit"`
	Credit    float64        `gorm:"type:decimal(15,2);default:0" json:"credit"`
	Memo      *string        `gorm:"size:255" json:"memo,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Entry   JournalEntry `gorm:"foreignKey:EntryID" json:"-"`
	Account Account      `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

// BeforeCreate generates a UUID before creating a new journal line
func (jl *JournalLine) BeforeCreate(tx *gorm.DB) error {
	if jl.ID == uuid.Nil {
		jl.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the JournalLine model
func (JournalLine) TableName() string {
	return "journal_lines"
}
