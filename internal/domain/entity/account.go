package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Account represents a ledger account in the chart of accounts. System
// accounts are seeded at startup and cannot be deleted.
type Account struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Code      string           `gorm:"size:20;unique;not null" json:"code"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	Type      enum.AccountType `gorm:"default:0" json:"type"`
	ParentID  *uuid.UUID       `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	IsSystem  bool             `gorm:"default:false" json:"is_system"`
	IsActive  bool             `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Parent   *Account  `gorm:"foreignKey:ParentID" json:"-"`
	Children []Account `gorm:"foreignKey:ParentID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
