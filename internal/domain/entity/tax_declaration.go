package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaxDeclaration holds an employee's investment declarations for a fiscal
// year. Declared amounts are as submitted; allowed amounts are recomputed
// from statutory section limits whenever items change.
type TaxDeclaration struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	FiscalYear   string         `gorm:"size:9;not null" json:"fiscal_year"` // e.g. "2025-2026"
	TotalClaimed float64        `gorm:"type:decimal(15,2);default:0" json:"total_claimed"`
	TotalAllowed float64        `gorm:"type:decimal(15,2);default:0" json:"total_allowed"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Employee Employee          `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Items    []DeclarationItem `gorm:"foreignKey:DeclarationID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new tax declaration
func (td *TaxDeclaration) BeforeCreate(tx *gorm.DB) error {
	if td.ID == uuid.Nil {
		td.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxDeclaration model
func (TaxDeclaration) TableName() string {
	return "tax_declarations"
}

// DeclarationItem is one declared investment under a statutory section.
type DeclarationItem struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DeclarationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"declaration_id"`
	Section       string         `gorm:"size:20;not null" json:"section"`
	Label         string         `gorm:"size:255" json:"label"`
	Declared      float64        `gorm:"type:decimal(15,2);not null" json:"declared"`
	Allowed       float64        `gorm:"type:decimal(15,2);default:0" json:"allowed"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Declaration TaxDeclaration `gorm:"foreignKey:DeclarationID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new declaration item
func (di *DeclarationItem) BeforeCreate(tx *gorm.DB) error {
	if di.ID == uuid.Nil {
		di.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DeclarationItem model
func (DeclarationItem) TableName() string {
	return "declaration_items"
}
