package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vendor represents a party we buy from. DefaultTDSSection, when set,
// pre-selects the TDS section on bills raised against the vendor.
type Vendor struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name              string         `gorm:"size:255;not null" json:"name"`
	Email             *string        `gorm:"size:255" json:"email,omitempty"`
	Phone             *string        `gorm:"size:50" json:"phone,omitempty"`
	GSTIN             *string        `gorm:"size:15;column:gstin" json:"gstin,omitempty"`
	PAN               *string        `gorm:"size:10;column:pan" json:"pan,omitempty"`
	StateCode         string         `gorm:"size:2" json:"state_code"`
	DefaultTDSSection *string        `gorm:"size:10;column:default_tds_section" json:"default_tds_section,omitempty"`
	Address           *string        `gorm:"type:text" json:"address,omitempty"`
	AccountHolder     *string        `gorm:"size:255" json:"account_holder,omitempty"`
	AccountNumber     *string        `gorm:"size:100" json:"account_number,omitempty"`
	BankName          *string        `gorm:"size:255" json:"bank_name,omitempty"`
	IFSC              *string        `gorm:"size:11;column:ifsc" json:"ifsc,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Bills []Bill `gorm:"foreignKey:VendorID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new vendor
func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Vendor model
func (Vendor) TableName() string {
	return "vendors"
}
