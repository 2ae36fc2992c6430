package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a party we sell to. StateCode drives the GST split on
// invoices raised against the customer.
type Customer struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Email         *string        `gorm:"size:255" json:"email,omitempty"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	GSTIN         *string        `gorm:"size:15;column:gstin" json:"gstin,omitempty"`
	PAN           *string        `gorm:"size:10;column:pan" json:"pan,omitempty"`
	StateCode     string         `gorm:"size:2" json:"state_code"`
	BillingAddr   *string        `gorm:"type:text;column:billing_address" json:"billing_address,omitempty"`
	ShippingAddr  *string        `gorm:"type:text;column:shipping_address" json:"shipping_address,omitempty"`
	AccountHolder *string        `gorm:"size:255" json:"account_holder,omitempty"`
	AccountNumber *string        `gorm:"size:100" json:"account_number,omitempty"`
	BankName      *string        `gorm:"size:255" json:"bank_name,omitempty"`
	IFSC          *string        `gorm:"size:11;column:ifsc" json:"ifsc,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"-"`
	Quotes   []Quote   `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
