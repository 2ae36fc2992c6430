package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Quote represents a price quote for a customer. Unlike invoices, tax and
// discount apply at the document level against the line subtotal.
type Quote struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID             uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID         *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	QuoteNumber        string           `gorm:"size:100;unique;not null" json:"quote_number"`
	QuoteDate          time.Time        `gorm:"type:date;not null" json:"quote_date"`
	ValidUntil         *time.Time       `gorm:"type:date" json:"valid_until,omitempty"`
	CustomerName       string           `gorm:"size:255" json:"customer_name"`
	SubTotal           float64          `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	TaxPercentage      float64          `gorm:"type:decimal(5,2);default:0" json:"tax_percentage"`
	TaxAmount          float64          `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	DiscountPercentage float64          `gorm:"type:decimal(5,2);default:0" json:"discount_percentage"`
	DiscountAmount     float64          `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	ShippingAmount     float64          `gorm:"type:decimal(15,2);default:0" json:"shipping_amount"`
	TotalAmount        float64          `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	Status             enum.QuoteStatus `gorm:"default:0" json:"status"`
	Note               *string          `gorm:"type:text" json:"note,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	User     User        `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []QuoteItem `gorm:"foreignKey:QuoteID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// QuoteItem represents a line item in a quote
type QuoteItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"quote_id"`
	ProductID   *uuid.UUID     `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductName string         `gorm:"size:255" json:"product_name"`
	ProductCode string         `gorm:"size:100" json:"product_code"`
	Quantity    float64        `gorm:"type:decimal(15,3);not null" json:"quantity"`
	UnitPrice   float64        `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	SubTotal    float64        `gorm:"type:decimal(15,2);not null" json:"sub_total"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Quote   Quote    `gorm:"foreignKey:QuoteID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote item
func (qi *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteItem model
func (QuoteItem) TableName() string {
	return "quote_items"
}
