package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents a GST sales invoice. Tax is computed per line and the
// aggregate is split into CGST/SGST or IGST from the customer's state code
// against the company's.
type Invoice struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID      *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	InvoiceNumber   string             `gorm:"size:100;unique;not null" json:"invoice_number"`
	InvoiceDate     time.Time          `gorm:"type:date;not null" json:"invoice_date"`
	DueDate         *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	PlaceOfSupply   string             `gorm:"size:2;column:place_of_supply" json:"place_of_supply"`
	InterState      bool               `gorm:"default:false" json:"inter_state"`
	SubTotal        float64            `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	DiscountAmount  float64            `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	CGSTAmount      float64            `gorm:"type:decimal(15,2);default:0;column:cgst_amount" json:"cgst_amount"`
	SGSTAmount      float64            `gorm:"type:decimal(15,2);default:0;column:sgst_amount" json:"sgst_amount"`
	IGSTAmount      float64            `gorm:"type:decimal(15,2);default:0;column:igst_amount" json:"igst_amount"`
	ShippingAmount  float64            `gorm:"type:decimal(15,2);default:0" json:"shipping_amount"`
	TotalAmount     float64            `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	AmountPaid      float64            `gorm:"type:decimal(15,2);default:0" json:"amount_paid"`
	Status          enum.InvoiceStatus `gorm:"default:0" json:"status"`
	Note            *string            `gorm:"type:text" json:"note,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User     User          `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// BalanceDue returns the amount still owed on the invoice
func (i *Invoice) BalanceDue() float64 {
	return i.TotalAmount - i.AmountPaid
}

// InvoiceItem represents a line item on an invoice. Product fields are
// snapshotted at creation so later product edits do not rewrite history.
type InvoiceItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID    *uuid.UUID     `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Description  string         `gorm:"size:255;not null" json:"description"`
	HSNCode      *string        `gorm:"size:8;column:hsn_code" json:"hsn_code,omitempty"`
	Quantity     float64        `gorm:"type:decimal(15,3);not null" json:"quantity"`
	UnitPrice    float64        `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	DiscountRate float64        `gorm:"type:decimal(5,2);default:0" json:"discount_rate"`
	TaxRate      float64        `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	TaxableValue float64        `gorm:"type:decimal(15,2);default:0" json:"taxable_value"`
	TaxAmount    float64        `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	LineTotal    float64        `gorm:"type:decimal(15,2);default:0" json:"line_total"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Invoice Invoice  `gorm:"foreignKey:InvoiceID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
