package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Bill represents a vendor bill. When a TDS section applies, TDSAmount is
// withheld from the gross and NetPayable is what the vendor actually
// receives.
type Bill struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	VendorID       *uuid.UUID      `gorm:"type:uuid;index" json:"vendor_id,omitempty"`
	BillNumber     string          `gorm:"size:100;unique;not null" json:"bill_number"`
	VendorBillRef  *string         `gorm:"size:100;column:vendor_bill_ref" json:"vendor_bill_ref,omitempty"`
	BillDate       time.Time       `gorm:"type:date;not null" json:"bill_date"`
	DueDate        *time.Time      `gorm:"type:date" json:"due_date,omitempty"`
	SubTotal       float64         `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	TaxAmount      float64         `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	TotalAmount    float64         `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	TDSSection     *string         `gorm:"size:10;column:tds_section" json:"tds_section,omitempty"`
	TDSRate        float64         `gorm:"type:decimal(5,2);default:0;column:tds_rate" json:"tds_rate"`
	TDSAmount      float64         `gorm:"type:decimal(15,2);default:0;column:tds_amount" json:"tds_amount"`
	NetPayable     float64         `gorm:"type:decimal(15,2);default:0" json:"net_payable"`
	Status         enum.BillStatus `gorm:"default:0" json:"status"`
	Note           *string         `gorm:"type:text" json:"note,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	User   User       `gorm:"foreignKey:UserID" json:"-"`
	Vendor *Vendor    `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Items  []BillItem `gorm:"foreignKey:BillID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// BillItem represents a line item on a vendor bill
type BillItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BillID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"bill_id"`
	ProductID    *uuid.UUID     `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Description  string         `gorm:"size:255;not null" json:"description"`
	Quantity     float64        `gorm:"type:decimal(15,3);not null" json:"quantity"`
	UnitCost     float64        `gorm:"type:decimal(15,2);not null" json:"unit_cost"`
	TaxRate      float64        `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	TaxableValue float64        `gorm:"type:decimal(15,2);default:0" json:"taxable_value"`
	TaxAmount    float64        `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	LineTotal    float64        `gorm:"type:decimal(15,2);default:0" json:"line_total"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Bill    Bill     `gorm:"foreignKey:BillID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}
