package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents the legal entity the books belong to. Statutory
// registrations (GSTIN, PAN, TAN) live here and feed document numbering
// and filing summaries.
type Company struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	LegalName    string          `gorm:"size:255" json:"legal_name"`
	GSTIN        *string         `gorm:"size:15;column:gstin" json:"gstin,omitempty"`
	PAN          *string         `gorm:"size:10;column:pan" json:"pan,omitempty"`
	TAN          *string         `gorm:"size:10;column:tan" json:"tan,omitempty"`
	StateCode    string          `gorm:"size:2" json:"state_code"`
	AddressLine1 *string         `gorm:"size:255" json:"address_line1,omitempty"`
	AddressLine2 *string         `gorm:"size:255" json:"address_line2,omitempty"`
	City         *string         `gorm:"size:100" json:"city,omitempty"`
	Pincode      *string         `gorm:"size:10" json:"pincode,omitempty"`
	Email        *string         `gorm:"size:255" json:"email,omitempty"`
	Phone        *string         `gorm:"size:50" json:"phone,omitempty"`
	Settings     CompanySettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new company
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// CompanySettings holds customizable company configuration
type CompanySettings struct {
	// Branding
	LogoURL string `json:"logo_url,omitempty"`

	// Localization
	Currency   string `json:"currency,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	DateFormat string `json:"date_format,omitempty"`

	// Document numbering
	InvoicePrefix string `json:"invoice_prefix,omitempty"`
	QuotePrefix   string `json:"quote_prefix,omitempty"`
	BillPrefix    string `json:"bill_prefix,omitempty"`
	JournalPrefix string `json:"journal_prefix,omitempty"`

	// Fiscal year start month, 1-12. April (4) for Indian books.
	FiscalYearStart int `json:"fiscal_year_start,omitempty"`

	// Payroll defaults
	ProfessionalTaxMonthly float64 `json:"professional_tax_monthly,omitempty"`

	// Notification settings
	EmailNotifications bool `json:"email_notifications,omitempty"`
}

// Scan implements the sql.Scanner interface for CompanySettings
func (cs *CompanySettings) Scan(value interface{}) error {
	if value == nil {
		*cs = CompanySettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan CompanySettings: unsupported type")
	}

	return json.Unmarshal(bytes, cs)
}

// Value implements the driver.Valuer interface for CompanySettings
func (cs CompanySettings) Value() (driver.Value, error) {
	return json.Marshal(cs)
}
