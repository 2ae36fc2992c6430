package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PayrollRun represents one month's payroll for all active employees.
// Processing a draft run generates payslips; a processed run can be marked
// paid but no longer re-processed.
type PayrollRun struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Year           int                `gorm:"not null" json:"year"`
	Month          int                `gorm:"not null" json:"month"`
	Status         enum.PayrollStatus `gorm:"default:0" json:"status"`
	EmployeeCount  int                `gorm:"default:0" json:"employee_count"`
	GrossTotal     float64            `gorm:"type:decimal(15,2);default:0" json:"gross_total"`
	DeductionTotal float64            `gorm:"type:decimal(15,2);default:0" json:"deduction_total"`
	NetTotal       float64            `gorm:"type:decimal(15,2);default:0" json:"net_total"`
	ProcessedAt    *time.Time         `json:"processed_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Payslips []Payslip `gorm:"foreignKey:PayrollRunID" json:"payslips,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payroll run
func (pr *PayrollRun) BeforeCreate(tx *gorm.DB) error {
	if pr.ID == uuid.Nil {
		pr.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PayrollRun model
func (PayrollRun) TableName() string {
	return "payroll_runs"
}

// Period returns the run's period as YYYY-MM
func (pr *PayrollRun) Period() string {
	return time.Date(pr.Year, time.Month(pr.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Payslip is one employee's computed pay for a payroll run. Earnings are
// snapshotted from the salary structure effective in the period; statutory
// deductions are computed at processing time.
type Payslip struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PayrollRunID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"payroll_run_id"`
	EmployeeID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	Basic           float64        `gorm:"type:decimal(15,2);default:0" json:"basic"`
	HRA             float64        `gorm:"type:decimal(15,2);default:0;column:hra" json:"hra"`
	DA              float64        `gorm:"type:decimal(15,2);default:0;column:da" json:"da"`
	OtherEarnings   float64        `gorm:"type:decimal(15,2);default:0" json:"other_earnings"`
	GrossPay        float64        `gorm:"type:decimal(15,2);default:0" json:"gross_pay"`
	PFEmployee      float64        `gorm:"type:decimal(15,2);default:0;column:pf_employee" json:"pf_employee"`
	PFEmployer      float64        `gorm:"type:decimal(15,2);default:0;column:pf_employer" json:"pf_employer"`
	ESIEmployee     float64        `gorm:"type:decimal(15,2);default:0;column:esi_employee" json:"esi_employee"`
	ESIEmployer     float64        `gorm:"type:decimal(15,2);default:0;column:esi_employer" json:"esi_employer"`
	ProfessionalTax float64        `gorm:"type:decimal(15,2);default:0" json:"professional_tax"`
	TDSAmount       float64        `gorm:"type:decimal(15,2);default:0;column:tds_amount" json:"tds_amount"`
	TotalDeductions float64        `gorm:"type:decimal(15,2);default:0" json:"total_deductions"`
	NetPay          float64        `gorm:"type:decimal(15,2);default:0" json:"net_pay"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	PayrollRun PayrollRun `gorm:"foreignKey:PayrollRunID" json:"-"`
	Employee   Employee   `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payslip
func (p *Payslip) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payslip model
func (Payslip) TableName() string {
	return "payslips"
}
