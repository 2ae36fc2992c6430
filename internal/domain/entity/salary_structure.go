package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalaryStructure is the component breakdown of an employee's pay, derived
// from annual CTC. Amounts are monthly rupee figures. A new structure
// supersedes the previous one from EffectiveFrom; the latest effective
// structure drives payroll.
type SalaryStructure struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	AnnualCTC        float64        `gorm:"type:decimal(15,2);not null;column:annual_ctc" json:"annual_ctc"`
	MonthlyCTC       float64        `gorm:"type:decimal(15,2);not null;column:monthly_ctc" json:"monthly_ctc"`
	Basic            float64        `gorm:"type:decimal(15,2);default:0" json:"basic"`
	HRA              float64        `gorm:"type:decimal(15,2);default:0;column:hra" json:"hra"`
	DA               float64        `gorm:"type:decimal(15,2);default:0;column:da" json:"da"`
	Conveyance       float64        `gorm:"type:decimal(15,2);default:0" json:"conveyance"`
	Medical          float64        `gorm:"type:decimal(15,2);default:0" json:"medical"`
	SpecialAllowance float64        `gorm:"type:decimal(15,2);default:0" json:"special_allowance"`
	OtherAllowances  float64        `gorm:"type:decimal(15,2);default:0" json:"other_allowances"`
	PFEmployer       float64        `gorm:"type:decimal(15,2);default:0;column:pf_employer" json:"pf_employer"`
	ESIEmployer      float64        `gorm:"type:decimal(15,2);default:0;column:esi_employer" json:"esi_employer"`
	Gratuity         float64        `gorm:"type:decimal(15,2);default:0" json:"gratuity"`
	EffectiveFrom    time.Time      `gorm:"type:date;not null" json:"effective_from"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new salary structure
func (ss *SalaryStructure) BeforeCreate(tx *gorm.DB) error {
	if ss.ID == uuid.Nil {
		ss.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalaryStructure model
func (SalaryStructure) TableName() string {
	return "salary_structures"
}

// MonthlyGross returns the sum of earning components, excluding employer
// contributions.
func (ss *SalaryStructure) MonthlyGross() float64 {
	return ss.Basic + ss.HRA + ss.DA + ss.Conveyance + ss.Medical +
		ss.SpecialAllowance + ss.OtherAllowances
}
