package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee represents a person on payroll. PAN gates TDS treatment, UAN
// identifies the provident fund account and ESIApplicable reflects gross
// pay against the ESI threshold.
type Employee struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	EmployeeCode  string         `gorm:"size:50;unique;not null" json:"employee_code"`
	FirstName     string         `gorm:"size:100;not null" json:"first_name"`
	LastName      string         `gorm:"size:100;not null" json:"last_name"`
	Email         *string        `gorm:"size:255" json:"email,omitempty"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	PAN           *string        `gorm:"size:10;column:pan" json:"pan,omitempty"`
	UAN           *string        `gorm:"size:12;column:uan" json:"uan,omitempty"`
	DateOfBirth   *time.Time     `gorm:"type:date" json:"date_of_birth,omitempty"`
	DateOfJoining time.Time      `gorm:"type:date;not null" json:"date_of_joining"`
	DateOfLeaving *time.Time     `gorm:"type:date" json:"date_of_leaving,omitempty"`
	Designation   *string        `gorm:"size:100" json:"designation,omitempty"`
	Department    *string        `gorm:"size:100" json:"department,omitempty"`
	BankName      *string        `gorm:"size:255" json:"bank_name,omitempty"`
	AccountNumber *string        `gorm:"size:100" json:"account_number,omitempty"`
	IFSC          *string        `gorm:"size:11;column:ifsc" json:"ifsc,omitempty"`
	PFOptOut      bool           `gorm:"default:false;column:pf_opt_out" json:"pf_opt_out"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User             User              `gorm:"foreignKey:UserID" json:"-"`
	SalaryStructures []SalaryStructure `gorm:"foreignKey:EmployeeID" json:"-"`
	Payslips         []Payslip         `gorm:"foreignKey:EmployeeID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new employee
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// FullName returns the employee's display name
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// IsActive reports whether the employee is currently employed
func (e *Employee) IsActive() bool {
	return e.DateOfLeaving == nil
}
