package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rule kinds accepted in RuleConfig.Kind.
const (
	RuleKindPercentage = "percentage"
	RuleKindSlab       = "slab"
	RuleKindFormula    = "formula"
)

// CalculationRule is a configurable payroll component. The config decides
// how the component amount is derived from the payslip's base figures.
type CalculationRule struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Code        string         `gorm:"size:50;unique;not null" json:"code"`
	IsDeduction bool           `gorm:"default:false" json:"is_deduction"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	Config      RuleConfig     `gorm:"type:jsonb;serializer:json" json:"config"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new calculation rule
func (cr *CalculationRule) BeforeCreate(tx *gorm.DB) error {
	if cr.ID == uuid.Nil {
		cr.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CalculationRule model
func (CalculationRule) TableName() string {
	return "calculation_rules"
}

// RuleConfig is a tagged union over the three rule kinds. Exactly one of
// Percentage, Slabs or Formula is set, matching Kind.
type RuleConfig struct {
	Kind       string            `json:"kind"`
	Percentage *PercentageConfig `json:"percentage,omitempty"`
	Slabs      []SlabConfig      `json:"slabs,omitempty"`
	Formula    string            `json:"formula,omitempty"`
}

// PercentageConfig applies a flat rate to a base figure, optionally capped.
type PercentageConfig struct {
	// Base names the payslip figure the rate applies to: "basic" or "gross".
	Base string  `json:"base"`
	Rate float64 `json:"rate"`
	Cap  float64 `json:"cap,omitempty"`
}

// SlabConfig is one band of a slab rule. A zero UpTo marks the open-ended
// top band.
type SlabConfig struct {
	UpTo   float64 `json:"up_to"`
	Amount float64 `json:"amount"`
}

// Validate checks the union's shape without evaluating any formula.
func (rc *RuleConfig) Validate() error {
	switch rc.Kind {
	case RuleKindPercentage:
		if rc.Percentage == nil {
			return errors.New("percentage rule requires a percentage config")
		}
		if rc.Percentage.Base != "basic" && rc.Percentage.Base != "gross" {
			return fmt.Errorf("unknown percentage base %q", rc.Percentage.Base)
		}
		if rc.Percentage.Rate < 0 || rc.Percentage.Rate > 100 {
			return errors.New("percentage rate must be between 0 and 100")
		}
	case RuleKindSlab:
		if len(rc.Slabs) == 0 {
			return errors.New("slab rule requires at least one slab")
		}
		prev := 0.0
		for i, s := range rc.Slabs {
			if s.UpTo == 0 {
				if i != len(rc.Slabs)-1 {
					return errors.New("open-ended slab must be last")
				}
				continue
			}
			if s.UpTo <= prev {
				return errors.New("slab bounds must be strictly increasing")
			}
			prev = s.UpTo
		}
	case RuleKindFormula:
		if rc.Formula == "" {
			return errors.New("formula rule requires a formula")
		}
	default:
		return fmt.Errorf("unknown rule kind %q", rc.Kind)
	}
	return nil
}

// Scan implements the sql.Scanner interface for RuleConfig
func (rc *RuleConfig) Scan(value interface{}) error {
	if value == nil {
		*rc = RuleConfig{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan RuleConfig: unsupported type")
	}

	return json.Unmarshal(bytes, rc)
}

// Value implements the driver.Valuer interface for RuleConfig
func (rc RuleConfig) Value() (driver.Value, error) {
	return json.Marshal(rc)
}
