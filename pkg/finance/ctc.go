package finance

import "errors"

// ErrInvalidCTC is returned when the annual CTC is not a positive amount.
var ErrInvalidCTC = errors.New("annual CTC must be greater than zero")

// Fixed monthly allowances used by the decomposition heuristic.
const (
	ConveyanceAllowance = 1600.0
	MedicalAllowance    = 1250.0
)

// SalaryComponents is the monthly breakdown estimated from an annual CTC.
// Employer contributions (PF, gratuity) are part of CTC but not of gross pay.
type SalaryComponents struct {
	MonthlyCTC       float64 `json:"monthly_ctc"`
	Basic            float64 `json:"basic"`
	HRA              float64 `json:"hra"`
	DA               float64 `json:"da"`
	Conveyance       float64 `json:"conveyance"`
	Medical          float64 `json:"medical"`
	SpecialAllowance float64 `json:"special_allowance"`
	OtherAllowances  float64 `json:"other_allowances"`
	PFEmployer       float64 `json:"pf_employer"`
	ESIEmployer      float64 `json:"esi_employer"`
	Gratuity         float64 `json:"gratuity"`
}

// MonthlyGross is the sum of the earning components, excluding employer
// contributions.
func (sc *SalaryComponents) MonthlyGross() float64 {
	return Round2(sc.Basic + sc.HRA + sc.DA + sc.Conveyance + sc.Medical + sc.SpecialAllowance + sc.OtherAllowances)
}

// DecomposeCTC allocates an annual CTC into monthly salary components using
// fixed percentage heuristics: basic is 45% of monthly CTC, HRA 50% of
// basic, DA 10% of basic, conveyance and medical are flat, and whatever
// remains splits 80/20 into special and other allowances.
//
// This is a one-way advisory estimator. Rounding and the flat allowances
// mean the components do not reconstruct the CTC exactly, and every field is
// independently editable after decomposition. ESI employer contribution is
// deliberately left at zero here; the gross threshold rule is applied at
// payslip time instead.
func DecomposeCTC(annualCTC float64) (*SalaryComponents, error) {
	if annualCTC <= 0 {
		return nil, ErrInvalidCTC
	}

	monthly := annualCTC / 12
	basic := RoundRupee(monthly * 0.45)
	hra := RoundRupee(basic * 0.5)
	da := RoundRupee(basic * 0.1)

	remaining := monthly - basic - hra - da - ConveyanceAllowance - MedicalAllowance
	special := 0.0
	other := 0.0
	if remaining > 0 {
		special = Round2(remaining * 0.8)
		other = Round2(remaining * 0.2)
	}

	pfBase := basic
	if pfBase > PFBasicCeiling {
		pfBase = PFBasicCeiling
	}

	return &SalaryComponents{
		MonthlyCTC:       Round2(monthly),
		Basic:            basic,
		HRA:              hra,
		DA:               da,
		Conveyance:       ConveyanceAllowance,
		Medical:          MedicalAllowance,
		SpecialAllowance: special,
		OtherAllowances:  other,
		PFEmployer:       RoundRupee(pfBase * PFEmployerRate / 100),
		ESIEmployer:      0,
		Gratuity:         RoundRupee(basic * GratuityRate / 100),
	}, nil
}
