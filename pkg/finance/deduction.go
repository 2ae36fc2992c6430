package finance

// Statutory rates and thresholds used across payroll and vendor payments.
// PF wages are capped at the statutory basic ceiling; ESI applies only while
// monthly gross stays at or under its threshold.
const (
	PFEmployeeRate    = 12.0
	PFEmployerRate    = 12.0
	PFBasicCeiling    = 15000.0
	ESIEmployeeRate   = 0.75
	ESIEmployerRate   = 3.25
	ESIGrossThreshold = 21000.0
	GratuityRate      = 4.81
)

// Deduction is the result of withholding a rate from a gross amount.
type Deduction struct {
	Gross    float64 `json:"gross"`
	Rate     float64 `json:"rate"`
	Deducted float64 `json:"deducted"`
	Net      float64 `json:"net"`
}

// ComputeDeduction withholds rate% of gross, rounded to the paise.
// gross=0 yields all zeros; a rate outside [0,100] or a negative gross is an
// error, not a clamp. Used identically for TDS, PF, ESI and gratuity.
func ComputeDeduction(gross, rate float64) (*Deduction, error) {
	if gross < 0 {
		return nil, ErrNegativeAmount
	}
	if rate < 0 || rate > 100 {
		return nil, ErrRateOutOfRange
	}

	deducted := Round2(gross * rate / 100)
	return &Deduction{
		Gross:    Round2(gross),
		Rate:     rate,
		Deducted: deducted,
		Net:      Round2(gross - deducted),
	}, nil
}

// tdsRates maps Income Tax Act withholding sections to their standard rates.
// A bill may override the rate; the table only supplies the default.
var tdsRates = map[string]float64{
	"194A": 10,   // interest other than securities
	"194C": 2,    // contractor payments (1% for individuals/HUF, handled by override)
	"194H": 5,    // commission or brokerage
	"194I": 10,   // rent
	"194J": 10,   // professional or technical fees
	"194Q": 0.1,  // purchase of goods above threshold
	"195":  20,   // payments to non-residents
}

// TDSRate returns the default withholding rate for a section code.
func TDSRate(section string) (float64, bool) {
	rate, ok := tdsRates[section]
	return rate, ok
}

// TDSSections lists the supported withholding sections.
func TDSSections() []string {
	sections := make([]string, 0, len(tdsRates))
	for s := range tdsRates {
		sections = append(sections, s)
	}
	return sections
}
