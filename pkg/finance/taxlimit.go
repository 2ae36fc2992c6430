package finance

// Statutory deduction ceilings per Income Tax Act section (old regime).
const (
	Limit80CPool   = 150000.0 // shared across 80C, 80CCC and 80CCD(1)
	Limit80CCD1B   = 50000.0
	Limit80D       = 25000.0
	Limit80DSenior = 50000.0
	Limit80TTA     = 10000.0
	Limit80TTB     = 50000.0
	Limit24B       = 200000.0
)

// DeclarationItem is one declared investment or expense under a section.
type DeclarationItem struct {
	Section  string  `json:"section"`
	Label    string  `json:"label,omitempty"`
	Declared float64 `json:"declared"`
}

// DeclarantFlags are conditions that change statutory limits.
type DeclarantFlags struct {
	SeniorCitizen bool `json:"senior_citizen"`
}

// SectionResult is the capped outcome for one section (or shared pool).
// Excess over a soft limit flags Capped but never blocks submission; the
// declared total is preserved alongside the allowed amount.
type SectionResult struct {
	Section  string  `json:"section"`
	Declared float64 `json:"declared"`
	Limit    float64 `json:"limit"` // 0 means no statutory cap
	Allowed  float64 `json:"allowed"`
	Capped   bool    `json:"capped"`
}

// poolKey folds the 80C family into its shared pool. Every other section
// caps independently and composes additively.
func poolKey(section string) string {
	switch section {
	case "80C", "80CCC", "80CCD(1)":
		return "80C"
	}
	return section
}

// SectionLimit returns the statutory cap for a section under the given
// flags. ok is false for unknown sections, whose amounts pass through
// uncapped.
func SectionLimit(section string, flags DeclarantFlags) (limit float64, ok bool) {
	switch poolKey(section) {
	case "80C":
		return Limit80CPool, true
	case "80CCD(1B)":
		return Limit80CCD1B, true
	case "80D":
		if flags.SeniorCitizen {
			return Limit80DSenior, true
		}
		return Limit80D, true
	case "80TTA":
		if flags.SeniorCitizen {
			// 80TTB supersedes 80TTA for senior citizens
			return Limit80TTB, true
		}
		return Limit80TTA, true
	case "80TTB":
		return Limit80TTB, true
	case "24(b)":
		return Limit24B, true
	case "80E":
		// interest on education loan has no ceiling
		return 0, true
	}
	return 0, false
}

// ApplyDeclarationLimits groups declared items by section (the 80C family
// pools into one bucket), caps each group at its statutory limit and flags
// the excess. Results are ordered by first appearance of each section.
func ApplyDeclarationLimits(items []DeclarationItem, flags DeclarantFlags) []SectionResult {
	order := []string{}
	grouped := map[string]float64{}

	for _, item := range items {
		key := poolKey(item.Section)
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] += item.Declared
	}

	results := make([]SectionResult, 0, len(order))
	for _, key := range order {
		declared := Round2(grouped[key])
		result := SectionResult{
			Section:  key,
			Declared: declared,
			Allowed:  declared,
		}

		if limit, ok := SectionLimit(key, flags); ok && limit > 0 {
			result.Limit = limit
			if declared > limit {
				result.Allowed = limit
				result.Capped = true
			}
		}

		results = append(results, result)
	}
	return results
}

// TotalAllowed sums the allowed amounts across section results.
func TotalAllowed(results []SectionResult) float64 {
	var total float64
	for _, r := range results {
		total += r.Allowed
	}
	return Round2(total)
}
