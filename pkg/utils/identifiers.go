package utils

import "regexp"

// Statutory identifier formats. These are format checks only; registry
// lookups (GST portal, NSDL) are out of scope.
var (
	panPattern   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	tanPattern   = regexp.MustCompile(`^[A-Z]{4}[0-9]{5}[A-Z]$`)
	ifscPattern  = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	hsnPattern   = regexp.MustCompile(`^[0-9]{4}(?:[0-9]{2})?(?:[0-9]{2})?$`)
	uanPattern   = regexp.MustCompile(`^[0-9]{12}$`)
)

// IsValidPAN reports whether s is a well-formed Permanent Account Number.
func IsValidPAN(s string) bool {
	return panPattern.MatchString(s)
}

// IsValidGSTIN reports whether s is a well-formed 15-character GST
// registration number (state code + PAN + entity code + 'Z' + check char).
func IsValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

// IsValidTAN reports whether s is a well-formed Tax Deduction Account Number.
func IsValidTAN(s string) bool {
	return tanPattern.MatchString(s)
}

// IsValidIFSC reports whether s is a well-formed bank branch IFSC code.
func IsValidIFSC(s string) bool {
	return ifscPattern.MatchString(s)
}

// IsValidHSN reports whether s is a 4, 6 or 8 digit HSN/SAC code.
func IsValidHSN(s string) bool {
	return hsnPattern.MatchString(s)
}

// IsValidUAN reports whether s is a 12-digit provident fund UAN.
func IsValidUAN(s string) bool {
	return uanPattern.MatchString(s)
}

// GSTINStateCode extracts the two-digit state code prefix of a GSTIN.
// Returns "" when the GSTIN is malformed.
func GSTINStateCode(gstin string) string {
	if !IsValidGSTIN(gstin) {
		return ""
	}
	return gstin[:2]
}
