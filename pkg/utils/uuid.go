package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")

	reg := regexp.MustCompile("[^a-z0-9-]")
	s = reg.ReplaceAllString(s, "")

	reg = regexp.MustCompile("-+")
	s = reg.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// FormatDocNumber renders a sequential document number with its configured
// prefix, e.g. INV-000042. All document series (invoices, quotes, bills,
// journal entries) share this shape.
func FormatDocNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%06d", prefix, seq)
}
