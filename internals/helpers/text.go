package helper

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeUpper trims, collapses inner whitespace, composes accents (NFC)
// and uppercases. Grouping in the dashboard depends on this being applied to
// names and service types.
func NormalizeUpper(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// CleanOptional trims a pointer value; blank becomes nil.
func CleanOptional(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// CleanOptionalUpper is CleanOptional followed by NormalizeUpper.
func CleanOptionalUpper(p *string) *string {
	v := CleanOptional(p)
	if v == nil {
		return nil
	}
	u := NormalizeUpper(*v)
	return &u
}

// StrPtr returns nil for blank strings.
func StrPtr(s string) *string {
	return CleanOptional(&s)
}
