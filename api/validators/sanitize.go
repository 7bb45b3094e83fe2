package validators

import "strings"

// SanitizeString trims surrounding whitespace. Length limits are enforced by
// validation, never by cutting input.
func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}

// OptionalString sanitizes input and maps blank values to nil.
func OptionalString(input string) *string {
	value := SanitizeString(input)
	if value == "" {
		return nil
	}
	return &value
}
