package internal

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// inputPattern allows digits with at most one decimal separator
	inputPattern = regexp.MustCompile(`^\d*\.?\d*$`)

	// numericPrefix matches the leading number of a string, the way
	// a lenient float parser reads "12abc" as 12
	numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// normalizeSeparator turns the first comma into a dot
func normalizeSeparator(raw string) string {
	return strings.Replace(raw, ",", ".", 1)
}

// IsValidInput reports whether raw may be stored in a field.
// Empty input is always valid.
func IsValidInput(raw string) bool {
	if raw == "" {
		return true
	}
	return inputPattern.MatchString(normalizeSeparator(raw))
}

// ParseAmount converts raw field text to a number.
// Blank or unparseable text yields 0. Comma and dot are both accepted
// as decimal separator.
func ParseAmount(raw string) float64 {
	if raw == "" {
		return 0
	}
	cleaned := strings.TrimLeft(normalizeSeparator(raw), " \t\n\r")
	match := numericPrefix.FindString(cleaned)
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// out of range exponents
		return 0
	}
	return value
}
