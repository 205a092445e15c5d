package internal

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount with two decimals and digits grouped
// in threes by a space, e.g. 1234.5 -> "1 234.50".
//
// Rounding is half-up on the exact binary value of the float, so 1.125
// becomes "1.13" while 1.005 (stored as 1.00499...) becomes "1.00".
// Anything that rounds to zero prints as "0.00".
func FormatCurrency(value float64) string {
	if value == 0 {
		return "0.00"
	}
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	}
	return groupDigits(decimalCents(value).StringFixed(2))
}

// decimalCents rounds the exact value of v to cents, half away from zero
func decimalCents(v float64) decimal.Decimal {
	return decimal.NewFromFloatWithExponent(v, -2)
}

// groupDigits inserts a space every three integer digits from the right.
// The sign and the fractional part are left alone.
func groupDigits(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart := fixed, ""
	if idx := strings.IndexByte(fixed, '.'); idx != -1 {
		intPart, fracPart = fixed[:idx], fixed[idx:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + fracPart
	}

	var sb strings.Builder
	sb.Grow(len(fixed) + len(intPart)/3 + 1)
	sb.WriteString(sign)
	lead := len(intPart) % 3
	if lead > 0 {
		sb.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(intPart[i : i+3])
	}
	sb.WriteString(fracPart)
	return sb.String()
}
