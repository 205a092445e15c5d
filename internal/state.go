package internal

import (
	"errors"
	"fmt"
	"strings"
)

// Field identifies one of the five monetary inputs
type Field string

const (
	FieldPriceEUR    Field = "priceEUR"
	FieldPaidEUR     Field = "paidEUR"
	FieldPaidBGN     Field = "paidBGN"
	FieldReturnedEUR Field = "returnedEUR"
	FieldReturnedBGN Field = "returnedBGN"
)

// fieldOrder is the fixed navigation order of the inputs
var fieldOrder = []Field{
	FieldPriceEUR,
	FieldPaidEUR,
	FieldPaidBGN,
	FieldReturnedEUR,
	FieldReturnedBGN,
}

var ErrUnknownField = errors.New("unknown field")

// Fields returns all fields in navigation order
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// IsKnownField reports whether f is one of the five inputs
func IsKnownField(f Field) bool {
	for _, candidate := range fieldOrder {
		if candidate == f {
			return true
		}
	}
	return false
}

// NextField returns the field after f in navigation order.
// The last field (and any unknown field) has no successor.
func NextField(f Field) (Field, bool) {
	for i, candidate := range fieldOrder {
		if candidate == f && i < len(fieldOrder)-1 {
			return fieldOrder[i+1], true
		}
	}
	return f, false
}

// ParseField resolves a field name case-insensitively.
// Both "paidBGN" and "paid-bgn" resolve to FieldPaidBGN.
func ParseField(name string) (Field, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
	for _, f := range fieldOrder {
		if strings.ToLower(string(f)) == key {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (available: %v)", ErrUnknownField, name, fieldOrder)
}

// FormState holds the raw, unparsed text of every input.
// It is a value type: copies never share state.
type FormState struct {
	PriceEUR    string `json:"priceEUR" yaml:"priceEUR"`
	PaidEUR     string `json:"paidEUR" yaml:"paidEUR"`
	PaidBGN     string `json:"paidBGN" yaml:"paidBGN"`
	ReturnedEUR string `json:"returnedEUR" yaml:"returnedEUR"`
	ReturnedBGN string `json:"returnedBGN" yaml:"returnedBGN"`
}

// Get returns the raw value of a field
func (s FormState) Get(f Field) string {
	switch f {
	case FieldPriceEUR:
		return s.PriceEUR
	case FieldPaidEUR:
		return s.PaidEUR
	case FieldPaidBGN:
		return s.PaidBGN
	case FieldReturnedEUR:
		return s.ReturnedEUR
	case FieldReturnedBGN:
		return s.ReturnedBGN
	default:
		return ""
	}
}

// With returns a copy of the state with one field replaced
func (s FormState) With(f Field, raw string) FormState {
	switch f {
	case FieldPriceEUR:
		s.PriceEUR = raw
	case FieldPaidEUR:
		s.PaidEUR = raw
	case FieldPaidBGN:
		s.PaidBGN = raw
	case FieldReturnedEUR:
		s.ReturnedEUR = raw
	case FieldReturnedBGN:
		s.ReturnedBGN = raw
	}
	return s
}

// IsEmpty reports whether every field is blank
func (s FormState) IsEmpty() bool {
	return s == FormState{}
}
