package internal

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency represents one of the calculator's currencies with its display rules
type Currency struct {
	Code string // "EUR", "BGN"
	unit currency.Unit
}

var (
	EUR = GetCurrency("EUR")
	BGN = GetCurrency("BGN")
)

// symbolOverrides provides custom symbols where x/text defaults aren't ideal.
// CLDR has no narrow symbol for the lev, so it would print "BGN".
var symbolOverrides = map[string]string{
	"BGN": "лв",
}

// symbolPrinter renders narrow symbols; the locale only matters for units
// without a narrow form.
var symbolPrinter = message.NewPrinter(language.Bulgarian)

// GetCurrency returns the Currency for a given code.
// Unknown codes keep the code itself as symbol.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(code)

	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.Unit{}
	}

	return Currency{Code: code, unit: unit}
}

// Symbol returns the currency symbol, using overrides where needed
func (c Currency) Symbol() string {
	if sym, ok := symbolOverrides[c.Code]; ok {
		return sym
	}
	if c.unit == (currency.Unit{}) {
		return c.Code
	}
	return symbolPrinter.Sprint(currency.NarrowSymbol(c.unit))
}

// isPrefix returns true if the symbol goes before the amount.
// The calculator shows "€ 5.00" but "9.78 лв".
func (c Currency) isPrefix() bool {
	switch c.Code {
	case "EUR", "USD", "GBP":
		return true
	default:
		return false
	}
}

// Format formats an amount with the currency symbol
func (c Currency) Format(amount float64) string {
	formatted := FormatCurrency(amount)
	if c.isPrefix() {
		return c.Symbol() + " " + formatted
	}
	return formatted + " " + c.Symbol()
}

// Convert converts an amount in this currency to the other calculator currency.
// Only EUR and BGN are supported; anything else is returned unchanged.
func (c Currency) Convert(amount float64, to Currency) float64 {
	switch {
	case c.Code == to.Code:
		return amount
	case c.Code == "EUR" && to.Code == "BGN":
		return amount * Rate
	case c.Code == "BGN" && to.Code == "EUR":
		return amount / Rate
	default:
		return amount
	}
}
