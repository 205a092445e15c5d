package internal

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Label keys. The English text doubles as the catalog key.
const (
	LabelTitle            = "Change calculator 2026"
	LabelRate             = "Rate: 1€ = 1.95583лв"
	LabelPaymentData      = "Payment data"
	LabelFinalPrice       = "Final price:"
	LabelAmountPaid       = "Amount paid by the customer/patient:"
	LabelPaidEUR          = "Paid in €"
	LabelPaidBGN          = "Paid in лв"
	LabelAlreadyReturned  = "Change already returned"
	LabelReturnedEUR      = "Returned in €"
	LabelReturnedBGN      = "Returned in лв"
	LabelRemainingTitle   = "Remaining change to return"
	LabelRemainingEUR     = "Remaining to return in €:"
	LabelRemainingBGN     = "Remaining to return in лв:"
	LabelTotalPaid        = "Total paid:"
	LabelTotalChange      = "Total change:"
	LabelTotalReturned    = "Already returned:"
	LabelBalanced         = "The balance is exact"
	LabelOverReturned     = "More was returned than needed"
	LabelEnterPaymentData = "Enter payment data"
	LabelKeyHelp          = "Keys: Tab/Enter (navigate) • ESC (clear field) • Double-click (clear) • Ctrl+Z (undo)"
	LabelStatus           = "Status"
	LabelSession          = "Session"
	LabelFieldColumn      = "Field"
	LabelValueColumn      = "Value"
	LabelReceiptSheet     = "Receipt"
)

var bulgarian = map[string]string{
	LabelTitle:            "Калкулатор за ресто 2026",
	LabelRate:             "Курс: 1€ = 1.95583лв",
	LabelPaymentData:      "Данни за плащане",
	LabelFinalPrice:       "Крайна цена:",
	LabelAmountPaid:       "Платена сума от клиента/пациента:",
	LabelPaidEUR:          "Платено в €",
	LabelPaidBGN:          "Платено в лв",
	LabelAlreadyReturned:  "Вече върнато ресто",
	LabelReturnedEUR:      "Върнато в €",
	LabelReturnedBGN:      "Върнато в лв",
	LabelRemainingTitle:   "Оставащо ресто за връщане",
	LabelRemainingEUR:     "Остава да се върне в €:",
	LabelRemainingBGN:     "Остава да се върне в лв:",
	LabelTotalPaid:        "Платено общо:",
	LabelTotalChange:      "Ресто общо:",
	LabelTotalReturned:    "Вече върнато:",
	LabelBalanced:         "Балансът е точен",
	LabelOverReturned:     "Върнато е повече от нужното",
	LabelEnterPaymentData: "Въведете данни за плащане",
	LabelKeyHelp:          "Клавиши: Tab/Enter (навигация) • ESC (изчисти поле) • Double-click (изчисти) • Ctrl+Z (назад)",
	LabelStatus:           "Статус",
	LabelSession:          "Сесия",
	LabelFieldColumn:      "Поле",
	LabelValueColumn:      "Стойност",
	LabelReceiptSheet:     "Бележка",
}

// supportedLanguages lists the UI languages. The first is the fallback.
var supportedLanguages = []language.Tag{language.Bulgarian, language.English}

var languageMatcher = language.NewMatcher(supportedLanguages)

var labelCatalog = mustBuildCatalog()

func buildCatalog() (catalog.Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.Bulgarian))
	for key, text := range bulgarian {
		if err := b.SetString(language.Bulgarian, key, text); err != nil {
			return nil, fmt.Errorf("label %q (bg): %w", key, err)
		}
		if err := b.SetString(language.English, key, key); err != nil {
			return nil, fmt.Errorf("label %q (en): %w", key, err)
		}
	}
	return b, nil
}

func mustBuildCatalog() catalog.Catalog {
	c, err := buildCatalog()
	if err != nil {
		panic("labels: " + err.Error())
	}
	return c
}

// Labels looks up UI text for one language
type Labels struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLabels returns labels for the closest supported language
func NewLabels(tag language.Tag) Labels {
	matched := MatchLanguage(tag)
	return Labels{
		tag:     matched,
		printer: message.NewPrinter(matched, message.Catalog(labelCatalog)),
	}
}

// Tag returns the language the labels are rendered in
func (l Labels) Tag() language.Tag {
	return l.tag
}

// Get returns the translated text for a label key
func (l Labels) Get(key string) string {
	if l.printer == nil {
		return key
	}
	return l.printer.Sprintf(key)
}

// Field returns the label shown next to an input
func (l Labels) Field(f Field) string {
	switch f {
	case FieldPriceEUR:
		return l.Get(LabelFinalPrice)
	case FieldPaidEUR:
		return l.Get(LabelPaidEUR)
	case FieldPaidBGN:
		return l.Get(LabelPaidBGN)
	case FieldReturnedEUR:
		return l.Get(LabelReturnedEUR)
	case FieldReturnedBGN:
		return l.Get(LabelReturnedBGN)
	default:
		return string(f)
	}
}

// Settlement returns the message for a settlement state.
// Pending has no message.
func (l Labels) Settlement(s Settlement) string {
	switch s {
	case SettlementBalanced:
		return l.Get(LabelBalanced)
	case SettlementOverReturned:
		return l.Get(LabelOverReturned)
	case SettlementPending:
		return ""
	default:
		return l.Get(LabelEnterPaymentData)
	}
}

// MatchLanguage maps any tag onto a supported UI language
func MatchLanguage(tag language.Tag) language.Tag {
	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No {
		return supportedLanguages[0]
	}
	return supportedLanguages[idx]
}

// ResolveLanguage picks the UI language.
// Priority: configured language > system locale > Bulgarian.
func ResolveLanguage(configured string) language.Tag {
	if configured != "" {
		if tag, err := language.Parse(configured); err == nil {
			return MatchLanguage(tag)
		}
	}
	if tag := parseLocaleTag(detectSystemLocale()); tag != language.Und {
		return MatchLanguage(tag)
	}
	return supportedLanguages[0]
}

// parseLocaleTag converts a POSIX locale string to a language tag.
// Examples: "bg_BG.UTF-8" -> bg-BG, "en_US@euro" -> en-US, "C" -> und
func parseLocaleTag(locale string) language.Tag {
	if locale == "" {
		return language.Und
	}

	// Remove encoding suffix (everything after .)
	base := locale
	if idx := strings.Index(base, "."); idx != -1 {
		base = base[:idx]
	}

	// Remove modifier suffix (everything after @)
	if idx := strings.Index(base, "@"); idx != -1 {
		base = base[:idx]
	}

	// Convert to BCP 47 format: "bg_BG" -> "bg-BG"
	tag, err := language.Parse(strings.Replace(base, "_", "-", 1))
	if err != nil {
		return language.Und
	}
	return tag
}
