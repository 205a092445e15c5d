package internal

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLabels_Bulgarian(t *testing.T) {
	l := NewLabels(language.Bulgarian)
	assert.Equal(t, language.Bulgarian, l.Tag())
	assert.Equal(t, "Калкулатор за ресто 2026", l.Get(LabelTitle))
	assert.Equal(t, "Балансът е точен", l.Settlement(SettlementBalanced))
	assert.Equal(t, "Върнато е повече от нужното", l.Settlement(SettlementOverReturned))
	assert.Equal(t, "", l.Settlement(SettlementPending))
	assert.Equal(t, "Платено в лв", l.Field(FieldPaidBGN))
}

func TestLabels_English(t *testing.T) {
	l := NewLabels(language.MustParse("en-GB"))
	assert.Equal(t, language.English, l.Tag())
	assert.Equal(t, LabelBalanced, l.Settlement(SettlementBalanced))
	assert.Equal(t, LabelEnterPaymentData, l.Settlement(""))
	assert.Equal(t, LabelFinalPrice, l.Field(FieldPriceEUR))
}

func TestLabels_ZeroValue(t *testing.T) {
	var l Labels
	assert.Equal(t, LabelTitle, l.Get(LabelTitle))
}

func TestBuildCatalog(t *testing.T) {
	c, err := buildCatalog()
	require.NoError(t, err)
	assert.ElementsMatch(t, supportedLanguages, c.Languages())
}

func TestLabels_EveryKeyTranslated(t *testing.T) {
	l := NewLabels(language.Bulgarian)
	for key, want := range bulgarian {
		assert.Equal(t, want, l.Get(key))
	}
}

func TestMatchLanguage(t *testing.T) {
	assert.Equal(t, language.Bulgarian, MatchLanguage(language.MustParse("bg-BG")))
	assert.Equal(t, language.English, MatchLanguage(language.MustParse("en-US")))
	assert.Equal(t, language.Bulgarian, MatchLanguage(language.Japanese))
}

func TestParseLocaleTag(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"bg_BG.UTF-8", language.MustParse("bg-BG")},
		{"en_US@euro", language.MustParse("en-US")},
		{"en", language.English},
		{"", language.Und},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLocaleTag(tt.locale), tt.locale)
	}
}

func TestResolveLanguage(t *testing.T) {
	assert.Equal(t, language.English, ResolveLanguage("en"))
	assert.Equal(t, language.Bulgarian, ResolveLanguage("bg"))

	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "en_US.UTF-8")
	assert.Equal(t, language.English, ResolveLanguage(""))

	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		// without locale variables these ask the OS
		return
	}
	t.Setenv("LANG", "C")
	assert.Equal(t, language.Bulgarian, ResolveLanguage(""))
}
