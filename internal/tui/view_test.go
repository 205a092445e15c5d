package tui

import (
	"strings"
	"testing"

	"github.com/arcticlab23/resto2026/internal"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestView(t *testing.T) (*View, *internal.Session) {
	t.Helper()
	s := internal.NewSession()
	v := New(s, internal.NewLabels(language.English), nil)
	require.Len(t, v.fields, len(internal.Fields()))
	return v, s
}

func TestView_TypingCommitsToSession(t *testing.T) {
	v, s := newTestView(t)

	v.fields[internal.FieldPriceEUR].SetText("10")
	v.fields[internal.FieldPaidBGN].SetText("19,5583")

	assert.Equal(t, "10", s.State().PriceEUR)
	assert.Equal(t, "19,5583", s.State().PaidBGN)
	assert.Equal(t, 2, s.HistoryLen())
	assert.Contains(t, v.result.GetText(true), "The balance is exact")
}

func TestView_InvalidTextIsReverted(t *testing.T) {
	v, s := newTestView(t)

	v.fields[internal.FieldPaidEUR].SetText("5")
	v.fields[internal.FieldPaidEUR].SetText("5x")

	assert.Equal(t, "5", s.State().PaidEUR)
	assert.Equal(t, "5", v.fields[internal.FieldPaidEUR].GetText())
	assert.Equal(t, 1, s.HistoryLen())
}

func TestView_EscClearsFocusedFieldWithoutHistory(t *testing.T) {
	v, s := newTestView(t)
	v.fields[internal.FieldPaidEUR].SetText("20")
	v.focus(internal.FieldPaidEUR)

	consumed := v.capture(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	assert.Nil(t, consumed)
	assert.Equal(t, "", s.State().PaidEUR)
	assert.Equal(t, "", v.fields[internal.FieldPaidEUR].GetText())
	assert.Equal(t, 1, s.HistoryLen())
}

func TestView_CtrlZRestoresWidgets(t *testing.T) {
	v, s := newTestView(t)
	v.fields[internal.FieldPriceEUR].SetText("1")
	v.fields[internal.FieldPriceEUR].SetText("12")

	v.capture(tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl))

	assert.Equal(t, "1", s.State().PriceEUR)
	assert.Equal(t, "1", v.fields[internal.FieldPriceEUR].GetText())
	assert.Equal(t, 1, s.HistoryLen())
}

func TestView_EnterMovesFocus(t *testing.T) {
	v, _ := newTestView(t)
	v.focus(internal.FieldPaidBGN)

	v.capture(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, internal.FieldReturnedEUR, v.focused)
	assert.Same(t, v.fields[internal.FieldReturnedEUR], v.app.GetFocus())

	v.capture(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	v.capture(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, internal.FieldReturnedBGN, v.focused)
}

func TestView_UnboundKeysPassThrough(t *testing.T) {
	v, _ := newTestView(t)
	ev := tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone)
	assert.Same(t, ev, v.capture(ev))
}

func TestView_HintFollowsActivation(t *testing.T) {
	v, _ := newTestView(t)
	assert.Contains(t, v.hint.GetText(true), "Enter payment data")

	v.fields[internal.FieldPriceEUR].SetText("10")
	assert.Contains(t, v.hint.GetText(true), "Enter payment data")

	v.fields[internal.FieldPaidEUR].SetText("20")
	assert.Empty(t, strings.TrimSpace(v.hint.GetText(true)))
	assert.Contains(t, v.result.GetText(true), "€ 10.00")
}

func TestView_KeyHelpListsReboundKeys(t *testing.T) {
	s := internal.NewSession(internal.WithKeyMap(internal.DefaultKeyMap().Merge(internal.KeyMap{"f5": internal.IntentUndo})))
	v := New(s, internal.NewLabels(language.English), nil)
	assert.Contains(t, v.keyHelp(), "f5 (undo)")
}

func TestResultText(t *testing.T) {
	l := internal.NewLabels(language.English)

	tests := []struct {
		name   string
		state  internal.FormState
		want   []string
		absent []string
	}{
		{
			name:  "inactive",
			state: internal.FormState{PriceEUR: "10"},
			want:  []string{"Enter payment data"},
		},
		{
			name:   "pending",
			state:  internal.FormState{PriceEUR: "10", PaidEUR: "20"},
			want:   []string{"€ 10.00", "19.56 лв"},
			absent: []string{"[green::b]", "[red::b]", "The balance is exact", "More was returned than needed"},
		},
		{
			name:  "balanced",
			state: internal.FormState{PriceEUR: "10", PaidEUR: "20", ReturnedEUR: "10"},
			want:  []string{"€ 0.00", "The balance is exact", "[green::b]"},
		},
		{
			name:  "over returned",
			state: internal.FormState{PriceEUR: "10", PaidEUR: "20", ReturnedEUR: "15"},
			want:  []string{"€ -5.00", "-9.78 лв", "More was returned than needed", "[red::b]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResultText(internal.ComputeBalance(tt.state), l)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, got, a)
			}
		})
	}
}

func TestStepField(t *testing.T) {
	assert.Equal(t, internal.FieldPaidEUR, stepField(internal.FieldPriceEUR, 1))
	assert.Equal(t, internal.FieldPriceEUR, stepField(internal.FieldReturnedBGN, 1))
	assert.Equal(t, internal.FieldReturnedBGN, stepField(internal.FieldPriceEUR, -1))
	assert.Equal(t, internal.FieldPriceEUR, stepField("bogus", 1))
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "esc"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), "ctrl+z"},
		{tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone), "u"},
		{tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModAlt), "alt+u"},
		{tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "f5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keyName(tt.ev))
	}
}
