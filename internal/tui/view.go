package tui

import (
	"fmt"
	"strings"

	"github.com/arcticlab23/resto2026/internal"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// View is the interactive calculator screen. All state lives in the
// session; the input widgets only mirror it.
type View struct {
	app     *tview.Application
	session *internal.Session
	labels  internal.Labels
	log     *zap.Logger

	// fields maps each form field to its input widget
	fields  map[internal.Field]*tview.InputField
	focused internal.Field

	hint   *tview.TextView
	result *tview.TextView
	root   tview.Primitive
}

// New builds the screen for a session. log may be nil.
func New(session *internal.Session, labels internal.Labels, log *zap.Logger) *View {
	if log == nil {
		log = zap.NewNop()
	}
	v := &View{
		app:     tview.NewApplication(),
		session: session,
		labels:  labels,
		log:     log,
		fields:  make(map[internal.Field]*tview.InputField, len(internal.Fields())),
		focused: internal.FieldPriceEUR,
	}
	v.root = v.build()
	v.app.SetInputCapture(v.capture)
	v.syncFields()
	v.refresh()
	return v
}

// Application exposes the underlying tview application, e.g. to attach a screen
func (v *View) Application() *tview.Application {
	return v.app
}

// Run shows the screen and blocks until the user quits with Ctrl+C
func (v *View) Run() error {
	v.log.Info("starting calculator screen")
	err := v.app.
		SetRoot(v.root, true).
		EnableMouse(true).
		SetFocus(v.fields[v.focused]).
		Run()
	if err != nil {
		return fmt.Errorf("running screen: %w", err)
	}
	v.log.Info("calculator screen closed", zap.Int("history", v.session.HistoryLen()))
	return nil
}

// Stop ends Run from another goroutine
func (v *View) Stop() {
	v.app.Stop()
}

func (v *View) build() tview.Primitive {
	l := v.labels

	header := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText(fmt.Sprintf("[::b]%s[::-]\n[gray]%s[-]", l.Get(internal.LabelTitle), l.Get(internal.LabelRate)))

	v.hint = tview.NewTextView().SetDynamicColors(true)

	payment := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.newInput(internal.FieldPriceEUR, l.Get(internal.LabelFinalPrice)), 1, 0, true).
		AddItem(tview.NewTextView().SetText(l.Get(internal.LabelAmountPaid)), 1, 0, false).
		AddItem(v.newInput(internal.FieldPaidEUR, l.Get(internal.LabelPaidEUR)), 1, 0, false).
		AddItem(v.newInput(internal.FieldPaidBGN, l.Get(internal.LabelPaidBGN)), 1, 0, false).
		AddItem(v.hint, 0, 1, false)
	payment.SetBorder(true).SetTitle(" " + l.Get(internal.LabelPaymentData) + " ")

	returned := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.newInput(internal.FieldReturnedEUR, l.Get(internal.LabelReturnedEUR)), 1, 0, false).
		AddItem(v.newInput(internal.FieldReturnedBGN, l.Get(internal.LabelReturnedBGN)), 1, 0, false).
		AddItem(nil, 0, 1, false)
	returned.SetBorder(true).SetTitle(" " + l.Get(internal.LabelAlreadyReturned) + " ")

	v.result = tview.NewTextView().SetDynamicColors(true)
	v.result.SetBorder(true).SetTitle(" " + l.Get(internal.LabelRemainingTitle) + " ")

	footer := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[gray]" + tview.Escape(v.keyHelp()) + "[-]")

	body := tview.NewFlex().
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(payment, 0, 3, true).
			AddItem(returned, 0, 2, false), 0, 1, true).
		AddItem(v.result, 0, 1, false)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 2, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(footer, 1, 0, false)
}

func (v *View) newInput(f internal.Field, label string) *tview.InputField {
	input := tview.NewInputField().
		SetLabel(label + " ").
		SetFieldWidth(16).
		SetPlaceholder("0.00")

	// Keystrokes and pastes that would make the text invalid never reach the field
	input.SetAcceptanceFunc(func(text string, _ rune) bool {
		return internal.IsValidInput(text)
	})

	// Every change, including deletions, is committed to the session.
	// Programmatic syncs write the session's own value and are skipped.
	input.SetChangedFunc(func(text string) {
		if text == v.session.State().Get(f) {
			return
		}
		if !v.session.AcceptEdit(f, text) {
			input.SetText(v.session.State().Get(f))
			return
		}
		v.refresh()
	})

	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyTab:
			v.focus(stepField(f, 1))
		case tcell.KeyBacktab:
			v.focus(stepField(f, -1))
		}
	})

	input.SetFocusFunc(func() {
		v.focused = f
	})

	input.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action == tview.MouseLeftDoubleClick && input.InRect(event.Position()) {
			v.clear(f)
			return tview.MouseConsumed, nil
		}
		return action, event
	})

	v.fields[f] = input
	return input
}

// capture routes bound keys to the session before the focused widget sees them
func (v *View) capture(event *tcell.EventKey) *tcell.EventKey {
	res := v.session.HandleKey(keyName(event), v.focused)
	if !res.Handled {
		return event
	}
	v.log.Debug("key handled",
		zap.String("key", keyName(event)),
		zap.String("intent", string(res.Intent)),
		zap.String("focus", string(res.Focus)))
	if res.Changed {
		v.syncFields()
		v.refresh()
	}
	if res.Focus != "" && res.Focus != v.focused {
		v.focus(res.Focus)
	}
	return nil
}

func (v *View) clear(f internal.Field) {
	v.session.ClearField(f)
	v.syncFields()
	v.refresh()
}

func (v *View) focus(f internal.Field) {
	input, ok := v.fields[f]
	if !ok {
		return
	}
	v.focused = f
	v.app.SetFocus(input)
}

// syncFields copies the session state into the widgets
func (v *View) syncFields() {
	state := v.session.State()
	for f, input := range v.fields {
		if want := state.Get(f); input.GetText() != want {
			input.SetText(want)
		}
	}
}

func (v *View) refresh() {
	b := v.session.Balance()
	if b.IsActivated {
		v.hint.SetText("")
	} else {
		v.hint.SetText("\n[gray]" + v.labels.Get(internal.LabelEnterPaymentData) + "[-]")
	}
	v.result.SetText(ResultText(b, v.labels))
}

func (v *View) keyHelp() string {
	help := v.labels.Get(internal.LabelKeyHelp)
	// Show rebound keys next to the defaults
	keys := v.session.KeyMap()
	var extra []string
	for _, intent := range []internal.Intent{internal.IntentClear, internal.IntentNext, internal.IntentUndo} {
		for _, key := range keys.KeysFor(intent) {
			if _, isDefault := internal.DefaultKeyMap()[key]; !isDefault {
				extra = append(extra, fmt.Sprintf("%s (%s)", key, intent))
			}
		}
	}
	if len(extra) > 0 {
		help += " • " + strings.Join(extra, " • ")
	}
	return help + " • " + v.labels.Get(internal.LabelRate)
}

// ResultText renders the remaining change panel as tview color markup
func ResultText(b internal.DerivedBalance, l internal.Labels) string {
	settlement, ok := b.Settlement()
	if !ok {
		return "\n[gray]" + l.Get(internal.LabelEnterPaymentData) + "[-]"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n[blue::b]%s[-::-]\n\n", l.Get(internal.LabelRemainingEUR), internal.EUR.Format(b.RemainingChangeEUR))
	fmt.Fprintf(&sb, "%s\n[green::b]%s[-::-]\n\n", l.Get(internal.LabelRemainingBGN), internal.BGN.Format(b.RemainingChangeBGN))
	fmt.Fprintf(&sb, "%s %s\n", l.Get(internal.LabelTotalPaid), internal.EUR.Format(b.TotalPaidEUR))
	fmt.Fprintf(&sb, "%s %s\n", l.Get(internal.LabelTotalChange), internal.EUR.Format(b.TotalChangeEUR))
	fmt.Fprintf(&sb, "%s %s\n", l.Get(internal.LabelTotalReturned), internal.EUR.Format(b.TotalReturnedEUR))

	// pending has no message
	switch settlement {
	case internal.SettlementBalanced:
		fmt.Fprintf(&sb, "\n[green::b]%s[-::-]", l.Settlement(settlement))
	case internal.SettlementOverReturned:
		fmt.Fprintf(&sb, "\n[red::b]%s[-::-]", l.Settlement(settlement))
	}
	return sb.String()
}

// stepField moves through the field order, wrapping at both ends
func stepField(f internal.Field, delta int) internal.Field {
	fields := internal.Fields()
	for i, candidate := range fields {
		if candidate == f {
			return fields[(i+delta+len(fields))%len(fields)]
		}
	}
	return fields[0]
}

// keyName turns a terminal key event into a KeyMap key name
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyCtrlZ:
		return "ctrl+z"
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return "alt+" + string(ev.Rune())
		}
		return string(ev.Rune())
	}
	return internal.NormalizeKey(ev.Name())
}
