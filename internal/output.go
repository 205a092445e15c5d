package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// OutputOptions controls how a balance is displayed
type OutputOptions struct {
	Labels    Labels
	SessionID string
	NoColor   bool
}

// JSONOutput is the root JSON output object
type JSONOutput struct {
	SessionID  string         `json:"session_id,omitempty"`
	Rate       float64        `json:"rate"`
	Inputs     FormState      `json:"inputs"`
	Balance    DerivedBalance `json:"balance"`
	Settlement string         `json:"settlement,omitempty"`
	Formatted  JSONFormatted  `json:"formatted"`
}

// JSONFormatted carries the display strings, as shown on screen
type JSONFormatted struct {
	TotalPaidEUR       string `json:"total_paid_eur"`
	TotalChangeEUR     string `json:"total_change_eur"`
	TotalReturnedEUR   string `json:"total_returned_eur"`
	RemainingChangeEUR string `json:"remaining_change_eur"`
	RemainingChangeBGN string `json:"remaining_change_bgn"`
}

// NewJSONOutput assembles the JSON document for a state
func NewJSONOutput(sessionID string, state FormState, b DerivedBalance) JSONOutput {
	out := JSONOutput{
		SessionID: sessionID,
		Rate:      Rate,
		Inputs:    state,
		Balance:   b,
		Formatted: JSONFormatted{
			TotalPaidEUR:       FormatCurrency(b.TotalPaidEUR),
			TotalChangeEUR:     FormatCurrency(b.TotalChangeEUR),
			TotalReturnedEUR:   FormatCurrency(b.TotalReturnedEUR),
			RemainingChangeEUR: FormatCurrency(b.RemainingChangeEUR),
			RemainingChangeBGN: FormatCurrency(b.RemainingChangeBGN),
		},
	}
	if s, ok := b.Settlement(); ok {
		out.Settlement = string(s)
	}
	return out
}

// PrintBalanceJSON outputs the state and balance in JSON format
func PrintBalanceJSON(w io.Writer, sessionID string, state FormState, b DerivedBalance) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewJSONOutput(sessionID, state, b)); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// PrintBalanceTable outputs the inputs and the remaining change as a formatted table
func PrintBalanceTable(w io.Writer, state FormState, b DerivedBalance, opts OutputOptions) {
	l := opts.Labels

	fmt.Fprintf(w, "%s  (%s)\n", l.Get(LabelTitle), l.Get(LabelRate))
	if opts.SessionID != "" {
		fmt.Fprintf(w, "%s: %s\n", l.Get(LabelSession), opts.SessionID)
	}
	fmt.Fprintln(w)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{l.Get(LabelFieldColumn), l.Get(LabelValueColumn)})

	inputs := []struct {
		field    Field
		currency Currency
		value    float64
	}{
		{FieldPriceEUR, EUR, b.PriceEUR},
		{FieldPaidEUR, EUR, b.PaidEUR},
		{FieldPaidBGN, BGN, b.PaidBGN},
		{FieldReturnedEUR, EUR, b.ReturnedEUR},
		{FieldReturnedBGN, BGN, b.ReturnedBGN},
	}
	for _, in := range inputs {
		value := in.currency.Format(in.value)
		if state.Get(in.field) == "" {
			value = opts.paint(text.FgHiBlack, "-")
		}
		t.AppendRow(table.Row{l.Field(in.field), value})
	}

	settlement, activated := b.Settlement()
	if activated {
		t.AppendSeparator()
		t.AppendRow(table.Row{l.Get(LabelTotalPaid), EUR.Format(b.TotalPaidEUR)})
		t.AppendRow(table.Row{l.Get(LabelTotalChange), EUR.Format(b.TotalChangeEUR)})
		t.AppendRow(table.Row{l.Get(LabelTotalReturned), EUR.Format(b.TotalReturnedEUR)})
		t.AppendSeparator()
		t.AppendRow(table.Row{
			opts.paint(text.Bold, l.Get(LabelRemainingEUR)),
			opts.paint(text.Bold, EUR.Format(b.RemainingChangeEUR)),
		})
		t.AppendRow(table.Row{
			opts.paint(text.Bold, l.Get(LabelRemainingBGN)),
			opts.paint(text.Bold, BGN.Format(b.RemainingChangeBGN)),
		})
	}

	status := opts.paint(text.FgHiBlack, l.Get(LabelEnterPaymentData))
	if activated {
		status = opts.settlementText(settlement)
	}
	t.AppendFooter(table.Row{l.Get(LabelStatus), status})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	t.Render()
}

// PrintStep prints one replayed event and the resulting remaining change
func PrintStep(w io.Writer, step StepResult, opts OutputOptions) {
	outcome := string(step.Outcome)
	switch step.Outcome {
	case OutcomeRejected:
		outcome = opts.paint(text.FgRed, outcome)
	case OutcomeIgnored:
		outcome = opts.paint(text.FgHiBlack, outcome)
	}

	fmt.Fprintf(w, "%3d  %-32s %-10s", step.Index+1, step.Event.String(), outcome)
	if s, ok := step.Balance.Settlement(); ok {
		fmt.Fprintf(w, "  %s | %s",
			EUR.Format(step.Balance.RemainingChangeEUR),
			BGN.Format(step.Balance.RemainingChangeBGN))
		if msg := opts.settlementText(s); msg != "" {
			fmt.Fprintf(w, "  %s", msg)
		}
	}
	fmt.Fprintln(w)
}

// settlementText is empty for a pending balance
func (o OutputOptions) settlementText(s Settlement) string {
	msg := o.Labels.Settlement(s)
	switch s {
	case SettlementBalanced:
		return o.paint(text.FgGreen, msg)
	case SettlementOverReturned:
		return o.paint(text.FgRed, msg)
	default:
		return msg
	}
}

func (o OutputOptions) paint(color text.Color, s string) string {
	if o.NoColor {
		return s
	}
	return color.Sprint(s)
}
