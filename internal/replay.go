package internal

import "fmt"

// Outcome describes what an event did to the session
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
	OutcomeCleared  Outcome = "cleared"
	OutcomeUndone   Outcome = "undone"
	OutcomeFocus    Outcome = "focus"
	OutcomeIgnored  Outcome = "ignored"
)

// StepResult is reported after every replayed event
type StepResult struct {
	Index   int
	Event   Event
	Outcome Outcome
	Focus   Field
	State   FormState
	Balance DerivedBalance
}

// ApplyEvents replays events against the session in order.
// Rejected edits and empty undos are outcomes, not errors. observe may be nil.
func ApplyEvents(s *Session, events []Event, observe func(StepResult)) error {
	focus := FieldPriceEUR
	for i, ev := range events {
		var outcome Outcome
		switch ev.Op {
		case OpEdit:
			focus = ev.Field
			if s.AcceptEdit(ev.Field, ev.Value) {
				outcome = OutcomeAccepted
			} else {
				outcome = OutcomeRejected
			}
		case OpClear:
			focus = ev.Field
			s.ClearField(ev.Field)
			outcome = OutcomeCleared
		case OpUndo:
			if s.Undo() {
				outcome = OutcomeUndone
			} else {
				outcome = OutcomeIgnored
			}
		case OpKey:
			if ev.Field != "" {
				focus = ev.Field
			}
			res := s.HandleKey(ev.Key, focus)
			outcome = keyOutcome(res)
			focus = res.Focus
		default:
			return fmt.Errorf("event %d: %w: %q", i+1, ErrUnknownOp, ev.Op)
		}

		if observe != nil {
			observe(StepResult{
				Index:   i,
				Event:   ev,
				Outcome: outcome,
				Focus:   focus,
				State:   s.State(),
				Balance: s.Balance(),
			})
		}
	}
	return nil
}

func keyOutcome(res KeyResult) Outcome {
	if !res.Handled {
		return OutcomeIgnored
	}
	switch res.Intent {
	case IntentClear:
		return OutcomeCleared
	case IntentUndo:
		if res.Changed {
			return OutcomeUndone
		}
		return OutcomeIgnored
	default:
		return OutcomeFocus
	}
}
