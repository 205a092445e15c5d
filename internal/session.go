package internal

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session owns the form state and its undo history for one calculator screen.
// It is not safe for concurrent use; all calls are expected from one event loop.
type Session struct {
	ID string

	state    FormState
	history  History
	keys     KeyMap
	handlers map[Intent]intentHandler
	log      *zap.Logger
}

// KeyResult describes what a key press did
type KeyResult struct {
	Handled bool
	Intent  Intent
	// Focus is the field that should have focus afterwards
	Focus Field
	// Changed is true when the form state was modified
	Changed bool
}

type intentHandler func(s *Session, focused Field) KeyResult

// SessionOption configures a Session
type SessionOption func(*Session)

// WithLogger sets the logger used for edit tracing
func WithLogger(log *zap.Logger) SessionOption {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithKeyMap replaces the default key bindings
func WithKeyMap(keys KeyMap) SessionOption {
	return func(s *Session) {
		if len(keys) > 0 {
			s.keys = KeyMap{}.Merge(keys)
		}
	}
}

// WithInitialState starts the session from a given state without history
func WithInitialState(state FormState) SessionOption {
	return func(s *Session) {
		s.state = state
	}
}

// NewSession creates an empty session
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		ID:   uuid.NewString(),
		keys: DefaultKeyMap(),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("session", s.ID))
	s.handlers = map[Intent]intentHandler{
		IntentClear: handleClear,
		IntentNext:  handleNext,
		IntentUndo:  handleUndo,
	}
	return s
}

// State returns a copy of the current form state
func (s *Session) State() FormState {
	return s.state
}

// SetState replaces the form state without touching the history
func (s *Session) SetState(state FormState) {
	s.state = state
}

// HistoryLen returns the number of undo steps available
func (s *Session) HistoryLen() int {
	return s.history.Len()
}

// KeyMap returns the active key bindings
func (s *Session) KeyMap() KeyMap {
	return s.keys
}

// Balance computes the balance for the current state
func (s *Session) Balance() DerivedBalance {
	return ComputeBalance(s.state)
}

// AcceptEdit stores raw as the new value of field if it is a valid amount.
// The previous state is recorded for undo. Invalid input or an unknown
// field changes nothing and returns false.
func (s *Session) AcceptEdit(field Field, raw string) bool {
	if !IsKnownField(field) || !IsValidInput(raw) {
		s.log.Debug("edit rejected",
			zap.String("field", string(field)),
			zap.String("value", raw))
		return false
	}

	s.history.Record(s.state)
	s.state = s.state.With(field, raw)

	s.log.Debug("edit accepted",
		zap.String("field", string(field)),
		zap.String("value", raw),
		zap.Int("history", s.history.Len()))
	return true
}

// ClearField blanks a field. Clearing is not recorded in the undo history.
func (s *Session) ClearField(field Field) {
	s.state = s.state.With(field, "")
	s.log.Debug("field cleared", zap.String("field", string(field)))
}

// Undo restores the state from before the last accepted edit.
// It returns false, and does nothing, when there is no history.
func (s *Session) Undo() bool {
	prev, ok := s.history.Undo()
	if !ok {
		s.log.Debug("undo ignored, history empty")
		return false
	}
	s.state = prev
	s.log.Debug("undo", zap.Int("history", s.history.Len()))
	return true
}

// HandleKey dispatches a key press. focused is the field that currently
// has focus; undo ignores it.
func (s *Session) HandleKey(key string, focused Field) KeyResult {
	intent, ok := s.keys.Lookup(key)
	if !ok {
		return KeyResult{Focus: focused}
	}
	handler, ok := s.handlers[intent]
	if !ok {
		return KeyResult{Focus: focused}
	}
	result := handler(s, focused)
	result.Handled = true
	result.Intent = intent
	return result
}

func handleClear(s *Session, focused Field) KeyResult {
	if focused == "" {
		return KeyResult{}
	}
	before := s.state
	s.ClearField(focused)
	return KeyResult{Focus: focused, Changed: before != s.state}
}

func handleNext(_ *Session, focused Field) KeyResult {
	next, _ := NextField(focused)
	return KeyResult{Focus: next}
}

// handleUndo reads the session's history at call time
func handleUndo(s *Session, focused Field) KeyResult {
	return KeyResult{Focus: focused, Changed: s.Undo()}
}
