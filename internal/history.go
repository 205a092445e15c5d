package internal

// History is a stack of FormState snapshots taken before each accepted edit
type History struct {
	entries []FormState
}

// Record pushes a snapshot. FormState is copied by value, so later edits
// never reach the stored entry.
func (h *History) Record(state FormState) {
	h.entries = append(h.entries, state)
}

// Undo pops the most recent snapshot. ok is false when the history is empty.
func (h *History) Undo() (state FormState, ok bool) {
	if len(h.entries) == 0 {
		return FormState{}, false
	}
	last := len(h.entries) - 1
	state = h.entries[last]
	h.entries[last] = FormState{}
	h.entries = h.entries[:last]
	return state, true
}

// Len returns the number of stored snapshots
func (h *History) Len() int {
	return len(h.entries)
}

// Peek returns the most recent snapshot without removing it
func (h *History) Peek() (FormState, bool) {
	if len(h.entries) == 0 {
		return FormState{}, false
	}
	return h.entries[len(h.entries)-1], true
}
