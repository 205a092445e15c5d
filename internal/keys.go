package internal

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Intent is what a key press asks the calculator to do
type Intent string

const (
	IntentClear Intent = "clear" // clear the focused field
	IntentNext  Intent = "next"  // move focus to the next field
	IntentUndo  Intent = "undo"  // restore the previous state, regardless of focus
)

var ErrUnknownIntent = errors.New("unknown intent")

// KeyMap binds normalized key names ("esc", "enter", "ctrl+z") to intents
type KeyMap map[string]Intent

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		"esc":    IntentClear,
		"enter":  IntentNext,
		"ctrl+z": IntentUndo,
	}
}

// NormalizeKey lowercases a key name and unifies common spellings,
// e.g. "Ctrl+Z" -> "ctrl+z", "Escape" -> "esc", "Return" -> "enter".
func NormalizeKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "+")
	switch key {
	case "escape":
		return "esc"
	case "return":
		return "enter"
	}
	return key
}

// ParseIntent validates an intent name
func ParseIntent(name string) (Intent, error) {
	switch Intent(strings.ToLower(strings.TrimSpace(name))) {
	case IntentClear:
		return IntentClear, nil
	case IntentNext:
		return IntentNext, nil
	case IntentUndo:
		return IntentUndo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIntent, name)
	}
}

// Lookup returns the intent bound to a key
func (k KeyMap) Lookup(key string) (Intent, bool) {
	intent, ok := k[NormalizeKey(key)]
	return intent, ok
}

// KeysFor returns every key bound to an intent, sorted
func (k KeyMap) KeysFor(intent Intent) []string {
	var keys []string
	for key, bound := range k {
		if bound == intent {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a copy of k with the overrides applied
func (k KeyMap) Merge(overrides KeyMap) KeyMap {
	merged := make(KeyMap, len(k)+len(overrides))
	for key, intent := range k {
		merged[NormalizeKey(key)] = intent
	}
	for key, intent := range overrides {
		merged[NormalizeKey(key)] = intent
	}
	return merged
}
