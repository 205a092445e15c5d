package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EventOp is the kind of a scripted user action
type EventOp string

const (
	OpEdit  EventOp = "edit"
	OpClear EventOp = "clear"
	OpUndo  EventOp = "undo"
	OpKey   EventOp = "key"
)

var ErrUnknownOp = errors.New("unknown event op")

// Event is one scripted user action, replayed against a Session
type Event struct {
	Op    EventOp `json:"op"`
	Field Field   `json:"field,omitempty"`
	Value string  `json:"value,omitempty"`
	Key   string  `json:"key,omitempty"`
}

func (e Event) String() string {
	switch e.Op {
	case OpEdit:
		return fmt.Sprintf("edit %s %q", e.Field, e.Value)
	case OpClear:
		return fmt.Sprintf("clear %s", e.Field)
	case OpKey:
		if e.Field != "" {
			return fmt.Sprintf("key %s @%s", e.Key, e.Field)
		}
		return fmt.Sprintf("key %s", e.Key)
	default:
		return string(e.Op)
	}
}

// newEvent builds and validates an event from loosely typed parts
func newEvent(op, field, value, key string) (Event, error) {
	ev := Event{Op: EventOp(strings.ToLower(strings.TrimSpace(op))), Value: value, Key: key}

	needsField := false
	switch ev.Op {
	case OpEdit, OpClear:
		needsField = true
	case OpUndo:
	case OpKey:
		if strings.TrimSpace(key) == "" {
			return Event{}, fmt.Errorf("key event without key name")
		}
		ev.Key = NormalizeKey(key)
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}

	if field != "" {
		f, err := ParseField(field)
		if err != nil {
			return Event{}, err
		}
		ev.Field = f
	} else if needsField {
		return Event{}, fmt.Errorf("%s event without field", ev.Op)
	}

	return ev, nil
}

// ScriptParser parses event script files into a list of events
type ScriptParser interface {
	Parse(path string) ([]Event, error)
}

// ScriptParserFunc is a function that implements ScriptParser
type ScriptParserFunc func(path string) ([]Event, error)

func (f ScriptParserFunc) Parse(path string) ([]Event, error) {
	return f(path)
}

// scriptParsers is the registry of available script formats
var scriptParsers = map[string]ScriptParser{}

// RegisterScriptParser registers a parser with the given name
func RegisterScriptParser(name string, p ScriptParser) {
	scriptParsers[name] = p
}

// GetScriptParser returns the parser for the given format
func GetScriptParser(format string) (ScriptParser, error) {
	p, ok := scriptParsers[format]
	if !ok {
		return nil, fmt.Errorf("unknown script format: %s (available: %v)", format, AvailableScriptFormats())
	}
	return p, nil
}

// AvailableScriptFormats returns the registered formats, sorted
func AvailableScriptFormats() []string {
	var formats []string
	for name := range scriptParsers {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// IsKnownScriptFormat returns true if the name is a registered format
func IsKnownScriptFormat(name string) bool {
	_, ok := scriptParsers[name]
	return ok
}

// ParseScriptArg splits a file argument that may have a format prefix.
// Example: "json:events.json" → ("json", "events.json")
// Example: "events.txt" → ("", "events.txt")
// Example: "C:\path\events.xlsx" → ("", "C:\path\events.xlsx")
func ParseScriptArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownScriptFormat(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg
}

// DetectScriptFormat guesses the format from the file extension
func DetectScriptFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".xlsx":
		return "xlsx"
	default:
		return "text"
	}
}

// LoadScript resolves the format (explicit, prefixed or by extension) and parses the file
func LoadScript(arg, format string) ([]Event, error) {
	prefixed, path := ParseScriptArg(arg)
	if format == "" {
		format = prefixed
	}
	if format == "" {
		format = DetectScriptFormat(path)
	}
	p, err := GetScriptParser(format)
	if err != nil {
		return nil, err
	}
	return p.Parse(path)
}

// ParseTextScript parses the line based script format:
//
//	# comment
//	priceEUR=10          shorthand for: edit priceEUR 10
//	edit paidBGN 19,5583
//	clear paidEUR
//	key esc paidEUR
//	undo
func ParseTextScript(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ReadTextScript(f)
}

// ReadTextScript parses the text script format from a reader
func ReadTextScript(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ev, err := parseTextLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return events, nil
}

func parseTextLine(line string) (Event, error) {
	tokens := strings.Fields(line)

	// field=value shorthand
	if name, value, ok := strings.Cut(tokens[0], "="); ok && len(tokens) == 1 {
		return newEvent(string(OpEdit), name, value, "")
	}

	op := tokens[0]
	args := tokens[1:]
	switch EventOp(strings.ToLower(op)) {
	case OpEdit:
		if len(args) == 0 || len(args) > 2 {
			return Event{}, fmt.Errorf("usage: edit <field> [value]")
		}
		value := ""
		if len(args) == 2 {
			value = args[1]
		}
		return newEvent(op, args[0], value, "")
	case OpClear:
		if len(args) != 1 {
			return Event{}, fmt.Errorf("usage: clear <field>")
		}
		return newEvent(op, args[0], "", "")
	case OpUndo:
		if len(args) != 0 {
			return Event{}, fmt.Errorf("usage: undo")
		}
		return newEvent(op, "", "", "")
	case OpKey:
		if len(args) == 0 || len(args) > 2 {
			return Event{}, fmt.Errorf("usage: key <name> [focused field]")
		}
		field := ""
		if len(args) == 2 {
			field = args[1]
		}
		return newEvent(op, field, "", args[0])
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
}

func init() {
	RegisterScriptParser("text", ScriptParserFunc(ParseTextScript))
}
