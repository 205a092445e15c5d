package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONScript is the JSON event script format
// Example:
//
//	{
//	  "events": [
//	    {"op": "edit", "field": "priceEUR", "value": "10"},
//	    {"op": "edit", "field": "paidBGN", "value": "19,5583"},
//	    {"op": "key", "key": "esc", "field": "paidBGN"},
//	    {"op": "undo"}
//	  ]
//	}
type JSONScript struct {
	Events []JSONScriptEvent `json:"events"`
}

type JSONScriptEvent struct {
	Op    string `json:"op"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
	Key   string `json:"key,omitempty"`
}

// ParseJSONScript parses a JSON file in the JSON script format
func ParseJSONScript(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var script JSONScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	events := make([]Event, 0, len(script.Events))
	for i, raw := range script.Events {
		ev, err := newEvent(raw.Op, raw.Field, raw.Value, raw.Key)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
		events = append(events, ev)
	}

	return events, nil
}

func init() {
	RegisterScriptParser("json", ScriptParserFunc(ParseJSONScript))
}
