package internal

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseXLSXScript reads events from the first sheet of an Excel workbook.
// The header row must contain "Op" and may contain "Field", "Value" and "Key"
// in any order; rows above the header and blank rows are skipped.
func ParseXLSXScript(path string) ([]Event, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	// Find header row and column indices
	opCol, fieldCol, valueCol, keyCol := -1, -1, -1, -1
	dataStartRow := -1
	for i, row := range rows {
		opCol, fieldCol, valueCol, keyCol = -1, -1, -1, -1
		for j, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "op":
				opCol = j
			case "field":
				fieldCol = j
			case "value":
				valueCol = j
			case "key":
				keyCol = j
			}
		}
		if opCol >= 0 {
			dataStartRow = i + 1
			break
		}
	}

	if opCol < 0 {
		return nil, fmt.Errorf("could not find required column (Op)")
	}

	cell := func(row []string, col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	var events []Event
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]
		op := cell(row, opCol)
		if op == "" {
			continue
		}

		ev, err := newEvent(op, cell(row, fieldCol), cell(row, valueCol), cell(row, keyCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		events = append(events, ev)
	}

	return events, nil
}

func init() {
	RegisterScriptParser("xlsx", ScriptParserFunc(ParseXLSXScript))
}
