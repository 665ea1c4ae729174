package workbench

import (
	"errors"
	"strconv"
	"strings"
)

// ErrImportTooShort rejects uploads without a header line and one data line.
var ErrImportTooShort = errors.New("workbench: import needs a header line and at least one data line")

// FromCSV builds a virtual table from uploaded delimited text.
//
// Fields may be quoted with `"`; commas inside quotes do not split. There is
// no doubled-quote escape on input: quotes simply toggle the in-quote flag
// character by character. Each cell is trimmed, then coerced to a number when
// the trimmed value is non-empty and fully numeric. Headers are kept raw
// (no namespacing) and the source is recorded as a manual upload.
func (s *Synthesizer) FromCSV(text, name string) (VirtualTable, error) {
	if strings.TrimSpace(name) == "" {
		return VirtualTable{}, ErrEmptyName
	}
	lines := splitImportLines(text)
	if len(lines) < 2 {
		return VirtualTable{}, ErrImportTooShort
	}

	headers := splitDelimitedLine(lines[0])
	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := splitDelimitedLine(line)
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(cells) {
				row[header] = coerceCell(cells[i])
			} else {
				row[header] = Null()
			}
		}
		rows = append(rows, row)
	}

	return VirtualTable{
		ID:             s.newID(),
		Name:           strings.TrimSpace(name),
		SourceTableIDs: []string{ManualUploadSourceID},
		Fields:         headers,
		Data:           rows,
		CreatedAt:      s.now().UTC(),
	}, nil
}

// ExportCSV emits the table as delimited text: a raw header line, then one
// line per row with every value double-quoted and internal quotes doubled.
// Null values export as empty strings.
func ExportCSV(vt VirtualTable) string {
	var b strings.Builder
	b.WriteString(strings.Join(vt.Fields, ","))
	b.WriteString("\n")
	for _, row := range vt.Data {
		for i, field := range vt.Fields {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(`"`)
			b.WriteString(strings.ReplaceAll(row[field].Display(), `"`, `""`))
			b.WriteString(`"`)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func splitImportLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitDelimitedLine splits on commas outside quotes. A quote character
// toggles the in-quote flag and is dropped from the output; fields are
// trimmed of surrounding whitespace.
func splitDelimitedLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuote := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ',' && !inQuote:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields
}

func coerceCell(cell string) Value {
	if cell == "" {
		return String("")
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return Number(f)
	}
	return String(cell)
}
