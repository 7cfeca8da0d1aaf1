package sheet

import "strings"

// Dialect controls how raw spreadsheet-export text is tokenized into
// rows of fields.
//
// The export is consumed by two dashboards that historically shipped
// separate parsers. The lead dashboard scans the full text as one
// character stream, so a quoted field may contain literal newlines.
// The hiring-signal dashboard splits on newlines first and parses each
// line on its own, so it cannot represent an embedded newline inside a
// quoted field. Both behaviors are load-bearing for their sheets and
// are kept behind this flag set instead of being silently unified.
type Dialect struct {
	// SplitLines parses line-by-line. Quoted fields cannot span rows
	// in this mode; blank lines are dropped.
	SplitLines bool

	// Unescape rewrites the literal two-character sequences \n and \r
	// inside a field into real control characters. Sheet exports
	// double-escape newlines inside quoted cells.
	Unescape bool

	// TrimFields trims surrounding whitespace from every field.
	TrimFields bool
}

var (
	// LeadDialect matches the lead dashboard's parser.
	LeadDialect = Dialect{Unescape: true, TrimFields: true}

	// SignalDialect matches the hiring-signal dashboard's parser.
	// Fields are trimmed later, during column mapping.
	SignalDialect = Dialect{SplitLines: true}
)

// Parse tokenizes raw CSV text into rows of fields. It never fails:
// malformed quoting (an unterminated quote, say) runs to end of input
// under the last quote state and degrades to fewer or odd-shaped rows
// instead of an error. A single leading byte-order mark is dropped.
func (d Dialect) Parse(text string) [][]string {
	text = strings.TrimPrefix(text, "\uFEFF")
	if d.SplitLines {
		return d.parseLines(text)
	}
	return d.parseStream(text)
}

func (d Dialect) parseStream(text string) [][]string {
	var rows [][]string
	var row []string
	var field strings.Builder
	inQuotes := false

	flushField := func() {
		row = append(row, d.clean(field.String()))
		field.Reset()
	}
	flushRow := func() {
		// A row with no fields and an empty pending field is not a
		// row; this is what keeps trailing blank lines out.
		if len(row) > 0 || field.Len() > 0 {
			flushField()
			rows = append(rows, row)
			row = nil
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			flushField()
		case (ch == '\r' || ch == '\n') && !inQuotes:
			flushRow()
			if ch == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
		default:
			field.WriteRune(ch)
		}
	}
	flushRow()
	return rows
}

func (d Dialect) parseLines(text string) [][]string {
	var lines []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range text {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			current.WriteRune(ch)
		case ch == '\n' && !inQuotes:
			lines = append(lines, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		lines = append(lines, current.String())
	}

	var rows [][]string
	for i, line := range lines {
		if i > 0 && strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, d.parseLine(line))
	}
	return rows
}

func (d Dialect) parseLine(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, d.clean(field.String()))
			field.Reset()
		default:
			field.WriteRune(ch)
		}
	}
	fields = append(fields, d.clean(field.String()))
	return fields
}

func (d Dialect) clean(s string) string {
	if d.TrimFields {
		s = strings.TrimSpace(s)
	}
	if d.Unescape {
		s = strings.ReplaceAll(s, `\n`, "\n")
		s = strings.ReplaceAll(s, `\r`, "\r")
	}
	return s
}
