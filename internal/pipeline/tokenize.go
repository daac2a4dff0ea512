package pipeline

import "strings"

// lineEndings folds CRLF and lone CR into LF. The replacer tries "\r\n"
// before "\r" at each position, so CRLF collapses to a single LF.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Tokenize splits comma-delimited text into rows of fields.
//
// Quoting follows the usual spreadsheet export shape: a double quote toggles
// quoted mode and "" inside a quoted field yields one literal quote. Commas
// inside quotes are literal. A newline always ends the row, even when a quote
// was left open: the field is treated as closed instead of swallowing the
// next line. The final field and row are flushed at end of input, so the
// result always holds at least one row.
func Tokenize(text string) [][]string {
	text = lineEndings.Replace(text)

	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			row = append(row, field.String())
			field.Reset()
		case c == '\n':
			inQuotes = false
			row = append(row, field.String())
			field.Reset()
			rows = append(rows, row)
			row = nil
		default:
			field.WriteByte(c)
		}
	}

	row = append(row, field.String())
	return append(rows, row)
}
