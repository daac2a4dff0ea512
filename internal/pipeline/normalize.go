package pipeline

import (
	"strings"
	"unicode"
)

// ideographicSpace is the full-width space common in Japanese spreadsheets.
const ideographicSpace = "\u3000"

// NormalizeKey folds full-width spaces to ASCII spaces and trims the result.
// Applied to the key column only.
func NormalizeKey(s string) string {
	return TrimSpace(strings.ReplaceAll(s, ideographicSpace, " "))
}

// TrimSpace trims the whitespace set browsers use for String.prototype.trim:
// Unicode White_Space without NEL, plus the byte order mark. A BOM glued to
// the first cell of an export is therefore dropped.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, isTrimmable)
}

func isTrimmable(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r)
}

// fieldAt returns row[i], or "" when the row is too short.
func fieldAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// isBlankRow reports whether every field is empty after trimming.
// A row with no fields is blank.
func isBlankRow(row []string) bool {
	for _, f := range row {
		if TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
