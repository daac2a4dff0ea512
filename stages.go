package csvblocks

import "github.com/alnah/go-csvblocks/internal/pipeline"

// ComposeOptions controls the output shape of Compose.
type ComposeOptions = pipeline.ComposeOptions

// Tokenize splits CSV text into rows. It accepts malformed input: a quote
// left open is closed at the end of its line, and empty input yields a
// single row holding one empty field.
func Tokenize(text string) [][]string {
	return pipeline.Tokenize(text)
}

// NormalizeKey turns ideographic spaces into ASCII spaces and trims the result.
func NormalizeKey(s string) string {
	return pipeline.NormalizeKey(s)
}

// Classify groups rows into sections using m.
func Classify(rows [][]string, m Mapping) []Section {
	return pipeline.Classify(rows, m.rules())
}

// RenderSection renders one section with the layout its template selects.
func RenderSection(s Section) string {
	return pipeline.RenderSection(s)
}

// Compose renders sections in order, as a fragment list or a full document.
func Compose(sections []Section, opts ComposeOptions) string {
	return pipeline.Compose(sections, opts)
}

// ParseLayout resolves a template tag; unknown tags select LayoutStandard.
func ParseLayout(tag string) Layout {
	return pipeline.ParseLayout(tag)
}

// ExtractBody returns the body interior of a generated document and any
// other input unchanged.
func ExtractBody(doc string) string {
	return pipeline.ExtractBody(doc)
}
