package pipeline

import "strings"

// Layout is a fixed markup shape for a section.
type Layout int

// Known layouts. LayoutStandard is also the fallback for unknown tags.
const (
	LayoutStandard Layout = iota
	LayoutHero
	LayoutTextOnly
)

// Template tags accepted in mappings.
const (
	TagStandard = "standard"
	TagHero     = "hero"
	TagTextOnly = "text-only"
)

// ParseLayout maps a template tag to its layout. Unknown tags, including
// the empty string, render as LayoutStandard.
func ParseLayout(tag string) Layout {
	switch tag {
	case TagStandard:
		return LayoutStandard
	case TagHero:
		return LayoutHero
	case TagTextOnly:
		return LayoutTextOnly
	default:
		return LayoutStandard
	}
}

// String returns the canonical tag of the layout.
func (l Layout) String() string {
	switch l {
	case LayoutHero:
		return TagHero
	case LayoutTextOnly:
		return TagTextOnly
	default:
		return TagStandard
	}
}

// htmlEscaper covers the five reserved characters. html.EscapeString is not
// used because it writes &#34; where this output needs &quot;.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes & < > " and ' for use in text content.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// textHTML escapes body text, then turns newlines into <br>. The order
// matters: escaping after the replacement would mangle the tag.
func textHTML(s string) string {
	return strings.ReplaceAll(EscapeHTML(s), "\n", "<br>")
}

// RenderSection renders a section with the layout selected by its template
// tag. Empty fields produce no element. Img goes into the src attribute
// as-is; see Sanitizer for untrusted input.
func RenderSection(sec Section) string {
	var lines []string
	add := func(cond bool, line string) {
		if cond {
			lines = append(lines, line)
		}
	}

	switch ParseLayout(sec.Template) {
	case LayoutHero:
		lines = append(lines, `<section class="block hero">`)
		add(sec.Img != "", `  <figure><img src="`+sec.Img+`" alt=""></figure>`)
		add(sec.Title != "", `  <h2 class="hero-title">`+EscapeHTML(sec.Title)+`</h2>`)
		add(sec.Text != "", `  <p class="hero-text">`+textHTML(sec.Text)+`</p>`)
		lines = append(lines, `</section>`)

	case LayoutTextOnly:
		lines = append(lines, `<section class="block text-only">`)
		add(sec.Header != "", `  <div class="label">`+EscapeHTML(sec.Header)+`</div>`)
		add(sec.Title != "", `  <h3>`+EscapeHTML(sec.Title)+`</h3>`)
		add(sec.Text != "", `  <p>`+textHTML(sec.Text)+`</p>`)
		lines = append(lines, `</section>`)

	default:
		lines = append(lines, `<div class="block">`)
		add(sec.Title != "", `  <h2>`+EscapeHTML(sec.Title)+`</h2>`)
		add(sec.Img != "", `  <img src="`+sec.Img+`" alt="">`)
		add(sec.Text != "", `  <p>`+textHTML(sec.Text)+`</p>`)
		lines = append(lines, `</div>`)
	}

	return strings.Join(lines, "\n")
}
