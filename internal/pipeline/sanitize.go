package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// blockClass limits class attributes to the names the layouts emit.
var blockClass = regexp.MustCompile(`^(block|hero|text-only|hero-title|hero-text|label)( (block|hero|text-only|hero-title|hero-text|label))*$`)

// Sanitizer strips anything the block layouts never produce: unknown
// elements, event handlers, and image URLs with unsafe schemes. Text
// escaping is preserved, though quotes come back as numeric references.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds the block-markup policy.
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "section", "figure", "h2", "h3", "p", "br")
	p.AllowAttrs("class").Matching(blockClass).OnElements("div", "section", "h2", "p")
	p.AllowImages()
	p.AllowURLSchemes("http", "https", "file")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)
	return &Sanitizer{policy: p}
}

// Sanitize filters a fragment list. Apply before WrapDocument: the policy
// drops <head> and <style>.
func (s *Sanitizer) Sanitize(fragment string) string {
	return s.policy.Sanitize(fragment)
}
