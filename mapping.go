package csvblocks

import (
	"fmt"
	"maps"
	"slices"

	"github.com/alnah/go-csvblocks/internal/pipeline"
	"github.com/alnah/go-csvblocks/internal/yamlutil"
)

// Mapping tells the classifier which keys carry which field and which layout
// each section header uses. A nil list means "use the default"; an empty,
// non-nil list means "no keys of this kind".
type Mapping struct {
	TitleKeysExact    []string          `yaml:"title_keys_exact"`
	ImageKeysContains []string          `yaml:"image_keys_contains"`
	TextKeysContains  []string          `yaml:"text_keys_contains"`
	TemplatesByHeader map[string]string `yaml:"templates_by_header"`
	DefaultTemplate   string            `yaml:"default_template"`
}

// DefaultMapping returns the built-in mapping with every option spelled out.
func DefaultMapping() Mapping {
	return Mapping{
		TitleKeysExact:    []string{pipeline.DefaultTitleKey},
		ImageKeysContains: []string{pipeline.DefaultImageKey},
		TextKeysContains:  pipeline.DefaultTextKeys(),
		TemplatesByHeader: map[string]string{},
		DefaultTemplate:   pipeline.DefaultTemplate,
	}
}

// ParseMapping decodes a JSON object or YAML map. Unknown keys are ignored.
// Empty input and syntax errors are reported as ErrMappingParse.
func ParseMapping(data []byte) (Mapping, error) {
	var m Mapping
	if err := yamlutil.Decode(data, &m); err != nil {
		return Mapping{}, fmt.Errorf("%w: %v", ErrMappingParse, err)
	}
	return m, nil
}

// ParseMappingOrDefault is ParseMapping with the lenient fallback of the
// interactive editor: any parse failure yields DefaultMapping.
func ParseMappingOrDefault(data []byte) Mapping {
	m, err := ParseMapping(data)
	if err != nil {
		return DefaultMapping()
	}
	return m
}

// rules resolves absent options to their defaults. Title keys are trimmed
// because they are compared exactly against trimmed cell keys.
func (m Mapping) rules() pipeline.Rules {
	r := pipeline.DefaultRules()

	if m.TitleKeysExact != nil {
		r.TitleKeys = make([]string, len(m.TitleKeysExact))
		for i, k := range m.TitleKeysExact {
			r.TitleKeys[i] = pipeline.TrimSpace(k)
		}
	}
	if m.ImageKeysContains != nil {
		r.ImageKeys = slices.Clone(m.ImageKeysContains)
	}
	if m.TextKeysContains != nil {
		r.TextKeys = slices.Clone(m.TextKeysContains)
	}
	if m.TemplatesByHeader != nil {
		r.TemplatesByHeader = maps.Clone(m.TemplatesByHeader)
	}
	if m.DefaultTemplate != "" {
		r.DefaultTemplate = m.DefaultTemplate
	}
	return r
}
