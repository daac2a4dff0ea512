package pipeline

import (
	"slices"
	"strings"
)

// Built-in keys, matching the spreadsheet layout the tool was made for.
const (
	DefaultTitleKey = "テストタイトル"
	DefaultImageKey = "画像パス"
	DefaultTemplate = "standard"
)

// DefaultTextKeys returns the built-in body text key substrings.
func DefaultTextKeys() []string {
	return []string{"テキスト", "本文"}
}

// Rules is the resolved key-classification rule set. Every field is final:
// callers resolve absent options to defaults before building Rules.
type Rules struct {
	TitleKeys         []string          // exact matches
	ImageKeys         []string          // substring matches
	TextKeys          []string          // substring matches
	TemplatesByHeader map[string]string // header -> template tag
	DefaultTemplate   string
}

// DefaultRules returns the rule set used when no mapping is supplied.
func DefaultRules() Rules {
	return Rules{
		TitleKeys:         []string{DefaultTitleKey},
		ImageKeys:         []string{DefaultImageKey},
		TextKeys:          DefaultTextKeys(),
		TemplatesByHeader: map[string]string{},
		DefaultTemplate:   DefaultTemplate,
	}
}

func (r Rules) isTitleKey(key string) bool {
	return slices.Contains(r.TitleKeys, key)
}

func (r Rules) isImageKey(key string) bool {
	return containsAny(key, r.ImageKeys)
}

func (r Rules) isTextKey(key string) bool {
	return containsAny(key, r.TextKeys)
}

// templateFor resolves the template tag for a section opened by header.
func (r Rules) templateFor(header string) string {
	if t := r.TemplatesByHeader[header]; t != "" {
		return t
	}
	return r.defaultTemplate()
}

func (r Rules) defaultTemplate() string {
	if r.DefaultTemplate == "" {
		return DefaultTemplate
	}
	return r.DefaultTemplate
}

// containsAny reports whether key contains any of subs. An empty substring
// matches every key.
func containsAny(key string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}
