// Package config loads the YAML configuration file of the csvblocks CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-csvblocks/internal/fileutil"
	"github.com/alnah/go-csvblocks/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrTooManyEntries  = errors.New("too many entries")
	ErrMappingConflict = errors.New("mapping and mappingFile are mutually exclusive")
	ErrInvalidDebounce = errors.New("invalid watch debounce")
)

// Field limits.
const (
	MaxPathLength        = 4096
	MaxSheetNameLength   = 31 // Excel's own limit
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxKeyLength         = 200
	MaxTemplateLength    = 50
	MaxMappingEntries    = 100
)

// Debounce bounds for watch mode.
const (
	MinDebounce = 10 * time.Millisecond
	MaxDebounce = 10 * time.Second
)

// Config holds all CLI configuration.
type Config struct {
	Input       InputConfig    `yaml:"input"`
	Output      OutputConfig   `yaml:"output"`
	Mapping     *MappingConfig `yaml:"mapping"`     // inline mapping
	MappingFile string         `yaml:"mappingFile"` // JSON or YAML mapping file
	Sheet       string         `yaml:"sheet"`       // workbook sheet, empty = first
	Sanitize    bool           `yaml:"sanitize"`
	Assets      AssetsConfig   `yaml:"assets"`
	Page        PageConfig     `yaml:"page"`
	Watch       WatchConfig    `yaml:"watch"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination and artifact options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
	Fragment   bool   `yaml:"fragment"`   // block list without the document shell
	PDF        bool   `yaml:"pdf"`
	Preview    bool   `yaml:"preview"`
	SiteRoot   string `yaml:"siteRoot"` // resolves "/..." image paths for PDF and preview
}

// MappingConfig mirrors the mapping file format. Nil lists fall back to
// the built-in keys.
type MappingConfig struct {
	TitleKeysExact    []string          `yaml:"title_keys_exact"`
	ImageKeysContains []string          `yaml:"image_keys_contains"`
	TextKeysContains  []string          `yaml:"text_keys_contains"`
	TemplatesByHeader map[string]string `yaml:"templates_by_header"`
	DefaultTemplate   string            `yaml:"default_template"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "a4")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// WatchConfig defines watch mode options.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // Go duration, e.g. "200ms"
}

// DebounceDuration parses Debounce. Empty returns zero, meaning the default.
func (w WatchConfig) DebounceDuration() (time.Duration, error) {
	if w.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDebounce, err)
	}
	if d < MinDebounce || d > MaxDebounce {
		return 0, fmt.Errorf("%w: %s (must be between %s and %s)", ErrInvalidDebounce, d, MinDebounce, MaxDebounce)
	}
	return d, nil
}

// Validate bounds field sizes and checks cross-field rules. Called by
// LoadConfig, and available for configs built in code.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.siteRoot", c.Output.SiteRoot, MaxPathLength},
		{"mappingFile", c.MappingFile, MaxPathLength},
		{"sheet", c.Sheet, MaxSheetNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Mapping != nil {
		if c.MappingFile != "" {
			return ErrMappingConflict
		}
		if err := c.Mapping.validate(); err != nil {
			return err
		}
	}

	if _, err := c.Watch.DebounceDuration(); err != nil {
		return fmt.Errorf("watch.debounce: %w", err)
	}
	return nil
}

func (m *MappingConfig) validate() error {
	lists := []struct {
		name string
		keys []string
	}{
		{"mapping.title_keys_exact", m.TitleKeysExact},
		{"mapping.image_keys_contains", m.ImageKeysContains},
		{"mapping.text_keys_contains", m.TextKeysContains},
	}
	for _, l := range lists {
		if len(l.keys) > MaxMappingEntries {
			return fmt.Errorf("%w: %s (%d, max %d)", ErrTooManyEntries, l.name, len(l.keys), MaxMappingEntries)
		}
		for i, k := range l.keys {
			if err := validateFieldLength(fmt.Sprintf("%s[%d]", l.name, i), k, MaxKeyLength); err != nil {
				return err
			}
		}
	}

	if len(m.TemplatesByHeader) > MaxMappingEntries {
		return fmt.Errorf("%w: mapping.templates_by_header (%d, max %d)", ErrTooManyEntries, len(m.TemplatesByHeader), MaxMappingEntries)
	}
	for header, tag := range m.TemplatesByHeader {
		if err := validateFieldLength("mapping.templates_by_header key", header, MaxKeyLength); err != nil {
			return err
		}
		if err := validateFieldLength("mapping.templates_by_header["+header+"]", tag, MaxTemplateLength); err != nil {
			return err
		}
	}
	return validateFieldLength("mapping.default_template", m.DefaultTemplate, MaxTemplateLength)
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that produces full HTML documents
// next to their sources.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads a config by path (anything containing a separator) or
// by name, searched as name.yaml then name.yml in the working directory and
// then in the user config directory. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.Decode(data, &cfg, yamlutil.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-csvblocks", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
