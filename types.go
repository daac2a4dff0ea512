package csvblocks

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-csvblocks/internal/pipeline"
)

// Section is one classified content block.
type Section = pipeline.Section

// Layout is the closed set of block layouts a template tag resolves to.
type Layout = pipeline.Layout

// Layouts and the template tags that select them.
const (
	LayoutStandard = pipeline.LayoutStandard
	LayoutHero     = pipeline.LayoutHero
	LayoutTextOnly = pipeline.LayoutTextOnly

	TagStandard = pipeline.TagStandard
	TagHero     = pipeline.TagHero
	TagTextOnly = pipeline.TagTextOnly
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns A4 portrait with half-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid. A nil receiver is valid and
// means defaults. Comparison is case-insensitive.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, _, ok := paperSize(p.Size); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns the paper width and height in inches, swapped for
// landscape. Callers validate first.
func (p *PageSettings) dimensions() (width, height float64) {
	width, height, _ = paperSize(p.Size)
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		width, height = height, width
	}
	return width, height
}

func paperSize(size string) (width, height float64, ok bool) {
	switch strings.ToLower(size) {
	case PageSizeLetter:
		return 8.5, 11, true
	case PageSizeA4:
		return 8.27, 11.69, true
	case PageSizeLegal:
		return 8.5, 14, true
	}
	return 0, 0, false
}

// Input contains conversion parameters.
type Input struct {
	CSV     string     // CSV text; ignored when Rows is set
	Rows    [][]string // pre-split rows, e.g. from a spreadsheet
	Mapping *Mapping   // nil uses the converter's mapping

	Fragment bool // emit the bare block list instead of a full document
	PDF      bool // also render the document to PDF
	Preview  bool // also build the side-by-side preview page

	// SourceDir resolves relative image paths for PDF and preview output.
	SourceDir string
	// SiteRoot resolves root-relative image paths ("/img/a.jpg") for PDF
	// and preview output.
	SiteRoot string

	Page *PageSettings // nil uses the converter's page settings
}

// ConvertResult holds every artifact produced by one conversion.
type ConvertResult struct {
	HTML     []byte    // document or fragment list
	PDF      []byte    // set when Input.PDF
	Preview  []byte    // set when Input.Preview
	Sections []Section // classified sections, in output order
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout   time.Duration
	mapping   *Mapping
	sanitize  bool
	page      *PageSettings
	assetsDir string
}

// defaultTimeout bounds page loading when the context has no deadline.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF page-load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("csvblocks: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithMapping sets the mapping used when Input.Mapping is nil.
func WithMapping(m Mapping) Option {
	return func(c *Converter) {
		c.cfg.mapping = &m
	}
}

// WithSanitize filters generated blocks through an allow-list policy before
// they are wrapped. Image sources with unsafe schemes and any markup that
// the layouts do not produce are removed.
func WithSanitize(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.sanitize = enabled
	}
}

// WithPageSettings sets the PDF page layout used when Input.Page is nil.
func WithPageSettings(p *PageSettings) Option {
	return func(c *Converter) {
		c.cfg.page = p
	}
}

// WithAssetsDir loads preview assets from dir, falling back to the
// built-in ones for files it does not contain.
func WithAssetsDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetsDir = dir
	}
}
