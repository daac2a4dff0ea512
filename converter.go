package csvblocks

import (
	"context"
	"fmt"

	"github.com/alnah/go-csvblocks/internal/assets"
	"github.com/alnah/go-csvblocks/internal/pipeline"
)

// Converter runs the CSV to HTML pipeline and, on request, the preview and
// PDF stages. A Converter is not safe for concurrent use; see ConverterPool.
type Converter struct {
	cfg          converterConfig
	sanitizer    *pipeline.Sanitizer
	preview      *previewBuilder
	pdfConverter pdfConverter
}

// NewConverter creates a Converter. The browser used for PDF output is only
// started by the first conversion that asks for a PDF.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.page.Validate(); err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetsDir)
	if err != nil {
		return nil, fmt.Errorf("loading preview assets: %w", err)
	}
	if c.preview, err = newPreviewBuilder(resolver); err != nil {
		return nil, err
	}

	if c.cfg.sanitize {
		c.sanitizer = pipeline.NewSanitizer()
	}

	// Tests inject a fake converter before this point.
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}
	return c, nil
}

// Convert compiles input into HTML and any extra artifacts it asks for.
// Blank input produces an empty result with no document shell: a CSV that
// is only whitespace, or a non-nil Rows with no rows.
func (c *Converter) Convert(ctx context.Context, input Input) (res *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page := input.Page
	if page == nil {
		page = c.cfg.page
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	rows := input.Rows
	switch {
	case rows != nil && len(rows) == 0:
		// An empty sheet is blank input, like an empty CSV.
		return &ConvertResult{HTML: []byte{}}, nil
	case rows == nil:
		if pipeline.TrimSpace(input.CSV) == "" {
			return &ConvertResult{HTML: []byte{}}, nil
		}
		rows = pipeline.Tokenize(input.CSV)
	}

	sections := pipeline.Classify(rows, c.mappingFor(input).rules())

	body := pipeline.JoinFragments(sections)
	if c.sanitizer != nil {
		body = c.sanitizer.Sanitize(body)
	}
	out := body
	if !input.Fragment {
		out = pipeline.WrapDocument(body)
	}

	res = &ConvertResult{HTML: []byte(out), Sections: sections}
	if !input.Preview && !input.PDF {
		return res, nil
	}

	// Preview and PDF are opened from elsewhere on disk, so local image
	// paths must become absolute file URLs.
	localBody, err := pipeline.RewriteImagePaths(body, pipeline.ImagePathOptions{
		BaseDir:  input.SourceDir,
		SiteRoot: input.SiteRoot,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImagePaths, err)
	}

	if input.Preview {
		if res.Preview, err = c.preview.Build(localBody, out, len(sections)); err != nil {
			return nil, err
		}
	}

	if input.PDF {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if res.PDF, err = c.pdfConverter.ToPDF(ctx, pipeline.WrapDocument(localBody), page); err != nil {
			return nil, fmt.Errorf("converting to PDF: %w", err)
		}
	}

	return res, nil
}

// Close releases the browser, if one was started.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

func (c *Converter) mappingFor(input Input) Mapping {
	switch {
	case input.Mapping != nil:
		return *input.Mapping
	case c.cfg.mapping != nil:
		return *c.cfg.mapping
	default:
		return DefaultMapping()
	}
}
