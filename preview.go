package csvblocks

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-csvblocks/internal/assets"
)

// previewStyle is the chroma theme for the source pane.
const previewStyle = "github"

// previewData feeds the preview template.
type previewData struct {
	Title     string
	Count     int
	PageCSS   template.CSS
	SourceCSS template.CSS
	Blocks    template.HTML
	Source    template.HTML
}

// previewBuilder renders the side-by-side page: blocks as a browser shows
// them, next to the generated HTML source.
type previewBuilder struct {
	tmpl      *template.Template
	pageCSS   string
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func newPreviewBuilder(loader assets.AssetLoader) (*previewBuilder, error) {
	raw, err := loader.LoadTemplate(assets.PreviewTemplateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreview, err)
	}
	tmpl, err := template.New(assets.PreviewTemplateName).Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing template: %v", ErrPreview, err)
	}
	css, err := loader.LoadStyle(assets.PreviewStyleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreview, err)
	}

	lexer := lexers.Get("html")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get(previewStyle)
	if style == nil {
		style = styles.Fallback
	}

	return &previewBuilder{
		tmpl:      tmpl,
		pageCSS:   css,
		lexer:     chroma.Coalesce(lexer),
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(true), chromahtml.WithLineNumbers(true)),
	}, nil
}

// Build renders the page. blocks is the body interior to display; source is
// the generated output shown highlighted.
func (p *previewBuilder) Build(blocks, source string, count int) ([]byte, error) {
	var css strings.Builder
	if err := p.formatter.WriteCSS(&css, p.style); err != nil {
		return nil, fmt.Errorf("%w: writing highlight CSS: %v", ErrPreview, err)
	}

	iterator, err := p.lexer.Tokenise(nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: tokenising source: %v", ErrPreview, err)
	}
	var highlighted strings.Builder
	if err := p.formatter.Format(&highlighted, p.style, iterator); err != nil {
		return nil, fmt.Errorf("%w: highlighting source: %v", ErrPreview, err)
	}

	// The blocks are the subject of the preview and are shown as generated;
	// the source was escaped by chroma.
	data := previewData{
		Title:     fmt.Sprintf("Preview (%d blocks)", count),
		Count:     count,
		PageCSS:   template.CSS(p.pageCSS),             // #nosec G203
		SourceCSS: template.CSS(css.String()),          // #nosec G203
		Blocks:    template.HTML(blocks),               // #nosec G203
		Source:    template.HTML(highlighted.String()), // #nosec G203
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreview, err)
	}
	return buf.Bytes(), nil
}
