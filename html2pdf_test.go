package csvblocks

// Notes:
// - rodRenderer is not exercised here: it needs a real Chrome. The
//   converter is tested with a recording renderer instead, and
//   html2pdf_integration_test.go covers the browser under -tags integration.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

// recordingRenderer captures what rodConverter hands to the renderer.
type recordingRenderer struct {
	path    string
	content string
	page    *PageSettings
	err     error
	closed  bool
}

func (r *recordingRenderer) RenderFromFile(_ context.Context, filePath string, page *PageSettings) ([]byte, error) {
	r.path = filePath
	r.page = page
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	r.content = string(data)
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.7 fake"), nil
}

func (r *recordingRenderer) Close() error {
	r.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// TestRodConverter_ToPDF - Temp file handoff
// ---------------------------------------------------------------------------

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	rec := &recordingRenderer{}
	conv := &rodConverter{renderer: rec}
	page := &PageSettings{Size: "a4", Orientation: "portrait", Margin: 1}

	got, err := conv.ToPDF(context.Background(), "<p>本文</p>", page)
	if err != nil {
		t.Fatalf("ToPDF() unexpected error: %v", err)
	}
	if string(got) != "%PDF-1.7 fake" {
		t.Errorf("ToPDF() = %q", got)
	}
	if rec.content != "<p>本文</p>" {
		t.Errorf("renderer saw %q, want the HTML", rec.content)
	}
	if !strings.HasSuffix(rec.path, ".html") {
		t.Errorf("temp file %q should end with .html", rec.path)
	}
	if rec.page != page {
		t.Error("page settings should be passed through")
	}
	if _, err := os.Stat(rec.path); !os.IsNotExist(err) {
		t.Error("temp file should be removed after rendering")
	}

	if err := conv.Close(); err != nil {
		t.Errorf("Close() unexpected error: %v", err)
	}
	if !rec.closed {
		t.Error("Close() should close the renderer")
	}
}

func TestRodConverter_ToPDFError(t *testing.T) {
	t.Parallel()

	conv := &rodConverter{renderer: &recordingRenderer{err: ErrPageLoad}}
	if _, err := conv.ToPDF(context.Background(), "<p>x</p>", nil); !errors.Is(err, ErrPageLoad) {
		t.Errorf("ToPDF() error = %v, want ErrPageLoad", err)
	}
}

// ---------------------------------------------------------------------------
// TestBuildPDFOptions - Page settings to print parameters
// ---------------------------------------------------------------------------

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		page          *PageSettings
		width, height float64
		margin        float64
	}{
		{name: "nil uses A4 portrait", page: nil, width: 8.27, height: 11.69, margin: DefaultMargin},
		{name: "letter landscape", page: &PageSettings{Size: "letter", Orientation: "landscape", Margin: 1}, width: 11, height: 8.5, margin: 1},
		{name: "legal portrait", page: &PageSettings{Size: "legal", Orientation: "portrait", Margin: 0.25}, width: 8.5, height: 14, margin: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := buildPDFOptions(tt.page)
			if *opts.PaperWidth != tt.width || *opts.PaperHeight != tt.height {
				t.Errorf("paper = %vx%v, want %vx%v", *opts.PaperWidth, *opts.PaperHeight, tt.width, tt.height)
			}
			for _, m := range []*float64{opts.MarginTop, opts.MarginBottom, opts.MarginLeft, opts.MarginRight} {
				if *m != tt.margin {
					t.Errorf("margin = %v, want %v", *m, tt.margin)
				}
			}
			if !opts.PrintBackground {
				t.Error("PrintBackground should be enabled for block borders")
			}
		})
	}
}

func TestRodRenderer_RenderFromFileCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRodRenderer(defaultTimeout)
	if _, err := r.RenderFromFile(ctx, "/nonexistent.html", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() without a browser = %v, want nil", err)
	}
}
