//go:build integration

package csvblocks

// Notes:
// - These tests start a real headless Chrome. Rod downloads Chromium on
//   first run when none is installed.
// - Run with: go test -tags integration ./...

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

// ---------------------------------------------------------------------------
// TestRodConverter_ToPDF_Integration - Raw HTML to PDF
// ---------------------------------------------------------------------------

func TestRodConverter_ToPDF_Integration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page *PageSettings
	}{
		{"default page", nil},
		{"a4 landscape", &PageSettings{Size: PageSizeA4, Orientation: OrientationLandscape, Margin: 1}},
		{"legal portrait", &PageSettings{Size: PageSizeLegal, Orientation: OrientationPortrait, Margin: DefaultMargin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newRodConverter(testTimeout)
			t.Cleanup(func() { _ = conv.Close() })

			data, err := conv.ToPDF(context.Background(), `<!DOCTYPE html><html><body><h2>Hello</h2></body></html>`, tt.page)
			if err != nil {
				t.Fatalf("ToPDF() error = %v", err)
			}
			assertValidPDF(t, data)
		})
	}
}

// ---------------------------------------------------------------------------
// TestConverter_PDF_Integration - Full pipeline with a real browser
// ---------------------------------------------------------------------------

func TestConverter_PDF_Integration(t *testing.T) {
	t.Parallel()

	t.Run("sample CSV", func(t *testing.T) {
		t.Parallel()

		c := acquireConverter(t)
		res, err := c.Convert(context.Background(), Input{CSV: SampleCSV, PDF: true, Preview: true})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		assertValidPDF(t, res.PDF)
		if !strings.Contains(string(res.Preview), "<h2>") {
			t.Error("preview is missing the rendered blocks")
		}
	})

	t.Run("local image next to the source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		// 1x1 transparent GIF
		gif := []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")
		if err := os.WriteFile(filepath.Join(dir, "dot.gif"), gif, 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		c := acquireConverter(t)
		csv := "テストタイトル,画像パス,本文\nWith image,dot.gif,Body text\n"
		res, err := c.Convert(context.Background(), Input{CSV: csv, PDF: true, SourceDir: dir})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		assertValidPDF(t, res.PDF)
		if strings.Contains(string(res.HTML), "file://") {
			t.Error("HTML output should keep the relative image path")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRodRenderer_Context_Integration - Cancellation
// ---------------------------------------------------------------------------

func TestRodRenderer_Context_Integration(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.html")
	if err := os.WriteFile(path, []byte("<html><body><h2>x</h2></body></html>"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		r := newRodRenderer(testTimeout)
		t.Cleanup(func() { _ = r.Close() })

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := r.RenderFromFile(ctx, path, nil); !errors.Is(err, context.Canceled) {
			t.Fatalf("RenderFromFile() error = %v, want context.Canceled", err)
		}
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		t.Parallel()

		r := newRodRenderer(testTimeout)
		t.Cleanup(func() { _ = r.Close() })

		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		time.Sleep(time.Millisecond)

		if _, err := r.RenderFromFile(ctx, path, nil); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("RenderFromFile() error = %v, want context.DeadlineExceeded", err)
		}
	})
}
