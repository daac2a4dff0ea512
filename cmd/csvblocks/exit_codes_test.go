package main

// Notes:
// - exitCodeFor: we test sentinel errors from the library, config and CLI,
//   plus wrapped errors to verify the errors.Is() chain works correctly.
// - hintFor: we only check which errors get a hint, not the hint wording.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	csvblocks "github.com/alnah/go-csvblocks"
	"github.com/alnah/go-csvblocks/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", csvblocks.ErrBrowserConnect, ExitBrowser},
		{"page create", csvblocks.ErrPageCreate, ExitBrowser},
		{"page load", csvblocks.ErrPageLoad, ExitBrowser},
		{"pdf generation", csvblocks.ErrPDFGeneration, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("converting to PDF: %w", csvblocks.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"read mapping", ErrReadMapping, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no input files", ErrNoInputFiles, ExitIO},
		{"sheet read", csvblocks.ErrSheetRead, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"too many entries", config.ErrTooManyEntries, ExitUsage},
		{"mapping conflict", config.ErrMappingConflict, ExitUsage},
		{"invalid debounce", config.ErrInvalidDebounce, ExitUsage},
		{"invalid page size", csvblocks.ErrInvalidPageSize, ExitUsage},
		{"invalid orientation", csvblocks.ErrInvalidOrientation, ExitUsage},
		{"invalid margin", csvblocks.ErrInvalidMargin, ExitUsage},
		{"sheet not found", csvblocks.ErrSheetNotFound, ExitUsage},
		{"sheet not found under read error", fmt.Errorf("%w: %w", ErrReadInput, csvblocks.ErrSheetNotFound), ExitUsage},
		{"sheet not found in batch", &batchError{failed: 1, total: 1, first: fmt.Errorf("%w: %q", csvblocks.ErrSheetNotFound, "x")}, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"output collision", ErrOutputCollision, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"unexpected args", ErrUnexpectedArgs, ExitUsage},
		{"unsupported shell", fmt.Errorf("%w: \"tcsh\"", ErrUnsupportedShell), ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// Batch errors take the code of their first failure
		{"batch of browser failures", &batchError{failed: 2, total: 2, first: csvblocks.ErrPDFGeneration}, ExitBrowser},
		{"batch of read failures", &batchError{failed: 1, total: 3, first: ErrReadInput}, ExitIO},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"converter init", ErrConverterInit, ExitGeneral},
		{"internal", csvblocks.ErrInternal, ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReadInput_ExitCodes - Errors from real inputs keep their group
// ---------------------------------------------------------------------------

func TestReadInput_ExitCodes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	book := filepath.Join(dir, "book.xlsx")
	writeWorkbook(t, book, "Data", [][]string{{"", "テストタイトル", "x"}})

	tests := []struct {
		name  string
		path  string
		sheet string
		want  int
	}{
		{"missing sheet", book, "Missing", ExitUsage},
		{"missing workbook", filepath.Join(dir, "gone.xlsx"), "", ExitIO},
		{"missing csv", filepath.Join(dir, "gone.csv"), "", ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := readInput(tt.path, tt.sheet)
			if err == nil {
				t.Fatal("readInput() error = nil, want error")
			}
			got := exitCodeFor(&batchError{failed: 1, total: 1, first: err})
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("conventional codes changed: success=%d general=%d usage=%d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom exit code %d should be between 3 and 125", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Remediation hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint bool
	}{
		{"nil", nil, false},
		{"timeout", fmt.Errorf("pdf: %w", context.DeadlineExceeded), true},
		{"plain", errors.New("boom"), false},
		{"batch hides hints", &batchError{failed: 1, total: 1, first: context.DeadlineExceeded}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := hintFor(tt.err); (got != "") != tt.wantHint {
				t.Errorf("hintFor(%v) = %q, wantHint %v", tt.err, got, tt.wantHint)
			}
		})
	}
}

func TestBatchError(t *testing.T) {
	t.Parallel()

	err := &batchError{failed: 2, total: 5, first: ErrWriteOutput}
	if got := err.Error(); got != "2 of 5 conversion(s) failed" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrWriteOutput) {
		t.Error("batchError should unwrap to its first failure")
	}
}
