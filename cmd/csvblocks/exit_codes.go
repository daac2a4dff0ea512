package main

import (
	"context"
	"errors"
	"os"

	csvblocks "github.com/alnah/go-csvblocks"
	"github.com/alnah/go-csvblocks/internal/config"
	"github.com/alnah/go-csvblocks/internal/hints"
)

// Exit codes for csvblocks CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, csvblocks.ErrBrowserConnect) ||
		errors.Is(err, csvblocks.ErrPageCreate) ||
		errors.Is(err, csvblocks.ErrPageLoad) ||
		errors.Is(err, csvblocks.ErrPDFGeneration) {
		return ExitBrowser
	}

	// A missing sheet is a bad --sheet value even though the workbook was
	// opened, so it wins over the I/O group.
	if errors.Is(err, csvblocks.ErrSheetNotFound) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadMapping) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoInputFiles) ||
		errors.Is(err, csvblocks.ErrSheetRead) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrTooManyEntries) ||
		errors.Is(err, config.ErrMappingConflict) ||
		errors.Is(err, config.ErrInvalidDebounce) ||
		errors.Is(err, csvblocks.ErrInvalidPageSize) ||
		errors.Is(err, csvblocks.ErrInvalidOrientation) ||
		errors.Is(err, csvblocks.ErrInvalidMargin) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrOutputCollision) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnexpectedArgs) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns a remediation hint for errors the user can act on.
// Batch errors carry no hint; each FAILED line already printed its own.
func hintFor(err error) string {
	var be *batchError
	if err == nil || errors.As(err, &be) {
		return ""
	}
	switch {
	case errors.Is(err, csvblocks.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	}
	return ""
}
