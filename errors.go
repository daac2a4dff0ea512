package csvblocks

import (
	"errors"

	"github.com/alnah/go-csvblocks/internal/sheet"
)

// Sentinel errors for library operations.
var (
	ErrMappingParse   = errors.New("invalid mapping")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPreview        = errors.New("preview rendering failed")
	ErrImagePaths     = errors.New("rewriting image paths failed")
	ErrInternal       = errors.New("internal conversion error")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Spreadsheet input errors.
	ErrSheetRead     = sheet.ErrSheetRead
	ErrSheetNotFound = sheet.ErrSheetNotFound
)
