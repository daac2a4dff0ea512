// Package sheet reads spreadsheet workbooks into the row grid the block
// pipeline consumes, so an .xlsx file can stand in for its CSV export.
package sheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sentinel errors for workbook reads.
var (
	ErrSheetRead     = errors.New("reading spreadsheet failed")
	ErrSheetNotFound = errors.New("sheet not found")
	ErrEmptyWorkbook = errors.New("workbook has no sheets")
)

var workbookExts = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// IsWorkbook reports whether path has a spreadsheet extension.
func IsWorkbook(path string) bool {
	return slices.Contains(workbookExts, strings.ToLower(filepath.Ext(path)))
}

// Names lists the sheets of the workbook at path in tab order.
func Names(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSheetRead, err)
	}
	defer func() { _ = f.Close() }()

	return f.GetSheetList(), nil
}

// ReadRows returns the cell text of one sheet, row by row. An empty name
// selects the first sheet. Trailing empty cells are not included, which the
// pipeline treats the same as empty fields.
func ReadRows(path, name string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSheetRead, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyWorkbook, path)
	}
	if name == "" {
		name = sheets[0]
	}
	if !slices.Contains(sheets, name) {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, name, path)
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSheetRead, name, err)
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}
