package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-csvblocks/internal/fileutil"
	"github.com/alnah/go-csvblocks/internal/sheet"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension = errors.New("file must have a .csv, .xlsx, .xlsm, .xltx or .xltm extension")
	ErrOutputCollision  = errors.New("inputs map to the same output file")
)

// FileToConvert represents a single file to process. OutputPath is the HTML
// file; PDF and preview paths derive from it.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// PDFPath returns the PDF written next to the HTML output.
func (f FileToConvert) PDFPath() string {
	return fileutil.ReplaceExt(f.OutputPath, ".pdf")
}

// PreviewPath returns the preview page written next to the HTML output.
func (f FileToConvert) PreviewPath() string {
	return fileutil.ReplaceExt(f.OutputPath, ".preview.html")
}

// discoverFiles finds all CSV and workbook files to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateInputExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	seen := make(map[string]string)
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isInputFile(path) {
			return nil
		}
		// Office keeps "~$name.xlsx" lock files next to open workbooks.
		if strings.HasPrefix(d.Name(), "~$") {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		if prev, ok := seen[outPath]; ok {
			return fmt.Errorf("%w: %s and %s -> %s", ErrOutputCollision, prev, path, outPath)
		}
		seen[outPath] = path
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the HTML output path for an input file.
// An outputDir ending in .html names the file itself for single inputs.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	base := fileutil.ReplaceExt(filepath.Base(inputPath), ".html")

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if baseInputDir == "" && strings.EqualFold(filepath.Ext(outputDir), ".html") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(outputDir, base)
}

// isInputFile reports whether path is a CSV file or an Excel workbook.
func isInputFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv") || sheet.IsWorkbook(path)
}

// validateInputExtension checks that the file is a CSV or a workbook.
func validateInputExtension(path string) error {
	if !isInputFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}
