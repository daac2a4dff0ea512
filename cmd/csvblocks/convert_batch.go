package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	csvblocks "github.com/alnah/go-csvblocks"
	"github.com/alnah/go-csvblocks/internal/fileutil"
	"github.com/alnah/go-csvblocks/internal/hints"
	"github.com/alnah/go-csvblocks/internal/sheet"
	"go.uber.org/zap"
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath string
	Outputs   []string // files written, HTML first
	Sections  int
	Err       error
	Duration  time.Duration
}

// batchError reports failed conversions. It unwraps to the first failure
// so the exit code reflects its cause.
type batchError struct {
	failed int
	total  int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error {
	return e.first
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire(ctx)
			if err != nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %w", ErrConverterInit, err),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	input, err := readInput(f.InputPath, params.sheet)
	if err != nil {
		return finish(err)
	}
	input.Mapping = params.mapping
	input.Fragment = params.fragment
	input.PDF = params.pdf
	input.Preview = params.preview
	input.SourceDir = filepath.Dir(f.InputPath)
	input.SiteRoot = params.siteRoot

	res, err := conv.Convert(ctx, input)
	if err != nil {
		return finish(err)
	}
	result.Sections = len(res.Sections)

	if err := writeOutput(f.OutputPath, res.HTML); err != nil {
		return finish(err)
	}
	result.Outputs = append(result.Outputs, f.OutputPath)

	// Blank input converts to empty HTML and nothing else.
	if params.preview {
		if res.Preview == nil {
			params.log().Debug("no preview for blank input", zap.String("input", f.InputPath))
		} else if err := writeOutput(f.PreviewPath(), res.Preview); err != nil {
			return finish(err)
		} else {
			result.Outputs = append(result.Outputs, f.PreviewPath())
		}
	}
	if params.pdf {
		if res.PDF == nil {
			params.log().Debug("no PDF for blank input", zap.String("input", f.InputPath))
		} else if err := writeOutput(f.PDFPath(), res.PDF); err != nil {
			return finish(err)
		} else {
			result.Outputs = append(result.Outputs, f.PDFPath())
		}
	}

	return finish(nil)
}

func (p *conversionParams) log() *zap.Logger {
	if p.logger == nil {
		return zap.NewNop()
	}
	return p.logger
}

// readInput loads a CSV file as text, or a workbook sheet as rows. A
// missing sheet is a usage error, not a read failure.
func readInput(path, sheetName string) (csvblocks.Input, error) {
	if sheet.IsWorkbook(path) {
		rows, err := sheet.ReadRows(path, sheetName)
		if errors.Is(err, sheet.ErrSheetNotFound) {
			names, _ := sheet.Names(path)
			return csvblocks.Input{}, fmt.Errorf("%w%s", err, hints.ForSheet(names))
		}
		if err != nil {
			return csvblocks.Input{}, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		return csvblocks.Input{Rows: rows}, nil
	}

	text, err := fileutil.ReadText(path)
	if err != nil {
		return csvblocks.Input{}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return csvblocks.Input{CSV: text}, nil
}

func writeOutput(path string, data []byte) error {
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if quiet {
			continue
		}

		for _, out := range r.Outputs {
			if verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%d blocks, %v)\n", r.InputPath, out, r.Sections, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", out)
			}
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
