// Package csvblocks compiles spreadsheet-exported CSV into HTML content blocks.
//
// Each group of rows between blank lines becomes one section. Column B holds
// a key (title, image path, body text, or a section header) and column C the
// value. Sections render through one of three layouts (standard, hero,
// text-only) chosen per header by a Mapping.
//
// Basic usage:
//
//	conv, err := csvblocks.NewConverter()
//	if err != nil {
//		return err
//	}
//	defer conv.Close()
//
//	res, err := conv.Convert(ctx, csvblocks.Input{CSV: data})
//	if err != nil {
//		return err
//	}
//	os.WriteFile("out.html", res.HTML, 0644)
//
// The pure stages are exported for callers that need them separately:
// Tokenize, NormalizeKey, Classify, RenderSection and Compose. They never
// fail and never touch the network or the filesystem.
//
// PDF output (Input.PDF) drives headless Chrome through go-rod and is the
// only part that needs a browser. Use ConverterPool to convert many files
// in parallel with bounded browser instances.
package csvblocks
