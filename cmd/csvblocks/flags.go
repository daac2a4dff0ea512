package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// outputFlags selects the artifacts written per input.
type outputFlags struct {
	fragment bool // block list without the document shell
	pdf      bool // also write <name>.pdf
	preview  bool // also write <name>.preview.html
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	mapping    string
	sheet      string
	siteRoot   string
	assetsDir  string
	workers    int
	timeout    string
	sanitize   bool
	watch      bool
	page       pageFlags
	outputMode outputFlags
}

// sampleFlags holds flags for the sample command.
type sampleFlags struct {
	mapping bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and debug logs")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.fragment, "fragment", false, "write the block list without the document shell")
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF")
	fs.BoolVar(&f.preview, "preview", false, "also write a preview page with highlighted source")
}

// registerConvertFlags registers every convert flag on fs. Completion
// builds its flag list from the same registration.
func registerConvertFlags(fs *flag.FlagSet, f *convertFlags) {
	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.mapping, "mapping", "m", "", "mapping file (JSON or YAML)")
	fs.StringVar(&f.sheet, "sheet", "", "workbook sheet name (default: first sheet)")
	fs.StringVar(&f.siteRoot, "site-root", "", "directory that \"/...\" image paths resolve against")
	fs.StringVar(&f.assetsDir, "assets", "", "directory overriding the preview template and styles")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.sanitize, "sanitize", false, "drop unsafe markup and URLs from the output")
	fs.BoolVar(&f.watch, "watch", false, "rebuild when an input or the mapping file changes")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addOutputFlags(fs, &f.outputMode)
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}
	registerConvertFlags(fs, f)
	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// registerSampleFlags registers the sample command flags on fs.
func registerSampleFlags(fs *flag.FlagSet, f *sampleFlags) {
	fs.BoolVar(&f.mapping, "mapping", false, "print the default mapping as YAML instead of the sample CSV")
}

// parseSampleFlags parses sample command flags.
func parseSampleFlags(args []string, usage io.Writer) (*sampleFlags, error) {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &sampleFlags{}
	registerSampleFlags(fs, f)
	fs.Usage = func() { printSampleUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errUnexpectedArgs(fs.Args())
	}
	return f, nil
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json   bool
	config string
}

// registerDoctorFlags registers the doctor command flags on fs.
func registerDoctorFlags(fs *flag.FlagSet, f *doctorFlags) {
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path to check")
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, usage io.Writer) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &doctorFlags{}
	registerDoctorFlags(fs, f)
	fs.Usage = func() { printDoctorUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errUnexpectedArgs(fs.Args())
	}
	return f, nil
}
