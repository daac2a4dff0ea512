package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: csvblocks <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert CSV or XLSX sheets to HTML blocks")
	fmt.Fprintln(w, "  sample     Print a sample CSV or the default mapping")
	fmt.Fprintln(w, "  doctor     Check Chrome, config and environment")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'csvblocks help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: csvblocks convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert CSV or XLSX sheets to HTML blocks.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .csv/.xlsx file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file or directory")
	fmt.Fprintln(w, "  -m, --mapping <path>      Mapping file, JSON or YAML (invalid = defaults)")
	fmt.Fprintln(w, "      --sheet <name>        Workbook sheet (default: first sheet)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --watch               Rebuild on change until interrupted")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --fragment            Write the block list without the document shell")
	fmt.Fprintln(w, "      --pdf                 Also write <name>.pdf")
	fmt.Fprintln(w, "      --preview             Also write <name>.preview.html")
	fmt.Fprintln(w, "      --sanitize            Drop unsafe markup and URLs")
	fmt.Fprintln(w, "      --site-root <dir>     Resolve \"/...\" image paths for PDF and preview")
	fmt.Fprintln(w, "      --assets <dir>        Override preview template and styles")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page (PDF):")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CSVBLOCKS_CONFIG, CSVBLOCKS_MAPPING, CSVBLOCKS_TIMEOUT, CSVBLOCKS_WORKERS,")
	fmt.Fprintln(w, "  CSVBLOCKS_INPUT_DIR, CSVBLOCKS_OUTPUT_DIR, CSVBLOCKS_SHEET")
}

// printSampleUsage prints usage for the sample command.
func printSampleUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: csvblocks sample [--mapping]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print a two-section sample CSV to stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --mapping             Print the default mapping as YAML instead")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "sample":
		printSampleUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: csvblocks version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: csvblocks help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
