package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: invoice2pdf [flags] <input-path> <output-dir> [logo-path]")
	fmt.Fprintln(w, "       invoice2pdf <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Turn every row of a CSV or Excel sheet into a PDF invoice and")
	fmt.Fprintln(w, "bundle them in invoices_<YYYYMMDD_HHMMSS>.zip inside output-dir.")
	fmt.Fprintln(w, "The archive path is printed on the last line of stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input-path    .csv, .xlsx or .xlsm file; the first row is the header")
	fmt.Fprintln(w, "  output-dir    Archive destination (optional if output.defaultDir is set)")
	fmt.Fprintln(w, "  logo-path     Image shown on every invoice (optional)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  doctor        Check Chrome and the environment (--json for machines)")
	fmt.Fprintln(w, "  help          Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-invoice PDF timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -d, --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w, "      --style <s>           CSS style name or file path")
	fmt.Fprintln(w, "      --template <s>        Invoice template name or file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/")
	fmt.Fprintln(w, "  -q, --quiet               Only print the archive path and errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing details")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  INVOICE2PDF_CONFIG, INVOICE2PDF_TIMEOUT, INVOICE2PDF_PAGE_SIZE,")
	fmt.Fprintln(w, "  INVOICE2PDF_DATE_FORMAT, INVOICE2PDF_OUTPUT_DIR")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 error, 2 usage/config/schema, 3 I/O, 4 browser, 5 no invoices")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: invoice2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: invoice2pdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that Chrome is installed and the environment can render PDFs.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: invoice2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
