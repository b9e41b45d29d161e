package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every run.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// assetFlags selects the invoice template and stylesheet.
type assetFlags struct {
	style     string
	template  string
	assetPath string
}

// generateFlags holds all flags for an invoice batch.
type generateFlags struct {
	common  commonFlags
	timeout string
	date    string
	page    pageFlags
	assets  assetFlags
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only print the archive path and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and pool details")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.template, "template", "", "invoice template name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with styles/ and templates/ overrides")
}

// newGenerateFlagSet registers every batch flag on a fresh FlagSet.
func newGenerateFlagSet(f *generateFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("invoice2pdf", flag.ContinueOnError)

	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-invoice PDF timeout (e.g., 30s, 2m)")
	fs.StringVarP(&f.date, "date", "d", "", "invoice date: \"auto\", \"auto:FORMAT\" or literal")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addAssetFlags(fs, &f.assets)

	return fs
}

// parseGenerateFlags parses batch flags and returns the positional args.
// Usage text goes to usageOut when parsing fails or -h is given.
func parseGenerateFlags(args []string, usageOut io.Writer) (*generateFlags, []string, error) {
	f := &generateFlags{}
	fs := newGenerateFlagSet(f)
	fs.SetOutput(usageOut)
	fs.Usage = func() { printUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
