package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/config"
	"github.com/alnah/go-invoice2pdf/internal/fileutil"
	"github.com/alnah/go-invoice2pdf/internal/hints"
)

// hintFor returns an actionable hint to append to err, or "".
// configRef is the --config value (or env fallback) used for the run.
func hintFor(err error, configRef string) string {
	var schemaErr *invoice2pdf.SchemaError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &schemaErr):
		return hints.ForMissingColumns(schemaErr.Missing)
	case errors.Is(err, invoice2pdf.ErrUnsupportedFormat):
		return hints.ForUnsupportedFormat()
	case errors.Is(err, invoice2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, invoice2pdf.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, invoice2pdf.ErrNoDocuments):
		return hints.ForNoDocuments()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(configSearchPaths(configRef))
	case errors.Is(err, invoice2pdf.ErrStyleNotFound):
		return hints.ForStyleNotFound(invoice2pdf.BuiltinStyles())
	case errors.Is(err, invoice2pdf.ErrArchive), errors.Is(err, invoice2pdf.ErrWorkspace):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}

// configSearchPaths lists where a named config is looked up, in order.
// A path reference is returned as is.
func configSearchPaths(ref string) []string {
	if ref == "" {
		return nil
	}
	if fileutil.IsFilePath(ref) {
		return []string{ref}
	}

	paths := []string{ref + ".yaml", ref + ".yml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-invoice2pdf", ref+".yaml"))
	}
	return paths
}
