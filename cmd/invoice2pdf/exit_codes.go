package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/config"
	"github.com/alnah/go-invoice2pdf/internal/dateutil"
)

// Exit codes for the invoice2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess     = 0 // Archive written
	ExitGeneral     = 1 // General/unexpected error
	ExitUsage       = 2 // Invalid arguments, config, schema or input format
	ExitIO          = 3 // Unreadable input, unwritable output or archive failure
	ExitBrowser     = 4 // Browser/Chrome errors
	ExitNoDocuments = 5 // Every row failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if isBrowserError(err) {
		return ExitBrowser
	}

	// Row failures behind it were already reported line by line.
	if errors.Is(err, invoice2pdf.ErrNoDocuments) {
		return ExitNoDocuments
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, invoice2pdf.ErrReadTable) ||
		errors.Is(err, invoice2pdf.ErrWritePDF) ||
		errors.Is(err, invoice2pdf.ErrArchive) ||
		errors.Is(err, invoice2pdf.ErrWorkspace) ||
		errors.Is(err, invoice2pdf.ErrAssetNotFound) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, invoice2pdf.ErrMissingColumns) ||
		errors.Is(err, invoice2pdf.ErrUnsupportedFormat) ||
		errors.Is(err, invoice2pdf.ErrInvalidPageSize) ||
		errors.Is(err, invoice2pdf.ErrInvalidOrientation) ||
		errors.Is(err, invoice2pdf.ErrInvalidMargin) ||
		errors.Is(err, invoice2pdf.ErrStyleNotFound) ||
		errors.Is(err, invoice2pdf.ErrTemplateNotFound) ||
		errors.Is(err, invoice2pdf.ErrInvalidAssetPath) ||
		errors.Is(err, invoice2pdf.ErrRender) {
		return ExitUsage
	}

	return ExitGeneral
}
