package invoice2pdf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/tabular"
)

// Sentinel errors for library operations.
var (
	// Table loading.
	ErrUnsupportedFormat = tabular.ErrUnsupportedFormat
	ErrReadTable         = tabular.ErrRead

	// Validation and rendering.
	ErrMissingColumns = errors.New("missing required columns")
	ErrMissingField   = errors.New("missing required field")
	ErrRender         = errors.New("invoice template rendering failed")

	// Conversion.
	ErrAssetNotFound  = errors.New("invoice asset not found")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrWritePDF       = errors.New("failed to write PDF")

	// Batch and packaging.
	ErrNoDocuments = errors.New("no documents were generated")
	ErrArchive     = errors.New("failed to create archive")
	ErrWorkspace   = errors.New("failed to prepare workspace")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// SchemaError lists the required columns absent from a table header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingColumns, strings.Join(e.Missing, ", "))
}

// Unwrap lets errors.Is match ErrMissingColumns.
func (e *SchemaError) Unwrap() error {
	return ErrMissingColumns
}

// RowError reports a row that cannot become an invoice.
type RowError struct {
	Reason string // "missing invoice number", "missing purchase order"
}

func (e *RowError) Error() string {
	return e.Reason
}

// Unwrap lets errors.Is match ErrMissingField.
func (e *RowError) Unwrap() error {
	return ErrMissingField
}
