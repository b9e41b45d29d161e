package invoice2pdf

import (
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/tabular"
)

// Row maps a column header to its trimmed cell text. Empty cells are absent.
type Row = tabular.Row

// Table is an in-memory spreadsheet: the header row and the data rows.
type Table = tabular.Table

// LoadTable reads a .csv, .xlsx or .xlsm file. The first row is the header.
// Returns ErrUnsupportedFormat for other extensions and ErrReadTable when
// the file cannot be parsed.
func LoadTable(path string) (*Table, error) {
	return tabular.Load(path)
}

// ValidateSchema reports the required columns missing from columns, in the
// order they are required. Header names are compared after trimming.
// Returns nil or a *SchemaError.
func ValidateSchema(columns, required []string) error {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[strings.TrimSpace(c)] = struct{}{}
	}

	var missing []string
	for _, r := range required {
		if _, ok := present[strings.TrimSpace(r)]; !ok {
			missing = append(missing, r)
		}
	}

	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
