// Package tabular loads a spreadsheet of invoice lines into memory.
//
// The first row is the header. Header names and cell values are trimmed, an
// empty cell is absent from its Row, and rows with no values are dropped.
package tabular

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sentinel errors for table loading.
var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrRead              = errors.New("failed to read table")
)

// Row maps a header name to its cell text.
type Row map[string]string

// Get returns the trimmed cell for column, or "" when absent.
func (r Row) Get(column string) string {
	return r[column]
}

// Table is the whole input file: its header and its data rows in file order.
type Table struct {
	Columns []string
	Rows    []Row
}

// Format identifies a supported input encoding.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat maps a file extension to a Format.
// Legacy binary workbooks (.xls) are not supported.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return "", fmt.Errorf("%w: legacy .xls workbook, re-save as .xlsx", ErrUnsupportedFormat)
	case "":
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, filepath.Base(path))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// Load reads the file at path according to its extension.
func Load(path string) (*Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch format {
	case FormatCSV:
		records, err = readCSV(path)
	case FormatXLSX:
		records, err = readXLSX(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	return fromRecords(records)
}

// fromRecords builds a Table from raw records; records[0] is the header.
func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrRead)
	}

	header := records[0]
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}
	if len(columns) > 0 {
		columns[0] = strings.TrimPrefix(columns[0], "\ufeff")
	}

	table := &Table{Columns: columns, Rows: make([]Row, 0, len(records)-1)}
	for _, record := range records[1:] {
		if row := buildRow(columns, record); len(row) > 0 {
			table.Rows = append(table.Rows, row)
		}
	}
	return table, nil
}

// buildRow keeps the first occurrence of a duplicated header.
func buildRow(columns, record []string) Row {
	row := make(Row, len(columns))
	for i, name := range columns {
		if name == "" || i >= len(record) {
			continue
		}
		if _, seen := row[name]; seen {
			continue
		}
		if v := strings.TrimSpace(record[i]); v != "" {
			row[name] = v
		}
	}
	return row
}
