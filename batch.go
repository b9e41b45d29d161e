package invoice2pdf

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alnah/go-invoice2pdf/internal/fileutil"
)

// BatchConfig is everything ProcessBatch needs besides the table.
type BatchConfig struct {
	Renderer  *Renderer
	Converter DocumentConverter
	Date      string    // batch date, resolved once
	Logo      string    // logo reference relative to BaseDir, or ""
	OutputDir string    // where PDFs are written
	BaseDir   string    // root for relative asset references
	Progress  io.Writer // nil discards progress lines
}

// rowOutcome is the result of one row: exactly one of doc or failure is set.
type rowOutcome struct {
	doc     *GeneratedDocument
	failure *RowFailure
}

// ProcessBatch renders and converts every row in index order. A failing row
// is recorded and skipped; the loop never stops early. ctx is only handed to
// the converter.
//
// If no row produced a document, the result is returned together with
// ErrNoDocuments so callers can still report the failures.
func ProcessBatch(ctx context.Context, table *Table, cfg BatchConfig) (*BatchResult, error) {
	out := cfg.Progress
	if out == nil {
		out = io.Discard
	}

	result := &BatchResult{}
	total := len(table.Rows)
	written := make(map[string]int) // file name -> row index that wrote it

	for i, row := range table.Rows {
		outcome := processRow(ctx, i, row, cfg)

		if outcome.failure != nil {
			result.Failures = append(result.Failures, *outcome.failure)
			fmt.Fprintf(out, "Skipped row %d: %s\n", outcome.failure.Row(), outcome.failure.Reason)
			continue
		}

		doc := *outcome.doc
		name := filepath.Base(doc.Path)
		if prev, ok := written[name]; ok {
			fmt.Fprintf(out, "Note: row %d overwrites %s from row %d\n", i+1, name, prev+1)
			result.Documents = dropPath(result.Documents, doc.Path)
		}
		written[name] = i
		result.Documents = append(result.Documents, doc)
		fmt.Fprintf(out, "Generated PDF %d/%d: %s\n", i+1, total, name)
	}

	if len(result.Documents) == 0 {
		return result, ErrNoDocuments
	}
	return result, nil
}

func processRow(ctx context.Context, index int, row Row, cfg BatchConfig) rowOutcome {
	fail := func(err error) rowOutcome {
		return rowOutcome{failure: &RowFailure{Index: index, Reason: err.Error(), Err: err}}
	}

	html, err := cfg.Renderer.Render(row, cfg.Date, cfg.Logo)
	if err != nil {
		return fail(err)
	}

	invoiceNumber := cfg.Renderer.Columns().Extract(row).InvoiceNumber
	name, err := fileutil.SafeFilename(invoiceNumber)
	if err != nil {
		return fail(&RowError{Reason: fmt.Sprintf("invalid invoice number %q", invoiceNumber)})
	}

	path := filepath.Join(cfg.OutputDir, name+".pdf")
	if err := cfg.Converter.ConvertFile(ctx, html, path, cfg.BaseDir); err != nil {
		return fail(err)
	}

	return rowOutcome{doc: &GeneratedDocument{Index: index, InvoiceNumber: invoiceNumber, Path: path}}
}

// dropPath removes the document written to path, keeping order.
func dropPath(docs []GeneratedDocument, path string) []GeneratedDocument {
	kept := docs[:0]
	for _, d := range docs {
		if d.Path != path {
			kept = append(kept, d)
		}
	}
	return kept
}
