package invoice2pdf

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/alnah/go-invoice2pdf/internal/pipeline"
)

var (
	cellPolicyOnce sync.Once
	cellPolicy     *bluemonday.Policy
)

// stripMarkup removes every tag from a cell. The result is unescaped again
// because html/template escapes it on output.
func stripMarkup(s string) string {
	cellPolicyOnce.Do(func() {
		cellPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(cellPolicy.Sanitize(s))
}

// RendererConfig holds what a Renderer needs besides the row itself.
type RendererConfig struct {
	Template string        // html/template source
	CSS      string        // injected into <head> after execution
	Columns  Columns       // header mapping; zero value means DefaultColumns
	Notes    template.HTML // pre-rendered notes block, may be empty
}

// Renderer turns table rows into standalone invoice HTML documents.
// A Renderer is safe for concurrent use.
type Renderer struct {
	tmpl    *template.Template
	css     string
	columns Columns
	notes   template.HTML
}

// NewRenderer parses the template once. Returns ErrRender if it does not parse.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	tmpl, err := template.New("invoice").Option("missingkey=error").Parse(cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	columns := cfg.Columns
	if columns == (Columns{}) {
		columns = DefaultColumns()
	}

	return &Renderer{
		tmpl:    tmpl,
		css:     cfg.CSS,
		columns: columns,
		notes:   cfg.Notes,
	}, nil
}

// Render executes the template for one row. date is the batch date and logo
// the logo reference relative to the batch workspace ("" for none).
//
// Returns a *RowError when the invoice number or purchase order is empty and
// ErrRender when the template fails. Unparseable prices render as 0.00.
func (r *Renderer) Render(row Row, date, logo string) (string, error) {
	rc, err := r.context(row, date, logo)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, rc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	return pipeline.InjectCSS(buf.String(), r.css), nil
}

// Columns returns the header mapping the renderer reads rows with.
func (r *Renderer) Columns() Columns {
	return r.columns
}

func (r *Renderer) context(row Row, date, logo string) (RenderContext, error) {
	inv := r.columns.Extract(row)

	if inv.InvoiceNumber == "" {
		return RenderContext{}, &RowError{Reason: "missing invoice number"}
	}
	if inv.PurchaseOrder == "" {
		return RenderContext{}, &RowError{Reason: "missing purchase order"}
	}

	quantity := stripMarkup(inv.Quantity)
	price := stripMarkup(inv.UnitPrice)

	return RenderContext{
		Date:           date,
		Logo:           logo,
		VendorName:     stripMarkup(inv.VendorName),
		RoutingNumber:  stripMarkup(inv.RoutingNumber),
		AccountNumber:  stripMarkup(inv.AccountNumber),
		BillToName:     stripMarkup(inv.BillToName),
		BillToAddress1: stripMarkup(inv.BillToAddress1),
		BillToAddress2: stripMarkup(inv.BillToAddress2),
		BillToAddress3: stripMarkup(inv.BillToAddress3),
		PurchaseOrder:  stripMarkup(inv.PurchaseOrder),
		InvoiceNumber:  stripMarkup(inv.InvoiceNumber),
		Quantity:       FormatQuantity(quantity),
		SKU:            stripMarkup(inv.SKU),
		UnitPrice:      FormatPrice(price),
		Amount:         LineAmount(quantity, price),
		Notes:          r.notes,
	}, nil
}
