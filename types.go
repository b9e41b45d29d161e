package invoice2pdf

import (
	"fmt"
	"html/template"
	"strings"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns US Letter portrait with half-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid. A nil receiver means defaults.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// Columns maps every invoice field to the header of the column holding it.
type Columns struct {
	PurchaseOrder  string
	InvoiceNumber  string
	Quantity       string
	SKU            string
	Price          string
	VendorName     string
	RoutingNumber  string
	AccountNumber  string
	BillToName     string
	BillToAddress1 string
	BillToAddress2 string
	BillToAddress3 string
}

// DefaultColumns returns the headers written by the order export.
func DefaultColumns() Columns {
	return Columns{
		PurchaseOrder:  "split_order_number",
		InvoiceNumber:  "invoice_number",
		Quantity:       "order_item_quantity",
		SKU:            "sku_id",
		Price:          "Gross Placed: Total Wholesale $",
		VendorName:     "vendor_name",
		RoutingNumber:  "vendor_routing_number",
		AccountNumber:  "vendor_account_number",
		BillToName:     "bill_to_name",
		BillToAddress1: "bill_to_address_line_1",
		BillToAddress2: "bill_to_address_line_2",
		BillToAddress3: "bill_to_address_line_3",
	}
}

// Merge returns c with every non-empty header of overrides applied.
func (c Columns) Merge(overrides Columns) Columns {
	pick := func(base, override string) string {
		if o := strings.TrimSpace(override); o != "" {
			return o
		}
		return base
	}
	return Columns{
		PurchaseOrder:  pick(c.PurchaseOrder, overrides.PurchaseOrder),
		InvoiceNumber:  pick(c.InvoiceNumber, overrides.InvoiceNumber),
		Quantity:       pick(c.Quantity, overrides.Quantity),
		SKU:            pick(c.SKU, overrides.SKU),
		Price:          pick(c.Price, overrides.Price),
		VendorName:     pick(c.VendorName, overrides.VendorName),
		RoutingNumber:  pick(c.RoutingNumber, overrides.RoutingNumber),
		AccountNumber:  pick(c.AccountNumber, overrides.AccountNumber),
		BillToName:     pick(c.BillToName, overrides.BillToName),
		BillToAddress1: pick(c.BillToAddress1, overrides.BillToAddress1),
		BillToAddress2: pick(c.BillToAddress2, overrides.BillToAddress2),
		BillToAddress3: pick(c.BillToAddress3, overrides.BillToAddress3),
	}
}

// Required returns the headers every input table must carry, in the order
// they are reported when missing.
func (c Columns) Required() []string {
	return []string{c.PurchaseOrder, c.InvoiceNumber, c.Quantity, c.SKU, c.Price}
}

// InvoiceRow is one line item read from the table. Values are raw cell text.
type InvoiceRow struct {
	PurchaseOrder  string
	InvoiceNumber  string
	Quantity       string
	SKU            string
	UnitPrice      string
	VendorName     string
	RoutingNumber  string
	AccountNumber  string
	BillToName     string
	BillToAddress1 string
	BillToAddress2 string
	BillToAddress3 string
}

// Extract reads an InvoiceRow from row; absent cells become "".
func (c Columns) Extract(row Row) InvoiceRow {
	return InvoiceRow{
		PurchaseOrder:  row.Get(c.PurchaseOrder),
		InvoiceNumber:  row.Get(c.InvoiceNumber),
		Quantity:       row.Get(c.Quantity),
		SKU:            row.Get(c.SKU),
		UnitPrice:      row.Get(c.Price),
		VendorName:     row.Get(c.VendorName),
		RoutingNumber:  row.Get(c.RoutingNumber),
		AccountNumber:  row.Get(c.AccountNumber),
		BillToName:     row.Get(c.BillToName),
		BillToAddress1: row.Get(c.BillToAddress1),
		BillToAddress2: row.Get(c.BillToAddress2),
		BillToAddress3: row.Get(c.BillToAddress3),
	}
}

// RenderContext is the value an invoice template is executed with.
type RenderContext struct {
	Date           string
	Logo           string // relative path under the batch workspace, or ""
	VendorName     string
	RoutingNumber  string
	AccountNumber  string
	BillToName     string
	BillToAddress1 string
	BillToAddress2 string
	BillToAddress3 string
	PurchaseOrder  string
	InvoiceNumber  string
	Quantity       string
	SKU            string
	UnitPrice      string // "1,234.50"
	Amount         string // Quantity x UnitPrice, "0.00" when not computable
	Notes          template.HTML
}

// GeneratedDocument is one PDF written by a batch.
type GeneratedDocument struct {
	Index         int // 0-based table row index
	InvoiceNumber string
	Path          string
}

// RowFailure records a row skipped by a batch.
type RowFailure struct {
	Index  int // 0-based table row index
	Reason string
	Err    error
}

// Row returns the 1-based row number used in messages.
func (f RowFailure) Row() int {
	return f.Index + 1
}

// BatchResult is the outcome of one batch.
type BatchResult struct {
	Documents   []GeneratedDocument
	Failures    []RowFailure
	ArchivePath string
}

// Paths returns the document paths in generation order.
func (r *BatchResult) Paths() []string {
	paths := make([]string, len(r.Documents))
	for i, d := range r.Documents {
		paths[i] = d.Path
	}
	return paths
}
