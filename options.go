package invoice2pdf

import (
	"io"
	"time"

	"github.com/alnah/go-invoice2pdf/internal/config"
)

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds the settings collected from options.
type generatorConfig struct {
	timeout    time.Duration
	page       *PageSettings
	columns    Columns
	assetPath  string
	template   string // name or path, "" for the built-in template
	style      string // name or path, "" for the built-in style
	css        string // appended after the style
	notes      string // Markdown
	dateFormat string
	clock      func() time.Time
	progress   io.Writer
}

func defaultGeneratorConfig() generatorConfig {
	return generatorConfig{
		timeout:    defaultTimeout,
		columns:    DefaultColumns(),
		dateFormat: "auto",
		clock:      time.Now,
		progress:   io.Discard,
	}
}

// WithConverter replaces the headless Chrome converter.
// The Generator takes ownership and closes it.
func WithConverter(c DocumentConverter) Option {
	return func(g *Generator) {
		g.converter = c
	}
}

// WithTimeout sets the page load timeout used when the context has no deadline.
// Panics if d is not positive.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("invoice2pdf: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithPage sets page size, orientation and margin. nil keeps the defaults.
func WithPage(p *PageSettings) Option {
	return func(g *Generator) {
		g.cfg.page = p
	}
}

// WithColumns overrides column headers. Empty fields keep their defaults.
func WithColumns(c Columns) Option {
	return func(g *Generator) {
		g.cfg.columns = g.cfg.columns.Merge(c)
	}
}

// WithAssetPath adds a directory searched for styles/ and templates/ before
// the embedded assets.
func WithAssetPath(path string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = path
	}
}

// WithTemplate selects the invoice template by name or file path.
func WithTemplate(ref string) Option {
	return func(g *Generator) {
		g.cfg.template = ref
	}
}

// WithStyle selects the stylesheet by name or file path.
func WithStyle(ref string) Option {
	return func(g *Generator) {
		g.cfg.style = ref
	}
}

// WithCSS appends raw CSS after the selected style.
func WithCSS(css string) Option {
	return func(g *Generator) {
		g.cfg.css = css
	}
}

// WithNotes sets a Markdown block printed under the line items of every invoice.
func WithNotes(markdown string) Option {
	return func(g *Generator) {
		g.cfg.notes = markdown
	}
}

// WithDateFormat sets the invoice date: "auto", "auto:FORMAT" or a literal.
func WithDateFormat(format string) Option {
	return func(g *Generator) {
		g.cfg.dateFormat = format
	}
}

// WithClock sets the time source for the invoice date and archive name.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.cfg.clock = now
		}
	}
}

// WithProgress sets where progress lines and warnings are written.
func WithProgress(w io.Writer) Option {
	return func(g *Generator) {
		if w != nil {
			g.cfg.progress = w
		}
	}
}

// OptionsFromConfig translates a loaded configuration into options.
// Empty values keep the built-in defaults.
func OptionsFromConfig(cfg *config.Config) []Option {
	if cfg == nil {
		return nil
	}

	opts := []Option{
		WithColumns(Columns{
			PurchaseOrder:  cfg.Columns.PurchaseOrder,
			InvoiceNumber:  cfg.Columns.InvoiceNumber,
			Quantity:       cfg.Columns.Quantity,
			SKU:            cfg.Columns.SKU,
			Price:          cfg.Columns.Price,
			VendorName:     cfg.Columns.VendorName,
			RoutingNumber:  cfg.Columns.RoutingNumber,
			AccountNumber:  cfg.Columns.AccountNumber,
			BillToName:     cfg.Columns.BillToName,
			BillToAddress1: cfg.Columns.BillToAddress1,
			BillToAddress2: cfg.Columns.BillToAddress2,
			BillToAddress3: cfg.Columns.BillToAddress3,
		}),
		WithAssetPath(cfg.Assets.BasePath),
		WithTemplate(cfg.Assets.Template),
		WithStyle(cfg.Assets.Style),
		WithNotes(cfg.Invoice.Notes),
	}

	if cfg.Invoice.Date != "" {
		opts = append(opts, WithDateFormat(cfg.Invoice.Date))
	}
	if page := pageFromConfig(cfg.Page); page != nil {
		opts = append(opts, WithPage(page))
	}
	return opts
}

// pageFromConfig returns nil when the section is empty.
func pageFromConfig(pc config.PageConfig) *PageSettings {
	if pc == (config.PageConfig{}) {
		return nil
	}
	page := DefaultPageSettings()
	if pc.Size != "" {
		page.Size = pc.Size
	}
	if pc.Orientation != "" {
		page.Orientation = pc.Orientation
	}
	if pc.Margin > 0 {
		page.Margin = pc.Margin
	}
	return page
}
