// Package invoice2pdf turns a spreadsheet of invoice line items into one PDF
// per row and packages the PDFs into a zip archive, using headless Chrome.
//
// # Quick Start
//
// Create a generator, run a batch, and close when done:
//
//	gen, err := invoice2pdf.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	result, err := gen.Generate(ctx, invoice2pdf.Request{
//	    InputPath: "orders.xlsx",
//	    OutputDir: "out",
//	    LogoPath:  "logo.png",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.ArchivePath) // out/invoices_20261019_101500.zip
//
// # Batch Pipeline
//
//  1. Load the table (.csv, .xlsx, .xlsm; first row is the header)
//  2. Check that the required columns exist (fails fast with *SchemaError)
//  3. Stage the logo in a private workspace
//  4. For each row: render the invoice template, print it to PDF
//  5. Zip the PDFs as invoices_YYYYMMDD_HHMMSS.zip
//
// A row without an invoice number or purchase order, or whose conversion
// fails, is skipped and reported in BatchResult.Failures. The batch fails
// with ErrNoDocuments only when every row was skipped. Two rows with the same
// invoice number write the same file; the later row wins.
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := invoice2pdf.NewGenerator(
//	    invoice2pdf.WithTimeout(2 * time.Minute),
//	    invoice2pdf.WithPage(&invoice2pdf.PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.5}),
//	    invoice2pdf.WithColumns(invoice2pdf.Columns{InvoiceNumber: "Invoice #"}),
//	    invoice2pdf.WithStyle("compact"),
//	    invoice2pdf.WithNotes("Payment due within **30 days**."),
//	    invoice2pdf.WithDateFormat("auto:iso"),
//	)
//
// # Parallel Processing
//
// Servers handling several uploads at once use GeneratorPool; each pooled
// generator owns one browser:
//
//	pool := invoice2pdf.NewGeneratorPool(invoice2pdf.ResolvePoolSize(0))
//	defer pool.Close()
//
//	gen, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(gen)
//
// # Custom Assets
//
// WithAssetPath points at a directory laid out as:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── custom.html
//
// Templates are html/template documents executed with a RenderContext.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Use ROD_BROWSER_BIN to specify a custom Chrome binary; the sandbox is
// disabled when it is set or when CI=true.
package invoice2pdf
