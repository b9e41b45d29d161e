package invoice2pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/dateutil"
	"github.com/alnah/go-invoice2pdf/internal/fileutil"
	"github.com/alnah/go-invoice2pdf/internal/pipeline"
)

// LogoRef is where a staged logo lives inside the batch workspace, without
// its extension. The template refers to it relatively.
const LogoRef = "static/images/company-logo"

// pdfDir is the workspace subdirectory holding generated PDFs.
const pdfDir = "pdfs"

// Request describes one batch.
type Request struct {
	InputPath string // .csv, .xlsx or .xlsm
	OutputDir string // archive destination, created if needed; "" means "."
	LogoPath  string // optional; a missing file is a warning
}

// Generator turns invoice tables into zip archives of PDFs.
// Create with NewGenerator, call Generate per batch, and Close when done.
// A Generator processes one batch at a time; use GeneratorPool for parallelism.
type Generator struct {
	cfg       generatorConfig
	renderer  *Renderer
	converter DocumentConverter
}

// NewGenerator creates a Generator. Assets, notes and the date format are
// resolved here so configuration errors surface before any batch runs.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{cfg: defaultGeneratorConfig()}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.cfg.page.Validate(); err != nil {
		return nil, err
	}
	if err := dateutil.Validate(g.cfg.dateFormat); err != nil {
		return nil, fmt.Errorf("date format: %w", err)
	}

	renderer, err := g.buildRenderer()
	if err != nil {
		return nil, err
	}
	g.renderer = renderer

	if g.converter == nil {
		g.converter = NewRodConverter(g.cfg.page, g.cfg.timeout)
	}

	return g, nil
}

func (g *Generator) buildRenderer() (*Renderer, error) {
	loader, err := NewAssetLoader(g.cfg.assetPath)
	if err != nil {
		return nil, err
	}

	tmpl, err := loader.LoadTemplate(g.cfg.template)
	if err != nil {
		return nil, err
	}

	css, err := loader.LoadStyle(g.cfg.style)
	if err != nil {
		return nil, err
	}
	if g.cfg.css != "" {
		css += "\n" + g.cfg.css
	}

	rc := RendererConfig{Template: tmpl, CSS: css, Columns: g.cfg.columns}
	if strings.TrimSpace(g.cfg.notes) != "" {
		rc.Notes, err = pipeline.NewNotesRenderer().Render(g.cfg.notes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
	}

	return NewRenderer(rc)
}

// Generate runs one batch: load and validate the table, stage the logo in a
// private workspace, render and convert every row, then archive the PDFs
// into req.OutputDir. The workspace is always removed.
//
// Schema and format errors are returned before any row is processed. When
// no row succeeded the result carries the failures and err is
// ErrNoDocuments. Recovers from internal panics.
func (g *Generator) Generate(ctx context.Context, req Request) (result *BatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	now := g.cfg.clock()
	out := g.cfg.progress

	table, err := LoadTable(req.InputPath)
	if err != nil {
		return nil, err
	}
	if err := ValidateSchema(table.Columns, g.renderer.Columns().Required()); err != nil {
		return nil, err
	}

	workspace, cleanup, err := fileutil.MakeWorkspace()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}
	defer cleanup()

	logo, err := g.stageLogo(workspace, req.LogoPath)
	if err != nil {
		return nil, err
	}

	date, err := dateutil.ResolveDate(g.cfg.dateFormat, now)
	if err != nil {
		return nil, fmt.Errorf("date format: %w", err)
	}

	fmt.Fprintf(out, "Processing %d invoices...\n", len(table.Rows))

	result, err = ProcessBatch(ctx, table, BatchConfig{
		Renderer:  g.renderer,
		Converter: g.converter,
		Date:      date,
		Logo:      logo,
		OutputDir: filepath.Join(workspace, pdfDir),
		BaseDir:   workspace,
		Progress:  out,
	})
	if err != nil {
		return result, err
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	archivePath, err := Archive(result.Paths(), outputDir, now)
	if err != nil {
		return result, err
	}
	result.ArchivePath = archivePath

	fmt.Fprintf(out, "Created zip file with %d PDFs: %s\n", len(result.Documents), archivePath)
	return result, nil
}

// stageLogo copies the logo into the workspace and returns its relative
// reference. A missing logo is reported and ignored.
func (g *Generator) stageLogo(workspace, logoPath string) (string, error) {
	if logoPath == "" {
		return "", nil
	}
	if !fileutil.FileExists(logoPath) {
		fmt.Fprintf(g.cfg.progress, "Warning: logo file not found: %s\n", logoPath)
		return "", nil
	}

	ref := LogoRef + strings.ToLower(filepath.Ext(logoPath))
	if err := fileutil.CopyFile(logoPath, filepath.Join(workspace, filepath.FromSlash(ref))); err != nil {
		return "", fmt.Errorf("%w: staging logo: %v", ErrWorkspace, err)
	}
	return ref, nil
}

// Close releases the converter (and its browser).
func (g *Generator) Close() error {
	if g.converter == nil {
		return nil
	}
	return g.converter.Close()
}
