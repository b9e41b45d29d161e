package invoice2pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-invoice2pdf/internal/fileutil"
	"github.com/alnah/go-invoice2pdf/internal/pipeline"
)

// DocumentConverter turns one rendered HTML document into one PDF file.
type DocumentConverter interface {
	// ConvertFile writes outputPath, creating parent directories and
	// overwriting an existing file. Relative asset references in html are
	// resolved against baseDir.
	ConvertFile(ctx context.Context, html, outputPath, baseDir string) error
	Close() error
}

var _ DocumentConverter = (*RodConverter)(nil)

// defaultTimeout bounds page loading when the context has no deadline.
const defaultTimeout = 30 * time.Second

// RodConverter converts HTML to PDF using headless Chrome via go-rod.
// The browser is launched on the first conversion and reused until Close.
// A RodConverter must not be used by more than one goroutine at a time.
type RodConverter struct {
	renderer pdfRenderer
	page     *PageSettings
}

// NewRodConverter creates a RodConverter. A nil page uses DefaultPageSettings;
// a non-positive timeout uses 30 seconds.
func NewRodConverter(page *PageSettings, timeout time.Duration) *RodConverter {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return newRodConverterWith(newRodRenderer(timeout), page)
}

func newRodConverterWith(renderer pdfRenderer, page *PageSettings) *RodConverter {
	if page == nil {
		page = DefaultPageSettings()
	}
	return &RodConverter{renderer: renderer, page: page}
}

// ConvertFile renders html to outputPath.
func (c *RodConverter) ConvertFile(ctx context.Context, html, outputPath, baseDir string) error {
	resolved, err := pipeline.ResolveAssets(html, baseDir)
	if err != nil {
		if errors.Is(err, pipeline.ErrAssetMissing) || errors.Is(err, pipeline.ErrAssetOutside) {
			return fmt.Errorf("%w: %v", ErrAssetNotFound, err)
		}
		return fmt.Errorf("resolving assets: %w", err)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(resolved, "html")
	if err != nil {
		return err
	}
	defer cleanup()

	pdf, err := c.renderer.RenderFromFile(ctx, tmpPath, c.page)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), fileutil.DirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	// #nosec G306 -- PDF output files are intended to be readable
	if err := os.WriteFile(outputPath, pdf, fileutil.FilePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}

	return nil
}

// Close releases browser resources.
func (c *RodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
