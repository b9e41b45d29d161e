package invoice2pdf

// Notes:
// - RodConverter is tested with a mock pdfRenderer; real Chrome rendering is
//   covered by the integration tests (html2pdf_integration_test.go).
// - mockConverter is shared by the batch, generator and pool tests. It writes
//   a small fake PDF so the archiver has real files to package.
// - Directory creation failures for the output path are tested by placing a
//   file where a directory is expected.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockRenderer implements pdfRenderer for testing.
type mockRenderer struct {
	result     []byte
	err        error
	calledWith string
	calledPage *PageSettings
	html       string // content of the temp file at render time
	closed     bool
}

func (m *mockRenderer) RenderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error) {
	m.calledWith = filePath
	m.calledPage = page
	if data, err := os.ReadFile(filePath); err == nil {
		m.html = string(data)
	}
	return m.result, m.err
}

func (m *mockRenderer) Close() error {
	m.closed = true
	return nil
}

// mockConverter implements DocumentConverter without a browser.
type mockConverter struct {
	mu        sync.Mutex
	calls     []string          // output paths in call order
	html      map[string]string // output path -> HTML
	failures  map[string]error  // output base name -> error to return
	onConvert func(html, outputPath, baseDir string)
	closeErr  error
	closed    bool
}

func newMockConverter() *mockConverter {
	return &mockConverter{html: make(map[string]string), failures: make(map[string]error)}
}

func (m *mockConverter) ConvertFile(ctx context.Context, html, outputPath, baseDir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, outputPath)
	m.html[outputPath] = html
	if m.onConvert != nil {
		m.onConvert(html, outputPath, baseDir)
	}
	if err, ok := m.failures[filepath.Base(outputPath)]; ok {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o750); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte("%PDF-1.4 "+filepath.Base(outputPath)), 0o644)
}

func (m *mockConverter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return m.closeErr
}

// ---------------------------------------------------------------------------
// TestRodConverter_ConvertFile - Conversion with mock renderer
// ---------------------------------------------------------------------------

func TestRodConverter_ConvertFile(t *testing.T) {
	t.Parallel()

	t.Run("writes rendered bytes and creates parent directories", func(t *testing.T) {
		t.Parallel()

		mock := &mockRenderer{result: []byte("%PDF-1.4 fake")}
		conv := newRodConverterWith(mock, nil)
		out := filepath.Join(t.TempDir(), "nested", "pdfs", "INV-1.pdf")

		if err := conv.ConvertFile(context.Background(), "<html><body>Invoice</body></html>", out, ""); err != nil {
			t.Fatalf("ConvertFile() error = %v", err)
		}

		got, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if diff := cmp.Diff("%PDF-1.4 fake", string(got)); diff != "" {
			t.Errorf("output mismatch (-want +got):\n%s", diff)
		}
		if !strings.HasSuffix(mock.calledWith, ".html") {
			t.Errorf("renderer called with %q, want an .html temp file", mock.calledWith)
		}
		if _, err := os.Stat(mock.calledWith); !os.IsNotExist(err) {
			t.Errorf("temp file %q should be removed after conversion", mock.calledWith)
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "INV-1.pdf")
		if err := os.WriteFile(out, []byte("stale content that is longer"), 0o644); err != nil {
			t.Fatal(err)
		}

		conv := newRodConverterWith(&mockRenderer{result: []byte("new")}, nil)
		if err := conv.ConvertFile(context.Background(), "<p>x</p>", out, ""); err != nil {
			t.Fatalf("ConvertFile() error = %v", err)
		}

		got, _ := os.ReadFile(out)
		if string(got) != "new" {
			t.Errorf("output = %q, want %q", got, "new")
		}
	})

	t.Run("passes page settings to renderer", func(t *testing.T) {
		t.Parallel()

		page := &PageSettings{Size: PageSizeA4, Orientation: OrientationLandscape, Margin: 1}
		mock := &mockRenderer{result: []byte("%PDF")}
		conv := newRodConverterWith(mock, page)

		if err := conv.ConvertFile(context.Background(), "<p>x</p>", filepath.Join(t.TempDir(), "a.pdf"), ""); err != nil {
			t.Fatalf("ConvertFile() error = %v", err)
		}
		if diff := cmp.Diff(page, mock.calledPage); diff != "" {
			t.Errorf("page mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("resolves relative images against base dir", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		logo := filepath.Join(base, "static", "images", "company-logo.png")
		if err := os.MkdirAll(filepath.Dir(logo), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(logo, []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}

		mock := &mockRenderer{result: []byte("%PDF")}
		conv := newRodConverterWith(mock, nil)
		html := `<html><body><img src="static/images/company-logo.png"></body></html>`

		if err := conv.ConvertFile(context.Background(), html, filepath.Join(base, "pdfs", "a.pdf"), base); err != nil {
			t.Fatalf("ConvertFile() error = %v", err)
		}
		if !strings.Contains(mock.html, "file://") || !strings.Contains(mock.html, "company-logo.png") {
			t.Errorf("rendered HTML should reference the logo by file URL, got %q", mock.html)
		}
	})

	t.Run("missing image is ErrAssetNotFound", func(t *testing.T) {
		t.Parallel()

		mock := &mockRenderer{result: []byte("%PDF")}
		conv := newRodConverterWith(mock, nil)
		out := filepath.Join(t.TempDir(), "a.pdf")

		err := conv.ConvertFile(context.Background(), `<img src="static/images/missing.png">`, out, t.TempDir())
		if !errors.Is(err, ErrAssetNotFound) {
			t.Fatalf("ConvertFile() error = %v, want ErrAssetNotFound", err)
		}
		if mock.calledWith != "" {
			t.Error("renderer should not be called when an asset is missing")
		}
		if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
			t.Error("no output should be written")
		}
	})

	t.Run("image outside base dir is ErrAssetNotFound", func(t *testing.T) {
		t.Parallel()

		conv := newRodConverterWith(&mockRenderer{result: []byte("%PDF")}, nil)
		err := conv.ConvertFile(context.Background(), `<img src="../../etc/passwd">`, filepath.Join(t.TempDir(), "a.pdf"), t.TempDir())
		if !errors.Is(err, ErrAssetNotFound) {
			t.Errorf("ConvertFile() error = %v, want ErrAssetNotFound", err)
		}
	})

	t.Run("renderer error propagates", func(t *testing.T) {
		t.Parallel()

		conv := newRodConverterWith(&mockRenderer{err: ErrPageLoad}, nil)
		out := filepath.Join(t.TempDir(), "a.pdf")

		err := conv.ConvertFile(context.Background(), "<p>x</p>", out, "")
		if !errors.Is(err, ErrPageLoad) {
			t.Fatalf("ConvertFile() error = %v, want ErrPageLoad", err)
		}
		if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
			t.Error("no output should be written on renderer failure")
		}
	})

	t.Run("unwritable output is ErrWritePDF", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		if err := os.WriteFile(blocker, nil, 0o644); err != nil {
			t.Fatal(err)
		}

		conv := newRodConverterWith(&mockRenderer{result: []byte("%PDF")}, nil)
		err := conv.ConvertFile(context.Background(), "<p>x</p>", filepath.Join(blocker, "a.pdf"), "")
		if !errors.Is(err, ErrWritePDF) {
			t.Errorf("ConvertFile() error = %v, want ErrWritePDF", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRodConverter_Close - Resource release
// ---------------------------------------------------------------------------

func TestRodConverter_Close(t *testing.T) {
	t.Parallel()

	mock := &mockRenderer{}
	conv := newRodConverterWith(mock, nil)
	if err := conv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !mock.closed {
		t.Error("Close() should close the renderer")
	}

	t.Run("never launched browser closes cleanly", func(t *testing.T) {
		t.Parallel()

		if err := NewRodConverter(nil, 0).Close(); err != nil {
			t.Errorf("Close() error = %v, want nil", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPageDimensions - Paper sizes and orientation
// ---------------------------------------------------------------------------

func TestPageDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       *PageSettings
		wantWidth  float64
		wantHeight float64
		wantMargin float64
	}{
		{"nil uses letter portrait", nil, 8.5, 11, DefaultMargin},
		{"letter portrait", &PageSettings{Size: "letter", Orientation: "portrait", Margin: 0.5}, 8.5, 11, 0.5},
		{"a4 portrait", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 1}, 8.27, 11.69, 1},
		{"legal landscape swaps", &PageSettings{Size: "legal", Orientation: "landscape", Margin: 0.75}, 14, 8.5, 0.75},
		{"case insensitive", &PageSettings{Size: "A4", Orientation: "LANDSCAPE", Margin: 0.5}, 11.69, 8.27, 0.5},
		{"unknown size falls back to letter", &PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 0.5}, 8.5, 11, 0.5},
		{"zero margin uses default", &PageSettings{Size: "letter"}, 8.5, 11, DefaultMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h, m := pageDimensions(tt.page)
			if w != tt.wantWidth || h != tt.wantHeight || m != tt.wantMargin {
				t.Errorf("pageDimensions() = (%v, %v, %v), want (%v, %v, %v)",
					w, h, m, tt.wantWidth, tt.wantHeight, tt.wantMargin)
			}
		})
	}
}

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	opts := buildPDFOptions(&PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait, Margin: 0.75})

	if *opts.PaperWidth != 8.27 || *opts.PaperHeight != 11.69 {
		t.Errorf("paper = %vx%v, want 8.27x11.69", *opts.PaperWidth, *opts.PaperHeight)
	}
	for name, m := range map[string]*float64{
		"top": opts.MarginTop, "bottom": opts.MarginBottom, "left": opts.MarginLeft, "right": opts.MarginRight,
	} {
		if *m != 0.75 {
			t.Errorf("margin %s = %v, want 0.75", name, *m)
		}
	}
	if !opts.PrintBackground {
		t.Error("PrintBackground should be enabled")
	}
}
