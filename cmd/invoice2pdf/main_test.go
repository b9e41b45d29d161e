package main

// Notes:
// - runMain is exercised end to end with a real Generator whose converter is
//   replaced by fakeConverter; Chrome is never launched here.
// - doctor is only checked for dispatch; its checks are covered in doctor_test.go.
// - Tests that read INVOICE2PDF_* variables assume none are set in the
//   environment running the suite.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2026, 10, 19, 9, 30, 15, 0, time.UTC)

const ordersHeader = "split_order_number,invoice_number,order_item_quantity,sku_id,Gross Placed: Total Wholesale $,vendor_name\n"

// fakeConverter implements invoice2pdf.DocumentConverter without a browser.
type fakeConverter struct {
	mu     sync.Mutex
	err    error // returned for every row when set
	calls  int
	closed bool
}

func (f *fakeConverter) ConvertFile(_ context.Context, html, outputPath, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o750); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte("%PDF-1.4 "+filepath.Base(outputPath)), 0o644)
}

func (f *fakeConverter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// newTestEnv returns an Environment whose generators use conv.
func newTestEnv(conv *fakeConverter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: &stdout,
		Stderr: &stderr,
		NewGenerator: func(opts ...invoice2pdf.Option) (Generator, error) {
			return invoice2pdf.NewGenerator(append(opts, invoice2pdf.WithConverter(conv))...)
		},
	}
	return env, &stdout, &stderr
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return lines[len(lines)-1]
}

func archiveEntries(t *testing.T, path string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name detection
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"version", true},
		{"help", true},
		{"doctor", true},
		{"orders.csv", false},
		{"--config", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.input); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWantsVerbose(t *testing.T) {
	t.Parallel()

	if !wantsVerbose([]string{"in.csv", "out", "-v"}) {
		t.Error("wantsVerbose should detect -v")
	}
	if !wantsVerbose([]string{"--verbose"}) {
		t.Error("wantsVerbose should detect --verbose")
	}
	if wantsVerbose([]string{"in.csv", "out"}) {
		t.Error("wantsVerbose should be false without the flag")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Commands - Dispatch and usage errors
// ---------------------------------------------------------------------------

func TestRunMain_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage",
			args:         []string{"invoice2pdf"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: invoice2pdf"},
		},
		{
			name:         "version",
			args:         []string{"invoice2pdf", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"invoice2pdf " + Version},
		},
		{
			name:         "help",
			args:         []string{"invoice2pdf", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: invoice2pdf", "Exit codes:"},
		},
		{
			name:         "help doctor",
			args:         []string{"invoice2pdf", "help", "doctor"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"invoice2pdf doctor [--json]"},
		},
		{
			name:         "help unknown command",
			args:         []string{"invoice2pdf", "help", "bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Unknown command: bogus"},
		},
		{
			name:         "-h prints usage",
			args:         []string{"invoice2pdf", "-h"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: invoice2pdf"},
		},
		{
			name:         "unknown flag",
			args:         []string{"invoice2pdf", "--bogus", "in.csv", "out"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"error:", "invoice2pdf help"},
		},
		{
			name:         "missing input path",
			args:         []string{"invoice2pdf", "--quiet"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"missing input path"},
		},
		{
			name:         "missing output directory",
			args:         []string{"invoice2pdf", "in.csv"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"missing output directory"},
		},
		{
			name:         "too many arguments",
			args:         []string{"invoice2pdf", "a.csv", "out", "logo.png", "extra"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"at most 3 arguments"},
		},
		{
			name:         "invalid timeout",
			args:         []string{"invoice2pdf", "--timeout", "soon", "a.csv", "out"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv(&fakeConverter{})
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Generate - Batch runs through the CLI
// ---------------------------------------------------------------------------

func TestRunMain_Generate(t *testing.T) {
	t.Parallel()

	t.Run("archive path is the last stdout line", func(t *testing.T) {
		t.Parallel()

		input := writeInput(t, "orders.csv", ordersHeader+
			"PO-1,INV-1,2,SKU-A,10.00,Acme\n"+
			"PO-2,INV-2,1,SKU-B,5.50,Acme\n")
		out := t.TempDir()
		conv := &fakeConverter{}
		env, stdout, stderr := newTestEnv(conv)

		code := runMain([]string{"invoice2pdf", input, out}, env)
		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
		}

		want := filepath.Join(out, "invoices_20261019_093015.zip")
		if got := lastLine(stdout.String()); got != want {
			t.Errorf("last stdout line = %q, want %q", got, want)
		}
		if !strings.Contains(stdout.String(), "Processing 2 invoices...") {
			t.Errorf("stdout should report progress, got %q", stdout.String())
		}
		if got := archiveEntries(t, want); len(got) != 2 {
			t.Errorf("archive entries = %v, want 2", got)
		}
		if !conv.closed {
			t.Error("generator should be closed after the run")
		}
	})

	t.Run("quiet prints only the archive path", func(t *testing.T) {
		t.Parallel()

		input := writeInput(t, "orders.csv", ordersHeader+"PO-1,INV-1,2,SKU-A,10.00,Acme\n")
		out := t.TempDir()
		env, stdout, _ := newTestEnv(&fakeConverter{})

		if code := runMain([]string{"invoice2pdf", "-q", input, out}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d", code)
		}

		want := filepath.Join(out, "invoices_20261019_093015.zip") + "\n"
		if stdout.String() != want {
			t.Errorf("stdout = %q, want %q", stdout.String(), want)
		}
	})

	t.Run("verbose reports counts on stderr", func(t *testing.T) {
		t.Parallel()

		input := writeInput(t, "orders.csv", ordersHeader+
			"PO-1,INV-1,2,SKU-A,10.00,Acme\n"+
			"PO-2,,1,SKU-B,5.50,Acme\n")
		env, _, stderr := newTestEnv(&fakeConverter{})

		if code := runMain([]string{"invoice2pdf", "-v", input, t.TempDir()}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d", code)
		}
		if !strings.Contains(stderr.String(), "1 generated, 1 skipped") {
			t.Errorf("stderr = %q, want counts", stderr.String())
		}
	})

	t.Run("missing logo is a warning", func(t *testing.T) {
		t.Parallel()

		input := writeInput(t, "orders.csv", ordersHeader+"PO-1,INV-1,2,SKU-A,10.00,Acme\n")
		env, stdout, _ := newTestEnv(&fakeConverter{})

		code := runMain([]string{"invoice2pdf", input, t.TempDir(), filepath.Join(t.TempDir(), "nope.png")}, env)
		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, want success", code)
		}
		if !strings.Contains(stdout.String(), "Warning: logo file not found") {
			t.Errorf("stdout should warn about the logo, got %q", stdout.String())
		}
	})

	t.Run("flags override page settings", func(t *testing.T) {
		t.Parallel()

		input := writeInput(t, "orders.csv", ordersHeader+"PO-1,INV-1,2,SKU-A,10.00,Acme\n")
		env, _, stderr := newTestEnv(&fakeConverter{})

		code := runMain([]string{"invoice2pdf", "--page-size", "tabloid", input, t.TempDir()}, env)
		if code != ExitUsage {
			t.Errorf("runMain() = %d, want ExitUsage for an invalid page size", code)
		}
		if !strings.Contains(stderr.String(), "page size") {
			t.Errorf("stderr = %q, want page size error", stderr.String())
		}
	})

	t.Run("output dir from config", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		cfgPath := writeInput(t, "batch.yaml", "output:\n  defaultDir: "+out+"\n")
		input := writeInput(t, "orders.csv", ordersHeader+"PO-1,INV-1,2,SKU-A,10.00,Acme\n")
		env, stdout, stderr := newTestEnv(&fakeConverter{})

		code := runMain([]string{"invoice2pdf", "--config", cfgPath, input}, env)
		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
		}
		if got := lastLine(stdout.String()); filepath.Dir(got) != out {
			t.Errorf("archive %q should be written to %q", got, out)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Failures - Exit codes and hints for failed batches
// ---------------------------------------------------------------------------

func TestRunMain_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		file         string
		content      string
		convErr      error
		wantCode     int
		wantInStderr []string
	}{
		{
			name:         "missing columns",
			file:         "orders.csv",
			content:      "invoice_number,sku_id\nINV-1,SKU\n",
			wantCode:     ExitUsage,
			wantInStderr: []string{"missing required columns", "hint:", "columns:"},
		},
		{
			name:         "unsupported format",
			file:         "orders.xls",
			content:      "binary",
			wantCode:     ExitUsage,
			wantInStderr: []string{"unsupported", "hint: re-save the workbook as .xlsx"},
		},
		{
			name:         "every row invalid",
			file:         "orders.csv",
			content:      ordersHeader + ",,1,SKU,1.00,Acme\n",
			wantCode:     ExitNoDocuments,
			wantInStderr: []string{"no documents were generated", "Skipped row"},
		},
		{
			name:         "browser down for every row",
			file:         "orders.csv",
			content:      ordersHeader + "PO-1,INV-1,1,SKU,1.00,Acme\n",
			convErr:      invoice2pdf.ErrBrowserConnect,
			wantCode:     ExitBrowser,
			wantInStderr: []string{"failed to connect to browser"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := writeInput(t, tt.file, tt.content)
			env, stdout, stderr := newTestEnv(&fakeConverter{err: tt.convErr})
			// Skipped rows go to the progress writer; fold it into stderr checks.
			code := runMain([]string{"invoice2pdf", input, t.TempDir()}, env)
			combined := stderr.String() + stdout.String()

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\noutput: %s", code, tt.wantCode, combined)
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(combined, want) {
					t.Errorf("output should contain %q, got %q", want, combined)
				}
			}
		})
	}

	t.Run("missing input file is an I/O error", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv(&fakeConverter{})
		code := runMain([]string{"invoice2pdf", filepath.Join(t.TempDir(), "gone.csv"), t.TempDir()}, env)
		if code != ExitIO {
			t.Errorf("runMain() = %d, want ExitIO", code)
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := newTestEnv(&fakeConverter{})
		code := runMain([]string{"invoice2pdf", "-c", filepath.Join(t.TempDir(), "none.yaml"), "a.csv", "out"}, env)
		if code != ExitUsage {
			t.Errorf("runMain() = %d, want ExitUsage", code)
		}
		if !strings.Contains(stderr.String(), "hint: use --config") {
			t.Errorf("stderr = %q, want config hint", stderr.String())
		}
	})

	t.Run("generator construction failure", func(t *testing.T) {
		t.Parallel()

		input := writeInput(t, "orders.csv", ordersHeader+"PO-1,INV-1,1,SKU,1.00,Acme\n")
		env, _, stderr := newTestEnv(&fakeConverter{})

		code := runMain([]string{"invoice2pdf", "--style", "neon", input, t.TempDir()}, env)
		if code != ExitUsage {
			t.Errorf("runMain() = %d, want ExitUsage", code)
		}
		if !strings.Contains(stderr.String(), "available: compact, invoice") {
			t.Errorf("stderr = %q, want the built-in style list", stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestSystemicFailure - Browser-wide failures
// ---------------------------------------------------------------------------

func TestSystemicFailure(t *testing.T) {
	t.Parallel()

	browser := invoice2pdf.RowFailure{Err: invoice2pdf.ErrPageLoad}
	data := invoice2pdf.RowFailure{Err: &invoice2pdf.RowError{Reason: "missing invoice number"}}

	tests := []struct {
		name   string
		result *invoice2pdf.BatchResult
		want   error
	}{
		{"nil result", nil, nil},
		{"no failures", &invoice2pdf.BatchResult{}, nil},
		{"all browser", &invoice2pdf.BatchResult{Failures: []invoice2pdf.RowFailure{browser, browser}}, invoice2pdf.ErrPageLoad},
		{"mixed", &invoice2pdf.BatchResult{Failures: []invoice2pdf.RowFailure{browser, data}}, nil},
		{"some documents", &invoice2pdf.BatchResult{
			Documents: []invoice2pdf.GeneratedDocument{{InvoiceNumber: "INV-1"}},
			Failures:  []invoice2pdf.RowFailure{browser},
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := systemicFailure(tt.result)
			if !errors.Is(got, tt.want) || (tt.want == nil && got != nil) {
				t.Errorf("systemicFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}
