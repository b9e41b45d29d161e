// Command invoice2pdf-server exposes invoice generation over HTTP.
//
// POST /v1/invoices accepts a multipart upload (field "file", optional
// "logo") and returns the zip archive of generated PDFs.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/config"
	"github.com/alnah/go-invoice2pdf/internal/server"
)

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(log.Printf))

	cfg := server.LoadConfig()

	invoiceCfg := config.DefaultConfig()
	if cfg.ConfigRef != "" {
		loaded, err := config.LoadConfig(cfg.ConfigRef)
		if err != nil {
			log.Fatalf("Failed to load invoice config: %v", err)
		}
		invoiceCfg = loaded
	}

	opts := append(invoice2pdf.OptionsFromConfig(invoiceCfg), invoice2pdf.WithProgress(log.Writer()))
	if cfg.PDFTimeout > 0 {
		opts = append(opts, invoice2pdf.WithTimeout(cfg.PDFTimeout))
	}

	pool := invoice2pdf.NewGeneratorPool(invoice2pdf.ResolvePoolSize(cfg.MaxWorkers), opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			log.Printf("Error closing generator pool: %v", err)
		}
	}()

	// Surface asset and page errors at startup; the browser itself starts lazily.
	gen, err := pool.Acquire(context.Background())
	if err != nil {
		log.Fatalf("Invalid invoice configuration: %v", err)
	}
	pool.Release(gen)
	log.Printf("Generator pool ready with %d workers", pool.Size())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.NewServer(cfg, pool, os.Stdout).Run(ctx); err != nil {
		log.Printf("Server error: %v", err)
		stop()
		_ = pool.Close()
		os.Exit(1)
	}
}
