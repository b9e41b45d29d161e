package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-invoice2pdf/internal/config"
)

// envPrefix marks the variables the CLI reads.
const envPrefix = "INVOICE2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // INVOICE2PDF_CONFIG: config file name or path
	Timeout    time.Duration // INVOICE2PDF_TIMEOUT: per-invoice PDF timeout
	PageSize   string        // INVOICE2PDF_PAGE_SIZE: letter, a4, legal
	DateFormat string        // INVOICE2PDF_DATE_FORMAT: auto, auto:FORMAT or literal
	OutputDir  string        // INVOICE2PDF_OUTPUT_DIR: archive destination when none is given
}

// knownEnvVars lists valid INVOICE2PDF_* environment variables.
var knownEnvVars = map[string]bool{
	"INVOICE2PDF_CONFIG":      true,
	"INVOICE2PDF_TIMEOUT":     true,
	"INVOICE2PDF_PAGE_SIZE":   true,
	"INVOICE2PDF_DATE_FORMAT": true,
	"INVOICE2PDF_OUTPUT_DIR":  true,
	// Read by doctor only.
	"INVOICE2PDF_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// An invalid or non-positive timeout is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("INVOICE2PDF_CONFIG"),
		PageSize:   os.Getenv("INVOICE2PDF_PAGE_SIZE"),
		DateFormat: os.Getenv("INVOICE2PDF_DATE_FORMAT"),
		OutputDir:  os.Getenv("INVOICE2PDF_OUTPUT_DIR"),
	}

	if timeout := os.Getenv("INVOICE2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars warns about unrecognized INVOICE2PDF_* variables,
// which are usually typos.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays environment values on the loaded config file.
// Flags are merged afterwards, giving flags > env > config > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.DateFormat != "" {
		cfg.Invoice.Date = env.DateFormat
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
