// Package config loads the YAML configuration shared by the CLI and the server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/dateutil"
	"github.com/alnah/go-invoice2pdf/internal/fileutil"
	"github.com/alnah/go-invoice2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxColumnLength      = 100  // spreadsheet header text
	MaxDateLength        = 50   // "auto:..." or a literal date
	MaxNotesLength       = 4000 // Markdown footer block
	MaxPathLength        = 4096
	MaxNameLength        = 64 // template/style names
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
)

// userConfigSubdir is searched under os.UserConfigDir for named configs.
const userConfigSubdir = "go-invoice2pdf"

// Config holds all configuration for invoice generation.
type Config struct {
	Columns ColumnsConfig `yaml:"columns"`
	Invoice InvoiceConfig `yaml:"invoice"`
	Page    PageConfig    `yaml:"page"`
	Assets  AssetsConfig  `yaml:"assets"`
	Output  OutputConfig  `yaml:"output"`
}

// ColumnsConfig maps invoice fields to spreadsheet headers.
// Empty values keep the built-in header names.
type ColumnsConfig struct {
	PurchaseOrder  string `yaml:"purchaseOrder"`
	InvoiceNumber  string `yaml:"invoiceNumber"`
	Quantity       string `yaml:"quantity"`
	SKU            string `yaml:"sku"`
	Price          string `yaml:"price"`
	VendorName     string `yaml:"vendorName"`
	RoutingNumber  string `yaml:"routingNumber"`
	AccountNumber  string `yaml:"accountNumber"`
	BillToName     string `yaml:"billToName"`
	BillToAddress1 string `yaml:"billToAddress1"`
	BillToAddress2 string `yaml:"billToAddress2"`
	BillToAddress3 string `yaml:"billToAddress3"`
}

// InvoiceConfig defines per-batch document content.
type InvoiceConfig struct {
	Date  string `yaml:"date"`  // "auto", "auto:FORMAT" or a literal date (default: "auto")
	Notes string `yaml:"notes"` // Markdown printed under the line items
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// AssetsConfig defines where the invoice template and style come from.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = embedded assets only
	Template string `yaml:"template"` // Template name or path (default: "invoice")
	Style    string `yaml:"style"`    // Style name or path (default: "invoice")
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Used when the CLI gets no output directory
}

// pairs returns the column overrides as (field, header) pairs, in a fixed
// order, so callers can validate or apply them uniformly.
func (c ColumnsConfig) pairs() []struct{ field, header string } {
	return []struct{ field, header string }{
		{"purchaseOrder", c.PurchaseOrder},
		{"invoiceNumber", c.InvoiceNumber},
		{"quantity", c.Quantity},
		{"sku", c.SKU},
		{"price", c.Price},
		{"vendorName", c.VendorName},
		{"routingNumber", c.RoutingNumber},
		{"accountNumber", c.AccountNumber},
		{"billToName", c.BillToName},
		{"billToAddress1", c.BillToAddress1},
		{"billToAddress2", c.BillToAddress2},
		{"billToAddress3", c.BillToAddress3},
	}
}

// Validate checks field lengths and enumerated values.
// Called by LoadConfig; available for callers that build a Config in code.
func (c *Config) Validate() error {
	for _, p := range c.Columns.pairs() {
		if err := validateFieldLength("columns."+p.field, p.header, MaxColumnLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("invoice.date", c.Invoice.Date, MaxDateLength); err != nil {
		return err
	}
	if err := dateutil.Validate(c.Invoice.Date); err != nil {
		return fmt.Errorf("invoice.date: %w", err)
	}
	if err := validateFieldLength("invoice.notes", c.Invoice.Notes, MaxNotesLength); err != nil {
		return err
	}

	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}
	if c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin must not be negative, got %.2f", ErrInvalidValue, c.Page.Margin)
	}

	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateAssetRef("assets.template", c.Assets.Template); err != nil {
		return err
	}
	if err := validateAssetRef("assets.style", c.Assets.Style); err != nil {
		return err
	}

	return validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength)
}

// validateAssetRef allows long values only when they are paths.
func validateAssetRef(field, value string) error {
	limit := MaxNameLength
	if fileutil.IsFilePath(value) {
		limit = MaxPathLength
	}
	return validateFieldLength(field, value, limit)
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that uses every built-in default.
func DefaultConfig() *Config {
	return &Config{
		Invoice: InvoiceConfig{Date: "auto"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; anything else is
// searched as ./name.yaml, ./name.yml, then under the user config directory.
// A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFileStrict(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileutil.FileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, userConfigSubdir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
