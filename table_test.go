package invoice2pdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateSchema(t *testing.T) {
	t.Parallel()

	required := DefaultColumns().Required()

	tests := []struct {
		name        string
		columns     []string
		wantMissing []string
	}{
		{
			name:    "all present",
			columns: []string{"split_order_number", "invoice_number", "order_item_quantity", "sku_id", "Gross Placed: Total Wholesale $"},
		},
		{
			name:    "extra columns are ignored",
			columns: []string{"vendor_name", "split_order_number", "invoice_number", "order_item_quantity", "sku_id", "Gross Placed: Total Wholesale $", "notes"},
		},
		{
			name:    "headers compared after trimming",
			columns: []string{" split_order_number", "invoice_number ", "order_item_quantity", "sku_id", "Gross Placed: Total Wholesale $"},
		},
		{
			name:        "one missing",
			columns:     []string{"split_order_number", "order_item_quantity", "sku_id", "Gross Placed: Total Wholesale $"},
			wantMissing: []string{"invoice_number"},
		},
		{
			name:        "missing listed in required order",
			columns:     []string{"sku_id", "invoice_number"},
			wantMissing: []string{"split_order_number", "order_item_quantity", "Gross Placed: Total Wholesale $"},
		},
		{
			name:        "empty header",
			columns:     nil,
			wantMissing: required,
		},
		{
			name:        "matching is case sensitive",
			columns:     []string{"SPLIT_ORDER_NUMBER", "invoice_number", "order_item_quantity", "sku_id", "Gross Placed: Total Wholesale $"},
			wantMissing: []string{"split_order_number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateSchema(tt.columns, required)
			if tt.wantMissing == nil {
				if err != nil {
					t.Errorf("ValidateSchema() error = %v, want nil", err)
				}
				return
			}

			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("ValidateSchema() error = %v, want *SchemaError", err)
			}
			if !errors.Is(err, ErrMissingColumns) {
				t.Error("SchemaError should match ErrMissingColumns")
			}
			if diff := cmp.Diff(tt.wantMissing, schemaErr.Missing); diff != "" {
				t.Errorf("Missing mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("csv", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "orders.csv")
		if err := os.WriteFile(path, []byte("invoice_number,sku_id\nINV-1,A\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		table, err := LoadTable(path)
		if err != nil {
			t.Fatalf("LoadTable() error = %v", err)
		}
		if diff := cmp.Diff([]string{"invoice_number", "sku_id"}, table.Columns); diff != "" {
			t.Errorf("Columns mismatch (-want +got):\n%s", diff)
		}
		if got := table.Rows[0].Get("invoice_number"); got != "INV-1" {
			t.Errorf("invoice_number = %q, want %q", got, "INV-1")
		}
	})

	t.Run("legacy excel is unsupported", func(t *testing.T) {
		t.Parallel()

		_, err := LoadTable(filepath.Join(dir, "orders.xls"))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("LoadTable() error = %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadTable(filepath.Join(dir, "missing.csv"))
		if !errors.Is(err, ErrReadTable) {
			t.Errorf("LoadTable() error = %v, want ErrReadTable", err)
		}
	})
}
