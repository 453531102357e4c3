// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quoteanalytics/collections"
	"quoteanalytics/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestQuote creates a quote record with the given title and returns it.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("reference_number", "Q-TEST-001")
	record.Set("customer", "Test Customer")
	record.Set("currency", "INR")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// CreateTestLineItem creates a line item record linked to a quote and returns it.
func CreateTestLineItem(t *testing.T, app *pocketbase.PocketBase, quoteID string, item services.LineItem) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		t.Fatalf("failed to find line_items collection: %v", err)
	}

	existing, err := app.FindRecordsByFilter(col, "quote = {:quote}", "", 0, 0, map[string]any{"quote": quoteID})
	if err != nil {
		t.Fatalf("failed to count existing line items: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote", quoteID)
	record.Set("sort_order", len(existing)+1)
	record.Set("item_code", item.ItemCode)
	record.Set("item_name", item.ItemName)
	record.Set("bom_code", item.BOMCode)
	record.Set("bom_path", item.BOMPath)
	record.Set("bom_instance_id", item.BOMInstanceID)
	record.Set("bom_instance_qty", item.BOMInstanceQty)
	record.Set("qty", item.Qty)
	record.Set("vendor_rate", item.VendorRate)
	record.Set("base_rate", item.BaseRate)
	record.Set("quoted_rate", item.QuotedRate)
	record.Set("additional_cost_per_unit", item.AdditionalCostPerUnit)
	record.Set("total_amount", item.TotalAmount)
	record.Set("vendor_name", item.VendorName)
	record.Set("tags", item.Tags)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test line item: %v", err)
	}

	return record
}

// DecodeJSON unmarshals a JSON response body into dst, failing the test on error.
func DecodeJSON(t *testing.T, body string, dst any) {
	t.Helper()

	if err := json.Unmarshal([]byte(body), dst); err != nil {
		t.Fatalf("failed to decode JSON response: %v\nbody (first 500 chars): %s",
			err, truncate(body, 500))
	}
}

// AssertJSONContains checks that body contains all specified fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected response to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
