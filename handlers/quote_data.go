package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quoteanalytics/services"
)

// fetchLineItems loads all line items for a quote, ordered by sort_order,
// and converts them to service-layer values.
func fetchLineItems(app *pocketbase.PocketBase, quoteID string) ([]services.LineItem, error) {
	col, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		return nil, fmt.Errorf("line_items collection not found: %w", err)
	}

	records, err := app.FindRecordsByFilter(col, "quote = {:quote}", "sort_order", 0, 0, map[string]any{"quote": quoteID})
	if err != nil {
		return nil, fmt.Errorf("could not query line items: %w", err)
	}

	items := make([]services.LineItem, 0, len(records))
	for _, rec := range records {
		var tags []string
		if err := rec.UnmarshalJSONField("tags", &tags); err != nil {
			tags = nil
		}
		items = append(items, services.LineItem{
			ItemCode:              rec.GetString("item_code"),
			ItemName:              rec.GetString("item_name"),
			BOMCode:               rec.GetString("bom_code"),
			BOMPath:               rec.GetString("bom_path"),
			BOMInstanceID:         rec.GetString("bom_instance_id"),
			BOMInstanceQty:        rec.GetFloat("bom_instance_qty"),
			Qty:                   rec.GetFloat("qty"),
			VendorRate:            rec.GetFloat("vendor_rate"),
			BaseRate:              rec.GetFloat("base_rate"),
			QuotedRate:            rec.GetFloat("quoted_rate"),
			AdditionalCostPerUnit: rec.GetFloat("additional_cost_per_unit"),
			TotalAmount:           rec.GetFloat("total_amount"),
			VendorName:            rec.GetString("vendor_name"),
			Tags:                  tags,
		})
	}
	return items, nil
}

// quoteAggregates reads the stored quote-level totals from a quote record.
func quoteAggregates(rec *core.Record) services.QuoteAggregates {
	return services.QuoteAggregates{
		Currency:             rec.GetString("currency"),
		TotalValue:           rec.GetFloat("total_value"),
		BaseAmount:           rec.GetFloat("base_amount"),
		GrandTotal:           rec.GetFloat("grand_total"),
		AdditionalCostsTotal: rec.GetFloat("additional_costs_total"),
	}
}

// parsePage reads page and page_size query parameters, falling back to
// page 1 and the default page size.
func parsePage(query url.Values) services.Page {
	page := services.Page{Number: 1, Size: services.DefaultPageSize}
	if n, err := strconv.Atoi(query.Get("page")); err == nil && n > 0 {
		page.Number = n
	}
	if n, err := strconv.Atoi(query.Get("page_size")); err == nil && n > 0 {
		page.Size = n
	}
	return page
}

// parseSort reads sort and dir query parameters.
func parseSort(query url.Values, defaultColumn string) services.SortSpec {
	spec := services.SortSpec{Column: defaultColumn}
	if col := query.Get("sort"); col != "" {
		spec.Column = col
	}
	spec.Descending = query.Get("dir") == "desc"
	return spec
}
