package services

import (
	"reflect"
	"testing"
)

// vitem builds a two-instance volume item for pipeline tests.
func vitem(itemCode, itemName, bomPath, vendor string, tags []string, firstRate, lastRate float64) VolumeItem {
	return VolumeItem{
		ItemCode:   itemCode,
		ItemName:   itemName,
		BOMCode:    rootPath(bomPath),
		BOMPath:    bomPath,
		VendorName: vendor,
		Tags:       tags,
		Instances: []VolumeInstance{
			{BOMInstanceID: "inst-1", BOMInstanceQty: 10, QuotedRate: firstRate},
			{BOMInstanceID: "inst-2", BOMInstanceQty: 1000, QuotedRate: lastRate},
		},
	}
}

func testVolumeItems() []VolumeItem {
	return []VolumeItem{
		vitem("ITM-1", "Copper Cable", "D", "Acme", []string{"electrical"}, 50, 44),
		vitem("ITM-2", "Steel Bracket", "D > Sub1", "Bolt Co", []string{"structural"}, 20, 22),
		vitem("ITM-3", "Free Sample", "E", "Acme", []string{"electrical"}, 0, 44),
		vitem("ITM-4", "Gasket", "E", "Seal Ltd", []string{"mechanical"}, 5, 5),
	}
}

func TestBuildVolumeView_NoFilter(t *testing.T) {
	view, err := BuildVolumeView(testVolumeItems(), MetricQuotedRate, VolumeFilter{}, SortSpec{}, Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Total != 4 {
		t.Errorf("Total = %d, want 4", view.Total)
	}
	if view.CheaperCount != 1 || view.CostlierCount != 1 || view.FlatCount != 1 || view.NoBaseCount != 1 {
		t.Errorf("counts = cheaper %d costlier %d flat %d nobase %d, want 1/1/1/1",
			view.CheaperCount, view.CostlierCount, view.FlatCount, view.NoBaseCount)
	}
	if view.Page != 1 || view.PageSize != DefaultPageSize || view.TotalPages != 1 {
		t.Errorf("pagination = %d/%d/%d", view.Page, view.PageSize, view.TotalPages)
	}
}

func TestBuildVolumeView_Search(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"by item code", "itm-2", []string{"ITM-2"}},
		{"by name substring", "cable", []string{"ITM-1"}},
		{"no match", "titanium", nil},
		{"whitespace ignored", "  cable  ", []string{"ITM-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := BuildVolumeView(testVolumeItems(), MetricQuotedRate,
				VolumeFilter{Search: tt.search}, SortSpec{}, Page{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got []string
			for _, row := range view.Rows {
				got = append(got, row.ItemCode)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("search %q = %v, want %v", tt.search, got, tt.want)
			}
		})
	}
}

func TestBuildVolumeView_VendorAndTagFilters(t *testing.T) {
	view, err := BuildVolumeView(testVolumeItems(), MetricQuotedRate,
		VolumeFilter{Vendors: []string{"Acme"}}, SortSpec{}, Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Total != 2 {
		t.Errorf("vendor filter Total = %d, want 2", view.Total)
	}

	view, err = BuildVolumeView(testVolumeItems(), MetricQuotedRate,
		VolumeFilter{Tags: []string{"structural", "mechanical"}}, SortSpec{}, Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Total != 2 {
		t.Errorf("tag filter Total = %d, want 2", view.Total)
	}
}

func TestBuildVolumeView_BOMPathPrefixFilter(t *testing.T) {
	// Filtering by "D" includes "D" and "D > Sub1" but not "E".
	view, err := BuildVolumeView(testVolumeItems(), MetricQuotedRate,
		VolumeFilter{BOMPaths: []string{"D"}}, SortSpec{}, Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, row := range view.Rows {
		got = append(got, row.BOMPath)
	}
	want := []string{"D", "D > Sub1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestBuildVolumeView_SortByChangePercent(t *testing.T) {
	view, err := BuildVolumeView(testVolumeItems(), MetricQuotedRate,
		VolumeFilter{}, SortSpec{Column: "change_percent"}, Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, row := range view.Rows {
		got = append(got, row.ItemCode)
	}
	// Ascending: -12% (ITM-1), 0% (ITM-4), +10% (ITM-2), not computable last (ITM-3).
	want := []string{"ITM-1", "ITM-4", "ITM-2", "ITM-3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ascending order = %v, want %v", got, want)
	}

	view, err = BuildVolumeView(testVolumeItems(), MetricQuotedRate,
		VolumeFilter{}, SortSpec{Column: "change_percent", Descending: true}, Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got = nil
	for _, row := range view.Rows {
		got = append(got, row.ItemCode)
	}
	// Descending still keeps non-computable rows last.
	want = []string{"ITM-2", "ITM-4", "ITM-1", "ITM-3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("descending order = %v, want %v", got, want)
	}
}

func TestBuildVolumeView_UnknownSortColumn(t *testing.T) {
	_, err := BuildVolumeView(testVolumeItems(), MetricQuotedRate,
		VolumeFilter{}, SortSpec{Column: "sparkline"}, Page{})
	if err == nil {
		t.Fatal("expected error for unknown sort column")
	}
}

func TestBuildVolumeView_Pagination(t *testing.T) {
	items := testVolumeItems()

	view, err := BuildVolumeView(items, MetricQuotedRate, VolumeFilter{}, SortSpec{}, Page{Number: 1, Size: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Rows) != 3 || view.TotalPages != 2 || view.Page != 1 {
		t.Errorf("page 1: rows %d, pages %d, page %d", len(view.Rows), view.TotalPages, view.Page)
	}

	view, _ = BuildVolumeView(items, MetricQuotedRate, VolumeFilter{}, SortSpec{}, Page{Number: 2, Size: 3})
	if len(view.Rows) != 1 || view.Page != 2 {
		t.Errorf("page 2: rows %d, page %d", len(view.Rows), view.Page)
	}

	// Out-of-range page clamps to the last page.
	view, _ = BuildVolumeView(items, MetricQuotedRate, VolumeFilter{}, SortSpec{}, Page{Number: 99, Size: 3})
	if view.Page != 2 || len(view.Rows) != 1 {
		t.Errorf("clamped page: rows %d, page %d, want page 2 with 1 row", len(view.Rows), view.Page)
	}

	// Summary counts cover the whole filtered set, not just the page.
	view, _ = BuildVolumeView(items, MetricQuotedRate, VolumeFilter{}, SortSpec{}, Page{Number: 1, Size: 2})
	if view.Total != 4 || view.CheaperCount != 1 {
		t.Errorf("counts must be pre-pagination: total %d cheaper %d", view.Total, view.CheaperCount)
	}
}

func TestBuildVolumeView_EmptyInput(t *testing.T) {
	view, err := BuildVolumeView(nil, MetricQuotedRate, VolumeFilter{}, SortSpec{}, Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Total != 0 || len(view.Rows) != 0 || view.TotalPages != 0 || view.Page != 1 {
		t.Errorf("empty view = %+v", view)
	}
}

func TestBuildVolumeView_EmptySetResetsPage(t *testing.T) {
	items := testVolumeItems()

	// A filter that matches nothing combined with a high page number
	// must still land on page 1.
	view, err := BuildVolumeView(items, MetricQuotedRate, VolumeFilter{Search: "no-such-item"}, SortSpec{}, Page{Number: 7, Size: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Total != 0 || view.TotalPages != 0 {
		t.Errorf("total = %d pages = %d, want 0/0", view.Total, view.TotalPages)
	}
	if view.Page != 1 {
		t.Errorf("page = %d, want 1 when the filtered set is empty", view.Page)
	}
}

func TestBuildVolumeView_Idempotent(t *testing.T) {
	items := testVolumeItems()
	filter := VolumeFilter{Vendors: []string{"Acme", "Seal Ltd"}}
	spec := SortSpec{Column: "change_percent", Descending: true}
	page := Page{Number: 1, Size: 10}

	first, err := BuildVolumeView(items, MetricQuotedRate, filter, spec, page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := BuildVolumeView(items, MetricQuotedRate, filter, spec, page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must yield identical output, including tie order")
	}
}
