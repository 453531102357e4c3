package services

import (
	"reflect"
	"testing"
)

func itemsTestSet() []LineItem {
	mk := func(itemCode, itemName, bomPath, vendor string, tags []string, qty, rate, total float64) LineItem {
		return LineItem{
			ItemCode:    itemCode,
			ItemName:    itemName,
			BOMCode:     rootPath(bomPath),
			BOMPath:     bomPath,
			VendorName:  vendor,
			Tags:        tags,
			Qty:         qty,
			QuotedRate:  rate,
			TotalAmount: total,
		}
	}

	return []LineItem{
		mk("ITM-1", "Copper Cable", "D", "Acme", []string{"electrical"}, 10, 50, 500),
		mk("ITM-2", "Steel Bracket", "D > Sub1", "Bolt Co", []string{"structural"}, 5, 20, 100),
		mk("ITM-3", "Gasket", "E", "Seal Ltd", []string{"mechanical"}, 100, 2, 200),
	}
}

func TestBuildItemView_FilterAndTotals(t *testing.T) {
	view, err := BuildItemView(itemsTestSet(), ItemFilter{}, SortSpec{}, Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Total != 3 || view.TotalAmount != 800 {
		t.Errorf("totals = %d / %v, want 3 / 800", view.Total, view.TotalAmount)
	}

	view, err = BuildItemView(itemsTestSet(), ItemFilter{Vendors: []string{"Acme"}}, SortSpec{}, Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Total != 1 || view.TotalAmount != 500 {
		t.Errorf("vendor-filtered totals = %d / %v, want 1 / 500", view.Total, view.TotalAmount)
	}

	view, err = BuildItemView(itemsTestSet(), ItemFilter{BOMPaths: []string{"D"}}, SortSpec{}, Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Total != 2 {
		t.Errorf("path-filtered total = %d, want 2 (parent includes descendants)", view.Total)
	}
}

func TestBuildItemView_Sort(t *testing.T) {
	view, err := BuildItemView(itemsTestSet(), ItemFilter{}, SortSpec{Column: "total_amount", Descending: true}, Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, row := range view.Rows {
		got = append(got, row.ItemCode)
	}
	want := []string{"ITM-1", "ITM-3", "ITM-2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestBuildItemView_UnknownSortColumn(t *testing.T) {
	if _, err := BuildItemView(itemsTestSet(), ItemFilter{}, SortSpec{Column: "hsn"}, Page{}); err == nil {
		t.Fatal("expected error for unknown sort column")
	}
}

func TestBuildItemView_Pagination(t *testing.T) {
	view, err := BuildItemView(itemsTestSet(), ItemFilter{}, SortSpec{}, Page{Number: 2, Size: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Page != 2 || len(view.Rows) != 1 || view.TotalPages != 2 {
		t.Errorf("page 2 = %d rows, page %d of %d", len(view.Rows), view.Page, view.TotalPages)
	}
	// Totals stay global.
	if view.Total != 3 || view.TotalAmount != 800 {
		t.Errorf("paged totals = %d / %v, want 3 / 800", view.Total, view.TotalAmount)
	}
}

func TestBuildItemView_EmptySetResetsPage(t *testing.T) {
	view, err := BuildItemView(itemsTestSet(), ItemFilter{Search: "no-such-item"}, SortSpec{}, Page{Number: 7, Size: 2})
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
