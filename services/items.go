package services

import (
	"fmt"
	"sort"
	"strings"
)

// ItemFilter narrows the flat line item list on the Items tab.
type ItemFilter struct {
	Search   string
	Vendors  []string
	Tags     []string
	BOMPaths []string
}

// ItemRow is the JSON shape of one line item on the Items tab.
type ItemRow struct {
	ItemCode              string   `json:"item_code"`
	ItemName              string   `json:"item_name"`
	BOMCode               string   `json:"bom_code"`
	BOMPath               string   `json:"bom_path"`
	BOMInstanceID         string   `json:"bom_instance_id"`
	BOMInstanceQty        float64  `json:"bom_instance_qty"`
	Qty                   float64  `json:"qty"`
	VendorRate            float64  `json:"vendor_rate"`
	BaseRate              float64  `json:"base_rate"`
	QuotedRate            float64  `json:"quoted_rate"`
	AdditionalCostPerUnit float64  `json:"additional_cost_per_unit"`
	TotalAmount           float64  `json:"total_amount"`
	VendorName            string   `json:"vendor_name"`
	Tags                  []string `json:"tags"`
}

// ItemView is the Items tab result: the current page plus totals over the
// whole filtered set.
type ItemView struct {
	Rows        []ItemRow `json:"rows"`
	Total       int       `json:"total"`
	TotalAmount float64   `json:"total_amount"`
	Page        int       `json:"page"`
	PageSize    int       `json:"page_size"`
	TotalPages  int       `json:"total_pages"`
}

var itemSortColumns = map[string]bool{
	"item_code":    true,
	"item_name":    true,
	"bom_path":     true,
	"vendor":       true,
	"qty":          true,
	"quoted_rate":  true,
	"total_amount": true,
}

// BuildItemView filters, sorts and paginates the flat line item list.
// Same contract as BuildVolumeView: total, stateless, deterministic.
func BuildItemView(items []LineItem, filter ItemFilter, sortSpec SortSpec, page Page) (ItemView, error) {
	if sortSpec.Column != "" && !itemSortColumns[sortSpec.Column] {
		return ItemView{}, fmt.Errorf("unknown sort column %q", sortSpec.Column)
	}

	var rows []ItemRow
	var totalAmount float64
	for _, it := range items {
		if !matchesItemFilter(it, filter) {
			continue
		}
		rows = append(rows, ItemRow{
			ItemCode:              it.ItemCode,
			ItemName:              it.ItemName,
			BOMCode:               it.BOMCode,
			BOMPath:               it.BOMPath,
			BOMInstanceID:         it.BOMInstanceID,
			BOMInstanceQty:        it.BOMInstanceQty,
			Qty:                   it.Qty,
			VendorRate:            it.VendorRate,
			BaseRate:              it.BaseRate,
			QuotedRate:            it.QuotedRate,
			AdditionalCostPerUnit: it.AdditionalCostPerUnit,
			TotalAmount:           it.TotalAmount,
			VendorName:            it.VendorName,
			Tags:                  it.Tags,
		})
		totalAmount += it.TotalAmount
	}

	sortItemRows(rows, sortSpec)

	view := ItemView{
		Total:       len(rows),
		TotalAmount: totalAmount,
	}

	size := page.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	view.PageSize = size
	view.TotalPages = (len(rows) + size - 1) / size

	number := page.Number
	if number < 1 {
		number = 1
	}
	if view.TotalPages == 0 {
		number = 1
	} else if number > view.TotalPages {
		number = view.TotalPages
	}
	view.Page = number

	start := (number - 1) * size
	if start > len(rows) {
		start = len(rows)
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	view.Rows = rows[start:end]
	return view, nil
}

func matchesItemFilter(it LineItem, filter ItemFilter) bool {
	if s := strings.TrimSpace(filter.Search); s != "" {
		needle := strings.ToLower(s)
		if !strings.Contains(strings.ToLower(it.ItemCode), needle) &&
			!strings.Contains(strings.ToLower(it.ItemName), needle) {
			return false
		}
	}

	if len(filter.Vendors) > 0 && !containsString(filter.Vendors, it.VendorName) {
		return false
	}

	if len(filter.Tags) > 0 {
		matched := false
		for _, tag := range it.Tags {
			if containsString(filter.Tags, tag) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(filter.BOMPaths) > 0 {
		matched := false
		for _, v := range filter.BOMPaths {
			if MatchesBOMPath(it.BOMPath, v) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

func sortItemRows(rows []ItemRow, spec SortSpec) {
	if spec.Column == "" {
		return
	}

	less := func(i, j int) bool { return false }
	switch spec.Column {
	case "item_code":
		less = func(i, j int) bool { return rows[i].ItemCode < rows[j].ItemCode }
	case "item_name":
		less = func(i, j int) bool { return rows[i].ItemName < rows[j].ItemName }
	case "bom_path":
		less = func(i, j int) bool { return rows[i].BOMPath < rows[j].BOMPath }
	case "vendor":
		less = func(i, j int) bool { return rows[i].VendorName < rows[j].VendorName }
	case "qty":
		less = func(i, j int) bool { return rows[i].Qty < rows[j].Qty }
	case "quoted_rate":
		less = func(i, j int) bool { return rows[i].QuotedRate < rows[j].QuotedRate }
	case "total_amount":
		less = func(i, j int) bool { return rows[i].TotalAmount < rows[j].TotalAmount }
	}

	if spec.Descending {
		orig := less
		less = func(i, j int) bool { return orig(j, i) }
	}
	sort.SliceStable(rows, less)
}
