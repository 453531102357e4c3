package services

import (
	"fmt"
	"sort"
	"strings"
)

// VolumeFilter narrows the correlated item set. Empty fields mean "no
// restriction". Allow-lists match any of their values; tag filtering
// matches on any overlap between the filter list and an item's tags.
type VolumeFilter struct {
	Search   string
	Vendors  []string
	Tags     []string
	BOMPaths []string
}

// SortSpec names the column to order by and the direction.
type SortSpec struct {
	Column     string
	Descending bool
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// Valid sort columns for the volume view.
var volumeSortColumns = map[string]bool{
	"item_code":      true,
	"item_name":      true,
	"bom_path":       true,
	"vendor":         true,
	"first_value":    true,
	"last_value":     true,
	"change_percent": true,
}

// VolumeRow is one VolumeItem with its metric projection attached.
type VolumeRow struct {
	VolumeItem
	Values        []float64 `json:"values"`
	Change        float64   `json:"change"`
	ChangePercent *float64  `json:"change_percent"`
}

// VolumeView is the final result behind the volume analysis tab: the
// current page of rows plus summary counts computed over the whole
// filtered set.
type VolumeView struct {
	Rows          []VolumeRow `json:"rows"`
	Total         int         `json:"total"`
	CheaperCount  int         `json:"cheaper_count"`
	CostlierCount int         `json:"costlier_count"`
	FlatCount     int         `json:"flat_count"`
	NoBaseCount   int         `json:"no_base_count"`
	Page          int         `json:"page"`
	PageSize      int         `json:"page_size"`
	TotalPages    int         `json:"total_pages"`
}

// BuildVolumeView filters, sorts and paginates the correlated items under
// the selected metric. It is a total function of its inputs: any input
// yields a valid (possibly empty) view and identical inputs yield
// identical output, including the ordering of ties.
func BuildVolumeView(items []VolumeItem, metric Metric, filter VolumeFilter, sortSpec SortSpec, page Page) (VolumeView, error) {
	if sortSpec.Column != "" && !volumeSortColumns[sortSpec.Column] {
		return VolumeView{}, fmt.Errorf("unknown sort column %q", sortSpec.Column)
	}

	var rows []VolumeRow
	for _, item := range items {
		if !matchesVolumeFilter(item, filter) {
			continue
		}
		proj := ProjectChange(item, metric)
		row := VolumeRow{
			VolumeItem: item,
			Values:     proj.Values,
			Change:     proj.Change,
		}
		if proj.Computable {
			pct := proj.ChangePercent
			row.ChangePercent = &pct
		}
		rows = append(rows, row)
	}

	view := VolumeView{Total: len(rows)}
	for _, row := range rows {
		switch {
		case row.ChangePercent == nil:
			view.NoBaseCount++
		case *row.ChangePercent < 0:
			view.CheaperCount++
		case *row.ChangePercent > 0:
			view.CostlierCount++
		default:
			view.FlatCount++
		}
	}

	sortVolumeRows(rows, sortSpec)

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

func matchesVolumeFilter(item VolumeItem, filter VolumeFilter) bool {
	if s := strings.TrimSpace(filter.Search); s != "" {
		needle := strings.ToLower(s)
		if !strings.Contains(strings.ToLower(item.ItemCode), needle) &&
			!strings.Contains(strings.ToLower(item.ItemName), needle) {
			return false
		}
	}

	if len(filter.Vendors) > 0 && !containsString(filter.Vendors, item.VendorName) {
		return false
	}

	if len(filter.Tags) > 0 {
		matched := false
		for _, tag := range item.Tags {
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
			if MatchesBOMPath(item.BOMPath, v) {
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

// sortVolumeRows orders rows by the requested column. The sort is stable
// so ties keep their prior relative order and pagination stays
// deterministic across identical requests. Rows without a computable
// change sort after all computable ones regardless of direction.
func sortVolumeRows(rows []VolumeRow, spec SortSpec) {
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
	case "first_value":
		less = func(i, j int) bool { return firstValue(rows[i]) < firstValue(rows[j]) }
	case "last_value":
		less = func(i, j int) bool { return lastValue(rows[i]) < lastValue(rows[j]) }
	case "change_percent":
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i].ChangePercent, rows[j].ChangePercent
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			if spec.Descending {
				return *a > *b
			}
			return *a < *b
		})
		return
	}

	if spec.Descending {
		orig := less
		less = func(i, j int) bool { return orig(j, i) }
	}
	sort.SliceStable(rows, less)
}

func firstValue(row VolumeRow) float64 {
	if len(row.Values) == 0 {
		return 0
	}
	return row.Values[0]
}

func lastValue(row VolumeRow) float64 {
	if len(row.Values) == 0 {
		return 0
	}
	return row.Values[len(row.Values)-1]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
