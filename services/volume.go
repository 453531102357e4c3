// Package services provides the quote analytics calculations: volume
// scenario detection, item correlation across BOM instances, metric
// projection and the filter/sort/page pipeline behind the dashboard tabs.
package services

import (
	"sort"
	"strings"
)

// PathDelimiter separates levels in a hierarchical BOM path,
// e.g. "BOM-A > Sub1 > Sub1.1".
const PathDelimiter = " > "

// LineItem is one row of pre-aggregated quote data: one item inside one
// BOM instance. All monetary figures arrive already computed upstream.
type LineItem struct {
	ItemCode              string
	ItemName              string
	BOMCode               string
	BOMPath               string
	BOMInstanceID         string
	BOMInstanceQty        float64
	Qty                   float64
	VendorRate            float64
	BaseRate              float64
	QuotedRate            float64
	AdditionalCostPerUnit float64
	TotalAmount           float64
	VendorName            string
	Tags                  []string
}

// VolumeInstance holds one item's figures inside one BOM instance.
type VolumeInstance struct {
	BOMInstanceID         string  `json:"bom_instance_id"`
	BOMInstanceQty        float64 `json:"bom_instance_qty"`
	Qty                   float64 `json:"qty"`
	VendorRate            float64 `json:"vendor_rate"`
	BaseRate              float64 `json:"base_rate"`
	QuotedRate            float64 `json:"quoted_rate"`
	AdditionalCostPerUnit float64 `json:"additional_cost_per_unit"`
	TotalAmount           float64 `json:"total_amount"`
}

// VolumeItem is one logical item correlated across the instances of a
// volume-scenario BOM. Instances are sorted ascending by BOM instance
// quantity; ties keep input order.
type VolumeItem struct {
	ItemCode   string           `json:"item_code"`
	ItemName   string           `json:"item_name"`
	BOMCode    string           `json:"bom_code"`
	BOMPath    string           `json:"bom_path"`
	VendorName string           `json:"vendor_name"`
	Tags       []string         `json:"tags"`
	Instances  []VolumeInstance `json:"instances"`
}

// VolumeScenarios returns the set of BOM codes that appear with at least
// two distinct BOM instance quantities. Repeated insertions at the same
// quantity do not qualify: the signal is a change in quantity, not a
// change in instance id. Rows with an empty BOM code are skipped.
func VolumeScenarios(items []LineItem) map[string]bool {
	qtys := make(map[string]map[float64]bool)
	for _, it := range items {
		if it.BOMCode == "" {
			continue
		}
		if qtys[it.BOMCode] == nil {
			qtys[it.BOMCode] = make(map[float64]bool)
		}
		qtys[it.BOMCode][it.BOMInstanceQty] = true
	}

	scenarios := make(map[string]bool)
	for code, set := range qtys {
		if len(set) >= 2 {
			scenarios[code] = true
		}
	}
	return scenarios
}

// BuildVolumeItems correlates line items across BOM instances and returns
// one VolumeItem per (item code, BOM path) pair that occurs in at least
// two distinct instances of a volume-scenario BOM. Items seen in only one
// instance are dropped: there is nothing to compare. Rows missing an item
// code, BOM code or BOM path are excluded up front.
//
// The result is deterministic: items ordered by BOM path then item code,
// instances ordered ascending by BOM instance quantity with ties keeping
// input order.
func BuildVolumeItems(items []LineItem) []VolumeItem {
	scenarios := VolumeScenarios(items)
	if len(scenarios) == 0 {
		return nil
	}

	type groupKey struct {
		itemCode string
		bomPath  string
	}

	groups := make(map[groupKey]*VolumeItem)
	var order []groupKey

	for _, it := range items {
		if it.ItemCode == "" || it.BOMCode == "" || it.BOMPath == "" {
			continue
		}
		if !scenarios[it.BOMCode] {
			continue
		}

		key := groupKey{itemCode: it.ItemCode, bomPath: it.BOMPath}
		grp, ok := groups[key]
		if !ok {
			grp = &VolumeItem{
				ItemCode:   it.ItemCode,
				ItemName:   it.ItemName,
				BOMCode:    it.BOMCode,
				BOMPath:    it.BOMPath,
				VendorName: it.VendorName,
				Tags:       it.Tags,
			}
			groups[key] = grp
			order = append(order, key)
		}

		grp.Instances = append(grp.Instances, VolumeInstance{
			BOMInstanceID:         it.BOMInstanceID,
			BOMInstanceQty:        it.BOMInstanceQty,
			Qty:                   it.Qty,
			VendorRate:            it.VendorRate,
			BaseRate:              it.BaseRate,
			QuotedRate:            it.QuotedRate,
			AdditionalCostPerUnit: it.AdditionalCostPerUnit,
			TotalAmount:           it.TotalAmount,
		})
	}

	var result []VolumeItem
	for _, key := range order {
		grp := groups[key]

		distinct := make(map[string]bool)
		for _, inst := range grp.Instances {
			distinct[inst.BOMInstanceID] = true
		}
		if len(distinct) < 2 {
			continue
		}

		sort.SliceStable(grp.Instances, func(i, j int) bool {
			return grp.Instances[i].BOMInstanceQty < grp.Instances[j].BOMInstanceQty
		})
		result = append(result, *grp)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].BOMPath != result[j].BOMPath {
			return result[i].BOMPath < result[j].BOMPath
		}
		return result[i].ItemCode < result[j].ItemCode
	})
	return result
}

// MatchesBOMPath reports whether path falls under the filter value v:
// either an exact match or a descendant (v followed by the hierarchy
// delimiter). Filtering by a parent BOM therefore includes its children.
func MatchesBOMPath(path, v string) bool {
	if path == v {
		return true
	}
	return strings.HasPrefix(path, v+PathDelimiter)
}
