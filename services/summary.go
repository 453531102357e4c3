package services

import (
	"sort"
	"strings"
)

// QuoteAggregates carries the precomputed summary figures delivered by
// the upstream analytics API. They are passed through for display and
// never recomputed here.
type QuoteAggregates struct {
	Currency             string  `json:"currency"`
	TotalValue           float64 `json:"total_value"`
	BaseAmount           float64 `json:"base_amount"`
	GrandTotal           float64 `json:"grand_total"`
	AdditionalCostsTotal float64 `json:"additional_costs_total"`
}

// QuoteSummary backs the Summary tab: pass-through aggregates plus counts
// derived from the line item set.
type QuoteSummary struct {
	QuoteAggregates
	CurrencySymbol string `json:"currency_symbol"`
	ItemCount      int    `json:"item_count"`
	VendorCount    int    `json:"vendor_count"`
	BOMCount       int    `json:"bom_count"`
	InstanceCount  int    `json:"instance_count"`
	ScenarioCount  int    `json:"scenario_count"`
	HasScenarios   bool   `json:"has_scenarios"`
}

// SummarizeQuote derives the Summary tab counts from the line items and
// attaches the pass-through aggregates.
func SummarizeQuote(agg QuoteAggregates, items []LineItem) QuoteSummary {
	vendors := make(map[string]bool)
	boms := make(map[string]bool)
	instances := make(map[string]bool)
	for _, it := range items {
		if it.VendorName != "" {
			vendors[it.VendorName] = true
		}
		if it.BOMCode != "" {
			boms[it.BOMCode] = true
			instances[it.BOMCode+"\x00"+it.BOMInstanceID] = true
		}
	}

	scenarios := VolumeScenarios(items)

	return QuoteSummary{
		QuoteAggregates: agg,
		CurrencySymbol:  CurrencySymbol(agg.Currency),
		ItemCount:       len(items),
		VendorCount:     len(vendors),
		BOMCount:        len(boms),
		InstanceCount:   len(instances),
		ScenarioCount:   len(scenarios),
		HasScenarios:    len(scenarios) > 0,
	}
}

// BOMInstanceSummary is one BOM insertion with its item count and amount
// subtotal.
type BOMInstanceSummary struct {
	BOMInstanceID  string  `json:"bom_instance_id"`
	BOMInstanceQty float64 `json:"bom_instance_qty"`
	ItemCount      int     `json:"item_count"`
	Subtotal       float64 `json:"subtotal"`
}

// BOMGroup backs one row of the BOM tab: a BOM code with its instances,
// ordered ascending by instance quantity, flagged when it qualifies as a
// volume scenario.
type BOMGroup struct {
	BOMCode          string               `json:"bom_code"`
	BOMPath          string               `json:"bom_path"`
	IsVolumeScenario bool                 `json:"is_volume_scenario"`
	Instances        []BOMInstanceSummary `json:"instances"`
	Total            float64              `json:"total"`
}

// GroupByBOM folds line items into per-BOM, per-instance subtotals for
// the BOM tab. Rows with an empty BOM code are skipped. Groups are
// ordered by BOM code; instances ascending by quantity with ties keeping
// first-seen order.
func GroupByBOM(items []LineItem) []BOMGroup {
	type instKey struct {
		bomCode    string
		instanceID string
	}

	groups := make(map[string]*BOMGroup)
	instIdx := make(map[instKey]int)
	scenarios := VolumeScenarios(items)

	for _, it := range items {
		if it.BOMCode == "" {
			continue
		}

		grp, ok := groups[it.BOMCode]
		if !ok {
			grp = &BOMGroup{
				BOMCode:          it.BOMCode,
				BOMPath:          rootPath(it.BOMPath),
				IsVolumeScenario: scenarios[it.BOMCode],
			}
			groups[it.BOMCode] = grp
		}

		key := instKey{bomCode: it.BOMCode, instanceID: it.BOMInstanceID}
		idx, seen := instIdx[key]
		if !seen {
			grp.Instances = append(grp.Instances, BOMInstanceSummary{
				BOMInstanceID:  it.BOMInstanceID,
				BOMInstanceQty: it.BOMInstanceQty,
			})
			idx = len(grp.Instances) - 1
			instIdx[key] = idx
		}
		grp.Instances[idx].ItemCount++
		grp.Instances[idx].Subtotal += it.TotalAmount
		grp.Total += it.TotalAmount
	}

	result := make([]BOMGroup, 0, len(groups))
	for _, grp := range groups {
		sort.SliceStable(grp.Instances, func(i, j int) bool {
			return grp.Instances[i].BOMInstanceQty < grp.Instances[j].BOMInstanceQty
		})
		result = append(result, *grp)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].BOMCode < result[j].BOMCode
	})
	return result
}

// rootPath returns the first segment of a hierarchical BOM path.
func rootPath(path string) string {
	if i := strings.Index(path, PathDelimiter); i >= 0 {
		return path[:i]
	}
	return path
}

// VendorAggregate backs one row of the Overall tab's vendor breakdown.
type VendorAggregate struct {
	VendorName      string  `json:"vendor_name"`
	ItemCount       int     `json:"item_count"`
	TotalAmount     float64 `json:"total_amount"`
	AdditionalCosts float64 `json:"additional_costs"`
}

// AggregateVendors sums line item amounts per vendor for the Overall tab.
// Items without a vendor are gathered under an empty vendor name so their
// amounts still reconcile with the quote totals.
func AggregateVendors(items []LineItem) []VendorAggregate {
	groups := make(map[string]*VendorAggregate)
	for _, it := range items {
		grp, ok := groups[it.VendorName]
		if !ok {
			grp = &VendorAggregate{VendorName: it.VendorName}
			groups[it.VendorName] = grp
		}
		grp.ItemCount++
		grp.TotalAmount += it.TotalAmount
		grp.AdditionalCosts += it.AdditionalCostPerUnit * it.Qty
	}

	result := make([]VendorAggregate, 0, len(groups))
	for _, grp := range groups {
		result = append(result, *grp)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].TotalAmount != result[j].TotalAmount {
			return result[i].TotalAmount > result[j].TotalAmount
		}
		return result[i].VendorName < result[j].VendorName
	})
	return result
}
