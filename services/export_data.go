package services

import "strconv"

// VolumeExportRow represents a single item row in the volume analysis
// export: first/last instance figures for the selected metric and the
// change between them.
type VolumeExportRow struct {
	Index         string
	ItemCode      string
	ItemName      string
	BOMPath       string
	Vendor        string
	InstanceCount int
	FirstQty      float64
	LastQty       float64
	FirstValue    float64
	LastValue     float64
	Change        float64
	ChangePercent *float64
}

// VolumeExportData holds all data needed for the volume analysis export.
type VolumeExportData struct {
	Title         string
	Reference     string
	Currency      string
	MetricLabel   string
	GeneratedDate string
	Rows          []VolumeExportRow
	TotalItems    int
	CheaperCount  int
	CostlierCount int
	FlatCount     int
	NoBaseCount   int
}

// BuildVolumeExportData flattens correlated items into export rows under
// the selected metric. Items are expected in pipeline order (already
// deterministic); row indices are 1-based.
func BuildVolumeExportData(title, reference, currency, generatedDate string, metric Metric, items []VolumeItem) VolumeExportData {
	data := VolumeExportData{
		Title:         title,
		Reference:     reference,
		Currency:      currency,
		MetricLabel:   metric.Label(),
		GeneratedDate: generatedDate,
		TotalItems:    len(items),
	}

	for i, item := range items {
		proj := ProjectChange(item, metric)

		row := VolumeExportRow{
			Index:         strconv.Itoa(i + 1),
			ItemCode:      item.ItemCode,
			ItemName:      item.ItemName,
			BOMPath:       item.BOMPath,
			Vendor:        item.VendorName,
			InstanceCount: len(item.Instances),
			Change:        proj.Change,
		}
		if len(item.Instances) > 0 {
			row.FirstQty = item.Instances[0].BOMInstanceQty
			row.LastQty = item.Instances[len(item.Instances)-1].BOMInstanceQty
			row.FirstValue = proj.Values[0]
			row.LastValue = proj.Values[len(proj.Values)-1]
		}
		if proj.Computable {
			pct := proj.ChangePercent
			row.ChangePercent = &pct
			switch {
			case pct < 0:
				data.CheaperCount++
			case pct > 0:
				data.CostlierCount++
			default:
				data.FlatCount++
			}
		} else {
			data.NoBaseCount++
		}

		data.Rows = append(data.Rows, row)
	}

	return data
}
