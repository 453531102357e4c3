package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateVolumeExcel creates an Excel file from the given volume
// analysis export data and returns the file contents as a byte slice.
func GenerateVolumeExcel(data VolumeExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars).
	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Volume Analysis"
	}

	// Rename default sheet.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through K).
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"}
	lastCol := columns[len(columns)-1] // "K"

	// Set column widths.
	widths := []float64{6, 14, 32, 30, 18, 10, 10, 10, 16, 16, 12}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if data.Reference != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge ref: %w", err)
		}
		f.SetCellValue(sheetName, "A2", "Ref: "+data.Reference)
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge metric: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Metric: "+data.MetricLabel)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: Column Headers ───────────────────────────────────────────

	headers := []string{
		"#", "Item Code", "Item Name", "BOM Path", "Vendor", "Instances",
		"Low Qty", "High Qty", "Rate @ Low", "Rate @ High", "Change %",
	}
	for i, h := range headers {
		cell := fmt.Sprintf("%s5", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// ── Data Rows (starting row 6) ──────────────────────────────────────

	row := 6
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, r.Index)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.ItemCode))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.ItemName))
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.BOMPath))
		f.SetCellValue(sheetName, "E"+rowStr, sanitizeExcelCell(r.Vendor))
		f.SetCellValue(sheetName, "F"+rowStr, r.InstanceCount)
		f.SetCellValue(sheetName, "G"+rowStr, r.FirstQty)
		f.SetCellValue(sheetName, "H"+rowStr, r.LastQty)
		f.SetCellValue(sheetName, "I"+rowStr, FormatMoney(data.Currency, r.FirstValue))
		f.SetCellValue(sheetName, "J"+rowStr, FormatMoney(data.Currency, r.LastValue))
		f.SetCellValue(sheetName, "K"+rowStr, FormatPercent(r.ChangePercent))

		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, bodyStyle)
		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	row++

	summaries := []struct {
		label string
		value int
	}{
		{"Items compared:", data.TotalItems},
		{"Cheaper at scale:", data.CheaperCount},
		{"More expensive:", data.CostlierCount},
		{"Unchanged:", data.FlatCount},
		{"Not computable:", data.NoBaseCount},
	}
	for _, s := range summaries {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "D"+rowStr, s.label)
		f.SetCellStyle(sheetName, "D"+rowStr, "D"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "E"+rowStr, s.value)
		f.SetCellStyle(sheetName, "E"+rowStr, "E"+rowStr, summaryValueStyle)
		row++
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
