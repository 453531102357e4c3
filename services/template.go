package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateImportTemplate creates a downloadable .xlsx template with the
// expected line item columns. Required columns are marked with " *" and
// a blue header; optional columns get a gray header.
func GenerateImportTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Line Items"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheetName)

	requiredHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})

	optionalHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#6B7280"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})

	columns := columnLetters(len(importColumns))
	for i, col := range importColumns {
		cell := fmt.Sprintf("%s1", columns[i])

		headerText := col.label
		if col.required {
			headerText += " *"
		}
		f.SetCellValue(sheetName, cell, headerText)

		if col.required {
			f.SetCellStyle(sheetName, cell, cell, requiredHeaderStyle)
		} else {
			f.SetCellStyle(sheetName, cell, cell, optionalHeaderStyle)
		}

		width := float64(len(col.label)) * 1.3
		if width < 14 {
			width = 14
		}
		f.SetColWidth(sheetName, columns[i], columns[i], width)
	}

	// Example row so the expected formats are obvious
	example := []string{
		"ITM-1001", "Hex Bolt M8", "CTRL-PANEL", "CTRL-PANEL", "cp-100",
		"100", "4", "12.50", "11.00", "12.00", "0.25", "5000", "Acme Fasteners", "hardware, fastener",
	}
	for i, v := range example {
		if i >= len(columns) {
			break
		}
		f.SetCellValue(sheetName, fmt.Sprintf("%s2", columns[i]), v)
	}

	// Freeze header row
	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel template: %w", err)
	}
	return buf.Bytes(), nil
}

// columnLetters returns Excel column letters for n columns: A, B, ... Z, AA, AB ...
func columnLetters(n int) []string {
	cols := make([]string, n)
	for i := 0; i < n; i++ {
		name, _ := excelize.ColumnNumberToName(i + 1)
		cols[i] = name
	}
	return cols
}
