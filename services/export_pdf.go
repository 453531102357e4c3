package services

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateVolumePDF creates a PDF document from volume analysis export
// data using maroto/v2. It returns the raw PDF bytes or an error.
func GenerateVolumePDF(data VolumeExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addVolumeHeader(m, data)
	addVolumeTableHeader(m)
	for _, r := range data.Rows {
		addVolumeTableRow(m, data.Currency, r)
	}
	addVolumeSummary(m, data)
	addVolumeFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addVolumeHeader adds the title, reference and selected metric to the PDF.
func addVolumeHeader(m core.Maroto, data VolumeExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Reference: %s", data.Reference), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Metric: %s", data.MetricLabel), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addVolumeTableHeader adds the column header row for the comparison table.
func addVolumeTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Item", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(3).Add(
				text.New("BOM Path", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Low Qty", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("High Qty", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Rate @ Low", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Rate @ High", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Change", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Change %", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addVolumeTableRow adds a single item comparison row. Items that got
// cheaper at scale are tinted green, costlier ones red.
func addVolumeTableRow(m core.Maroto, currency string, r VolumeExportRow) {
	var cellStyle *props.Cell
	if r.ChangePercent != nil {
		switch {
		case *r.ChangePercent < 0:
			bg := &props.Color{Red: 235, Green: 247, Blue: 237}
			cellStyle = &props.Cell{BackgroundColor: bg}
		case *r.ChangePercent > 0:
			bg := &props.Color{Red: 250, Green: 237, Blue: 237}
			cellStyle = &props.Cell{BackgroundColor: bg}
		}
	}

	baseText := props.Text{
		Size:  7,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	item := r.ItemCode
	if r.ItemName != "" {
		item = r.ItemCode + " " + r.ItemName
	}

	colIndex := col.New(1).Add(text.New(r.Index, baseText))
	colItem := col.New(2).Add(text.New(item, leftText))
	colPath := col.New(3).Add(text.New(r.BOMPath, leftText))
	colLowQty := col.New(1).Add(text.New(formatQty(r.FirstQty), rightText))
	colHighQty := col.New(1).Add(text.New(formatQty(r.LastQty), rightText))
	colLow := col.New(1).Add(text.New(FormatMoney(currency, r.FirstValue), rightText))
	colHigh := col.New(1).Add(text.New(FormatMoney(currency, r.LastValue), rightText))
	colChange := col.New(1).Add(text.New(FormatMoney(currency, r.Change), rightText))
	colPct := col.New(1).Add(text.New(FormatPercent(r.ChangePercent), rightText))

	if cellStyle != nil {
		colIndex = colIndex.WithStyle(cellStyle)
		colItem = colItem.WithStyle(cellStyle)
		colPath = colPath.WithStyle(cellStyle)
		colLowQty = colLowQty.WithStyle(cellStyle)
		colHighQty = colHighQty.WithStyle(cellStyle)
		colLow = colLow.WithStyle(cellStyle)
		colHigh = colHigh.WithStyle(cellStyle)
		colChange = colChange.WithStyle(cellStyle)
		colPct = colPct.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colIndex,
			colItem,
			colPath,
			colLowQty,
			colHighQty,
			colLow,
			colHigh,
			colChange,
			colPct,
		),
	)
}

// addVolumeSummary adds the scenario counts at the bottom of the PDF.
func addVolumeSummary(m core.Maroto, data VolumeExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	summaries := []struct {
		label string
		value int
	}{
		{"Items compared", data.TotalItems},
		{"Cheaper at scale", data.CheaperCount},
		{"More expensive at scale", data.CostlierCount},
		{"Unchanged", data.FlatCount},
		{"Not computable", data.NoBaseCount},
	}

	for _, s := range summaries {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(s.label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(fmt.Sprintf("%d", s.value), valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}
}

// addVolumeFooter adds the generated-date line at the bottom.
func addVolumeFooter(m core.Maroto, data VolumeExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.GeneratedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}

// formatQty returns a string representation of the quantity value.
// Whole numbers are formatted without decimals; fractional values get 2 decimal places.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
