package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult is returned after parsing and validating an uploaded
// line item file. ParsedItems holds the rows that passed validation.
type ImportResult struct {
	TotalRows   int               `json:"total_rows"`
	ValidRows   int               `json:"valid_rows"`
	ErrorRows   int               `json:"error_rows"`
	Errors      []ValidationError `json:"errors"`
	ParsedItems []LineItem        `json:"-"`
	FileName    string            `json:"-"`
}

// importColumn describes one expected column of the line item file.
type importColumn struct {
	key      string
	label    string
	required bool
	numeric  bool
}

// importColumns is the canonical line item file layout. Header matching
// is case-insensitive on the label.
var importColumns = []importColumn{
	{key: "item_code", label: "Item Code", required: true},
	{key: "item_name", label: "Item Name"},
	{key: "bom_code", label: "BOM Code", required: true},
	{key: "bom_path", label: "BOM Path", required: true},
	{key: "bom_instance_id", label: "BOM Instance ID", required: true},
	{key: "bom_instance_qty", label: "BOM Instance Qty", required: true, numeric: true},
	{key: "qty", label: "Qty", numeric: true},
	{key: "vendor_rate", label: "Vendor Rate", numeric: true},
	{key: "base_rate", label: "Base Rate", numeric: true},
	{key: "quoted_rate", label: "Quoted Rate", numeric: true},
	{key: "additional_cost_per_unit", label: "Additional Cost Per Unit", numeric: true},
	{key: "total_amount", label: "Total Amount", numeric: true},
	{key: "vendor_name", label: "Vendor"},
	{key: "tags", label: "Tags"},
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := allRows[0]
	dataRows := allRows[1:]
	return headers, dataRows, nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file multipart.File) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := rows[0]
	dataRows := rows[1:]
	return headers, dataRows, nil
}

// mapHeadersToColumns maps uploaded column headers to import column keys.
// Returns an ordered list of keys (empty string for unrecognized columns).
func mapHeadersToColumns(headers []string) []string {
	labelToKey := make(map[string]string, len(importColumns))
	for _, c := range importColumns {
		labelToKey[strings.ToLower(c.label)] = c.key
	}

	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSuffix(norm, " *")
		norm = strings.TrimSpace(norm)
		mapped[i] = labelToKey[norm]
	}
	return mapped
}

// ValidateLineItemFile parses and validates an uploaded line item file
// (.csv or .xlsx). Every row is checked for required fields and numeric
// formats; rows that pass are materialized as LineItems ready to commit.
func ValidateLineItemFile(file multipart.File, fileName string) (*ImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	if strings.HasSuffix(lowerName, ".csv") {
		headers, dataRows, err = parseCSV(file)
	} else if strings.HasSuffix(lowerName, ".xlsx") {
		headers, dataRows, err = parseExcel(file)
	} else {
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapHeadersToColumns(headers)

	result := &ImportResult{
		TotalRows: len(dataRows),
		FileName:  fileName,
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		rowErrors := validateImportRow(rowNum, rowData)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}

		result.ParsedItems = append(result.ParsedItems, lineItemFromRow(rowData))
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// validateImportRow checks required fields and numeric formats on one row.
func validateImportRow(rowNum int, data map[string]string) []ValidationError {
	var errs []ValidationError
	for _, c := range importColumns {
		v := data[c.key]
		if c.required && v == "" {
			errs = append(errs, ValidationError{
				Row:     rowNum,
				Field:   c.label,
				Message: fmt.Sprintf("%s is required", c.label),
			})
			continue
		}
		if c.numeric && v != "" {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				errs = append(errs, ValidationError{
					Row:     rowNum,
					Field:   c.label,
					Message: fmt.Sprintf("%s must be a number", c.label),
				})
			}
		}
	}
	return errs
}

// CommitLineItems persists validated line items under a quote. Rows are
// appended after the quote's existing items, preserving file order via
// sort_order. Returns the number of records created.
func CommitLineItems(app *pocketbase.PocketBase, quoteID string, items []LineItem) (int, error) {
	col, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		return 0, fmt.Errorf("line_items collection not found: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "quote = {:quoteId}", "", 0, 0, map[string]any{"quoteId": quoteID})
	if err != nil {
		return 0, fmt.Errorf("count existing line items: %w", err)
	}
	nextOrder := len(existing) + 1

	imported := 0
	for i, it := range items {
		rec := core.NewRecord(col)
		rec.Set("quote", quoteID)
		rec.Set("sort_order", nextOrder+i)
		rec.Set("item_code", it.ItemCode)
		rec.Set("item_name", it.ItemName)
		rec.Set("bom_code", it.BOMCode)
		rec.Set("bom_path", it.BOMPath)
		rec.Set("bom_instance_id", it.BOMInstanceID)
		rec.Set("bom_instance_qty", it.BOMInstanceQty)
		rec.Set("qty", it.Qty)
		rec.Set("vendor_rate", it.VendorRate)
		rec.Set("base_rate", it.BaseRate)
		rec.Set("quoted_rate", it.QuotedRate)
		rec.Set("additional_cost_per_unit", it.AdditionalCostPerUnit)
		rec.Set("total_amount", it.TotalAmount)
		rec.Set("vendor_name", it.VendorName)
		rec.Set("tags", it.Tags)

		if err := app.Save(rec); err != nil {
			return imported, fmt.Errorf("save line item %d: %w", i+1, err)
		}
		imported++
	}

	return imported, nil
}

// lineItemFromRow builds a LineItem from an already-validated row.
func lineItemFromRow(data map[string]string) LineItem {
	num := func(key string) float64 {
		f, _ := strconv.ParseFloat(data[key], 64)
		return f
	}

	var tags []string
	for _, tag := range strings.Split(data["tags"], ",") {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}

	return LineItem{
		ItemCode:              data["item_code"],
		ItemName:              data["item_name"],
		BOMCode:               data["bom_code"],
		BOMPath:               data["bom_path"],
		BOMInstanceID:         data["bom_instance_id"],
		BOMInstanceQty:        num("bom_instance_qty"),
		Qty:                   num("qty"),
		VendorRate:            num("vendor_rate"),
		BaseRate:              num("base_rate"),
		QuotedRate:            num("quoted_rate"),
		AdditionalCostPerUnit: num("additional_cost_per_unit"),
		TotalAmount:           num("total_amount"),
		VendorName:            data["vendor_name"],
		Tags:                  tags,
	}
}
