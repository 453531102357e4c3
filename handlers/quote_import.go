package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quoteanalytics/services"
)

// HandleQuoteImport receives a CSV or Excel file upload, validates it,
// and returns the validation result. With ?commit=1 the parsed rows are
// inserted when validation produced no errors.
// Route: POST /api/quotes/{id}/import
func HandleQuoteImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return apiError(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateLineItemFile(file, header.Filename)
		if err != nil {
			log.Printf("quote_import: %v", err)
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		commit := e.Request.URL.Query().Get("commit") == "1"
		imported := 0

		if commit {
			if result.ErrorRows > 0 {
				return e.JSON(http.StatusUnprocessableEntity, map[string]any{
					"error":      "File has validation errors and cannot be imported",
					"total_rows": result.TotalRows,
					"valid_rows": result.ValidRows,
					"error_rows": result.ErrorRows,
					"errors":     result.Errors,
				})
			}

			imported, err = services.CommitLineItems(app, quote.Id, result.ParsedItems)
			if err != nil {
				log.Printf("quote_import: commit failed: %v", err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			log.Printf("quote_import: imported %d line items into quote %s", imported, quote.Id)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"file_name":  result.FileName,
			"total_rows": result.TotalRows,
			"valid_rows": result.ValidRows,
			"error_rows": result.ErrorRows,
			"errors":     result.Errors,
			"committed":  commit && imported > 0,
			"imported":   imported,
		})
	}
}

// HandleImportTemplate downloads an empty spreadsheet with the expected
// import columns.
// Route: GET /api/import/template
func HandleImportTemplate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateImportTemplate()
		if err != nil {
			log.Printf("import_template: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate template")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, "Line_Items_Template.xlsx"))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
