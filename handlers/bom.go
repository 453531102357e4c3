package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quoteanalytics/services"
)

// HandleQuoteBOM returns the BOM tab data: per-BOM instance breakdowns
// with volume scenario flags.
// Route: GET /api/quotes/{id}/bom
func HandleQuoteBOM(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		items, err := fetchLineItems(app, quote.Id)
		if err != nil {
			log.Printf("bom: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		groups := services.GroupByBOM(items)

		return e.JSON(http.StatusOK, map[string]any{
			"groups": groups,
			"total":  len(groups),
		})
	}
}
