package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quoteanalytics/services"
)

// HandleQuoteSummary returns the Summary tab data for a quote: the
// stored aggregates plus counts derived from the line items.
// Route: GET /api/quotes/{id}/summary
func HandleQuoteSummary(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		items, err := fetchLineItems(app, quote.Id)
		if err != nil {
			log.Printf("summary: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		summary := services.SummarizeQuote(quoteAggregates(quote), items)

		return e.JSON(http.StatusOK, map[string]any{
			"quote": map[string]string{
				"id":               quote.Id,
				"title":            quote.GetString("title"),
				"reference_number": quote.GetString("reference_number"),
				"customer":         quote.GetString("customer"),
			},
			"summary": summary,
		})
	}
}
