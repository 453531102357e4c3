package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quoteanalytics/services"
)

// HandleQuoteOverall returns the Overall tab data: the quote totals
// alongside per-vendor amount breakdowns.
// Route: GET /api/quotes/{id}/overall
func HandleQuoteOverall(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		items, err := fetchLineItems(app, quote.Id)
		if err != nil {
			log.Printf("overall: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		agg := quoteAggregates(quote)

		return e.JSON(http.StatusOK, map[string]any{
			"aggregates":      agg,
			"currency_symbol": services.CurrencySymbol(agg.Currency),
			"vendors":         services.AggregateVendors(items),
		})
	}
}
