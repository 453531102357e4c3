package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quoteanalytics/services"
)

// HandleQuoteItems returns the filtered, sorted, paginated line item
// list for the Items tab.
// Route: GET /api/quotes/{id}/items
func HandleQuoteItems(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		items, err := fetchLineItems(app, quote.Id)
		if err != nil {
			log.Printf("items: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		query := e.Request.URL.Query()
		filter := services.ItemFilter{
			Search:   query.Get("search"),
			Vendors:  query["vendor"],
			Tags:     query["tag"],
			BOMPaths: query["bom"],
		}

		view, err := services.BuildItemView(items, filter, parseSort(query, ""), parsePage(query))
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		return e.JSON(http.StatusOK, view)
	}
}
