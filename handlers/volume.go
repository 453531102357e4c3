package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quoteanalytics/services"
)

// HandleQuoteVolume returns the volume analysis tab data: items priced
// at multiple BOM quantities, projected under the selected metric, then
// filtered, sorted and paginated.
// Route: GET /api/quotes/{id}/volume
func HandleQuoteVolume(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		items, err := fetchLineItems(app, quote.Id)
		if err != nil {
			log.Printf("volume: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		query := e.Request.URL.Query()
		metric, err := services.ParseMetric(query.Get("metric"))
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		filter := services.VolumeFilter{
			Search:   query.Get("search"),
			Vendors:  query["vendor"],
			Tags:     query["tag"],
			BOMPaths: query["bom"],
		}

		volumeItems := services.BuildVolumeItems(items)
		view, err := services.BuildVolumeView(volumeItems, metric, filter, parseSort(query, ""), parsePage(query))
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		return e.JSON(http.StatusOK, map[string]any{
			"metric":        metric.String(),
			"metric_label":  metric.Label(),
			"has_scenarios": len(volumeItems) > 0,
			"view":          view,
		})
	}
}

// HandleVolumeOptions returns the metric and page size choices the
// volume tab offers.
// Route: GET /api/volume/options
func HandleVolumeOptions(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"metrics":    services.MetricOptions,
			"page_sizes": services.PageSizeOptions,
		})
	}
}
