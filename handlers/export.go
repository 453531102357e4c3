package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quoteanalytics/services"
)

// buildVolumeExportData fetches the quote and its line items, runs the
// volume pipeline, and returns data ready for an Excel or PDF export.
func buildVolumeExportData(app *pocketbase.PocketBase, quoteID string, metric services.Metric) (services.VolumeExportData, error) {
	quote, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		return services.VolumeExportData{}, fmt.Errorf("quote not found: %w", err)
	}

	items, err := fetchLineItems(app, quote.Id)
	if err != nil {
		return services.VolumeExportData{}, err
	}

	volumeItems := services.BuildVolumeItems(items)

	return services.BuildVolumeExportData(
		quote.GetString("title"),
		quote.GetString("reference_number"),
		quote.GetString("currency"),
		time.Now().Format("02 Jan 2006"),
		metric,
		volumeItems,
	), nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleVolumeExportExcel generates and downloads the volume analysis
// as an Excel file.
// Route: GET /api/quotes/{id}/volume/export/excel
func HandleVolumeExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return apiError(e, http.StatusBadRequest, "Missing quote ID")
		}

		metric, err := services.ParseMetric(e.Request.URL.Query().Get("metric"))
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		data, err := buildVolumeExportData(app, quoteID, metric)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		xlsxBytes, err := services.GenerateVolumeExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Volume_%s_%d.xlsx", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleVolumeExportPDF generates and downloads the volume analysis as
// a PDF file.
// Route: GET /api/quotes/{id}/volume/export/pdf
func HandleVolumeExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return apiError(e, http.StatusBadRequest, "Missing quote ID")
		}

		metric, err := services.ParseMetric(e.Request.URL.Query().Get("metric"))
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		data, err := buildVolumeExportData(app, quoteID, metric)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		pdfBytes, err := services.GenerateVolumePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Volume_%s_%d.pdf", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
