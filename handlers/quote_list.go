package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quoteanalytics/services"
)

// quoteListEntry is one row of the quote index.
type quoteListEntry struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	ReferenceNumber string  `json:"reference_number"`
	Customer        string  `json:"customer"`
	Currency        string  `json:"currency"`
	CurrencySymbol  string  `json:"currency_symbol"`
	GrandTotal      float64 `json:"grand_total"`
	ItemCount       int     `json:"item_count"`
	CreatedDate     string  `json:"created_date"`
}

// HandleQuoteList returns a handler that lists all quotes with their
// line item counts.
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotesCol, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_list: could not find quotes collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		records, err := app.FindAllRecords(quotesCol)
		if err != nil {
			log.Printf("quote_list: could not query quotes: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		itemsCol, err := app.FindCollectionByNameOrId("line_items")
		if err != nil {
			log.Printf("quote_list: could not find line_items collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		entries := make([]quoteListEntry, 0, len(records))
		for _, rec := range records {
			items, err := app.FindRecordsByFilter(itemsCol, "quote = {:quote}", "", 0, 0, map[string]any{"quote": rec.Id})
			if err != nil {
				log.Printf("quote_list: could not count items for quote %s: %v", rec.Id, err)
				items = nil
			}

			createdDate := "—"
			if dt := rec.GetDateTime("created"); !dt.IsZero() {
				createdDate = dt.Time().Format("02 Jan 2006")
			}

			entries = append(entries, quoteListEntry{
				ID:              rec.Id,
				Title:           rec.GetString("title"),
				ReferenceNumber: rec.GetString("reference_number"),
				Customer:        rec.GetString("customer"),
				Currency:        rec.GetString("currency"),
				CurrencySymbol:  services.CurrencySymbol(rec.GetString("currency")),
				GrandTotal:      rec.GetFloat("grand_total"),
				ItemCount:       len(items),
				CreatedDate:     createdDate,
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"quotes": entries,
			"total":  len(entries),
		})
	}
}

// quoteCreateRequest is the POST /api/quotes payload.
type quoteCreateRequest struct {
	Title                string  `json:"title"`
	ReferenceNumber      string  `json:"reference_number"`
	Customer             string  `json:"customer"`
	Currency             string  `json:"currency"`
	TotalValue           float64 `json:"total_value"`
	BaseAmount           float64 `json:"base_amount"`
	GrandTotal           float64 `json:"grand_total"`
	AdditionalCostsTotal float64 `json:"additional_costs_total"`
}

// HandleQuoteCreate returns a handler that creates a new quote.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req quoteCreateRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" {
			return apiError(e, http.StatusBadRequest, "Quote title is required")
		}

		// Check for duplicate title
		existing, _ := app.FindRecordsByFilter("quotes", "title = {:title}", "", 1, 0, map[string]any{"title": req.Title})
		if len(existing) > 0 {
			return apiError(e, http.StatusBadRequest, "A quote with this title already exists")
		}

		currency := strings.ToUpper(strings.TrimSpace(req.Currency))
		if currency == "" {
			currency = "INR"
		}

		quotesCol, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_create: could not find quotes collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(quotesCol)
		record.Set("title", req.Title)
		record.Set("reference_number", strings.TrimSpace(req.ReferenceNumber))
		record.Set("customer", strings.TrimSpace(req.Customer))
		record.Set("currency", currency)
		record.Set("total_value", req.TotalValue)
		record.Set("base_amount", req.BaseAmount)
		record.Set("grand_total", req.GrandTotal)
		record.Set("additional_costs_total", req.AdditionalCostsTotal)

		if err := app.Save(record); err != nil {
			log.Printf("quote_create: could not save quote: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusCreated, map[string]string{
			"id":    record.Id,
			"title": record.GetString("title"),
		})
	}
}

// HandleQuoteDelete returns a handler that deletes a quote. Line items
// are removed by the cascade relation.
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quote_delete: could not delete quote %s: %v", quoteID, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		// Clear the cookie if the deleted quote was active
		if active := GetActiveQuote(e.Request); active != nil && active.ID == quoteID {
			http.SetCookie(e.Response, &http.Cookie{
				Name:   "active_quote",
				Value:  "",
				Path:   "/",
				MaxAge: -1,
			})
		}

		return e.JSON(http.StatusOK, map[string]string{"deleted": quoteID})
	}
}
