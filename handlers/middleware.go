package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const ActiveQuoteKey contextKey = "activeQuote"

// ActiveQuote identifies the quote a client is currently working with.
type ActiveQuote struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// GetActiveQuote extracts the active quote from the request context.
func GetActiveQuote(r *http.Request) *ActiveQuote {
	if val, ok := r.Context().Value(ActiveQuoteKey).(*ActiveQuote); ok {
		return val
	}
	return nil
}

// ActiveQuoteMiddleware reads the "active_quote" cookie, loads the quote
// record, and stores it in the request context. A cookie pointing at a
// deleted quote is cleared.
func ActiveQuoteMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var active *ActiveQuote

		cookie, err := e.Request.Cookie("active_quote")
		if err == nil && cookie.Value != "" {
			rec, err := app.FindRecordById("quotes", cookie.Value)
			if err == nil {
				active = &ActiveQuote{
					ID:    rec.Id,
					Title: rec.GetString("title"),
				}
			} else {
				log.Printf("middleware: active quote %s not found, clearing cookie", cookie.Value)
				http.SetCookie(e.Response, &http.Cookie{
					Name:   "active_quote",
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
			}
		}

		ctx := context.WithValue(e.Request.Context(), ActiveQuoteKey, active)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}

// HandleActiveQuote returns the quote selected via the "active_quote"
// cookie, or 404 when none is selected.
func HandleActiveQuote(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		active := GetActiveQuote(e.Request)
		if active == nil {
			return apiError(e, http.StatusNotFound, "No active quote selected")
		}
		return e.JSON(http.StatusOK, active)
	}
}

// HandleQuoteActivate sets the "active_quote" cookie to the given quote.
func HandleQuoteActivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		rec, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     "active_quote",
			Value:    rec.Id,
			Path:     "/",
			MaxAge:   60 * 60 * 24 * 30,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		return e.JSON(http.StatusOK, ActiveQuote{
			ID:    rec.Id,
			Title: rec.GetString("title"),
		})
	}
}
