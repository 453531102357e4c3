package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quoteanalytics/collections"
	"quoteanalytics/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Apply active quote middleware globally
		se.Router.BindFunc(handlers.ActiveQuoteMiddleware(app))

		// ── Quote CRUD ───────────────────────────────────────────
		se.Router.GET("/api/quotes", handlers.HandleQuoteList(app))
		se.Router.POST("/api/quotes", handlers.HandleQuoteCreate(app))
		se.Router.GET("/api/quotes/active", handlers.HandleActiveQuote(app))
		se.Router.POST("/api/quotes/{id}/activate", handlers.HandleQuoteActivate(app))
		se.Router.DELETE("/api/quotes/{id}", handlers.HandleQuoteDelete(app))

		// ── Line item import ─────────────────────────────────────
		se.Router.POST("/api/quotes/{id}/import", handlers.HandleQuoteImport(app))
		se.Router.GET("/api/import/template", handlers.HandleImportTemplate(app))

		// ── Quote analysis tabs ──────────────────────────────────
		se.Router.GET("/api/quotes/{id}/summary", handlers.HandleQuoteSummary(app))
		se.Router.GET("/api/quotes/{id}/items", handlers.HandleQuoteItems(app))
		se.Router.GET("/api/quotes/{id}/bom", handlers.HandleQuoteBOM(app))
		se.Router.GET("/api/quotes/{id}/volume", handlers.HandleQuoteVolume(app))
		se.Router.GET("/api/quotes/{id}/overall", handlers.HandleQuoteOverall(app))
		se.Router.GET("/api/volume/options", handlers.HandleVolumeOptions(app))

		// ── Volume analysis export ───────────────────────────────
		se.Router.GET("/api/quotes/{id}/volume/export/excel", handlers.HandleVolumeExportExcel(app))
		se.Router.GET("/api/quotes/{id}/volume/export/pdf", handlers.HandleVolumeExportPDF(app))

		// Redirect home to the quote index
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/api/quotes")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
