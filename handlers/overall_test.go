package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quoteanalytics/testhelpers"
)

func TestHandleQuoteOverall(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := seedVolumeQuote(t, app)

	handler := HandleQuoteOverall(app)
	req := httptest.NewRequest(http.MethodGet, "/api/quotes/"+quote.Id+"/overall", nil)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Aggregates struct {
			Currency string `json:"currency"`
		} `json:"aggregates"`
		CurrencySymbol string `json:"currency_symbol"`
		Vendors        []struct {
			VendorName  string  `json:"vendor_name"`
			ItemCount   int     `json:"item_count"`
			TotalAmount float64 `json:"total_amount"`
		} `json:"vendors"`
	}
	testhelpers.DecodeJSON(t, rec.Body.String(), &resp)
	if resp.Aggregates.Currency != "INR" || resp.CurrencySymbol != "₹" {
		t.Errorf("currency = %q symbol = %q, want INR/₹", resp.Aggregates.Currency, resp.CurrencySymbol)
	}
	if len(resp.Vendors) != 2 {
		t.Fatalf("expected 2 vendors, got %d", len(resp.Vendors))
	}
	// Highest total first: Acme 200+1760+450 = 2410, Bolt Co 480
	if resp.Vendors[0].VendorName != "Acme" || resp.Vendors[0].TotalAmount != 2410 {
		t.Errorf("first vendor = %q/%v, want Acme/2410",
			resp.Vendors[0].VendorName, resp.Vendors[0].TotalAmount)
	}
	if resp.Vendors[1].VendorName != "Bolt Co" || resp.Vendors[1].ItemCount != 2 {
		t.Errorf("second vendor = %q count %d, want Bolt Co/2",
			resp.Vendors[1].VendorName, resp.Vendors[1].ItemCount)
	}
}

func TestHandleQuoteOverall_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleQuoteOverall(app)
	req := httptest.NewRequest(http.MethodGet, "/api/quotes/missing/overall", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
