package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quoteanalytics/services"
	"quoteanalytics/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// seedVolumeQuote creates a quote with line items covering the common
// shapes: one item cheaper at scale, one costlier, and one priced at a
// single quantity only.
func seedVolumeQuote(t *testing.T, app *pocketbase.PocketBase) *core.Record {
	t.Helper()

	quote := testhelpers.CreateTestQuote(t, app, "Panel Quote")

	items := []services.LineItem{
		{ItemCode: "ITM-1", ItemName: "Hex Bolt", BOMCode: "D", BOMPath: "D",
			BOMInstanceID: "inst-a", BOMInstanceQty: 10, Qty: 4,
			QuotedRate: 50, VendorRate: 48, BaseRate: 45, TotalAmount: 200,
			VendorName: "Acme", Tags: []string{"hardware"}},
		{ItemCode: "ITM-1", ItemName: "Hex Bolt", BOMCode: "D", BOMPath: "D",
			BOMInstanceID: "inst-b", BOMInstanceQty: 100, Qty: 40,
			QuotedRate: 44, VendorRate: 43, BaseRate: 41, TotalAmount: 1760,
			VendorName: "Acme", Tags: []string{"hardware"}},
		{ItemCode: "ITM-2", ItemName: "Gasket", BOMCode: "D", BOMPath: "D",
			BOMInstanceID: "inst-a", BOMInstanceQty: 10, Qty: 2,
			QuotedRate: 20, VendorRate: 19, BaseRate: 18, TotalAmount: 40,
			VendorName: "Bolt Co", Tags: []string{"sealing"}},
		{ItemCode: "ITM-2", ItemName: "Gasket", BOMCode: "D", BOMPath: "D",
			BOMInstanceID: "inst-b", BOMInstanceQty: 100, Qty: 20,
			QuotedRate: 22, VendorRate: 21, BaseRate: 20, TotalAmount: 440,
			VendorName: "Bolt Co", Tags: []string{"sealing"}},
		{ItemCode: "ITM-9", ItemName: "Bracket", BOMCode: "E", BOMPath: "E",
			BOMInstanceID: "inst-1", BOMInstanceQty: 5, Qty: 5,
			QuotedRate: 90, TotalAmount: 450,
			VendorName: "Acme", Tags: []string{"hardware"}},
	}
	for _, it := range items {
		testhelpers.CreateTestLineItem(t, app, quote.Id, it)
	}

	return quote
}
