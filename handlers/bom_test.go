package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quoteanalytics/testhelpers"
)

func TestHandleQuoteBOM(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := seedVolumeQuote(t, app)

	handler := HandleQuoteBOM(app)
	req := httptest.NewRequest(http.MethodGet, "/api/quotes/"+quote.Id+"/bom", nil)
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
		Groups []struct {
			BOMCode          string `json:"bom_code"`
			IsVolumeScenario bool   `json:"is_volume_scenario"`
			Instances        []struct {
				BOMInstanceID  string  `json:"bom_instance_id"`
				BOMInstanceQty float64 `json:"bom_instance_qty"`
				ItemCount      int     `json:"item_count"`
			} `json:"instances"`
			Total float64 `json:"total"`
		} `json:"groups"`
		Total int `json:"total"`
	}
	testhelpers.DecodeJSON(t, rec.Body.String(), &resp)
	if resp.Total != 2 || len(resp.Groups) != 2 {
		t.Fatalf("expected 2 groups, got total=%d len=%d", resp.Total, len(resp.Groups))
	}

	// Groups ordered by BOM code: D before E
	d := resp.Groups[0]
	if d.BOMCode != "D" || !d.IsVolumeScenario {
		t.Errorf("first group = %q scenario=%v, want D/true", d.BOMCode, d.IsVolumeScenario)
	}
	if len(d.Instances) != 2 {
		t.Fatalf("D instances = %d, want 2", len(d.Instances))
	}
	// Instances ascending by quantity
	if d.Instances[0].BOMInstanceQty != 10 || d.Instances[1].BOMInstanceQty != 100 {
		t.Errorf("instance qtys = %v/%v, want 10/100",
			d.Instances[0].BOMInstanceQty, d.Instances[1].BOMInstanceQty)
	}
	if d.Instances[0].ItemCount != 2 {
		t.Errorf("inst-a item count = %d, want 2", d.Instances[0].ItemCount)
	}
	if d.Total != 2440 {
		t.Errorf("D total = %v, want 2440", d.Total)
	}

	e2 := resp.Groups[1]
	if e2.BOMCode != "E" || e2.IsVolumeScenario {
		t.Errorf("second group = %q scenario=%v, want E/false", e2.BOMCode, e2.IsVolumeScenario)
	}
}

func TestHandleQuoteBOM_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleQuoteBOM(app)
	req := httptest.NewRequest(http.MethodGet, "/api/quotes/missing/bom", nil)
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
