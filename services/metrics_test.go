package services

import (
	"math"
	"testing"
)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Metric
		wantErr bool
	}{
		{"empty defaults to quoted rate", "", MetricQuotedRate, false},
		{"quoted rate", "quoted_rate", MetricQuotedRate, false},
		{"vendor rate", "vendor_rate", MetricVendorRate, false},
		{"base rate", "base_rate", MetricBaseRate, false},
		{"additional cost", "additional_cost", MetricAdditionalCost, false},
		{"total cost", "total_cost", MetricTotalCost, false},
		{"unknown", "margin", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetric(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMetric(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMetric(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMetric(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMetricValue(t *testing.T) {
	inst := VolumeInstance{
		VendorRate:            1,
		BaseRate:              2,
		QuotedRate:            3,
		AdditionalCostPerUnit: 4,
		TotalAmount:           5,
	}

	tests := []struct {
		metric Metric
		want   float64
	}{
		{MetricVendorRate, 1},
		{MetricBaseRate, 2},
		{MetricQuotedRate, 3},
		{MetricAdditionalCost, 4},
		{MetricTotalCost, 5},
	}

	for _, tt := range tests {
		if got := tt.metric.Value(inst); got != tt.want {
			t.Errorf("%s.Value = %v, want %v", tt.metric, got, tt.want)
		}
	}
}

func TestProjectChange(t *testing.T) {
	item := VolumeItem{
		ItemCode: "ITM-1",
		BOMPath:  "D",
		Instances: []VolumeInstance{
			{BOMInstanceQty: 10, QuotedRate: 50, VendorRate: 10},
			{BOMInstanceQty: 1000, QuotedRate: 44, VendorRate: 12},
		},
	}

	p := ProjectChange(item, MetricQuotedRate)
	if !p.Computable {
		t.Fatal("expected computable change")
	}
	if p.Change != -6 {
		t.Errorf("Change = %v, want -6", p.Change)
	}
	if math.Abs(p.ChangePercent-(-12.0)) > 1e-9 {
		t.Errorf("ChangePercent = %v, want -12.0", p.ChangePercent)
	}

	// Re-selecting the metric is a read-time projection only.
	p2 := ProjectChange(item, MetricVendorRate)
	if !p2.Computable || math.Abs(p2.ChangePercent-20.0) > 1e-9 {
		t.Errorf("vendor rate projection = %+v, want +20%%", p2)
	}
	if item.Instances[0].QuotedRate != 50 {
		t.Error("projection must not mutate instance data")
	}
}

func TestProjectChange_ZeroBaseline(t *testing.T) {
	item := VolumeItem{
		ItemCode: "ITM-3",
		BOMPath:  "D",
		Instances: []VolumeInstance{
			{BOMInstanceQty: 10, QuotedRate: 0},
			{BOMInstanceQty: 1000, QuotedRate: 44},
		},
	}

	p := ProjectChange(item, MetricQuotedRate)
	if p.Computable {
		t.Fatal("zero baseline must be flagged not computable")
	}
	if p.ChangePercent != 0 {
		t.Errorf("placeholder percent should stay zero-valued, got %v", p.ChangePercent)
	}
	if math.IsInf(p.ChangePercent, 0) || math.IsNaN(p.ChangePercent) {
		t.Error("change percent must never be Inf or NaN")
	}
	// The absolute change is still defined.
	if p.Change != 44 {
		t.Errorf("Change = %v, want 44", p.Change)
	}
}

func TestProjectChange_ZeroChangeIsComputable(t *testing.T) {
	item := VolumeItem{
		Instances: []VolumeInstance{
			{BOMInstanceQty: 10, QuotedRate: 50},
			{BOMInstanceQty: 1000, QuotedRate: 50},
		},
	}

	p := ProjectChange(item, MetricQuotedRate)
	if !p.Computable {
		t.Fatal("a genuine 0% change is computable, not undefined")
	}
	if p.ChangePercent != 0 {
		t.Errorf("ChangePercent = %v, want 0", p.ChangePercent)
	}
}

// Changing the selected metric must not change which items classify as
// volume scenarios, only the projected values.
func TestMetricIndependentOfClassification(t *testing.T) {
	items := []LineItem{
		li("ITM-1", "D", "D", "inst-1", 10, 50),
		li("ITM-1", "D", "D", "inst-2", 1000, 44),
	}

	volumeItems := BuildVolumeItems(items)
	if len(volumeItems) != 1 {
		t.Fatalf("expected 1 volume item, got %d", len(volumeItems))
	}

	for _, metric := range []Metric{MetricQuotedRate, MetricVendorRate, MetricBaseRate, MetricAdditionalCost, MetricTotalCost} {
		p := ProjectChange(volumeItems[0], metric)
		if len(p.Values) != 2 {
			t.Errorf("metric %s: expected 2 projected values, got %d", metric, len(p.Values))
		}
	}
}
