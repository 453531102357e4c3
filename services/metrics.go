package services

import "fmt"

// Metric selects which numeric field drives the volume comparison.
type Metric int

const (
	MetricQuotedRate Metric = iota
	MetricVendorRate
	MetricBaseRate
	MetricAdditionalCost
	MetricTotalCost
)

// metricNames maps API parameter values to metrics. Keys double as the
// canonical string form returned by Metric.String.
var metricNames = map[string]Metric{
	"quoted_rate":     MetricQuotedRate,
	"vendor_rate":     MetricVendorRate,
	"base_rate":       MetricBaseRate,
	"additional_cost": MetricAdditionalCost,
	"total_cost":      MetricTotalCost,
}

// ParseMetric resolves a metric name from the API surface. An empty name
// defaults to the quoted rate, the figure the dashboard opens on.
func ParseMetric(name string) (Metric, error) {
	if name == "" {
		return MetricQuotedRate, nil
	}
	m, ok := metricNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown metric %q", name)
	}
	return m, nil
}

func (m Metric) String() string {
	for name, metric := range metricNames {
		if metric == m {
			return name
		}
	}
	return "quoted_rate"
}

// Label returns the display heading used in exports.
func (m Metric) Label() string {
	switch m {
	case MetricVendorRate:
		return "Vendor Rate"
	case MetricBaseRate:
		return "Base Rate"
	case MetricAdditionalCost:
		return "Additional Cost / Unit"
	case MetricTotalCost:
		return "Total Cost"
	default:
		return "Quoted Rate"
	}
}

// Value reads the selected metric off one instance.
func (m Metric) Value(inst VolumeInstance) float64 {
	switch m {
	case MetricVendorRate:
		return inst.VendorRate
	case MetricBaseRate:
		return inst.BaseRate
	case MetricAdditionalCost:
		return inst.AdditionalCostPerUnit
	case MetricTotalCost:
		return inst.TotalAmount
	default:
		return inst.QuotedRate
	}
}

// Projection is the read-time view of one VolumeItem under a metric.
// When the lowest-quantity instance's metric is zero the change is
// undefined: Computable is false and Change/ChangePercent are zero-valued
// placeholders that must not be presented as a genuine 0% change.
type Projection struct {
	Values        []float64
	Change        float64
	ChangePercent float64
	Computable    bool
}

// ProjectChange projects the selected metric across an item's instances
// and computes the change from the lowest-quantity instance to the
// highest. It never mutates the item.
func ProjectChange(item VolumeItem, metric Metric) Projection {
	p := Projection{Values: make([]float64, len(item.Instances))}
	for i, inst := range item.Instances {
		p.Values[i] = metric.Value(inst)
	}
	if len(p.Values) < 2 {
		return p
	}

	first := p.Values[0]
	last := p.Values[len(p.Values)-1]
	p.Change = last - first
	if first == 0 {
		return p
	}
	p.ChangePercent = (last - first) / first * 100
	p.Computable = true
	return p
}
