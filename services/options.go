package services

// MetricOptions lists the metric selector values exposed to the
// dashboard's metric dropdown, in display order.
var MetricOptions = []string{
	"quoted_rate",
	"vendor_rate",
	"base_rate",
	"additional_cost",
	"total_cost",
}

// PageSizeOptions lists the selectable page sizes for paginated tables.
var PageSizeOptions = []int{10, 25, 50, 100}

// DefaultPageSize is used when a request does not specify a page size.
const DefaultPageSize = 25
