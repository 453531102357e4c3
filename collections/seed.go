package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type lineItemDef struct {
	itemCode              string
	itemName              string
	bomCode               string
	bomPath               string
	bomInstanceID         string
	bomInstanceQty        float64
	qty                   float64
	vendorRate            float64
	baseRate              float64
	quotedRate            float64
	additionalCostPerUnit float64
	totalAmount           float64
	vendorName            string
	tags                  []string
}

type quoteDef struct {
	title                string
	referenceNumber      string
	customer             string
	currency             string
	totalValue           float64
	baseAmount           float64
	grandTotal           float64
	additionalCostsTotal float64
	items                []lineItemDef
}

// Seed populates the collections with a realistic demo quote containing
// genuine volume scenarios (the same BOM inserted at several quantities
// with vendor-quoted rates that fall with scale). It is safe to call on
// every startup because it returns early if any quote records already
// exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if quotes already exist ────────────────────
	quotesCol, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return fmt.Errorf("seed: could not find quotes collection: %w", err)
	}
	existing, err := app.FindAllRecords(quotesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query quotes: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	itemsCol, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		return fmt.Errorf("seed: could not find line_items collection: %w", err)
	}

	quote := demoQuote()

	quoteRec := core.NewRecord(quotesCol)
	quoteRec.Set("title", quote.title)
	quoteRec.Set("reference_number", quote.referenceNumber)
	quoteRec.Set("customer", quote.customer)
	quoteRec.Set("currency", quote.currency)
	quoteRec.Set("total_value", quote.totalValue)
	quoteRec.Set("base_amount", quote.baseAmount)
	quoteRec.Set("grand_total", quote.grandTotal)
	quoteRec.Set("additional_costs_total", quote.additionalCostsTotal)
	if err := app.Save(quoteRec); err != nil {
		return fmt.Errorf("seed: could not save quote: %w", err)
	}

	for i, item := range quote.items {
		rec := core.NewRecord(itemsCol)
		rec.Set("quote", quoteRec.Id)
		rec.Set("sort_order", i+1)
		rec.Set("item_code", item.itemCode)
		rec.Set("item_name", item.itemName)
		rec.Set("bom_code", item.bomCode)
		rec.Set("bom_path", item.bomPath)
		rec.Set("bom_instance_id", item.bomInstanceID)
		rec.Set("bom_instance_qty", item.bomInstanceQty)
		rec.Set("qty", item.qty)
		rec.Set("vendor_rate", item.vendorRate)
		rec.Set("base_rate", item.baseRate)
		rec.Set("quoted_rate", item.quotedRate)
		rec.Set("additional_cost_per_unit", item.additionalCostPerUnit)
		rec.Set("total_amount", item.totalAmount)
		rec.Set("vendor_name", item.vendorName)
		rec.Set("tags", item.tags)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: could not save line item %q: %w", item.itemCode, err)
		}
	}

	fmt.Printf("Seeded quote %q with %d line items\n", quote.title, len(quote.items))
	return nil
}

// demoQuote returns a control-panel procurement quote where the
// CTRL-PANEL BOM is priced at three volumes (10, 100, 500 units) and the
// SENSOR-KIT BOM at two, so the volume analysis tab has data out of the
// box. Rates generally drop with quantity; PCB-MAIN holds flat to show
// an unchanged item.
func demoQuote() quoteDef {
	return quoteDef{
		title:                "Smart Factory Control Panels",
		referenceNumber:      "Q-2041",
		customer:             "Meridian Automation Pvt Ltd",
		currency:             "INR",
		totalValue:           4856000,
		baseAmount:           4612000,
		grandTotal:           5123080,
		additionalCostsTotal: 267080,
		items: []lineItemDef{
			// CTRL-PANEL @ 10
			{"ENC-400", "Enclosure 400x600 IP65", "CTRL-PANEL", "CTRL-PANEL", "cp-10", 10, 1, 8200, 8350, 8600, 120, 86000, "Rittal India", []string{"enclosure"}},
			{"PCB-MAIN", "Main Controller PCB", "CTRL-PANEL", "CTRL-PANEL", "cp-10", 10, 1, 4400, 4480, 4650, 85, 46500, "Shenzhen EPC", []string{"electronics"}},
			{"PSU-24V", "24V 10A DIN PSU", "CTRL-PANEL", "CTRL-PANEL > Power", "cp-10", 10, 1, 2950, 3010, 3150, 40, 31500, "Meanwell Dist", []string{"power"}},
			{"WIR-HARN", "Wiring Harness Set", "CTRL-PANEL", "CTRL-PANEL > Power", "cp-10", 10, 1, 1450, 1480, 1540, 25, 15400, "Acme Cables", []string{"electrical"}},
			// CTRL-PANEL @ 100
			{"ENC-400", "Enclosure 400x600 IP65", "CTRL-PANEL", "CTRL-PANEL", "cp-100", 100, 1, 7750, 7890, 8120, 110, 812000, "Rittal India", []string{"enclosure"}},
			{"PCB-MAIN", "Main Controller PCB", "CTRL-PANEL", "CTRL-PANEL", "cp-100", 100, 1, 4400, 4480, 4650, 85, 465000, "Shenzhen EPC", []string{"electronics"}},
			{"PSU-24V", "24V 10A DIN PSU", "CTRL-PANEL", "CTRL-PANEL > Power", "cp-100", 100, 1, 2760, 2815, 2940, 38, 294000, "Meanwell Dist", []string{"power"}},
			{"WIR-HARN", "Wiring Harness Set", "CTRL-PANEL", "CTRL-PANEL > Power", "cp-100", 100, 1, 1320, 1350, 1410, 22, 141000, "Acme Cables", []string{"electrical"}},
			// CTRL-PANEL @ 500
			{"ENC-400", "Enclosure 400x600 IP65", "CTRL-PANEL", "CTRL-PANEL", "cp-500", 500, 1, 7280, 7410, 7650, 95, 3825000, "Rittal India", []string{"enclosure"}},
			{"PCB-MAIN", "Main Controller PCB", "CTRL-PANEL", "CTRL-PANEL", "cp-500", 500, 1, 4400, 4480, 4650, 85, 2325000, "Shenzhen EPC", []string{"electronics"}},
			{"PSU-24V", "24V 10A DIN PSU", "CTRL-PANEL", "CTRL-PANEL > Power", "cp-500", 500, 1, 2580, 2630, 2750, 35, 1375000, "Meanwell Dist", []string{"power"}},
			{"WIR-HARN", "Wiring Harness Set", "CTRL-PANEL", "CTRL-PANEL > Power", "cp-500", 500, 1, 1205, 1230, 1290, 20, 645000, "Acme Cables", []string{"electrical"}},
			// SENSOR-KIT @ 50 and 200
			{"SNS-TEMP", "PT100 Temperature Probe", "SENSOR-KIT", "SENSOR-KIT", "sk-50", 50, 2, 640, 655, 690, 8, 69000, "Honeywell Dist", []string{"sensors"}},
			{"SNS-PRES", "Pressure Transmitter", "SENSOR-KIT", "SENSOR-KIT", "sk-50", 50, 1, 3850, 3920, 4100, 55, 205000, "Honeywell Dist", []string{"sensors"}},
			{"SNS-TEMP", "PT100 Temperature Probe", "SENSOR-KIT", "SENSOR-KIT", "sk-200", 200, 2, 590, 605, 635, 7, 254000, "Honeywell Dist", []string{"sensors"}},
			{"SNS-PRES", "Pressure Transmitter", "SENSOR-KIT", "SENSOR-KIT", "sk-200", 200, 1, 3610, 3680, 3850, 50, 770000, "Honeywell Dist", []string{"sensors"}},
			// MOUNT-KIT appears once; never part of volume analysis
			{"MNT-RAIL", "DIN Rail + Mounting Kit", "MOUNT-KIT", "MOUNT-KIT", "mk-1", 60, 1, 310, 318, 335, 4, 20100, "Bolt Co", []string{"mechanical"}},
		},
	}
}
