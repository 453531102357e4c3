package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the quotes and line_items
// collections exist.
func Setup(app *pocketbase.PocketBase) {
	quotes := ensureCollection(app, "quotes", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer", Required: false})
		c.Fields.Add(&core.TextField{Name: "currency", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_value", Required: false})
		c.Fields.Add(&core.NumberField{Name: "base_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "grand_total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "additional_costs_total", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "line_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quote",
			Required:      true,
			CollectionId:  quotes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "item_code", Required: true})
		c.Fields.Add(&core.TextField{Name: "item_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "bom_code", Required: false})
		c.Fields.Add(&core.TextField{Name: "bom_path", Required: false})
		c.Fields.Add(&core.TextField{Name: "bom_instance_id", Required: false})
		c.Fields.Add(&core.NumberField{Name: "bom_instance_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "vendor_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "base_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quoted_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "additional_cost_per_unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_amount", Required: false})
		c.Fields.Add(&core.TextField{Name: "vendor_name", Required: false})
		c.Fields.Add(&core.JSONField{Name: "tags", Required: false})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
