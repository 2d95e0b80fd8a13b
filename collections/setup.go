package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogpricing/services"
)

// Setup programmatically creates/ensures the materials, articles,
// article_materials, compositions, composition_items and services
// collections exist.
func Setup(app *pocketbase.PocketBase) {
	materials := ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name_fr", Required: true})
		c.Fields.Add(&core.TextField{Name: "name_ro", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "unit",
			Required:  true,
			Values:    services.UnitOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "price_eur", Required: false})
		c.Fields.Add(&core.NumberField{Name: "price_lei", Required: false})
		c.Fields.Add(&core.TextField{Name: "price_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "supplier", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	articles := ensureCollection(app, "articles", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "labor_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "margin", Required: false})
		c.Fields.Add(&core.NumberField{Name: "overhead", Required: false})
		c.Fields.Add(&core.NumberField{Name: "material_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_price", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "article_materials", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "article",
			Required:      true,
			CollectionId:  articles.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "material",
			Required:     true,
			CollectionId: materials.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.NumberField{Name: "waste_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	compositions := ensureCollection(app, "compositions", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "margin", Required: false})
		c.Fields.Add(&core.NumberField{Name: "overhead", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_price", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "composition_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "composition",
			Required:      true,
			CollectionId:  compositions.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "item_type",
			Required:  true,
			Values:    []string{"material", "article"},
			MaxSelect: 1,
		})
		// item_id is a plain text reference because its target collection
		// depends on item_type; resolution happens in the pricing layer.
		c.Fields.Add(&core.TextField{Name: "item_id", Required: true})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	ensureCollection(app, "services", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "unit",
			Required:  true,
			Values:    services.ServiceUnitOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "price_net", Required: false})
		c.Fields.Add(&core.NumberField{Name: "price_gross", Required: false})
		c.Fields.Add(&core.NumberField{Name: "margin", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
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
