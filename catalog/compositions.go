package catalog

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"catalogpricing/config"
	"catalogpricing/services"
)

// CompositionItemParams describes one component of a composition: either a
// material or an article, identified by kind and id.
type CompositionItemParams struct {
	Kind     services.ItemKind
	ItemID   string
	Quantity float64
}

// CompositionParams are the caller-supplied fields of a new composition.
// Margin and Overhead fall back to the configured defaults when nil.
// total_price is derived, never accepted.
type CompositionParams struct {
	Code        string
	Name        string
	Description string
	Unit        string
	Margin      *float64
	Overhead    *float64
	Items       []CompositionItemParams
}

// CompositionUpdate holds the mutable scalar fields of a composition; nil
// means leave unchanged. Items are managed through the item operations.
type CompositionUpdate struct {
	Code        *string
	Name        *string
	Description *string
	Unit        *string
	Margin      *float64
	Overhead    *float64
}

// itemExists checks the referent of a composition item in the collection
// its kind dictates. Compositions never nest, so there are only two kinds.
func itemExists(app core.App, kind services.ItemKind, itemID string) error {
	var collection string
	switch kind {
	case services.KindMaterial:
		collection = "materials"
	case services.KindArticle:
		collection = "articles"
	default:
		return fmt.Errorf("unknown item kind %q", kind)
	}
	if _, err := app.FindRecordById(collection, itemID); err != nil {
		return fmt.Errorf("%w: %s %s", ErrMissingReference, kind, itemID)
	}
	return nil
}

// CreateComposition validates and stores a new composition with its items
// and computes its total price in the same transaction. Every referenced
// material or article must exist at creation time.
func CreateComposition(app core.App, cfg *config.Config, p CompositionParams) (*core.Record, error) {
	code, err := checkNewCode(app, "compositions", p.Code)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, fmt.Errorf("composition %s: name is required", code)
	}

	margin := cfg.DefaultMargin.InexactFloat64()
	if p.Margin != nil {
		margin = *p.Margin
	}
	overhead := cfg.DefaultOverhead.InexactFloat64()
	if p.Overhead != nil {
		overhead = *p.Overhead
	}
	if err := validateRate("margin", margin); err != nil {
		return nil, err
	}
	if err := validateRate("overhead", overhead); err != nil {
		return nil, err
	}
	for _, item := range p.Items {
		if err := validateQuantity(item.Quantity); err != nil {
			return nil, err
		}
	}

	compositionsCol, err := app.FindCollectionByNameOrId("compositions")
	if err != nil {
		return nil, fmt.Errorf("compositions collection not found: %w", err)
	}
	itemsCol, err := app.FindCollectionByNameOrId("composition_items")
	if err != nil {
		return nil, fmt.Errorf("composition_items collection not found: %w", err)
	}

	var record *core.Record
	err = app.RunInTransaction(func(txApp core.App) error {
		record = core.NewRecord(compositionsCol)
		record.Set("code", code)
		record.Set("name", p.Name)
		record.Set("description", p.Description)
		record.Set("unit", p.Unit)
		record.Set("margin", margin)
		record.Set("overhead", overhead)
		record.Set("total_price", 0)
		record.Set("is_active", true)

		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save composition %s: %w", code, err)
		}

		for i, item := range p.Items {
			if err := itemExists(txApp, item.Kind, item.ItemID); err != nil {
				return err
			}

			itemRecord := core.NewRecord(itemsCol)
			itemRecord.Set("composition", record.Id)
			itemRecord.Set("item_type", string(item.Kind))
			itemRecord.Set("item_id", item.ItemID)
			itemRecord.Set("quantity", item.Quantity)
			itemRecord.Set("sort_order", i+1)

			if err := txApp.Save(itemRecord); err != nil {
				return fmt.Errorf("save composition item %d: %w", i+1, err)
			}
		}

		record, err = RecalculateComposition(txApp, record.Id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// UpdateComposition applies a partial update and recomputes the total price.
func UpdateComposition(app core.App, id string, u CompositionUpdate) (*core.Record, error) {
	record, err := app.FindRecordById("compositions", id)
	if err != nil {
		return nil, fmt.Errorf("composition %s not found: %w", id, err)
	}

	if u.Code != nil && *u.Code != record.GetString("code") {
		if codeInUse(app, "compositions", *u.Code, id) {
			return nil, fmt.Errorf("%w: composition %q", ErrDuplicateCode, *u.Code)
		}
		record.Set("code", *u.Code)
	}
	if u.Name != nil {
		record.Set("name", *u.Name)
	}
	if u.Description != nil {
		record.Set("description", *u.Description)
	}
	if u.Unit != nil {
		record.Set("unit", *u.Unit)
	}
	if u.Margin != nil {
		if err := validateRate("margin", *u.Margin); err != nil {
			return nil, err
		}
		record.Set("margin", *u.Margin)
	}
	if u.Overhead != nil {
		if err := validateRate("overhead", *u.Overhead); err != nil {
			return nil, err
		}
		record.Set("overhead", *u.Overhead)
	}

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("save composition %s: %w", id, err)
	}

	return RecalculateComposition(app, id)
}

// AddCompositionItem appends an item to a composition and recomputes its
// total price. The referent must exist in the collection its kind names.
func AddCompositionItem(app core.App, compositionID string, item CompositionItemParams) (*core.Record, error) {
	if err := validateQuantity(item.Quantity); err != nil {
		return nil, err
	}
	if _, err := app.FindRecordById("compositions", compositionID); err != nil {
		return nil, fmt.Errorf("composition %s not found: %w", compositionID, err)
	}
	if err := itemExists(app, item.Kind, item.ItemID); err != nil {
		return nil, err
	}

	itemsCol, err := app.FindCollectionByNameOrId("composition_items")
	if err != nil {
		return nil, fmt.Errorf("composition_items collection not found: %w", err)
	}

	existing, _ := app.FindRecordsByFilter("composition_items",
		"composition = {:id}", "-sort_order", 1, 0, map[string]any{"id": compositionID})
	nextOrder := 1
	if len(existing) > 0 {
		nextOrder = int(existing[0].GetFloat("sort_order")) + 1
	}

	itemRecord := core.NewRecord(itemsCol)
	itemRecord.Set("composition", compositionID)
	itemRecord.Set("item_type", string(item.Kind))
	itemRecord.Set("item_id", item.ItemID)
	itemRecord.Set("quantity", item.Quantity)
	itemRecord.Set("sort_order", nextOrder)

	if err := app.Save(itemRecord); err != nil {
		return nil, fmt.Errorf("save composition item: %w", err)
	}

	return RecalculateComposition(app, compositionID)
}

// UpdateCompositionItem changes an item's quantity and recomputes the
// owning composition.
func UpdateCompositionItem(app core.App, itemID string, quantity float64) (*core.Record, error) {
	itemRecord, err := app.FindRecordById("composition_items", itemID)
	if err != nil {
		return nil, fmt.Errorf("composition item %s not found: %w", itemID, err)
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	itemRecord.Set("quantity", quantity)
	if err := app.Save(itemRecord); err != nil {
		return nil, fmt.Errorf("save composition item %s: %w", itemID, err)
	}

	return RecalculateComposition(app, itemRecord.GetString("composition"))
}

// RemoveCompositionItem deletes an item and recomputes the owning
// composition.
func RemoveCompositionItem(app core.App, itemID string) (*core.Record, error) {
	itemRecord, err := app.FindRecordById("composition_items", itemID)
	if err != nil {
		return nil, fmt.Errorf("composition item %s not found: %w", itemID, err)
	}
	compositionID := itemRecord.GetString("composition")

	if err := app.Delete(itemRecord); err != nil {
		return nil, fmt.Errorf("delete composition item %s: %w", itemID, err)
	}

	return RecalculateComposition(app, compositionID)
}

// RecalculateComposition recomputes total_price from the composition's
// current items, at current material prices and stored article prices, and
// persists it. Stale article prices are read as-is; refresh the article
// first if it matters.
func RecalculateComposition(app core.App, compositionID string) (*core.Record, error) {
	record, err := app.FindRecordById("compositions", compositionID)
	if err != nil {
		return nil, fmt.Errorf("composition %s not found: %w", compositionID, err)
	}

	items, err := app.FindRecordsByFilter("composition_items",
		"composition = {:id}", "sort_order", 0, 0, map[string]any{"id": compositionID})
	if err != nil {
		return nil, fmt.Errorf("load composition items: %w", err)
	}

	input := services.CompositionInput{
		Margin:   decimal.NewFromFloat(record.GetFloat("margin")),
		Overhead: decimal.NewFromFloat(record.GetFloat("overhead")),
	}
	for _, item := range items {
		input.Items = append(input.Items, services.CompositionItem{
			Kind:     services.ItemKind(item.GetString("item_type")),
			ItemID:   item.GetString("item_id"),
			Quantity: decimal.NewFromFloat(item.GetFloat("quantity")),
		})
	}

	result := services.CalcCompositionPrice(input, materialPriceLookup(app), articlePriceLookup(app))

	record.Set("total_price", result.TotalPrice.InexactFloat64())

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("save composition %s: %w", compositionID, err)
	}
	return record, nil
}

// DeactivateComposition soft-deletes a composition.
func DeactivateComposition(app core.App, id string) error {
	return deactivate(app, "compositions", id)
}
