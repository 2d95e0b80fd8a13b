package catalog

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"catalogpricing/config"
	"catalogpricing/services"
)

// MaterialParams are the caller-supplied fields of a new material.
// PriceLEI may be left nil, in which case it is derived from PriceEUR at
// the configured exchange rate.
type MaterialParams struct {
	Code        string
	NameFR      string
	NameRO      string
	Description string
	Unit        string
	Supplier    string
	PriceEUR    float64
	PriceLEI    *float64
}

// MaterialUpdate holds the mutable fields of a material; nil means leave
// unchanged. Setting PriceEUR without PriceLEI re-derives the LEI price.
type MaterialUpdate struct {
	NameFR      *string
	NameRO      *string
	Description *string
	Unit        *string
	Supplier    *string
	PriceEUR    *float64
	PriceLEI    *float64
}

// CreateMaterial validates and stores a new material. The code must be
// unique across active and inactive materials; price_date is stamped with
// the creation time.
func CreateMaterial(app core.App, cfg *config.Config, p MaterialParams) (*core.Record, error) {
	code, err := checkNewCode(app, "materials", p.Code)
	if err != nil {
		return nil, err
	}
	if p.NameFR == "" {
		return nil, fmt.Errorf("material %s: name_fr is required", code)
	}
	if err := validatePrice("price_eur", p.PriceEUR); err != nil {
		return nil, err
	}

	priceEUR := decimal.NewFromFloat(p.PriceEUR)
	var priceLEI decimal.Decimal
	if p.PriceLEI != nil {
		if err := validatePrice("price_lei", *p.PriceLEI); err != nil {
			return nil, err
		}
		priceLEI = decimal.NewFromFloat(*p.PriceLEI)
	} else {
		priceLEI = services.ConvertEURToLEI(priceEUR, cfg.EURLEIRate)
	}

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return nil, fmt.Errorf("materials collection not found: %w", err)
	}

	unit := p.Unit
	if unit == "" {
		unit = "u"
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name_fr", p.NameFR)
	record.Set("name_ro", p.NameRO)
	record.Set("description", p.Description)
	record.Set("unit", unit)
	record.Set("price_eur", p.PriceEUR)
	record.Set("price_lei", priceLEI.InexactFloat64())
	record.Set("price_date", time.Now().UTC().Format(time.RFC3339))
	record.Set("supplier", p.Supplier)
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("save material %s: %w", code, err)
	}
	return record, nil
}

// UpdateMaterial applies a partial update. Any change to the EUR price
// refreshes price_date and, unless an explicit LEI price accompanies it,
// re-derives price_lei. Dependent articles are NOT recomputed here; price
// propagation is an explicit, caller-triggered recalculation.
func UpdateMaterial(app core.App, cfg *config.Config, id string, u MaterialUpdate) (*core.Record, error) {
	record, err := app.FindRecordById("materials", id)
	if err != nil {
		return nil, fmt.Errorf("material %s not found: %w", id, err)
	}

	if u.NameFR != nil {
		record.Set("name_fr", *u.NameFR)
	}
	if u.NameRO != nil {
		record.Set("name_ro", *u.NameRO)
	}
	if u.Description != nil {
		record.Set("description", *u.Description)
	}
	if u.Unit != nil {
		record.Set("unit", *u.Unit)
	}
	if u.Supplier != nil {
		record.Set("supplier", *u.Supplier)
	}

	if u.PriceEUR != nil {
		if err := validatePrice("price_eur", *u.PriceEUR); err != nil {
			return nil, err
		}
		record.Set("price_eur", *u.PriceEUR)
		record.Set("price_date", time.Now().UTC().Format(time.RFC3339))

		if u.PriceLEI == nil {
			derived := services.ConvertEURToLEI(decimal.NewFromFloat(*u.PriceEUR), cfg.EURLEIRate)
			record.Set("price_lei", derived.InexactFloat64())
		}
	}
	if u.PriceLEI != nil {
		if err := validatePrice("price_lei", *u.PriceLEI); err != nil {
			return nil, err
		}
		record.Set("price_lei", *u.PriceLEI)
	}

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("save material %s: %w", id, err)
	}
	return record, nil
}

// DeactivateMaterial soft-deletes a material. Article lines referencing it
// keep pricing against its last stored price until they are removed.
func DeactivateMaterial(app core.App, id string) error {
	return deactivate(app, "materials", id)
}
