package catalog

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"catalogpricing/services"
)

// ServiceParams are the caller-supplied fields of a new flat-rate service.
// The margin is derived from net and gross, never accepted.
type ServiceParams struct {
	Code        string
	Name        string
	Description string
	Unit        string
	PriceNet    float64
	PriceGross  float64
}

// ServiceUpdate holds the mutable fields of a service; nil means leave
// unchanged.
type ServiceUpdate struct {
	Code        *string
	Name        *string
	Description *string
	Unit        *string
	PriceNet    *float64
	PriceGross  *float64
}

// CreateService validates and stores a new flat-rate service. The margin is
// recorded as gross minus net; a gross below net yields a negative margin,
// which is a legitimate loss-leader, not an error.
func CreateService(app core.App, p ServiceParams) (*core.Record, error) {
	code, err := checkNewCode(app, "services", p.Code)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, fmt.Errorf("service %s: name is required", code)
	}
	if err := validatePrice("price_net", p.PriceNet); err != nil {
		return nil, err
	}
	if err := validatePrice("price_gross", p.PriceGross); err != nil {
		return nil, err
	}

	col, err := app.FindCollectionByNameOrId("services")
	if err != nil {
		return nil, fmt.Errorf("services collection not found: %w", err)
	}

	margin := services.CalcServiceMargin(
		decimal.NewFromFloat(p.PriceNet),
		decimal.NewFromFloat(p.PriceGross),
	)

	unit := p.Unit
	if unit == "" {
		unit = "ft"
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name", p.Name)
	record.Set("description", p.Description)
	record.Set("unit", unit)
	record.Set("price_net", p.PriceNet)
	record.Set("price_gross", p.PriceGross)
	record.Set("margin", margin.InexactFloat64())
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("save service %s: %w", code, err)
	}
	return record, nil
}

// UpdateService applies a partial update and recomputes the margin from the
// resulting net and gross prices.
func UpdateService(app core.App, id string, u ServiceUpdate) (*core.Record, error) {
	record, err := app.FindRecordById("services", id)
	if err != nil {
		return nil, fmt.Errorf("service %s not found: %w", id, err)
	}

	if u.Code != nil && *u.Code != record.GetString("code") {
		if codeInUse(app, "services", *u.Code, id) {
			return nil, fmt.Errorf("%w: service %q", ErrDuplicateCode, *u.Code)
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
	if u.PriceNet != nil {
		if err := validatePrice("price_net", *u.PriceNet); err != nil {
			return nil, err
		}
		record.Set("price_net", *u.PriceNet)
	}
	if u.PriceGross != nil {
		if err := validatePrice("price_gross", *u.PriceGross); err != nil {
			return nil, err
		}
		record.Set("price_gross", *u.PriceGross)
	}

	margin := services.CalcServiceMargin(
		decimal.NewFromFloat(record.GetFloat("price_net")),
		decimal.NewFromFloat(record.GetFloat("price_gross")),
	)
	record.Set("margin", margin.InexactFloat64())

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("save service %s: %w", id, err)
	}
	return record, nil
}

// DeactivateService soft-deletes a service.
func DeactivateService(app core.App, id string) error {
	return deactivate(app, "services", id)
}
