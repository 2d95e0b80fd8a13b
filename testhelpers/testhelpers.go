// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"catalogpricing/collections"
	"catalogpricing/config"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// TestConfig returns a fixed pricing configuration so test expectations do
// not depend on the environment.
func TestConfig() *config.Config {
	return &config.Config{
		CompanyName:     "Test Company",
		EURLEIRate:      decimal.RequireFromString("4.85"),
		DefaultMargin:   decimal.RequireFromString("0.30"),
		DefaultOverhead: decimal.RequireFromString("0.10"),
	}
}

// CreateTestMaterial creates a material record with the given code and EUR
// price and returns it.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, code string, priceEUR float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name_fr", "Matériau "+code)
	record.Set("unit", "u")
	record.Set("price_eur", priceEUR)
	record.Set("price_lei", priceEUR*4.85)
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestArticle creates an article record with stored prices and returns
// it. The derived fields are set directly; use the catalog package when the
// test needs engine-computed values.
func CreateTestArticle(t *testing.T, app *pocketbase.PocketBase, code string, totalPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("articles")
	if err != nil {
		t.Fatalf("failed to find articles collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name", "Article "+code)
	record.Set("unit", "m2")
	record.Set("margin", 0.30)
	record.Set("overhead", 0.10)
	record.Set("total_price", totalPrice)
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test article: %v", err)
	}

	return record
}

// CreateTestArticleLine creates an article_materials record linking an
// article to a material.
func CreateTestArticleLine(t *testing.T, app *pocketbase.PocketBase, articleID, materialID string, qty, waste float64, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("article_materials")
	if err != nil {
		t.Fatalf("failed to find article_materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("article", articleID)
	record.Set("material", materialID)
	record.Set("quantity", qty)
	record.Set("waste_percent", waste)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test article line: %v", err)
	}

	return record
}

// CreateTestComposition creates a composition record and returns it.
func CreateTestComposition(t *testing.T, app *pocketbase.PocketBase, code string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("compositions")
	if err != nil {
		t.Fatalf("failed to find compositions collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name", "Composition "+code)
	record.Set("unit", "m2")
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test composition: %v", err)
	}

	return record
}

// CreateTestService creates a flat-rate service record with the margin
// already derived from net and gross.
func CreateTestService(t *testing.T, app *pocketbase.PocketBase, code string, net, gross float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("services")
	if err != nil {
		t.Fatalf("failed to find services collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name", "Service "+code)
	record.Set("unit", "ft")
	record.Set("price_net", net)
	record.Set("price_gross", gross)
	record.Set("margin", gross-net)
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test service: %v", err)
	}

	return record
}
