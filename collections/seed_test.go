package collections_test

import (
	"testing"

	"catalogpricing/collections"
	"catalogpricing/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := testhelpers.TestConfig()

	if err := collections.Seed(app, cfg); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	counts := map[string]int{
		"materials":    12,
		"articles":     4,
		"compositions": 2,
		"services":     4,
	}
	for name, want := range counts {
		records, err := app.FindRecordsByFilter(name, "id != ''", "", 0, 0)
		if err != nil {
			t.Fatalf("query %s: %v", name, err)
		}
		if len(records) != want {
			t.Errorf("%s: got %d records, want %d", name, len(records), want)
		}
	}
}

func TestSeed_IsIdempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := testhelpers.TestConfig()

	if err := collections.Seed(app, cfg); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app, cfg); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	records, err := app.FindRecordsByFilter("materials", "id != ''", "", 0, 0)
	if err != nil {
		t.Fatalf("query materials: %v", err)
	}
	if len(records) != 12 {
		t.Errorf("got %d materials after double seed, want 12", len(records))
	}
}

func TestSeed_PricesAreComputed(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := testhelpers.TestConfig()

	if err := collections.Seed(app, cfg); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	articles, err := app.FindRecordsByFilter("articles", "id != ''", "code", 0, 0)
	if err != nil {
		t.Fatalf("query articles: %v", err)
	}
	for _, a := range articles {
		if a.GetFloat("total_price") <= 0 {
			t.Errorf("article %s has non-positive total_price %v", a.GetString("code"), a.GetFloat("total_price"))
		}
	}

	compositions, err := app.FindRecordsByFilter("compositions", "id != ''", "code", 0, 0)
	if err != nil {
		t.Fatalf("query compositions: %v", err)
	}
	for _, c := range compositions {
		if c.GetFloat("total_price") <= 0 {
			t.Errorf("composition %s has non-positive total_price %v", c.GetString("code"), c.GetFloat("total_price"))
		}
	}

	services, err := app.FindRecordsByFilter("services", "id != ''", "code", 0, 0)
	if err != nil {
		t.Fatalf("query services: %v", err)
	}
	for _, s := range services {
		want := s.GetFloat("price_gross") - s.GetFloat("price_net")
		if got := s.GetFloat("margin"); got != want {
			t.Errorf("service %s margin = %v, want %v", s.GetString("code"), got, want)
		}
	}
}
