package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestResolveItemUnitPrice(t *testing.T) {
	// Same id in both namespaces, different prices: kind decides.
	materials := map[string]string{"x1": "5.00"}
	articles := map[string]string{"x1": "80.00"}

	tests := []struct {
		name   string
		item   CompositionItem
		want   string
		wantOK bool
	}{
		{"material_kind", CompositionItem{Kind: KindMaterial, ItemID: "x1"}, "5.00", true},
		{"article_kind", CompositionItem{Kind: KindArticle, ItemID: "x1"}, "80.00", true},
		{"missing_material", CompositionItem{Kind: KindMaterial, ItemID: "nope"}, "", false},
		{"missing_article", CompositionItem{Kind: KindArticle, ItemID: "nope"}, "", false},
		{"unknown_kind", CompositionItem{Kind: "composition", ItemID: "x1"}, "", false},
		{"blank_kind", CompositionItem{ItemID: "x1"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveItemUnitPrice(tt.item, lookupFrom(materials), articleLookupFrom(articles))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.StringFixed(2) != tt.want {
				t.Errorf("price = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveItemUnitPriceZeroPrice(t *testing.T) {
	// A zero-priced material resolves successfully; free is a price.
	materials := map[string]string{"m1": "0"}
	got, ok := ResolveItemUnitPrice(
		CompositionItem{Kind: KindMaterial, ItemID: "m1", Quantity: decimal.NewFromInt(1)},
		lookupFrom(materials), articleLookupFrom(nil))
	if !ok {
		t.Fatal("expected zero-priced material to resolve")
	}
	if !got.IsZero() {
		t.Errorf("price = %s, want 0", got)
	}
}
