package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func lookupFrom(prices map[string]string) MaterialPriceLookup {
	return func(id string) (decimal.Decimal, bool) {
		raw, ok := prices[id]
		if !ok {
			return decimal.Decimal{}, false
		}
		return dec(raw), true
	}
}

func articleLookupFrom(prices map[string]string) ArticlePriceLookup {
	return func(id string) (decimal.Decimal, bool) {
		raw, ok := prices[id]
		if !ok {
			return decimal.Decimal{}, false
		}
		return dec(raw), true
	}
}

func TestCalcArticlePrice(t *testing.T) {
	prices := map[string]string{
		"m1": "10.00",
		"m2": "3.50",
	}

	tests := []struct {
		name             string
		input            ArticleInput
		wantMaterialCost string
		wantTotalCost    string
		wantTotalPrice   string
	}{
		{
			name: "single_line_with_waste",
			input: ArticleInput{
				LaborCost: dec("20.00"),
				Margin:    dec("0.30"),
				Overhead:  dec("0.10"),
				Lines: []MaterialLine{
					{MaterialID: "m1", Quantity: dec("5"), WastePercent: dec("0.10")},
				},
			},
			wantMaterialCost: "55.00",
			wantTotalCost:    "75.00",
			wantTotalPrice:   "107.25",
		},
		{
			name: "no_lines_labor_only",
			input: ArticleInput{
				LaborCost: dec("20.00"),
				Margin:    dec("0.30"),
				Overhead:  dec("0.10"),
			},
			wantMaterialCost: "0.00",
			wantTotalCost:    "20.00",
			wantTotalPrice:   "28.60",
		},
		{
			name: "zero_rates",
			input: ArticleInput{
				LaborCost: dec("10.00"),
				Lines: []MaterialLine{
					{MaterialID: "m2", Quantity: dec("2"), WastePercent: dec("0")},
				},
			},
			wantMaterialCost: "7.00",
			wantTotalCost:    "17.00",
			wantTotalPrice:   "17.00",
		},
		{
			name: "missing_material_skipped",
			input: ArticleInput{
				LaborCost: dec("20.00"),
				Margin:    dec("0.30"),
				Overhead:  dec("0.10"),
				Lines: []MaterialLine{
					{MaterialID: "m1", Quantity: dec("5"), WastePercent: dec("0.10")},
					{MaterialID: "ghost", Quantity: dec("100"), WastePercent: dec("0")},
				},
			},
			wantMaterialCost: "55.00",
			wantTotalCost:    "75.00",
			wantTotalPrice:   "107.25",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcArticlePrice(tt.input, lookupFrom(prices))
			if got.MaterialCost.StringFixed(2) != tt.wantMaterialCost {
				t.Errorf("MaterialCost = %s, want %s", got.MaterialCost, tt.wantMaterialCost)
			}
			if got.TotalCost.StringFixed(2) != tt.wantTotalCost {
				t.Errorf("TotalCost = %s, want %s", got.TotalCost, tt.wantTotalCost)
			}
			if got.TotalPrice.StringFixed(2) != tt.wantTotalPrice {
				t.Errorf("TotalPrice = %s, want %s", got.TotalPrice, tt.wantTotalPrice)
			}
		})
	}
}

func TestCalcArticlePriceIsDeterministic(t *testing.T) {
	prices := map[string]string{"m1": "12.34", "m2": "0.07"}
	input := ArticleInput{
		LaborCost: dec("9.99"),
		Margin:    dec("0.25"),
		Overhead:  dec("0.08"),
		Lines: []MaterialLine{
			{MaterialID: "m1", Quantity: dec("3.5"), WastePercent: dec("0.05")},
			{MaterialID: "m2", Quantity: dec("120"), WastePercent: dec("0")},
		},
	}

	first := CalcArticlePrice(input, lookupFrom(prices))
	for i := 0; i < 5; i++ {
		again := CalcArticlePrice(input, lookupFrom(prices))
		if !again.TotalPrice.Equal(first.TotalPrice) {
			t.Fatalf("run %d: TotalPrice = %s, want %s", i, again.TotalPrice, first.TotalPrice)
		}
	}
}

func TestCalcArticlePriceWasteIncreasesCost(t *testing.T) {
	prices := map[string]string{"m1": "10.00"}
	base := ArticleInput{
		Lines: []MaterialLine{{MaterialID: "m1", Quantity: dec("4"), WastePercent: dec("0")}},
	}
	withWaste := ArticleInput{
		Lines: []MaterialLine{{MaterialID: "m1", Quantity: dec("4"), WastePercent: dec("0.15")}},
	}

	got := CalcArticlePrice(base, lookupFrom(prices))
	gotWaste := CalcArticlePrice(withWaste, lookupFrom(prices))

	if !gotWaste.MaterialCost.GreaterThan(got.MaterialCost) {
		t.Errorf("waste did not increase material cost: %s vs %s", gotWaste.MaterialCost, got.MaterialCost)
	}
	if gotWaste.MaterialCost.StringFixed(2) != "46.00" {
		t.Errorf("MaterialCost with waste = %s, want 46.00", gotWaste.MaterialCost)
	}
}

func TestCalcCompositionPrice(t *testing.T) {
	materials := map[string]string{"m1": "5.00"}
	articles := map[string]string{"a1": "107.25"}

	tests := []struct {
		name           string
		input          CompositionInput
		wantTotalCost  string
		wantTotalPrice string
	}{
		{
			name: "material_plus_article",
			input: CompositionInput{
				Margin: dec("0.20"),
				Items: []CompositionItem{
					{Kind: KindMaterial, ItemID: "m1", Quantity: dec("2")},
					{Kind: KindArticle, ItemID: "a1", Quantity: dec("1")},
				},
			},
			wantTotalCost:  "117.25",
			wantTotalPrice: "140.70",
		},
		{
			name:           "empty_composition",
			input:          CompositionInput{Margin: dec("0.20"), Overhead: dec("0.10")},
			wantTotalCost:  "0.00",
			wantTotalPrice: "0.00",
		},
		{
			name: "missing_references_skipped",
			input: CompositionInput{
				Items: []CompositionItem{
					{Kind: KindMaterial, ItemID: "gone", Quantity: dec("10")},
					{Kind: KindArticle, ItemID: "also-gone", Quantity: dec("10")},
					{Kind: KindMaterial, ItemID: "m1", Quantity: dec("3")},
				},
			},
			wantTotalCost:  "15.00",
			wantTotalPrice: "15.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcCompositionPrice(tt.input, lookupFrom(materials), articleLookupFrom(articles))
			if got.TotalCost.StringFixed(2) != tt.wantTotalCost {
				t.Errorf("TotalCost = %s, want %s", got.TotalCost, tt.wantTotalCost)
			}
			if got.TotalPrice.StringFixed(2) != tt.wantTotalPrice {
				t.Errorf("TotalPrice = %s, want %s", got.TotalPrice, tt.wantTotalPrice)
			}
		})
	}
}

func TestCalcCompositionPriceOrderIndependent(t *testing.T) {
	materials := map[string]string{"m1": "5.00", "m2": "7.77"}
	articles := map[string]string{"a1": "107.25"}

	items := []CompositionItem{
		{Kind: KindMaterial, ItemID: "m1", Quantity: dec("2")},
		{Kind: KindArticle, ItemID: "a1", Quantity: dec("1")},
		{Kind: KindMaterial, ItemID: "m2", Quantity: dec("3")},
	}
	reversed := []CompositionItem{items[2], items[1], items[0]}

	a := CalcCompositionPrice(CompositionInput{Margin: dec("0.20"), Items: items},
		lookupFrom(materials), articleLookupFrom(articles))
	b := CalcCompositionPrice(CompositionInput{Margin: dec("0.20"), Items: reversed},
		lookupFrom(materials), articleLookupFrom(articles))

	if !a.TotalPrice.Equal(b.TotalPrice) {
		t.Errorf("item order changed the price: %s vs %s", a.TotalPrice, b.TotalPrice)
	}
}

func TestCalcCompositionPriceUsesStoredArticlePrice(t *testing.T) {
	// The article lookup returns the stored price, whatever it is; the
	// composition must not try to revalue it.
	articles := map[string]string{"a1": "999.99"}
	got := CalcCompositionPrice(CompositionInput{
		Items: []CompositionItem{{Kind: KindArticle, ItemID: "a1", Quantity: dec("2")}},
	}, lookupFrom(nil), articleLookupFrom(articles))

	if got.TotalCost.StringFixed(2) != "1999.98" {
		t.Errorf("TotalCost = %s, want 1999.98", got.TotalCost)
	}
}

func TestCalcServiceMargin(t *testing.T) {
	tests := []struct {
		name  string
		net   string
		gross string
		want  string
	}{
		{"positive", "100.00", "130.00", "30.00"},
		{"negative", "100.00", "90.00", "-10.00"},
		{"zero", "50.00", "50.00", "0.00"},
		{"rounded", "10.005", "20.01", "10.00"}, // banker's rounding on 10.005
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcServiceMargin(dec(tt.net), dec(tt.gross))
			if got.StringFixed(2) != tt.want {
				t.Errorf("CalcServiceMargin(%s, %s) = %s, want %s", tt.net, tt.gross, got, tt.want)
			}
		})
	}
}

func TestRound2BankersRounding(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2.675", "2.68"},
		{"2.665", "2.66"},
		{"2.5", "2.50"},
		{"0.125", "0.12"},
		{"0.135", "0.14"},
	}
	for _, tt := range tests {
		got := round2(dec(tt.in))
		if got.StringFixed(2) != tt.want {
			t.Errorf("round2(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
