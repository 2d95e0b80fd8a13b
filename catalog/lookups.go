package catalog

import (
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"catalogpricing/services"
)

// materialPriceLookup adapts the materials collection to the pricing
// engine's lookup contract. Inactive materials still resolve: a line
// created before the material was retired keeps pricing against its last
// known price until the line itself is removed.
func materialPriceLookup(app core.App) services.MaterialPriceLookup {
	return func(materialID string) (decimal.Decimal, bool) {
		record, err := app.FindRecordById("materials", materialID)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(record.GetFloat("price_eur")), true
	}
}

// articlePriceLookup resolves an article id to its stored total_price.
// The stored value is used as-is; composition pricing never recomputes
// the article on the fly.
func articlePriceLookup(app core.App) services.ArticlePriceLookup {
	return func(articleID string) (decimal.Decimal, bool) {
		record, err := app.FindRecordById("articles", articleID)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(record.GetFloat("total_price")), true
	}
}
