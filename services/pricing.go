// Package services provides the pricing computations for the catalog:
// article and composition valuation, service margins, currency conversion
// and the spreadsheet import/export plumbing around them.
package services

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// round2 rounds a published monetary value to 2 decimal places using
// banker's rounding. Intermediate terms are never rounded.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// MaterialPriceLookup resolves a material id to its current EUR unit price.
// The second return reports whether the material exists.
type MaterialPriceLookup func(materialID string) (decimal.Decimal, bool)

// ArticlePriceLookup resolves an article id to its stored total price.
type ArticlePriceLookup func(articleID string) (decimal.Decimal, bool)

// MaterialLine is one material requirement of an article.
type MaterialLine struct {
	MaterialID   string
	Quantity     decimal.Decimal
	WastePercent decimal.Decimal
}

// ArticleInput carries the cost inputs of an article.
type ArticleInput struct {
	LaborCost decimal.Decimal
	Margin    decimal.Decimal
	Overhead  decimal.Decimal
	Lines     []MaterialLine
}

// ArticlePriceResult holds the derived monetary fields of an article.
// All three values are rounded to 2dp independently.
type ArticlePriceResult struct {
	MaterialCost decimal.Decimal
	TotalCost    decimal.Decimal
	TotalPrice   decimal.Decimal
}

// CalcArticlePrice values an article from its material lines and labor cost.
//
//	line_cost      = price_eur * quantity * (1 + waste_percent)
//	material_cost  = sum(line_cost)
//	total_cost     = material_cost + labor_cost
//	total_price    = total_cost * (1 + overhead) * (1 + margin)
//
// Lines whose material cannot be resolved contribute nothing; referential
// integrity is the caller's concern and was checked when the line was
// created. The function is pure: same inputs, same outputs, no IO.
func CalcArticlePrice(article ArticleInput, materialPrice MaterialPriceLookup) ArticlePriceResult {
	materialCost := decimal.Zero
	for _, line := range article.Lines {
		price, ok := materialPrice(line.MaterialID)
		if !ok {
			continue
		}
		lineCost := price.Mul(line.Quantity).Mul(one.Add(line.WastePercent))
		materialCost = materialCost.Add(lineCost)
	}

	totalCost := materialCost.Add(article.LaborCost)
	totalPrice := totalCost.Mul(one.Add(article.Overhead)).Mul(one.Add(article.Margin))

	return ArticlePriceResult{
		MaterialCost: round2(materialCost),
		TotalCost:    round2(totalCost),
		TotalPrice:   round2(totalPrice),
	}
}

// CompositionInput carries the cost inputs of a composition.
type CompositionInput struct {
	Margin   decimal.Decimal
	Overhead decimal.Decimal
	Items    []CompositionItem
}

// CompositionPriceResult holds the derived monetary fields of a composition.
type CompositionPriceResult struct {
	TotalCost  decimal.Decimal
	TotalPrice decimal.Decimal
}

// CalcCompositionPrice values a composition from its items. Material items
// use the material's current EUR price, article items use the article's
// stored total price as-is: a stale article price stays stale until the
// article itself is recalculated. Items whose reference cannot be resolved
// are skipped, mirroring CalcArticlePrice.
func CalcCompositionPrice(comp CompositionInput, materialPrice MaterialPriceLookup, articlePrice ArticlePriceLookup) CompositionPriceResult {
	totalCost := decimal.Zero
	for _, item := range comp.Items {
		unitPrice, ok := ResolveItemUnitPrice(item, materialPrice, articlePrice)
		if !ok {
			continue
		}
		totalCost = totalCost.Add(unitPrice.Mul(item.Quantity))
	}

	totalPrice := totalCost.Mul(one.Add(comp.Overhead)).Mul(one.Add(comp.Margin))

	return CompositionPriceResult{
		TotalCost:  round2(totalCost),
		TotalPrice: round2(totalPrice),
	}
}

// CalcServiceMargin derives a flat-rate service's margin from its net and
// gross prices. The result can be negative when gross < net.
func CalcServiceMargin(priceNet, priceGross decimal.Decimal) decimal.Decimal {
	return round2(priceGross.Sub(priceNet))
}
