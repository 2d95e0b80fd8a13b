package services

import "github.com/shopspring/decimal"

// ItemKind tags what a composition item points at. Only materials and
// articles can appear inside a composition; nesting compositions is not
// allowed, which is also why no cycle detection exists here. If a
// composition kind is ever added, resolution needs a visited set.
type ItemKind string

const (
	KindMaterial ItemKind = "material"
	KindArticle  ItemKind = "article"
)

// CompositionItem references a priced entity by kind and id. Ids live in
// separate namespaces per kind, so kind+id together form the reference; an
// id alone is ambiguous.
type CompositionItem struct {
	Kind     ItemKind
	ItemID   string
	Quantity decimal.Decimal
}

// ResolveItemUnitPrice returns the current unit price of a composition
// item: the material's EUR price for material items, the article's stored
// total price for article items. ok is false when the kind is unknown or
// the referenced entity does not exist.
func ResolveItemUnitPrice(item CompositionItem, materialPrice MaterialPriceLookup, articlePrice ArticlePriceLookup) (decimal.Decimal, bool) {
	switch item.Kind {
	case KindMaterial:
		return materialPrice(item.ItemID)
	case KindArticle:
		return articlePrice(item.ItemID)
	default:
		return decimal.Decimal{}, false
	}
}
