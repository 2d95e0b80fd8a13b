package catalog

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"catalogpricing/config"
	"catalogpricing/services"
)

// ArticleLineParams describes one material requirement of an article.
type ArticleLineParams struct {
	MaterialID   string
	Quantity     float64
	WastePercent float64
}

// ArticleParams are the caller-supplied fields of a new article. Margin and
// Overhead fall back to the configured defaults when nil. material_cost and
// total_price are derived, never accepted.
type ArticleParams struct {
	Code        string
	Name        string
	Description string
	Unit        string
	LaborCost   float64
	Margin      *float64
	Overhead    *float64
	Materials   []ArticleLineParams
}

// ArticleUpdate holds the mutable scalar fields of an article; nil means
// leave unchanged. Material lines are managed through the line operations.
type ArticleUpdate struct {
	Code        *string
	Name        *string
	Description *string
	Unit        *string
	LaborCost   *float64
	Margin      *float64
	Overhead    *float64
}

// CreateArticle validates and stores a new article with its material lines
// and computes its derived prices in the same transaction. Every referenced
// material must exist; a dangling reference fails the whole create.
func CreateArticle(app core.App, cfg *config.Config, p ArticleParams) (*core.Record, error) {
	code, err := checkNewCode(app, "articles", p.Code)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, fmt.Errorf("article %s: name is required", code)
	}
	if err := validatePrice("labor_cost", p.LaborCost); err != nil {
		return nil, err
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
	for _, line := range p.Materials {
		if err := validateQuantity(line.Quantity); err != nil {
			return nil, err
		}
		if err := validateRate("waste_percent", line.WastePercent); err != nil {
			return nil, err
		}
	}

	articlesCol, err := app.FindCollectionByNameOrId("articles")
	if err != nil {
		return nil, fmt.Errorf("articles collection not found: %w", err)
	}
	linesCol, err := app.FindCollectionByNameOrId("article_materials")
	if err != nil {
		return nil, fmt.Errorf("article_materials collection not found: %w", err)
	}

	var record *core.Record
	err = app.RunInTransaction(func(txApp core.App) error {
		record = core.NewRecord(articlesCol)
		record.Set("code", code)
		record.Set("name", p.Name)
		record.Set("description", p.Description)
		record.Set("unit", p.Unit)
		record.Set("labor_cost", p.LaborCost)
		record.Set("margin", margin)
		record.Set("overhead", overhead)
		record.Set("material_cost", 0)
		record.Set("total_price", 0)
		record.Set("is_active", true)

		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save article %s: %w", code, err)
		}

		for i, line := range p.Materials {
			if _, err := txApp.FindRecordById("materials", line.MaterialID); err != nil {
				return fmt.Errorf("%w: material %s", ErrMissingReference, line.MaterialID)
			}

			lineRecord := core.NewRecord(linesCol)
			lineRecord.Set("article", record.Id)
			lineRecord.Set("material", line.MaterialID)
			lineRecord.Set("quantity", line.Quantity)
			lineRecord.Set("waste_percent", line.WastePercent)
			lineRecord.Set("sort_order", i+1)

			if err := txApp.Save(lineRecord); err != nil {
				return fmt.Errorf("save article line %d: %w", i+1, err)
			}
		}

		record, err = RecalculateArticle(txApp, record.Id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// UpdateArticle applies a partial update and recomputes the derived prices.
func UpdateArticle(app core.App, id string, u ArticleUpdate) (*core.Record, error) {
	record, err := app.FindRecordById("articles", id)
	if err != nil {
		return nil, fmt.Errorf("article %s not found: %w", id, err)
	}

	if u.Code != nil && *u.Code != record.GetString("code") {
		if codeInUse(app, "articles", *u.Code, id) {
			return nil, fmt.Errorf("%w: article %q", ErrDuplicateCode, *u.Code)
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
	if u.LaborCost != nil {
		if err := validatePrice("labor_cost", *u.LaborCost); err != nil {
			return nil, err
		}
		record.Set("labor_cost", *u.LaborCost)
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
		return nil, fmt.Errorf("save article %s: %w", id, err)
	}

	return RecalculateArticle(app, id)
}

// AddArticleMaterial appends a material line to an article and recomputes
// its prices. The referenced material must exist.
func AddArticleMaterial(app core.App, articleID string, line ArticleLineParams) (*core.Record, error) {
	if err := validateQuantity(line.Quantity); err != nil {
		return nil, err
	}
	if err := validateRate("waste_percent", line.WastePercent); err != nil {
		return nil, err
	}
	if _, err := app.FindRecordById("articles", articleID); err != nil {
		return nil, fmt.Errorf("article %s not found: %w", articleID, err)
	}
	if _, err := app.FindRecordById("materials", line.MaterialID); err != nil {
		return nil, fmt.Errorf("%w: material %s", ErrMissingReference, line.MaterialID)
	}

	linesCol, err := app.FindCollectionByNameOrId("article_materials")
	if err != nil {
		return nil, fmt.Errorf("article_materials collection not found: %w", err)
	}

	existing, _ := app.FindRecordsByFilter("article_materials",
		"article = {:id}", "-sort_order", 1, 0, map[string]any{"id": articleID})
	nextOrder := 1
	if len(existing) > 0 {
		nextOrder = int(existing[0].GetFloat("sort_order")) + 1
	}

	lineRecord := core.NewRecord(linesCol)
	lineRecord.Set("article", articleID)
	lineRecord.Set("material", line.MaterialID)
	lineRecord.Set("quantity", line.Quantity)
	lineRecord.Set("waste_percent", line.WastePercent)
	lineRecord.Set("sort_order", nextOrder)

	if err := app.Save(lineRecord); err != nil {
		return nil, fmt.Errorf("save article line: %w", err)
	}

	return RecalculateArticle(app, articleID)
}

// UpdateArticleMaterial changes a line's quantity and/or waste percent and
// recomputes the owning article.
func UpdateArticleMaterial(app core.App, lineID string, quantity, wastePercent *float64) (*core.Record, error) {
	lineRecord, err := app.FindRecordById("article_materials", lineID)
	if err != nil {
		return nil, fmt.Errorf("article line %s not found: %w", lineID, err)
	}

	if quantity != nil {
		if err := validateQuantity(*quantity); err != nil {
			return nil, err
		}
		lineRecord.Set("quantity", *quantity)
	}
	if wastePercent != nil {
		if err := validateRate("waste_percent", *wastePercent); err != nil {
			return nil, err
		}
		lineRecord.Set("waste_percent", *wastePercent)
	}

	if err := app.Save(lineRecord); err != nil {
		return nil, fmt.Errorf("save article line %s: %w", lineID, err)
	}

	return RecalculateArticle(app, lineRecord.GetString("article"))
}

// RemoveArticleMaterial deletes a line and recomputes the owning article.
func RemoveArticleMaterial(app core.App, lineID string) (*core.Record, error) {
	lineRecord, err := app.FindRecordById("article_materials", lineID)
	if err != nil {
		return nil, fmt.Errorf("article line %s not found: %w", lineID, err)
	}
	articleID := lineRecord.GetString("article")

	if err := app.Delete(lineRecord); err != nil {
		return nil, fmt.Errorf("delete article line %s: %w", lineID, err)
	}

	return RecalculateArticle(app, articleID)
}

// RecalculateArticle recomputes material_cost and total_price from the
// article's current lines and current material prices, and persists them.
// This is the only write path for those fields, and the explicit refresh
// point after upstream material price changes.
func RecalculateArticle(app core.App, articleID string) (*core.Record, error) {
	record, err := app.FindRecordById("articles", articleID)
	if err != nil {
		return nil, fmt.Errorf("article %s not found: %w", articleID, err)
	}

	lines, err := app.FindRecordsByFilter("article_materials",
		"article = {:id}", "sort_order", 0, 0, map[string]any{"id": articleID})
	if err != nil {
		return nil, fmt.Errorf("load article lines: %w", err)
	}

	input := services.ArticleInput{
		LaborCost: decimal.NewFromFloat(record.GetFloat("labor_cost")),
		Margin:    decimal.NewFromFloat(record.GetFloat("margin")),
		Overhead:  decimal.NewFromFloat(record.GetFloat("overhead")),
	}
	for _, line := range lines {
		input.Lines = append(input.Lines, services.MaterialLine{
			MaterialID:   line.GetString("material"),
			Quantity:     decimal.NewFromFloat(line.GetFloat("quantity")),
			WastePercent: decimal.NewFromFloat(line.GetFloat("waste_percent")),
		})
	}

	result := services.CalcArticlePrice(input, materialPriceLookup(app))

	record.Set("material_cost", result.MaterialCost.InexactFloat64())
	record.Set("total_price", result.TotalPrice.InexactFloat64())

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("save article %s: %w", articleID, err)
	}
	return record, nil
}

// DeactivateArticle soft-deletes an article. Compositions referencing it
// keep using its last computed price.
func DeactivateArticle(app core.App, id string) error {
	return deactivate(app, "articles", id)
}
