package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

// ImportSummary is the outcome of one reconciliation batch. Total counts
// the rows that landed (created + updated); error rows are reported but
// never abort the batch.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
	Total   int `json:"total"`
}

// ImportMaterials reconciles parsed price-matrix rows against the materials
// collection: rows matching an existing code update that material in place,
// unknown codes create new materials. A missing LEI price is derived from
// the EUR price at the configured rate. Rows with a blank code or an
// unparsable price are counted as errors and skipped.
//
// The whole batch runs inside a single transaction; per-row failures skip
// the row, only a failure before any row is processed (unreadable file,
// missing collection) aborts the import.
func ImportMaterials(app core.App, rows []map[string]string, eurToLEIRate decimal.Decimal) (*ImportSummary, error) {
	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return nil, fmt.Errorf("materials collection not found: %w", err)
	}

	summary := &ImportSummary{}

	err = app.RunInTransaction(func(txApp core.App) error {
		for i, rowData := range rows {
			rowNum := i + 2 // 1-indexed + header row

			code := strings.TrimSpace(rowData["code"])
			if code == "" {
				summary.Errors++
				continue
			}

			priceEUR, err := parsePrice(rowData["price_eur"])
			if err != nil {
				log.Printf("catalog_import: row %d (%s): bad price_eur: %v", rowNum, code, err)
				summary.Errors++
				continue
			}

			var priceLEI decimal.Decimal
			if raw := rowData["price_lei"]; raw != "" {
				priceLEI, err = parsePrice(raw)
				if err != nil {
					log.Printf("catalog_import: row %d (%s): bad price_lei: %v", rowNum, code, err)
					summary.Errors++
					continue
				}
			} else {
				priceLEI = ConvertEURToLEI(priceEUR, eurToLEIRate)
			}

			now := time.Now().UTC().Format(time.RFC3339)

			existing, _ := txApp.FindRecordsByFilter("materials",
				"code = {:code}", "", 1, 0, map[string]any{"code": code})

			if len(existing) > 0 {
				record := existing[0]
				setIfPresent(record, rowData, "name_fr")
				setIfPresent(record, rowData, "name_ro")
				setIfPresent(record, rowData, "description")
				setIfPresent(record, rowData, "unit")
				setIfPresent(record, rowData, "supplier")
				record.Set("price_eur", round2(priceEUR).InexactFloat64())
				record.Set("price_lei", round2(priceLEI).InexactFloat64())
				record.Set("price_date", now)

				if err := txApp.Save(record); err != nil {
					log.Printf("catalog_import: row %d (%s): save failed: %v", rowNum, code, err)
					summary.Errors++
					continue
				}
				summary.Updated++
			} else {
				record := core.NewRecord(col)
				record.Set("code", code)
				record.Set("name_fr", valueOr(rowData, "name_fr", code))
				record.Set("name_ro", rowData["name_ro"])
				record.Set("description", rowData["description"])
				record.Set("unit", valueOr(rowData, "unit", "u"))
				record.Set("price_eur", round2(priceEUR).InexactFloat64())
				record.Set("price_lei", round2(priceLEI).InexactFloat64())
				record.Set("price_date", now)
				record.Set("supplier", rowData["supplier"])
				record.Set("is_active", true)

				if err := txApp.Save(record); err != nil {
					log.Printf("catalog_import: row %d (%s): save failed: %v", rowNum, code, err)
					summary.Errors++
					continue
				}
				summary.Created++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("material import failed: %w", err)
	}

	summary.Total = summary.Created + summary.Updated
	return summary, nil
}

// ImportServices reconciles parsed service rows against the services
// collection using the same create-or-update-by-code policy as materials.
// The margin is recomputed from the imported net and gross prices.
func ImportServices(app core.App, rows []map[string]string) (*ImportSummary, error) {
	col, err := app.FindCollectionByNameOrId("services")
	if err != nil {
		return nil, fmt.Errorf("services collection not found: %w", err)
	}

	summary := &ImportSummary{}

	err = app.RunInTransaction(func(txApp core.App) error {
		for i, rowData := range rows {
			rowNum := i + 2

			code := strings.TrimSpace(rowData["code"])
			if code == "" {
				summary.Errors++
				continue
			}

			priceNet, err := parsePrice(rowData["price_net"])
			if err != nil {
				log.Printf("catalog_import: row %d (%s): bad price_net: %v", rowNum, code, err)
				summary.Errors++
				continue
			}
			priceGross, err := parsePrice(rowData["price_gross"])
			if err != nil {
				log.Printf("catalog_import: row %d (%s): bad price_gross: %v", rowNum, code, err)
				summary.Errors++
				continue
			}
			margin := CalcServiceMargin(priceNet, priceGross)

			existing, _ := txApp.FindRecordsByFilter("services",
				"code = {:code}", "", 1, 0, map[string]any{"code": code})

			if len(existing) > 0 {
				record := existing[0]
				setIfPresent(record, rowData, "name")
				setIfPresent(record, rowData, "description")
				setIfPresent(record, rowData, "unit")
				record.Set("price_net", round2(priceNet).InexactFloat64())
				record.Set("price_gross", round2(priceGross).InexactFloat64())
				record.Set("margin", margin.InexactFloat64())

				if err := txApp.Save(record); err != nil {
					log.Printf("catalog_import: row %d (%s): save failed: %v", rowNum, code, err)
					summary.Errors++
					continue
				}
				summary.Updated++
			} else {
				record := core.NewRecord(col)
				record.Set("code", code)
				record.Set("name", valueOr(rowData, "name", code))
				record.Set("description", rowData["description"])
				record.Set("unit", valueOr(rowData, "unit", "ft"))
				record.Set("price_net", round2(priceNet).InexactFloat64())
				record.Set("price_gross", round2(priceGross).InexactFloat64())
				record.Set("margin", margin.InexactFloat64())
				record.Set("is_active", true)

				if err := txApp.Save(record); err != nil {
					log.Printf("catalog_import: row %d (%s): save failed: %v", rowNum, code, err)
					summary.Errors++
					continue
				}
				summary.Created++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service import failed: %w", err)
	}

	summary.Total = summary.Created + summary.Updated
	return summary, nil
}

// parsePrice parses a cell value as a decimal amount. An empty cell means
// zero, matching the estimating team's workbooks where unpriced rows leave
// the column blank. Comma decimal separators are accepted.
func parsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	return decimal.NewFromString(raw)
}

// setIfPresent overwrites a record field only when the row carries a
// non-empty value for it, so partial rows do not blank existing data.
func setIfPresent(record *core.Record, rowData map[string]string, key string) {
	if v, ok := rowData[key]; ok && v != "" {
		record.Set(key, v)
	}
}

func valueOr(rowData map[string]string, key, fallback string) string {
	if v := rowData[key]; v != "" {
		return v
	}
	return fallback
}
