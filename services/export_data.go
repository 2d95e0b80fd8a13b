package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// MaterialRow is one material line of the exported price list.
type MaterialRow struct {
	Code     string
	Name     string
	Unit     string
	Supplier string
	PriceEUR float64
	PriceLEI float64
}

// ArticleRow is one article line of the exported price list.
type ArticleRow struct {
	Code         string
	Name         string
	Unit         string
	MaterialCost float64
	LaborCost    float64
	TotalPrice   float64
}

// CompositionRow is one composition line of the exported price list.
type CompositionRow struct {
	Code       string
	Name       string
	Unit       string
	TotalPrice float64
}

// ServiceRow is one flat-rate service line of the exported price list.
type ServiceRow struct {
	Code       string
	Name       string
	Unit       string
	PriceNet   float64
	PriceGross float64
	Margin     float64
}

// PriceListData holds everything needed to render a full catalog price
// list, in Excel or PDF form.
type PriceListData struct {
	CompanyName   string
	GeneratedDate string
	Materials     []MaterialRow
	Articles      []ArticleRow
	Compositions  []CompositionRow
	Services      []ServiceRow
}

// BuildPriceList assembles the current active catalog, ordered by code,
// into an exportable snapshot. Prices are read as stored; no recomputation
// happens on export.
func BuildPriceList(app core.App, companyName string) (PriceListData, error) {
	data := PriceListData{
		CompanyName:   companyName,
		GeneratedDate: time.Now().Format("2006-01-02"),
	}

	materials, err := app.FindRecordsByFilter("materials", "is_active = true", "code", 0, 0)
	if err != nil {
		return data, fmt.Errorf("load materials: %w", err)
	}
	for _, r := range materials {
		data.Materials = append(data.Materials, MaterialRow{
			Code:     r.GetString("code"),
			Name:     r.GetString("name_fr"),
			Unit:     r.GetString("unit"),
			Supplier: r.GetString("supplier"),
			PriceEUR: r.GetFloat("price_eur"),
			PriceLEI: r.GetFloat("price_lei"),
		})
	}

	articles, err := app.FindRecordsByFilter("articles", "is_active = true", "code", 0, 0)
	if err != nil {
		return data, fmt.Errorf("load articles: %w", err)
	}
	for _, r := range articles {
		data.Articles = append(data.Articles, ArticleRow{
			Code:         r.GetString("code"),
			Name:         r.GetString("name"),
			Unit:         r.GetString("unit"),
			MaterialCost: r.GetFloat("material_cost"),
			LaborCost:    r.GetFloat("labor_cost"),
			TotalPrice:   r.GetFloat("total_price"),
		})
	}

	compositions, err := app.FindRecordsByFilter("compositions", "is_active = true", "code", 0, 0)
	if err != nil {
		return data, fmt.Errorf("load compositions: %w", err)
	}
	for _, r := range compositions {
		data.Compositions = append(data.Compositions, CompositionRow{
			Code:       r.GetString("code"),
			Name:       r.GetString("name"),
			Unit:       r.GetString("unit"),
			TotalPrice: r.GetFloat("total_price"),
		})
	}

	services, err := app.FindRecordsByFilter("services", "is_active = true", "code", 0, 0)
	if err != nil {
		return data, fmt.Errorf("load services: %w", err)
	}
	for _, r := range services {
		data.Services = append(data.Services, ServiceRow{
			Code:       r.GetString("code"),
			Name:       r.GetString("name"),
			Unit:       r.GetString("unit"),
			PriceNet:   r.GetFloat("price_net"),
			PriceGross: r.GetFloat("price_gross"),
			Margin:     r.GetFloat("margin"),
		})
	}

	return data, nil
}
