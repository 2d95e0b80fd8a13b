package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"catalogpricing/catalog"
	"catalogpricing/config"
	"catalogpricing/services"
)

// Seed populates the catalog with a realistic interior-finishing starter
// set: plasterboard and insulation materials, installed-work articles,
// a couple of assembled compositions and a few flat-rate services. It is
// safe to call on every startup because it returns early if any material
// records already exist.
//
// Everything goes through the catalog layer so every derived price in the
// seed data is engine-computed, never hand-typed.
func Seed(app *pocketbase.PocketBase, cfg *config.Config) error {
	existing, err := app.FindRecordsByFilter("materials", "id != ''", "", 1, 0)
	if err != nil {
		return fmt.Errorf("seed: could not query materials: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: materials collection is empty, inserting starter catalog ...")

	materialIDs := map[string]string{}

	materials := []catalog.MaterialParams{
		{Code: "MAT-001", NameFR: "Plaque de plâtre BA13", NameRO: "Placă gips-carton 12.5mm", Unit: "plaque", PriceEUR: 4.20, Supplier: "Point.P"},
		{Code: "MAT-002", NameFR: "Rail métallique R48", NameRO: "Profil metalic UW50", Unit: "ml", PriceEUR: 1.35, Supplier: "Point.P"},
		{Code: "MAT-003", NameFR: "Montant métallique M48", NameRO: "Profil metalic CW50", Unit: "ml", PriceEUR: 1.55, Supplier: "Point.P"},
		{Code: "MAT-004", NameFR: "Laine de verre 45mm", NameRO: "Vată de sticlă 45mm", Unit: "m2", PriceEUR: 3.10, Supplier: "Leroy Merlin"},
		{Code: "MAT-005", NameFR: "Bande à joint", NameRO: "Bandă pentru rosturi", Unit: "rouleau", PriceEUR: 3.80, Supplier: "Point.P"},
		{Code: "MAT-006", NameFR: "Enduit à joint (sac 25kg)", NameRO: "Glet pentru rosturi (sac 25kg)", Unit: "sac", PriceEUR: 12.50, Supplier: "Point.P"},
		{Code: "MAT-007", NameFR: "Vis autoperceuses TTPC 25mm (boîte 1000)", NameRO: "Șuruburi autoforante 25mm", Unit: "paquet", PriceEUR: 8.90, Supplier: "Würth"},
		{Code: "MAT-008", NameFR: "Peinture acrylique blanche mate (15L)", NameRO: "Vopsea lavabilă albă mată (15L)", Unit: "u", PriceEUR: 42.00, Supplier: "Leroy Merlin"},
		{Code: "MAT-009", NameFR: "Sous-couche universelle (15L)", NameRO: "Amorsă universală (15L)", Unit: "u", PriceEUR: 35.00, Supplier: "Leroy Merlin"},
		{Code: "MAT-010", NameFR: "Carrelage grès cérame 60x60", NameRO: "Gresie porțelanată 60x60", Unit: "m2", PriceEUR: 18.50, Supplier: "Cerabati"},
		{Code: "MAT-011", NameFR: "Colle carrelage flex (sac 25kg)", NameRO: "Adeziv flexibil gresie (sac 25kg)", Unit: "sac", PriceEUR: 14.20, Supplier: "Cerabati"},
		{Code: "MAT-012", NameFR: "Joint de carrelage gris (5kg)", NameRO: "Chit de rosturi gri (5kg)", Unit: "u", PriceEUR: 9.80, Supplier: "Cerabati"},
	}
	for _, m := range materials {
		r, err := catalog.CreateMaterial(app, cfg, m)
		if err != nil {
			return fmt.Errorf("seed: material %s: %w", m.Code, err)
		}
		materialIDs[m.Code] = r.Id
	}

	articleIDs := map[string]string{}

	articles := []catalog.ArticleParams{
		{
			Code: "ART-001", Name: "Cloison placo sur ossature métallique",
			Description: "Cloison 72/48, une plaque par face, isolation comprise",
			Unit:        "m2", LaborCost: 14.00,
			Materials: []catalog.ArticleLineParams{
				{MaterialID: materialIDs["MAT-001"], Quantity: 0.70, WastePercent: 0.10},
				{MaterialID: materialIDs["MAT-002"], Quantity: 0.90, WastePercent: 0.05},
				{MaterialID: materialIDs["MAT-003"], Quantity: 2.00, WastePercent: 0.05},
				{MaterialID: materialIDs["MAT-004"], Quantity: 1.00, WastePercent: 0.05},
				{MaterialID: materialIDs["MAT-007"], Quantity: 0.03, WastePercent: 0},
			},
		},
		{
			Code: "ART-002", Name: "Jointoiement et finition placo",
			Description: "Bandes, enduit en trois passes, ponçage",
			Unit:        "m2", LaborCost: 6.50,
			Materials: []catalog.ArticleLineParams{
				{MaterialID: materialIDs["MAT-005"], Quantity: 0.02, WastePercent: 0},
				{MaterialID: materialIDs["MAT-006"], Quantity: 0.04, WastePercent: 0.05},
			},
		},
		{
			Code: "ART-003", Name: "Mise en peinture murs",
			Description: "Sous-couche plus deux couches de finition",
			Unit:        "m2", LaborCost: 7.00,
			Materials: []catalog.ArticleLineParams{
				{MaterialID: materialIDs["MAT-009"], Quantity: 0.007, WastePercent: 0},
				{MaterialID: materialIDs["MAT-008"], Quantity: 0.014, WastePercent: 0},
			},
		},
		{
			Code: "ART-004", Name: "Pose carrelage sol 60x60",
			Description: "Collage en plein, joints compris",
			Unit:        "m2", LaborCost: 22.00,
			Materials: []catalog.ArticleLineParams{
				{MaterialID: materialIDs["MAT-010"], Quantity: 1.00, WastePercent: 0.10},
				{MaterialID: materialIDs["MAT-011"], Quantity: 0.20, WastePercent: 0.05},
				{MaterialID: materialIDs["MAT-012"], Quantity: 0.06, WastePercent: 0},
			},
		},
	}
	for _, a := range articles {
		r, err := catalog.CreateArticle(app, cfg, a)
		if err != nil {
			return fmt.Errorf("seed: article %s: %w", a.Code, err)
		}
		articleIDs[a.Code] = r.Id
	}

	compositions := []catalog.CompositionParams{
		{
			Code: "CMP-001", Name: "Cloison placo finie, prête à peindre",
			Description: "Cloison montée, jointoyée et poncée",
			Unit:        "m2",
			Items: []catalog.CompositionItemParams{
				{Kind: services.KindArticle, ItemID: articleIDs["ART-001"], Quantity: 1},
				{Kind: services.KindArticle, ItemID: articleIDs["ART-002"], Quantity: 1},
			},
		},
		{
			Code: "CMP-002", Name: "Cloison placo peinte",
			Description: "Cloison complète avec mise en peinture des deux faces",
			Unit:        "m2",
			Items: []catalog.CompositionItemParams{
				{Kind: services.KindArticle, ItemID: articleIDs["ART-001"], Quantity: 1},
				{Kind: services.KindArticle, ItemID: articleIDs["ART-002"], Quantity: 1},
				{Kind: services.KindArticle, ItemID: articleIDs["ART-003"], Quantity: 2},
				{Kind: services.KindMaterial, ItemID: materialIDs["MAT-007"], Quantity: 0.01},
			},
		},
	}
	for _, c := range compositions {
		if _, err := catalog.CreateComposition(app, cfg, c); err != nil {
			return fmt.Errorf("seed: composition %s: %w", c.Code, err)
		}
	}

	serviceDefs := []catalog.ServiceParams{
		{Code: "SRV-001", Name: "Déplacement et installation de chantier", Unit: "ft", PriceNet: 120.00, PriceGross: 180.00},
		{Code: "SRV-002", Name: "Évacuation gravats en déchetterie", Unit: "ft", PriceNet: 95.00, PriceGross: 140.00},
		{Code: "SRV-003", Name: "Nettoyage fin de chantier", Unit: "j", PriceNet: 150.00, PriceGross: 220.00},
		{Code: "SRV-004", Name: "Location échafaudage roulant", Unit: "j", PriceNet: 45.00, PriceGross: 60.00},
	}
	for _, s := range serviceDefs {
		if _, err := catalog.CreateService(app, s); err != nil {
			return fmt.Errorf("seed: service %s: %w", s.Code, err)
		}
	}

	log.Printf("seed: starter catalog inserted (%d materials, %d articles, %d compositions, %d services)",
		len(materials), len(articles), len(compositions), len(serviceDefs))
	return nil
}
