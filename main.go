package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"catalogpricing/collections"
	"catalogpricing/config"
	"catalogpricing/services"
)

func main() {
	app := pocketbase.New()
	cfg := config.Load()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app, cfg); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.RootCmd.AddCommand(newImportCmd(app, cfg))
	app.RootCmd.AddCommand(newExportCmd(app, cfg))

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// newImportCmd reads a supplier price file (CSV or XLSX) and reconciles it
// against the catalog by code.
func newImportCmd(app *pocketbase.PocketBase, cfg *config.Config) *cobra.Command {
	var sheet string
	var asServices bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import materials or services from a CSV/XLSX price file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Bootstrap(); err != nil {
				return fmt.Errorf("bootstrap: %w", err)
			}
			collections.Setup(app)

			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			fields := services.MaterialTemplateFields()
			if asServices {
				fields = services.ServiceTemplateFields()
				if sheet == "" {
					sheet = services.DefaultServicesSheet
				}
			} else if sheet == "" {
				sheet = services.DefaultMaterialsSheet
			}

			rows, err := services.ParseCatalogFile(f, filepath.Base(path), sheet, fields)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}

			var summary *services.ImportSummary
			if asServices {
				summary, err = services.ImportServices(app, rows)
			} else {
				summary, err = services.ImportMaterials(app, rows, cfg.EURLEIRate)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Import done: %d created, %d updated, %d errors (%d total)\n",
				summary.Created, summary.Updated, summary.Errors, summary.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "workbook sheet to read (XLSX only)")
	cmd.Flags().BoolVar(&asServices, "services", false, "import flat-rate services instead of materials")

	return cmd
}

// newExportCmd writes the active catalog as a formatted price list.
func newExportCmd(app *pocketbase.PocketBase, cfg *config.Config) *cobra.Command {
	var out string
	var asPDF bool

	cmd := &cobra.Command{
		Use:   "export-pricelist",
		Short: "Export the active catalog as an XLSX or PDF price list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Bootstrap(); err != nil {
				return fmt.Errorf("bootstrap: %w", err)
			}
			collections.Setup(app)

			data, err := services.BuildPriceList(app, cfg.CompanyName)
			if err != nil {
				return fmt.Errorf("build price list: %w", err)
			}

			var content []byte
			if asPDF {
				content, err = services.GeneratePriceListPDF(data)
			} else {
				content, err = services.GeneratePriceListExcel(data)
			}
			if err != nil {
				return fmt.Errorf("generate price list: %w", err)
			}

			if out == "" {
				out = "liste_de_prix.xlsx"
				if asPDF {
					out = "liste_de_prix.pdf"
				}
			}
			if err := os.WriteFile(out, content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			fmt.Printf("Price list written to %s (%d bytes)\n", out, len(content))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file path")
	cmd.Flags().BoolVar(&asPDF, "pdf", false, "write a PDF instead of XLSX")

	return cmd
}
