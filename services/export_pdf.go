package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePriceListPDF renders the catalog price list as a PDF document
// using maroto/v2 and returns the raw bytes.
func GeneratePriceListPDF(data PriceListData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addPriceListHeader(m, data)

	addSectionTitle(m, "Matériaux")
	addPriceTableHeader(m, [][2]any{
		{"Code", 2}, {"Nom", 4}, {"Unité", 1}, {"Prix EUR", 2}, {"Prix LEI", 2}, {"Fournisseur", 1},
	})
	for _, r := range data.Materials {
		addPriceTableRow(m, []pdfCell{
			{r.Code, 2, align.Left},
			{r.Name, 4, align.Left},
			{r.Unit, 1, align.Center},
			{FormatEUR(r.PriceEUR), 2, align.Right},
			{FormatLEI(r.PriceLEI), 2, align.Right},
			{r.Supplier, 1, align.Left},
		})
	}

	addSectionTitle(m, "Articles")
	addPriceTableHeader(m, [][2]any{
		{"Code", 2}, {"Nom", 3}, {"Unité", 1}, {"Matériaux", 2}, {"MO", 2}, {"Prix Total", 2},
	})
	for _, r := range data.Articles {
		addPriceTableRow(m, []pdfCell{
			{r.Code, 2, align.Left},
			{r.Name, 3, align.Left},
			{r.Unit, 1, align.Center},
			{FormatEUR(r.MaterialCost), 2, align.Right},
			{FormatEUR(r.LaborCost), 2, align.Right},
			{FormatEUR(r.TotalPrice), 2, align.Right},
		})
	}

	addSectionTitle(m, "Compositions")
	addPriceTableHeader(m, [][2]any{
		{"Code", 2}, {"Nom", 6}, {"Unité", 2}, {"Prix Total", 2},
	})
	for _, r := range data.Compositions {
		addPriceTableRow(m, []pdfCell{
			{r.Code, 2, align.Left},
			{r.Name, 6, align.Left},
			{r.Unit, 2, align.Center},
			{FormatEUR(r.TotalPrice), 2, align.Right},
		})
	}

	addSectionTitle(m, "Services")
	addPriceTableHeader(m, [][2]any{
		{"Code", 2}, {"Nom", 4}, {"Unité", 1}, {"Prix Net", 2}, {"Prix Brut", 2}, {"Marge", 1},
	})
	for _, r := range data.Services {
		addPriceTableRow(m, []pdfCell{
			{r.Code, 2, align.Left},
			{r.Name, 4, align.Left},
			{r.Unit, 1, align.Center},
			{FormatEUR(r.PriceNet), 2, align.Right},
			{FormatEUR(r.PriceGross), 2, align.Right},
			{FormatEUR(r.Margin), 1, align.Right},
		})
	}

	addPriceListFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// pdfCell is one rendered cell: its text, grid width (out of 12) and
// alignment.
type pdfCell struct {
	Text  string
	Size  int
	Align align.Type
}

// addPriceListHeader adds the company name and generation date.
func addPriceListHeader(m core.Maroto, data PriceListData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.CompanyName+" — Liste de Prix", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Date: %s", data.GeneratedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

// addSectionTitle adds a bold section separator before each entity table.
func addSectionTitle(m core.Maroto, title string) {
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(9).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
}

// addPriceTableHeader adds the charcoal column header row of one section.
// headers pairs each label with its grid width.
func addPriceTableHeader(m core.Maroto, headers [][2]any) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerCell := props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}

	cols := make([]core.Col, 0, len(headers))
	for _, h := range headers {
		label := h[0].(string)
		width := h[1].(int)
		cols = append(cols, col.New(width).Add(text.New(label, headerText)).WithStyle(&headerCell))
	}

	m.AddRows(row.New(8).Add(cols...))
}

// addPriceTableRow adds one data row of a section table.
func addPriceTableRow(m core.Maroto, cells []pdfCell) {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.Size).Add(text.New(c.Text, props.Text{
			Size:  7,
			Align: c.Align,
		})))
	}
	m.AddRows(row.New(6).Add(cols...))
}

// addPriceListFooter adds the generated-date line at the bottom.
func addPriceListFooter(m core.Maroto, data PriceListData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Générée le %s", data.GeneratedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
