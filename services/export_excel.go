package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GeneratePriceListExcel renders the catalog price list as an Excel
// workbook with one sheet per entity kind and returns the file contents.
func GeneratePriceListExcel(data PriceListData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	// Rename the default sheet to the materials sheet, then append the rest.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, DefaultMaterialsSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	if err := writeMaterialsSheet(f, styles, data); err != nil {
		return nil, err
	}
	if err := writeArticlesSheet(f, styles, data); err != nil {
		return nil, err
	}
	if err := writeCompositionsSheet(f, styles, data); err != nil {
		return nil, err
	}
	if err := writeServicesSheet(f, styles, data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// workbookStyles groups the style ids shared by all sheets.
type workbookStyles struct {
	title  int
	header int
	cell   int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error

	s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	s.cell, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create cell style: %w", err)
	}

	return s, nil
}

// writeSheetFrame creates the sheet (unless it already exists), sets column
// widths and writes the title plus the styled header row. Data rows start
// at row 4.
func writeSheetFrame(f *excelize.File, styles workbookStyles, sheet, title string, headers []string, widths []float64) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("lookup sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
	}

	columns := columnRefs(len(headers))
	lastCol := columns[len(columns)-1]

	for i, colRef := range columns {
		if err := f.SetColWidth(sheet, colRef, colRef, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", colRef, err)
		}
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", styles.title)

	for i, h := range headers {
		f.SetCellValue(sheet, columns[i]+"3", h)
	}
	f.SetCellStyle(sheet, "A3", lastCol+"3", styles.header)

	return nil
}

func writeMaterialsSheet(f *excelize.File, styles workbookStyles, data PriceListData) error {
	sheet := DefaultMaterialsSheet
	headers := []string{"Code", "Nom FR", "Unité", "Prix EUR", "Prix LEI", "Fournisseur"}
	widths := []float64{14, 44, 8, 14, 14, 24}
	title := data.CompanyName + " — Matériaux — " + data.GeneratedDate

	if err := writeSheetFrame(f, styles, sheet, title, headers, widths); err != nil {
		return err
	}

	row := 4
	for _, m := range data.Materials {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rowStr, sanitizeExcelCell(m.Code))
		f.SetCellValue(sheet, "B"+rowStr, sanitizeExcelCell(m.Name))
		f.SetCellValue(sheet, "C"+rowStr, sanitizeExcelCell(m.Unit))
		f.SetCellValue(sheet, "D"+rowStr, m.PriceEUR)
		f.SetCellValue(sheet, "E"+rowStr, m.PriceLEI)
		f.SetCellValue(sheet, "F"+rowStr, sanitizeExcelCell(m.Supplier))
		f.SetCellStyle(sheet, "A"+rowStr, "F"+rowStr, styles.cell)
		row++
	}
	return nil
}

func writeArticlesSheet(f *excelize.File, styles workbookStyles, data PriceListData) error {
	sheet := "Articles"
	headers := []string{"Code", "Nom", "Unité", "Coût Matériaux", "Coût MO", "Prix Total"}
	widths := []float64{14, 44, 8, 16, 14, 14}
	title := data.CompanyName + " — Articles — " + data.GeneratedDate

	if err := writeSheetFrame(f, styles, sheet, title, headers, widths); err != nil {
		return err
	}

	row := 4
	for _, a := range data.Articles {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rowStr, sanitizeExcelCell(a.Code))
		f.SetCellValue(sheet, "B"+rowStr, sanitizeExcelCell(a.Name))
		f.SetCellValue(sheet, "C"+rowStr, sanitizeExcelCell(a.Unit))
		f.SetCellValue(sheet, "D"+rowStr, a.MaterialCost)
		f.SetCellValue(sheet, "E"+rowStr, a.LaborCost)
		f.SetCellValue(sheet, "F"+rowStr, a.TotalPrice)
		f.SetCellStyle(sheet, "A"+rowStr, "F"+rowStr, styles.cell)
		row++
	}
	return nil
}

func writeCompositionsSheet(f *excelize.File, styles workbookStyles, data PriceListData) error {
	sheet := "Compositions"
	headers := []string{"Code", "Nom", "Unité", "Prix Total"}
	widths := []float64{14, 52, 8, 14}
	title := data.CompanyName + " — Compositions — " + data.GeneratedDate

	if err := writeSheetFrame(f, styles, sheet, title, headers, widths); err != nil {
		return err
	}

	row := 4
	for _, c := range data.Compositions {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rowStr, sanitizeExcelCell(c.Code))
		f.SetCellValue(sheet, "B"+rowStr, sanitizeExcelCell(c.Name))
		f.SetCellValue(sheet, "C"+rowStr, sanitizeExcelCell(c.Unit))
		f.SetCellValue(sheet, "D"+rowStr, c.TotalPrice)
		f.SetCellStyle(sheet, "A"+rowStr, "D"+rowStr, styles.cell)
		row++
	}
	return nil
}

func writeServicesSheet(f *excelize.File, styles workbookStyles, data PriceListData) error {
	sheet := DefaultServicesSheet
	headers := []string{"Code", "Nom", "Unité", "Prix Net", "Prix Brut", "Marge"}
	widths := []float64{14, 44, 8, 14, 14, 12}
	title := data.CompanyName + " — Services — " + data.GeneratedDate

	if err := writeSheetFrame(f, styles, sheet, title, headers, widths); err != nil {
		return err
	}

	row := 4
	for _, s := range data.Services {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rowStr, sanitizeExcelCell(s.Code))
		f.SetCellValue(sheet, "B"+rowStr, sanitizeExcelCell(s.Name))
		f.SetCellValue(sheet, "C"+rowStr, sanitizeExcelCell(s.Unit))
		f.SetCellValue(sheet, "D"+rowStr, s.PriceNet)
		f.SetCellValue(sheet, "E"+rowStr, s.PriceGross)
		f.SetCellValue(sheet, "F"+rowStr, s.Margin)
		f.SetCellStyle(sheet, "A"+rowStr, "F"+rowStr, styles.cell)
		row++
	}
	return nil
}

// columnRefs returns the first n column letters ("A".."Z"). The price list
// never needs more than 6 columns.
func columnRefs(n int) []string {
	refs := make([]string, n)
	for i := 0; i < n; i++ {
		refs[i] = string(rune('A' + i))
	}
	return refs
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous
// leading characters with a single quote. Excel interprets cells starting
// with =, +, -, @, \t or \r as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin black borders for all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
