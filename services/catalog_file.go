package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Default worksheet names of the price matrix workbooks received from the
// estimating team. Their files are French-labeled; exports from the old
// tool use snake_case labels, so both spellings are accepted per column.
const (
	DefaultMaterialsSheet = "Matériaux"
	DefaultServicesSheet  = "Services"
)

// TemplateField describes one recognized import column: the canonical row
// key plus the human label used in the French workbooks.
type TemplateField struct {
	Key      string
	Label    string
	Required bool
}

// MaterialTemplateFields returns the recognized columns of a material
// price-matrix sheet.
func MaterialTemplateFields() []TemplateField {
	return []TemplateField{
		{Key: "code", Label: "Code", Required: true},
		{Key: "name_fr", Label: "Nom FR"},
		{Key: "name_ro", Label: "Nom RO"},
		{Key: "description", Label: "Description"},
		{Key: "unit", Label: "Unité"},
		{Key: "price_eur", Label: "Prix EUR"},
		{Key: "price_lei", Label: "Prix LEI"},
		{Key: "supplier", Label: "Fournisseur"},
	}
}

// ServiceTemplateFields returns the recognized columns of a services sheet.
func ServiceTemplateFields() []TemplateField {
	return []TemplateField{
		{Key: "code", Label: "Code", Required: true},
		{Key: "name", Label: "Nom"},
		{Key: "description", Label: "Description"},
		{Key: "unit", Label: "Unité"},
		{Key: "price_net", Label: "Prix Net"},
		{Key: "price_gross", Label: "Prix Brut"},
	}
}

// ParseCatalogFile extracts the data rows of an uploaded price matrix as
// maps keyed by canonical field key. CSV and XLSX are supported, picked by
// file extension. sheetName only applies to XLSX; an empty name means the
// first sheet. Unrecognized columns are ignored, cell values are trimmed.
// A required column absent from the header row fails the whole file.
//
// Any failure here is a batch-level failure: nothing has been written yet
// and the whole import is aborted.
func ParseCatalogFile(file io.Reader, fileName, sheetName string, fields []TemplateField) ([]map[string]string, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file, sheetName)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys, _ := mapHeadersToFields(headers, fields)

	mappedKeys := make(map[string]bool, len(columnKeys))
	for _, key := range columnKeys {
		mappedKeys[key] = true
	}
	for _, field := range fields {
		if field.Required && !mappedKeys[field.Key] {
			return nil, fmt.Errorf("required column %q (%s) not found in header row", field.Label, field.Key)
		}
	}

	rows := make([]map[string]string, 0, len(dataRows))
	for _, row := range dataRows {
		rowData := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}
		rows = append(rows, rowData)
	}

	return rows, nil
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the
// requested sheet (first sheet when sheetName is empty). A missing sheet is
// an error, not an empty result.
func parseExcel(file io.Reader, sheetName string) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, nil, fmt.Errorf("sheet %q not found in workbook", sheetName)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("sheet must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapHeadersToFields maps uploaded column headers to field keys. A header
// matches either the French label ("Prix EUR") or the canonical key
// ("price_eur"), case-insensitively. Returns one key per column (empty for
// unrecognized columns) plus the list of unrecognized headers.
func mapHeadersToFields(headers []string, fields []TemplateField) ([]string, []string) {
	headerToKey := make(map[string]string, len(fields)*2)
	for _, f := range fields {
		headerToKey[strings.ToLower(strings.TrimSpace(f.Label))] = f.Key
		headerToKey[strings.ToLower(f.Key)] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSuffix(norm, " *")
		norm = strings.TrimSpace(norm)

		if key, ok := headerToKey[norm]; ok {
			mapped[i] = key
		} else {
			mapped[i] = ""
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// InspectWorkbook reports the sheet names of an xlsx workbook together
// with each sheet's header row. Used to preview a price matrix before
// committing to an import.
func InspectWorkbook(file io.Reader) (map[string][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	structure := make(map[string][]string)
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
		}
		if len(rows) == 0 {
			structure[sheetName] = nil
			continue
		}
		structure[sheetName] = rows[0]
	}

	return structure, nil
}
