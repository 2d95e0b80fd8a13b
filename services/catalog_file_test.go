package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCatalogFileCSVFrenchHeaders(t *testing.T) {
	csvData := `Code,Nom FR,Unité,Prix EUR,Fournisseur
MAT-001,Plaque BA13,plaque,"4.20",Point.P
MAT-002,Rail R48,ml,1.35,Point.P
`
	rows, err := ParseCatalogFile(strings.NewReader(csvData), "prix.csv", "", MaterialTemplateFields())
	if err != nil {
		t.Fatalf("ParseCatalogFile failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first["code"] != "MAT-001" {
		t.Errorf("code = %q, want MAT-001", first["code"])
	}
	if first["name_fr"] != "Plaque BA13" {
		t.Errorf("name_fr = %q, want Plaque BA13", first["name_fr"])
	}
	if first["unit"] != "plaque" {
		t.Errorf("unit = %q, want plaque", first["unit"])
	}
	if first["price_eur"] != "4.20" {
		t.Errorf("price_eur = %q, want 4.20", first["price_eur"])
	}
	if first["supplier"] != "Point.P" {
		t.Errorf("supplier = %q, want Point.P", first["supplier"])
	}
}

func TestParseCatalogFileCSVSnakeCaseHeaders(t *testing.T) {
	csvData := `code,name_fr,unit,price_eur
MAT-010,Carrelage 60x60,m2,18.50
`
	rows, err := ParseCatalogFile(strings.NewReader(csvData), "export.csv", "", MaterialTemplateFields())
	if err != nil {
		t.Fatalf("ParseCatalogFile failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["price_eur"] != "18.50" {
		t.Errorf("price_eur = %q, want 18.50", rows[0]["price_eur"])
	}
}

func TestParseCatalogFileIgnoresUnknownColumns(t *testing.T) {
	csvData := `Code,Prix EUR,Colonne Interne
MAT-001,4.20,ne pas importer
`
	rows, err := ParseCatalogFile(strings.NewReader(csvData), "prix.csv", "", MaterialTemplateFields())
	if err != nil {
		t.Fatalf("ParseCatalogFile failed: %v", err)
	}
	for key := range rows[0] {
		if key != "code" && key != "price_eur" {
			t.Errorf("unexpected key %q in parsed row", key)
		}
	}
}

func TestParseCatalogFileMissingRequiredColumn(t *testing.T) {
	csvData := `Nom FR,Prix EUR
Plaque BA13,4.20
`
	_, err := ParseCatalogFile(strings.NewReader(csvData), "prix.csv", "", MaterialTemplateFields())
	if err == nil {
		t.Fatal("expected an error when the Code column is absent")
	}
	if !strings.Contains(err.Error(), "Code") {
		t.Errorf("error %q does not name the missing column", err)
	}
}

func TestParseCatalogFileUnsupportedFormat(t *testing.T) {
	_, err := ParseCatalogFile(strings.NewReader("whatever"), "prix.pdf", "", MaterialTemplateFields())
	if err == nil {
		t.Fatal("expected an error for unsupported file format")
	}
}

func TestParseCatalogFileHeaderOnly(t *testing.T) {
	_, err := ParseCatalogFile(strings.NewReader("Code,Prix EUR\n"), "prix.csv", "", MaterialTemplateFields())
	if err == nil {
		t.Fatal("expected an error for a file with no data rows")
	}
}

func buildTestWorkbook(t *testing.T, sheet string, rows [][]any) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	f.SetActiveSheet(idx)

	for r, row := range rows {
		for c, val := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestParseCatalogFileXLSX(t *testing.T) {
	wb := buildTestWorkbook(t, "Matériaux", [][]any{
		{"Code", "Nom FR", "Prix EUR"},
		{"MAT-001", "Plaque BA13", 4.2},
		{"MAT-002", "Rail R48", 1.35},
	})

	rows, err := ParseCatalogFile(wb, "prix.xlsx", "Matériaux", MaterialTemplateFields())
	if err != nil {
		t.Fatalf("ParseCatalogFile failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["code"] != "MAT-001" {
		t.Errorf("code = %q, want MAT-001", rows[0]["code"])
	}
	if rows[1]["name_fr"] != "Rail R48" {
		t.Errorf("name_fr = %q, want Rail R48", rows[1]["name_fr"])
	}
}

func TestParseCatalogFileXLSXMissingSheet(t *testing.T) {
	wb := buildTestWorkbook(t, "Matériaux", [][]any{
		{"Code"},
		{"MAT-001"},
	})

	_, err := ParseCatalogFile(wb, "prix.xlsx", "Services", MaterialTemplateFields())
	if err == nil {
		t.Fatal("expected an error for a missing sheet")
	}
}

func TestInspectWorkbook(t *testing.T) {
	wb := buildTestWorkbook(t, "Matériaux", [][]any{
		{"Code", "Nom FR"},
		{"MAT-001", "Plaque"},
	})

	structure, err := InspectWorkbook(wb)
	if err != nil {
		t.Fatalf("InspectWorkbook failed: %v", err)
	}
	headers, ok := structure["Matériaux"]
	if !ok {
		t.Fatalf("sheet Matériaux not reported, got %v", structure)
	}
	if len(headers) != 2 || headers[0] != "Code" || headers[1] != "Nom FR" {
		t.Errorf("headers = %v, want [Code, Nom FR]", headers)
	}
}

func TestMapHeadersToFields(t *testing.T) {
	fields := MaterialTemplateFields()
	headers := []string{"Code *", "prix eur", "Inconnu", "NAME_FR"}

	mapped, unrecognized := mapHeadersToFields(headers, fields)

	want := []string{"code", "price_eur", "", "name_fr"}
	for i, key := range want {
		if mapped[i] != key {
			t.Errorf("mapped[%d] = %q, want %q", i, mapped[i], key)
		}
	}
	if len(unrecognized) != 1 || unrecognized[0] != "Inconnu" {
		t.Errorf("unrecognized = %v, want [Inconnu]", unrecognized)
	}
}
