package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Name,Width,Height,Cost\nPVC 3mm,2440,1220,15.55\nAkylux,1200,1600,6.12\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Name;Width;Height;Cost\nPVC 3mm;2440;1220;15,55\nAkylux;1200;1600;6,12\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Name\tWidth\tHeight\tCost\nPVC\t2440\t1220\t15.55\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Name", "Width", "Height", "Cost", "Material"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Name: 0, Width: 1, Height: 2, Cost: 3, Material: 4}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_FrenchAndReordered(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Prix", "Matière", "Largeur", "Hauteur", "Désignation"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Cost != 0 || mapping.Material != 1 || mapping.Width != 2 || mapping.Height != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
	if mapping.Name != -1 {
		t.Errorf("expected Name to be unmapped, got %d", mapping.Name)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"PVC 3mm", "2440", "1220", "15.55"})
	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Width != 1 || mapping.Cost != 3 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportPlatesCSVFromReader_WithHeaders(t *testing.T) {
	input := "Name,Width,Height,Cost,Material\nPVC 3mm 2440x1220,2440,1220,15.55,PVC 3mm\nAkylux,1200,1600,6.12,Akylux 3mm\n"
	result := ImportPlatesCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Plates) != 2 {
		t.Fatalf("expected 2 plates, got %d", len(result.Plates))
	}
	p := result.Plates[0]
	if p.Name != "PVC 3mm 2440x1220" || p.Width != 2440 || p.Height != 1220 || p.Cost != 15.55 || p.Material != "PVC 3mm" {
		t.Errorf("unexpected plate %+v", p)
	}
	if p.ID == "" {
		t.Error("expected imported plate to get an ID")
	}
}

func TestImportPlatesCSVFromReader_WithoutHeaders(t *testing.T) {
	input := "PVC 5mm,2050,1525,23.62,PVC 5mm\n"
	result := ImportPlatesCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Plates) != 1 || result.Plates[0].Cost != 23.62 {
		t.Fatalf("unexpected plates %+v", result.Plates)
	}
}

func TestImportPlatesCSVFromReader_DecimalComma(t *testing.T) {
	input := "Name;Width;Height;Cost\nBC 30;1700;2100;2,44\n"
	result := ImportPlatesCSVFromReader(strings.NewReader(input), ';')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Plates[0].Cost != 2.44 {
		t.Errorf("expected cost 2.44, got %f", result.Plates[0].Cost)
	}
}

func TestImportPlatesCSVFromReader_GeneratedName(t *testing.T) {
	input := "Width,Height,Cost,Material\n1000,1400,3.42,PVC 300 microns\n"
	result := ImportPlatesCSVFromReader(strings.NewReader(input), ',')

	if len(result.Plates) != 1 {
		t.Fatalf("expected 1 plate, got %d (%v)", len(result.Plates), result.Errors)
	}
	if result.Plates[0].Name != "PVC 300 microns 1000x1400" {
		t.Errorf("unexpected generated name %q", result.Plates[0].Name)
	}
}

func TestImportPlatesCSVFromReader_MissingCostWarns(t *testing.T) {
	input := "Name,Width,Height\nOffcut,500,500\n"
	result := ImportPlatesCSVFromReader(strings.NewReader(input), ',')

	if len(result.Plates) != 1 || result.Plates[0].Cost != 0 {
		t.Fatalf("expected a zero-cost plate, got %+v", result.Plates)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Missing cost") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a missing cost warning, got %v", result.Warnings)
	}
}

func TestImportPlatesCSVFromReader_InvalidRows(t *testing.T) {
	input := "Name,Width,Height,Cost\n" +
		"Good,1000,1000,5\n" +
		"BadWidth,abc,1000,5\n" +
		"Negative,-10,1000,5\n" +
		"BadCost,1000,1000,cheap\n" +
		"NegCost,1000,1000,-1\n" +
		",,,\n"
	result := ImportPlatesCSVFromReader(strings.NewReader(input), ',')

	if len(result.Plates) != 1 {
		t.Errorf("expected 1 valid plate, got %d", len(result.Plates))
	}
	if len(result.Errors) != 4 {
		t.Errorf("expected 4 errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportPlatesCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	input := "Name,Width,Cost\nPVC,1000,5\n"
	result := ImportPlatesCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("expected missing Height error, got %v", result.Errors)
	}
}

func TestImportPlatesCSVFromReader_EmptyInput(t *testing.T) {
	result := ImportPlatesCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportPlatesCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plates.csv")
	content := "Name;Width;Height;Cost\nPVC 700;1000;1400;8,2\nPVC 500;1000;1400;5,82\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportPlatesCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Plates) != 2 {
		t.Fatalf("expected 2 plates, got %d", len(result.Plates))
	}
	if result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
}

func TestImportPlatesCSV_FileNotFound(t *testing.T) {
	result := ImportPlatesCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportPlatesCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportPlatesCSV(path)
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected empty file error, got %v", result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plates.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportPlatesExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Material", "Name", "Width", "Height", "Cost"},
		{"EE 1C/1B", "EE 2000x2500", 2000, 2500, 6.83},
		{"PVC 5mm", "PVC 5mm 2050x1525", 2050, 1525, 23.62},
	})

	result := ImportPlatesExcel(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Plates) != 2 {
		t.Fatalf("expected 2 plates, got %d", len(result.Plates))
	}
	p := result.Plates[0]
	if p.Name != "EE 2000x2500" || p.Material != "EE 1C/1B" || p.Width != 2000 || p.Cost != 6.83 {
		t.Errorf("unexpected plate %+v", p)
	}
}

func TestImportPlatesExcel_FileNotFound(t *testing.T) {
	result := ImportPlatesExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportPlatesExcel_EmptySheet(t *testing.T) {
	path := createTestExcel(t, nil)
	result := ImportPlatesExcel(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty sheet")
	}
}
