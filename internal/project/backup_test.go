package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PlateQuote/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultSpacing = 6.0
	cfg.Theme = "dark"

	catalog := model.DefaultCatalog()
	book := model.NewQuoteBook()
	book.Add(model.Quote{StudyNumber: "ET-007", Quantity: 25})

	if err := ExportAllData(path, cfg, catalog, book); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultSpacing != 6.0 {
		t.Errorf("expected DefaultSpacing=6.0, got %f", backup.Config.DefaultSpacing)
	}
	if backup.Config.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", backup.Config.Theme)
	}
	if len(backup.Catalog.Plates) != len(catalog.Plates) {
		t.Errorf("expected %d plates, got %d", len(catalog.Plates), len(backup.Catalog.Plates))
	}
	if len(backup.Quotes.Quotes) != 1 || backup.Quotes.Quotes[0].StudyNumber != "ET-007" {
		t.Errorf("unexpected quotes %+v", backup.Quotes.Quotes)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	data := []byte(`{"config":{"theme":"dark"}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestImportAllDataNilCollections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{"recent_studies":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentStudies == nil {
		t.Error("RecentStudies should not be nil after import")
	}
	if backup.Catalog.Plates == nil {
		t.Error("Plates should not be nil after import")
	}
	if backup.Quotes.Quotes == nil {
		t.Error("Quotes should not be nil after import")
	}
}
