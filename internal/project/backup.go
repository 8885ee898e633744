package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/PlateQuote/internal/model"
)

// BackupVersion is written into every export.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Catalog   model.Catalog   `json:"catalog"`
	Quotes    model.QuoteBook `json:"quotes"`
}

// ExportAllData exports config, catalog and saved quotes to a single JSON
// file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, catalog model.Catalog, quotes model.QuoteBook) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Catalog:   catalog,
		Quotes:    quotes,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying it.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentStudies == nil {
		backup.Config.RecentStudies = []string{}
	}
	normalizeCatalog(&backup.Catalog)
	if backup.Quotes.Quotes == nil {
		backup.Quotes.Quotes = []model.Quote{}
	}
	return backup, nil
}
