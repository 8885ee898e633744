package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/PlateQuote/internal/model"
)

// DefaultCatalogPath returns the default file path for the catalog file.
// This is located at ~/.platequote/catalog.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.json")
}

// SaveCatalog writes the catalog to the specified JSON file.
func SaveCatalog(path string, c model.Catalog) error {
	return writeJSON(path, c)
}

// LoadCatalog reads the catalog from the specified JSON file.
// If the file does not exist, it returns the default catalog and saves it.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c := model.DefaultCatalog()
			if saveErr := SaveCatalog(path, c); saveErr != nil {
				return c, saveErr
			}
			return c, nil
		}
		return model.Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	var c model.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return model.Catalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}
	normalizeCatalog(&c)
	return c, nil
}

func normalizeCatalog(c *model.Catalog) {
	if c.Plates == nil {
		c.Plates = []model.Plate{}
	}
	if c.Accessories == nil {
		c.Accessories = []model.Accessory{}
	}
	if c.Consumables == nil {
		c.Consumables = []model.Consumable{}
	}
	if c.ProductTypes == nil {
		c.ProductTypes = []model.ProductType{}
	}
}

// ImportCatalog reads a catalog from a user-specified JSON file and merges it
// into existing. Entries whose ID is already present are skipped.
func ImportCatalog(path string, existing model.Catalog) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, fmt.Errorf("failed to read catalog import: %w", err)
	}
	var imported model.Catalog
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, fmt.Errorf("failed to parse catalog import: %w", err)
	}
	return MergeCatalog(existing, imported), nil
}

// MergeCatalog appends every entry of imported whose ID is not yet in existing.
func MergeCatalog(existing, imported model.Catalog) model.Catalog {
	plateIDs := make(map[string]bool, len(existing.Plates))
	for _, p := range existing.Plates {
		plateIDs[p.ID] = true
	}
	for _, p := range imported.Plates {
		if !plateIDs[p.ID] {
			existing.Plates = append(existing.Plates, p)
			plateIDs[p.ID] = true
		}
	}

	accessoryIDs := make(map[string]bool, len(existing.Accessories))
	for _, a := range existing.Accessories {
		accessoryIDs[a.ID] = true
	}
	for _, a := range imported.Accessories {
		if !accessoryIDs[a.ID] {
			existing.Accessories = append(existing.Accessories, a)
			accessoryIDs[a.ID] = true
		}
	}

	consumableIDs := make(map[string]bool, len(existing.Consumables))
	for _, c := range existing.Consumables {
		consumableIDs[c.ID] = true
	}
	for _, c := range imported.Consumables {
		if !consumableIDs[c.ID] {
			existing.Consumables = append(existing.Consumables, c)
			consumableIDs[c.ID] = true
		}
	}

	typeIDs := make(map[string]bool, len(existing.ProductTypes))
	for _, pt := range existing.ProductTypes {
		typeIDs[pt.ID] = true
	}
	for _, pt := range imported.ProductTypes {
		if !typeIDs[pt.ID] {
			existing.ProductTypes = append(existing.ProductTypes, pt)
			typeIDs[pt.ID] = true
		}
	}

	return existing
}
