package project

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/piwi3910/PlateQuote/internal/model"
)

// Store keeps the config, catalog and quote book of one data directory in
// memory and writes every change back to disk. It is safe for concurrent use.
type Store struct {
	dir string

	mu      sync.RWMutex
	config  model.AppConfig
	catalog model.Catalog
	quotes  model.QuoteBook
}

// OpenStore loads (or seeds) the data files found in dir.
func OpenStore(dir string) (*Store, error) {
	s := &Store{dir: dir}

	var err error
	if s.config, err = LoadAppConfig(s.configPath()); err != nil {
		return nil, err
	}
	if s.catalog, err = LoadCatalog(s.catalogPath()); err != nil {
		return nil, err
	}
	if s.quotes, err = LoadQuotes(s.quotesPath()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) configPath() string  { return filepath.Join(s.dir, "config.json") }
func (s *Store) catalogPath() string { return filepath.Join(s.dir, "catalog.json") }
func (s *Store) quotesPath() string  { return filepath.Join(s.dir, "quotes.json") }

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Config returns a copy of the current config.
func (s *Store) Config() model.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// UpdateConfig replaces the config and persists it.
func (s *Store) UpdateConfig(cfg model.AppConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := SaveAppConfig(s.configPath(), cfg); err != nil {
		return err
	}
	s.config = cfg
	return nil
}

// Catalog returns a copy of the catalog. The slices are shared; callers must
// not modify them.
func (s *Store) Catalog() model.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// UpdateCatalog replaces the catalog and persists it.
func (s *Store) UpdateCatalog(c model.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := SaveCatalog(s.catalogPath(), c); err != nil {
		return err
	}
	s.catalog = c
	return nil
}

// AddPlates merges plates into the catalog, skipping IDs already present,
// and returns how many were added.
func (s *Store) AddPlates(plates []model.Plate) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.catalog.Plates)
	merged := MergeCatalog(s.catalog, model.Catalog{Plates: plates})
	if err := SaveCatalog(s.catalogPath(), merged); err != nil {
		return 0, err
	}
	s.catalog = merged
	return len(merged.Plates) - before, nil
}

// SaveQuote adds q to the quote book, records its study as recent and
// persists both. The stored quote is returned with its ID set.
func (s *Store) SaveQuote(q model.Quote) (model.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book := model.QuoteBook{Quotes: append([]model.Quote{}, s.quotes.Quotes...)}
	stored := book.Add(q)
	if err := SaveQuotes(s.quotesPath(), book); err != nil {
		return model.Quote{}, err
	}
	s.quotes = book

	s.config.AddRecentStudy(stored.StudyNumber)
	if err := SaveAppConfig(s.configPath(), s.config); err != nil {
		return stored, fmt.Errorf("quote saved but config was not: %w", err)
	}
	return stored, nil
}

// DeleteQuote removes a quote by ID. Returns false if it was not found.
func (s *Store) DeleteQuote(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book := model.QuoteBook{Quotes: append([]model.Quote{}, s.quotes.Quotes...)}
	if !book.Remove(id) {
		return false, nil
	}
	if err := SaveQuotes(s.quotesPath(), book); err != nil {
		return false, err
	}
	s.quotes = book
	return true, nil
}

// Quote returns the quote with the given ID.
func (s *Store) Quote(id string) (model.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := s.quotes.FindByID(id)
	if q == nil {
		return model.Quote{}, false
	}
	return *q, true
}

// Quotes returns the saved quotes, newest first. When study is not empty
// only quotes of that study are returned.
func (s *Store) Quotes(study string) []model.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if study == "" {
		return s.quotes.Newest()
	}
	filtered := model.QuoteBook{Quotes: s.quotes.FindByStudy(study)}
	return filtered.Newest()
}

// Stats summarises the saved quotes and catalog.
func (s *Store) Stats() model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quotes.Stats(len(s.catalog.Plates))
}

// Export writes a full backup of the store.
func (s *Store) Export(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ExportAllData(path, s.config, s.catalog, s.quotes)
}

// Restore replaces the store contents with a backup and persists them.
func (s *Store) Restore(path string) error {
	backup, err := ImportAllData(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := SaveAppConfig(s.configPath(), backup.Config); err != nil {
		return err
	}
	if err := SaveCatalog(s.catalogPath(), backup.Catalog); err != nil {
		return err
	}
	if err := SaveQuotes(s.quotesPath(), backup.Quotes); err != nil {
		return err
	}
	s.config = backup.Config
	s.catalog = backup.Catalog
	s.quotes = backup.Quotes
	return nil
}
