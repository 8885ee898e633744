package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/PlateQuote/internal/model"
)

// DefaultQuotesPath returns the default file path for the quote book.
// This is located at ~/.platequote/quotes.json.
func DefaultQuotesPath() string {
	return filepath.Join(DefaultConfigDir(), "quotes.json")
}

// SaveQuotes writes the quote book to a JSON file.
func SaveQuotes(path string, book model.QuoteBook) error {
	return writeJSON(path, book)
}

// LoadQuotes reads a quote book from a JSON file.
// If the file does not exist, returns an empty book.
func LoadQuotes(path string) (model.QuoteBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewQuoteBook(), nil
		}
		return model.QuoteBook{}, fmt.Errorf("failed to read quotes: %w", err)
	}
	var book model.QuoteBook
	if err := json.Unmarshal(data, &book); err != nil {
		return model.QuoteBook{}, fmt.Errorf("failed to parse quotes: %w", err)
	}
	if book.Quotes == nil {
		book.Quotes = []model.Quote{}
	}
	return book, nil
}
