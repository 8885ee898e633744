package model

import (
	"crypto/rand"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/piwi3910/PlateQuote/internal/imposition"
)

// DefaultStudyPrefix is the prefix of a fresh study number.
const DefaultStudyPrefix = "ET"

// Quote is a saved costing of one product run.
type Quote struct {
	ID            string               `json:"id"`
	StudyNumber   string               `json:"study_number"`
	ProductTypeID string               `json:"product_type_id,omitempty"`
	ProductName   string               `json:"product_name"`
	Quantity      int                  `json:"quantity"`
	Width         float64              `json:"width"`  // l, mm
	Length        float64              `json:"length"` // L, mm
	Height        float64              `json:"height"` // H, mm
	FlatWidth     float64              `json:"flat_width"`
	FlatHeight    float64              `json:"flat_height"`
	PlateID       string               `json:"plate_id"`
	PlateName     string               `json:"plate_name"`
	Settings      QuoteSettings        `json:"settings"`
	Rates         Rates                `json:"rates"` // Rates in force when the quote was costed
	Imposition    imposition.Result    `json:"imposition"`
	Cost          CostBreakdown        `json:"cost"`
	Accessories   []SelectedAccessory  `json:"accessories"`
	Consumables   []SelectedConsumable `json:"consumables"`
	Elements      []Element            `json:"elements"`
	Notes         string               `json:"notes,omitempty"` // Markdown
	CreatedAt     string               `json:"created_at"`
}

// NewQuoteID returns a lexically sortable quote identifier.
func NewQuoteID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// FlatSize returns the unfolded footprint that gets imposed on the plate.
func (q Quote) FlatSize() imposition.Dimensions {
	return imposition.Dimensions{Width: q.FlatWidth, Height: q.FlatHeight}
}

// Infeasible reports whether the item could not be placed on the chosen plate.
func (q Quote) Infeasible() bool {
	return q.Imposition.ItemsPerPlate == 0
}

// TotalCost returns the sum of every cost line.
func (q Quote) TotalCost() float64 {
	return q.Cost.Total()
}

// UnitCost returns the cost of a single item.
func (q Quote) UnitCost() float64 {
	return q.Cost.UnitCost(q.Quantity)
}

// CreatedTime parses CreatedAt, returning the zero time when it is malformed.
func (q Quote) CreatedTime() time.Time {
	t, err := time.Parse(time.RFC3339, q.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// QuoteBook holds every saved quote.
type QuoteBook struct {
	Quotes []Quote `json:"quotes"`
}

func NewQuoteBook() QuoteBook {
	return QuoteBook{
		Quotes: []Quote{},
	}
}

// Add stores a quote, assigning an ID and creation time when missing.
func (qb *QuoteBook) Add(q Quote) Quote {
	if q.ID == "" {
		q.ID = NewQuoteID()
	}
	if q.CreatedAt == "" {
		q.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	qb.Quotes = append(qb.Quotes, q)
	return q
}

// Remove removes a quote by ID. Returns true if found and removed.
func (qb *QuoteBook) Remove(id string) bool {
	for i, q := range qb.Quotes {
		if q.ID == id {
			qb.Quotes = append(qb.Quotes[:i], qb.Quotes[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the quote with the given ID, or nil.
func (qb *QuoteBook) FindByID(id string) *Quote {
	for i := range qb.Quotes {
		if qb.Quotes[i].ID == id {
			return &qb.Quotes[i]
		}
	}
	return nil
}

// FindByStudy returns every quote filed under the study number, matched
// case-insensitively.
func (qb *QuoteBook) FindByStudy(study string) []Quote {
	var out []Quote
	for _, q := range qb.Quotes {
		if strings.EqualFold(q.StudyNumber, study) {
			out = append(out, q)
		}
	}
	return out
}

// Newest returns the quotes sorted by creation time, newest first, without
// modifying the book.
func (qb *QuoteBook) Newest() []Quote {
	out := make([]Quote, len(qb.Quotes))
	copy(out, qb.Quotes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Stats summarises the quote book for the dashboard.
type Stats struct {
	QuoteCount   int     `json:"quote_count"`
	TotalRevenue float64 `json:"total_revenue"`
	PlatesUsed   int     `json:"plates_used"`
	StudyCount   int     `json:"study_count"`
	PlateCount   int     `json:"plate_count"` // Plates in the catalog
}

// Stats aggregates every quote. plateCount is the size of the plate catalog.
func (qb *QuoteBook) Stats(plateCount int) Stats {
	s := Stats{QuoteCount: len(qb.Quotes), PlateCount: plateCount}
	studies := make(map[string]struct{})
	for _, q := range qb.Quotes {
		s.TotalRevenue += q.TotalCost()
		s.PlatesUsed += q.Cost.Material.PlatesNeeded
		studies[strings.ToUpper(q.StudyNumber)] = struct{}{}
	}
	s.StudyCount = len(studies)
	return s
}
