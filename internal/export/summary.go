package export

import (
	"encoding/json"
	"fmt"
	"math"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/PlateQuote/internal/model"
)

// Summary is the compact quote description encoded into QR codes.
type Summary struct {
	QuoteID       string  `json:"id"`
	StudyNumber   string  `json:"study"`
	Product       string  `json:"product,omitempty"`
	Quantity      int     `json:"qty"`
	FlatWidth     float64 `json:"flat_w_mm"`
	FlatHeight    float64 `json:"flat_h_mm"`
	Plate         string  `json:"plate"`
	ItemsPerPlate int     `json:"per_plate"`
	Orientation   string  `json:"orientation"`
	PlatesNeeded  int     `json:"plates"`
	TotalCost     float64 `json:"total"`
}

// QuoteSummary returns the QR payload of a quote.
func QuoteSummary(q model.Quote) Summary {
	return Summary{
		QuoteID:       q.ID,
		StudyNumber:   q.StudyNumber,
		Product:       q.ProductName,
		Quantity:      q.Quantity,
		FlatWidth:     q.FlatWidth,
		FlatHeight:    q.FlatHeight,
		Plate:         q.PlateName,
		ItemsPerPlate: q.Imposition.ItemsPerPlate,
		Orientation:   q.Imposition.Orientation.String(),
		PlatesNeeded:  q.Cost.Material.PlatesNeeded,
		TotalCost:     roundCents(q.TotalCost()),
	}
}

// qrPNG encodes v as JSON into a QR code PNG of the given pixel size.
func qrPNG(v interface{}, size int) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR payload: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
