package server

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/piwi3910/PlateQuote/internal/engine"
	"github.com/piwi3910/PlateQuote/internal/imposition"
)

// comparisonChart draws items per plate and material cost for each plate.
func comparisonChart(item imposition.Dimensions, quantity int, comparisons []engine.PlateComparison) *charts.Bar {
	names := make([]string, 0, len(comparisons))
	perPlate := make([]opts.BarData, 0, len(comparisons))
	cost := make([]opts.BarData, 0, len(comparisons))
	for _, c := range comparisons {
		names = append(names, c.Plate.Name)
		perPlate = append(perPlate, opts.BarData{Value: c.Imposition.ItemsPerPlate})
		cost = append(cost, opts.BarData{Value: roundCents(c.Material.TotalCost)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Plate comparison",
			Subtitle: fmt.Sprintf("%g x %g mm, %d pcs", item.Width, item.Height, quantity),
		}),
	)
	bar.SetXAxis(names).
		AddSeries("Items per plate", perPlate).
		AddSeries("Material cost", cost)
	return bar
}

func (s *Server) handleCompareChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width, errW := strconv.ParseFloat(q.Get("width"), 64)
	height, errH := strconv.ParseFloat(q.Get("height"), 64)
	if errW != nil || errH != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "width and height query parameters are required")
		return
	}
	quantity := 1
	if v := q.Get("quantity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "quantity must be an integer")
			return
		}
		quantity = n
	}
	spacing := s.store.Config().DefaultSpacing
	if v := q.Get("spacing"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "spacing must be a number")
			return
		}
		spacing = f
	}

	item := imposition.Dimensions{Width: width, Height: height}
	comparisons := engine.ComparePlates(item, quantity, spacing, s.store.Catalog().Plates)

	var buf bytes.Buffer
	if err := comparisonChart(item, quantity, comparisons).Render(&buf); err != nil {
		s.internalError(w, r, "failed to render chart", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
