package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/piwi3910/PlateQuote/internal/engine"
	"github.com/piwi3910/PlateQuote/internal/export"
	"github.com/piwi3910/PlateQuote/internal/importer"
	"github.com/piwi3910/PlateQuote/internal/imposition"
	"github.com/piwi3910/PlateQuote/internal/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type impositionRequest struct {
	Item    imposition.Dimensions `json:"item"`
	Sheet   imposition.Dimensions `json:"sheet"`
	Spacing float64               `json:"spacing"`
}

func (s *Server) handleImposition(w http.ResponseWriter, r *http.Request) {
	var req impositionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, imposition.Compute(req.Item, req.Sheet, req.Spacing))
}

type quoteCostRequest struct {
	Quantity      int     `json:"quantity"`
	ItemsPerPlate int     `json:"items_per_plate"`
	PlateCost     float64 `json:"plate_cost"`
}

func (s *Server) handleQuoteCost(w http.ResponseWriter, r *http.Request) {
	var req quoteCostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, model.ComputeQuoteCost(req.Quantity, req.ItemsPerPlate, req.PlateCost))
}

func (s *Server) handleListPlates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Catalog().Plates)
}

func (s *Server) handleListProductTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Catalog().ProductTypes)
}

type plateInput struct {
	Name     string  `json:"name"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Cost     float64 `json:"cost"`
	Material string  `json:"material"`
}

func (s *Server) handleAddPlates(w http.ResponseWriter, r *http.Request) {
	var in []plateInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	plates := make([]model.Plate, 0, len(in))
	for _, p := range in {
		if strings.TrimSpace(p.Name) == "" || p.Width <= 0 || p.Height <= 0 || p.Cost < 0 {
			writeError(w, r, http.StatusUnprocessableEntity, "invalid_plate",
				"each plate needs a name, positive width and height and a non-negative cost")
			return
		}
		plates = append(plates, model.NewPlate(strings.TrimSpace(p.Name), p.Width, p.Height, p.Cost, p.Material))
	}

	added, err := s.store.AddPlates(plates)
	if err != nil {
		s.internalError(w, r, "failed to save plates", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"added": added, "plates": plates})
}

// handleImportPlates reads a CSV plate list from the request body.
func (s *Server) handleImportPlates(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	result := importer.ImportPlatesCSVFromReader(bytes.NewReader(data), importer.DetectCSVDelimiter(data))
	if len(result.Plates) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":      "no_plates",
			"message":    "no valid plates found in upload",
			"status":     http.StatusUnprocessableEntity,
			"errors":     result.Errors,
			"warnings":   result.Warnings,
			"request_id": requestID(r),
		})
		return
	}

	added, err := s.store.AddPlates(result.Plates)
	if err != nil {
		s.internalError(w, r, "failed to save plates", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"added":    added,
		"plates":   result.Plates,
		"errors":   result.Errors,
		"warnings": result.Warnings,
	})
}

type compareRequest struct {
	Item     imposition.Dimensions `json:"item"`
	Quantity int                   `json:"quantity"`
	Spacing  float64               `json:"spacing"`
	PlateIDs []string              `json:"plate_ids,omitempty"` // Empty means every catalog plate
}

type compareResponse struct {
	Comparisons []engine.PlateComparison `json:"comparisons"`
	Best        *engine.PlateComparison  `json:"best,omitempty"`
}

func (s *Server) handleComparePlates(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	plates, err := s.selectPlates(req.PlateIDs)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "unknown_plate", err.Error())
		return
	}

	comparisons := engine.ComparePlates(req.Item, req.Quantity, req.Spacing, plates)
	resp := compareResponse{Comparisons: comparisons}
	if best, ok := engine.BestPlate(comparisons); ok {
		resp.Best = &best
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) selectPlates(ids []string) ([]model.Plate, error) {
	catalog := s.store.Catalog()
	if len(ids) == 0 {
		return catalog.Plates, nil
	}
	plates := make([]model.Plate, 0, len(ids))
	for _, id := range ids {
		p := catalog.FindPlateByID(id)
		if p == nil {
			return nil, errors.New("unknown plate: " + id)
		}
		plates = append(plates, *p)
	}
	return plates, nil
}

func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	cfg := s.store.Config()
	req := engine.Request{Settings: model.DefaultSettings()}
	cfg.ApplyToSettings(&req.Settings)
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	catalog := s.store.Catalog()
	q, err := engine.New(cfg.Rates, &catalog).Quote(req)
	switch {
	case errors.Is(err, engine.ErrInvalidQuantity):
		writeError(w, r, http.StatusBadRequest, "invalid_quantity", err.Error())
		return
	case errors.Is(err, engine.ErrUnknownPlate):
		writeError(w, r, http.StatusNotFound, "unknown_plate", err.Error())
		return
	case errors.Is(err, engine.ErrUnknownProductType):
		writeError(w, r, http.StatusNotFound, "unknown_product_type", err.Error())
		return
	case err != nil:
		writeError(w, r, http.StatusUnprocessableEntity, "invalid_formula", err.Error())
		return
	}

	stored, err := s.store.SaveQuote(q)
	if err != nil {
		s.internalError(w, r, "failed to save quote", err)
		return
	}
	s.logger.Info("quote saved",
		zap.String("quote_id", stored.ID),
		zap.String("study", stored.StudyNumber),
		zap.Int("items_per_plate", stored.Imposition.ItemsPerPlate),
		zap.Float64("total", stored.TotalCost()),
	)
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes := s.store.Quotes(strings.TrimSpace(r.URL.Query().Get("study")))
	if quotes == nil {
		quotes = []model.Quote{}
	}
	writeJSON(w, http.StatusOK, quotes)
}

// quote loads the quote named by the {id} URL parameter, writing a 404 when
// it does not exist.
func (s *Server) quote(w http.ResponseWriter, r *http.Request) (model.Quote, bool) {
	id := chi.URLParam(r, "id")
	q, ok := s.store.Quote(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "quote_not_found", "no quote with id "+id)
	}
	return q, ok
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	if q, ok := s.quote(w, r); ok {
		writeJSON(w, http.StatusOK, q)
	}
}

func (s *Server) handleDeleteQuote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed, err := s.store.DeleteQuote(id)
	if err != nil {
		s.internalError(w, r, "failed to delete quote", err)
		return
	}
	if !removed {
		writeError(w, r, http.StatusNotFound, "quote_not_found", "no quote with id "+id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQuotePDF(w http.ResponseWriter, r *http.Request) {
	q, ok := s.quote(w, r)
	if !ok {
		return
	}
	catalog := s.store.Catalog()
	plate := catalog.FindPlateByID(q.PlateID)
	if plate == nil {
		writeError(w, r, http.StatusConflict, "plate_removed", "plate "+q.PlateName+" is no longer in the catalog")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+q.StudyNumber+`.pdf"`)
	if err := export.WriteQuotePDF(w, q, *plate); err != nil {
		s.logger.Error("failed to render quote PDF", zap.String("quote_id", q.ID), zap.Error(err))
	}
}

func (s *Server) handleExportQuotes(w http.ResponseWriter, r *http.Request) {
	quotes := s.store.Quotes(strings.TrimSpace(r.URL.Query().Get("study")))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="quotes.xlsx"`)
	if err := export.WriteQuotesExcel(w, quotes); err != nil {
		s.logger.Error("failed to render quote register", zap.Error(err))
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Stats())
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Error(msg, zap.String("request_id", requestID(r)), zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, "internal", msg)
}
