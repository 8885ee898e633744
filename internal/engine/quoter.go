package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piwi3910/PlateQuote/internal/formula"
	"github.com/piwi3910/PlateQuote/internal/imposition"
	"github.com/piwi3910/PlateQuote/internal/model"
)

var (
	ErrUnknownPlate       = errors.New("unknown plate")
	ErrUnknownProductType = errors.New("unknown product type")
	ErrInvalidQuantity    = errors.New("quantity must be > 0")
)

// Request holds everything needed to cost one product run.
type Request struct {
	StudyNumber   string                     `json:"study_number"`
	ProductTypeID string                     `json:"product_type_id,omitempty"`
	ProductName   string                     `json:"product_name,omitempty"`
	Quantity      int                        `json:"quantity"`
	Size          formula.Vars               `json:"size"`                // Finished dimensions
	FlatSize      *imposition.Dimensions     `json:"flat_size,omitempty"` // Overrides the product formulas
	PlateID       string                     `json:"plate_id"`
	Settings      model.QuoteSettings        `json:"settings"`
	Accessories   []model.SelectedAccessory  `json:"accessories,omitempty"`
	Consumables   []model.SelectedConsumable `json:"consumables,omitempty"`
	Notes         string                     `json:"notes,omitempty"`
}

// Quoter turns requests into costed quotes against a catalog.
type Quoter struct {
	Rates   model.Rates
	Catalog *model.Catalog
}

func New(rates model.Rates, catalog *model.Catalog) *Quoter {
	return &Quoter{Rates: rates, Catalog: catalog}
}

// Quote resolves the plate and product type of req, imposes the flat size on
// the plate and prices the run. An item that does not fit is not an error:
// the returned quote has zero plates and reports Infeasible.
func (q *Quoter) Quote(req Request) (model.Quote, error) {
	if req.Quantity <= 0 {
		return model.Quote{}, ErrInvalidQuantity
	}

	plate := q.Catalog.FindPlateByID(req.PlateID)
	if plate == nil {
		return model.Quote{}, fmt.Errorf("%w: %s", ErrUnknownPlate, req.PlateID)
	}

	pt := model.ProductType{Name: req.ProductName}
	if req.ProductTypeID != "" {
		found := q.Catalog.FindProductTypeByID(req.ProductTypeID)
		if found == nil {
			return model.Quote{}, fmt.Errorf("%w: %s", ErrUnknownProductType, req.ProductTypeID)
		}
		pt = *found
	}

	flat, err := q.flatSize(req, pt)
	if err != nil {
		return model.Quote{}, err
	}

	result := imposition.Compute(flat, plate.Dimensions(), req.Settings.Spacing)
	cost := model.ComputeProductionCosts(*plate, req.Quantity, result.ItemsPerPlate, req.Settings, q.Rates, req.Accessories, req.Consumables)

	study := strings.TrimSpace(req.StudyNumber)
	if study == "" {
		study = model.DefaultStudyPrefix
	}

	elements := make([]model.Element, len(pt.Elements))
	copy(elements, pt.Elements)
	accessories := make([]model.SelectedAccessory, len(req.Accessories))
	copy(accessories, req.Accessories)
	consumables := make([]model.SelectedConsumable, len(req.Consumables))
	copy(consumables, req.Consumables)

	return model.Quote{
		StudyNumber:   study,
		ProductTypeID: pt.ID,
		ProductName:   pt.Name,
		Quantity:      req.Quantity,
		Width:         req.Size.Width,
		Length:        req.Size.Length,
		Height:        req.Size.Height,
		FlatWidth:     flat.Width,
		FlatHeight:    flat.Height,
		PlateID:       plate.ID,
		PlateName:     plate.Name,
		Settings:      req.Settings,
		Rates:         q.Rates,
		Imposition:    result,
		Cost:          cost,
		Accessories:   accessories,
		Consumables:   consumables,
		Elements:      elements,
		Notes:         req.Notes,
	}, nil
}

func (q *Quoter) flatSize(req Request, pt model.ProductType) (imposition.Dimensions, error) {
	if req.FlatSize != nil {
		return *req.FlatSize, nil
	}
	flat, err := formula.FlatSize(pt, req.Size)
	if err != nil {
		return imposition.Dimensions{}, fmt.Errorf("failed to compute flat size: %w", err)
	}
	return flat, nil
}
