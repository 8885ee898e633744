package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piwi3910/PlateQuote/internal/engine"
	"github.com/piwi3910/PlateQuote/internal/formula"
	"github.com/piwi3910/PlateQuote/internal/imposition"
	"github.com/piwi3910/PlateQuote/internal/model"
)

// FormState is everything the user entered on the quote tab. It is kept
// separate from the widgets so undo/redo can restore it wholesale.
type FormState struct {
	StudyNumber string
	ProductType string // Product type name; empty means default formulas
	ProductName string
	Quantity    int

	Width  float64 // l, mm
	Length float64 // L, mm
	Height float64 // H, mm

	// When OverrideFlat is set the flat size is entered directly and the
	// product formulas are ignored.
	OverrideFlat bool
	FlatWidth    float64
	FlatHeight   float64

	PlateName   string
	Settings    model.QuoteSettings
	Accessories []model.SelectedAccessory
	Consumables []model.SelectedConsumable
	Notes       string
}

// NewFormState returns a blank form carrying the user's defaults.
func NewFormState(cfg model.AppConfig) FormState {
	s := model.DefaultSettings()
	cfg.ApplyToSettings(&s)
	return FormState{
		StudyNumber: cfg.DefaultStudyPrefix,
		Quantity:    cfg.DefaultQuantity,
		Settings:    s,
	}
}

// Clone returns a copy that shares no slices with f.
func (f FormState) Clone() FormState {
	if f.Accessories != nil {
		f.Accessories = append([]model.SelectedAccessory(nil), f.Accessories...)
	}
	if f.Consumables != nil {
		f.Consumables = append([]model.SelectedConsumable(nil), f.Consumables...)
	}
	return f
}

// Request resolves the plate and product type names against the catalog.
func (f FormState) Request(catalog *model.Catalog) (engine.Request, error) {
	plate := catalog.FindPlateByName(f.PlateName)
	if plate == nil {
		return engine.Request{}, errors.New("select a plate")
	}
	if f.Quantity <= 0 {
		return engine.Request{}, errors.New("quantity must be > 0")
	}

	req := engine.Request{
		StudyNumber: strings.TrimSpace(f.StudyNumber),
		ProductName: strings.TrimSpace(f.ProductName),
		Quantity:    f.Quantity,
		Size:        formula.Vars{Width: f.Width, Length: f.Length, Height: f.Height},
		PlateID:     plate.ID,
		Settings:    f.Settings,
		Accessories: f.Clone().Accessories,
		Consumables: f.Clone().Consumables,
		Notes:       f.Notes,
	}

	if f.ProductType != "" {
		pt := catalog.FindProductTypeByName(f.ProductType)
		if pt == nil {
			return engine.Request{}, fmt.Errorf("unknown product type %q", f.ProductType)
		}
		req.ProductTypeID = pt.ID
		if req.ProductName == "" {
			req.ProductName = pt.Name
		}
	}

	if f.OverrideFlat {
		if f.FlatWidth <= 0 || f.FlatHeight <= 0 {
			return engine.Request{}, errors.New("flat width and height must be > 0")
		}
		req.FlatSize = &imposition.Dimensions{Width: f.FlatWidth, Height: f.FlatHeight}
	}
	return req, nil
}

// FlatSize resolves the footprint to impose: the direct entry when
// OverrideFlat is set, otherwise the product type formulas.
func (f FormState) FlatSize(catalog *model.Catalog) (imposition.Dimensions, error) {
	if f.OverrideFlat {
		if f.FlatWidth <= 0 || f.FlatHeight <= 0 {
			return imposition.Dimensions{}, errors.New("flat width and height must be > 0")
		}
		return imposition.Dimensions{Width: f.FlatWidth, Height: f.FlatHeight}, nil
	}

	var pt model.ProductType
	if f.ProductType != "" {
		found := catalog.FindProductTypeByName(f.ProductType)
		if found == nil {
			return imposition.Dimensions{}, fmt.Errorf("unknown product type %q", f.ProductType)
		}
		pt = *found
	}
	return formula.FlatSize(pt, formula.Vars{Width: f.Width, Length: f.Length, Height: f.Height})
}

// FormStateFromQuote reloads a saved quote into the form.
func FormStateFromQuote(q model.Quote, catalog *model.Catalog) FormState {
	f := FormState{
		StudyNumber: q.StudyNumber,
		ProductName: q.ProductName,
		Quantity:    q.Quantity,
		Width:       q.Width,
		Length:      q.Length,
		Height:      q.Height,
		PlateName:   q.PlateName,
		Settings:    q.Settings,
		Accessories: q.Accessories,
		Consumables: q.Consumables,
		Notes:       q.Notes,
	}
	if pt := catalog.FindProductTypeByID(q.ProductTypeID); pt != nil {
		f.ProductType = pt.Name
	} else {
		// Without its product type the quote can only be reproduced from
		// the flat size it was costed with.
		f.OverrideFlat = true
		f.FlatWidth = q.FlatWidth
		f.FlatHeight = q.FlatHeight
	}
	return f.Clone()
}
