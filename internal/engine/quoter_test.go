package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PlateQuote/internal/formula"
	"github.com/piwi3910/PlateQuote/internal/imposition"
	"github.com/piwi3910/PlateQuote/internal/model"
)

func testQuoter(t *testing.T) (*Quoter, *model.Catalog) {
	t.Helper()
	catalog := model.DefaultCatalog()
	return New(model.DefaultRates(), &catalog), &catalog
}

func TestQuote_ProductTypeFormulas(t *testing.T) {
	q, catalog := testQuoter(t)
	plate := catalog.FindPlateByName("PVC 500 microns 1000x1400")
	counter := catalog.FindProductTypeByName("Counter display")
	require.NotNil(t, plate)
	require.NotNil(t, counter)

	quote, err := q.Quote(Request{
		StudyNumber:   "ET-042",
		ProductTypeID: counter.ID,
		Quantity:      100,
		Size:          formula.Vars{Width: 100, Length: 150, Height: 200},
		PlateID:       plate.ID,
		Settings:      model.DefaultSettings(),
	})
	require.NoError(t, err)

	// 100+100+150+100 by 100+200+100+100
	assert.Equal(t, 450.0, quote.FlatWidth)
	assert.Equal(t, 500.0, quote.FlatHeight)
	// 2x2 normal beats 1x3 rotated with 10 mm spacing
	assert.Equal(t, 4, quote.Imposition.ItemsPerPlate)
	assert.Equal(t, imposition.OrientationNormal, quote.Imposition.Orientation)
	assert.Equal(t, 25, quote.Cost.Material.PlatesNeeded)
	assert.InDelta(t, 145.5, quote.Cost.Material.TotalCost, 1e-9)

	assert.Equal(t, "ET-042", quote.StudyNumber)
	assert.Equal(t, "Counter display", quote.ProductName)
	assert.Equal(t, plate.Name, quote.PlateName)
	assert.Len(t, quote.Elements, 3)
	assert.False(t, quote.Infeasible())
	assert.Greater(t, quote.TotalCost(), quote.Cost.Material.TotalCost)
}

func TestQuote_ExplicitFlatSizeInfeasible(t *testing.T) {
	q, catalog := testQuoter(t)
	plate := catalog.FindPlateByName("PVC 300 microns 1000x1400")
	require.NotNil(t, plate)

	quote, err := q.Quote(Request{
		Quantity: 10,
		FlatSize: &imposition.Dimensions{Width: 2000, Height: 2000},
		PlateID:  plate.ID,
		Settings: model.DefaultSettings(),
	})
	require.NoError(t, err)

	assert.True(t, quote.Infeasible())
	assert.Equal(t, 0, quote.Cost.Material.PlatesNeeded)
	assert.Equal(t, 0.0, quote.Cost.Printing.Cost)
	assert.Equal(t, 0.0, quote.Cost.Cutting)
	assert.Equal(t, model.DefaultStudyPrefix, quote.StudyNumber)
	assert.NotNil(t, quote.Imposition.Layout)
}

func TestQuote_DefaultFormulasWithoutProductType(t *testing.T) {
	q, catalog := testQuoter(t)
	plate := catalog.FindPlateByName("Akylux 3mm 1200x1600")
	require.NotNil(t, plate)

	s := model.DefaultSettings()
	s.Spacing = 0
	quote, err := q.Quote(Request{
		ProductName: "Shelf wobbler",
		Quantity:    48,
		Size:        formula.Vars{Width: 300, Length: 400},
		PlateID:     plate.ID,
		Settings:    s,
	})
	require.NoError(t, err)

	assert.Equal(t, "Shelf wobbler", quote.ProductName)
	assert.Equal(t, imposition.Dimensions{Width: 300, Height: 400}, quote.FlatSize())
	assert.Equal(t, 16, quote.Imposition.ItemsPerPlate)
	assert.Equal(t, 3, quote.Cost.Material.PlatesNeeded)
}

func TestQuote_Errors(t *testing.T) {
	q, catalog := testQuoter(t)
	plateID := catalog.Plates[0].ID

	_, err := q.Quote(Request{PlateID: "missing", Quantity: 1})
	assert.ErrorIs(t, err, ErrUnknownPlate)

	_, err = q.Quote(Request{PlateID: plateID, ProductTypeID: "missing", Quantity: 1})
	assert.ErrorIs(t, err, ErrUnknownProductType)

	_, err = q.Quote(Request{PlateID: plateID, Quantity: -1})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = q.Quote(Request{PlateID: plateID, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	catalog.ProductTypes = append(catalog.ProductTypes, model.ProductType{ID: "bad", Name: "Bad", FlatWidthFormula: "l * x"})
	_, err = q.Quote(Request{PlateID: plateID, ProductTypeID: "bad", Quantity: 1})
	assert.Error(t, err)
}

func TestQuote_CopiesAccessories(t *testing.T) {
	q, catalog := testQuoter(t)
	accessories := []model.SelectedAccessory{{ID: "a1", Name: "Clip", Price: 0.1, Quantity: 10}}

	quote, err := q.Quote(Request{
		Quantity:    10,
		Size:        formula.Vars{Width: 100, Length: 100},
		PlateID:     catalog.Plates[0].ID,
		Settings:    model.DefaultSettings(),
		Accessories: accessories,
	})
	require.NoError(t, err)

	accessories[0].Quantity = 99
	assert.Equal(t, 10, quote.Accessories[0].Quantity)
	assert.InDelta(t, 1.0, quote.Cost.Accessories, 1e-9)
}

func TestQuote_PricesConsumables(t *testing.T) {
	q, catalog := testQuoter(t)
	tape := catalog.Consumables[0]
	consumables := model.AddConsumable(nil, tape, 0.5)

	quote, err := q.Quote(Request{
		Quantity:    40,
		Size:        formula.Vars{Width: 100, Length: 100},
		PlateID:     catalog.Plates[0].ID,
		Settings:    model.DefaultSettings(),
		Consumables: consumables,
	})
	require.NoError(t, err)

	consumables[0].Size = 99
	require.Len(t, quote.Consumables, 1)
	assert.InDelta(t, 0.5, quote.Consumables[0].Size, 1e-9)
	assert.InDelta(t, tape.UnitPrice()*0.5*40, quote.Cost.Consumables, 1e-9)
	assert.InDelta(t, quote.Cost.Material.TotalCost+quote.Cost.Printing.Cost+quote.Cost.Cutting+quote.Cost.Consumables,
		quote.TotalCost(), 1e-9)
}
