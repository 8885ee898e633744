package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PlateQuote/internal/engine"
	"github.com/piwi3910/PlateQuote/internal/model"
)

func TestNewFormState_AppliesDefaults(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.DefaultSpacing = 4
	cfg.DefaultQuantity = 250
	cfg.DefaultPrintMode = model.PrintModeQuality

	f := NewFormState(cfg)
	assert.Equal(t, model.DefaultStudyPrefix, f.StudyNumber)
	assert.Equal(t, 250, f.Quantity)
	assert.Equal(t, 4.0, f.Settings.Spacing)
	assert.Equal(t, model.PrintModeQuality, f.Settings.PrintMode)
}

func TestFormState_RequestWithProductType(t *testing.T) {
	catalog := model.DefaultCatalog()
	f := NewFormState(model.DefaultAppConfig())
	f.ProductType = "Counter display"
	f.Width, f.Length, f.Height = 200, 300, 400
	f.PlateName = "PVC 3mm 2440x1220"

	req, err := f.Request(&catalog)
	require.NoError(t, err)
	assert.Equal(t, catalog.FindPlateByName("PVC 3mm 2440x1220").ID, req.PlateID)
	assert.Equal(t, catalog.FindProductTypeByName("Counter display").ID, req.ProductTypeID)
	assert.Equal(t, "Counter display", req.ProductName)
	assert.Nil(t, req.FlatSize)

	q, err := engine.New(model.DefaultRates(), &catalog).Quote(req)
	require.NoError(t, err)
	// 100 + l + L + l by 100 + H + l + 100
	assert.Equal(t, 800.0, q.FlatWidth)
	assert.Equal(t, 800.0, q.FlatHeight)
}

func TestFormState_RequestOverrideFlat(t *testing.T) {
	catalog := model.DefaultCatalog()
	f := NewFormState(model.DefaultAppConfig())
	f.PlateName = "PVC 3mm 2440x1220"
	f.OverrideFlat = true
	f.FlatWidth, f.FlatHeight = 300, 400

	req, err := f.Request(&catalog)
	require.NoError(t, err)
	require.NotNil(t, req.FlatSize)
	assert.Equal(t, 300.0, req.FlatSize.Width)

	f.FlatHeight = 0
	_, err = f.Request(&catalog)
	assert.Error(t, err)
}

func TestFormState_RequestErrors(t *testing.T) {
	catalog := model.DefaultCatalog()

	f := NewFormState(model.DefaultAppConfig())
	_, err := f.Request(&catalog)
	assert.EqualError(t, err, "select a plate")

	f.PlateName = "PVC 3mm 2440x1220"
	f.Quantity = 0
	_, err = f.Request(&catalog)
	assert.Error(t, err)

	f.Quantity = 10
	f.ProductType = "Pallet wrap"
	_, err = f.Request(&catalog)
	assert.Error(t, err)
}

func TestFormStateFromQuote(t *testing.T) {
	catalog := model.DefaultCatalog()
	f := NewFormState(model.DefaultAppConfig())
	f.ProductType = "Floor display"
	f.Width, f.Length = 500, 700
	f.PlateName = "Akylux 3mm 1200x1600"
	f.Accessories = model.AddAccessory(nil, catalog.Accessories[0], 4)

	req, err := f.Request(&catalog)
	require.NoError(t, err)
	q, err := engine.New(model.DefaultRates(), &catalog).Quote(req)
	require.NoError(t, err)

	back := FormStateFromQuote(q, &catalog)
	assert.Equal(t, "Floor display", back.ProductType)
	assert.False(t, back.OverrideFlat)
	assert.Equal(t, f.PlateName, back.PlateName)
	assert.Equal(t, f.Accessories, back.Accessories)

	// A quote whose product type is gone reloads with its flat size.
	q.ProductTypeID = "gone"
	back = FormStateFromQuote(q, &catalog)
	assert.True(t, back.OverrideFlat)
	assert.Equal(t, 500.0, back.FlatWidth)
	assert.Equal(t, 700.0, back.FlatHeight)
}

func TestFormState_FlatSize(t *testing.T) {
	catalog := model.DefaultCatalog()
	f := NewFormState(model.DefaultAppConfig())
	f.Width, f.Length, f.Height = 200, 300, 400

	flat, err := f.FlatSize(&catalog)
	require.NoError(t, err)
	assert.Equal(t, 200.0, flat.Width)
	assert.Equal(t, 300.0, flat.Height)

	f.ProductType = "Counter display"
	flat, err = f.FlatSize(&catalog)
	require.NoError(t, err)
	assert.Equal(t, 800.0, flat.Width)
	assert.Equal(t, 800.0, flat.Height)

	f.OverrideFlat = true
	f.FlatWidth, f.FlatHeight = 120, 90
	flat, err = f.FlatSize(&catalog)
	require.NoError(t, err)
	assert.Equal(t, 120.0, flat.Width)

	f.OverrideFlat = false
	f.ProductType = "Pallet wrap"
	_, err = f.FlatSize(&catalog)
	assert.Error(t, err)
}
