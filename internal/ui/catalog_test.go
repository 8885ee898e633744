package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PlateQuote/internal/model"
)

func TestParseElements(t *testing.T) {
	elements, err := parseElements("1 x Body\n\n3 x Shelf\nBox header\n")
	require.NoError(t, err)
	assert.Equal(t, []model.Element{
		{Name: "Body", Quantity: 1},
		{Name: "Shelf", Quantity: 3},
		{Name: "Box header", Quantity: 1},
	}, elements)
}

func TestParseElements_Errors(t *testing.T) {
	_, err := parseElements("0 x Body")
	assert.Error(t, err)

	_, err = parseElements("2 x ")
	assert.Error(t, err)
}

func TestParseElements_Empty(t *testing.T) {
	elements, err := parseElements("  \n")
	require.NoError(t, err)
	assert.Empty(t, elements)
}

func TestFormatElements_RoundTrip(t *testing.T) {
	in := []model.Element{{Name: "Body", Quantity: 1}, {Name: "Shelf", Quantity: 3}}
	out, err := parseElements(formatElements(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParsePositive(t *testing.T) {
	v, err := parsePositive(" 12,5 ", "width")
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	_, err = parsePositive("0", "width")
	assert.EqualError(t, err, "width must be a number > 0")

	v, err = parseNonNegative("0", "price")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	_, err = parseNonNegative("-1", "price")
	assert.Error(t, err)
}
