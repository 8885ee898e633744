package imposition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_NormalOrientation(t *testing.T) {
	// 4 cols (400/100) x 6 rows (300/50)
	result := Compute(Dimensions{Width: 100, Height: 50}, Dimensions{Width: 400, Height: 300}, 0)

	assert.Equal(t, 24, result.ItemsPerPlate)
	assert.Equal(t, OrientationNormal, result.Orientation)
	assert.Len(t, result.Layout, 24)
}

func TestCompute_RotatedWhenItFitsMore(t *testing.T) {
	// Normal: 1 col x 3 rows = 3. Rotated (100x300): 4 cols x 1 row = 4.
	result := Compute(Dimensions{Width: 300, Height: 100}, Dimensions{Width: 400, Height: 350}, 0)

	assert.Equal(t, 4, result.ItemsPerPlate)
	assert.Equal(t, OrientationRotated, result.Orientation)
	require.Len(t, result.Layout, 4)
	for _, r := range result.Layout {
		assert.Equal(t, 100.0, r.Width)
		assert.Equal(t, 300.0, r.Height)
	}
}

func TestCompute_Spacing(t *testing.T) {
	// floor(410/110) = 3 per axis
	result := Compute(Dimensions{Width: 100, Height: 100}, Dimensions{Width: 400, Height: 400}, 10)
	assert.Equal(t, 9, result.ItemsPerPlate)
}

func TestCompute_ItemLargerThanPlate(t *testing.T) {
	result := Compute(Dimensions{Width: 500, Height: 500}, Dimensions{Width: 400, Height: 300}, 0)

	assert.Equal(t, 0, result.ItemsPerPlate)
	assert.Equal(t, OrientationNormal, result.Orientation)
	assert.NotNil(t, result.Layout)
	assert.Empty(t, result.Layout)
}

func TestCompute_LayoutPositions(t *testing.T) {
	result := Compute(Dimensions{Width: 100, Height: 100}, Dimensions{Width: 210, Height: 210}, 5)

	require.Equal(t, 4, result.ItemsPerPlate)
	assert.Equal(t, []Rect{
		{X: 0, Y: 0, Width: 100, Height: 100},
		{X: 105, Y: 0, Width: 100, Height: 100},
		{X: 0, Y: 105, Width: 100, Height: 100},
		{X: 105, Y: 105, Width: 100, Height: 100},
	}, result.Layout)
}

func TestCompute_SingleItemExactlyPlate(t *testing.T) {
	result := Compute(Dimensions{Width: 400, Height: 300}, Dimensions{Width: 400, Height: 300}, 0)
	assert.Equal(t, 1, result.ItemsPerPlate)
	assert.Len(t, result.Layout, 1)
}

func TestCompute_ExactPlateSideIgnoresSpacing(t *testing.T) {
	// An item equal to the plate in both axes fits once whatever the gap.
	for _, spacing := range []float64{0, 1, 10, 2.5, 1000} {
		result := Compute(Dimensions{Width: 400, Height: 300}, Dimensions{Width: 400, Height: 300}, spacing)
		assert.Equal(t, 1, result.ItemsPerPlate, "spacing %v", spacing)
	}
}

func TestCompute_ZeroSpacingExactMultiples(t *testing.T) {
	// Exact multiples without spacing must not lose the last copy.
	cases := []struct {
		name        string
		item, plate Dimensions
		want        int
	}{
		{"integral", Dimensions{Width: 100, Height: 100}, Dimensions{Width: 300, Height: 200}, 6},
		{"fractional", Dimensions{Width: 0.3, Height: 0.1}, Dimensions{Width: 0.9, Height: 0.3}, 9},
		{"decimal mm", Dimensions{Width: 297.5, Height: 210.25}, Dimensions{Width: 1190, Height: 841}, 16},
		{"just short", Dimensions{Width: 100, Height: 100}, Dimensions{Width: 299.99, Height: 100}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Compute(tc.item, tc.plate, 0)
			assert.Equal(t, tc.want, result.ItemsPerPlate)
		})
	}
}

func TestCompute_PositiveSpacingExactBoundary(t *testing.T) {
	// 3 x 100 + 2 x 10 = 320 exactly.
	result := Compute(Dimensions{Width: 100, Height: 100}, Dimensions{Width: 320, Height: 100}, 10)
	assert.Equal(t, 3, result.ItemsPerPlate)

	// Fractional spacing on an exact boundary: 2 x 50 + 0.1 = 100.1.
	result = Compute(Dimensions{Width: 50, Height: 50}, Dimensions{Width: 100.1, Height: 50}, 0.1)
	assert.Equal(t, 2, result.ItemsPerPlate)
}

func TestCompute_TieFavorsNormal(t *testing.T) {
	// Square item: both orientations give the same total.
	result := Compute(Dimensions{Width: 100, Height: 100}, Dimensions{Width: 400, Height: 300}, 0)
	assert.Equal(t, OrientationNormal, result.Orientation)

	// Non-square tie: 200x100 on 400x400 gives 2x4 either way.
	result = Compute(Dimensions{Width: 200, Height: 100}, Dimensions{Width: 400, Height: 400}, 0)
	assert.Equal(t, 8, result.ItemsPerPlate)
	assert.Equal(t, OrientationNormal, result.Orientation)
	assert.Equal(t, Dimensions{Width: 200, Height: 100}, result.PlacedSize())
}

func TestCompute_DegenerateInputs(t *testing.T) {
	plate := Dimensions{Width: 400, Height: 300}
	cases := []struct {
		name    string
		item    Dimensions
		plate   Dimensions
		spacing float64
	}{
		{"zero width", Dimensions{Width: 0, Height: 100}, plate, 0},
		{"zero height", Dimensions{Width: 100, Height: 0}, plate, 0},
		{"negative width", Dimensions{Width: -100, Height: 100}, plate, 0},
		{"zero plate", Dimensions{Width: 100, Height: 100}, Dimensions{}, 0},
		{"negative spacing", Dimensions{Width: 100, Height: 100}, plate, -5},
		{"NaN item", Dimensions{Width: math.NaN(), Height: 100}, plate, 0},
		{"infinite plate", Dimensions{Width: 100, Height: 100}, Dimensions{Width: math.Inf(1), Height: 300}, 0},
		{"microscopic item", Dimensions{Width: 1e-9, Height: 1e-9}, plate, 0},
		{"over layout cap", Dimensions{Width: 1, Height: 1}, Dimensions{Width: 2050, Height: 1525}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Compute(tc.item, tc.plate, tc.spacing)
			assert.Equal(t, 0, result.ItemsPerPlate)
			assert.Equal(t, OrientationNormal, result.Orientation)
			assert.NotNil(t, result.Layout)
			assert.Len(t, result.Layout, 0)
		})
	}
}

func TestCompute_AtLayoutCap(t *testing.T) {
	result := Compute(Dimensions{Width: 1, Height: 1}, Dimensions{Width: 1000, Height: 1000}, 0)
	assert.Equal(t, MaxItemsPerPlate, result.ItemsPerPlate)
	assert.Len(t, result.Layout, MaxItemsPerPlate)
}

func TestCompute_LayoutProperties(t *testing.T) {
	items := []Dimensions{{100, 50}, {300, 100}, {33.3, 71.7}, {1200, 10}, {5, 5}}
	plates := []Dimensions{{400, 300}, {1200, 1600}, {2050, 1525}, {100, 100}}
	spacings := []float64{0, 2.5, 10}

	for _, item := range items {
		for _, plate := range plates {
			for _, spacing := range spacings {
				result := Compute(item, plate, spacing)
				require.Len(t, result.Layout, result.ItemsPerPlate)
				if result.ItemsPerPlate == 0 {
					continue
				}

				placed := result.PlacedSize()
				assert.Greater(t, placed.Width, 0.0)
				assert.Greater(t, placed.Height, 0.0)
				assert.True(t, placed == item || placed == item.Swapped())

				for i, r := range result.Layout {
					assert.Equal(t, placed.Width, r.Width)
					assert.Equal(t, placed.Height, r.Height)
					assert.LessOrEqual(t, r.Right(), plate.Width+1e-6, "rect %d overflows right", i)
					assert.LessOrEqual(t, r.Bottom(), plate.Height+1e-6, "rect %d overflows bottom", i)
				}
				assert.InDelta(t, float64(result.ItemsPerPlate)*item.Area(), result.UsedArea(), 1e-6)
			}
		}
	}
}

func TestCompute_RowMajorOrder(t *testing.T) {
	result := Compute(Dimensions{Width: 100, Height: 50}, Dimensions{Width: 400, Height: 300}, 0)
	cols, rows := result.Grid()
	require.Equal(t, 4, cols)
	require.Equal(t, 6, rows)

	for i, r := range result.Layout {
		row, col := i/cols, i%cols
		assert.Equal(t, float64(col)*100, r.X)
		assert.Equal(t, float64(row)*50, r.Y)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	item := Dimensions{Width: 123.4, Height: 56.7}
	plate := Dimensions{Width: 1700, Height: 2100}
	first := Compute(item, plate, 10)
	second := Compute(item, plate, 10)
	assert.Equal(t, first, second)
}

func TestResult_Efficiency(t *testing.T) {
	plate := Dimensions{Width: 400, Height: 300}
	result := Compute(Dimensions{Width: 100, Height: 50}, plate, 0)
	assert.InDelta(t, 100.0, result.Efficiency(plate), 1e-9)
	assert.Equal(t, 0.0, result.Efficiency(Dimensions{}))

	none := Compute(Dimensions{Width: 500, Height: 500}, plate, 0)
	assert.Equal(t, 0.0, none.Efficiency(plate))
	cols, rows := none.Grid()
	assert.Zero(t, cols)
	assert.Zero(t, rows)
}

func TestFit(t *testing.T) {
	assert.Equal(t, 0, fit(400, 0, 10))
	assert.Equal(t, 0, fit(400, -1, 0))
	assert.Equal(t, 4, fit(400, 100, 0))
	assert.Equal(t, 3, fit(400, 100, 10))
	assert.Equal(t, 1, fit(100, 100, 1000))
	assert.Equal(t, 3, fit(0.9, 0.3, 0))
	assert.Equal(t, 0, fit(99.9, 100, 0))
}
