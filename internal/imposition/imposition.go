// Package imposition computes how many identical rectangular items can be
// cut from one rectangular plate when all copies share a single grid
// orientation, and where each copy sits on the plate.
//
// All values are millimeters. Coordinates are plate-local with the origin
// at the top-left corner, x growing rightward and y growing downward.
package imposition

import "math"

// Orientation describes how the item is placed on the whole plate.
type Orientation string

const (
	OrientationNormal  Orientation = "normal"  // Item placed as given
	OrientationRotated Orientation = "rotated" // Width and height swapped
	OrientationMixed   Orientation = "mixed"   // Reserved; never produced by Compute
)

func (o Orientation) String() string {
	return string(o)
}

// MaxItemsPerPlate bounds the size of a generated layout. Inputs that would
// yield more copies than this (e.g. a near-zero item on a large plate) are
// treated as degenerate and produce the empty result.
const MaxItemsPerPlate = 1_000_000

// Dimensions is the flat footprint of an item or a plate.
type Dimensions struct {
	Width  float64 `json:"width"`  // mm
	Height float64 `json:"height"` // mm
}

// Area returns Width * Height.
func (d Dimensions) Area() float64 {
	return d.Width * d.Height
}

// Swapped returns the dimensions rotated by 90 degrees.
func (d Dimensions) Swapped() Dimensions {
	return Dimensions{Width: d.Height, Height: d.Width}
}

// Rect is the bounding box of one placed copy.
type Rect struct {
	X      float64 `json:"x"`      // Position from left edge (mm)
	Y      float64 `json:"y"`      // Position from top edge (mm)
	Width  float64 `json:"width"`  // Placed width (mm)
	Height float64 `json:"height"` // Placed height (mm)
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Result is the best single-orientation grid for an item on a plate.
// Layout always has exactly ItemsPerPlate entries in row-major order.
type Result struct {
	ItemsPerPlate int         `json:"items_per_plate"`
	Orientation   Orientation `json:"orientation"`
	Layout        []Rect      `json:"layout"`
}

// Fits reports whether at least one copy fits on the plate.
func (r Result) Fits() bool {
	return r.ItemsPerPlate > 0
}

// PlacedSize returns the size shared by every rect in the layout,
// or zero dimensions when nothing fits.
func (r Result) PlacedSize() Dimensions {
	if len(r.Layout) == 0 {
		return Dimensions{}
	}
	return Dimensions{Width: r.Layout[0].Width, Height: r.Layout[0].Height}
}

// Grid returns the number of columns and rows of the layout.
func (r Result) Grid() (cols, rows int) {
	if len(r.Layout) == 0 {
		return 0, 0
	}
	y0 := r.Layout[0].Y
	for _, rect := range r.Layout {
		if rect.Y != y0 {
			break
		}
		cols++
	}
	return cols, len(r.Layout) / cols
}

// UsedArea returns the total area covered by placed copies.
func (r Result) UsedArea() float64 {
	return float64(r.ItemsPerPlate) * r.PlacedSize().Area()
}

// Efficiency returns the percentage of the plate area covered by copies.
func (r Result) Efficiency(plate Dimensions) float64 {
	total := plate.Area()
	if total <= 0 {
		return 0
	}
	return (r.UsedArea() / total) * 100.0
}

// empty is the result for any input where no copy fits.
func empty() Result {
	return Result{
		ItemsPerPlate: 0,
		Orientation:   OrientationNormal,
		Layout:        []Rect{},
	}
}

// grid is one candidate arrangement.
type grid struct {
	orientation Orientation
	cols, rows  int
	placed      Dimensions
}

func (g grid) total() int {
	return g.cols * g.rows
}

// Compute returns the grid layout that places the most copies of item on
// plate with the given gap between neighbouring copies. The normal and the
// rotated orientation are evaluated; the rotated one is chosen only when it
// places strictly more copies.
//
// Compute never fails: invalid or degenerate input (non-positive item side,
// negative or non-finite values, oversize item) yields zero copies, normal
// orientation and an empty layout. So does a grid of more than
// MaxItemsPerPlate copies: an empty result means "does not fit" or "too many
// copies to lay out", and callers that need to tell them apart must compare
// the item with the plate themselves.
func Compute(item, plate Dimensions, spacing float64) Result {
	if !validInputs(item, plate, spacing) {
		return empty()
	}

	normal := grid{
		orientation: OrientationNormal,
		cols:        fit(plate.Width, item.Width, spacing),
		rows:        fit(plate.Height, item.Height, spacing),
		placed:      item,
	}
	rotated := grid{
		orientation: OrientationRotated,
		cols:        fit(plate.Width, item.Height, spacing),
		rows:        fit(plate.Height, item.Width, spacing),
		placed:      item.Swapped(),
	}

	best := normal
	if rotated.total() > normal.total() {
		best = rotated
	}
	if best.total() == 0 || best.total() > MaxItemsPerPlate {
		return empty()
	}

	return Result{
		ItemsPerPlate: best.total(),
		Orientation:   best.orientation,
		Layout:        layout(best, spacing),
	}
}

// layout emits one rect per grid cell, row by row, left to right.
func layout(g grid, spacing float64) []Rect {
	rects := make([]Rect, 0, g.total())
	pw, ph := g.placed.Width, g.placed.Height
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			rects = append(rects, Rect{
				X:      float64(col) * (pw + spacing),
				Y:      float64(row) * (ph + spacing),
				Width:  pw,
				Height: ph,
			})
		}
	}
	return rects
}

func validInputs(item, plate Dimensions, spacing float64) bool {
	for _, v := range []float64{item.Width, item.Height, plate.Width, plate.Height, spacing} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return item.Width > 0 && item.Height > 0
}
