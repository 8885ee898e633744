package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/PlateQuote/internal/imposition"
)

// arcSegments is the number of chords used to sample arcs and circles.
const arcSegments = 32

// FootprintResult holds the flat size read from a die-line drawing.
type FootprintResult struct {
	Size     imposition.Dimensions
	Entities int // Entities that contributed to Size
	Errors   []string
	Warnings []string
}

// bounds is an axis-aligned bounding box grown point by point.
type bounds struct {
	minX, minY float64
	maxX, maxY float64
	empty      bool
}

func newBounds() bounds {
	return bounds{empty: true}
}

func (b *bounds) add(x, y float64) {
	if b.empty {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.empty = false
		return
	}
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func (b bounds) size() imposition.Dimensions {
	if b.empty {
		return imposition.Dimensions{}
	}
	return imposition.Dimensions{Width: b.maxX - b.minX, Height: b.maxY - b.minY}
}

// ImportFootprintDXF reads a die line and returns the bounding box of its
// geometry, i.e. the flat size of the item to impose. LWPOLYLINE (with
// bulges), LINE, ARC and CIRCLE entities are measured; others are skipped.
func ImportFootprintDXF(path string) FootprintResult {
	result := FootprintResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	b := newBounds()
	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			addLwPolyline(&b, e)
		case *entity.Circle:
			addArc(&b, e.Center[0], e.Center[1], e.Radius, 0, 2*math.Pi)
		case *entity.Arc:
			start := e.Angle[0] * math.Pi / 180
			end := e.Angle[1] * math.Pi / 180
			if end <= start {
				end += 2 * math.Pi
			}
			addArc(&b, e.Circle.Center[0], e.Circle.Center[1], e.Circle.Radius, start, end)
		case *entity.Line:
			b.add(e.Start[0], e.Start[1])
			b.add(e.End[0], e.End[1])
		default:
			skipped++
			continue
		}
		result.Entities++
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}

	size := b.size()
	if size.Width < 0.01 || size.Height < 0.01 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("No usable outline found (%.2f x %.2f mm)", size.Width, size.Height))
		return result
	}

	result.Size = size
	return result
}

// addLwPolyline adds the vertices of a polyline, sampling bulged segments.
func addLwPolyline(b *bounds, lw *entity.LwPolyline) {
	n := len(lw.Vertices)
	for i := 0; i < n; i++ {
		v := lw.Vertices[i]
		b.add(v[0], v[1])

		if i >= len(lw.Bulges) || math.Abs(lw.Bulges[i]) < 1e-9 {
			continue
		}
		next := lw.Vertices[(i+1)%n]
		cx, cy, r, start, end := bulgeArc(v[0], v[1], next[0], next[1], lw.Bulges[i])
		if r > 0 {
			addArc(b, cx, cy, r, start, end)
		}
	}
}

// bulgeArc returns the circle and sweep of a DXF bulged segment. The bulge
// is the tangent of a quarter of the included angle; positive bulges turn
// counter-clockwise.
func bulgeArc(x1, y1, x2, y2, bulge float64) (cx, cy, r, start, end float64) {
	dx, dy := x2-x1, y2-y1
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return 0, 0, 0, 0, 0
	}

	sagitta := math.Abs(bulge) * chord / 2
	r = (chord*chord/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chord, dx/chord
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	dist := r - sagitta
	cx = (x1+x2)/2 + perpX*dist
	cy = (y1+y2)/2 + perpY*dist

	start = math.Atan2(y1-cy, x1-cx)
	end = math.Atan2(y2-cy, x2-cx)
	if bulge < 0 {
		if end > start {
			end -= 2 * math.Pi
		}
	} else if end < start {
		end += 2 * math.Pi
	}
	return cx, cy, r, start, end
}

// addArc samples an arc from start to end (radians) into b.
func addArc(b *bounds, cx, cy, r, start, end float64) {
	for i := 0; i <= arcSegments; i++ {
		t := float64(i) / float64(arcSegments)
		angle := start + t*(end-start)
		b.add(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
}
