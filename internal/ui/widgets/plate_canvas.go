package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PlateQuote/internal/imposition"
	"github.com/piwi3910/PlateQuote/internal/model"
)

// Item colors alternate so neighbouring copies stay distinguishable.
var itemColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
}

var (
	plateColor  = color.NRGBA{R: 236, G: 236, B: 230, A: 255}
	borderColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	itemBorder  = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
)

// PlateCanvas draws a plate and the copies placed on it, to scale.
type PlateCanvas struct {
	widget.BaseWidget
	plate     imposition.Dimensions
	result    imposition.Result
	maxWidth  float32
	maxHeight float32
}

func NewPlateCanvas(plate imposition.Dimensions, result imposition.Result, maxW, maxH float32) *PlateCanvas {
	pc := &PlateCanvas{
		plate:     plate,
		result:    result,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetImposition replaces the drawing and refreshes the widget.
func (pc *PlateCanvas) SetImposition(plate imposition.Dimensions, result imposition.Result) {
	pc.plate = plate
	pc.result = result
	pc.Refresh()
}

func (pc *PlateCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPlateCanvasRenderer(pc)
}

// scale returns the factor mapping plate millimeters to canvas units.
func (pc *PlateCanvas) scale() float32 {
	w, h := float32(pc.plate.Width), float32(pc.plate.Height)
	if w <= 0 || h <= 0 {
		return 0
	}
	s := pc.maxWidth / w
	if sy := pc.maxHeight / h; sy < s {
		s = sy
	}
	return s
}

type plateCanvasRenderer struct {
	pc      *PlateCanvas
	objects []fyne.CanvasObject
}

func newPlateCanvasRenderer(pc *PlateCanvas) *plateCanvasRenderer {
	r := &plateCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (r *plateCanvasRenderer) rebuild() {
	r.objects = nil

	scale := r.pc.scale()
	if scale == 0 {
		return
	}
	canvasW := float32(r.pc.plate.Width) * scale
	canvasH := float32(r.pc.plate.Height) * scale

	bg := canvas.NewRectangle(plateColor)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = borderColor
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)

	if r.pc.result.ItemsPerPlate == 0 {
		msg := canvas.NewText("Item does not fit on this plate", color.NRGBA{R: 200, G: 0, B: 0, A: 255})
		msg.TextStyle = fyne.TextStyle{Bold: true}
		msg.Move(fyne.NewPos(8, canvasH/2-8))
		r.objects = append(r.objects, msg)
		return
	}

	for i, rect := range r.pc.result.Layout {
		px := float32(rect.X) * scale
		py := float32(rect.Y) * scale
		pw := float32(rect.Width) * scale
		ph := float32(rect.Height) * scale

		fill := canvas.NewRectangle(itemColors[i%len(itemColors)])
		fill.Resize(fyne.NewSize(pw, ph))
		fill.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, fill)

		outline := canvas.NewRectangle(color.Transparent)
		outline.StrokeColor = itemBorder
		outline.StrokeWidth = 1
		outline.Resize(fyne.NewSize(pw, ph))
		outline.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, outline)

		if pw > 18 && ph > 14 {
			label := canvas.NewText(fmt.Sprintf("%d", i+1), color.Black)
			label.TextSize = 10
			label.Move(fyne.NewPos(px+3, py+2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *plateCanvasRenderer) Layout(size fyne.Size)        {}
func (r *plateCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *plateCanvasRenderer) Destroy()                     {}
func (r *plateCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *plateCanvasRenderer) MinSize() fyne.Size {
	scale := r.pc.scale()
	return fyne.NewSize(float32(r.pc.plate.Width)*scale, float32(r.pc.plate.Height)*scale)
}

// ImpositionSummary describes a result in one line, e.g.
// "9 per plate (3 x 3, normal), 12 plates, 77.1% used".
func ImpositionSummary(plate imposition.Dimensions, result imposition.Result, platesNeeded int) string {
	if result.ItemsPerPlate == 0 {
		return "Does not fit"
	}
	cols, rows := result.Grid()
	return fmt.Sprintf("%d per plate (%d x %d, %s), %d plate(s), %.1f%% used",
		result.ItemsPerPlate, cols, rows, result.Orientation, platesNeeded, result.Efficiency(plate))
}

// RenderQuote lays out the imposition drawing of a quote above its summary.
func RenderQuote(q *model.Quote, plate model.Plate) fyne.CanvasObject {
	if q == nil {
		return widget.NewLabel("No quote yet. Fill in the form and click Calculate.")
	}

	header := widget.NewLabel(fmt.Sprintf("%s (%.0f x %.0f), flat %.0f x %.0f mm",
		plate.Name, plate.Width, plate.Height, q.FlatWidth, q.FlatHeight))
	header.TextStyle = fyne.TextStyle{Bold: true}

	summary := widget.NewLabel(ImpositionSummary(plate.Dimensions(), q.Imposition, q.Cost.Material.PlatesNeeded))
	if q.Infeasible() {
		summary.Importance = widget.DangerImportance
	}

	pc := NewPlateCanvas(plate.Dimensions(), q.Imposition, 600, 400)
	return container.NewVBox(header, container.NewCenter(pc), summary)
}
