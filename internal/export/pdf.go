// Package export writes quotes to PDF, Excel and label sheets.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/PlateQuote/internal/model"
)

// ErrInvalidPlate is returned when the plate has no usable size to draw.
var ErrInvalidPlate = errors.New("plate has no usable size")

// itemColor represents an RGB color for a placed copy.
type itemColor struct {
	R, G, B int
}

// itemColors mirrors the color scheme used in the UI plate canvas widget.
var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	quoteQRSize  = 40.0
)

// ExportQuotePDF writes the quote to a PDF file at path.
func ExportQuotePDF(path string, q model.Quote, plate model.Plate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PDF file: %w", err)
	}
	if err := WriteQuotePDF(f, q, plate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteQuotePDF renders the quote as a two-page A4 landscape document: the
// to-scale imposition of the item on the plate, then the cost breakdown with
// a QR code of the quote summary.
func WriteQuotePDF(w io.Writer, q model.Quote, plate model.Plate) error {
	if !(plate.Width > 0) || !(plate.Height > 0) || math.IsInf(plate.Width, 0) || math.IsInf(plate.Height, 0) {
		return ErrInvalidPlate
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	renderImpositionPage(pdf, tr, q, plate)

	pdf.AddPage()
	if err := renderCostPage(pdf, tr, q); err != nil {
		return err
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// renderImpositionPage draws the plate and every placed copy to scale.
func renderImpositionPage(pdf *fpdf.Fpdf, tr func(string) string, q model.Quote, plate model.Plate) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s - %s (%.0f x %.0f mm)", q.StudyNumber, plate.Name, plate.Width, plate.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, tr(title), "", 0, "L", false, 0, "")

	res := q.Imposition
	cols, rows := res.Grid()
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Item: %.1f x %.1f mm | %d per plate (%d x %d, %s) | Spacing: %.1f mm | Efficiency: %.1f%%",
		q.FlatWidth, q.FlatHeight, res.ItemsPerPlate, cols, rows, res.Orientation, q.Settings.Spacing, res.Efficiency(plate.Dimensions()))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/plate.Width, drawHeight/plate.Height)

	canvasW := plate.Width * scale
	canvasH := plate.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, r := range res.Layout {
		col := itemColors[i%len(itemColors)]
		rw := r.Width * scale
		rh := r.Height * scale
		rx := offsetX + r.X*scale
		ry := offsetY + r.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(rx, ry, rw, rh, "FD")

		if rw > 8 && rh > 6 {
			pdf.SetFont("Helvetica", "", labelFontSize(rw, rh))
			pdf.SetTextColor(0, 0, 0)
			label := fmt.Sprintf("%d", i+1)
			labelW := pdf.GetStringWidth(label)
			pdf.SetXY(rx+(rw-labelW)/2, ry+rh/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}

	if q.Infeasible() {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(200, 0, 0)
		msg := "Item does not fit on this plate"
		msgW := pdf.GetStringWidth(msg)
		pdf.SetXY(offsetX+(canvasW-msgW)/2, offsetY+canvasH/2-4)
		pdf.CellFormat(msgW, 8, msg, "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	drawDimensionAnnotations(pdf, plate, offsetX, offsetY, canvasW, canvasH)
}

// drawDimensionAnnotations adds width and height labels outside the plate rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, plate model.Plate, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", plate.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", plate.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderCostPage draws the quote details, the cost breakdown table and the QR code.
func renderCostPage(pdf *fpdf.Fpdf, tr func(string) string, q model.Quote) error {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, tr("Quote "+q.StudyNumber), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	details := []struct {
		label string
		value string
	}{
		{"Product", q.ProductName},
		{"Quantity", fmt.Sprintf("%d", q.Quantity)},
		{"Finished size (l x L x H)", fmt.Sprintf("%.0f x %.0f x %.0f mm", q.Width, q.Length, q.Height)},
		{"Flat size", fmt.Sprintf("%.1f x %.1f mm", q.FlatWidth, q.FlatHeight)},
		{"Plate", q.PlateName},
		{"Items per plate", fmt.Sprintf("%d", q.Imposition.ItemsPerPlate)},
		{"Plates needed", fmt.Sprintf("%d", q.Cost.Material.PlatesNeeded)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range details {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(100, 6, tr(item.value), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cost Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{45, 110, 35}
	headers := []string{"Line", "Details", "Cost"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, line := range CostLines(q) {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		cells := []string{line.Label, line.Details, fmt.Sprintf("%.2f", line.Amount)}
		aligns := []string{"L", "L", "R"}
		xPos = marginLeft
		for j, cell := range cells {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, tr(cell), "1", 0, aligns[j], true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(colWidths[0]+colWidths[1], 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[2], 7, fmt.Sprintf("%.2f", q.TotalCost()), "1", 0, "R", false, 0, "")
	y += 7
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(colWidths[0]+colWidths[1], 6, "Unit cost", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[2], 6, fmt.Sprintf("%.4f", q.UnitCost()), "1", 0, "R", false, 0, "")

	png, err := qrPNG(QuoteSummary(q), 256)
	if err != nil {
		return err
	}
	imgName := "qr_quote_" + q.ID
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, pageWidth-marginRight-quoteQRSize, marginTop+18, quoteQRSize, quoteQRSize, false, opts, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := fmt.Sprintf("Quote %s - created %s", q.ID, q.CreatedAt)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footer, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return pdf.Error()
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 10
	case minDim > 20:
		return 8
	default:
		return 6
	}
}
