package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/PlateQuote/internal/model"
)

// PlateLabel holds the data encoded into each plate label's QR code.
type PlateLabel struct {
	QuoteID     string `json:"quote"`
	StudyNumber string `json:"study"`
	Plate       string `json:"plate"`
	Index       int    `json:"index"` // 1-based plate number within the run
	Count       int    `json:"count"`
	Items       int    `json:"items"` // Copies to cut from this plate
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectPlateLabels returns one label per plate of the run. The last plate
// carries only the remaining copies.
func CollectPlateLabels(q model.Quote) []PlateLabel {
	count := q.Cost.Material.PlatesNeeded
	perPlate := q.Imposition.ItemsPerPlate
	if count <= 0 || perPlate <= 0 {
		return nil
	}

	labels := make([]PlateLabel, 0, count)
	remaining := q.Quantity
	for i := 1; i <= count; i++ {
		items := perPlate
		if remaining < items {
			items = remaining
		}
		remaining -= items
		labels = append(labels, PlateLabel{
			QuoteID:     q.ID,
			StudyNumber: q.StudyNumber,
			Plate:       q.PlateName,
			Index:       i,
			Count:       count,
			Items:       items,
		})
	}
	return labels
}

// ExportPlateLabels generates a PDF of QR-coded labels, one per plate to cut,
// laid out on Avery 5160 sheets (3 columns x 10 rows on US Letter).
func ExportPlateLabels(path string, q model.Quote) error {
	labels := CollectPlateLabels(q)
	if len(labels) == 0 {
		return fmt.Errorf("no plates to label")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		x := labelMarginLeft + float64(posOnPage%labelCols)*labelWidth
		y := labelMarginTop + float64(posOnPage/labelCols)*labelHeight

		if err := renderLabel(pdf, tr, x, y, label); err != nil {
			return fmt.Errorf("failed to render label %d: %w", label.Index, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, info PlateLabel) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	png, err := qrPNG(info, 256)
	if err != nil {
		return err
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.QuoteID, info.Index)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("%s  %d/%d", info.StudyNumber, info.Index, info.Count), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	plate := info.Plate
	if pdf.GetStringWidth(plate) > textW {
		for len(plate) > 0 && pdf.GetStringWidth(plate+"...") > textW {
			plate = plate[:len(plate)-1]
		}
		plate += "..."
	}
	pdf.CellFormat(textW, 3.5, tr(plate), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%d items", info.Items), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return nil
}
