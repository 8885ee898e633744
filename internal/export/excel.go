package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PlateQuote/internal/model"
)

const registerSheet = "Quotes"

var registerHeaders = []string{
	"Quote ID", "Study", "Created", "Product", "Quantity",
	"Flat width (mm)", "Flat height (mm)", "Plate", "Per plate", "Orientation", "Plates",
	"Material", "Printing", "Cutting", "Assembly", "Packaging", "Accessories", "Consumables", "Total", "Unit cost",
}

// ExportQuotesExcel writes the quote register to an .xlsx file at path.
func ExportQuotesExcel(path string, quotes []model.Quote) error {
	f, err := buildRegister(quotes)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteQuotesExcel streams the quote register workbook to w.
func WriteQuotesExcel(w io.Writer, quotes []model.Quote) error {
	f, err := buildRegister(quotes)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// buildRegister lays out one row per quote under a bold header row, followed
// by a totals row.
func buildRegister(quotes []model.Quote) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), registerSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(registerSheet, "A1", &registerHeaders); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(registerHeaders))
	if err := f.SetCellStyle(registerSheet, "A1", lastCol+"1", bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	var total float64
	for i, q := range quotes {
		cb := q.Cost
		row := []interface{}{
			q.ID, q.StudyNumber, q.CreatedAt, q.ProductName, q.Quantity,
			q.FlatWidth, q.FlatHeight, q.PlateName, q.Imposition.ItemsPerPlate, q.Imposition.Orientation.String(), cb.Material.PlatesNeeded,
			roundCents(cb.Material.TotalCost), roundCents(cb.Printing.Cost), roundCents(cb.Cutting),
			roundCents(cb.Assembly), roundCents(cb.Packaging), roundCents(cb.Accessories), roundCents(cb.Consumables),
			roundCents(cb.Total()), cb.UnitCost(q.Quantity),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(registerSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write quote %s: %w", q.ID, err)
		}
		total += cb.Total()
	}

	totalRow := len(quotes) + 2
	labelCell, _ := excelize.CoordinatesToCellName(len(registerHeaders)-2, totalRow)
	valueCell, _ := excelize.CoordinatesToCellName(len(registerHeaders)-1, totalRow)
	if err := f.SetCellValue(registerSheet, labelCell, "Total"); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellValue(registerSheet, valueCell, roundCents(total)); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(registerSheet, labelCell, valueCell, bold); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}
