package export

import (
	"fmt"

	"github.com/piwi3910/PlateQuote/internal/model"
)

// CostLine is one row of a quote's cost breakdown.
type CostLine struct {
	Label   string  `json:"label"`
	Details string  `json:"details"`
	Amount  float64 `json:"amount"`
}

// CostLines lists the cost breakdown of q in display order.
func CostLines(q model.Quote) []CostLine {
	cb := q.Cost
	s := q.Settings
	rates := q.Rates

	faces := "recto"
	if s.RectoVerso {
		faces = "recto-verso"
	}

	return []CostLine{
		{
			Label:   "Material",
			Details: fmt.Sprintf("%d plate(s) of %s", cb.Material.PlatesNeeded, q.PlateName),
			Amount:  cb.Material.TotalCost,
		},
		{
			Label: "Printing",
			Details: fmt.Sprintf("%.0f%% %s, %s, %.3f L ink, %s",
				s.PrintSurfacePercent, faces, s.PrintMode, cb.Printing.InkLiters, model.FormatMinutes(cb.Printing.TimeMinutes)),
			Amount: cb.Printing.Cost,
		},
		{
			Label:   "Cutting",
			Details: cuttingDetails(q, rates),
			Amount:  cb.Cutting,
		},
		{
			Label:   "Assembly",
			Details: model.AssemblyDetails(q.Quantity, s),
			Amount:  cb.Assembly,
		},
		{
			Label:   "Packaging",
			Details: model.PackagingDetails(q.Quantity, s, rates),
			Amount:  cb.Packaging,
		},
		{
			Label:   "Accessories",
			Details: fmt.Sprintf("%d line(s)", len(q.Accessories)),
			Amount:  cb.Accessories,
		},
		{
			Label:   "Consumables",
			Details: fmt.Sprintf("%d ref(s)", len(q.Consumables)),
			Amount:  cb.Consumables,
		},
	}
}

func cuttingDetails(q model.Quote, rates model.Rates) string {
	if q.Infeasible() {
		return "not cut"
	}
	return model.CuttingDetails(q.Quantity, q.Settings, rates)
}
