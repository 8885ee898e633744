package engine

import (
	"sort"

	"github.com/piwi3910/PlateQuote/internal/imposition"
	"github.com/piwi3910/PlateQuote/internal/model"
)

// PlateComparison holds the imposition and material cost of one candidate
// plate for a run.
type PlateComparison struct {
	Plate      model.Plate           `json:"plate"`
	Imposition imposition.Result     `json:"imposition"`
	Material   model.QuoteCostResult `json:"material"`
	Efficiency float64               `json:"efficiency"` // Percent of the plate covered
}

// Fits reports whether at least one item fits on the plate.
func (pc PlateComparison) Fits() bool {
	return pc.Imposition.ItemsPerPlate > 0
}

// ComparePlates imposes item on every plate and ranks them by material cost
// for quantity copies. Plates that cannot hold the item sort last; ties keep
// catalog order.
func ComparePlates(item imposition.Dimensions, quantity int, spacing float64, plates []model.Plate) []PlateComparison {
	results := make([]PlateComparison, 0, len(plates))

	for _, plate := range plates {
		sheet := plate.Dimensions()
		result := imposition.Compute(item, sheet, spacing)

		results = append(results, PlateComparison{
			Plate:      plate,
			Imposition: result,
			Material:   model.ComputeQuoteCost(quantity, result.ItemsPerPlate, plate.Cost),
			Efficiency: result.Efficiency(sheet),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Fits() != b.Fits() {
			return a.Fits()
		}
		return a.Material.TotalCost < b.Material.TotalCost
	})

	return results
}

// BestPlate returns the cheapest plate that fits, or false when none does.
func BestPlate(comparisons []PlateComparison) (PlateComparison, bool) {
	for _, c := range comparisons {
		if c.Fits() {
			return c, true
		}
	}
	return PlateComparison{}, false
}

// SpacingScenario is the outcome of imposing with one spacing value.
type SpacingScenario struct {
	Name       string                `json:"name"`
	Spacing    float64               `json:"spacing"`
	Imposition imposition.Result     `json:"imposition"`
	Material   model.QuoteCostResult `json:"material"`
}

// CompareSpacings shows what-if alternatives around the current spacing:
// the current value, half of it and no spacing at all.
func CompareSpacings(item imposition.Dimensions, plate model.Plate, quantity int, spacing float64) []SpacingScenario {
	type candidate struct {
		name    string
		spacing float64
	}
	candidates := []candidate{{"Current spacing", spacing}}
	if spacing > 1.0 {
		candidates = append(candidates, candidate{"Half spacing", spacing * 0.5})
	}
	if spacing > 0 {
		candidates = append(candidates, candidate{"No spacing", 0})
	}

	scenarios := make([]SpacingScenario, 0, len(candidates))
	for _, c := range candidates {
		result := imposition.Compute(item, plate.Dimensions(), c.spacing)
		scenarios = append(scenarios, SpacingScenario{
			Name:       c.name,
			Spacing:    c.spacing,
			Imposition: result,
			Material:   model.ComputeQuoteCost(quantity, result.ItemsPerPlate, plate.Cost),
		})
	}
	return scenarios
}
