package model

// QuoteCostResult holds the material side of a quote.
type QuoteCostResult struct {
	PlatesNeeded int     `json:"plates_needed"`
	TotalCost    float64 `json:"total_cost"` // PlatesNeeded * plate cost
}

// ComputeQuoteCost returns how many plates a run of quantity items consumes
// and their cost. Partial plates always count as whole plates. A plate that
// holds no item yields zero plates and zero cost; callers must check
// itemsPerPlate themselves to tell "nothing needed" from "impossible".
func ComputeQuoteCost(quantity, itemsPerPlate int, plateCost float64) QuoteCostResult {
	if itemsPerPlate <= 0 || quantity <= 0 {
		return QuoteCostResult{}
	}

	platesNeeded := quantity / itemsPerPlate
	if quantity%itemsPerPlate != 0 {
		platesNeeded++
	}

	return QuoteCostResult{
		PlatesNeeded: platesNeeded,
		TotalCost:    float64(platesNeeded) * plateCost,
	}
}

// PrintingCost details the printing line of a quote.
type PrintingCost struct {
	InkLiters   float64 `json:"ink_liters"`
	InkCost     float64 `json:"ink_cost"`
	TimeMinutes float64 `json:"time_minutes"` // Including setup
	LaborCost   float64 `json:"labor_cost"`
	Cost        float64 `json:"cost"` // InkCost + LaborCost
}

// CostBreakdown is the full production cost of a quote.
type CostBreakdown struct {
	Material    QuoteCostResult `json:"material"`
	Printing    PrintingCost    `json:"printing"`
	Cutting     float64         `json:"cutting"`
	Assembly    float64         `json:"assembly"`
	Packaging   float64         `json:"packaging"`
	Accessories float64         `json:"accessories"`
	Consumables float64         `json:"consumables"`
}

// Total returns the sum of every cost line.
func (cb CostBreakdown) Total() float64 {
	return cb.Material.TotalCost + cb.Printing.Cost + cb.Cutting + cb.Assembly + cb.Packaging + cb.Accessories + cb.Consumables
}

// UnitCost returns Total divided by quantity, or 0 for an empty run.
func (cb CostBreakdown) UnitCost(quantity int) float64 {
	if quantity <= 0 {
		return 0
	}
	return cb.Total() / float64(quantity)
}

// ComputePrintingCost prices ink and press time for the plates of a run.
// Ink scales with the inked share of each plate and doubles for recto-verso;
// each finishing option adds a surcharge on ink. Press time is proportional
// to the printed area, slowed down by quality mode, plus a fixed setup.
func ComputePrintingCost(plate Plate, platesNeeded int, s QuoteSettings, r Rates) PrintingCost {
	if platesNeeded <= 0 {
		return PrintingCost{}
	}

	faces := 1.0
	if s.RectoVerso {
		faces = 2
	}
	surface := s.PrintSurfacePercent / 100.0

	inkLiters := (float64(platesNeeded) * r.InkBaseMLPerPlate * (surface * 2) / 1000.0) * faces

	finishing := 1.0
	if s.Varnish {
		finishing += r.FinishingSurcharge
	}
	if s.FlatColor {
		finishing += r.FinishingSurcharge
	}
	inkCost := inkLiters * r.InkPricePerLiter * finishing

	plateAreaM2 := (plate.Width * plate.Height) / 1_000_000.0
	printedAreaM2 := plateAreaM2 * surface
	minutesPerPlate := printedAreaM2 * s.PrintMode.Pace() * faces
	totalMinutes := minutesPerPlate*float64(platesNeeded) + r.PrintSetupMinutes

	laborCost := (totalMinutes / 60.0) * r.PrintLaborPerHour

	return PrintingCost{
		InkLiters:   inkLiters,
		InkCost:     inkCost,
		TimeMinutes: totalMinutes,
		LaborCost:   laborCost,
		Cost:        inkCost + laborCost,
	}
}

// CuttingSeconds returns the total cutting time of a run including setup.
func CuttingSeconds(quantity int, s QuoteSettings, r Rates) float64 {
	return s.CuttingSecondsPerPose*float64(quantity) + r.CuttingSetupMinutes*60
}

// ComputeProductionCosts prices every line of a quote. Printing and cutting
// are only charged when the item fits on the plate. Assembly, packaging,
// accessories and consumables depend on the quantity alone.
func ComputeProductionCosts(plate Plate, quantity, itemsPerPlate int, s QuoteSettings, r Rates, accessories []SelectedAccessory, consumables []SelectedConsumable) CostBreakdown {
	if quantity < 0 {
		quantity = 0
	}
	qty := float64(quantity)

	cb := CostBreakdown{
		Material: ComputeQuoteCost(quantity, itemsPerPlate, plate.Cost),
	}

	if cb.Material.PlatesNeeded > 0 {
		cb.Printing = ComputePrintingCost(plate, cb.Material.PlatesNeeded, s, r)
		cb.Cutting = (CuttingSeconds(quantity, s, r) / 3600.0) * r.CuttingPerHour
	}

	cb.Assembly = (s.AssemblySecondsPerItem * qty / 3600.0) * r.AssemblyPerHour

	cb.Packaging = (s.PackSecondsPerItem * qty / 3600.0) * r.PackingPerHour
	if s.AssemblyNotice {
		cb.Packaging += r.NoticeCostPerItem * qty
	}

	for _, a := range accessories {
		cb.Accessories += a.LineTotal()
	}
	for _, c := range consumables {
		cb.Consumables += c.LineTotal(quantity)
	}

	return cb
}
