package model

import (
	"github.com/google/uuid"

	"github.com/piwi3910/PlateQuote/internal/imposition"
)

// Plate represents a raw material sheet that items are cut from.
type Plate struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Width    float64 `json:"width"`    // mm
	Height   float64 `json:"height"`   // mm
	Cost     float64 `json:"cost"`     // Price of one plate
	Material string  `json:"material"` // e.g. "PVC 3mm"
}

func NewPlate(name string, w, h, cost float64, material string) Plate {
	return Plate{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Width:    w,
		Height:   h,
		Cost:     cost,
		Material: material,
	}
}

// Dimensions returns the plate footprint for the imposition engine.
func (p Plate) Dimensions() imposition.Dimensions {
	return imposition.Dimensions{Width: p.Width, Height: p.Height}
}

// Accessory is a purchased part added to a display (hooks, feet, clips).
type Accessory struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"` // Unit price
}

func NewAccessory(name string, price float64) Accessory {
	return Accessory{
		ID:    uuid.New().String()[:8],
		Name:  name,
		Price: price,
	}
}

// Consumable is a workshop supply sold by size (tape, adhesive, film).
type Consumable struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Size  float64 `json:"size"` // Roll length or pack size
}

func NewConsumable(name string, price, size float64) Consumable {
	return Consumable{
		ID:    uuid.New().String()[:8],
		Name:  name,
		Price: price,
		Size:  size,
	}
}

// UnitPrice returns the price per unit of size, or 0 when size is unset.
func (c Consumable) UnitPrice() float64 {
	if c.Size <= 0 {
		return 0
	}
	return c.Price / c.Size
}

// Element is one named component of a product type.
type Element struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ProductType describes a kind of display and how its flat (unfolded) size
// derives from the finished dimensions. Formulas use l (width), L (length)
// and H (height).
type ProductType struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	FlatWidthFormula  string    `json:"flat_width_formula"`
	FlatHeightFormula string    `json:"flat_height_formula"`
	Elements          []Element `json:"elements"`
}

// Default flat-size formulas for a new product type.
const (
	DefaultFlatWidthFormula  = "l"
	DefaultFlatHeightFormula = "L"
)

func NewProductType(name string) ProductType {
	return ProductType{
		ID:                uuid.New().String()[:8],
		Name:              name,
		FlatWidthFormula:  DefaultFlatWidthFormula,
		FlatHeightFormula: DefaultFlatHeightFormula,
		Elements:          []Element{},
	}
}

// PrintMode selects the printer pace.
type PrintMode string

const (
	PrintModeProduction PrintMode = "production" // Fast pass
	PrintModeQuality    PrintMode = "quality"    // Half speed
)

// Pace returns the time multiplier of the mode.
func (m PrintMode) Pace() float64 {
	if m == PrintModeQuality {
		return 2
	}
	return 1
}

// SelectedAccessory is an accessory line on a quote.
type SelectedAccessory struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns Price * Quantity.
func (sa SelectedAccessory) LineTotal() float64 {
	return sa.Price * float64(sa.Quantity)
}

// AddAccessory merges qty of acc into lines, increasing the quantity of an
// existing line rather than duplicating it. Non-positive quantities are ignored.
func AddAccessory(lines []SelectedAccessory, acc Accessory, qty int) []SelectedAccessory {
	if qty <= 0 {
		return lines
	}
	for i := range lines {
		if lines[i].ID == acc.ID {
			lines[i].Quantity += qty
			return lines
		}
	}
	return append(lines, SelectedAccessory{ID: acc.ID, Name: acc.Name, Price: acc.Price, Quantity: qty})
}

// RemoveAccessory drops the line with the given accessory ID.
func RemoveAccessory(lines []SelectedAccessory, id string) []SelectedAccessory {
	out := lines[:0:0]
	for _, l := range lines {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

// SelectedConsumable is a consumable line on a quote. Size is the amount used
// by one item, in the unit the consumable is sold by.
type SelectedConsumable struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"` // Price per unit of size
	Size      float64 `json:"size"`
}

// LineTotal returns the cost of the consumable for quantity items.
func (sc SelectedConsumable) LineTotal(quantity int) float64 {
	if quantity <= 0 || sc.Size <= 0 {
		return 0
	}
	return sc.UnitPrice * sc.Size * float64(quantity)
}

// AddConsumable adds size per item of c to lines. Adding a consumable that is
// already listed adds to its size. Non-positive sizes are ignored.
func AddConsumable(lines []SelectedConsumable, c Consumable, size float64) []SelectedConsumable {
	if size <= 0 {
		return lines
	}
	for i := range lines {
		if lines[i].ID == c.ID {
			lines[i].Size += size
			return lines
		}
	}
	return append(lines, SelectedConsumable{ID: c.ID, Name: c.Name, UnitPrice: c.UnitPrice(), Size: size})
}

// RemoveConsumable drops the line with the given consumable ID.
func RemoveConsumable(lines []SelectedConsumable, id string) []SelectedConsumable {
	out := lines[:0:0]
	for _, l := range lines {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

// QuoteSettings holds the production options chosen for one quote.
type QuoteSettings struct {
	Spacing float64 `json:"spacing"` // Gap between copies on the plate (mm)

	// Printing
	PrintSurfacePercent float64   `json:"print_surface_percent"` // 0-100, share of plate area inked
	PrintMode           PrintMode `json:"print_mode"`
	RectoVerso          bool      `json:"recto_verso"`      // Printed on both faces
	RectoVersoType      string    `json:"recto_verso_type"` // Free-form descriptor, e.g. "identical"
	Varnish             bool      `json:"varnish"`
	FlatColor           bool      `json:"flat_color"`

	// Cutting, assembly and packing times
	CuttingSecondsPerPose  float64 `json:"cutting_seconds_per_pose"`
	AssemblySecondsPerItem float64 `json:"assembly_seconds_per_item"`
	PackSecondsPerItem     float64 `json:"pack_seconds_per_item"`
	AssemblyNotice         bool    `json:"assembly_notice"` // Printed notice packed with each item
}

func DefaultSettings() QuoteSettings {
	return QuoteSettings{
		Spacing:                10.0,
		PrintSurfacePercent:    0,
		PrintMode:              PrintModeProduction,
		CuttingSecondsPerPose:  20,
		AssemblySecondsPerItem: 0,
		PackSecondsPerItem:     0,
	}
}

// Rates holds the shop's hourly rates and consumable prices.
type Rates struct {
	PrintLaborPerHour   float64 `json:"print_labor_per_hour"`
	CuttingPerHour      float64 `json:"cutting_per_hour"`
	AssemblyPerHour     float64 `json:"assembly_per_hour"`
	PackingPerHour      float64 `json:"packing_per_hour"`
	InkPricePerLiter    float64 `json:"ink_price_per_liter"`
	InkBaseMLPerPlate   float64 `json:"ink_base_ml_per_plate"` // Ink used by a fully inked plate, per face, halved
	PrintSetupMinutes   float64 `json:"print_setup_minutes"`
	CuttingSetupMinutes float64 `json:"cutting_setup_minutes"`
	NoticeCostPerItem   float64 `json:"notice_cost_per_item"`
	FinishingSurcharge  float64 `json:"finishing_surcharge"` // Ink surcharge per finishing option (0.05 = 5%)
}

func DefaultRates() Rates {
	return Rates{
		PrintLaborPerHour:   65,
		CuttingPerHour:      65,
		AssemblyPerHour:     45,
		PackingPerHour:      45,
		InkPricePerLiter:    40,
		InkBaseMLPerPlate:   20,
		PrintSetupMinutes:   15,
		CuttingSetupMinutes: 15,
		NoticeCostPerItem:   0.10,
		FinishingSurcharge:  0.05,
	}
}
