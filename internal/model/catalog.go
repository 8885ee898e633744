package model

// Catalog holds the shop's plates, accessories, consumables and product types.
type Catalog struct {
	Plates       []Plate       `json:"plates"`
	Accessories  []Accessory   `json:"accessories"`
	Consumables  []Consumable  `json:"consumables"`
	ProductTypes []ProductType `json:"product_types"`
}

// DefaultCatalog returns a catalog populated with the shop's common stock.
func DefaultCatalog() Catalog {
	counter := NewProductType("Counter display")
	counter.FlatWidthFormula = "100 + l + L + l"
	counter.FlatHeightFormula = "100 + H + l + 100"
	counter.Elements = []Element{
		{Name: "Body", Quantity: 1},
		{Name: "Header", Quantity: 1},
		{Name: "Base", Quantity: 1},
	}

	floor := NewProductType("Floor display")
	floor.Elements = []Element{
		{Name: "Main structure", Quantity: 1},
		{Name: "Header", Quantity: 1},
		{Name: "Base", Quantity: 1},
		{Name: "Shelf", Quantity: 3},
	}

	return Catalog{
		Plates: []Plate{
			NewPlate("Akylux 3mm 1200x1600", 1200, 1600, 6.12, "Akylux 3mm"),
			NewPlate("BC 30 2 brown 1700x2100", 1700, 2100, 2.44, "BC 30 2 brown"),
			NewPlate("EE 1C/1B (20S1G1W) 1700x2100", 1700, 2100, 4.73, "EE 1C/1B (20S1G1W)"),
			NewPlate("EE 1C/1B (20S1G1W) 2000x2500", 2000, 2500, 6.83, "EE 1C/1B (20S1G1W)"),
			NewPlate("PVC 5mm 2050x1525", 2050, 1525, 23.62, "PVC 5mm"),
			NewPlate("PVC 500 microns 1000x1400", 1000, 1400, 5.82, "PVC 500 microns"),
			NewPlate("PVC 3mm 2440x1220", 2440, 1220, 15.55, "PVC 3mm"),
			NewPlate("PVC 300 microns 1000x1400", 1000, 1400, 3.42, "PVC 300 microns"),
			NewPlate("PVC 700 microns 1000x1400", 1000, 1400, 8.20, "PVC 700 microns"),
		},
		Accessories: []Accessory{
			NewAccessory("Shelf clip", 0.12),
			NewAccessory("Display hook 150mm", 0.35),
			NewAccessory("Adhesive foot", 0.08),
		},
		Consumables: []Consumable{
			NewConsumable("Double-sided tape 12mm", 4.50, 50),
			NewConsumable("Hot-melt glue sticks", 12.00, 100),
		},
		ProductTypes: []ProductType{counter, floor},
	}
}

// Clone returns a deep copy that can be edited without touching c.
func (c Catalog) Clone() Catalog {
	out := Catalog{
		Plates:       append([]Plate{}, c.Plates...),
		Accessories:  append([]Accessory{}, c.Accessories...),
		Consumables:  append([]Consumable{}, c.Consumables...),
		ProductTypes: make([]ProductType, len(c.ProductTypes)),
	}
	for i, pt := range c.ProductTypes {
		pt.Elements = append([]Element{}, pt.Elements...)
		out.ProductTypes[i] = pt
	}
	return out
}

// FindPlateByID returns a pointer to the plate with the given ID, or nil.
func (c *Catalog) FindPlateByID(id string) *Plate {
	for i := range c.Plates {
		if c.Plates[i].ID == id {
			return &c.Plates[i]
		}
	}
	return nil
}

// FindPlateByName returns a pointer to the first plate with the given name, or nil.
func (c *Catalog) FindPlateByName(name string) *Plate {
	for i := range c.Plates {
		if c.Plates[i].Name == name {
			return &c.Plates[i]
		}
	}
	return nil
}

// PlateNames returns a list of plate names for UI dropdowns.
func (c *Catalog) PlateNames() []string {
	names := make([]string, len(c.Plates))
	for i, p := range c.Plates {
		names[i] = p.Name
	}
	return names
}

// RemovePlate removes a plate by ID. Returns true if found and removed.
func (c *Catalog) RemovePlate(id string) bool {
	for i, p := range c.Plates {
		if p.ID == id {
			c.Plates = append(c.Plates[:i], c.Plates[i+1:]...)
			return true
		}
	}
	return false
}

// FindAccessoryByID returns a pointer to the accessory with the given ID, or nil.
func (c *Catalog) FindAccessoryByID(id string) *Accessory {
	for i := range c.Accessories {
		if c.Accessories[i].ID == id {
			return &c.Accessories[i]
		}
	}
	return nil
}

// FindAccessoryByName returns a pointer to the first accessory with the given name, or nil.
func (c *Catalog) FindAccessoryByName(name string) *Accessory {
	for i := range c.Accessories {
		if c.Accessories[i].Name == name {
			return &c.Accessories[i]
		}
	}
	return nil
}

// AccessoryNames returns a list of accessory names for UI dropdowns.
func (c *Catalog) AccessoryNames() []string {
	names := make([]string, len(c.Accessories))
	for i, a := range c.Accessories {
		names[i] = a.Name
	}
	return names
}

// RemoveAccessory removes an accessory by ID. Returns true if found and removed.
func (c *Catalog) RemoveAccessory(id string) bool {
	for i, a := range c.Accessories {
		if a.ID == id {
			c.Accessories = append(c.Accessories[:i], c.Accessories[i+1:]...)
			return true
		}
	}
	return false
}

// FindConsumableByName returns a pointer to the first consumable with the given name, or nil.
func (c *Catalog) FindConsumableByName(name string) *Consumable {
	for i := range c.Consumables {
		if c.Consumables[i].Name == name {
			return &c.Consumables[i]
		}
	}
	return nil
}

func (c *Catalog) ConsumableNames() []string {
	names := make([]string, len(c.Consumables))
	for i, cs := range c.Consumables {
		names[i] = cs.Name
	}
	return names
}

// RemoveConsumable removes a consumable by ID. Returns true if found and removed.
func (c *Catalog) RemoveConsumable(id string) bool {
	for i, cs := range c.Consumables {
		if cs.ID == id {
			c.Consumables = append(c.Consumables[:i], c.Consumables[i+1:]...)
			return true
		}
	}
	return false
}

// FindProductTypeByID returns a pointer to the product type with the given ID, or nil.
func (c *Catalog) FindProductTypeByID(id string) *ProductType {
	for i := range c.ProductTypes {
		if c.ProductTypes[i].ID == id {
			return &c.ProductTypes[i]
		}
	}
	return nil
}

// FindProductTypeByName returns a pointer to the first product type with the given name, or nil.
func (c *Catalog) FindProductTypeByName(name string) *ProductType {
	for i := range c.ProductTypes {
		if c.ProductTypes[i].Name == name {
			return &c.ProductTypes[i]
		}
	}
	return nil
}

// ProductTypeNames returns a list of product type names for UI dropdowns.
func (c *Catalog) ProductTypeNames() []string {
	names := make([]string, len(c.ProductTypes))
	for i, pt := range c.ProductTypes {
		names[i] = pt.Name
	}
	return names
}

// EnsureProductType returns the product type with the given name, creating
// it with default formulas when missing.
func (c *Catalog) EnsureProductType(name string) ProductType {
	if pt := c.FindProductTypeByName(name); pt != nil {
		return *pt
	}
	pt := NewProductType(name)
	c.ProductTypes = append(c.ProductTypes, pt)
	return pt
}

// RemoveProductType removes a product type by ID. Returns true if found and removed.
func (c *Catalog) RemoveProductType(id string) bool {
	for i, pt := range c.ProductTypes {
		if pt.ID == id {
			c.ProductTypes = append(c.ProductTypes[:i], c.ProductTypes[i+1:]...)
			return true
		}
	}
	return false
}
