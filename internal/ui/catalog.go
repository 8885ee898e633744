package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/PlateQuote/internal/formula"
	"github.com/piwi3910/PlateQuote/internal/importer"
	"github.com/piwi3910/PlateQuote/internal/model"
	"github.com/piwi3910/PlateQuote/internal/project"
)

// ─── Catalog Panel ─────────────────────────────────────────

func (a *App) buildCatalogPanel() fyne.CanvasObject {
	a.catalogContainer = container.NewStack()
	a.refreshCatalog()

	importBtn := widget.NewButtonWithIcon("Import Plates...", theme.FolderOpenIcon(), func() {
		a.importPlatesCSV()
	})
	mergeBtn := newButtonWithTooltip("Merge Catalog...", theme.ContentAddIcon(),
		"Add the entries of an exported catalog.json that are not in this catalog", func() {
			a.mergeCatalogFile()
		})
	exportBtn := widget.NewButtonWithIcon("Export Catalog...", theme.DocumentSaveIcon(), func() {
		a.exportCatalogFile()
	})

	toolbar := container.NewHBox(layout.NewSpacer(), importBtn, mergeBtn, exportBtn)
	return container.NewBorder(toolbar, nil, nil, nil, a.catalogContainer)
}

func (a *App) refreshCatalog() {
	if a.catalogContainer == nil {
		return
	}
	c := a.store.Catalog()
	tabs := container.NewAppTabs(
		container.NewTabItem("Plates", container.NewVScroll(a.buildPlateList(c))),
		container.NewTabItem("Product Types", container.NewVScroll(a.buildProductTypeList(c))),
		container.NewTabItem("Accessories", container.NewVScroll(a.buildAccessoryList(c))),
		container.NewTabItem("Consumables", container.NewVScroll(a.buildConsumableList(c))),
	)
	tabs.SetTabLocation(container.TabLocationLeading)
	a.catalogContainer.Objects = []fyne.CanvasObject{tabs}
	a.catalogContainer.Refresh()
}

// editCatalog applies fn to a copy of the catalog and persists the result.
func (a *App) editCatalog(fn func(c *model.Catalog)) {
	c := a.store.Catalog().Clone()
	fn(&c)
	if err := a.store.UpdateCatalog(c); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save catalog: %w", err), a.window)
		return
	}
	a.refreshCatalog()
	a.refreshForm()
}

func headerRow(labels ...string) *fyne.Container {
	row := container.NewGridWithColumns(len(labels))
	for _, l := range labels {
		row.Add(widget.NewLabelWithStyle(l, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	}
	return row
}

func parsePositive(text, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(text), ",", ".", 1), 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a number > 0", field)
	}
	return v, nil
}

func parseNonNegative(text, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(text), ",", ".", 1), 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a number >= 0", field)
	}
	return v, nil
}

// ─── Plates ────────────────────────────────────────────────

func (a *App) buildPlateList(c model.Catalog) fyne.CanvasObject {
	list := container.NewVBox()
	list.Add(container.NewHBox(layout.NewSpacer(),
		widget.NewButtonWithIcon("Add Plate", theme.ContentAddIcon(), func() {
			a.showPlateDialog(nil)
		})))

	if len(c.Plates) == 0 {
		list.Add(widget.NewLabel("No plates defined."))
		return list
	}

	list.Add(headerRow("Name", "Width", "Height", "Material", "Price", "", ""))
	list.Add(widget.NewSeparator())
	for _, p := range c.Plates {
		p := p
		list.Add(container.NewGridWithColumns(7,
			widget.NewLabel(p.Name),
			widget.NewLabel(fmt.Sprintf("%.0f mm", p.Width)),
			widget.NewLabel(fmt.Sprintf("%.0f mm", p.Height)),
			widget.NewLabel(p.Material),
			widget.NewLabel(fmt.Sprintf("%.2f", p.Cost)),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit plate", func() {
				a.showPlateDialog(&p)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete plate", func() {
				a.editCatalog(func(c *model.Catalog) { c.RemovePlate(p.ID) })
			}),
		))
	}
	return list
}

// showPlateDialog adds a plate, or edits existing when it is non-nil.
func (a *App) showPlateDialog(existing *model.Plate) {
	nameEntry := widget.NewEntry()
	widthEntry := widget.NewEntry()
	heightEntry := widget.NewEntry()
	materialEntry := widget.NewEntry()
	materialEntry.SetPlaceHolder("e.g., PVC 3mm, Akylux")
	costEntry := widget.NewEntry()

	title, confirm := "Add Plate", "Add"
	if existing != nil {
		title, confirm = "Edit Plate", "Save"
		nameEntry.SetText(existing.Name)
		widthEntry.SetText(strconv.FormatFloat(existing.Width, 'f', -1, 64))
		heightEntry.SetText(strconv.FormatFloat(existing.Height, 'f', -1, 64))
		materialEntry.SetText(existing.Material)
		costEntry.SetText(strconv.FormatFloat(existing.Cost, 'f', -1, 64))
	} else {
		nameEntry.SetText("New Plate")
		widthEntry.SetText("1000")
		heightEntry.SetText("1400")
		costEntry.SetText("0")
	}

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Width (mm)", widthEntry),
			widget.NewFormItem("Height (mm)", heightEntry),
			widget.NewFormItem("Material", materialEntry),
			widget.NewFormItem("Price per Plate", costEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, err := parsePositive(widthEntry.Text, "width")
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			h, err := parsePositive(heightEntry.Text, "height")
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			cost, err := parseNonNegative(costEntry.Text, "price")
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				name = fmt.Sprintf("%.0fx%.0f", w, h)
			}

			a.editCatalog(func(c *model.Catalog) {
				if existing == nil {
					c.Plates = append(c.Plates, model.NewPlate(name, w, h, cost, materialEntry.Text))
					return
				}
				if p := c.FindPlateByID(existing.ID); p != nil {
					p.Name, p.Width, p.Height, p.Cost, p.Material = name, w, h, cost, materialEntry.Text
				}
			})
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 380))
	form.Show()
}

// ─── Product Types ─────────────────────────────────────────

func (a *App) buildProductTypeList(c model.Catalog) fyne.CanvasObject {
	list := container.NewVBox()
	list.Add(container.NewHBox(
		widget.NewLabel("Formulas use l (width), L (length) and H (height)."),
		layout.NewSpacer(),
		widget.NewButtonWithIcon("Add Product Type", theme.ContentAddIcon(), func() {
			a.showProductTypeDialog(nil)
		})))

	if len(c.ProductTypes) == 0 {
		list.Add(widget.NewLabel("No product types defined."))
		return list
	}

	list.Add(headerRow("Name", "Flat Width", "Flat Height", "Elements", "", ""))
	list.Add(widget.NewSeparator())
	for _, pt := range c.ProductTypes {
		pt := pt
		elements := make([]string, len(pt.Elements))
		for i, e := range pt.Elements {
			elements[i] = fmt.Sprintf("%d x %s", e.Quantity, e.Name)
		}
		list.Add(container.NewGridWithColumns(6,
			widget.NewLabel(pt.Name),
			widget.NewLabel(pt.FlatWidthFormula),
			widget.NewLabel(pt.FlatHeightFormula),
			widget.NewLabel(strings.Join(elements, ", ")),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit product type", func() {
				a.showProductTypeDialog(&pt)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete product type", func() {
				a.editCatalog(func(c *model.Catalog) { c.RemoveProductType(pt.ID) })
			}),
		))
	}
	return list
}

// parseElements reads one "quantity x name" or "name" per line.
func parseElements(text string) ([]model.Element, error) {
	elements := []model.Element{}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		qty := 1
		name := line
		if before, after, ok := strings.Cut(line, "x"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(before)); err == nil {
				if n <= 0 {
					return nil, fmt.Errorf("element line %d: quantity must be > 0", i+1)
				}
				qty = n
				name = strings.TrimSpace(after)
			}
		}
		if name == "" {
			return nil, fmt.Errorf("element line %d: missing name", i+1)
		}
		elements = append(elements, model.Element{Name: name, Quantity: qty})
	}
	return elements, nil
}

func formatElements(elements []model.Element) string {
	lines := make([]string, len(elements))
	for i, e := range elements {
		lines[i] = fmt.Sprintf("%d x %s", e.Quantity, e.Name)
	}
	return strings.Join(lines, "\n")
}

func (a *App) showProductTypeDialog(existing *model.ProductType) {
	nameEntry := widget.NewEntry()
	widthEntry := widget.NewEntry()
	heightEntry := widget.NewEntry()
	elementsEntry := widget.NewMultiLineEntry()
	elementsEntry.SetPlaceHolder("1 x Body\n3 x Shelf")
	elementsEntry.SetMinRowsVisible(4)

	title, confirm := "Add Product Type", "Add"
	if existing != nil {
		title, confirm = "Edit Product Type", "Save"
		nameEntry.SetText(existing.Name)
		widthEntry.SetText(existing.FlatWidthFormula)
		heightEntry.SetText(existing.FlatHeightFormula)
		elementsEntry.SetText(formatElements(existing.Elements))
	} else {
		widthEntry.SetText(model.DefaultFlatWidthFormula)
		heightEntry.SetText(model.DefaultFlatHeightFormula)
	}

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Flat Width Formula", widthEntry),
			widget.NewFormItem("Flat Height Formula", heightEntry),
			widget.NewFormItem("Elements", elementsEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(errors.New("product type name is required"), a.window)
				return
			}
			for _, f := range []string{widthEntry.Text, heightEntry.Text} {
				if err := formula.Validate(f); err != nil {
					dialog.ShowError(err, a.window)
					return
				}
			}
			elements, err := parseElements(elementsEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}

			a.editCatalog(func(c *model.Catalog) {
				var pt *model.ProductType
				if existing != nil {
					pt = c.FindProductTypeByID(existing.ID)
				}
				if pt == nil {
					created := model.NewProductType(name)
					c.ProductTypes = append(c.ProductTypes, created)
					pt = &c.ProductTypes[len(c.ProductTypes)-1]
				}
				pt.Name = name
				pt.FlatWidthFormula = widthEntry.Text
				pt.FlatHeightFormula = heightEntry.Text
				pt.Elements = elements
			})
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 420))
	form.Show()
}

// ─── Accessories & Consumables ─────────────────────────────

func (a *App) buildAccessoryList(c model.Catalog) fyne.CanvasObject {
	list := container.NewVBox()
	list.Add(container.NewHBox(layout.NewSpacer(),
		widget.NewButtonWithIcon("Add Accessory", theme.ContentAddIcon(), func() {
			a.showPricedItemDialog("Accessory", "", 0, func(name string, price float64) {
				a.editCatalog(func(c *model.Catalog) {
					c.Accessories = append(c.Accessories, model.NewAccessory(name, price))
				})
			})
		})))

	if len(c.Accessories) == 0 {
		list.Add(widget.NewLabel("No accessories defined."))
		return list
	}

	list.Add(headerRow("Name", "Unit Price", "", ""))
	list.Add(widget.NewSeparator())
	for _, acc := range c.Accessories {
		acc := acc
		list.Add(container.NewGridWithColumns(4,
			widget.NewLabel(acc.Name),
			widget.NewLabel(fmt.Sprintf("%.2f", acc.Price)),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit accessory", func() {
				a.showPricedItemDialog("Accessory", acc.Name, acc.Price, func(name string, price float64) {
					a.editCatalog(func(c *model.Catalog) {
						if e := c.FindAccessoryByID(acc.ID); e != nil {
							e.Name, e.Price = name, price
						}
					})
				})
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete accessory", func() {
				a.editCatalog(func(c *model.Catalog) { c.RemoveAccessory(acc.ID) })
			}),
		))
	}
	return list
}

func (a *App) showPricedItemDialog(kind, name string, price float64, onSave func(name string, price float64)) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(name)
	priceEntry := widget.NewEntry()
	priceEntry.SetText(strconv.FormatFloat(price, 'f', -1, 64))

	title := "Add " + kind
	if name != "" {
		title = "Edit " + kind
	}
	form := dialog.NewForm(title, "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Unit Price", priceEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			p, err := parseNonNegative(priceEntry.Text, "price")
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			n := strings.TrimSpace(nameEntry.Text)
			if n == "" {
				dialog.ShowError(fmt.Errorf("%s name is required", strings.ToLower(kind)), a.window)
				return
			}
			onSave(n, p)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(380, 240))
	form.Show()
}

func (a *App) buildConsumableList(c model.Catalog) fyne.CanvasObject {
	list := container.NewVBox()
	list.Add(container.NewHBox(layout.NewSpacer(),
		widget.NewButtonWithIcon("Add Consumable", theme.ContentAddIcon(), func() {
			a.showConsumableDialog(nil)
		})))

	if len(c.Consumables) == 0 {
		list.Add(widget.NewLabel("No consumables defined."))
		return list
	}

	list.Add(headerRow("Name", "Price", "Size", "Unit Price", "", ""))
	list.Add(widget.NewSeparator())
	for _, cs := range c.Consumables {
		cs := cs
		list.Add(container.NewGridWithColumns(6,
			widget.NewLabel(cs.Name),
			widget.NewLabel(fmt.Sprintf("%.2f", cs.Price)),
			widget.NewLabel(fmt.Sprintf("%g", cs.Size)),
			widget.NewLabel(fmt.Sprintf("%.4f", cs.UnitPrice())),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit consumable", func() {
				a.showConsumableDialog(&cs)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete consumable", func() {
				a.editCatalog(func(c *model.Catalog) { c.RemoveConsumable(cs.ID) })
			}),
		))
	}
	return list
}

func (a *App) showConsumableDialog(existing *model.Consumable) {
	nameEntry := widget.NewEntry()
	priceEntry := widget.NewEntry()
	sizeEntry := widget.NewEntry()
	sizeEntry.SetPlaceHolder("Roll length or pack size")

	title := "Add Consumable"
	if existing != nil {
		title = "Edit Consumable"
		nameEntry.SetText(existing.Name)
		priceEntry.SetText(strconv.FormatFloat(existing.Price, 'f', -1, 64))
		sizeEntry.SetText(strconv.FormatFloat(existing.Size, 'f', -1, 64))
	}

	form := dialog.NewForm(title, "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Price", priceEntry),
			widget.NewFormItem("Size", sizeEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			price, err := parseNonNegative(priceEntry.Text, "price")
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			size, err := parsePositive(sizeEntry.Text, "size")
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			a.editCatalog(func(c *model.Catalog) {
				if existing == nil {
					c.Consumables = append(c.Consumables, model.NewConsumable(name, price, size))
					return
				}
				for i := range c.Consumables {
					if c.Consumables[i].ID == existing.ID {
						c.Consumables[i].Name, c.Consumables[i].Price, c.Consumables[i].Size = name, price, size
					}
				}
			})
		},
		a.window,
	)
	form.Resize(fyne.NewSize(380, 280))
	form.Show()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importPlatesCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.handleImportResult(importer.ImportPlatesCSV(path))
	}, a.window)
}

func (a *App) importPlatesExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.handleImportResult(importer.ImportPlatesExcel(path))
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(errors.New(errorMsg), a.window)
	}
	if len(result.Warnings) > 0 {
		a.logger.Info("plate import warnings", zap.Strings("warnings", result.Warnings))
	}
	if len(result.Plates) == 0 {
		return
	}

	added, err := a.store.AddPlates(result.Plates)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.refreshCatalog()
	a.refreshForm()

	msg := fmt.Sprintf("Successfully imported %d plates.", added)
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

// importFootprintDXF reads a die-line drawing and uses its outline as the
// flat size of the current quote.
func (a *App) importFootprintDXF() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		result := importer.ImportFootprintDXF(path)
		if len(result.Errors) > 0 {
			dialog.ShowError(errors.New(strings.Join(result.Errors, "\n")), a.window)
			return
		}
		if len(result.Warnings) > 0 {
			a.logger.Info("dxf import warnings", zap.Strings("warnings", result.Warnings))
		}

		a.checkpoint("Import flat size")
		a.state.OverrideFlat = true
		a.state.FlatWidth = result.Size.Width
		a.state.FlatHeight = result.Size.Height
		a.refreshForm()
		dialog.ShowInformation("Flat Size Imported",
			fmt.Sprintf("Flat size set to %.1f x %.1f mm from %d entities.",
				result.Size.Width, result.Size.Height, result.Entities), a.window)
	}, a.window)
}

func (a *App) mergeCatalogFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		merged, err := project.ImportCatalog(path, a.store.Catalog().Clone())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if err := a.store.UpdateCatalog(merged); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refreshCatalog()
		a.refreshForm()
	}, a.window)
}

func (a *App) exportCatalogFile() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := project.SaveCatalog(path, a.store.Catalog()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Catalog saved to %s", path), a.window)
	}, a.window)
	d.SetFileName("catalog.json")
	d.Show()
}
