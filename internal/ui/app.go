package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/PlateQuote/internal/engine"
	"github.com/piwi3910/PlateQuote/internal/export"
	"github.com/piwi3910/PlateQuote/internal/model"
	"github.com/piwi3910/PlateQuote/internal/project"
	"github.com/piwi3910/PlateQuote/internal/ui/widgets"
)

const noProductType = "(none)"

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	store   *project.Store
	logger  *zap.Logger
	tabs    *container.AppTabs
	history *History

	state FormState
	quote *model.Quote // Last calculated quote, nil until Calculate

	// UI references for dynamic updates
	formContainer    *fyne.Container
	resultContainer  *fyne.Container
	quotesContainer  *fyne.Container
	catalogContainer *fyne.Container
	studyFilter      string
}

func NewApp(application fyne.App, window fyne.Window, store *project.Store, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		app:     application,
		window:  window,
		store:   store,
		logger:  logger,
		history: NewHistory(),
		state:   NewFormState(store.Config()),
	}
}

// SetupMenus creates the native menu bar and keyboard shortcuts.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Quote", func() {
			a.newQuote()
		}),
		fyne.NewMenuItem("Save Quote", func() {
			a.saveQuote()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Quote PDF...", func() {
			a.exportPDF()
		}),
		fyne.NewMenuItem("Export Plate Labels...", func() {
			a.exportLabels()
		}),
		fyne.NewMenuItem("Export Quotes to Excel...", func() {
			a.exportQuotesExcel()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Plates from CSV...", func() {
			a.importPlatesCSV()
		}),
		fyne.NewMenuItem("Import Plates from Excel...", func() {
			a.importPlatesExcel()
		}),
		fyne.NewMenuItem("Flat Size from DXF...", func() {
			a.importFootprintDXF()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup / Restore...", func() {
			a.showBackupDialog()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Calculate", func() {
			a.calculate()
			a.tabs.SelectIndex(0)
		}),
		fyne.NewMenuItem("Compare Plates...", func() {
			a.showComparePlatesDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))

	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.undo() })
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.redo() })
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyReturn, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.calculate() })
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PlateQuote",
		"PlateQuote - Plate Imposition and Print Quoting\n\n"+
			"Computes how many copies of a flat item fit on a plate\n"+
			"and prices the full production run.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	quoteTab := container.NewTabItem("Quote", a.buildQuotePanel())
	quotesTab := container.NewTabItem("Quotes", a.buildQuotesPanel())
	catalogTab := container.NewTabItem("Catalog", a.buildCatalogPanel())

	a.tabs = container.NewAppTabs(quoteTab, quotesTab, catalogTab)
	a.tabs.SetTabLocation(container.TabLocationTop)
	a.tabs.OnSelected = func(tab *container.TabItem) {
		if tab == quotesTab {
			a.refreshQuotesList()
		}
	}

	return fynetooltip.AddWindowToolTipLayer(a.tabs, a.window.Canvas())
}

// ─── Quote Panel ───────────────────────────────────────────

func (a *App) buildQuotePanel() fyne.CanvasObject {
	a.formContainer = container.NewVBox()
	a.resultContainer = container.NewVBox()
	a.refreshForm()
	a.refreshResult()

	calcBtn := widget.NewButtonWithIcon("Calculate", theme.MediaPlayIcon(), func() {
		a.calculate()
	})
	calcBtn.Importance = widget.HighImportance
	saveBtn := widget.NewButtonWithIcon("Save Quote", theme.DocumentSaveIcon(), func() {
		a.saveQuote()
	})

	left := container.NewBorder(nil, container.NewHBox(layout.NewSpacer(), saveBtn, calcBtn), nil, nil,
		container.NewVScroll(a.formContainer))
	split := container.NewHSplit(left, container.NewVScroll(a.resultContainer))
	split.Offset = 0.4
	return split
}

// floatEntry returns an entry bound to *val. Unparsable text leaves *val unchanged.
func floatEntry(val *float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
	e.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(text), ",", ".", 1), 64); err == nil {
			*val = v
		}
	}
	return e
}

func intEntry(val *int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(fmt.Sprintf("%d", *val))
	e.OnChanged = func(text string) {
		if v, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			*val = v
		}
	}
	return e
}

// checkbox returns a check bound to *val that records a history step when toggled.
func (a *App) checkbox(label string, val *bool) *widget.Check {
	c := widget.NewCheck(label, nil)
	c.Checked = *val
	c.OnChanged = func(b bool) {
		a.checkpoint("Toggle " + strings.ToLower(label))
		*val = b
	}
	return c
}

func (a *App) refreshForm() {
	a.formContainer.RemoveAll()
	s := &a.state
	catalog := a.store.Catalog()

	studyEntry := widget.NewEntry()
	studyEntry.SetText(s.StudyNumber)
	studyEntry.OnChanged = func(text string) { s.StudyNumber = text }

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Defaults to the product type")
	nameEntry.SetText(s.ProductName)
	nameEntry.OnChanged = func(text string) { s.ProductName = text }

	typeSelect := widget.NewSelect(append([]string{noProductType}, catalog.ProductTypeNames()...), nil)
	if s.ProductType == "" {
		typeSelect.SetSelected(noProductType)
	} else {
		typeSelect.SetSelected(s.ProductType)
	}
	typeSelect.OnChanged = func(selected string) {
		a.checkpoint("Change product type")
		if selected == noProductType {
			selected = ""
		}
		s.ProductType = selected
	}

	plateSelect := widget.NewSelect(catalog.PlateNames(), nil)
	plateSelect.PlaceHolder = "Select a plate..."
	plateSelect.SetSelected(s.PlateName)
	plateSelect.OnChanged = func(selected string) {
		a.checkpoint("Change plate")
		s.PlateName = selected
	}

	productCard := widget.NewCard("Product", "", widget.NewForm(
		widget.NewFormItem("Study Number", studyEntry),
		widget.NewFormItem("Product Type", typeSelect),
		widget.NewFormItem("Product Name", nameEntry),
		widget.NewFormItem("Quantity", intEntry(&s.Quantity)),
	))

	flatW := floatEntry(&s.FlatWidth)
	flatH := floatEntry(&s.FlatHeight)
	if !s.OverrideFlat {
		flatW.Disable()
		flatH.Disable()
	}
	override := widget.NewCheck("Enter flat size directly", nil)
	override.Checked = s.OverrideFlat
	override.OnChanged = func(b bool) {
		a.checkpoint("Toggle flat size override")
		s.OverrideFlat = b
		if b {
			flatW.Enable()
			flatH.Enable()
		} else {
			flatW.Disable()
			flatH.Disable()
		}
	}

	sizeCard := widget.NewCard("Dimensions (mm)", "Finished size; the product type turns it into a flat size",
		widget.NewForm(
			widget.NewFormItem("Width (l)", floatEntry(&s.Width)),
			widget.NewFormItem("Length (L)", floatEntry(&s.Length)),
			widget.NewFormItem("Height (H)", floatEntry(&s.Height)),
			widget.NewFormItem("", override),
			widget.NewFormItem("Flat Width", flatW),
			widget.NewFormItem("Flat Height", flatH),
			widget.NewFormItem("Plate", plateSelect),
			widget.NewFormItem("Spacing", floatEntry(&s.Settings.Spacing)),
		))

	modeSelect := widget.NewSelect([]string{string(model.PrintModeProduction), string(model.PrintModeQuality)}, nil)
	modeSelect.SetSelected(string(s.Settings.PrintMode))
	modeSelect.OnChanged = func(selected string) {
		a.checkpoint("Change print mode")
		s.Settings.PrintMode = model.PrintMode(selected)
	}

	rvType := widget.NewEntry()
	rvType.SetPlaceHolder("e.g. identical")
	rvType.SetText(s.Settings.RectoVersoType)
	rvType.OnChanged = func(text string) { s.Settings.RectoVersoType = text }

	printCard := widget.NewCard("Printing", "", widget.NewForm(
		widget.NewFormItem("Inked Surface (%)", floatEntry(&s.Settings.PrintSurfacePercent)),
		widget.NewFormItem("Print Mode", modeSelect),
		widget.NewFormItem("", a.checkbox("Recto-verso", &s.Settings.RectoVerso)),
		widget.NewFormItem("Recto-verso Type", rvType),
		widget.NewFormItem("", a.checkbox("Varnish", &s.Settings.Varnish)),
		widget.NewFormItem("", a.checkbox("Flat colour", &s.Settings.FlatColor)),
	))

	finishingCard := widget.NewCard("Finishing", "", widget.NewForm(
		widget.NewFormItem("Cutting (sec/pose)", floatEntry(&s.Settings.CuttingSecondsPerPose)),
		widget.NewFormItem("Assembly (sec/pc)", floatEntry(&s.Settings.AssemblySecondsPerItem)),
		widget.NewFormItem("Packing (sec/pc)", floatEntry(&s.Settings.PackSecondsPerItem)),
		widget.NewFormItem("", a.checkbox("Assembly notice", &s.Settings.AssemblyNotice)),
	))

	notes := widget.NewMultiLineEntry()
	notes.SetPlaceHolder("Markdown notes printed on the recap")
	notes.SetText(s.Notes)
	notes.SetMinRowsVisible(4)
	notes.OnChanged = func(text string) { s.Notes = text }

	a.formContainer.Add(productCard)
	a.formContainer.Add(sizeCard)
	a.formContainer.Add(printCard)
	a.formContainer.Add(finishingCard)
	a.formContainer.Add(a.buildAccessoriesCard(catalog))
	a.formContainer.Add(a.buildConsumablesCard(catalog))
	a.formContainer.Add(widget.NewCard("Notes", "", notes))
}

func (a *App) buildAccessoriesCard(catalog model.Catalog) fyne.CanvasObject {
	lines := container.NewVBox()
	if len(a.state.Accessories) == 0 {
		lines.Add(widget.NewLabel("No accessories."))
	}
	for _, l := range a.state.Accessories {
		id := l.ID
		lines.Add(container.NewBorder(nil, nil, nil,
			newIconButtonWithTooltip(theme.DeleteIcon(), "Remove "+l.Name, func() {
				a.checkpoint("Remove accessory")
				a.state.Accessories = model.RemoveAccessory(a.state.Accessories, id)
				a.refreshForm()
			}),
			widget.NewLabel(fmt.Sprintf("%d x %s @ %.2f = %.2f", l.Quantity, l.Name, l.Price, l.LineTotal())),
		))
	}

	accSelect := widget.NewSelect(catalog.AccessoryNames(), nil)
	accSelect.PlaceHolder = "Accessory..."
	qty := 1
	addBtn := newIconButtonWithTooltip(theme.ContentAddIcon(), "Add accessory", func() {
		acc := catalog.FindAccessoryByName(accSelect.Selected)
		if acc == nil || qty <= 0 {
			return
		}
		a.checkpoint("Add accessory")
		a.state.Accessories = model.AddAccessory(a.state.Accessories, *acc, qty)
		a.refreshForm()
	})
	qtyEntry := intEntry(&qty)

	picker := container.NewBorder(nil, nil, nil, container.NewHBox(container.NewGridWrap(fyne.NewSize(60, 36), qtyEntry), addBtn), accSelect)
	return widget.NewCard("Accessories", "", container.NewVBox(lines, picker))
}

func (a *App) buildConsumablesCard(catalog model.Catalog) fyne.CanvasObject {
	lines := container.NewVBox()
	if len(a.state.Consumables) == 0 {
		lines.Add(widget.NewLabel("No consumables."))
	}
	for _, l := range a.state.Consumables {
		id := l.ID
		lines.Add(container.NewBorder(nil, nil, nil,
			newIconButtonWithTooltip(theme.DeleteIcon(), "Remove "+l.Name, func() {
				a.checkpoint("Remove consumable")
				a.state.Consumables = model.RemoveConsumable(a.state.Consumables, id)
				a.refreshForm()
			}),
			widget.NewLabel(fmt.Sprintf("%s: %.2f per item @ %.3f", l.Name, l.Size, l.UnitPrice)),
		))
	}

	csSelect := widget.NewSelect(catalog.ConsumableNames(), nil)
	csSelect.PlaceHolder = "Consumable..."
	size := 0.0
	addBtn := newIconButtonWithTooltip(theme.ContentAddIcon(), "Add consumable used per item", func() {
		cs := catalog.FindConsumableByName(csSelect.Selected)
		if cs == nil || size <= 0 {
			return
		}
		a.checkpoint("Add consumable")
		a.state.Consumables = model.AddConsumable(a.state.Consumables, *cs, size)
		a.refreshForm()
	})
	sizeEntry := floatEntry(&size)
	sizeEntry.SetPlaceHolder("Per item")

	picker := container.NewBorder(nil, nil, nil, container.NewHBox(container.NewGridWrap(fyne.NewSize(80, 36), sizeEntry), addBtn), csSelect)
	return widget.NewCard("Consumables", "", container.NewVBox(lines, picker))
}

func (a *App) refreshResult() {
	a.resultContainer.RemoveAll()
	if a.quote == nil {
		a.resultContainer.Add(widgets.RenderQuote(nil, model.Plate{}))
		return
	}
	q := *a.quote

	catalog := a.store.Catalog()
	plate := catalog.FindPlateByID(q.PlateID)
	if plate == nil {
		a.resultContainer.Add(widget.NewLabel("The plate of this quote is no longer in the catalog."))
		return
	}
	a.resultContainer.Add(widgets.RenderQuote(&q, *plate))

	grid := container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("Line", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Details", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Amount", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true}),
	)
	for _, l := range export.CostLines(q) {
		grid.Add(widget.NewLabel(l.Label))
		details := widget.NewLabel(l.Details)
		details.Wrapping = fyne.TextWrapWord
		grid.Add(details)
		grid.Add(widget.NewLabelWithStyle(fmt.Sprintf("%.2f", l.Amount), fyne.TextAlignTrailing, fyne.TextStyle{}))
	}
	a.resultContainer.Add(widget.NewCard("Costs", "", grid))

	total := widget.NewLabel(fmt.Sprintf("Total: %.2f  |  Unit cost: %.4f", q.TotalCost(), q.UnitCost()))
	total.TextStyle = fyne.TextStyle{Bold: true}
	a.resultContainer.Add(total)

	if !q.Infeasible() {
		scenarios := container.NewVBox()
		for _, sc := range engine.CompareSpacings(q.FlatSize(), *plate, q.Quantity, q.Settings.Spacing) {
			scenarios.Add(widget.NewLabel(fmt.Sprintf("%s (%.1f mm): %d per plate, %d plate(s), %.2f",
				sc.Name, sc.Spacing, sc.Imposition.ItemsPerPlate, sc.Material.PlatesNeeded, sc.Material.TotalCost)))
		}
		a.resultContainer.Add(widget.NewCard("Spacing What-If", "", scenarios))
	}
	a.resultContainer.Refresh()
}

// ─── History ───────────────────────────────────────────────

// checkpoint records the form before a change so it can be undone.
func (a *App) checkpoint(label string) {
	a.history.Push(MakeSnapshot(a.state, label))
}

func (a *App) undo() {
	snap, ok := a.history.Undo(MakeSnapshot(a.state, "Current"))
	if !ok {
		return
	}
	a.restore(snap.State)
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.state, "Current"))
	if !ok {
		return
	}
	a.restore(snap.State)
}

func (a *App) restore(state FormState) {
	a.state = state.Clone()
	a.refreshForm()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) newQuote() {
	a.checkpoint("New quote")
	a.state = NewFormState(a.store.Config())
	a.quote = nil
	a.refreshForm()
	a.refreshResult()
}

func (a *App) calculate() {
	catalog := a.store.Catalog()
	req, err := a.state.Request(&catalog)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	q, err := engine.New(a.store.Config().Rates, &catalog).Quote(req)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.quote = &q
	a.refreshResult()
}

func (a *App) saveQuote() {
	if a.quote == nil {
		dialog.ShowInformation("Nothing to save", "Calculate the quote first.", a.window)
		return
	}
	stored, err := a.store.SaveQuote(*a.quote)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.quote = &stored
	a.logger.Info("quote saved", zap.String("quote_id", stored.ID), zap.String("study", stored.StudyNumber))
	dialog.ShowInformation("Quote Saved", fmt.Sprintf("Quote %s saved under study %s.", stored.ID, stored.StudyNumber), a.window)
}

func (a *App) exportPDF() {
	if a.quote == nil {
		dialog.ShowInformation("No quote", "Calculate the quote first before exporting a PDF.", a.window)
		return
	}
	a.exportQuotePDF(*a.quote)
}

func (a *App) exportQuotePDF(q model.Quote) {
	catalog := a.store.Catalog()
	plate := catalog.FindPlateByID(q.PlateID)
	if plate == nil {
		dialog.ShowError(fmt.Errorf("plate %s is no longer in the catalog", q.PlateName), a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.ExportQuotePDF(path, q, *plate); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("PDF saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(q.StudyNumber + ".pdf")
	d.Show()
}

func (a *App) exportLabels() {
	if a.quote == nil || a.quote.Infeasible() {
		dialog.ShowInformation("No plates", "Calculate a quote that fits on its plate first.", a.window)
		return
	}
	q := *a.quote
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.ExportPlateLabels(path, q); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("%d plate labels saved to %s", q.Cost.Material.PlatesNeeded, path), a.window)
	}, a.window)
	d.SetFileName(q.StudyNumber + "-labels.pdf")
	d.Show()
}

func (a *App) exportQuotesExcel() {
	quotes := a.store.Quotes(a.studyFilter)
	if len(quotes) == 0 {
		dialog.ShowInformation("No quotes", "Save at least one quote first.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.ExportQuotesExcel(path, quotes); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("%d quotes saved to %s", len(quotes), path), a.window)
	}, a.window)
	d.SetFileName("quotes.xlsx")
	d.Show()
}

func (a *App) showComparePlatesDialog() {
	catalog := a.store.Catalog()
	flat, err := a.state.FlatSize(&catalog)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	comparisons := engine.ComparePlates(flat, a.state.Quantity, a.state.Settings.Spacing, catalog.Plates)
	rows := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Plate", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Per Plate", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Plates", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Material", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	var d dialog.Dialog
	for _, c := range comparisons {
		name := c.Plate.Name
		perPlate := "does not fit"
		if c.Fits() {
			perPlate = fmt.Sprintf("%d (%s)", c.Imposition.ItemsPerPlate, c.Imposition.Orientation)
		}
		useBtn := widget.NewButton("Use", func() {
			a.checkpoint("Change plate")
			a.state.PlateName = name
			a.refreshForm()
			d.Hide()
		})
		if !c.Fits() {
			useBtn.Disable()
		}
		rows.Add(widget.NewLabel(name))
		rows.Add(widget.NewLabel(perPlate))
		rows.Add(widget.NewLabel(fmt.Sprintf("%d", c.Material.PlatesNeeded)))
		rows.Add(widget.NewLabel(fmt.Sprintf("%.2f", c.Material.TotalCost)))
		rows.Add(useBtn)
	}

	title := fmt.Sprintf("Compare Plates (%.0f x %.0f mm, %d pcs)", flat.Width, flat.Height, a.state.Quantity)
	d = dialog.NewCustom(title, "Close", container.NewVScroll(rows), a.window)
	d.Resize(fyne.NewSize(750, 450))
	d.Show()
}

// ─── Quotes Panel ──────────────────────────────────────────

func (a *App) buildQuotesPanel() fyne.CanvasObject {
	a.quotesContainer = container.NewVBox()

	filter := widget.NewEntry()
	filter.SetPlaceHolder("Filter by study number")
	filter.OnChanged = func(text string) {
		a.studyFilter = strings.TrimSpace(text)
		a.refreshQuotesList()
	}
	a.refreshQuotesList()

	exportBtn := widget.NewButtonWithIcon("Export to Excel...", theme.DocumentSaveIcon(), func() {
		a.exportQuotesExcel()
	})

	return container.NewBorder(
		container.NewBorder(nil, nil,
			widget.NewLabelWithStyle("Saved Quotes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			exportBtn, filter),
		a.buildStatsBar(), nil, nil,
		container.NewVScroll(a.quotesContainer),
	)
}

func (a *App) buildStatsBar() fyne.CanvasObject {
	st := a.store.Stats()
	return widget.NewLabel(fmt.Sprintf("%d quotes across %d studies, %d plates used, %.2f quoted in total",
		st.QuoteCount, st.StudyCount, st.PlatesUsed, st.TotalRevenue))
}

func (a *App) refreshQuotesList() {
	if a.quotesContainer == nil {
		return
	}
	a.quotesContainer.RemoveAll()

	quotes := a.store.Quotes(a.studyFilter)
	if len(quotes) == 0 {
		a.quotesContainer.Add(widget.NewLabel("No saved quotes."))
		return
	}

	header := container.NewGridWithColumns(9,
		widget.NewLabelWithStyle("Study", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Product", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Qty", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Plate", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Total", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Created", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.quotesContainer.Add(header)
	a.quotesContainer.Add(widget.NewSeparator())

	for _, q := range quotes {
		q := q
		created := ""
		if t := q.CreatedTime(); !t.IsZero() {
			created = t.Local().Format("2006-01-02 15:04")
		}
		row := container.NewGridWithColumns(9,
			widget.NewLabel(q.StudyNumber),
			widget.NewLabel(q.ProductName),
			widget.NewLabel(fmt.Sprintf("%d", q.Quantity)),
			widget.NewLabel(q.PlateName),
			widget.NewLabel(fmt.Sprintf("%.2f", q.TotalCost())),
			widget.NewLabel(created),
			newIconButtonWithTooltip(theme.FolderOpenIcon(), "Open in the quote form", func() {
				a.openQuote(q)
			}),
			newIconButtonWithTooltip(theme.DocumentPrintIcon(), "Export PDF", func() {
				a.exportQuotePDF(q)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete quote", func() {
				dialog.ShowConfirm("Delete Quote", fmt.Sprintf("Delete quote %s of study %s?", q.ID, q.StudyNumber),
					func(ok bool) {
						if !ok {
							return
						}
						if _, err := a.store.DeleteQuote(q.ID); err != nil {
							dialog.ShowError(err, a.window)
							return
						}
						a.refreshQuotesList()
					}, a.window)
			}),
		)
		a.quotesContainer.Add(row)
	}
}

func (a *App) openQuote(q model.Quote) {
	catalog := a.store.Catalog()
	a.checkpoint("Open quote")
	a.state = FormStateFromQuote(q, &catalog)
	a.quote = &q
	a.refreshForm()
	a.refreshResult()
	a.tabs.SelectIndex(0)
}
