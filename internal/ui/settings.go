package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/PlateQuote/internal/model"
)

// showSettingsDialog displays the defaults, shop rates and theme editor.
func (a *App) showSettingsDialog() {
	cfg := a.store.Config()

	modeSelect := widget.NewSelect([]string{string(model.PrintModeProduction), string(model.PrintModeQuality)}, nil)
	modeSelect.SetSelected(string(cfg.DefaultPrintMode))

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, nil)
	themeSelect.SetSelected(cfg.Theme)

	prefixEntry := widget.NewEntry()
	prefixEntry.SetText(cfg.DefaultStudyPrefix)

	defaults := widget.NewCard("Quote Defaults", "Applied to every new quote", widget.NewForm(
		widget.NewFormItem("Study Prefix", prefixEntry),
		widget.NewFormItem("Quantity", intEntry(&cfg.DefaultQuantity)),
		widget.NewFormItem("Spacing (mm)", floatEntry(&cfg.DefaultSpacing)),
		widget.NewFormItem("Inked Surface (%)", floatEntry(&cfg.DefaultPrintSurfacePct)),
		widget.NewFormItem("Cutting (sec/pose)", floatEntry(&cfg.DefaultCuttingSeconds)),
		widget.NewFormItem("Print Mode", modeSelect),
	))

	r := &cfg.Rates
	rates := widget.NewCard("Shop Rates", "Snapshotted into each quote when it is costed",
		container.NewGridWithColumns(2,
			widget.NewLabel("Print labour (/h)"), floatEntry(&r.PrintLaborPerHour),
			widget.NewLabel("Cutting (/h)"), floatEntry(&r.CuttingPerHour),
			widget.NewLabel("Assembly (/h)"), floatEntry(&r.AssemblyPerHour),
			widget.NewLabel("Packing (/h)"), floatEntry(&r.PackingPerHour),
			widget.NewLabel("Ink price (/L)"), floatEntry(&r.InkPricePerLiter),
			widget.NewLabel("Ink per plate (mL)"), floatEntry(&r.InkBaseMLPerPlate),
			widget.NewLabel("Print setup (min)"), floatEntry(&r.PrintSetupMinutes),
			widget.NewLabel("Cutting setup (min)"), floatEntry(&r.CuttingSetupMinutes),
			widget.NewLabel("Notice (/pc)"), floatEntry(&r.NoticeCostPerItem),
			widget.NewLabel("Finishing surcharge"), floatEntry(&r.FinishingSurcharge),
		))

	appearance := widget.NewCard("Appearance", "", widget.NewForm(
		widget.NewFormItem("Theme", themeSelect),
	))

	content := container.NewVScroll(container.NewVBox(defaults, rates, appearance))

	d := dialog.NewCustomConfirm("Settings", "Save", "Cancel", content,
		func(ok bool) {
			if !ok {
				return
			}
			cfg.DefaultStudyPrefix = prefixEntry.Text
			cfg.Theme = themeSelect.Selected
			if modeSelect.Selected != "" {
				cfg.DefaultPrintMode = model.PrintMode(modeSelect.Selected)
			}
			if err := a.store.UpdateConfig(cfg); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
				return
			}
			a.applyTheme(cfg.Theme)
			a.logger.Info("settings saved", zap.String("theme", cfg.Theme))
			dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
		},
		a.window,
	)
	d.Resize(fyne.NewSize(520, 600))
	d.Show()
}

// applyTheme switches the running app to the named variant.
func (a *App) applyTheme(name string) {
	if a.app == nil {
		return
	}
	a.app.Settings().SetTheme(NewPlateQuoteThemeNamed(name))
}

// showBackupDialog displays the backup export and restore dialog.
func (a *App) showBackupDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := a.store.Export(path); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Settings, catalog and quotes exported to:\n%s", path), a.window)
		}, a.window)
		d.SetFileName("platequote-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Restore From Backup...", func() {
		dialog.ShowConfirm("Restore Data",
			"Restoring replaces your current settings, catalog and saved quotes.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					if err := a.store.Restore(path); err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.logger.Info("backup restored", zap.String("path", path))
					a.applyTheme(a.store.Config().Theme)
					a.history.Clear()
					a.refreshForm()
					a.refreshCatalog()
					a.refreshQuotesList()
					dialog.ShowInformation("Restore Complete", "Data restored successfully.", a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings, the catalog and every saved quote to a backup file,\nor restore a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Backup / Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}
