// PlateQuote - Plate Imposition and Print Quoting
//
// A cross-platform desktop application that imposes flat items on print
// plates and prices the full production run.
//
// Build:
//   go build -o platequote ./cmd/platequote
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o platequote.exe ./cmd/platequote
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/piwi3910/PlateQuote/internal/logging"
	"github.com/piwi3910/PlateQuote/internal/project"
	"github.com/piwi3910/PlateQuote/internal/ui"
)

func main() {
	logger, err := logging.New()
	if err != nil {
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	dir := project.DefaultConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Fatal("failed to create data directory", zap.String("dir", dir), zap.Error(err))
	}
	store, err := project.OpenStore(dir)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("dir", dir), zap.Error(err))
	}

	application := app.NewWithID("com.piwi3910.platequote")
	application.Settings().SetTheme(ui.NewPlateQuoteThemeNamed(store.Config().Theme))
	window := application.NewWindow("PlateQuote - Plate Imposition and Print Quoting")

	appUI := ui.NewApp(application, window, store, logger)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
