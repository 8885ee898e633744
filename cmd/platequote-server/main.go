// PlateQuote server: the imposition calculator and quoting workflow as a
// JSON HTTP API.
//
// Build:
//   go build -o platequote-server ./cmd/platequote-server
//
// Run:
//   PLATEQUOTE_PORT=8080 LOG_LEVEL=debug ./platequote-server -config server.yaml

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/piwi3910/PlateQuote/internal/logging"
	"github.com/piwi3910/PlateQuote/internal/project"
	"github.com/piwi3910/PlateQuote/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to the server YAML config")
	flag.Parse()

	logger, err := logging.New()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = project.DefaultConfigDir()
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		logger.Fatal("failed to create data directory", zap.String("dir", dataDir), zap.Error(err))
	}

	store, err := project.OpenStore(dataDir)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("dir", dataDir), zap.Error(err))
	}
	logger.Info("store opened",
		zap.String("dir", dataDir),
		zap.Int("plates", len(store.Catalog().Plates)),
		zap.Int("quotes", store.Stats().QuoteCount),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, server.New(store, logger), logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
