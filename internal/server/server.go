// Package server exposes the imposition calculator and the quoting workflow
// over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/piwi3910/PlateQuote/internal/project"
)

const requestTimeout = 60 * time.Second

// Server serves the API backed by a Store.
type Server struct {
	store  *project.Store
	logger *zap.Logger
	router chi.Router
}

// New builds a Server and its routes. A nil logger disables logging.
func New(store *project.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{store: store, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed on "+r.URL.Path)
	})

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/imposition", s.handleImposition)
		r.Post("/quote-cost", s.handleQuoteCost)

		r.Get("/plates", s.handleListPlates)
		r.Post("/plates", s.handleAddPlates)
		r.Post("/plates/import", s.handleImportPlates)
		r.Post("/plates/compare", s.handleComparePlates)
		r.Get("/plates/compare/chart", s.handleCompareChart)
		r.Get("/product-types", s.handleListProductTypes)

		r.Route("/quotes", func(r chi.Router) {
			r.Post("/", s.handleCreateQuote)
			r.Get("/", s.handleListQuotes)
			r.Get("/export.xlsx", s.handleExportQuotes)
			r.Get("/{id}", s.handleGetQuote)
			r.Delete("/{id}", s.handleDeleteQuote)
			r.Get("/{id}/recap", s.handleQuoteRecap)
			r.Get("/{id}/pdf", s.handleQuotePDF)
		})

		r.Get("/stats", s.handleStats)
	})

	return r
}

// Run serves on cfg.Addr() until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg Config, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
