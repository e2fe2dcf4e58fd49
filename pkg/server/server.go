// Package server exposes the heatmap pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz           liveness probe, responds "ok"
//	POST /v1/heatmaps/grid  2D histogram heatmap as image/png
//	POST /v1/heatmaps/kde   kernel density heatmap as image/png
//
// Both POST routes take a JSON body:
//
//	{"title": "...", "x_label": "X", "y_label": "Y",
//	 "x": [...], "y": [...], "stabilize": true,
//	 "background": "<base64 image>"}
//
// Failures are answered with {"code": "...", "error": "..."} and a status
// derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/heatmap/pkg/config"
	"github.com/matzehuels/heatmap/pkg/pipeline"
)

// MaxBodyBytes limits request bodies; backgrounds are the bulk of it.
const MaxBodyBytes = 32 << 20

// Server serves heatmaps rendered by a pipeline.Runner.
type Server struct {
	runner *pipeline.Runner
	config config.Config
	logger *log.Logger
	router chi.Router
}

// New creates a server. cfg supplies every parameter a request does not
// set; logger defaults to the runner's logger.
func New(runner *pipeline.Runner, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, config: cfg, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/v1/heatmaps", func(r chi.Router) {
		r.Post("/grid", s.handleGrid)
		r.Post("/kde", s.handleKDE)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
