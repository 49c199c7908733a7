package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/season-heatmap-service/internal/chart"
	"github.com/couchcryptid/season-heatmap-service/internal/domain"
	"github.com/couchcryptid/season-heatmap-service/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Heatmap is the read side of the pipeline the server exposes.
type Heatmap interface {
	CheckReadiness(ctx context.Context) error
	Render(view, palette string) ([]byte, error)
	TopSeasons() ([]domain.YearTopSeason, error)
}

// Server exposes the heatmap views plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	heatmap    Heatmap
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the view, API, and operational routes.
func NewServer(addr string, heatmap Heatmap, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		heatmap: heatmap,
		logger:  logger,
	}

	mux.HandleFunc("GET /{$}", s.handleView(pipeline.ViewPage, "text/html; charset=utf-8"))
	mux.HandleFunc("GET /chart.svg", s.handleView(pipeline.ViewChart, "image/svg+xml"))
	mux.HandleFunc("GET /legend.svg", s.handleView(pipeline.ViewLegend, "image/svg+xml"))
	mux.HandleFunc("GET /api/top-seasons", s.handleTopSeasons)
	mux.HandleFunc("GET /api/palettes", handlePalettes)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(heatmap))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleView(view, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := s.heatmap.Render(view, r.URL.Query().Get("palette"))
		switch {
		case err == nil:
			writeBody(w, http.StatusOK, contentType, body)
		case errors.Is(err, chart.ErrUnknownPalette):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, pipeline.ErrNotReady) && body != nil:
			writeBody(w, http.StatusServiceUnavailable, contentType, body)
		default:
			s.logger.Error("render view", "view", view, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		}
	}
}

func (s *Server) handleTopSeasons(w http.ResponseWriter, _ *http.Request) {
	tops, err := s.heatmap.TopSeasons()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, tops)
}

func handlePalettes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"default":  chart.DefaultPalette,
		"palettes": chart.PaletteNames(),
	})
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write(body) //nolint:errcheck // client went away
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
