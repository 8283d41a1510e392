// Package http exposes the scanner over a small status API: health, metrics,
// and the latest scan report out of the cache.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/Buu205/Vietnam-stock-sub000/internal/application/pipeline"
	"github.com/Buu205/Vietnam-stock-sub000/internal/cache"
	"github.com/Buu205/Vietnam-stock-sub000/internal/metrics"
)

// ReportSource yields the most recent scan report. Satisfied by
// cache.ResultCache; a source returning cache.ErrMiss maps to 404.
type ReportSource interface {
	Latest(ctx context.Context) (*pipeline.Report, error)
}

// Server serves the status API on a gorilla/mux router.
type Server struct {
	reports ReportSource
	mets    *metrics.Registry
	srv     *http.Server
}

// NewServer builds the server. reports may be nil when Redis is disabled;
// the latest-report endpoint then answers 503.
func NewServer(listen string, reports ReportSource, mets *metrics.Registry) *Server {
	s := &Server{reports: reports, mets: mets}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(mets.Gatherer(), promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/scan/latest", s.handleLatest).Methods(http.MethodGet)

	s.srv = &http.Server{
		Addr:         listen,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Run serves until ctx is cancelled, then drains with a short grace period.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("listen", s.srv.Addr).Msg("status server listening")
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "result cache disabled"})
		return
	}
	report, err := s.reports.Latest(r.Context())
	if errors.Is(err, cache.ErrMiss) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no scan report cached"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("fetch latest report")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "report lookup failed"})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}
