// Copyright COAZ Digital, 2026. All rights reserved.

// Package server exposes the answering engine and the content store over
// HTTP: the chat endpoint, content CRUD, health, and metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/coazdigital/coaz-assist/internal/content"
	"github.com/coazdigital/coaz-assist/internal/engine"
	"github.com/coazdigital/coaz-assist/pkg/types"
)

// Server wires the HTTP API together. Construct with New, serve with Run
// or mount Handler directly.
type Server struct {
	cfg     types.ServerConfig
	engine  *engine.Engine
	store   *content.Store
	log     zerolog.Logger
	metrics *metrics
	handler http.Handler
}

// New builds a server. store may be nil, in which case the content
// endpoints respond 503.
func New(cfg types.ServerConfig, eng *engine.Engine, store *content.Store, log zerolog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		cfg:     cfg,
		engine:  eng,
		store:   store,
		log:     log,
		metrics: newMetrics(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/content", s.handleContentList)
	mux.HandleFunc("GET /api/content/{id}", s.handleContentGet)
	mux.HandleFunc("POST /api/content", s.requireAdmin(s.handleContentCreate))
	mux.HandleFunc("PUT /api/content/{id}", s.requireAdmin(s.handleContentUpdate))
	mux.HandleFunc("DELETE /api/content/{id}", s.requireAdmin(s.handleContentDelete))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	s.handler = s.withRecovery(s.withLogging(mux))
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is canceled, then shuts down gracefully within
// the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.log.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// errorBody is the uniform JSON error shape.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

type healthResponse struct {
	Status    string `json:"status"`
	Ready     bool   `json:"ready"`
	Documents int    `json:"documents"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ready := s.engine.Ready()
	status := "ok"
	if !ready {
		status = "indexing"
	}
	s.metrics.indexedDocuments.Set(float64(s.engine.DocCount()))
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    status,
		Ready:     ready,
		Documents: s.engine.DocCount(),
	})
}

// requireAdmin gates content writes behind the configured bearer token.
// With no token configured the gate is open, which suits local use.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminToken != "" {
			if r.Header.Get("Authorization") != "Bearer "+s.cfg.AdminToken {
				writeError(w, http.StatusUnauthorized, "admin token required")
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) contentReady(w http.ResponseWriter) bool {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "content store not configured")
		return false
	}
	return true
}

func isNotFound(err error) bool {
	return errors.Is(err, content.ErrNotFound)
}
