// Copyright COAZ Digital, 2026. All rights reserved.

package server

import (
	"net/http"
	"strconv"
	"time"
)

// statusRecorder captures the status code written by the inner handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging records one structured log line and the request metrics
// per request. The metric path label is the route pattern, not the raw
// URL, to keep cardinality bounded.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		took := time.Since(start)
		pattern := r.Pattern
		if pattern == "" {
			pattern = r.URL.Path
		}

		s.metrics.requestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		s.metrics.requestDuration.WithLabelValues(r.Method, pattern).Observe(took.Seconds())

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", took).
			Msg("request")
	})
}

// withRecovery converts panics into 500 responses. The panic value is
// logged in full; the client sees only a generic message.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panicked")
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
