// Copyright COAZ Digital, 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/coazdigital/coaz-assist/internal/engine"
	"github.com/coazdigital/coaz-assist/pkg/types"
)

type chatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"sessionId"`
	UseRAG    *bool  `json:"useRag"`
}

// chatResponse duplicates the answer under both "text" and "answer" for
// older site clients that read one or the other.
type chatResponse struct {
	Text             string  `json:"text"`
	Answer           string  `json:"answer"`
	ResponseType     string  `json:"responseType"`
	Confidence       float64 `json:"confidence"`
	ConfidenceSource string  `json:"confidenceSource"`
	Source           string  `json:"source"`
	ProcessingTimeMs int64   `json:"processingTimeMs"`
	SessionID        string  `json:"sessionId"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if !s.engine.Ready() {
		writeError(w, http.StatusServiceUnavailable, "index not ready")
		return
	}

	useRAG := true
	if req.UseRAG != nil {
		useRAG = *req.UseRAG
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	res, err := s.engine.Ask(r.Context(), req.Query, useRAG)
	if errors.Is(err, engine.ErrEmptyQuestion) {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("session", sessionID).Msg("chat failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.recordAnswer(res)

	writeJSON(w, http.StatusOK, chatResponse{
		Text:             res.Answer,
		Answer:           res.Answer,
		ResponseType:     string(res.ResponseType),
		Confidence:       res.Confidence,
		ConfidenceSource: string(res.ConfidenceSource),
		Source:           string(res.Source),
		ProcessingTimeMs: res.ProcessingTime.Milliseconds(),
		SessionID:        sessionID,
	})
}

// recordAnswer derives the inference counters from the result shape: a
// model-scored answer means the backend was called, an error source
// means the call failed.
func (s *Server) recordAnswer(res types.AnswerResult) {
	s.metrics.chatTotal.WithLabelValues(string(res.ResponseType), string(res.Source)).Inc()
	switch {
	case res.Source == types.AnswerFromError:
		s.metrics.inferenceCalls.Inc()
		s.metrics.inferenceErrors.Inc()
	case res.ConfidenceSource == types.ConfidenceModel:
		s.metrics.inferenceCalls.Inc()
	}
}
