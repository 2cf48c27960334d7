// Copyright COAZ Digital, 2026. All rights reserved.

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coazdigital/coaz-assist/internal/answer"
	"github.com/coazdigital/coaz-assist/internal/content"
	"github.com/coazdigital/coaz-assist/internal/engine"
	"github.com/coazdigital/coaz-assist/pkg/types"
)

func testEngine(t *testing.T, indexed bool) *engine.Engine {
	t.Helper()
	rules, err := answer.LoadRules()
	require.NoError(t, err)
	rules.SetPicker(func(int) int { return 0 })

	eng := engine.New(nil, rules, types.DefaultPipelineParams(), zerolog.Nop())
	if indexed {
		_, err := eng.Reindex([]types.Document{
			{
				Text:   "To join the college, membership requirements include relevant medical qualifications and registration.",
				Title:  "Membership",
				Source: types.SourceConstitution,
			},
		})
		require.NoError(t, err)
	}
	return eng
}

func testServer(t *testing.T, cfg types.ServerConfig, indexed bool) *Server {
	t.Helper()
	store, err := content.Open(types.ContentConfig{DBPath: filepath.Join(t.TempDir(), "coaz.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return New(cfg, testEngine(t, indexed), store, zerolog.Nop())
}

func postJSON(t *testing.T, h http.Handler, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestChatMissingQuery(t *testing.T) {
	s := testServer(t, types.ServerConfig{}, true)

	w := postJSON(t, s.Handler(), "/api/chat", map[string]string{"query": "  "}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "query")
}

func TestChatIndexNotReady(t *testing.T) {
	s := testServer(t, types.ServerConfig{}, false)

	w := postJSON(t, s.Handler(), "/api/chat", map[string]string{"query": "How do I join?"}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestChatRuleBasedAnswer(t *testing.T) {
	s := testServer(t, types.ServerConfig{}, true)

	w := postJSON(t, s.Handler(), "/api/chat", map[string]string{"query": "What does COAZ stand for?"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "COAZ stands for College of Anesthesiologists of Zambia.", resp.Answer)
	assert.Equal(t, resp.Answer, resp.Text)
	assert.Equal(t, string(types.AnswerFromRules), resp.Source)
	assert.InDelta(t, 0.9, resp.Confidence, 0.001)
	assert.NotEmpty(t, resp.SessionID, "a session id must be minted when absent")
}

func TestChatEchoesSessionID(t *testing.T) {
	s := testServer(t, types.ServerConfig{}, true)

	w := postJSON(t, s.Handler(), "/api/chat", map[string]string{
		"query":     "What does COAZ stand for?",
		"sessionId": "session-123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "session-123", resp.SessionID)
}

func TestChatInvalidBody(t *testing.T) {
	s := testServer(t, types.ServerConfig{}, true)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthz(t *testing.T) {
	s := testServer(t, types.ServerConfig{}, true)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Ready)
	assert.Equal(t, 1, resp.Documents)
	assert.Equal(t, "ok", resp.Status)
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t, types.ServerConfig{}, true)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContentCRUD(t *testing.T) {
	s := testServer(t, types.ServerConfig{}, true)
	h := s.Handler()

	item := types.ContentItem{
		Slug:    "membership-fees",
		Title:   "Membership Fees",
		Body:    "Annual subscription fees are set by the council.",
		Section: "membership",
	}

	w := postJSON(t, h, "/api/content", item, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created types.ContentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	// Read it back.
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/content/%d", created.ID), nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Update.
	created.Body = "Fees are reviewed at the annual general meeting."
	data, err := json.Marshal(created)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/content/%d", created.ID), bytes.NewReader(data))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// List.
	req = httptest.NewRequest(http.MethodGet, "/api/content?section=membership", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var items []types.ContentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Fees are reviewed at the annual general meeting.", items[0].Body)

	// Delete.
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/content/%d", created.ID), nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/content/%d", created.ID), nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContentValidation(t *testing.T) {
	s := testServer(t, types.ServerConfig{}, true)

	w := postJSON(t, s.Handler(), "/api/content", types.ContentItem{Slug: "x"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentWriteRequiresAdminToken(t *testing.T) {
	s := testServer(t, types.ServerConfig{AdminToken: "sekrit"}, true)
	h := s.Handler()

	item := types.ContentItem{Slug: "a", Title: "A", Body: "Body text."}

	w := postJSON(t, h, "/api/content", item, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, h, "/api/content", item, map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, h, "/api/content", item, map[string]string{"Authorization": "Bearer sekrit"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Reads stay open.
	req := httptest.NewRequest(http.MethodGet, "/api/content", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	s := testServer(t, types.ServerConfig{}, true)

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	h := s.withRecovery(panicking)

	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
