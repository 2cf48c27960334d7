// Copyright COAZ Digital, 2026. All rights reserved.

package inference

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coazdigital/coaz-assist/internal/httputil"
)

// QABackend drives a synchronous question-answering endpoint: one POST
// with question and context, one JSON answer back.
type QABackend struct {
	Client    *http.Client
	BaseURL   string
	APIKey    string
	UserAgent string
}

// Name returns the backend identifier.
func (b *QABackend) Name() string { return "qa" }

type qaRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type qaResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
}

// Answer posts the question and context passage and returns the service's
// answer and reported score.
func (b *QABackend) Answer(ctx context.Context, question, passage string) (Result, error) {
	var resp qaResponse
	err := httputil.PostJSON(ctx, b.Client, b.BaseURL,
		authHeaders(b.APIKey, b.UserAgent),
		qaRequest{Question: question, Context: passage}, &resp)
	if err != nil {
		return Result{}, fmt.Errorf("qa request: %w", err)
	}

	res := Result{Answer: resp.Answer, Score: resp.Score}
	if err := res.validate(); err != nil {
		return Result{}, err
	}
	return res, nil
}
