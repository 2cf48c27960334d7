// Copyright COAZ Digital, 2026. All rights reserved.

package inference

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/coazdigital/coaz-assist/internal/httputil"
)

// PollingBackend drives an asynchronous text-generation endpoint: submit
// a prompt, then poll for the result on a fixed interval. The attempt
// budget is hard; an unfinished generation after the last poll is an
// error for the caller to downgrade.
type PollingBackend struct {
	Client    *http.Client
	BaseURL   string
	APIKey    string
	UserAgent string
	Attempts  int
	Interval  time.Duration
}

// Name returns the backend identifier.
func (b *PollingBackend) Name() string { return "generate" }

type generateRequest struct {
	Prompt     string             `json:"prompt"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

type submitResponse struct {
	ID string `json:"id"`
}

type pollResponse struct {
	Status string  `json:"status"`
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
}

// Answer submits the combined prompt and polls until the generation
// completes or the attempt budget runs out.
func (b *PollingBackend) Answer(ctx context.Context, question, passage string) (Result, error) {
	prompt := question
	if passage != "" {
		prompt = fmt.Sprintf("Context:\n%s\n\nQuestion: %s", passage, question)
	}

	var submitted submitResponse
	err := httputil.PostJSON(ctx, b.Client, b.BaseURL+"/generate",
		authHeaders(b.APIKey, b.UserAgent),
		generateRequest{
			Prompt:     prompt,
			Parameters: generateParameters{MaxNewTokens: 200, Temperature: 0.3},
		}, &submitted)
	if err != nil {
		return Result{}, fmt.Errorf("submitting generation: %w", err)
	}
	if submitted.ID == "" {
		return Result{}, fmt.Errorf("generation submit returned no id")
	}

	resultURL := fmt.Sprintf("%s/result/%s", b.BaseURL, submitted.ID)
	for attempt := 0; attempt < b.Attempts; attempt++ {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-time.After(b.Interval):
		}

		var poll pollResponse
		if err := httputil.GetJSON(ctx, b.Client, resultURL, authHeaders(b.APIKey, b.UserAgent), &poll); err != nil {
			return Result{}, fmt.Errorf("polling generation %s: %w", submitted.ID, err)
		}

		switch poll.Status {
		case "complete":
			res := Result{Answer: poll.Text, Score: poll.Score}
			if err := res.validate(); err != nil {
				return Result{}, err
			}
			return res, nil
		case "failed":
			return Result{}, fmt.Errorf("generation %s failed", submitted.ID)
		}
	}

	return Result{}, fmt.Errorf("generation %s not ready after %d polls", submitted.ID, b.Attempts)
}
