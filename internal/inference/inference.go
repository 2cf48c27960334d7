// Copyright COAZ Digital, 2026. All rights reserved.

// Package inference wraps the hosted question-answering service. The
// service is treated as untrusted and possibly slow or unavailable:
// every call carries an explicit timeout, and callers convert failures
// into graceful fallback answers rather than surfacing them.
package inference

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/coazdigital/coaz-assist/pkg/types"
)

// Result is the structured answer from one inference call. Score is the
// service-reported confidence in [0,1]; services that report none leave
// it at zero.
type Result struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
}

// Backend abstracts the inference service so tests can supply a mock.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Answer produces an answer for the question grounded in the given
	// context passage.
	Answer(ctx context.Context, question, passage string) (Result, error)
}

// Default timeouts: hosted inference on shared hardware can take minutes.
const (
	defaultTimeout      = 2 * time.Minute
	defaultPollAttempts = 10
	defaultPollInterval = 3 * time.Second
	defaultUserAgent    = "coaz-assist/0.1"
)

// New builds the backend selected by cfg. An empty BaseURL yields a nil
// backend; the synthesizer treats that as "inference disabled" and
// answers extractively.
func New(cfg types.InferenceConfig) Backend {
	if cfg.BaseURL == "" {
		return nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	switch cfg.Mode {
	case types.ModeGenerate:
		attempts := cfg.PollAttempts
		if attempts <= 0 {
			attempts = defaultPollAttempts
		}
		interval := cfg.PollInterval
		if interval <= 0 {
			interval = defaultPollInterval
		}
		return &PollingBackend{
			Client:    client,
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			UserAgent: userAgent,
			Attempts:  attempts,
			Interval:  interval,
		}
	default:
		return &QABackend{
			Client:    client,
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			UserAgent: userAgent,
		}
	}
}

func authHeaders(apiKey, userAgent string) map[string]string {
	h := map[string]string{"User-Agent": userAgent}
	if apiKey != "" {
		h["Authorization"] = "Bearer " + apiKey
	}
	return h
}

// validate rejects responses that would confuse downstream scoring.
func (r Result) validate() error {
	if r.Answer == "" {
		return fmt.Errorf("inference returned an empty answer")
	}
	if r.Score < 0 || r.Score > 1 {
		return fmt.Errorf("inference score %f out of range [0,1]", r.Score)
	}
	return nil
}
