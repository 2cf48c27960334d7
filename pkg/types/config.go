// Copyright COAZ Digital, 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Hosted inference can be slow,
	// so the inference default is minutes-scale.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with outbound requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// InferenceMode selects how the external inference service is driven.
type InferenceMode string

const (
	// ModeQA posts question+context and reads the answer synchronously.
	ModeQA InferenceMode = "qa"

	// ModeGenerate submits a prompt and polls for the result.
	ModeGenerate InferenceMode = "generate"
)

// InferenceConfig holds settings for the external inference boundary.
type InferenceConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the inference service endpoint. Empty disables the
	// backend; the synthesizer then falls back to extractive answers.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey authenticates against the hosted service.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Mode selects the synchronous QA call or the submit-then-poll flow.
	Mode InferenceMode `json:"mode" yaml:"mode"`

	// PollAttempts bounds the polling loop in generate mode (default 10).
	PollAttempts int `json:"poll_attempts" yaml:"poll_attempts"`

	// PollInterval is the fixed sleep between polls (default 3s).
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`

	// MaxRetries is the retry budget for rate-limited requests (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// PipelineParams parameterizes the retrieval and synthesis pipeline. The
// strict and relaxed presets differ only in data, not code paths.
type PipelineParams struct {
	// ScoreThreshold is the worst acceptable fuzzy-match distance; hits
	// with a larger score are discarded.
	ScoreThreshold float64 `json:"score_threshold" yaml:"score_threshold"`

	// MaxChunks caps how many chunks retrieval returns.
	MaxChunks int `json:"max_chunks" yaml:"max_chunks"`

	// MinWordMatchRatio is the fraction of significant question tokens
	// that must appear in a chunk for it to survive filtering.
	MinWordMatchRatio float64 `json:"min_word_match_ratio" yaml:"min_word_match_ratio"`

	// MaxContextLength bounds the concatenated context sent to inference.
	MaxContextLength int `json:"max_context_length" yaml:"max_context_length"`

	// MinMatchLength is the shortest query token the fuzzy index considers.
	MinMatchLength int `json:"min_match_length" yaml:"min_match_length"`

	// MinConfidence is the model-reported score below which the answer is
	// replaced with a hedge message.
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`
}

// DefaultPipelineParams returns the strict preset used in production.
func DefaultPipelineParams() PipelineParams {
	return PipelineParams{
		ScoreThreshold:    0.4,
		MaxChunks:         2,
		MinWordMatchRatio: 0.3,
		MaxContextLength:  1500,
		MinMatchLength:    2,
		MinConfidence:     0.3,
	}
}

// RelaxedPipelineParams returns the looser preset: a wider match net and
// one more chunk of context.
func RelaxedPipelineParams() PipelineParams {
	p := DefaultPipelineParams()
	p.ScoreThreshold = 0.6
	p.MaxChunks = 3
	p.MaxContextLength = 2000
	return p
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`

	// AdminToken, when set, is required for content write operations.
	AdminToken string `json:"admin_token,omitempty" yaml:"admin_token,omitempty"`
}

// ContentConfig holds content store settings.
type ContentConfig struct {
	// DBPath is the SQLite database file (default "data/coaz.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// IngestConfig holds source document locations.
type IngestConfig struct {
	// ConstitutionPath is the extracted constitution text file.
	ConstitutionPath string `json:"constitution_path" yaml:"constitution_path"`

	// PagesPath is the YAML crawl-cache file of website pages.
	PagesPath string `json:"pages_path" yaml:"pages_path"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Content   ContentConfig   `json:"content" yaml:"content"`
	Ingest    IngestConfig    `json:"ingest" yaml:"ingest"`
	Inference InferenceConfig `json:"inference" yaml:"inference"`
	Pipeline  PipelineParams  `json:"pipeline" yaml:"pipeline"`
}
