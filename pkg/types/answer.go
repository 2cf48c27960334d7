// Copyright COAZ Digital, 2026. All rights reserved.

package types

import "time"

// RetrievedChunk is one unit of source text selected as answer context.
// Chunks are ephemeral: produced per query, ranked, and capped.
type RetrievedChunk struct {
	// Text is the chunk body.
	Text string `json:"text" yaml:"text"`

	// Score is the fuzzy-match distance in [0,1]; lower is better, 0 exact.
	Score float64 `json:"score" yaml:"score"`

	// RelevanceScore is the keyword-overlap rank used for ordering
	// (2 points per matched question token).
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// WordMatchRatio is the fraction of significant question tokens found
	// in the chunk text.
	WordMatchRatio float64 `json:"word_match_ratio" yaml:"word_match_ratio"`

	// Title and Source carry the originating document's metadata.
	Title  string         `json:"title" yaml:"title"`
	Source DocumentSource `json:"source" yaml:"source"`
	URL    string         `json:"url,omitempty" yaml:"url,omitempty"`
}

// ResponseType records which answering path produced a result.
type ResponseType string

const (
	// ResponseDirect is a fixed rule-based answer.
	ResponseDirect ResponseType = "direct"

	// ResponseExtractive is a snippet taken verbatim from retrieved text.
	ResponseExtractive ResponseType = "extractive"

	// ResponseGenerated came back from the external inference service.
	ResponseGenerated ResponseType = "generated"

	// ResponseFallback is a canned hedge, not-found, or error message.
	ResponseFallback ResponseType = "fallback"
)

// AnswerSource records what grounded the answer text.
type AnswerSource string

const (
	AnswerFromRules        AnswerSource = "rule_based"
	AnswerFromConstitution AnswerSource = "constitution"
	AnswerFromWebsite      AnswerSource = "website"
	AnswerFromNothing      AnswerSource = "none"
	AnswerFromError        AnswerSource = "error"
)

// ConfidenceSource tags where a confidence value came from. The three
// producers share a 0-1 scale but have no common calibration, so values
// are only ever compared against per-source thresholds, never across
// sources.
type ConfidenceSource string

const (
	// ConfidenceRule is a fixed constant attached to a canned answer.
	ConfidenceRule ConfidenceSource = "rule"

	// ConfidenceModel is the score reported by the inference service.
	ConfidenceModel ConfidenceSource = "model"

	// ConfidenceOverlap is derived from keyword overlap with the source text.
	ConfidenceOverlap ConfidenceSource = "overlap"

	// ConfidenceNone marks fallback results that carry no real signal.
	ConfidenceNone ConfidenceSource = "none"
)

// AnswerResult is the unit returned to callers for every question. Every
// pipeline path, including failures of the inference service, produces a
// well-formed AnswerResult.
type AnswerResult struct {
	// Answer is the final cleaned, bounded answer text.
	Answer string `json:"answer" yaml:"answer"`

	// Confidence is a heuristic value in [0,1]; see ConfidenceSource.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// ConfidenceSource tags which producer supplied Confidence.
	ConfidenceSource ConfidenceSource `json:"confidence_source" yaml:"confidence_source"`

	// ResponseType records the answering path taken.
	ResponseType ResponseType `json:"response_type" yaml:"response_type"`

	// Source records what grounded the answer.
	Source AnswerSource `json:"source" yaml:"source"`

	// Intent is the classified intent the pipeline acted on.
	Intent IntentType `json:"intent" yaml:"intent"`

	// ChunksUsed is how many retrieved chunks backed the answer.
	ChunksUsed int `json:"chunks_used" yaml:"chunks_used"`

	// ProcessingTime is the wall-clock pipeline duration.
	ProcessingTime time.Duration `json:"processing_time" yaml:"processing_time"`
}
