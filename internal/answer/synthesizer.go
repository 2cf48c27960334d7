// Copyright COAZ Digital, 2026. All rights reserved.

// Package answer turns a classified question and its retrieved context
// into a final AnswerResult. Canonical facts about the college short-
// circuit to canned answers; everything else is grounded in retrieved
// text and delegated to the inference service. Every path, including
// inference failure, yields a well-formed result.
package answer

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coazdigital/coaz-assist/internal/format"
	"github.com/coazdigital/coaz-assist/internal/inference"
	"github.com/coazdigital/coaz-assist/pkg/types"
)

// Fixed user-facing fallback messages.
const (
	msgNotFound = "I couldn't find relevant information about that in the COAZ knowledge base. Please try rephrasing your question."

	msgNotConfident = "I'm not confident enough to give you an accurate answer to that. The COAZ secretariat can help with specifics."

	msgError = "Sorry, I encountered an error while answering. Please try again in a moment."
)

// contextChunks is how many top chunks are concatenated into the
// inference context.
const contextChunks = 2

// Synthesizer chooses among rule-based, extractive, and generated
// answering paths.
type Synthesizer struct {
	backend inference.Backend
	rules   *Rules
	params  types.PipelineParams
	log     zerolog.Logger
}

// NewSynthesizer wires the answering paths together. backend may be nil,
// in which case context-backed questions are answered extractively.
func NewSynthesizer(backend inference.Backend, rules *Rules, params types.PipelineParams, log zerolog.Logger) *Synthesizer {
	return &Synthesizer{backend: backend, rules: rules, params: params, log: log}
}

// Answer produces a result for the question. It never returns an error:
// external failures are downgraded to fallback results with confidence 0.
func (s *Synthesizer) Answer(ctx context.Context, question string, qi types.QueryIntent, chunks []types.RetrievedChunk) types.AnswerResult {
	// Canonical facts are cheaper and more reliable than extraction, so
	// the rule table runs before any retrieved text is considered.
	if qi.NeedsShortAnswer && s.rules != nil {
		if text, conf, ok := s.rules.Match(question); ok {
			return types.AnswerResult{
				Answer:           format.TruncateAtSentence(text, qi.MaxLength),
				Confidence:       conf,
				ConfidenceSource: types.ConfidenceRule,
				ResponseType:     types.ResponseDirect,
				Source:           types.AnswerFromRules,
				Intent:           qi.Type,
			}
		}
	}

	// Nothing retrieved: answering without grounding would waste an
	// inference call, so return the fixed not-found result.
	if len(chunks) == 0 {
		return types.AnswerResult{
			Answer:           msgNotFound,
			Confidence:       0,
			ConfidenceSource: types.ConfidenceNone,
			ResponseType:     types.ResponseFallback,
			Source:           types.AnswerFromNothing,
			Intent:           qi.Type,
		}
	}

	grounding := chunkSource(chunks[0].Source)

	if s.backend == nil {
		// Inference disabled: the best chunk itself is the answer.
		return types.AnswerResult{
			Answer:           format.TruncateAtSentence(chunks[0].Text, qi.MaxLength),
			Confidence:       chunks[0].WordMatchRatio,
			ConfidenceSource: types.ConfidenceOverlap,
			ResponseType:     types.ResponseExtractive,
			Source:           grounding,
			Intent:           qi.Type,
			ChunksUsed:       1,
		}
	}

	passage := buildContext(chunks, s.params.MaxContextLength)
	used := len(chunks)
	if used > contextChunks {
		used = contextChunks
	}

	res, err := s.backend.Answer(ctx, question, passage)
	if err != nil {
		s.log.Warn().Err(err).Str("backend", s.backend.Name()).Msg("inference call failed")
		return types.AnswerResult{
			Answer:           msgError,
			Confidence:       0,
			ConfidenceSource: types.ConfidenceNone,
			ResponseType:     types.ResponseFallback,
			Source:           types.AnswerFromError,
			Intent:           qi.Type,
			ChunksUsed:       used,
		}
	}

	// A hedge beats a wrong-but-confident answer.
	if res.Score < s.params.MinConfidence {
		return types.AnswerResult{
			Answer:           msgNotConfident,
			Confidence:       res.Score,
			ConfidenceSource: types.ConfidenceModel,
			ResponseType:     types.ResponseFallback,
			Source:           types.AnswerFromNothing,
			Intent:           qi.Type,
			ChunksUsed:       used,
		}
	}

	return types.AnswerResult{
		Answer:           format.TruncateAtSentence(res.Answer, qi.MaxLength),
		Confidence:       res.Score,
		ConfidenceSource: types.ConfidenceModel,
		ResponseType:     types.ResponseGenerated,
		Source:           grounding,
		Intent:           qi.Type,
		ChunksUsed:       used,
	}
}

// buildContext joins the top chunks with blank lines and bounds the
// total length.
func buildContext(chunks []types.RetrievedChunk, maxLength int) string {
	n := len(chunks)
	if n > contextChunks {
		n = contextChunks
	}
	parts := make([]string, 0, n)
	for _, c := range chunks[:n] {
		parts = append(parts, c.Text)
	}
	passage := strings.Join(parts, "\n\n")
	if maxLength > 0 {
		if runes := []rune(passage); len(runes) > maxLength {
			passage = string(runes[:maxLength])
		}
	}
	return passage
}

func chunkSource(src types.DocumentSource) types.AnswerSource {
	switch src {
	case types.SourceConstitution:
		return types.AnswerFromConstitution
	case types.SourceWebsite:
		return types.AnswerFromWebsite
	default:
		return types.AnswerFromNothing
	}
}
