// Copyright COAZ Digital, 2026. All rights reserved.

// Package engine runs the full answering pipeline: normalize, classify,
// retrieve, synthesize, format. The engine owns the shared index
// snapshot; reindexing builds a fresh snapshot and swaps a pointer, so
// queries racing a rebuild see either the old or the new index in full.
package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/coazdigital/coaz-assist/internal/answer"
	"github.com/coazdigital/coaz-assist/internal/format"
	"github.com/coazdigital/coaz-assist/internal/index"
	"github.com/coazdigital/coaz-assist/internal/inference"
	"github.com/coazdigital/coaz-assist/internal/intent"
	"github.com/coazdigital/coaz-assist/internal/retrieve"
	"github.com/coazdigital/coaz-assist/internal/textutil"
	"github.com/coazdigital/coaz-assist/pkg/types"
)

// ErrEmptyQuestion is returned for questions with no content. It is the
// engine's only error; every other failure becomes a fallback answer.
var ErrEmptyQuestion = errors.New("question is empty")

// Engine is safe for concurrent use.
type Engine struct {
	params types.PipelineParams
	synth  *answer.Synthesizer
	snap   atomic.Pointer[index.Snapshot]
	log    zerolog.Logger
}

// New assembles an engine. backend may be nil (extractive answers only).
func New(backend inference.Backend, rules *answer.Rules, params types.PipelineParams, log zerolog.Logger) *Engine {
	return &Engine{
		params: params,
		synth:  answer.NewSynthesizer(backend, rules, params, log),
		log:    log,
	}
}

// Reindex builds a snapshot from docs and swaps it in. On failure the
// previous snapshot keeps serving and the error is returned.
func (e *Engine) Reindex(docs []types.Document) (int, error) {
	snap, err := index.Build(docs, e.params)
	if err != nil {
		return 0, err
	}
	e.snap.Store(snap)
	e.log.Info().Int("documents", snap.Len()).Msg("index rebuilt")
	return snap.Len(), nil
}

// Ready reports whether an index snapshot has been built.
func (e *Engine) Ready() bool {
	return e.snap.Load() != nil
}

// DocCount returns the size of the current snapshot.
func (e *Engine) DocCount() int {
	return e.snap.Load().Len()
}

// Ask answers one question. useRAG=false skips retrieval so only the
// rule-based and fallback paths apply. The result is always well-formed;
// the only possible error is an empty question.
func (e *Engine) Ask(ctx context.Context, question string, useRAG bool) (types.AnswerResult, error) {
	start := time.Now()

	q := textutil.CollapseWhitespace(question)
	if q == "" {
		return types.AnswerResult{}, ErrEmptyQuestion
	}

	qi := intent.Classify(q)

	var chunks []types.RetrievedChunk
	if useRAG {
		chunks = retrieve.Retrieve(q, e.snap.Load(), e.params)
	}

	res := e.synth.Answer(ctx, q, qi, chunks)
	res.Answer = format.Format(res.Answer, qi.MaxLength)
	res.ProcessingTime = time.Since(start)

	e.log.Debug().
		Str("intent", string(qi.Type)).
		Str("response_type", string(res.ResponseType)).
		Str("source", string(res.Source)).
		Float64("confidence", res.Confidence).
		Int("chunks", len(chunks)).
		Dur("took", res.ProcessingTime).
		Msg("question answered")

	return res, nil
}
