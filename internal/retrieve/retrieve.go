// Copyright COAZ Digital, 2026. All rights reserved.

// Package retrieve selects answer context from the fuzzy index: it
// over-fetches candidates, discards weak fuzzy matches, drops candidates
// that share too few words with the question, and caps the survivors.
package retrieve

import (
	"sort"
	"strings"

	"github.com/coazdigital/coaz-assist/internal/index"
	"github.com/coazdigital/coaz-assist/internal/textutil"
	"github.com/coazdigital/coaz-assist/pkg/types"
)

// relevancePointsPerToken is the rank contribution of each question token
// found in a candidate.
const relevancePointsPerToken = 2

// Retrieve returns the best context chunks for a question, at most
// params.MaxChunks of them. Every returned chunk passed both the fuzzy
// score threshold and the word-overlap filter. Retrieve never fails: a
// nil or unbuilt snapshot, or a question without significant tokens,
// yields an empty result.
func Retrieve(question string, snap *index.Snapshot, params types.PipelineParams) []types.RetrievedChunk {
	if snap.Len() == 0 {
		return nil
	}

	qtokens := textutil.SignificantTokens(question)
	if len(qtokens) == 0 {
		return nil
	}

	hits := snap.Search(question, 2*params.MaxChunks)

	var chunks []types.RetrievedChunk
	for _, h := range hits {
		if h.Score > params.ScoreThreshold {
			continue
		}

		matched := matchedTokens(qtokens, h.Doc.Text)
		ratio := float64(matched) / float64(len(qtokens))
		if ratio < params.MinWordMatchRatio {
			continue
		}

		chunks = append(chunks, types.RetrievedChunk{
			Text:           h.Doc.Text,
			Score:          h.Score,
			RelevanceScore: float64(relevancePointsPerToken * matched),
			WordMatchRatio: ratio,
			Title:          h.Doc.Title,
			Source:         h.Doc.Source,
			URL:            h.Doc.URL,
		})
	}

	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].RelevanceScore > chunks[j].RelevanceScore
	})
	if len(chunks) > params.MaxChunks {
		chunks = chunks[:params.MaxChunks]
	}
	return chunks
}

// matchedTokens counts how many question tokens appear as substrings
// anywhere in the candidate text.
func matchedTokens(qtokens []string, text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, t := range qtokens {
		if strings.Contains(lower, t) {
			count++
		}
	}
	return count
}
