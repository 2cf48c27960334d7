// Copyright COAZ Digital, 2026. All rights reserved.

// Package index builds an in-memory fuzzy-match index over source
// documents. A Snapshot is immutable once built; callers replace the whole
// snapshot on reindex so concurrent readers always see either the old or
// the new index, never a partial one.
package index

import (
	"errors"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/coazdigital/coaz-assist/internal/textutil"
	"github.com/coazdigital/coaz-assist/pkg/types"
)

// Field weights: body text dominates, titles help, the source label is a
// weak signal.
const (
	weightText   = 1.0
	weightTitle  = 0.8
	weightSource = 0.3
)

const defaultMinMatchLength = 2

// Hit pairs a document with its match score. Score is a distance in
// [0,1]: 0 is an exact match, larger is worse.
type Hit struct {
	Doc   types.Document
	Score float64
}

// Snapshot is an immutable searchable view over one document set.
type Snapshot struct {
	docs           []searchDoc
	minMatchLength int
}

type searchDoc struct {
	doc    types.Document
	text   []string
	title  []string
	source []string
}

// Build cleans and tokenizes documents into a new Snapshot. Documents
// whose cleaned text is empty are dropped. An empty input set is an
// error so callers can keep serving the previous snapshot.
func Build(docs []types.Document, params types.PipelineParams) (*Snapshot, error) {
	if len(docs) == 0 {
		return nil, errors.New("no documents to index")
	}

	minLen := params.MinMatchLength
	if minLen <= 0 {
		minLen = defaultMinMatchLength
	}

	snap := &Snapshot{minMatchLength: minLen}
	for _, d := range docs {
		cleaned := textutil.Clean(d.Text)
		if cleaned == "" {
			continue
		}
		d.Text = cleaned
		d.Title = textutil.CollapseWhitespace(d.Title)
		snap.docs = append(snap.docs, searchDoc{
			doc:    d,
			text:   textutil.Tokens(cleaned),
			title:  textutil.Tokens(d.Title),
			source: textutil.Tokens(string(d.Source)),
		})
	}

	if len(snap.docs) == 0 {
		return nil, errors.New("all documents empty after cleaning")
	}
	return snap, nil
}

// Len reports the number of indexed documents. Safe on a nil Snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.docs)
}

// Search scores every document against the query and returns up to limit
// hits sorted ascending by score. A nil or empty snapshot, or a query
// with no usable tokens, yields no hits; Search never fails.
func (s *Snapshot) Search(query string, limit int) []Hit {
	if s.Len() == 0 || limit <= 0 {
		return nil
	}

	var qtokens []string
	for _, t := range textutil.Tokens(query) {
		if len(t) >= s.minMatchLength {
			qtokens = append(qtokens, t)
		}
	}
	if len(qtokens) == 0 {
		return nil
	}

	hits := make([]Hit, 0, len(s.docs))
	for _, sd := range s.docs {
		hits = append(hits, Hit{Doc: sd.doc, Score: sd.score(qtokens)})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score < hits[j].Score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// score reduces per-field distances to one document score. Each field's
// distance is discounted by its weight (a weak field can never push a
// score below 1-weight of the way to perfect) and the best field wins.
func (sd searchDoc) score(qtokens []string) float64 {
	best := 1.0
	for _, f := range []struct {
		tokens []string
		weight float64
	}{
		{sd.text, weightText},
		{sd.title, weightTitle},
		{sd.source, weightSource},
	} {
		if len(f.tokens) == 0 {
			continue
		}
		weighted := 1.0 - f.weight*(1.0-fieldScore(qtokens, f.tokens))
		if weighted < best {
			best = weighted
		}
	}
	return best
}

// fieldScore blends the best single-token distance with the average over
// all query tokens. The best term lets a one-word question latch onto a
// long document; the average term keeps multi-word agreement relevant.
func fieldScore(qtokens, ftokens []string) float64 {
	lowest, total := 1.0, 0.0
	for _, qt := range qtokens {
		best := 1.0
		for _, ft := range ftokens {
			if d := tokenDistance(qt, ft); d < best {
				best = d
			}
			if best == 0 {
				break
			}
		}
		if best < lowest {
			lowest = best
		}
		total += best
	}
	avg := total / float64(len(qtokens))
	return (lowest + avg) / 2
}

// tokenDistance returns a normalized distance between a query token and a
// field token: 0 for equality, a small constant for containment, the
// length-normalized Levenshtein distance for fuzzy matches, 1 otherwise.
func tokenDistance(qt, ft string) float64 {
	if qt == ft {
		return 0
	}
	if strings.Contains(ft, qt) {
		return 0.1
	}
	if fuzzy.MatchNormalizedFold(qt, ft) {
		longest := len(qt)
		if len(ft) > longest {
			longest = len(ft)
		}
		d := float64(fuzzy.LevenshteinDistance(qt, ft)) / float64(longest)
		if d > 1 {
			d = 1
		}
		return d
	}
	return 1
}
