// Copyright COAZ Digital, 2026. All rights reserved.

package retrieve

import (
	"testing"

	"github.com/coazdigital/coaz-assist/internal/index"
	"github.com/coazdigital/coaz-assist/pkg/types"
)

func buildSnapshot(t *testing.T, docs []types.Document) *index.Snapshot {
	t.Helper()
	snap, err := index.Build(docs, types.DefaultPipelineParams())
	if err != nil {
		t.Fatalf("index.Build() error: %v", err)
	}
	return snap
}

func corpusDocs() []types.Document {
	return []types.Document{
		{
			Text:   "Membership requirements include relevant medical qualifications and current registration.",
			Title:  "Membership",
			Source: types.SourceConstitution,
		},
		{
			Text:   "Training programs cover anesthesia and critical care for members of the college.",
			Title:  "Training",
			Source: types.SourceWebsite,
		},
		{
			Text:   "The gala dinner menu features traditional dishes from across the region.",
			Title:  "Gala",
			Source: types.SourceWebsite,
		},
	}
}

func TestRetrieveNilSnapshot(t *testing.T) {
	if got := Retrieve("membership", nil, types.DefaultPipelineParams()); got != nil {
		t.Errorf("Retrieve(nil snapshot) = %v, want nil", got)
	}
}

func TestRetrieveNoSignificantTokens(t *testing.T) {
	snap := buildSnapshot(t, corpusDocs())
	if got := Retrieve("a of is", snap, types.DefaultPipelineParams()); got != nil {
		t.Errorf("Retrieve() with only stop-length tokens = %v, want nil", got)
	}
}

func TestRetrieveFindsRelevantChunk(t *testing.T) {
	snap := buildSnapshot(t, corpusDocs())
	chunks := Retrieve("What are the membership requirements?", snap, types.DefaultPipelineParams())
	if len(chunks) == 0 {
		t.Fatal("Retrieve() returned no chunks")
	}
	if chunks[0].Title != "Membership" {
		t.Errorf("top chunk = %q, want Membership", chunks[0].Title)
	}
}

func TestRetrieveEnforcesWordMatchRatio(t *testing.T) {
	snap := buildSnapshot(t, corpusDocs())
	params := types.DefaultPipelineParams()

	chunks := Retrieve("membership requirements qualifications", snap, params)
	for _, c := range chunks {
		if c.WordMatchRatio < params.MinWordMatchRatio {
			t.Errorf("chunk %q ratio %f below %f", c.Title, c.WordMatchRatio, params.MinWordMatchRatio)
		}
	}
}

func TestRetrieveRespectsCap(t *testing.T) {
	docs := []types.Document{}
	for i := 0; i < 6; i++ {
		docs = append(docs, types.Document{
			Text:   "Membership requirements include medical qualifications and registration.",
			Title:  "Membership",
			Source: types.SourceConstitution,
		})
	}
	snap := buildSnapshot(t, docs)

	params := types.DefaultPipelineParams()
	chunks := Retrieve("membership requirements", snap, params)
	if len(chunks) > params.MaxChunks {
		t.Errorf("len(chunks) = %d, exceeds cap %d", len(chunks), params.MaxChunks)
	}

	relaxed := types.RelaxedPipelineParams()
	chunks = Retrieve("membership requirements", snap, relaxed)
	if len(chunks) > relaxed.MaxChunks {
		t.Errorf("len(chunks) = %d, exceeds relaxed cap %d", len(chunks), relaxed.MaxChunks)
	}
}

func TestRetrieveZeroOverlapReturnsEmpty(t *testing.T) {
	snap := buildSnapshot(t, corpusDocs())
	chunks := Retrieve("quantum chromodynamics lattice spacing", snap, types.DefaultPipelineParams())
	if len(chunks) != 0 {
		t.Errorf("Retrieve() with zero overlap = %d chunks, want 0", len(chunks))
	}
}

func TestRetrieveSortsByRelevance(t *testing.T) {
	snap := buildSnapshot(t, corpusDocs())
	chunks := Retrieve("membership training college", snap, types.RelaxedPipelineParams())
	for i := 1; i < len(chunks); i++ {
		if chunks[i].RelevanceScore > chunks[i-1].RelevanceScore {
			t.Errorf("chunks not sorted by relevance at %d", i)
		}
	}
}
