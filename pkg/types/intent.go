// Copyright COAZ Digital, 2026. All rights reserved.

package types

// IntentType is the classified category of a user question. It drives the
// answer-length budget and whether retrieval context is needed.
type IntentType string

const (
	// IntentSimple covers short factual lookups (what-is, stands-for,
	// where-is, does-it-exist).
	IntentSimple IntentType = "simple"

	// IntentDetailed covers questions that need an explanatory answer
	// (joining, membership requirements, training, governance, contact).
	IntentDetailed IntentType = "detailed"

	// IntentGeneralCOAZ covers questions that mention organization-related
	// vocabulary without matching a more specific pattern.
	IntentGeneralCOAZ IntentType = "general_coaz"

	// IntentGeneral is the fallback for everything else.
	IntentGeneral IntentType = "general"
)

// QueryIntent is the per-request classification result. It is derived
// purely from the question text and recomputed on every request.
type QueryIntent struct {
	// Type is the matched intent category.
	Type IntentType `json:"type" yaml:"type"`

	// NeedsShortAnswer requests the rule-based short-answer path first.
	NeedsShortAnswer bool `json:"needs_short_answer" yaml:"needs_short_answer"`

	// NeedsContext indicates retrieval context should back the answer.
	NeedsContext bool `json:"needs_context" yaml:"needs_context"`

	// MaxLength is the answer budget in characters for this intent.
	MaxLength int `json:"max_length" yaml:"max_length"`
}
