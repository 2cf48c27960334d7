// Copyright COAZ Digital, 2026. All rights reserved.

// Package intent buckets an incoming question into a category that drives
// the answer-length budget and retrieval policy. Classification is an
// ordered rule table evaluated top to bottom; the first match wins, so
// simple factual patterns always take precedence over detailed ones, and
// both over the keyword fallback.
package intent

import (
	"regexp"
	"strings"

	"github.com/coazdigital/coaz-assist/internal/textutil"
	"github.com/coazdigital/coaz-assist/pkg/types"
)

// shortQuestionLength is the raw-question length under which the fallback
// intents still request a short answer.
const shortQuestionLength = 50

// Answer budgets per intent, in characters.
const (
	budgetSimple      = 100
	budgetDetailed    = 300
	budgetGeneralCOAZ = 200
	budgetGeneral     = 150
)

// rule pairs a question pattern with the intent it selects.
type rule struct {
	pattern *regexp.Regexp
	intent  types.QueryIntent
}

// rules is the ordered dispatch table. Keep simple patterns ahead of
// detailed ones: a question matching both must classify as simple.
var rules = []rule{
	// Simple factual lookups.
	{regexp.MustCompile(`(?i)\bstands?\s+for\b`), simpleIntent()},
	{regexp.MustCompile(`(?i)\b(full|long)\s+form\b`), simpleIntent()},
	{regexp.MustCompile(`(?i)^\s*what\s+is\b`), simpleIntent()},
	{regexp.MustCompile(`(?i)^\s*what\s+does\b.*\bmean\b`), simpleIntent()},
	{regexp.MustCompile(`(?i)\bwhere\s+(is|are|can\s+i\s+find)\b`), simpleIntent()},
	{regexp.MustCompile(`(?i)\b(is|are|does)\s+there\b`), simpleIntent()},
	{regexp.MustCompile(`(?i)\bexists?\b`), simpleIntent()},

	// Detailed explanations.
	{regexp.MustCompile(`(?i)\bhow\s+(do|can|to)\b.*\b(join|become|apply|register)\b`), detailedIntent()},
	{regexp.MustCompile(`(?i)\b(membership|member)\b.*\b(requirements?|criteria|fees?|benefits?)\b`), detailedIntent()},
	{regexp.MustCompile(`(?i)\b(requirements?|criteria)\b.*\b(membership|member|joining)\b`), detailedIntent()},
	{regexp.MustCompile(`(?i)\b(training|education|course|program|fellowship|exam)\b`), detailedIntent()},
	{regexp.MustCompile(`(?i)\b(governance|council|constitution|president|committee|leadership)\b`), detailedIntent()},
	{regexp.MustCompile(`(?i)\b(contact|reach|email|phone|address)\b`), detailedIntent()},
}

func simpleIntent() types.QueryIntent {
	return types.QueryIntent{
		Type:             types.IntentSimple,
		NeedsShortAnswer: true,
		NeedsContext:     false,
		MaxLength:        budgetSimple,
	}
}

func detailedIntent() types.QueryIntent {
	return types.QueryIntent{
		Type:         types.IntentDetailed,
		NeedsContext: true,
		MaxLength:    budgetDetailed,
	}
}

// domainKeywords is the fixed vocabulary of organization-related terms
// used by the keyword fallback.
var domainKeywords = []string{
	"coaz",
	"college",
	"anesthesia",
	"anaesthesia",
	"anesthesiology",
	"anesthesiologist",
	"anesthetist",
	"zambia",
	"zambian",
	"lusaka",
	"member",
	"membership",
	"medical",
	"doctor",
	"physician",
	"health",
	"hospital",
	"conference",
	"cpd",
}

// Classify derives the query intent from the question text alone. It is
// pure and never fails; an empty question falls through to the general
// intent.
func Classify(question string) types.QueryIntent {
	q := textutil.CollapseWhitespace(question)

	for _, r := range rules {
		if r.pattern.MatchString(q) {
			return r.intent
		}
	}

	short := len(q) < shortQuestionLength
	if hasDomainKeyword(q) {
		return types.QueryIntent{
			Type:             types.IntentGeneralCOAZ,
			NeedsShortAnswer: short,
			NeedsContext:     true,
			MaxLength:        budgetGeneralCOAZ,
		}
	}
	return types.QueryIntent{
		Type:             types.IntentGeneral,
		NeedsShortAnswer: short,
		NeedsContext:     true,
		MaxLength:        budgetGeneral,
	}
}

func hasDomainKeyword(question string) bool {
	lower := strings.ToLower(question)
	for _, kw := range domainKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
