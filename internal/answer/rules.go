// Copyright COAZ Digital, 2026. All rights reserved.

package answer

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Rule is one canned-answer entry. Keywords are any-of substrings matched
// against the lowercased question; Requires, when non-empty, is a second
// any-of gate that keeps generic phrasings like "where is" from firing on
// questions about other subjects.
type Rule struct {
	Key        string   `yaml:"key"`
	Keywords   []string `yaml:"keywords"`
	Requires   []string `yaml:"requires"`
	Confidence float64  `yaml:"confidence"`
	Answers    []string `yaml:"answers"`
}

type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// Rules is the ordered canned-answer table. The variant picker is
// injectable so tests get deterministic output while production picks at
// random among equivalent phrasings.
type Rules struct {
	rules []Rule
	pick  func(n int) int
}

// LoadRules parses the embedded canned-answer data.
func LoadRules() (*Rules, error) {
	return ParseRules(defaultRulesYAML)
}

// ParseRules builds a rule table from YAML data.
func ParseRules(data []byte) (*Rules, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing answer rules: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("answer rules data is empty")
	}
	for i, r := range f.Rules {
		if len(r.Answers) == 0 {
			return nil, fmt.Errorf("rule %d (%s): no answers", i, r.Key)
		}
		if r.Confidence <= 0 || r.Confidence > 1 {
			return nil, fmt.Errorf("rule %d (%s): confidence %f out of range", i, r.Key, r.Confidence)
		}
	}
	return &Rules{rules: f.Rules, pick: rand.Intn}, nil
}

// SetPicker replaces the variant picker. Passing nil restores the
// random default.
func (r *Rules) SetPicker(pick func(n int) int) {
	if pick == nil {
		pick = rand.Intn
	}
	r.pick = pick
}

// Match returns the canned answer and confidence for the first rule the
// question satisfies, or ok=false when none applies.
func (r *Rules) Match(question string) (answer string, confidence float64, ok bool) {
	lower := strings.ToLower(question)
	for _, rule := range r.rules {
		if !containsAny(lower, rule.Keywords) {
			continue
		}
		if len(rule.Requires) > 0 && !containsAny(lower, rule.Requires) {
			continue
		}
		return rule.Answers[r.pick(len(rule.Answers))], rule.Confidence, true
	}
	return "", 0, false
}

// Variants exposes the answer set for a rule key so tests can assert
// "one of the expected set" without reaching into the data file.
func (r *Rules) Variants(key string) []string {
	for _, rule := range r.rules {
		if rule.Key == key {
			return rule.Answers
		}
	}
	return nil
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
