// Copyright COAZ Digital, 2026. All rights reserved.

// Package format finalizes answer text for the user: it strips the tags
// and prefixes that inference output drags along, bounds the length with
// sentence-aware truncation, and guarantees terminal punctuation.
// Formatting is idempotent.
package format

import (
	"regexp"
	"strings"

	"github.com/coazdigital/coaz-assist/internal/textutil"
)

var (
	// Leading bracketed source tags like "[CONSTITUTION]" or "[...]".
	tagPrefix = regexp.MustCompile(`^\s*\[[^\]]*\]\s*`)

	// Conversational prefixes some generation models prepend.
	rolePrefix = regexp.MustCompile(`(?i)^\s*(assistant|ai|answer|response)\s*:\s*`)
)

const ellipsis = "..."

// sentenceBoundaryFraction is how far back from the length limit a
// sentence boundary may lie and still be preferred over a hard cut.
const sentenceBoundaryFraction = 0.7

// Format cleans and bounds an answer string. The result is at most
// maxLength characters, ends in terminal punctuation when non-empty, and
// is unchanged when formatted again. A non-positive maxLength leaves the
// length unbounded.
func Format(text string, maxLength int) string {
	s := text
	for {
		trimmed := tagPrefix.ReplaceAllString(s, "")
		trimmed = rolePrefix.ReplaceAllString(trimmed, "")
		if trimmed == s {
			break
		}
		s = trimmed
	}
	s = textutil.CollapseWhitespace(s)

	if maxLength > 0 {
		s = TruncateAtSentence(s, maxLength)
	}

	if s != "" && !endsWithPunctuation(s) {
		if maxLength > 0 && len([]rune(s)) >= maxLength {
			r := []rune(s)
			s = string(r[:maxLength-1])
		}
		s += "."
	}
	return s
}

// TruncateAtSentence bounds text to limit characters. When a sentence
// boundary lies within the final 30% of the window the cut happens there;
// otherwise the text is hard-truncated with an ellipsis.
func TruncateAtSentence(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= len(ellipsis) {
		return strings.TrimSpace(string(runes[:limit]))
	}

	window := runes[:limit]
	boundary := -1
	for i := len(window) - 1; i >= 0; i-- {
		if isTerminal(window[i]) {
			boundary = i
			break
		}
	}

	if boundary >= int(sentenceBoundaryFraction*float64(limit)) {
		return strings.TrimSpace(string(window[:boundary+1]))
	}

	cut := strings.TrimSpace(string(runes[:limit-len(ellipsis)]))
	return cut + ellipsis
}

func endsWithPunctuation(s string) bool {
	r := []rune(s)
	return isTerminal(r[len(r)-1])
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
