// Copyright COAZ Digital, 2026. All rights reserved.

// Package textutil cleans heterogeneous source text before indexing and
// answering: markup stripping, whitespace collapsing, and removal of the
// navigation boilerplate that crawled pages drag along.
package textutil

import (
	"regexp"
	"strings"
)

var (
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
	spacePattern  = regexp.MustCompile(`\s+`)
	wordPattern   = regexp.MustCompile(`[\p{L}\p{N}]+`)
	entityReplace = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&rsquo;", "'",
		"&ndash;", "-",
		"&mdash;", "-",
	)
)

// noisePhrases are boilerplate fragments that carry no answerable content.
// Matching is case-insensitive on whole phrases.
var noisePhrases = []string{
	"click here",
	"read more",
	"learn more",
	"home about us",
	"skip to content",
	"toggle navigation",
	"all rights reserved",
	"cookie policy",
	"days hours minutes seconds",
	"subscribe to our newsletter",
	"follow us on",
	"back to top",
}

var noisePatterns = compileNoise(noisePhrases)

func compileNoise(phrases []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(p)))
	}
	return out
}

// Clean strips HTML tags, decodes common entities, removes boilerplate
// noise phrases, and collapses whitespace. Empty input yields an empty
// string; Clean never fails. The substitutions are independent, so their
// order does not matter beyond the final whitespace pass.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	s := tagPattern.ReplaceAllString(text, " ")
	s = entityReplace.Replace(s)
	for _, p := range noisePatterns {
		s = p.ReplaceAllString(s, " ")
	}
	return CollapseWhitespace(s)
}

// CollapseWhitespace reduces any whitespace run to a single space and
// trims the ends.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

// Tokens returns the lowercase word tokens of text.
func Tokens(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// SignificantTokens returns lowercase tokens longer than two characters.
// Short function words contribute nothing to overlap scoring.
func SignificantTokens(text string) []string {
	var out []string
	for _, t := range Tokens(text) {
		if len(t) > 2 {
			out = append(out, t)
		}
	}
	return out
}

// TokenSet returns the distinct lowercase tokens of text.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokens(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
