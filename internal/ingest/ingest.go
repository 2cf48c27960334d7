// Copyright COAZ Digital, 2026. All rights reserved.

// Package ingest turns raw source material into indexable documents: the
// extracted constitution text is split into headed sections, and the
// website crawl cache is loaded from its YAML file.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/coazdigital/coaz-assist/internal/textutil"
	"github.com/coazdigital/coaz-assist/pkg/types"
)

// minSectionLength drops fragments too short to be worth indexing, such
// as stray page numbers and orphaned heading lines.
const minSectionLength = 40

// Heading forms found in the constitution text: "ARTICLE IV", "PART 2",
// numbered clauses like "12." or "3.1", and short ALL-CAPS lines.
var (
	articleHeading = regexp.MustCompile(`^(ARTICLE|PART|SCHEDULE|APPENDIX)\b`)
	numberHeading  = regexp.MustCompile(`^\d+(\.\d+)*\.?\s+\S`)
	capsHeading    = regexp.MustCompile(`^[A-Z][A-Z0-9 ,\-&/()']{3,60}$`)
)

// Section is one headed chunk of the constitution.
type Section struct {
	Heading string
	Body    string
}

// Sections splits extracted constitution text on heading lines and blank
// runs. Fragments whose body is shorter than minSectionLength are dropped.
func Sections(text string) []Section {
	lines := strings.Split(text, "\n")
	var sections []Section
	currentHeading := ""
	var bodyLines []string

	flush := func() {
		body := strings.TrimSpace(strings.Join(bodyLines, "\n"))
		if len(body) >= minSectionLength {
			sections = append(sections, Section{
				Heading: currentHeading,
				Body:    body,
			})
		}
		bodyLines = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if isHeading(trimmed) {
			flush()
			currentHeading = trimmed
			continue
		}

		bodyLines = append(bodyLines, line)
	}

	flush()
	return sections
}

func isHeading(line string) bool {
	if line == "" {
		return false
	}
	if articleHeading.MatchString(line) || numberHeading.MatchString(line) {
		return true
	}
	// An ALL-CAPS line reading like a title. The word-count bound keeps
	// shouted body sentences out.
	if capsHeading.MatchString(line) && len(strings.Fields(line)) <= 8 {
		return line == strings.ToUpper(line)
	}
	return false
}

// pagesFile mirrors the on-disk crawl cache layout.
type pagesFile struct {
	Pages []types.Page `yaml:"pages"`
}

// LoadPagesFile reads the website crawl cache. A missing file is an
// error; an empty pages list is not.
func LoadPagesFile(path string) ([]types.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pages file %s: %w", path, err)
	}

	var f pagesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing pages file %s: %w", path, err)
	}
	return f.Pages, nil
}

// Documents assembles indexable documents from both sources. Sections
// with empty cleaned bodies and pages with empty content are skipped.
func Documents(constitution string, pages []types.Page) []types.Document {
	var docs []types.Document

	for _, sec := range Sections(constitution) {
		docs = append(docs, types.Document{
			Text:   sec.Body,
			Title:  sec.Heading,
			Source: types.SourceConstitution,
		})
	}

	for _, p := range pages {
		if textutil.Clean(p.Content) == "" {
			continue
		}
		docs = append(docs, types.Document{
			Text:   p.Content,
			Title:  p.Title,
			Source: types.SourceWebsite,
			URL:    p.URL,
		})
	}

	return docs
}

// Load reads both configured sources and returns the combined document
// set. A missing constitution file is an error; a missing pages file is
// tolerated so the service can run on the constitution alone.
func Load(cfg types.IngestConfig) ([]types.Document, error) {
	raw, err := os.ReadFile(cfg.ConstitutionPath)
	if err != nil {
		return nil, fmt.Errorf("reading constitution %s: %w", cfg.ConstitutionPath, err)
	}

	var pages []types.Page
	if cfg.PagesPath != "" {
		pages, err = LoadPagesFile(cfg.PagesPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	return Documents(string(raw), pages), nil
}
