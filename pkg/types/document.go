// Copyright COAZ Digital, 2026. All rights reserved.

// Package types defines shared data structures for the coaz-assist pipeline.
package types

// DocumentSource identifies where an indexed document originated.
type DocumentSource string

const (
	// SourceConstitution marks text extracted from the COAZ constitution PDF.
	SourceConstitution DocumentSource = "constitution"

	// SourceWebsite marks text taken from the crawled website cache.
	SourceWebsite DocumentSource = "website"
)

// Document is one unit of indexable source text. Documents are immutable
// once indexed; identity is positional within an index snapshot and is not
// stable across reindexes.
type Document struct {
	// Text is the cleaned body text used for matching and as answer context.
	Text string `json:"text" yaml:"text"`

	// Title is a short label for the document (section heading or page title).
	Title string `json:"title" yaml:"title"`

	// Source records which ingestion path produced the document.
	Source DocumentSource `json:"source" yaml:"source"`

	// URL is the originating page for website documents, empty otherwise.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Page is one record from the website crawl cache.
type Page struct {
	URL     string `json:"url" yaml:"url"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// ContentItem is one row of managed site content (the CMS surface).
type ContentItem struct {
	ID        int64  `json:"id" yaml:"id"`
	Slug      string `json:"slug" yaml:"slug"`
	Title     string `json:"title" yaml:"title"`
	Body      string `json:"body" yaml:"body"`
	Section   string `json:"section" yaml:"section"`
	UpdatedAt string `json:"updated_at" yaml:"updated_at"`
}
