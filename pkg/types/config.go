// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// CitationStyle selects how inline citations render and how the reference
// list is ordered.
type CitationStyle string

const (
	// StyleIndex renders citations as 1-based numbers in first-citation order.
	StyleIndex CitationStyle = "numbered"

	// StyleAuthorYear renders citations as "Author Year" and sorts the
	// reference list by author and year.
	StyleAuthorYear CitationStyle = "author-year"
)

// ParseCitationStyle validates a style name from configuration.
func ParseCitationStyle(s string) (CitationStyle, error) {
	switch CitationStyle(s) {
	case StyleIndex, StyleAuthorYear:
		return CitationStyle(s), nil
	}
	return "", fmt.Errorf("unknown citation style '%s'. Use '%s' or '%s'", s, StyleIndex, StyleAuthorYear)
}

// Default configuration values.
const (
	DefaultBibliography = "bibliography.bib"
	DefaultPlaceholder  = "[[_REFS_]]"
)

// Config holds the settings of one rendering run. It is immutable once loaded.
type Config struct {
	// Bibliographies lists the bibliography files, merged in order.
	Bibliographies []string `json:"bibliography" yaml:"bibliography"`

	// Style is the citation style (default author-year).
	Style CitationStyle `json:"style" yaml:"style"`

	// RefsFile is the document that receives one combined reference list
	// for all documents. Empty means every document gets its own list.
	RefsFile string `json:"refs_file,omitempty" yaml:"refs-file,omitempty"`

	// Placeholder is the token replaced by the reference list.
	Placeholder string `json:"placeholder" yaml:"placeholder"`

	// RenderKey prefixes each reference-list entry with its raw key.
	RenderKey bool `json:"render_key" yaml:"render-key"`

	// LinkRefs emits HTML anchors and Markdown links instead of plain text.
	LinkRefs bool `json:"link_refs" yaml:"link-refs"`
}

// DefaultConfig returns the configuration used when no setting is given.
func DefaultConfig() Config {
	return Config{
		Bibliographies: []string{DefaultBibliography},
		Style:          StyleAuthorYear,
		Placeholder:    DefaultPlaceholder,
		RenderKey:      true,
		LinkRefs:       true,
	}
}
