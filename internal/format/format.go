// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format turns bibliography entries into inline citations and
// reference-list lines. Entry formatting dispatches on the entry type; types
// without a dedicated formatter use the article formatter.
package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/bibrender/pkg/types"
)

const (
	anonymous = "Anonymous"
	untitled  = "Untitled"
)

// Anchor returns the fragment identifier of an entry's reference-list line.
func Anchor(key string) string {
	return "cite-ref-" + key
}

// anchorTag is the HTML anchor placed in front of a reference-list line.
func anchorTag(key string) string {
	a := Anchor(key)
	return fmt.Sprintf(`<a name="%s" id="%s"></a>`, a, a)
}

// Authors renders a person list for the reference list: family name followed
// by the initials of the given names, joined by ", ". No persons renders
// "Anonymous".
func Authors(persons []types.Person) string {
	if len(persons) == 0 {
		return anonymous
	}
	parts := make([]string, len(persons))
	for i, p := range persons {
		parts[i] = p.Family
		if in := initials(p.Given); in != "" {
			parts[i] += " " + in
		}
	}
	return strings.Join(parts, ", ")
}

// initials returns the first letter of every space-separated given name.
func initials(given string) string {
	var b strings.Builder
	for _, part := range strings.Split(given, " ") {
		if r, _ := utf8.DecodeRuneInString(part); r != utf8.RuneError {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CitationAuthors renders the author part of an author-year citation.
func CitationAuthors(persons []types.Person) string {
	switch len(persons) {
	case 0:
		return anonymous
	case 1:
		return persons[0].Family
	case 2:
		return persons[0].Family + " & " + persons[1].Family
	default:
		return persons[0].Family + " et al."
	}
}

// Pages renders the first page range, or "???" when the field held none.
func Pages(ranges []types.PageRange) string {
	if len(ranges) == 0 {
		return "???"
	}
	return fmt.Sprintf("%d-%d", ranges[0].Start, ranges[0].End)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
