// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render builds reference lists from the citations found in a set
// of documents and splices them into the documents.
package render

import (
	"slices"
	"strings"

	"github.com/pdiddy/bibrender/internal/cite"
	"github.com/pdiddy/bibrender/internal/format"
	"github.com/pdiddy/bibrender/pkg/types"
)

// cited pairs a bibliography entry with its registry index.
type cited struct {
	entry *types.Entry
	index int
}

// References renders the reference list for citations. Numbered style keeps
// citation order; author-year style sorts by author list, then year. Keys
// missing from bib are skipped. Consecutive entries are separated by one
// blank line.
func References(citations []cite.Citation, bib cite.Lookup, cfg types.Config) []string {
	items := make([]cited, 0, len(citations))
	for _, c := range citations {
		if e, ok := bib.Get(c.Key); ok {
			items = append(items, cited{entry: e, index: c.Index})
		}
	}

	if cfg.Style == types.StyleAuthorYear {
		slices.SortStableFunc(items, func(a, b cited) int {
			if c := comparePersons(a.entry.Authors, b.entry.Authors); c != 0 {
				return c
			}
			return strings.Compare(a.entry.Date.String(), b.entry.Date.String())
		})
	}

	lines := make([]string, 0, 2*len(items))
	for i, it := range items {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, format.Reference(it.entry, it.index+1, cfg))
	}
	return lines
}

// comparePersons orders author lists element by element on family then
// given name; a list that is a prefix of another sorts first.
func comparePersons(a, b []types.Person) int {
	return slices.CompareFunc(a, b, func(x, y types.Person) int {
		if c := strings.Compare(x.Family, y.Family); c != 0 {
			return c
		}
		return strings.Compare(x.Given, y.Given)
	})
}
