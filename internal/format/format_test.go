// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/bibrender/pkg/types"
)

// klabnik is the book used throughout the format tests.
func klabnik() *types.Entry {
	return &types.Entry{
		Key:  "Klabnik2018",
		Type: types.EntryBook,
		Authors: []types.Person{
			{Family: "Klabnik", Given: "Steve"},
			{Family: "Nichols", Given: "Carol"},
		},
		Date:       types.YearOf(2018),
		Title:      "The Rust Programming Language",
		Publishers: []string{"No Starch Press"},
	}
}

func authorYear() types.Config {
	cfg := types.DefaultConfig()
	cfg.Style = types.StyleAuthorYear
	return cfg
}

func TestCitation(t *testing.T) {
	numbered := types.DefaultConfig()
	numbered.Style = types.StyleIndex

	plain := authorYear()
	plain.LinkRefs = false

	plainNumbered := numbered
	plainNumbered.LinkRefs = false

	tests := []struct {
		name     string
		cfg      types.Config
		index    int
		prefix   string
		noAuthor bool
		want     string
	}{
		{
			name: "author-year linked",
			cfg:  authorYear(),
			want: "[Klabnik & Nichols 2018](#cite-ref-Klabnik2018)",
		},
		{
			name:     "author-year suppressed author",
			cfg:      authorYear(),
			noAuthor: true,
			want:     "[2018](#cite-ref-Klabnik2018)",
		},
		{
			name:   "author-year with link prefix",
			cfg:    authorYear(),
			prefix: "../refs/output.md",
			want:   "[Klabnik & Nichols 2018](../refs/output.md#cite-ref-Klabnik2018)",
		},
		{
			name: "author-year plain",
			cfg:  plain,
			want: "Klabnik & Nichols 2018",
		},
		{
			name:     "author-year plain suppressed",
			cfg:      plain,
			noAuthor: true,
			want:     "2018",
		},
		{
			name:  "numbered linked is one-based",
			cfg:   numbered,
			index: 0,
			want:  "[1](#cite-ref-Klabnik2018)",
		},
		{
			name:     "numbered ignores author suppression",
			cfg:      numbered,
			index:    4,
			noAuthor: true,
			want:     "[5](#cite-ref-Klabnik2018)",
		},
		{
			name:  "numbered plain",
			cfg:   plainNumbered,
			index: 2,
			want:  "3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Citation(klabnik(), tt.index, tt.cfg, tt.prefix, tt.noAuthor)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCitationAuthors(t *testing.T) {
	p := func(names ...string) []types.Person {
		var out []types.Person
		for _, n := range names {
			out = append(out, types.Person{Family: n, Given: "X"})
		}
		return out
	}

	assert.Equal(t, "Anonymous", CitationAuthors(nil))
	assert.Equal(t, "Knuth", CitationAuthors(p("Knuth")))
	assert.Equal(t, "Klabnik & Nichols", CitationAuthors(p("Klabnik", "Nichols")))
	assert.Equal(t, "Gamma et al.", CitationAuthors(p("Gamma", "Helm", "Johnson", "Vlissides")))
}

func TestCitationUnknownYear(t *testing.T) {
	e := &types.Entry{Key: "Anon", Date: types.Date{Year: 2001}}
	assert.Equal(t, "[Anonymous ????](#cite-ref-Anon)", Citation(e, 0, authorYear(), "", false))
}

func TestAuthors(t *testing.T) {
	tests := []struct {
		name    string
		persons []types.Person
		want    string
	}{
		{name: "none", want: "Anonymous"},
		{
			name:    "single given name",
			persons: []types.Person{{Family: "Knuth", Given: "Donald"}},
			want:    "Knuth D",
		},
		{
			name:    "several given names",
			persons: []types.Person{{Family: "Tolkien", Given: "John Ronald Reuel"}},
			want:    "Tolkien JRR",
		},
		{
			name:    "no given name",
			persons: []types.Person{{Family: "Plato"}},
			want:    "Plato",
		},
		{
			name: "joined",
			persons: []types.Person{
				{Family: "Klabnik", Given: "Steve"},
				{Family: "Nichols", Given: "Carol"},
			},
			want: "Klabnik S, Nichols C",
		},
		{
			name:    "non-ascii initial",
			persons: []types.Person{{Family: "Gödel", Given: "Émile"}},
			want:    "Gödel É",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authors(tt.persons))
		})
	}
}

func TestReference(t *testing.T) {
	article := &types.Entry{
		Key:      "Hoare1978",
		Type:     types.EntryArticle,
		Authors:  []types.Person{{Family: "Hoare", Given: "Charles Antony Richard"}},
		Date:     types.YearOf(1978),
		Title:    "Communicating Sequential Processes",
		Journal:  "Communications of the ACM",
		Volume:   "21",
		Number:   "8",
		HasPages: true,
		Pages:    []types.PageRange{{Start: 666, End: 677}},
	}

	chapter := &types.Entry{
		Key:        "Lamport1994",
		Type:       types.EntryInCollection,
		Authors:    []types.Person{{Family: "Lamport", Given: "Leslie"}},
		Editors:    []types.Person{{Family: "Broy", Given: "Manfred"}},
		Date:       types.YearOf(1994),
		Title:      "Verification",
		BookTitle:  "Distributed Systems",
		HasPages:   true,
		Pages:      []types.PageRange{{Start: 10, End: 20}},
		Publishers: []string{"Springer", "ACM"},
		Address:    "Berlin",
	}

	bare := authorYear()
	bare.LinkRefs = false
	bare.RenderKey = false

	numbered := types.DefaultConfig()
	numbered.Style = types.StyleIndex

	tests := []struct {
		name   string
		entry  *types.Entry
		number int
		cfg    types.Config
		want   string
	}{
		{
			name:  "article",
			entry: article,
			cfg:   bare,
			want:  "Hoare CAR (1978): **Communicating Sequential Processes**. *Communications of the ACM* 21:8, 666-677.",
		},
		{
			name: "article without optional fields",
			entry: &types.Entry{
				Key:  "Min",
				Type: types.EntryArticle,
			},
			cfg:  bare,
			want: "Anonymous (????): **Untitled**.",
		},
		{
			name: "article with empty pages field",
			entry: &types.Entry{
				Key:      "Pg",
				Type:     types.EntryArticle,
				Date:     types.YearOf(2000),
				Title:    "T",
				HasPages: true,
			},
			cfg:  bare,
			want: "Anonymous (2000): **T**, ???.",
		},
		{
			name: "number without volume is dropped",
			entry: &types.Entry{
				Key:    "NoVol",
				Type:   types.EntryArticle,
				Title:  "T",
				Number: "3",
			},
			cfg:  bare,
			want: "Anonymous (????): **T**.",
		},
		{
			name:  "book",
			entry: klabnik(),
			cfg:   bare,
			want:  "Klabnik S, Nichols C (2018): **The Rust Programming Language**. *No Starch Press*.",
		},
		{
			name: "inbook uses the book layout",
			entry: &types.Entry{
				Key:        "Part",
				Type:       types.EntryInBook,
				Title:      "Chapter One",
				Publishers: []string{"Pub"},
				Address:    "Town",
				Journal:    "ignored",
			},
			cfg:  bare,
			want: "Anonymous (????): **Chapter One**. *Pub*, Town.",
		},
		{
			name:  "incollection",
			entry: chapter,
			cfg:   bare,
			want:  "Lamport L (1994): **Verification**. In: Broy M (eds.): Distributed Systems, pp. 10-20. *Springer, ACM*, Berlin.",
		},
		{
			name: "inproceedings without editors or book title",
			entry: &types.Entry{
				Key:   "Conf",
				Type:  types.EntryInProceedings,
				Title: "Talk",
			},
			cfg:  bare,
			want: "Anonymous (????): **Talk**. In: Anonymous (eds.): Untitled.",
		},
		{
			name: "unknown type falls back to article",
			entry: &types.Entry{
				Key:     "Thesis",
				Type:    types.EntryOther,
				Title:   "Thesis",
				Journal: "J",
			},
			cfg:  bare,
			want: "Anonymous (????): **Thesis**. *J*.",
		},
		{
			name:   "numbered with anchor and key",
			entry:  klabnik(),
			number: 2,
			cfg:    numbered,
			want: `<a name="cite-ref-Klabnik2018" id="cite-ref-Klabnik2018"></a>[2] [Klabnik2018] ` +
				"Klabnik S, Nichols C (2018): **The Rust Programming Language**. *No Starch Press*.",
		},
		{
			name:   "author-year has no number tag",
			entry:  klabnik(),
			number: 2,
			cfg:    authorYear(),
			want: `<a name="cite-ref-Klabnik2018" id="cite-ref-Klabnik2018"></a>[Klabnik2018] ` +
				"Klabnik S, Nichols C (2018): **The Rust Programming Language**. *No Starch Press*.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reference(tt.entry, tt.number, tt.cfg))
		})
	}
}
