// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bib

import (
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibrender/pkg/types"
)

// CSLItem is a bibliographic record in CSL-JSON/CSL-YAML form, as written
// by Pandoc and reference managers. Only the fields rendered in citations
// are read.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Editor         []CSLName `yaml:"editor,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         cslString `yaml:"volume,omitempty"`
	Issue          cslString `yaml:"issue,omitempty"`
	Page           cslString `yaml:"page,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	PublisherPlace string    `yaml:"publisher-place,omitempty"`
}

// CSLName is a person's name in CSL form. Literal holds names that are not
// split into parts, such as organisations.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL form. Raw and Literal carry unparsed dates.
type CSLDate struct {
	DateParts [][]cslString `yaml:"date-parts"`
	Raw       string        `yaml:"raw,omitempty"`
	Literal   string        `yaml:"literal,omitempty"`
}

// cslString accepts CSL fields that may be written as numbers or strings.
type cslString string

func (s *cslString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", node.Line)
	}
	*s = cslString(node.Value)
	return nil
}

// ParseCSL reads a CSL-YAML or CSL-JSON document: either a list of items
// or a mapping with a "references" list.
func ParseCSL(data []byte) ([]*types.Entry, error) {
	var items []CSLItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		var doc struct {
			References []CSLItem `yaml:"references"`
		}
		if err2 := yaml.Unmarshal(data, &doc); err2 != nil {
			return nil, fmt.Errorf("parsing CSL: %w", err)
		}
		items = doc.References
	}

	entries := make([]*types.Entry, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		entries = append(entries, item.toEntry())
	}
	return entries, nil
}

// toEntry converts a CSLItem to an Entry. The container title is the
// journal of articles and the book title of chapters and papers.
func (item CSLItem) toEntry() *types.Entry {
	e := &types.Entry{
		Key:     item.ID,
		Type:    cslEntryType(item.Type),
		Authors: cslPersons(item.Author),
		Editors: cslPersons(item.Editor),
		Date:    item.Issued.date(),
		Title:   item.Title,
		Volume:  string(item.Volume),
		Number:  string(item.Issue),
		Address: item.PublisherPlace,
	}
	switch e.Type {
	case types.EntryInCollection, types.EntryInProceedings, types.EntryInBook:
		e.BookTitle = item.ContainerTitle
	default:
		e.Journal = item.ContainerTitle
	}
	if item.Publisher != "" {
		e.Publishers = []string{item.Publisher}
	}
	if item.Page != "" {
		e.Pages, e.HasPages = parsePages(string(item.Page))
	}
	return e
}

func cslEntryType(t string) types.EntryType {
	switch {
	case strings.HasPrefix(t, "article"):
		return types.EntryArticle
	case t == "book":
		return types.EntryBook
	case t == "chapter":
		return types.EntryInCollection
	case t == "paper-conference":
		return types.EntryInProceedings
	default:
		return types.EntryOther
	}
}

func cslPersons(names []CSLName) []types.Person {
	var persons []types.Person
	for _, n := range names {
		switch {
		case n.Family != "" || n.Given != "":
			persons = append(persons, types.Person{Family: n.Family, Given: n.Given})
		case n.Literal != "":
			persons = append(persons, types.Person{Family: n.Literal})
		}
	}
	return persons
}

// date takes the year from the first date-parts element, falling back to a
// raw year. Ranges and missing dates are unknown.
func (d *CSLDate) date() types.Date {
	if d == nil {
		return types.Date{}
	}
	if len(d.DateParts) == 1 && len(d.DateParts[0]) > 0 {
		if y, err := strconv.Atoi(string(d.DateParts[0][0])); err == nil {
			return types.YearOf(y)
		}
	}
	if len(d.DateParts) == 0 {
		return parseDate(d.Raw, d.Literal)
	}
	return types.Date{}
}
