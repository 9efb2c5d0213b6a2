// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data shared by the bibrender stages:
// bibliography entries, documents and configuration.
package types

import (
	"strconv"
	"strings"
)

// EntryType classifies a bibliography record. It selects the reference-list
// formatter for the entry.
type EntryType string

const (
	EntryArticle       EntryType = "article"
	EntryBook          EntryType = "book"
	EntryInBook        EntryType = "inbook"
	EntryInCollection  EntryType = "incollection"
	EntryInProceedings EntryType = "inproceedings"
	EntryOther         EntryType = "misc"
)

// ParseEntryType maps a BibTeX entry type name (case-insensitive) to an
// EntryType. Names without a dedicated category map to EntryOther.
func ParseEntryType(name string) EntryType {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "article":
		return EntryArticle
	case "book":
		return EntryBook
	case "inbook":
		return EntryInBook
	case "incollection":
		return EntryInCollection
	case "inproceedings", "conference":
		return EntryInProceedings
	default:
		return EntryOther
	}
}

// Person is one author or editor.
type Person struct {
	// Family is the surname without particles such as "von".
	Family string `json:"family" yaml:"family"`

	// Given holds the given names, space separated.
	Given string `json:"given,omitempty" yaml:"given,omitempty"`
}

// Date is a publication date reduced to what citations need: a year that is
// either known exactly or unknown.
type Date struct {
	Year  int  `json:"year,omitempty" yaml:"year,omitempty"`
	Exact bool `json:"exact" yaml:"exact"`
}

// YearOf returns an exact date for year.
func YearOf(year int) Date {
	return Date{Year: year, Exact: true}
}

// String renders the year as digits, or "????" when it is not exact.
func (d Date) String() string {
	if !d.Exact {
		return "????"
	}
	return strconv.Itoa(d.Year)
}

// PageRange is an inclusive page span.
type PageRange struct {
	Start uint32 `json:"start" yaml:"start"`
	End   uint32 `json:"end" yaml:"end"`
}

// Entry is one bibliography record. Optional text fields are empty when
// absent.
type Entry struct {
	// Key is the citation key, e.g. "Klabnik2018".
	Key string `json:"key" yaml:"key"`

	Type EntryType `json:"type" yaml:"type"`

	// Authors is nil when the record has no author field.
	Authors []Person `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Editors lists the editors of the containing work.
	Editors []Person `json:"editors,omitempty" yaml:"editors,omitempty"`

	Date  Date   `json:"date" yaml:"date"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Volume  string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Number  string `json:"number,omitempty" yaml:"number,omitempty"`

	// HasPages reports whether the record carries a pages field. Pages may
	// still be empty when the field held no usable range.
	HasPages bool        `json:"has_pages,omitempty" yaml:"has_pages,omitempty"`
	Pages    []PageRange `json:"pages,omitempty" yaml:"pages,omitempty"`

	Publishers []string `json:"publishers,omitempty" yaml:"publishers,omitempty"`
	Address    string   `json:"address,omitempty" yaml:"address,omitempty"`
	BookTitle  string   `json:"book_title,omitempty" yaml:"book_title,omitempty"`
}
