// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bib

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/bibrender/pkg/types"
)

// entryFromFields builds an entry from lowercased field names mapped to
// raw values.
func entryFromFields(key string, typ types.EntryType, fields map[string]string) *types.Entry {
	e := &types.Entry{
		Key:       key,
		Type:      typ,
		Authors:   parsePersons(fields["author"]),
		Editors:   parsePersons(fields["editor"]),
		Date:      parseDate(fields["date"], fields["year"]),
		Title:     cleanText(fields["title"]),
		Journal:   cleanText(firstOf(fields, "journal", "journaltitle")),
		Volume:    cleanText(fields["volume"]),
		Number:    cleanText(firstOf(fields, "number", "issue")),
		Address:   cleanText(firstOf(fields, "address", "location")),
		BookTitle: cleanText(fields["booktitle"]),
	}
	if pub, ok := fields["publisher"]; ok {
		for _, p := range splitTopLevel(pub, " and ") {
			if s := cleanText(p); s != "" {
				e.Publishers = append(e.Publishers, s)
			}
		}
	}
	if pages, ok := fields["pages"]; ok {
		e.Pages, e.HasPages = parsePages(cleanText(pages))
	}
	return e
}

func firstOf(fields map[string]string, names ...string) string {
	for _, n := range names {
		if v, ok := fields[n]; ok {
			return v
		}
	}
	return ""
}

// parsePersons splits a BibTeX name list on "and" outside braces.
func parsePersons(raw string) []types.Person {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var persons []types.Person
	for _, name := range splitTopLevel(collapseSpace(raw), " and ") {
		if p, ok := parsePerson(name); ok {
			persons = append(persons, p)
		}
	}
	return persons
}

// parsePerson understands the three BibTeX name forms: "First von Last",
// "von Last, First" and "von Last, Jr, First". The von particle is not
// part of the family name used for rendering and sorting.
func parsePerson(raw string) (types.Person, bool) {
	parts := splitTopLevel(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) == 0 || parts[0] == "" {
		return types.Person{}, false
	}

	words := splitTopLevel(parts[0], " ")
	var family, given []string
	if len(parts) == 1 {
		given, family = splitFirstLast(words)
	} else {
		family = stripVon(words)
		given = splitTopLevel(parts[len(parts)-1], " ")
	}

	return types.Person{
		Family: cleanText(strings.Join(family, " ")),
		Given:  cleanText(strings.Join(given, " ")),
	}, true
}

// splitFirstLast divides "First von Last" words. The von part runs from
// the first to the last lowercase word before the final word.
func splitFirstLast(words []string) (given, family []string) {
	n := len(words)
	if n == 1 {
		return nil, words
	}
	first, last := -1, -1
	for i := 0; i < n-1; i++ {
		if isLowerWord(words[i]) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return words[:n-1], words[n-1:]
	}
	return words[:first], words[last+1:]
}

// stripVon drops leading lowercase words from "von Last", keeping at least
// one word.
func stripVon(words []string) []string {
	last := -1
	for i := 0; i < len(words)-1; i++ {
		if isLowerWord(words[i]) {
			last = i
		}
	}
	return words[last+1:]
}

func isLowerWord(w string) bool {
	r, _ := utf8.DecodeRuneInString(w)
	return unicode.IsLower(r)
}

// splitTopLevel splits s on sep wherever sep appears outside braces. Empty
// pieces are dropped.
func splitTopLevel(s, sep string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && strings.HasPrefix(s[i:], sep) {
				if piece := s[start:i]; strings.TrimSpace(piece) != "" {
					out = append(out, piece)
				}
				i += len(sep) - 1
				start = i + 1
			}
		}
	}
	if piece := s[start:]; strings.TrimSpace(piece) != "" {
		out = append(out, piece)
	}
	return out
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var rangeSeparator = regexp.MustCompile(`-+|–|—`)

// parsePages reads a comma-separated list of "a-b" ranges. A single page n
// becomes n-n. The field counts as absent when any part fails to parse; an
// empty field is present with no ranges.
func parsePages(s string) ([]types.PageRange, bool) {
	var ranges []types.PageRange
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := rangeSeparator.Split(part, -1)
		if len(bounds) > 2 {
			return nil, false
		}
		start, err := strconv.ParseUint(strings.TrimSpace(bounds[0]), 10, 32)
		if err != nil {
			return nil, false
		}
		end := start
		if len(bounds) == 2 {
			if end, err = strconv.ParseUint(strings.TrimSpace(bounds[1]), 10, 32); err != nil {
				return nil, false
			}
		}
		ranges = append(ranges, types.PageRange{Start: uint32(start), End: uint32(end)})
	}
	return ranges, true
}

var isoDate = regexp.MustCompile(`^(-?\d{1,4})(-\d{2}(-\d{2})?)?$`)

// parseDate prefers the ISO "date" field over "year". Ranges and anything
// that is not a plain year leave the date unknown.
func parseDate(date, year string) types.Date {
	if d := strings.TrimSpace(cleanText(date)); d != "" {
		if m := isoDate.FindStringSubmatch(d); m != nil {
			if y, err := strconv.Atoi(m[1]); err == nil {
				return types.YearOf(y)
			}
		}
		return types.Date{}
	}
	if y, err := strconv.Atoi(strings.TrimSpace(cleanText(year))); err == nil {
		return types.YearOf(y)
	}
	return types.Date{}
}
