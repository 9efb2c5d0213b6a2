// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bib

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/pdiddy/bibrender/pkg/types"
)

// bibtexLexer tokenizes BibTeX. Text between entries is junk; inside an
// entry body, braced and quoted values switch to their own states so
// nested braces balance.
var bibtexLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "comment", Pattern: `%[^\n]*`},
		{Name: "EntryStart", Pattern: `@[A-Za-z]+\s*\{`, Action: lexer.Push("Body")},
		{Name: "Junk", Pattern: `[^@%]+|@`},
	},
	"Body": {
		{Name: "whitespace", Pattern: `\s+`},
		{Name: "Punct", Pattern: `[,=#]`},
		{Name: "Quote", Pattern: `"`, Action: lexer.Push("Quoted")},
		{Name: "BraceOpen", Pattern: `\{`, Action: lexer.Push("Braced")},
		{Name: "BodyClose", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "Word", Pattern: `[^\s,={}"#]+`},
	},
	"Braced": {
		{Name: "BraceOpen", Pattern: `\{`, Action: lexer.Push("Braced")},
		{Name: "BraceClose", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "Text", Pattern: `[^{}]+`},
	},
	"Quoted": {
		{Name: "Quote", Pattern: `"`, Action: lexer.Pop()},
		{Name: "BraceOpen", Pattern: `\{`, Action: lexer.Push("Braced")},
		{Name: "QText", Pattern: `[^"{]+`},
	},
})

type bibtexFile struct {
	Items []*bibtexItem `@@*`
}

type bibtexItem struct {
	Entry *bibtexEntry `  @@`
	Junk  string       `| @Junk`
}

// bibtexEntry is "@type{" followed by comma-separated parts. The first
// part of a regular entry is its key.
type bibtexEntry struct {
	Head  string        `@EntryStart`
	Parts []*bibtexPart `( @@ ","? )* "}"`
}

type bibtexPart struct {
	Field  *bibtexField  `  @@`
	Braced *bibtexBraced `| @@`
	Quoted *bibtexQuoted `| @@`
}

type bibtexField struct {
	Name  string       `@Word`
	Value *bibtexValue `( "=" @@ )?`
}

type bibtexValue struct {
	Pieces []*bibtexPiece `@@ ( "#" @@ )*`
}

type bibtexPiece struct {
	Braced *bibtexBraced `  @@`
	Quoted *bibtexQuoted `| @@`
	Word   string        `| @Word`
}

type bibtexBraced struct {
	Parts []*bibtexBracedPart `"{" @@* "}"`
}

type bibtexBracedPart struct {
	Text   string        `  @Text`
	Nested *bibtexBraced `| @@`
}

type bibtexQuoted struct {
	Parts []*bibtexQuotedPart `Quote @@* Quote`
}

type bibtexQuotedPart struct {
	Text   string        `  @QText`
	Nested *bibtexBraced `| @@`
}

var bibtexParser = participle.MustBuild[bibtexFile](
	participle.Lexer(bibtexLexer),
)

// monthMacros are the predefined BibTeX month abbreviations.
var monthMacros = map[string]string{
	"jan": "January", "feb": "February", "mar": "March", "apr": "April",
	"may": "May", "jun": "June", "jul": "July", "aug": "August",
	"sep": "September", "oct": "October", "nov": "November", "dec": "December",
}

// ParseBibTeX parses BibTeX source into entries, in file order. @string
// macros are expanded; @comment and @preamble are ignored.
func ParseBibTeX(filename, src string) ([]*types.Entry, error) {
	file, err := bibtexParser.ParseString(filename, src)
	if err != nil {
		return nil, fmt.Errorf("parsing BibTeX: %w", err)
	}

	macros := make(map[string]string, len(monthMacros))
	for k, v := range monthMacros {
		macros[k] = v
	}

	var entries []*types.Entry
	for _, item := range file.Items {
		if item.Entry == nil {
			continue
		}
		kind := entryKind(item.Entry.Head)
		switch kind {
		case "comment", "preamble":
			continue
		case "string":
			for _, p := range item.Entry.Parts {
				if p.Field != nil && p.Field.Value != nil {
					macros[strings.ToLower(p.Field.Name)] = p.Field.Value.raw(macros)
				}
			}
			continue
		}

		if e := buildEntry(kind, item.Entry.Parts, macros); e != nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// entryKind extracts the lowercased entry type from "@Type {".
func entryKind(head string) string {
	head = strings.TrimPrefix(head, "@")
	head = strings.TrimSuffix(head, "{")
	return strings.ToLower(strings.TrimSpace(head))
}

// buildEntry converts the parts of a regular entry. Entries without a key
// are dropped.
func buildEntry(kind string, parts []*bibtexPart, macros map[string]string) *types.Entry {
	if len(parts) == 0 || parts[0].Field == nil || parts[0].Field.Value != nil {
		return nil
	}

	fields := make(map[string]string)
	for _, p := range parts[1:] {
		if p.Field == nil || p.Field.Value == nil {
			continue
		}
		name := strings.ToLower(p.Field.Name)
		if _, dup := fields[name]; !dup {
			fields[name] = p.Field.Value.raw(macros)
		}
	}

	return entryFromFields(parts[0].Field.Name, types.ParseEntryType(kind), fields)
}

// raw concatenates the value's pieces. Inner braces are kept so name lists
// can still see protected groups; macros and numbers are expanded.
func (v *bibtexValue) raw(macros map[string]string) string {
	var b strings.Builder
	for _, p := range v.Pieces {
		switch {
		case p.Braced != nil:
			p.Braced.writeInner(&b)
		case p.Quoted != nil:
			for _, q := range p.Quoted.Parts {
				if q.Nested != nil {
					q.Nested.writeWrapped(&b)
				} else {
					b.WriteString(q.Text)
				}
			}
		default:
			if m, ok := macros[strings.ToLower(p.Word)]; ok {
				b.WriteString(m)
			} else {
				b.WriteString(p.Word)
			}
		}
	}
	return b.String()
}

func (br *bibtexBraced) writeInner(b *strings.Builder) {
	for _, p := range br.Parts {
		if p.Nested != nil {
			p.Nested.writeWrapped(b)
		} else {
			b.WriteString(p.Text)
		}
	}
}

func (br *bibtexBraced) writeWrapped(b *strings.Builder) {
	b.WriteByte('{')
	br.writeInner(b)
	b.WriteByte('}')
}
