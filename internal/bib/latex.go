// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bib

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// accentMarks maps LaTeX accent commands to Unicode combining marks.
var accentMarks = map[string]rune{
	`"`: '\u0308', `'`: '\u0301', "`": '\u0300', "^": '\u0302',
	"~": '\u0303', "=": '\u0304', ".": '\u0307',
	"u": '\u0306', "v": '\u030C', "H": '\u030B', "c": '\u0327',
	"k": '\u0328', "r": '\u030A',
}

// symbolCommands are argument-less LaTeX commands for single letters.
var symbolCommands = map[string]string{
	"ss": "ß", "o": "ø", "O": "Ø", "aa": "å", "AA": "Å",
	"ae": "æ", "AE": "Æ", "oe": "œ", "OE": "Œ",
	"l": "ł", "L": "Ł", "i": "ı", "j": "ȷ",
}

// cleanText turns a raw field value into plain text: LaTeX accents and
// symbols are decoded, grouping braces removed and whitespace collapsed.
func cleanText(raw string) string {
	s := decodeLaTeX(raw)
	s = strings.NewReplacer("{", "", "}", "", "~", " ").Replace(s)
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

func decodeLaTeX(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	r := []rune(s)
	for i := 0; i < len(r); i++ {
		if r[i] != '\\' || i+1 >= len(r) {
			b.WriteRune(r[i])
			continue
		}
		i++
		c := r[i]
		switch {
		case strings.ContainsRune("\"'`^~=.", c):
			letter, next := accentArgument(r, i+1)
			b.WriteString(letter)
			b.WriteRune(accentMarks[string(c)])
			i = next - 1
		case unicode.IsLetter(c):
			start := i
			for i < len(r) && unicode.IsLetter(r[i]) && r[i] < unicode.MaxASCII {
				i++
			}
			name := string(r[start:i])
			if mark, ok := accentMarks[name]; ok {
				letter, next := accentArgument(r, skipSpaces(r, i))
				b.WriteString(letter)
				b.WriteRune(mark)
				i = next - 1
				continue
			}
			if sym, ok := symbolCommands[name]; ok {
				b.WriteString(sym)
				if i+1 < len(r) && r[i] == '{' && r[i+1] == '}' {
					i += 2
				} else if i < len(r) && r[i] == ' ' {
					i++
				}
			}
			// Unknown commands are dropped; their arguments stay as text.
			i--
		case c == '\\':
			b.WriteByte(' ')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// accentArgument returns the letter an accent applies to, either bare or
// in braces, and the index just past it. The argument may itself be a
// command such as \i.
func accentArgument(r []rune, i int) (string, int) {
	if i >= len(r) {
		return "", i
	}
	switch r[i] {
	case '{':
		end := i + 1
		for end < len(r) && r[end] != '}' {
			end++
		}
		arg := string(r[i+1 : end])
		if name, ok := strings.CutPrefix(arg, `\`); ok {
			arg = accentBase(strings.TrimSpace(name))
		}
		return arg, min(end+1, len(r))
	case '\\':
		end := i + 1
		for end < len(r) && r[end] < unicode.MaxASCII && unicode.IsLetter(r[end]) {
			end++
		}
		if end == i+1 {
			return "", i
		}
		return accentBase(string(r[i+1 : end])), end
	}
	return string(r[i]), i + 1
}

// accentBase returns the letter a command stands for under an accent. The
// dotless \i and \j carry accents as plain i and j.
func accentBase(name string) string {
	switch name {
	case "i", "j":
		return name
	}
	if sym, ok := symbolCommands[name]; ok {
		return sym
	}
	return name
}

func skipSpaces(r []rune, i int) int {
	for i < len(r) && r[i] == ' ' {
		i++
	}
	return i
}
