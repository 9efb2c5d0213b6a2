// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"fmt"
	"strings"

	"github.com/pdiddy/bibrender/pkg/types"
)

// entryFormatter writes the body of a reference-list line.
type entryFormatter func(b *strings.Builder, e *types.Entry)

// formatterFor selects the body formatter for an entry type.
func formatterFor(t types.EntryType) entryFormatter {
	switch t {
	case types.EntryBook, types.EntryInBook:
		return formatBook
	case types.EntryInCollection, types.EntryInProceedings:
		return formatInCollection
	default:
		return formatArticle
	}
}

// Reference renders one reference-list line. number is the 1-based position
// shown in numbered style; other styles ignore it.
func Reference(e *types.Entry, number int, cfg types.Config) string {
	var b strings.Builder
	if cfg.LinkRefs {
		b.WriteString(anchorTag(e.Key))
	}
	if cfg.Style == types.StyleIndex {
		fmt.Fprintf(&b, "[%d] ", number)
	}
	if cfg.RenderKey {
		fmt.Fprintf(&b, "[%s] ", e.Key)
	}
	formatterFor(e.Type)(&b, e)
	return b.String()
}

// writeHead writes the prefix shared by all entry types:
// "Authors (Year): **Title**".
func writeHead(b *strings.Builder, e *types.Entry) {
	fmt.Fprintf(b, "%s (%s): **%s**", Authors(e.Authors), e.Date, orDefault(e.Title, untitled))
}

// writePublication writes the publisher and address suffix used by books
// and collections.
func writePublication(b *strings.Builder, e *types.Entry) {
	if len(e.Publishers) > 0 {
		fmt.Fprintf(b, ". *%s*", strings.Join(e.Publishers, ", "))
	}
	if e.Address != "" {
		fmt.Fprintf(b, ", %s", e.Address)
	}
}
