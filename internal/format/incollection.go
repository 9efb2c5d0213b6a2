// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"fmt"
	"strings"

	"github.com/pdiddy/bibrender/pkg/types"
)

// formatInCollection renders contributions to edited volumes and
// proceedings.
func formatInCollection(b *strings.Builder, e *types.Entry) {
	writeHead(b, e)

	fmt.Fprintf(b, ". In: %s (eds.): %s", Authors(e.Editors), orDefault(e.BookTitle, untitled))

	if e.HasPages {
		fmt.Fprintf(b, ", pp. %s", Pages(e.Pages))
	}

	writePublication(b, e)
	b.WriteString(".")
}
