// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"fmt"
	"strings"

	"github.com/pdiddy/bibrender/pkg/types"
)

// formatArticle renders journal articles and every type without a
// dedicated formatter.
func formatArticle(b *strings.Builder, e *types.Entry) {
	writeHead(b, e)

	if e.Journal != "" {
		fmt.Fprintf(b, ". *%s*", e.Journal)
	}

	if e.Volume != "" {
		fmt.Fprintf(b, " %s", e.Volume)
		if e.Number != "" {
			fmt.Fprintf(b, ":%s", e.Number)
		}
	}

	if e.HasPages {
		fmt.Fprintf(b, ", %s", Pages(e.Pages))
	}

	b.WriteString(".")
}
