// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"strings"

	"github.com/pdiddy/bibrender/pkg/types"
)

// formatBook renders books and parts of books.
func formatBook(b *strings.Builder, e *types.Entry) {
	writeHead(b, e)
	writePublication(b, e)
	b.WriteString(".")
}
