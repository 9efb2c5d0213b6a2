// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/bibrender/pkg/types"
)

// InsertReferences replaces the first line of doc containing placeholder
// with lines. It reports whether a placeholder was found; only the first
// occurrence in the document is replaced.
func InsertReferences(doc *types.Document, placeholder string, lines []string) bool {
	for _, block := range doc.TextBlocks() {
		for i, line := range block.Text {
			if !strings.Contains(line, placeholder) {
				continue
			}
			text := make([]string, 0, len(block.Text)-1+len(lines))
			text = append(text, block.Text[:i]...)
			text = append(text, lines...)
			text = append(text, block.Text[i+1:]...)
			block.Text = text
			return true
		}
	}
	return false
}
