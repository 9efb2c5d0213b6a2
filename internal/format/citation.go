// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"fmt"
	"strconv"

	"github.com/pdiddy/bibrender/pkg/types"
)

// Citation renders the inline text that replaces a citation marker. index is
// the entry's 0-based registry index. linkPrefix is the path of the document
// holding the reference list, empty when it is the citing document itself.
// suppressAuthor drops the author part in author-year style.
func Citation(e *types.Entry, index int, cfg types.Config, linkPrefix string, suppressAuthor bool) string {
	var text string
	switch cfg.Style {
	case types.StyleIndex:
		text = strconv.Itoa(index + 1)
	default:
		text = e.Date.String()
		if !suppressAuthor {
			text = CitationAuthors(e.Authors) + " " + text
		}
	}

	if !cfg.LinkRefs {
		return text
	}
	return fmt.Sprintf("[%s](%s#%s)", text, linkPrefix, Anchor(e.Key))
}
