// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"sort"

	"github.com/pdiddy/bibrender/pkg/types"
)

// UnknownKeys scans the text blocks of docs without rewriting them and
// returns the cited keys that have no bibliography entry, sorted and
// without duplicates.
func UnknownKeys(docs types.Documents, bib Lookup) []string {
	seen := make(map[string]bool)
	for _, doc := range docs {
		for _, block := range doc.TextBlocks() {
			for _, line := range block.Text {
				for _, m := range FindMarkers(line) {
					if _, ok := bib.Get(m.Key); !ok {
						seen[m.Key] = true
					}
				}
			}
		}
	}

	missing := make([]string, 0, len(seen))
	for key := range seen {
		missing = append(missing, key)
	}
	sort.Strings(missing)
	return missing
}
