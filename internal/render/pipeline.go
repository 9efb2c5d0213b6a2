// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"github.com/pdiddy/bibrender/internal/cite"
	"github.com/pdiddy/bibrender/pkg/types"
)

// Run rewrites the citation markers of all documents and inserts the
// reference lists. With cfg.RefsFile set, all documents share one registry
// and the combined list goes into the reference file; otherwise every
// document gets its own list. Documents are visited in natural path order
// so numbering is the same on every run.
func Run(docs types.Documents, bib cite.Lookup, cfg types.Config, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	scanner := cite.NewScanner(bib, cfg, log)
	paths := OrderedPaths(docs)

	if cfg.RefsFile == "" {
		for _, path := range paths {
			reg := cite.NewRegistry()
			scanner.ScanDocument(docs[path], reg, "")
			insert(path, docs[path], reg, bib, cfg, log)
		}
		return nil
	}

	refsPath, ok := findDocument(paths, cfg.RefsFile)
	if !ok {
		return fmt.Errorf("reference output file %s not in the list of documents", cfg.RefsFile)
	}

	reg := cite.NewRegistry()
	for _, path := range paths {
		scanner.ScanDocument(docs[path], reg, LinkPrefix(path, refsPath))
	}
	insert(refsPath, docs[refsPath], reg, bib, cfg, log)
	return nil
}

// insert renders the registry's reference list into doc, warning when the
// document cites entries but has no placeholder.
func insert(path string, doc *types.Document, reg *cite.Registry, bib cite.Lookup, cfg types.Config, log *zap.Logger) {
	lines := References(reg.Snapshot(), bib, cfg)
	if InsertReferences(doc, cfg.Placeholder, lines) {
		log.Debug("inserted references", zap.String("document", path), zap.Int("citations", reg.Len()))
		return
	}
	if reg.Len() > 0 {
		log.Warn("no reference placeholder found",
			zap.String("document", path),
			zap.String("placeholder", cfg.Placeholder),
			zap.Int("citations", reg.Len()))
	}
}

// OrderedPaths returns the document paths in natural order ("ch2" before
// "ch10").
func OrderedPaths(docs types.Documents) []string {
	paths := make([]string, 0, len(docs))
	for p := range docs {
		paths = append(paths, p)
	}
	// Byte order first so paths that compare equal naturally ("a01", "a1")
	// still come out in a fixed order.
	sort.Strings(paths)
	sort.SliceStable(paths, func(i, j int) bool { return natural.Less(paths[i], paths[j]) })
	return paths
}

func findDocument(paths []string, target string) (string, bool) {
	for _, p := range paths {
		if samePath(p, target) {
			return p, true
		}
	}
	return "", false
}
