// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/bibrender/internal/format"
	"github.com/pdiddy/bibrender/pkg/types"
)

// markerPattern matches citation markers: an optional "-" (suppress the
// author), "@", then the key. The key ends at any Unicode space.
var markerPattern = regexp.MustCompile(`(?P<noauthor>-)?@(?P<key>[^\[\]\s\p{Z}\x{85}\v."#'(),={}%;]+)`)

var (
	noAuthorGroup = markerPattern.SubexpIndex("noauthor")
	keyGroup      = markerPattern.SubexpIndex("key")
)

// Lookup resolves citation keys to bibliography entries.
type Lookup interface {
	Get(key string) (*types.Entry, bool)
}

// Marker is one citation marker found in a line.
type Marker struct {
	// Start and End are the byte offsets of the marker in the line.
	Start, End int

	// NoAuthor is set for "-@key" markers.
	NoAuthor bool

	Key string
}

// FindMarkers returns the markers in line, left to right.
func FindMarkers(line string) []Marker {
	matches := markerPattern.FindAllStringSubmatchIndex(line, -1)
	markers := make([]Marker, 0, len(matches))
	for _, m := range matches {
		markers = append(markers, Marker{
			Start:    m[0],
			End:      m[1],
			NoAuthor: m[2*noAuthorGroup] >= 0,
			Key:      line[m[2*keyGroup]:m[2*keyGroup+1]],
		})
	}
	return markers
}

// Scanner rewrites citation markers in text blocks.
type Scanner struct {
	bib Lookup
	cfg types.Config
	log *zap.Logger
}

// NewScanner returns a scanner resolving keys against bib. A nil logger
// discards warnings.
func NewScanner(bib Lookup, cfg types.Config, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{bib: bib, cfg: cfg, log: log}
}

// ScanDocument rewrites every text block of doc. linkPrefix is passed to
// the citation formatter.
func (s *Scanner) ScanDocument(doc *types.Document, reg *Registry, linkPrefix string) {
	for _, block := range doc.TextBlocks() {
		s.ScanBlock(block, reg, linkPrefix)
	}
}

// ScanBlock rewrites the markers of every line in block. Known keys are
// registered in reg and replaced by their citation. Unknown keys are left
// as written and reported.
func (s *Scanner) ScanBlock(block *types.TextBlock, reg *Registry, linkPrefix string) {
	for i, line := range block.Text {
		block.Text[i] = s.rewriteLine(line, reg, linkPrefix)
	}
}

func (s *Scanner) rewriteLine(line string, reg *Registry, linkPrefix string) string {
	markers := FindMarkers(line)
	if len(markers) == 0 {
		return line
	}

	var b strings.Builder
	last := 0
	for _, m := range markers {
		b.WriteString(line[last:m.Start])
		last = m.End

		entry, ok := s.bib.Get(m.Key)
		if !ok {
			s.log.Warn("citation entry not found", zap.String("key", m.Key))
			b.WriteString(line[m.Start:m.End])
			continue
		}
		idx := reg.Register(m.Key)
		b.WriteString(format.Citation(entry, idx, s.cfg, linkPrefix, m.NoAuthor))
	}
	b.WriteString(line[last:])
	return b.String()
}
