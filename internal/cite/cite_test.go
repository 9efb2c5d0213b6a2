// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/bibrender/pkg/types"
)

// mapLookup is an in-memory bibliography for tests.
type mapLookup map[string]*types.Entry

func (m mapLookup) Get(key string) (*types.Entry, bool) {
	e, ok := m[key]
	return e, ok
}

func testBib() mapLookup {
	return mapLookup{
		"Klabnik2018": {
			Key:  "Klabnik2018",
			Type: types.EntryBook,
			Authors: []types.Person{
				{Family: "Klabnik", Given: "Steve"},
				{Family: "Nichols", Given: "Carol"},
			},
			Date: types.YearOf(2018),
		},
		"Knuth1997": {
			Key:     "Knuth1997",
			Authors: []types.Person{{Family: "Knuth", Given: "Donald"}},
			Date:    types.YearOf(1997),
		},
		"A": {Key: "A", Authors: []types.Person{{Family: "Adams"}}, Date: types.YearOf(2010)},
		"B": {Key: "B", Authors: []types.Person{{Family: "Baker"}}, Date: types.YearOf(2020)},
	}
}

func observedScanner(cfg types.Config) (*Scanner, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return NewScanner(testBib(), cfg, zap.New(core)), logs
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, 0, r.Register("b"))
	assert.Equal(t, 1, r.Register("a"))
	assert.Equal(t, 0, r.Register("b"), "re-registering keeps the first index")
	assert.Equal(t, 2, r.Register("c"))
	assert.Equal(t, 3, r.Len())

	i, ok := r.Index("a")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = r.Index("zzz")
	assert.False(t, ok)

	assert.Equal(t, []Citation{
		{Key: "b", Index: 0},
		{Key: "a", Index: 1},
		{Key: "c", Index: 2},
	}, r.Snapshot())
}

func TestRegistryDenseIndices(t *testing.T) {
	r := NewRegistry()
	keys := []string{"k0", "k1", "k0", "k2", "k1", "k3"}
	for _, k := range keys {
		r.Register(k)
	}
	snap := r.Snapshot()
	require.Len(t, snap, 4)
	for i, c := range snap {
		assert.Equal(t, i, c.Index)
	}
}

func TestFindMarkers(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Marker
	}{
		{
			name: "no markers",
			line: "plain text",
			want: []Marker{},
		},
		{
			name: "single marker stops at period",
			line: "See @Knuth1997.",
			want: []Marker{{Start: 4, End: 14, Key: "Knuth1997"}},
		},
		{
			name: "suppressed author",
			line: "-@Knuth1997",
			want: []Marker{{Start: 0, End: 11, NoAuthor: true, Key: "Knuth1997"}},
		},
		{
			name: "stops at no-break space",
			line: "see @Knuth1997\u00a0p. 5",
			want: []Marker{{Start: 4, End: 14, Key: "Knuth1997"}},
		},
		{
			name: "stops at em space",
			line: "@Knuth1997\u2003and",
			want: []Marker{{Start: 0, End: 10, Key: "Knuth1997"}},
		},
		{
			name: "stops at vertical tab",
			line: "@Knuth1997\vx",
			want: []Marker{{Start: 0, End: 10, Key: "Knuth1997"}},
		},
		{
			name: "stops at excluded characters",
			line: "(@a;@b,@c)",
			want: []Marker{
				{Start: 1, End: 3, Key: "a"},
				{Start: 4, End: 6, Key: "b"},
				{Start: 7, End: 9, Key: "c"},
			},
		},
		{
			name: "keys may contain colons and dashes",
			line: "@doe:2020-x",
			want: []Marker{{Start: 0, End: 11, Key: "doe:2020-x"}},
		},
		{
			name: "bare at sign is not a marker",
			line: "a @ b",
			want: []Marker{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindMarkers(tt.line))
		})
	}
}

func TestScanBlockRewritesKnownMarkers(t *testing.T) {
	s, logs := observedScanner(types.DefaultConfig())
	reg := NewRegistry()
	block := &types.TextBlock{Text: []string{
		"See @Klabnik2018 and -@Knuth1997, also @Missing.",
	}}

	s.ScanBlock(block, reg, "")

	line := block.Text[0]
	assert.Equal(t,
		"See [Klabnik & Nichols 2018](#cite-ref-Klabnik2018) and [1997](#cite-ref-Knuth1997), also @Missing.",
		line)
	assert.Equal(t, 1, strings.Count(line, "@"), "only the unknown marker keeps its @")
	assert.Equal(t, 2, reg.Len())

	warnings := logs.FilterMessage("citation entry not found").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Missing", warnings[0].ContextMap()["key"])
}

func TestScanBlockUnknownKeyUnchanged(t *testing.T) {
	s, logs := observedScanner(types.DefaultConfig())
	reg := NewRegistry()
	original := "Nothing here: -@Missing and @Other"
	block := &types.TextBlock{Text: []string{original}}

	s.ScanBlock(block, reg, "")

	assert.Equal(t, original, block.Text[0])
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 2, logs.Len())
}

func TestScanNumberedFollowsCitationOrder(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Style = types.StyleIndex
	cfg.LinkRefs = false
	s, _ := observedScanner(cfg)
	reg := NewRegistry()

	doc := &types.Document{Nodes: []types.Node{
		types.TextNode("first @B", "then @A"),
		{Other: &types.OpaqueNode{Kind: "Code", Lines: []string{"@A in code"}}},
		types.TextNode("again @B and @A"),
	}}

	s.ScanDocument(doc, reg, "")

	assert.Equal(t, []string{"first 1", "then 2"}, doc.Nodes[0].Text.Text)
	assert.Equal(t, []string{"@A in code"}, doc.Nodes[1].Other.Lines)
	assert.Equal(t, []string{"again 1 and 2"}, doc.Nodes[2].Text.Text)
	assert.Equal(t, []Citation{{Key: "B", Index: 0}, {Key: "A", Index: 1}}, reg.Snapshot())
}

func TestScanUsesLinkPrefix(t *testing.T) {
	s, _ := observedScanner(types.DefaultConfig())
	block := &types.TextBlock{Text: []string{"@Knuth1997"}}

	s.ScanBlock(block, NewRegistry(), "../refs/output.md")

	assert.Equal(t, "[Knuth 1997](../refs/output.md#cite-ref-Knuth1997)", block.Text[0])
}

func TestNewScannerNilLogger(t *testing.T) {
	s := NewScanner(testBib(), types.DefaultConfig(), nil)
	block := &types.TextBlock{Text: []string{"@Missing"}}
	s.ScanBlock(block, NewRegistry(), "")
	assert.Equal(t, "@Missing", block.Text[0])
}

func TestUnknownKeys(t *testing.T) {
	docs := types.Documents{
		"a.md": {Nodes: []types.Node{types.TextNode("@Zed and @A", "-@Missing")}},
		"b.md": {Nodes: []types.Node{
			types.TextNode("@Missing again, @Knuth1997"),
			{Other: &types.OpaqueNode{Kind: "Code", Lines: []string{"@InCode"}}},
		}},
	}

	assert.Equal(t, []string{"Missing", "Zed"}, UnknownKeys(docs, testBib()))
	assert.Equal(t, "@Zed and @A", docs["a.md"].Nodes[0].Text.Text[0], "check does not rewrite")
}
