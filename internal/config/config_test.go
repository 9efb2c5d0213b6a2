// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibrender/pkg/types"
)

func TestFromMapDefaults(t *testing.T) {
	cfg, err := FromMap(nil)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)
}

func TestFromMap(t *testing.T) {
	tests := []struct {
		name    string
		in      map[string]any
		want    func(*types.Config)
		wantErr string
	}{
		{
			name: "numbered style with refs file",
			in:   map[string]any{"style": "numbered", "refs-file": "refs.md", "render-key": false},
			want: func(c *types.Config) {
				c.Style = types.StyleIndex
				c.RefsFile = "refs.md"
				c.RenderKey = false
			},
		},
		{
			name: "single bibliography path with spaces",
			in:   map[string]any{"bibliography": "my refs.bib"},
			want: func(c *types.Config) { c.Bibliographies = []string{"my refs.bib"} },
		},
		{
			name: "bibliography list",
			in:   map[string]any{"bibliography": []any{"a.bib", "b.yaml"}},
			want: func(c *types.Config) { c.Bibliographies = []string{"a.bib", "b.yaml"} },
		},
		{
			name: "custom placeholder without links",
			in:   map[string]any{"placeholder": "<!-- refs -->", "link-refs": false},
			want: func(c *types.Config) {
				c.Placeholder = "<!-- refs -->"
				c.LinkRefs = false
			},
		},
		{
			name:    "unknown style",
			in:      map[string]any{"style": "harvard"},
			wantErr: "unknown citation style 'harvard'. Use 'numbered' or 'author-year'",
		},
		{
			name:    "empty bibliography",
			in:      map[string]any{"bibliography": ""},
			wantErr: "no bibliography file given",
		},
		{
			name:    "bibliography of wrong type",
			in:      map[string]any{"bibliography": map[string]any{"a": 1}},
			wantErr: "expected a path or a list of paths",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromMap(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			want := types.DefaultConfig()
			tt.want(&want)
			assert.Equal(t, want, cfg)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bibrender.yaml")
	content := "bibliography:\n  - refs.bib\n  - extra.yaml\nstyle: numbered\nlink-refs: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"refs.bib", "extra.yaml"}, cfg.Bibliographies)
	assert.Equal(t, types.StyleIndex, cfg.Style)
	assert.False(t, cfg.LinkRefs)
	assert.True(t, cfg.RenderKey)
	assert.Equal(t, types.DefaultPlaceholder, cfg.Placeholder)
}
