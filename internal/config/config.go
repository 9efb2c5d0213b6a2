// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config builds the rendering configuration from viper, whether
// the values come from a config file, the environment, command flags or
// the host's plugin configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibrender/pkg/types"
)

// Configuration keys.
const (
	KeyBibliography = "bibliography"
	KeyStyle        = "style"
	KeyRefsFile     = "refs-file"
	KeyPlaceholder  = "placeholder"
	KeyRenderKey    = "render-key"
	KeyLinkRefs     = "link-refs"
	KeyLogLevel     = "log-level"
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault(KeyBibliography, d.Bibliographies)
	v.SetDefault(KeyStyle, string(d.Style))
	v.SetDefault(KeyRefsFile, "")
	v.SetDefault(KeyPlaceholder, d.Placeholder)
	v.SetDefault(KeyRenderKey, d.RenderKey)
	v.SetDefault(KeyLinkRefs, d.LinkRefs)
	v.SetDefault(KeyLogLevel, "normal")
}

// Load reads a Config from v. An unknown style or an empty bibliography
// list is an error.
func Load(v *viper.Viper) (types.Config, error) {
	style, err := types.ParseCitationStyle(v.GetString(KeyStyle))
	if err != nil {
		return types.Config{}, err
	}

	bibs, err := bibliographies(v.Get(KeyBibliography))
	if err != nil {
		return types.Config{}, err
	}

	placeholder := v.GetString(KeyPlaceholder)
	if placeholder == "" {
		return types.Config{}, fmt.Errorf("%s must not be empty", KeyPlaceholder)
	}

	return types.Config{
		Bibliographies: bibs,
		Style:          style,
		RefsFile:       v.GetString(KeyRefsFile),
		Placeholder:    placeholder,
		RenderKey:      v.GetBool(KeyRenderKey),
		LinkRefs:       v.GetBool(KeyLinkRefs),
	}, nil
}

// FromMap reads a Config from the host's plugin configuration. Missing
// keys take their defaults.
func FromMap(m map[string]any) (types.Config, error) {
	v := viper.New()
	SetDefaults(v)
	if err := v.MergeConfigMap(m); err != nil {
		return types.Config{}, fmt.Errorf("reading plugin config: %w", err)
	}
	return Load(v)
}

// bibliographies accepts a single path or a list of paths. A single string
// is not split, so paths may contain spaces.
func bibliographies(raw any) ([]string, error) {
	var paths []string
	switch val := raw.(type) {
	case nil:
	case string:
		paths = []string{val}
	case []string:
		paths = val
	case []any:
		for _, item := range val {
			s, err := cast.ToStringE(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", KeyBibliography, err)
			}
			paths = append(paths, s)
		}
	default:
		return nil, fmt.Errorf("%s: expected a path or a list of paths, got %T", KeyBibliography, raw)
	}

	var out []string
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: no bibliography file given", KeyBibliography)
	}
	return out, nil
}
