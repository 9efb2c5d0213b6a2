// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bib loads bibliographies from BibTeX, CSL-YAML/JSON and
// knowledge-base databases into a keyed lookup.
package bib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pdiddy/bibrender/pkg/types"
)

// Bibliography is a read-only set of entries addressed by key.
type Bibliography struct {
	entries []*types.Entry
	byKey   map[string]*types.Entry
}

// New builds a bibliography from entries in order. When a key appears
// twice the first entry is kept and the duplicate is logged.
func New(entries []*types.Entry, log *zap.Logger) *Bibliography {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Bibliography{byKey: make(map[string]*types.Entry, len(entries))}
	for _, e := range entries {
		if _, dup := b.byKey[e.Key]; dup {
			log.Warn("duplicate bibliography key", zap.String("key", e.Key))
			continue
		}
		b.byKey[e.Key] = e
		b.entries = append(b.entries, e)
	}
	return b
}

// Get returns the entry for key.
func (b *Bibliography) Get(key string) (*types.Entry, bool) {
	e, ok := b.byKey[key]
	return e, ok
}

// Entries returns all entries in load order.
func (b *Bibliography) Entries() []*types.Entry {
	return b.entries
}

// Len returns the number of distinct keys.
func (b *Bibliography) Len() int {
	return len(b.entries)
}

// Load reads every file in paths and merges them in order. Failures of
// individual files are collected; any failure fails the load.
func Load(paths []string, log *zap.Logger) (*Bibliography, error) {
	var all []*types.Entry
	var errs error
	for _, path := range paths {
		entries, err := LoadFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		all = append(all, entries...)
	}
	if errs != nil {
		return nil, errs
	}
	return New(all, log), nil
}

// LoadFile reads one bibliography file, choosing the parser by extension.
// Unknown extensions are read as BibTeX.
func LoadFile(path string) ([]*types.Entry, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".db" || ext == ".sqlite" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("can't read bibliography from file %s: %w", path, err)
		}
		entries, err := ReadPapersDB(context.Background(), path)
		if err != nil {
			return nil, fmt.Errorf("no valid bibliography in file %s: %w", path, err)
		}
		return entries, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read bibliography from file %s: %w", path, err)
	}

	var entries []*types.Entry
	switch ext {
	case ".yaml", ".yml", ".json":
		entries, err = ParseCSL(data)
	default:
		entries, err = ParseBibTeX(path, string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("no valid bibliography in file %s: %w", path, err)
	}
	return entries, nil
}
