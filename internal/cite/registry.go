// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite finds citation markers in document text, assigns each cited
// key a stable index, and rewrites markers into formatted citations.
package cite

// Citation is one registered key and the index it was assigned.
type Citation struct {
	Key   string
	Index int
}

// Registry assigns indices to citation keys in first-seen order. Indices
// are dense and start at 0; a key keeps its index once registered.
type Registry struct {
	keys  []string
	index map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register returns the index of key, assigning the next free index if the
// key has not been seen.
func (r *Registry) Register(key string) int {
	if i, ok := r.index[key]; ok {
		return i
	}
	i := len(r.keys)
	r.keys = append(r.keys, key)
	r.index[key] = i
	return i
}

// Index returns the index of key and whether it is registered.
func (r *Registry) Index(key string) (int, bool) {
	i, ok := r.index[key]
	return i, ok
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	return len(r.keys)
}

// Snapshot returns the registered keys in insertion order.
func (r *Registry) Snapshot() []Citation {
	out := make([]Citation, len(r.keys))
	for i, k := range r.keys {
		out[i] = Citation{Key: k, Index: i}
	}
	return out
}
