// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
)

// TextBlock is a run of prose lines. Citation markers are rewritten in place.
type TextBlock struct {
	Text []string `json:"text"`
}

// OpaqueNode is any node that is not prose (code, transclusions). The
// pipeline never looks inside it.
type OpaqueNode struct {
	// Kind is the node variant name, e.g. "Code".
	Kind string

	// Lines holds the source lines when the node came from a Markdown file.
	Lines []string

	// Raw holds the payload exactly as received from the host protocol.
	Raw json.RawMessage
}

// Node is one element of a document: either a text block or an opaque node.
type Node struct {
	Text  *TextBlock
	Other *OpaqueNode
}

// TextNode wraps lines in a text node.
func TextNode(lines ...string) Node {
	return Node{Text: &TextBlock{Text: lines}}
}

// Lines returns the node's source lines.
func (n Node) Lines() []string {
	if n.Text != nil {
		return n.Text.Text
	}
	if n.Other != nil {
		return n.Other.Lines
	}
	return nil
}

// MarshalJSON encodes the node as a single-key object naming its variant,
// e.g. {"Text":{"text":[...]}}.
func (n Node) MarshalJSON() ([]byte, error) {
	switch {
	case n.Text != nil:
		return json.Marshal(map[string]*TextBlock{"Text": n.Text})
	case n.Other != nil && n.Other.Raw != nil:
		return json.Marshal(map[string]json.RawMessage{n.Other.Kind: n.Other.Raw})
	case n.Other != nil:
		return json.Marshal(map[string]map[string][]string{n.Other.Kind: {"lines": n.Other.Lines}})
	}
	return nil, fmt.Errorf("empty document node")
}

// UnmarshalJSON decodes a variant object. Variants other than "Text" are
// kept raw so they re-encode unchanged.
func (n *Node) UnmarshalJSON(data []byte) error {
	var variants map[string]json.RawMessage
	if err := json.Unmarshal(data, &variants); err != nil {
		return fmt.Errorf("decoding document node: %w", err)
	}
	if len(variants) != 1 {
		return fmt.Errorf("document node has %d variants, want 1", len(variants))
	}
	for kind, payload := range variants {
		if kind == "Text" {
			var block TextBlock
			if err := json.Unmarshal(payload, &block); err != nil {
				return fmt.Errorf("decoding text block: %w", err)
			}
			*n = Node{Text: &block}
			return nil
		}
		*n = Node{Other: &OpaqueNode{Kind: kind, Raw: payload}}
	}
	return nil
}

// Document is an ordered sequence of nodes.
type Document struct {
	Nodes []Node `json:"nodes"`

	// Newline is the line separator used when the document is written out.
	Newline string `json:"newline,omitempty"`
}

// TextBlocks returns the document's text blocks in order.
func (d *Document) TextBlocks() []*TextBlock {
	var blocks []*TextBlock
	for _, n := range d.Nodes {
		if n.Text != nil {
			blocks = append(blocks, n.Text)
		}
	}
	return blocks
}

// Documents maps a document path to its content.
type Documents map[string]*Document
