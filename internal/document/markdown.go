// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/multierr"

	"github.com/pdiddy/bibrender/pkg/types"
)

// codeKind names the opaque node variant used for fenced code.
const codeKind = "Code"

// MarkdownFiles expands paths into the list of Markdown files to render.
// Files are kept as given; a directory contributes its *.md files in
// natural order.
func MarkdownFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", p, err)
		}
		var dirFiles []string
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
				continue
			}
			dirFiles = append(dirFiles, filepath.Join(p, e.Name()))
		}
		sort.Sort(natural.StringSlice(dirFiles))
		files = append(files, dirFiles...)
	}
	return files, nil
}

// LoadMarkdown reads Markdown files into documents keyed by path.
func LoadMarkdown(paths []string) (types.Documents, error) {
	files, err := MarkdownFiles(paths)
	if err != nil {
		return nil, err
	}
	docs := make(types.Documents, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		docs[f] = ParseMarkdown(string(data))
	}
	return docs, nil
}

// ParseMarkdown splits source into text nodes and opaque code nodes. A
// fenced block, fences included, becomes one code node. An unclosed fence
// runs to the end of the file.
func ParseMarkdown(src string) *types.Document {
	newline := "\n"
	if strings.Contains(src, "\r\n") {
		newline = "\r\n"
	}
	lines := strings.Split(src, newline)

	doc := &types.Document{Newline: newline}
	var text []string
	flushText := func() {
		if len(text) > 0 {
			doc.Nodes = append(doc.Nodes, types.TextNode(text...))
			text = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		fence, ok := openingFence(lines[i])
		if !ok {
			text = append(text, lines[i])
			continue
		}
		flushText()
		end := i + 1
		for end < len(lines) && !closesFence(lines[end], fence) {
			end++
		}
		end = min(end, len(lines)-1)
		code := append([]string(nil), lines[i:end+1]...)
		doc.Nodes = append(doc.Nodes, types.Node{Other: &types.OpaqueNode{Kind: codeKind, Lines: code}})
		i = end
	}
	flushText()
	return doc
}

// openingFence returns the fence marker (``` or ~~~, possibly longer) that
// opens a code block on line.
func openingFence(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return "", false
	}
	for _, c := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == c {
			n++
		}
		if n >= 3 {
			return trimmed[:n], true
		}
	}
	return "", false
}

func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, fence[:1]) == ""
}

// RenderMarkdown joins the document's lines back into source text.
func RenderMarkdown(doc *types.Document) string {
	var lines []string
	for _, n := range doc.Nodes {
		lines = append(lines, n.Lines()...)
	}
	newline := doc.Newline
	if newline == "" {
		newline = "\n"
	}
	return strings.Join(lines, newline)
}

// WriteMarkdown writes every document under outDir, keeping its relative
// path. All documents are attempted; the failures are returned together.
func WriteMarkdown(docs types.Documents, outDir string) error {
	var errs error
	for path, doc := range docs {
		target := filepath.Join(outDir, path)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("creating directory for %s: %w", path, err))
			continue
		}
		if err := os.WriteFile(target, []byte(RenderMarkdown(doc)), 0o644); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("writing %s: %w", path, err))
		}
	}
	return errs
}
