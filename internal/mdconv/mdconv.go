// Package mdconv builds a bookmarks document from the heading
// structure of a Markdown file, so an outline can be seeded from
// existing notes and then edited as .bkm.
package mdconv

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/salmonumbrella/bkm-cli/internal/bkm"
)

// FromMarkdown parses src and turns its headings into an outline tree.
// Heading levels map to nesting the same way indent levels do in .bkm
// files: a deeper heading nests under the previous shallower one, and
// skipped levels are accepted. sourcePath becomes the document's
// "file:" header.
func FromMarkdown(src []byte, sourcePath string) (*bkm.Document, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	type stackEntry struct {
		node  *bkm.Node
		level int
	}

	doc := &bkm.Document{
		SourcePath: sourcePath,
		Title:      "default view",
	}
	var stack []stackEntry

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		title := headingText(heading, src)
		node := &bkm.Node{Title: title}

		for len(stack) > 0 && stack[len(stack)-1].level >= heading.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			doc.Roots = append(doc.Roots, node)
		} else {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, stackEntry{node: node, level: heading.Level})
	}

	if len(doc.Roots) == 0 {
		return nil, fmt.Errorf("no headings found")
	}
	return doc, nil
}

func headingText(h *ast.Heading, src []byte) string {
	var b strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, src, &b)
	}
	return strings.TrimSpace(b.String())
}

func collectText(n ast.Node, src []byte, b *strings.Builder) {
	if t, ok := n.(*ast.Text); ok {
		b.Write(t.Segment.Value(src))
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, src, b)
	}
}
