package bkm

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/salmonumbrella/bkm-cli/internal/colors"
)

// Serialize renders the collection in canonical .bkm form. Fields are
// emitted in a fixed order so serialization is deterministic and
// re-parsing yields an identical tree. A node whose page number
// disagrees with its destination's page number is an error.
func (c *Collection) Serialize() ([]byte, error) {
	var b strings.Builder
	for _, doc := range c.Documents {
		fmt.Fprintf(&b, "file: %s\n", doc.SourcePath)
		// The original implementation always resets the view title on
		// save; kept for file-level compatibility.
		fmt.Fprintf(&b, "title: %s\n", savedTitle)
		if err := writeNodes(&b, doc.Roots, 0); err != nil {
			return nil, err
		}
	}
	return []byte(b.String()), nil
}

// ExportFile writes the serialized collection to path.
func (c *Collection) ExportFile(path string) error {
	data, err := c.Serialize()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing bookmarks: %w", err)
	}
	return nil
}

// Save writes the collection to the sidecar file for docPath.
func (c *Collection) Save(docPath string) error {
	return c.ExportFile(SidecarPath(docPath))
}

func writeNodes(b *strings.Builder, nodes []*Node, level int) error {
	for _, n := range nodes {
		if err := n.checkPageNumbers(); err != nil {
			return err
		}
		for i := 0; i < level; i++ {
			b.WriteString("  ")
		}
		appendQuoted(b, n.Title)
		if n.Italic {
			b.WriteString(" font:italic")
		}
		if n.Bold {
			b.WriteString(" font:bold")
		}
		if n.Color != nil {
			b.WriteString(" color:")
			b.WriteString(colors.Format(*n.Color))
		}
		if n.PageNo != 0 {
			fmt.Fprintf(b, " page:%d", n.PageNo)
		}
		if n.OpenDefault {
			b.WriteString(" open-default")
		}
		if n.OpenToggled {
			b.WriteString(" open-toggled")
		}
		if n.Unchecked {
			b.WriteString(" unchecked")
		}
		writeDest(b, n.Dest)
		b.WriteByte('\n')
		if err := writeNodes(b, n.Children, level+1); err != nil {
			return err
		}
	}
	return nil
}

func writeDest(b *strings.Builder, d *Destination) {
	if d == nil {
		return
	}
	if d.Kind != "" {
		fmt.Fprintf(b, " destkind:%s", d.Kind)
	}
	if d.Name != "" {
		b.WriteString(" destname:")
		appendQuoted(b, d.Name)
	}
	if d.Value != "" {
		b.WriteString(" destvalue:")
		appendQuoted(b, d.Value)
	}
	if d.PageNo > 0 {
		fmt.Fprintf(b, " destpage:%d", d.PageNo)
	}
	if !d.Rect.IsZero() {
		b.WriteString(" destrect:")
		b.WriteString(formatFloat(d.Rect.X))
		b.WriteByte(',')
		b.WriteString(formatFloat(d.Rect.Y))
		b.WriteByte(',')
		b.WriteString(formatFloat(d.Rect.W))
		b.WriteByte(',')
		b.WriteString(formatFloat(d.Rect.H))
	}
}

// formatFloat uses the shortest representation that parses back to the
// same float64, so rectangles survive a save/load cycle exactly.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// checkPageNumbers verifies the invariant that a node and its
// destination agree on the page they point at. Either side may be
// unset (zero).
func (n *Node) checkPageNumbers() error {
	if n.Dest == nil || n.Dest.PageNo == 0 || n.PageNo == 0 {
		return nil
	}
	if n.Dest.PageNo != n.PageNo {
		return &ConsistencyError{Title: n.Title, PageNo: n.PageNo, DestPage: n.Dest.PageNo}
	}
	return nil
}
