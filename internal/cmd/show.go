package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/bkm-cli/internal/bkm"
	"github.com/salmonumbrella/bkm-cli/internal/colors"
)

var showCmd = &cobra.Command{
	Use:   "show <document|file.bkm>",
	Short: "Display the bookmarks view for a document",
	Long: `Display the bookmarks view stored in a document's .bkm sidecar.

The argument is a document path (its ".bkm" sidecar will be read) or a
.bkm file directly.

Examples:
  bkm show report.pdf
  bkm show report.pdf.bkm --output json
  bkm show report.pdf --output json --query '.documents[0].roots[].title'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bkm.Load(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if structuredOutputRequested() {
			return printStructured(ctx, c)
		}

		out := stdoutFromContext(ctx)
		for _, doc := range c.Documents {
			fmt.Fprintf(out, "%s (%s)\n", doc.Title, doc.SourcePath)
			renderTree(out, doc.Roots, 0)
		}
		return nil
	},
}

// renderTree writes the human view of the outline, one entry per line
// with its page and display attributes.
func renderTree(w io.Writer, nodes []*bkm.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		fmt.Fprintf(w, "%s- %s", indent, n.Title)
		if n.PageNo > 0 {
			fmt.Fprintf(w, " [p.%d]", n.PageNo)
		}
		if attrs := nodeAttrs(n); attrs != "" {
			fmt.Fprintf(w, " (%s)", attrs)
		}
		fmt.Fprintln(w)
		renderTree(w, n.Children, depth+1)
	}
}

func nodeAttrs(n *bkm.Node) string {
	var attrs []string
	if n.Bold {
		attrs = append(attrs, "bold")
	}
	if n.Italic {
		attrs = append(attrs, "italic")
	}
	if n.Color != nil {
		attrs = append(attrs, colors.Format(*n.Color))
	}
	if n.Unchecked {
		attrs = append(attrs, "unchecked")
	}
	if n.Dest != nil && n.Dest.Kind != "" {
		attrs = append(attrs, "dest:"+n.Dest.Kind)
	}
	return strings.Join(attrs, ", ")
}

func init() {
	rootCmd.AddCommand(showCmd)
}
