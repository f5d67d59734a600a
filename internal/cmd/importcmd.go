package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/bkm-cli/internal/bkm"
	"github.com/salmonumbrella/bkm-cli/internal/mdconv"
	"github.com/salmonumbrella/bkm-cli/internal/output"
)

var (
	importDoc string
	importOut string
)

var importCmd = &cobra.Command{
	Use:   "import <file.md>",
	Short: "Build a bookmarks file from Markdown headings",
	Long: `Build a .bkm bookmarks view from the heading structure of a Markdown
file. Heading levels become nesting levels.

The "file:" header of the generated document is taken from --doc, or
defaults to the Markdown file name without its extension. The result is
written next to the document (its .bkm sidecar) unless --out names a
different file; "-" reads Markdown from stdin.

Examples:
  bkm import notes.md --doc report.pdf
  cat notes.md | bkm import - --doc report.pdf --out view.bkm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readInputSource(args[0], stdinFromContext(cmd.Context()))
		if err != nil {
			return err
		}

		docPath := importDoc
		if docPath == "" {
			if args[0] == "-" {
				return fmt.Errorf("--doc is required when reading from stdin")
			}
			docPath = strings.TrimSuffix(strings.TrimSuffix(args[0], ".markdown"), ".md")
		}

		doc, err := mdconv.FromMarkdown([]byte(src), docPath)
		if err != nil {
			return err
		}
		c := &bkm.Collection{Documents: []*bkm.Document{doc}}

		outPath := importOut
		if outPath == "" {
			outPath = bkm.SidecarPath(docPath)
		}
		if err := c.ExportFile(outPath); err != nil {
			return err
		}

		ctx := cmd.Context()
		if structuredOutputRequested() {
			return printStructured(ctx, map[string]interface{}{
				"file":    outPath,
				"entries": countEntries(c),
			})
		}
		if !output.QuietFromContext(ctx) {
			fmt.Fprintf(stdoutFromContext(ctx), "wrote %s (%d entries)\n", outPath, countEntries(c))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importDoc, "doc", "", "Document path the bookmarks belong to")
	importCmd.Flags().StringVar(&importOut, "out", "", "Output file (default: the document's .bkm sidecar)")
	rootCmd.AddCommand(importCmd)
}
