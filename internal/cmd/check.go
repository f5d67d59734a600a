package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/bkm-cli/internal/bkm"
	"github.com/salmonumbrella/bkm-cli/internal/output"
)

var checkCmd = &cobra.Command{
	Use:   "check <document|file.bkm>",
	Short: "Validate a bookmarks file",
	Long: `Validate the structure of a .bkm file.

Parse failures are reported with their line number and the command
exits non-zero. A valid file additionally has its page-number
consistency verified (an entry and its destination must agree).

Examples:
  bkm check report.pdf
  bkm check notes.bkm --error-format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := bkm.SidecarPath(args[0])
		c, err := bkm.ParseFile(path)
		if err != nil {
			return err
		}
		// a re-serialization surfaces page-number mismatches
		if _, err := c.Serialize(); err != nil {
			return err
		}

		ctx := cmd.Context()
		if structuredOutputRequested() {
			return printStructured(ctx, map[string]interface{}{
				"file":    path,
				"valid":   true,
				"entries": countEntries(c),
			})
		}
		if !output.QuietFromContext(ctx) {
			fmt.Fprintf(stdoutFromContext(ctx), "%s: valid (%d entries)\n", path, countEntries(c))
		}
		return nil
	},
}

func countEntries(c *bkm.Collection) int {
	n := 0
	var walk func(nodes []*bkm.Node)
	walk = func(nodes []*bkm.Node) {
		n += len(nodes)
		for _, node := range nodes {
			walk(node.Children)
		}
	}
	for _, doc := range c.Documents {
		walk(doc.Roots)
	}
	return n
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
