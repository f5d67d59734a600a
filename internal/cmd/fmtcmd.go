package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/bkm-cli/internal/bkm"
	"github.com/salmonumbrella/bkm-cli/internal/output"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt <document|file.bkm>",
	Short: "Rewrite a bookmarks file in canonical form",
	Long: `Parse a .bkm file and emit its canonical serialization: normalized
spacing, quoting, and metadata order.

By default the result goes to stdout; --write rewrites the file in
place. Note that saving always writes the "default view" title header.

Examples:
  bkm fmt report.pdf
  bkm fmt report.pdf --write`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := bkm.SidecarPath(args[0])
		c, err := bkm.ParseFile(path)
		if err != nil {
			return err
		}
		data, err := c.Serialize()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if fmtWrite {
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			if !output.QuietFromContext(ctx) {
				fmt.Fprintf(stderrFromContext(ctx), "rewrote %s\n", path)
			}
			return nil
		}
		_, err = stdoutFromContext(ctx).Write(data)
		return err
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Rewrite the file instead of printing to stdout")
	rootCmd.AddCommand(fmtCmd)
}
