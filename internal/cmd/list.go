package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/bkm-cli/internal/bkm"
	"github.com/salmonumbrella/bkm-cli/internal/colors"
	"github.com/salmonumbrella/bkm-cli/internal/output"
)

// listEntry is the flat per-entry view used by `bkm list`.
type listEntry struct {
	Title string `json:"title"`
	Depth int    `json:"depth"`
	Page  int    `json:"page,omitempty"`
	Flags string `json:"flags,omitempty"`
	Color string `json:"color,omitempty"`
	Dest  string `json:"dest,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list <document|file.bkm>",
	Short: "List bookmark entries as a flat table",
	Long: `List every bookmark entry in file order, flattened.

Honors --limit, --sort (title|page) and --desc.

Examples:
  bkm list report.pdf
  bkm list report.pdf --sort page --limit 10
  bkm list report.pdf --output json --query '.[].title'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bkm.Load(args[0])
		if err != nil {
			return err
		}

		var entries []listEntry
		for _, doc := range c.Documents {
			entries = append(entries, flatten(doc.Roots, 0)...)
		}

		ctx := cmd.Context()
		if field, desc := output.SortFromContext(ctx); field != "" {
			if err := sortEntries(entries, field, desc); err != nil {
				return err
			}
		}
		if limit := output.LimitFromContext(ctx); limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}

		if structuredOutputRequested() {
			return printStructured(ctx, entries)
		}
		return printStructured(ctx, entryTable(entries))
	},
}

func flatten(nodes []*bkm.Node, depth int) []listEntry {
	var out []listEntry
	for _, n := range nodes {
		out = append(out, newListEntry(n, depth))
		out = append(out, flatten(n.Children, depth+1)...)
	}
	return out
}

func newListEntry(n *bkm.Node, depth int) listEntry {
	var flags []string
	if n.Bold {
		flags = append(flags, "bold")
	}
	if n.Italic {
		flags = append(flags, "italic")
	}
	if n.OpenDefault {
		flags = append(flags, "open-default")
	}
	if n.OpenToggled {
		flags = append(flags, "open-toggled")
	}
	if n.Unchecked {
		flags = append(flags, "unchecked")
	}
	e := listEntry{
		Title: n.Title,
		Depth: depth,
		Page:  n.PageNo,
		Flags: strings.Join(flags, ","),
	}
	if n.Color != nil {
		e.Color = colors.Format(*n.Color)
	}
	if n.Dest != nil {
		e.Dest = n.Dest.Kind
	}
	return e
}

func sortEntries(entries []listEntry, field string, desc bool) error {
	var less func(i, j int) bool
	switch field {
	case "title":
		less = func(i, j int) bool { return entries[i].Title < entries[j].Title }
	case "page":
		less = func(i, j int) bool { return entries[i].Page < entries[j].Page }
	default:
		return fmt.Errorf("invalid --sort field %q (expected title|page)", field)
	}
	if desc {
		orig := less
		less = func(i, j int) bool { return orig(j, i) }
	}
	sort.SliceStable(entries, less)
	return nil
}

func entryTable(entries []listEntry) output.Table {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		page := ""
		if e.Page > 0 {
			page = strconv.Itoa(e.Page)
		}
		title := strings.Repeat("  ", e.Depth) + e.Title
		rows = append(rows, []string{title, page, e.Flags, e.Color, e.Dest})
	}
	return output.Table{
		Headers: []string{"title", "page", "flags", "color", "dest"},
		Rows:    rows,
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
