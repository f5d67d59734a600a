package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/salmonumbrella/bkm-cli/internal/config"
	"github.com/salmonumbrella/bkm-cli/internal/output"
)

var (
	// Version is set at build time
	version = "dev"
	// Commit is set at build time
	commit = "none"
	// Date is set at build time
	date = "unknown"
)

// SetVersionInfo sets the version information from build flags
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = version
}

// Global flags
var (
	outputFmt   string
	outputType  output.Format
	configFile  string
	queryExpr   string
	queryFile   string
	errorFmt    string
	quietFlag   bool
	resultLimit int
	resultSort  string
	resultDesc  bool
)

var rootCmd = &cobra.Command{
	Use:   "bkm",
	Short: "Work with .bkm bookmark view files",
	Long: `bkm inspects, validates, and rewrites .bkm files: the sidecar format
holding an alternative bookmarks view for a document.

A sidecar is named after its document ("report.pdf" keeps its bookmarks
in "report.pdf.bkm"); commands accept either the document path or the
sidecar path directly.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceErrors = true

		cfg, err := loadConfigFromFlag()
		if err != nil {
			return formatConfigLoadError(err)
		}

		// Output format selection: --output > config > default
		// (json when stdout is not a terminal).
		formatStr := outputFmt
		if !flagChanged(cmd, "output") && cfg != nil && strings.TrimSpace(cfg.OutputFormat) != "" {
			formatStr = strings.TrimSpace(cfg.OutputFormat)
		}
		if !flagChanged(cmd, "output") && !isTerminal(cmd.OutOrStdout()) {
			formatStr = "json"
		}
		format, err := output.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		outputType = format
		outputFmt = string(format)

		// jq query
		if queryExpr != "" && queryFile != "" {
			return errOnlyOneQuerySource
		}
		if queryFile != "" {
			loaded, err := readInputSource(queryFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			queryExpr = loaded
		}

		if !flagChanged(cmd, "error-format") && cfg != nil && strings.TrimSpace(cfg.ErrorFormat) != "" {
			errorFmt = strings.TrimSpace(cfg.ErrorFormat)
		}
		if err := validateErrorFormat(errorFmt); err != nil {
			return err
		}

		// Default quiet mode for non-interactive structured output
		if !flagChanged(cmd, "quiet") && !isTerminal(cmd.OutOrStdout()) && output.IsStructured(outputType) {
			quietFlag = true
		}

		ctx := cmd.Context()
		ctx = withIO(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		ctx = output.WithFormat(ctx, outputType)
		ctx = output.WithQuery(ctx, queryExpr)
		ctx = output.WithQuiet(ctx, quietFlag)
		ctx = output.WithLimit(ctx, resultLimit)
		ctx = output.WithSort(ctx, resultSort, resultDesc)
		ctx = WithErrorFormat(ctx, errorFmt)
		cmd.SetContext(ctx)

		if effectiveErrorFormat(ctx) != "text" {
			cmd.SilenceUsage = true
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		printCommandError(errorContext(), err)
		return err
	}
	return nil
}

// errorContext rebuilds the option context for error printing: the
// executed subcommand's context is no longer visible from the root
// once cobra unwinds, so it is reassembled from the resolved flags.
func errorContext() context.Context {
	ctx := rootCmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = WithErrorFormat(ctx, errorFmt)
	ctx = output.WithFormat(ctx, GetOutputFormat())
	return ctx
}

// GetOutputFormat returns the configured output format
func GetOutputFormat() output.Format {
	if outputType != "" {
		return outputType
	}
	parsed, err := output.ParseFormat(outputFmt)
	if err != nil {
		return output.FormatText
	}
	return parsed
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if cmd.Flags().Changed(name) {
		return true
	}
	return cmd.InheritedFlags().Changed(name)
}

func loadConfigFromFlag() (*config.Config, error) {
	if strings.TrimSpace(configFile) != "" {
		return config.Load(configFile)
	}
	return config.ReadConfig()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "Output format (text|json|ndjson|table|yaml)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default ~/.config/bkm/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&queryExpr, "query", "q", "", "jq expression applied to structured output")
	rootCmd.PersistentFlags().StringVar(&queryFile, "query-file", "", "Read the jq expression from a file (- for stdin)")
	rootCmd.PersistentFlags().StringVar(&errorFmt, "error-format", "auto", "Error output format (auto|text|json|yaml)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress non-essential messages")
	rootCmd.PersistentFlags().IntVar(&resultLimit, "limit", 0, "Limit list results (0 = unlimited)")
	rootCmd.PersistentFlags().StringVar(&resultSort, "sort", "", "Sort list results by field (title|page)")
	rootCmd.PersistentFlags().BoolVar(&resultDesc, "desc", false, "Sort in descending order")
}
