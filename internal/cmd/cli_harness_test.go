package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const sampleSidecar = `file: report.pdf
title: default view
"Introduction" page:1 open-default
  "Scope" font:italic page:2
"Appendix" font:bold page:40
`

// runCLI executes the root command with a clean flag state and
// captured IO. Every invocation gets an isolated config file so the
// user's real config never leaks into tests.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	resetFlags(rootCmd)

	// PersistentPreRunE mutates some globals without marking the flag
	// changed, so they are reset explicitly.
	outputFmt = "text"
	outputType = ""
	errorFmt = "auto"
	queryExpr = ""
	queryFile = ""
	quietFlag = false
	resultLimit = 0
	resultSort = ""
	resultDesc = false

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	in := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errBuf)
	rootCmd.SetIn(in)
	rootCmd.SetContext(withIO(context.Background(), in, out, errBuf))

	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err = rootCmd.Execute()
	if err != nil {
		printCommandError(errorContext(), err)
	}
	return out.String(), errBuf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeSidecar(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	docPath := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(docPath+".bkm", []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return docPath
}

func TestShowCommandText(t *testing.T) {
	docPath := writeSidecar(t, sampleSidecar)
	stdout, _, err := runCLI(t, "--output", "text", "show", docPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"default view", "- Introduction [p.1]", "  - Scope [p.2] (italic)", "- Appendix [p.40] (bold)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show output missing %q:\n%s", want, stdout)
		}
	}
}

func TestShowCommandJSONQuery(t *testing.T) {
	docPath := writeSidecar(t, sampleSidecar)
	stdout, _, err := runCLI(t, "--output", "json", "--query", ".documents[0].file", "show", docPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != `"report.pdf"` {
		t.Errorf("query output = %q, want %q", got, `"report.pdf"`)
	}
}

func TestShowCommandMissingSidecar(t *testing.T) {
	_, _, err := runCLI(t, "--output", "text", "show", filepath.Join(t.TempDir(), "absent.pdf"))
	if err == nil {
		t.Fatal("expected error for missing sidecar")
	}
}

func TestListCommandSortAndLimit(t *testing.T) {
	docPath := writeSidecar(t, sampleSidecar)
	stdout, _, err := runCLI(t, "--output", "json", "--sort", "page", "--desc", "--limit", "1", "list", docPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(stdout, `"Appendix"`) {
		t.Errorf("expected only the highest page entry, got:\n%s", stdout)
	}
	if strings.Contains(stdout, `"Scope"`) {
		t.Errorf("limit not applied:\n%s", stdout)
	}
}

func TestListCommandInvalidSort(t *testing.T) {
	docPath := writeSidecar(t, sampleSidecar)
	if _, _, err := runCLI(t, "--output", "json", "--sort", "color", "list", docPath); err == nil {
		t.Fatal("expected error for invalid sort field")
	}
}

func TestCheckCommandValid(t *testing.T) {
	docPath := writeSidecar(t, sampleSidecar)
	stdout, _, err := runCLI(t, "--output", "text", "check", docPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(stdout, "valid (3 entries)") {
		t.Errorf("check output = %q", stdout)
	}
}

func TestCheckCommandParseError(t *testing.T) {
	bad := "file: report.pdf\ntitle: view\n\"a\"\n   \"odd indent\"\n"
	docPath := writeSidecar(t, bad)
	_, stderr, err := runCLI(t, "--output", "text", "--error-format", "json", "check", docPath)
	if err == nil {
		t.Fatal("expected parse error")
	}
	for _, want := range []string{`"type":"parse"`, `"line":4`, `"category":"user"`} {
		if !strings.Contains(stderr, want) {
			t.Errorf("error envelope missing %s:\n%s", want, stderr)
		}
	}
}

func TestFmtCommandCanonicalizes(t *testing.T) {
	// unknown tokens are dropped, spacing and order normalized
	in := "file: report.pdf\ntitle: custom\n\"a\" glow:shiny font:bold  page:2\n"
	docPath := writeSidecar(t, in)
	stdout, _, err := runCLI(t, "--output", "text", "fmt", docPath)
	if err != nil {
		t.Fatalf("fmt: %v", err)
	}
	want := "file: report.pdf\ntitle: default view\n\"a\" font:bold page:2\n"
	if stdout != want {
		t.Errorf("canonical form = %q, want %q", stdout, want)
	}
}

func TestFmtCommandWrite(t *testing.T) {
	docPath := writeSidecar(t, sampleSidecar)
	if _, _, err := runCLI(t, "--output", "text", "fmt", "--write", docPath); err != nil {
		t.Fatalf("fmt --write: %v", err)
	}
	data, err := os.ReadFile(docPath + ".bkm")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "file: report.pdf\ntitle: default view\n") {
		t.Errorf("rewritten file:\n%s", data)
	}
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	mdPath := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(mdPath, []byte("# A\n## B\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "report.pdf.bkm")

	_, _, err := runCLI(t, "--output", "text", "import", mdPath,
		"--doc", filepath.Join(dir, "report.pdf"), "--out", outPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"file: ", "\"A\"\n", "  \"B\"\n"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("imported file missing %q:\n%s", want, data)
		}
	}
}
