package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInputSource_Empty(t *testing.T) {
	_, err := readInputSource("", nil)
	if err == nil {
		t.Fatal("expected error for empty source")
	}
	if !strings.Contains(err.Error(), "empty input source") {
		t.Errorf("expected 'empty input source' error, got %v", err)
	}
}

func TestReadInputSource_File(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "query.jq")
	if err := os.WriteFile(filePath, []byte(".documents[0].title\n"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	got, err := readInputSource(filePath, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := ".documents[0].title"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReadInputSource_Stdin(t *testing.T) {
	stdin := bytes.NewBufferString("# heading\n")
	got, err := readInputSource("-", stdin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "# heading" {
		t.Errorf("got %q", got)
	}
}

func TestReadInputSource_FileNotFound(t *testing.T) {
	_, err := readInputSource("/nonexistent/path/to/file.md", nil)
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("expected 'failed to read' error, got %v", err)
	}
}
