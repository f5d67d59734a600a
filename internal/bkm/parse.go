package bkm

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Parse reads one bookmarks document from the raw contents of a .bkm
// file. The two header lines are mandatory and ordered; entry lines
// follow until a blank line or the end of input. Any structural
// failure fails the whole parse: no partial document is ever returned.
func Parse(data []byte) (*Collection, error) {
	lines := splitLines(string(data))

	if len(lines) == 0 {
		return nil, &ParseError{Line: 1, Msg: `missing "file:" header`}
	}
	sourcePath, ok := parseKV(lines[0], "file")
	if !ok {
		return nil, &ParseError{Line: 1, Msg: `missing "file:" header`}
	}
	if len(lines) < 2 {
		return nil, &ParseError{Line: 2, Msg: `missing "title:" header`}
	}
	title, ok := parseKV(lines[1], "title")
	if !ok {
		return nil, &ParseError{Line: 2, Msg: `missing "title:" header`}
	}

	var items []indented
	for i := 2; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			// blank line ends the document
			break
		}
		node, indent, err := parseLine(line)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = i + 1
				return nil, pe
			}
			return nil, err
		}
		items = append(items, indented{node: node, indent: indent})
	}

	roots, err := buildOutline(items)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		SourcePath: sourcePath,
		Title:      title,
		Roots:      roots,
	}
	// TODO: parse documents after a blank-line separator once files
	// with more than one view exist.
	return &Collection{Documents: []*Document{doc}}, nil
}

// ParseFile reads and parses the .bkm file at path.
func ParseFile(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bookmarks: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// SidecarPath names the bookmarks sidecar for a document. A path that
// already ends in the sidecar suffix is returned unchanged, so both
// "report.pdf" and "report.pdf.bkm" address the same file.
func SidecarPath(docPath string) string {
	if strings.HasSuffix(docPath, SidecarSuffix) {
		return docPath
	}
	return docPath + SidecarSuffix
}

// Load parses the bookmarks sidecar associated with the document at
// docPath.
func Load(docPath string) (*Collection, error) {
	return ParseFile(SidecarPath(docPath))
}

// splitLines splits on LF and strips a trailing CR from each line so
// CRLF files parse the same way.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	// a trailing newline is not an empty last line
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
