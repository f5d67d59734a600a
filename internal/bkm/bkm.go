// Package bkm reads and writes .bkm files, the sidecar format holding
// an alternative bookmarks view for a document. A file carries two
// header lines (the source document path and a view title) followed by
// one line per outline entry, nested by two-space indentation:
//
//	file: report.pdf
//	title: default view
//	"Introduction" page:1 open-default
//	  "Scope" font:italic color:#336699 page:2
//	"Appendix" font:bold page:40
//
// Parsing is strict about structure (headers, indentation, one entry
// per line) and deliberately lax about entry metadata: unknown tokens
// are skipped so files written by newer versions still load.
package bkm

import (
	"fmt"

	"github.com/salmonumbrella/bkm-cli/internal/colors"
)

// SidecarSuffix is appended to a document path to name its bookmarks
// sidecar file.
const SidecarSuffix = ".bkm"

// savedTitle is what the serializer writes for the title header,
// matching the behavior of the original implementation regardless of
// the title the document was loaded with.
const savedTitle = "default view"

// Node is one outline entry. Children are owned exclusively by their
// parent; a node never appears under two parents.
type Node struct {
	Title string `json:"title"`

	Bold   bool        `json:"bold,omitempty"`
	Italic bool        `json:"italic,omitempty"`
	Color  *colors.RGB `json:"color,omitempty"`

	// PageNo is the 1-based page this entry points at, 0 if none.
	PageNo int `json:"page,omitempty"`

	OpenDefault bool `json:"openDefault,omitempty"`
	OpenToggled bool `json:"openToggled,omitempty"`
	Unchecked   bool `json:"unchecked,omitempty"`

	Dest *Destination `json:"dest,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// Destination is a structured target inside the source document.
type Destination struct {
	Kind   string `json:"kind,omitempty"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
	PageNo int    `json:"page,omitempty"`
	Rect   Rect   `json:"rect,omitempty"`
}

// Rect is a destination rectangle. The zero rectangle means "absent".
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// IsZero reports whether the rectangle is absent.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Document is one parsed bookmarks view.
type Document struct {
	// SourcePath identifies the document this view belongs to
	// (the "file:" header).
	SourcePath string `json:"file"`
	// Title is the view name the file was loaded with (the "title:"
	// header). Note that saving always writes "default view".
	Title string `json:"title"`
	// Roots holds the top-level outline entries in file order.
	Roots []*Node `json:"roots"`
}

// Collection is an ordered set of bookmark documents sharing one
// sidecar file. The format reserves room for several documents per
// file; current files hold exactly one.
type Collection struct {
	Documents []*Document `json:"documents"`
}

// ParseError describes a structural failure while parsing a .bkm file.
// Line is 1-based; 0 means the failure is not tied to a single line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// ConsistencyError reports a node whose page number disagrees with its
// destination's page number. Serialization refuses such trees.
type ConsistencyError struct {
	Title    string
	PageNo   int
	DestPage int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("entry %q: page %d does not match destination page %d",
		e.Title, e.PageNo, e.DestPage)
}
