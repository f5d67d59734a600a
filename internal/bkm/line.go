package bkm

import (
	"strconv"
	"strings"

	"github.com/salmonumbrella/bkm-cli/internal/colors"
)

// parseKV parses a "key: value" header line. The key must match the
// expected literal exactly and the trimmed value must be non-empty.
func parseKV(line, key string) (string, bool) {
	line = strings.TrimLeft(line, " ")
	i := strings.IndexAny(line, ": ")
	if i < 0 {
		return "", false
	}
	if line[:i] != key {
		return "", false
	}
	rest := line[i:]
	if rest[0] == ':' {
		rest = rest[1:]
	}
	val := strings.TrimSpace(rest)
	if val == "" {
		return "", false
	}
	return val, true
}

// cutToken returns the text up to the next space and the remainder
// after it.
func cutToken(s string) (tok, rest string) {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// parseLine parses a single outline entry line into a node and its
// indent level. Only the structure (even indentation) can fail; every
// metadata problem degrades to an ignored token or a default value.
func parseLine(line string) (*Node, int, error) {
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	if indent%2 != 0 {
		return nil, 0, &ParseError{Msg: "indentation must be a multiple of two spaces"}
	}
	rest := line[indent:]

	// A missing or unterminated title is tolerated as an empty one;
	// the remainder is still scanned for metadata.
	title, rest, _ := decodeQuoted(rest)
	n := &Node{Title: title}

	var dest Destination
	haveDest := false
	for rest != "" {
		if rest[0] == ' ' {
			rest = rest[1:]
			continue
		}
		// destname/destvalue carry quoted literals which may contain
		// spaces, so they consume from the line rather than a token.
		if v, r, ok := cutQuotedField(rest, "destname:"); ok {
			dest.Name = v
			haveDest = true
			rest = r
			continue
		}
		if v, r, ok := cutQuotedField(rest, "destvalue:"); ok {
			dest.Value = v
			haveDest = true
			rest = r
			continue
		}
		var tok string
		tok, rest = cutToken(rest)
		if applyToken(n, &dest, tok) {
			haveDest = haveDest || strings.HasPrefix(tok, "dest")
		}
	}
	if haveDest {
		n.Dest = &dest
	}
	return n, indent / 2, nil
}

func cutQuotedField(s, prefix string) (val, rest string, ok bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", s, false
	}
	return decodeQuoted(s[len(prefix):])
}

// applyToken classifies one metadata token. Unrecognized or malformed
// tokens report false and are skipped by the caller; older and newer
// files must keep loading.
func applyToken(n *Node, dest *Destination, tok string) bool {
	switch {
	case tok == "font:bold":
		n.Bold = true
	case tok == "font:italic":
		n.Italic = true
	case strings.EqualFold(tok, "open-default"):
		n.OpenDefault = true
	case strings.EqualFold(tok, "open-toggled"):
		n.OpenToggled = true
	case tok == "unchecked":
		n.Unchecked = true
	default:
		if v, ok := strings.CutPrefix(tok, "color:"); ok {
			c, ok := colors.Parse(v)
			if !ok {
				return false
			}
			n.Color = &c
			return true
		}
		if v, ok := strings.CutPrefix(tok, "page:"); ok {
			p, err := strconv.Atoi(v)
			if err != nil || p <= 0 {
				return false
			}
			n.PageNo = p
			return true
		}
		if v, ok := strings.CutPrefix(tok, "destkind:"); ok && v != "" {
			dest.Kind = v
			return true
		}
		if v, ok := strings.CutPrefix(tok, "destpage:"); ok {
			p, err := strconv.Atoi(v)
			if err != nil || p <= 0 {
				return false
			}
			dest.PageNo = p
			return true
		}
		if v, ok := strings.CutPrefix(tok, "destrect:"); ok {
			r, ok := parseRect(v)
			if !ok {
				return false
			}
			dest.Rect = r
			return true
		}
		return false
	}
	return true
}

// parseRect parses the comma-joined "x,y,w,h" rectangle form. The
// value holds no spaces so it always fits in a single token.
func parseRect(s string) (Rect, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, false
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return Rect{}, false
		}
		v[i] = f
	}
	return Rect{v[0], v[1], v[2], v[3]}, true
}
