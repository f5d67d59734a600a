// Package colors parses and formats the color values used in .bkm
// metadata tokens.
package colors

import (
	"fmt"
	"strings"
)

// RGB is a 24-bit color. The zero value is black, which is a valid
// color; callers that need "no color" track that separately.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// named covers the color names accepted in .bkm files. Anything else
// must be given in hex form.
var named = map[string]RGB{
	"black":   {0x00, 0x00, 0x00},
	"white":   {0xff, 0xff, 0xff},
	"gray":    {0x80, 0x80, 0x80},
	"red":     {0xff, 0x00, 0x00},
	"green":   {0x00, 0x80, 0x00},
	"blue":    {0x00, 0x00, 0xff},
	"yellow":  {0xff, 0xff, 0x00},
	"cyan":    {0x00, 0xff, 0xff},
	"magenta": {0xff, 0x00, 0xff},
	"orange":  {0xff, 0xa5, 0x00},
	"purple":  {0x80, 0x00, 0x80},
}

// Parse interprets a color value. Accepted forms are "#rgb", "#rrggbb",
// "0xrrggbb" and a small set of color names. Matching is
// case-insensitive. Returns false for anything it does not understand.
func Parse(s string) (RGB, bool) {
	s = strings.ToLower(s)
	if c, ok := named[s]; ok {
		return c, true
	}
	var hex string
	switch {
	case len(s) > 0 && s[0] == '#':
		hex = s[1:]
	case len(s) > 2 && s[0] == '0' && s[1] == 'x':
		hex = s[2:]
	default:
		return RGB{}, false
	}
	switch len(hex) {
	case 3:
		r, ok1 := hexNibble(hex[0])
		g, ok2 := hexNibble(hex[1])
		b, ok3 := hexNibble(hex[2])
		if !ok1 || !ok2 || !ok3 {
			return RGB{}, false
		}
		return RGB{r<<4 | r, g<<4 | g, b<<4 | b}, true
	case 6:
		var v [3]uint8
		for i := 0; i < 3; i++ {
			hi, ok1 := hexNibble(hex[2*i])
			lo, ok2 := hexNibble(hex[2*i+1])
			if !ok1 || !ok2 {
				return RGB{}, false
			}
			v[i] = hi<<4 | lo
		}
		return RGB{v[0], v[1], v[2]}, true
	}
	return RGB{}, false
}

// Format renders a color in the canonical "#rrggbb" form.
func Format(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
