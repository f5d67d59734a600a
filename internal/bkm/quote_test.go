package bkm

import (
	"strings"
	"testing"
)

func TestDecodeQuoted(t *testing.T) {
	tests := []struct {
		in   string
		val  string
		rest string
		ok   bool
	}{
		{`"hello"`, "hello", "", true},
		{`"hello" page:3`, "hello", " page:3", true},
		{`""`, "", "", true},
		{`"a\"b"`, `a"b`, "", true},
		{`"a\\b"`, `a\b`, "", true},
		{`"a\nb"`, `a\nb`, "", true},       // unknown escape keeps the backslash
		{`"tail\\"`, `tail\`, "", true},    // escaped backslash before the close
		{`"unterminated`, "", `"unterminated`, false},
		{`"ends with \`, "", `"ends with \`, false},
		{`no quote`, "", "no quote", false},
		{`"`, "", `"`, false},
		{``, "", ``, false},
	}
	for _, tt := range tests {
		val, rest, ok := decodeQuoted(tt.in)
		if val != tt.val || rest != tt.rest || ok != tt.ok {
			t.Errorf("decodeQuoted(%q) = %q, %q, %v; want %q, %q, %v",
				tt.in, val, rest, ok, tt.val, tt.rest, tt.ok)
		}
	}
}

func TestQuotedRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		`with "quotes"`,
		`back\slash`,
		`mixed \" both \\ kinds "`,
		`\`,
		`""""`,
		"spaces and   tabs\t",
	}
	for _, s := range inputs {
		var b strings.Builder
		appendQuoted(&b, s)
		got, rest, ok := decodeQuoted(b.String())
		if !ok {
			t.Errorf("decode(encode(%q)) failed", s)
			continue
		}
		if got != s || rest != "" {
			t.Errorf("decode(encode(%q)) = %q (rest %q)", s, got, rest)
		}
	}
}
