package bkm

import "strings"

// decodeQuoted parses a double-quoted string literal at the start of s.
// Inside the quotes, \\ and \" stand for a backslash and a quote; a
// backslash before any other character is kept as-is. On success rest
// is the text after the closing quote. When s does not start with a
// quote, or the quote is never closed, ok is false and rest is s
// unchanged.
func decodeQuoted(s string) (val, rest string, ok bool) {
	if len(s) < 2 || s[0] != '"' {
		return "", s, false
	}
	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		if c == '"' {
			return b.String(), s[i+1:], true
		}
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			// dangling backslash, quote never closed
			break
		}
		switch s[i+1] {
		case '\\', '"':
			b.WriteByte(s[i+1])
			i += 2
		default:
			// not an escape, keep the backslash
			b.WriteByte('\\')
			i++
		}
	}
	return "", s, false
}

// appendQuoted writes s as a double-quoted literal, escaping backslashes
// and quotes so decodeQuoted reads back the exact input.
func appendQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
}
