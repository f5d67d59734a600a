package colors

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"#ff0000", RGB{0xff, 0, 0}, true},
		{"#FF8000", RGB{0xff, 0x80, 0}, true},
		{"#abc", RGB{0xaa, 0xbb, 0xcc}, true},
		{"0x00ff00", RGB{0, 0xff, 0}, true},
		{"red", RGB{0xff, 0, 0}, true},
		{"Blue", RGB{0, 0, 0xff}, true},
		{"#000000", RGB{}, true},
		{"", RGB{}, false},
		{"#12345", RGB{}, false},
		{"#gggggg", RGB{}, false},
		{"notacolor", RGB{}, false},
		{"0x12", RGB{}, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Parse(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	c := RGB{0x12, 0xab, 0xef}
	s := Format(c)
	if s != "#12abef" {
		t.Fatalf("Format = %q, want %q", s, "#12abef")
	}
	got, ok := Parse(s)
	if !ok || got != c {
		t.Errorf("Parse(Format(%v)) = %v, %v", c, got, ok)
	}
}
