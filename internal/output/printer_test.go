package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatText, true},
		{"text", FormatText, true},
		{"JSON", FormatJSON, true},
		{" yaml ", FormatYAML, true},
		{"ndjson", FormatNDJSON, true},
		{"table", FormatTable, true},
		{"xml", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v, ok=%v", tt.in, got, err, tt.want, tt.ok)
		}
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatJSON)
	err := p.Print(context.Background(), map[string]int{"pages": 3})
	if err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), `"pages": 3`) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintJSONWithQuery(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatJSON)
	ctx := WithQuery(context.Background(), ".title")
	data := struct {
		Title string `json:"title"`
	}{Title: "Intro"}
	if err := p.Print(ctx, data); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `"Intro"` {
		t.Errorf("query output = %q, want %q", got, `"Intro"`)
	}
}

func TestPrintInvalidQuery(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatJSON)
	ctx := WithQuery(context.Background(), ".|||")
	if err := p.Print(ctx, map[string]int{}); err == nil {
		t.Fatal("expected error for invalid query")
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatTable)
	table := Table{
		Headers: []string{"title", "page"},
		Rows:    [][]string{{"Intro", "1"}, {"Scope", "2"}},
	}
	if err := p.Print(context.Background(), table); err != nil {
		t.Fatalf("Print: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"title", "Intro", "Scope"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	if FormatFromContext(ctx) != FormatText {
		t.Error("default format should be text")
	}
	if QueryFromContext(ctx) != "" || QuietFromContext(ctx) || LimitFromContext(ctx) != 0 {
		t.Error("unset context options should be zero")
	}
	ctx = WithSort(ctx, "page", true)
	field, desc := SortFromContext(ctx)
	if field != "page" || !desc {
		t.Errorf("SortFromContext = %q, %v", field, desc)
	}
}
