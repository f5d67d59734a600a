package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"
)

// Table is a pre-shaped tabular result.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Printer writes command results to w in a single format.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a Printer writing to w in the given format.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Print outputs data in the configured format. Structured formats
// honor the jq query carried in ctx.
func (p *Printer) Print(ctx context.Context, data interface{}) error {
	if data == nil {
		return nil
	}
	switch p.format {
	case FormatJSON:
		return p.printJSON(ctx, data, true)
	case FormatNDJSON:
		return p.printJSON(ctx, data, false)
	case FormatYAML:
		return p.printYAML(data)
	case FormatTable:
		return p.printTable(data)
	case FormatText:
		return p.printText(data)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

func (p *Printer) printJSON(ctx context.Context, data interface{}, indent bool) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)

	query := QueryFromContext(ctx)
	if query == "" {
		if indent {
			enc.SetIndent("", "  ")
			return enc.Encode(data)
		}
		// newline-delimited: one item per line for sequences
		plain, err := toPlain(data)
		if err != nil {
			return err
		}
		if seq, ok := plain.([]interface{}); ok {
			for _, item := range seq {
				if err := enc.Encode(item); err != nil {
					return err
				}
			}
			return nil
		}
		return enc.Encode(plain)
	}

	parsed, err := gojq.Parse(query)
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}

	// gojq operates on plain maps and slices, not structs.
	plain, err := toPlain(data)
	if err != nil {
		return err
	}
	iter := code.Run(plain)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if qerr, isErr := v.(error); isErr {
			return fmt.Errorf("query error: %w", qerr)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printYAML(data interface{}) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}

// printText falls back to a line-per-item rendering; commands with a
// richer human view render it themselves before reaching the printer.
func (p *Printer) printText(data interface{}) error {
	if t, ok := data.(Table); ok {
		return p.printTableData(t.Headers, t.Rows)
	}
	if seq, ok := asSlice(data); ok {
		for _, item := range seq {
			if _, err := fmt.Fprintln(p.w, item); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := fmt.Fprintln(p.w, data)
	return err
}

func (p *Printer) printTable(data interface{}) error {
	t, ok := data.(Table)
	if !ok {
		return fmt.Errorf("table format is not available for this command")
	}
	return p.printTableData(t.Headers, t.Rows)
}

func (p *Printer) printTableData(headers []string, rows [][]string) error {
	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, h)
	}
	fmt.Fprintln(w)
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// toPlain converts data to the map/slice shape gojq understands, using
// its JSON encoding.
func toPlain(data interface{}) (interface{}, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding for --query: %w", err)
	}
	var plain interface{}
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, err
	}
	return plain, nil
}

func asSlice(data interface{}) ([]interface{}, bool) {
	switch v := data.(type) {
	case []interface{}:
		return v, true
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}
