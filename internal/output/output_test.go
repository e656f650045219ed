package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/getitem/internal/fields"
	"github.com/jacoelho/getitem/internal/line"
	"github.com/jacoelho/getitem/internal/slice"
)

func sampleLines(t *testing.T) []Line {
	t.Helper()

	spec, err := slice.Parse("1:")
	if err != nil {
		t.Fatal(err)
	}

	records := line.Split("a  b c\nd e\nlast")
	var lines []Line
	for i, r := range records {
		p, ok := fields.ProjectRecord(r, spec)
		if !ok {
			continue
		}
		lines = append(lines, Line{Row: i, Projection: p})
	}
	return lines
}

func write(t *testing.T, format Format, lines []Line) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := New(&buf, format)
	if err != nil {
		t.Fatalf("New(%q) error = %v", format, err)
	}
	for _, l := range lines {
		if err := w.Write(l); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	return buf.Bytes()
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Format
	}{
		{input: "", want: FormatText},
		{input: "text", want: FormatText},
		{input: "JSON", want: FormatJSON},
		{input: " yaml ", want: FormatYAML},
		{input: "yml", want: FormatYAML},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if err != nil {
			t.Fatalf("ParseFormat(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("ParseFormat(xml) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := New(&bytes.Buffer{}, Format("csv")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("New(csv) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestTextWriter(t *testing.T) {
	t.Parallel()

	got := string(write(t, FormatText, sampleLines(t)))
	want := "   b c\n  e\n"
	if got != want {
		t.Fatalf("text output = %q, want %q", got, want)
	}
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	out := write(t, FormatJSON, sampleLines(t))

	var got []record
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		var r record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			t.Fatalf("line %q is not JSON: %v", scanner.Text(), err)
		}
		got = append(got, r)
	}

	if len(got) != 2 {
		t.Fatalf("decoded %d records, want 2", len(got))
	}
	if got[0].Row != 0 || got[0].Text != "   b c" || !slices.Equal(got[0].Fields, []string{"b", "c"}) || !got[0].Terminated {
		t.Fatalf("first record = %+v", got[0])
	}
	if got[1].Row != 1 || got[1].Text != "  e" {
		t.Fatalf("second record = %+v", got[1])
	}
}

func TestYAMLWriter(t *testing.T) {
	t.Parallel()

	out := write(t, FormatYAML, sampleLines(t))

	var got []record
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("output is not a YAML sequence: %v\n%s", err, out)
	}
	if len(got) != 2 {
		t.Fatalf("decoded %d records, want 2\n%s", len(got), out)
	}
	if got[0].Text != "   b c" || !slices.Equal(got[1].Fields, []string{"e"}) {
		t.Fatalf("records = %+v", got)
	}

	var empty []record
	if err := yaml.Unmarshal(write(t, FormatYAML, nil), &empty); err != nil {
		t.Fatalf("empty output is not YAML: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty output decoded to %+v", empty)
	}
}
