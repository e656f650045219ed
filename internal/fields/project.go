package fields

import (
	"strings"

	"github.com/jacoelho/getitem/internal/line"
	"github.com/jacoelho/getitem/internal/slice"
)

// Projection is the part of a line that survived a column selection.
type Projection struct {
	// Text is the indented selection without the line terminator.
	Text       string
	Fields     []Field
	Terminated bool
}

// String returns the projection as it is written to the output.
func (p Projection) String() string {
	if p.Terminated {
		return p.Text + "\n"
	}
	return p.Text
}

// Texts returns the text of every selected field.
func (p Projection) Texts() []string {
	texts := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		texts[i] = f.Text
	}
	return texts
}

// Select resolves spec against the fields of one line. It reports false when
// the start falls outside the fields or the selection is empty.
func Select(fields []Field, spec slice.Spec) ([]Field, bool) {
	count := len(fields)
	window := slice.Normalize(spec, slice.Known(count))

	end := count
	if v, ok := window.End.Value(); ok {
		end = v
	}

	if window.Start < 0 || window.Start >= count || window.Start >= end {
		return nil, false
	}

	return fields[window.Start:min(end, count)], true
}

// ProjectRecord applies spec to record. The selection keeps the original
// spacing between fields and is indented by the first field's offset.
func ProjectRecord(record line.Record, spec slice.Spec) (Projection, bool) {
	selected, ok := Select(Tokenize(record.Text), spec)
	if !ok {
		return Projection{}, false
	}

	first, last := selected[0], selected[len(selected)-1]

	var b strings.Builder
	b.Grow(first.Start + last.to - first.from)
	b.WriteString(strings.Repeat(" ", first.Start))
	b.WriteString(record.Text[first.from:last.to])

	return Projection{
		Text:       b.String(),
		Fields:     selected,
		Terminated: record.Terminated,
	}, true
}

// Project is ProjectRecord rendered for output. Lines with nothing selected
// are dropped rather than printed blank.
func Project(record line.Record, spec slice.Spec) (string, bool) {
	p, ok := ProjectRecord(record, spec)
	if !ok {
		return "", false
	}
	return p.String(), true
}
