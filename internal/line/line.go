package line

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned for a line that does not decode as UTF-8.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// Record is one input line without its terminator.
type Record struct {
	Text       string
	Terminated bool
}

// String returns the line as it appeared in the source.
func (r Record) String() string {
	if r.Terminated {
		return r.Text + "\n"
	}
	return r.Text
}

// Reader splits a byte stream into records on '\n'. A trailing terminator
// does not start an extra empty record.
type Reader struct {
	r    *bufio.Reader
	next int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Read returns the next record, or io.EOF once the stream is exhausted.
func (lr *Reader) Read() (Record, error) {
	text, err := lr.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Record{}, err
	}
	if text == "" && err != nil {
		return Record{}, io.EOF
	}

	lineNo := lr.next
	lr.next++

	record := Record{Text: text}
	if trimmed, ok := strings.CutSuffix(text, "\n"); ok {
		record = Record{Text: trimmed, Terminated: true}
	}

	if !utf8.ValidString(record.Text) {
		return Record{}, fmt.Errorf("%w: line %d", ErrInvalidUTF8, lineNo+1)
	}

	return record, nil
}

// All yields every remaining record. Iteration stops after the first error.
func (lr *Reader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			record, err := lr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(record, nil) {
				return
			}
		}
	}
}

// Count returns the number of records in r, validating them on the way.
func Count(r io.Reader) (int, error) {
	lr := NewReader(r)
	n := 0
	for _, err := range lr.All() {
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Split is the in-memory form of Reader.
func Split(text string) []Record {
	var records []Record
	for text != "" {
		head, rest, found := strings.Cut(text, "\n")
		records = append(records, Record{Text: head, Terminated: found})
		text = rest
	}
	return records
}
