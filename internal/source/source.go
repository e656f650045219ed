package source

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"sync"

	"github.com/jacoelho/getitem/internal/line"
	"github.com/jacoelho/getitem/internal/slice"
)

var (
	// ErrUnreadable wraps failures to open or read the input.
	ErrUnreadable = errors.New("could not read input")
	// ErrConsumed is returned when a Stream is iterated a second time.
	ErrConsumed   = errors.New("input stream already consumed")
)

// Source supplies line records and, when it is cheap, their total count.
type Source interface {
	// Length reports the number of records, or slice.Unknown when counting
	// would consume the source.
	Length() (slice.Length, error)
	// Lines yields the records in order.
	Lines() iter.Seq2[line.Record, error]
	// Name identifies the source in logs and messages.
	Name() string
}

// File is a re-readable source: one pass to count, another for content.
type File struct {
	path string
}

// NewFile returns a source reading the file at path. The file is not opened
// until Length or Lines is called.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string {
	return f.path
}

// Length counts the records with a full pass over the file, validating
// them on the way.
func (f *File) Length() (slice.Length, error) {
	file, err := f.open()
	if err != nil {
		return slice.Unknown, err
	}
	defer file.Close()

	n, err := line.Count(file)
	if err != nil {
		return slice.Unknown, f.wrap(err)
	}

	return slice.Known(n), nil
}

// Lines reopens the file on every call.
func (f *File) Lines() iter.Seq2[line.Record, error] {
	return func(yield func(line.Record, error) bool) {
		file, err := f.open()
		if err != nil {
			yield(line.Record{}, err)
			return
		}
		defer file.Close()

		for record, err := range line.NewReader(file).All() {
			if err != nil {
				yield(line.Record{}, f.wrap(err))
				return
			}
			if !yield(record, nil) {
				return
			}
		}
	}
}

func (f *File) open() (*os.File, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrUnreadable, f.path, err)
	}
	return file, nil
}

func (f *File) wrap(err error) error {
	if errors.Is(err, line.ErrInvalidUTF8) {
		return fmt.Errorf("%s: %w", f.path, err)
	}
	return fmt.Errorf("%w %s: %w", ErrUnreadable, f.path, err)
}

// Stream is a single-use source such as standard input or a pipe. Its length
// is never known up front.
type Stream struct {
	name     string
	r        io.Reader
	mu       sync.Mutex
	consumed bool
}

// NewStream wraps r, reported as name in logs and errors.
func NewStream(name string, r io.Reader) *Stream {
	return &Stream{name: name, r: r}
}

func (s *Stream) Name() string {
	return s.name
}

// Length is always slice.Unknown.
func (s *Stream) Length() (slice.Length, error) {
	return slice.Unknown, nil
}

// Lines may be iterated once; later calls yield ErrConsumed.
func (s *Stream) Lines() iter.Seq2[line.Record, error] {
	return func(yield func(line.Record, error) bool) {
		s.mu.Lock()
		if s.consumed {
			s.mu.Unlock()
			yield(line.Record{}, fmt.Errorf("%s: %w", s.name, ErrConsumed))
			return
		}
		s.consumed = true
		s.mu.Unlock()

		for record, err := range line.NewReader(s.r).All() {
			if err != nil {
				if !errors.Is(err, line.ErrInvalidUTF8) {
					err = fmt.Errorf("%w %s: %w", ErrUnreadable, s.name, err)
				} else {
					err = fmt.Errorf("%s: %w", s.name, err)
				}
				yield(line.Record{}, err)
				return
			}
			if !yield(record, nil) {
				return
			}
		}
	}
}
