package rows

import (
	"iter"

	"go.uber.org/zap"

	"github.com/jacoelho/getitem/internal/line"
	"github.com/jacoelho/getitem/internal/slice"
	"github.com/jacoelho/getitem/internal/source"
)

// Row is a selected record together with its original 0-based position.
type Row struct {
	Index  int
	Record line.Record
}

// Selector applies a row spec to a source whose length may be unknown.
type Selector struct {
	src      source.Source
	spec     slice.Spec
	log      *zap.Logger
	buffered bool
}

// Option configures a Selector.
type Option func(*Selector)

// WithLogger sets the logger for selection decisions. The default discards.
func WithLogger(log *zap.Logger) Option {
	return func(s *Selector) {
		s.log = log
	}
}

// New returns a selector of spec over src.
func New(src source.Source, spec slice.Spec, opts ...Option) *Selector {
	s := &Selector{
		src:  src,
		spec: spec,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Buffered reports whether the whole source had to be read into memory.
func (s *Selector) Buffered() bool {
	return s.buffered
}

// Rows yields the selected rows in source order. The source is only asked
// for its length when a bound counts from the end; if it cannot tell, the
// source is drained into a buffer first. The source is always read to the
// end, so a decoding error anywhere in the input is reported.
func (s *Selector) Rows() iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		length := slice.Unknown
		if s.spec.NeedsLength() {
			l, err := s.src.Length()
			if err != nil {
				yield(Row{}, err)
				return
			}
			length = l
		}

		if _, known := length.Value(); s.spec.NeedsLength() && !known {
			s.fromBuffer(yield)
			return
		}

		s.stream(length, yield)
	}
}

func (s *Selector) stream(length slice.Length, yield func(Row, error) bool) {
	window := slice.Normalize(s.spec, length)
	if n, known := length.Value(); known && window.Empty(n) {
		s.log.Debug("row window is empty",
			zap.String("spec", s.spec.String()),
			zap.Int("length", n))
		return
	}

	s.log.Debug("streaming rows",
		zap.String("source", s.src.Name()),
		zap.String("spec", s.spec.String()),
		zap.Int("start", window.Start))

	p := 0
	for record, err := range s.src.Lines() {
		if err != nil {
			yield(Row{}, err)
			return
		}
		// Records past the window are still read so that undecodable input
		// after the selection fails the run.
		if window.Contains(p) {
			if !yield(Row{Index: p, Record: record}, nil) {
				return
			}
		}
		p++
	}
}

func (s *Selector) fromBuffer(yield func(Row, error) bool) {
	s.buffered = true

	var buffer []line.Record
	for record, err := range s.src.Lines() {
		if err != nil {
			yield(Row{}, err)
			return
		}
		buffer = append(buffer, record)
	}

	window := slice.Normalize(s.spec, slice.Known(len(buffer)))

	s.log.Debug("buffered source to resolve negative bound",
		zap.String("source", s.src.Name()),
		zap.String("spec", s.spec.String()),
		zap.Int("length", len(buffer)),
		zap.Int("start", window.Start))

	if window.Empty(len(buffer)) {
		return
	}

	for p, record := range buffer {
		if window.Past(p) {
			return
		}
		if window.Contains(p) {
			if !yield(Row{Index: p, Record: record}, nil) {
				return
			}
		}
	}
}
