package slice

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse failures wrap one of these.
var (
	// ErrInvalidSpec is returned for text that is not a slice expression.
	ErrInvalidSpec = errors.New("invalid slice specification")
	// ErrOutOfRange is returned for an index that has no successor.
	ErrOutOfRange  = errors.New("index out of range")
)

// Bound is an optional signed index.
type Bound struct {
	value int
	set   bool
}

// Open is the absent bound.
var Open = Bound{}

// At returns a bound set to n.
func At(n int) Bound {
	return Bound{value: n, set: true}
}

// Value returns the index and whether the bound is set.
func (b Bound) Value() (int, bool) {
	return b.value, b.set
}

// IsSet reports whether the bound was given.
func (b Bound) IsSet() bool {
	return b.set
}

func (b Bound) negative() bool {
	return b.set && b.value < 0
}

// String returns the index, or "" for an open bound.
func (b Bound) String() string {
	if !b.set {
		return ""
	}
	return strconv.Itoa(b.value)
}

// Spec is a parsed slice expression. The zero value selects everything.
type Spec struct {
	start Bound
	end   Bound
}

// New builds a spec from its two bounds.
func New(start, end Bound) Spec {
	return Spec{start: start, end: end}
}

// Start returns the lower bound.
func (s Spec) Start() Bound { return s.start }

// End returns the exclusive upper bound.
func (s Spec) End() Bound { return s.end }

// NeedsLength reports whether either bound counts from the end of the sequence.
func (s Spec) NeedsLength() bool {
	return s.start.negative() || s.end.negative()
}

// String renders the spec in start:end form.
func (s Spec) String() string {
	return s.start.String() + ":" + s.end.String()
}

// Parse reads N, N:M, :M, N: and : expressions. Segments after the second
// colon are ignored.
func Parse(text string) (Spec, error) {
	if strings.Contains(text, ":") {
		parts := strings.Split(text, ":")

		start, err := parseBound(parts[0])
		if err != nil {
			return Spec{}, fmt.Errorf("%w %q: %w", ErrInvalidSpec, text, err)
		}

		end, err := parseBound(parts[1])
		if err != nil {
			return Spec{}, fmt.Errorf("%w %q: %w", ErrInvalidSpec, text, err)
		}

		return Spec{start: start, end: end}, nil
	}

	pos, err := strconv.Atoi(text)
	if err != nil {
		return Spec{}, fmt.Errorf("%w %q: %w", ErrInvalidSpec, text, numError(err))
	}

	// -1:0 would normalize to an empty window; keep the last element instead.
	if pos == -1 {
		return Spec{start: At(-1)}, nil
	}

	if pos == math.MaxInt {
		return Spec{}, fmt.Errorf("%w %q: %w", ErrInvalidSpec, text, ErrOutOfRange)
	}

	return Spec{start: At(pos), end: At(pos + 1)}, nil
}

// Segments reports how many colon-separated segments text holds.
func Segments(text string) int {
	return strings.Count(text, ":") + 1
}

func parseBound(segment string) (Bound, error) {
	if segment == "" {
		return Open, nil
	}

	n, err := strconv.Atoi(segment)
	if err != nil {
		return Open, numError(err)
	}

	return At(n), nil
}

func numError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		if errors.Is(numErr.Err, strconv.ErrRange) {
			return ErrOutOfRange
		}
		return fmt.Errorf("%q is not an integer", numErr.Num)
	}
	return err
}
