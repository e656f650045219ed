package slice

// Length is the size of a sequence when it can be had without consuming it.
type Length struct {
	n     int
	known bool
}

// Unknown marks a sequence whose size is only available after draining it.
var Unknown = Length{}

// Known returns the length of a sequence of n items.
func Known(n int) Length {
	return Length{n: n, known: true}
}

// Value returns the length and whether it is known.
func (l Length) Value() (int, bool) {
	return l.n, l.known
}

// Window is a spec resolved against a length. Start may be negative and End
// may exceed the length; nothing is clamped.
type Window struct {
	Start int
	End   Bound
}

// Contains reports whether position p falls inside the window.
func (w Window) Contains(p int) bool {
	if p < w.Start {
		return false
	}
	end, ok := w.End.Value()
	return !ok || p < end
}

// Past reports whether p and every later position lie beyond the window.
func (w Window) Past(p int) bool {
	end, ok := w.End.Value()
	return ok && p >= end
}

// Empty reports whether no position of a sequence of the given length can
// fall inside the window.
func (w Window) Empty(length int) bool {
	if w.Start >= length {
		return true
	}
	end, ok := w.End.Value()
	return ok && w.Start >= end
}

// Normalize converts negative bounds into absolute indices. With an unknown
// length the bounds pass through unchanged, so callers must resolve the
// length first whenever s.NeedsLength().
func Normalize(s Spec, length Length) Window {
	start, _ := s.start.Value()

	n, known := length.Value()
	if !known {
		return Window{Start: start, End: s.end}
	}

	if start < 0 {
		start += n
	}

	end := s.end
	if v, ok := end.Value(); ok && v < 0 {
		end = At(n + v)
	}

	return Window{Start: start, End: end}
}
