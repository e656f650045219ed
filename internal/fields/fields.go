// Package fields splits lines into whitespace-delimited fields and rebuilds
// column selections with the original alignment.
//
// Offsets are counted in user-perceived characters (extended grapheme
// clusters), so a field preceded by "é" written as e + U+0301 starts at
// offset 2, not 3.
package fields

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Field is a maximal run of non-whitespace characters in a line.
type Field struct {
	Text  string
	Start int
	End   int

	// byte span of Text inside the line
	from int
	to   int
}

// Tokenize returns the fields of text from left to right. Whitespace only
// separates fields; a blank line has none.
func Tokenize(text string) []Field {
	var (
		fields  []Field
		current Field
		inField bool
		offset  int
	)

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, _ := g.Positions()

		switch {
		case isSpace(g.Runes()):
			if inField {
				fields = append(fields, current.close(text, offset, from))
				inField = false
			}
		case !inField:
			current = Field{Start: offset, from: from}
			inField = true
		}

		offset++
	}

	if inField {
		fields = append(fields, current.close(text, offset, len(text)))
	}

	return fields
}

func (f Field) close(text string, end, to int) Field {
	f.End = end
	f.to = to
	f.Text = text[f.from:to]
	return f
}

func isSpace(cluster []rune) bool {
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return len(cluster) > 0
}
