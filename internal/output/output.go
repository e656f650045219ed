package output

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/getitem/internal/fields"
)

// Format determines how selected lines are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnsupportedFormat = errors.New("output format must be one of: text, json, yaml")

// ParseFormat accepts a format name case-insensitively; empty means text.
func ParseFormat(input string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", string(FormatText):
		return FormatText, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w, got: %s", ErrUnsupportedFormat, input)
	}
}

// Line is one projected row ready to be written.
type Line struct {
	Row        int
	Projection fields.Projection
}

// Writer emits lines in the order they are given.
type Writer interface {
	Write(l Line) error
	// Flush must be called once after the last line.
	Flush() error
}

// New returns a writer for format over w.
func New(w io.Writer, format Format) (Writer, error) {
	buf := bufio.NewWriter(w)

	switch format {
	case FormatText, "":
		return &textWriter{w: buf}, nil
	case FormatJSON:
		return &jsonWriter{w: buf, encoder: json.NewEncoder(buf)}, nil
	case FormatYAML:
		return &yamlWriter{w: buf}, nil
	default:
		return nil, fmt.Errorf("%w, got: %s", ErrUnsupportedFormat, format)
	}
}

type record struct {
	Row        int      `json:"row" yaml:"row"`
	Text       string   `json:"text" yaml:"text"`
	Fields     []string `json:"fields" yaml:"fields"`
	Terminated bool     `json:"terminated" yaml:"terminated"`
}

func toRecord(l Line) record {
	return record{
		Row:        l.Row,
		Text:       l.Projection.Text,
		Fields:     l.Projection.Texts(),
		Terminated: l.Projection.Terminated,
	}
}

// textWriter reproduces the input layout: no framing, original terminators.
type textWriter struct {
	w *bufio.Writer
}

func (t *textWriter) Write(l Line) error {
	_, err := t.w.WriteString(l.Projection.String())
	return err
}

func (t *textWriter) Flush() error {
	return t.w.Flush()
}

// jsonWriter writes one JSON object per line.
type jsonWriter struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

func (j *jsonWriter) Write(l Line) error {
	if err := j.encoder.Encode(toRecord(l)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (j *jsonWriter) Flush() error {
	return j.w.Flush()
}

// yamlWriter writes one sequence item per line, so the whole output is a
// single YAML sequence.
type yamlWriter struct {
	w     *bufio.Writer
	wrote bool
}

func (y *yamlWriter) Write(l Line) error {
	payload, err := yaml.Marshal([]record{toRecord(l)})
	if err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	y.wrote = true
	_, err = y.w.Write(payload)
	return err
}

func (y *yamlWriter) Flush() error {
	if !y.wrote {
		if _, err := y.w.WriteString("[]\n"); err != nil {
			return err
		}
	}
	return y.w.Flush()
}
