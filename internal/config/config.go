package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jacoelho/getitem/internal/output"
	"github.com/jacoelho/getitem/internal/slice"
)

var (
	ErrNoArguments        = errors.New("no arguments provided")
	ErrHelp               = errors.New("help requested")
	ErrMissingSpec        = errors.New("row_spec and col_spec are required")
	ErrUnexpectedArgument = errors.New("unexpected argument")
	ErrMissingValue       = errors.New("flag requires a value")
	ErrUnexpectedValue    = errors.New("flag does not take a value")
	ErrInvalidFormat      = errors.New("invalid output format")
	ErrInvalidJobs        = errors.New("--jobs must be a positive integer")
)

// Config represents the complete configuration for the getitem tool.
type Config struct {
	// InputFile is read twice when set; standard input is used otherwise.
	InputFile string

	RowText string
	ColText string
	Rows    slice.Spec
	Columns slice.Spec

	Format  output.Format
	Workers int
	Debug   bool
}

// Validate checks values that Parse cannot reject on its own.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w, got: %d", ErrInvalidJobs, c.Workers)
	}
	if _, err := output.ParseFormat(string(c.Format)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return nil
}

// Parse walks args by hand instead of using package flag: anything that is not
// a known option is positional, so specs such as -2 or -3:-1 need no quoting.
func Parse(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, ErrNoArguments
	}

	cfg := &Config{
		Format:  output.FormatText,
		Workers: 1,
	}

	var (
		positional []string
		format     string
		jobs       string
	)

	rest := args[1:]
	for len(rest) > 0 {
		arg := rest[0]
		rest = rest[1:]

		name, inline, hasInline := splitLong(arg)

		var target *string
		switch name {
		case "-h", "--help":
			return nil, ErrHelp
		case "--debug":
			if hasInline {
				return nil, fmt.Errorf("%w: %s", ErrUnexpectedValue, arg)
			}
			cfg.Debug = true
			continue
		case "-f", "--file":
			target = &cfg.InputFile
		case "-o", "--output":
			target = &format
		case "-j", "--jobs":
			target = &jobs
		default:
			if len(positional) == 2 {
				return nil, fmt.Errorf("%w %s", ErrUnexpectedArgument, arg)
			}
			positional = append(positional, arg)
			continue
		}

		switch {
		case hasInline:
			*target = inline
		case len(rest) > 0:
			*target = rest[0]
			rest = rest[1:]
		default:
			return nil, fmt.Errorf("%w: %s", ErrMissingValue, arg)
		}

		if *target == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingValue, arg)
		}
	}

	if len(positional) < 2 {
		return nil, ErrMissingSpec
	}

	cfg.RowText, cfg.ColText = positional[0], positional[1]

	var err error
	if cfg.Rows, err = slice.Parse(cfg.RowText); err != nil {
		return nil, fmt.Errorf("row_spec: %w", err)
	}
	if cfg.Columns, err = slice.Parse(cfg.ColText); err != nil {
		return nil, fmt.Errorf("col_spec: %w", err)
	}

	if format != "" {
		parsed, err := output.ParseFormat(format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
		cfg.Format = parsed
	}

	if jobs != "" {
		n, err := strconv.Atoi(jobs)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w, got: %s", ErrInvalidJobs, jobs)
		}
		cfg.Workers = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitLong separates --name=value. Short options and specs are returned as is.
func splitLong(arg string) (name, value string, ok bool) {
	if !strings.HasPrefix(arg, "--") {
		return arg, "", false
	}
	name, value, ok = strings.Cut(arg, "=")
	return name, value, ok
}

// Usage returns command usage text.
func Usage() string {
	return `getitem - select rows and whitespace-separated columns with slice syntax

Usage:
  getitem [-h] [-f FILE] [-o FORMAT] [-j N] [--debug] row_spec col_spec

Slices follow Python: N, N:M, :M, N:, and : with negative indices counted
from the end. Columns keep their original alignment in the output.

When FILE is given it is read twice (once to count lines) instead of being
buffered. Standard input is only buffered when a negative row index needs
the total line count.

Options:
  -f, --file FILE       Read FILE instead of standard input
  -o, --output FORMAT   Output format: text, json or yaml (default: text)
  -j, --jobs N          Project lines with N workers (default: 1)
  --debug               Write debug logs to standard error
  -h, --help            Show this help message

Examples:
  cat myfile | getitem :5 0      # Column 0 of the first 5 rows
  cat myfile | getitem 0 :       # The whole first row
  cat myfile | getitem -10: 0:2  # First 2 columns of the last 10 rows
  cat myfile | getitem -2:-1 :   # All fields of the second to last row
  getitem -f ls.txt -2 -3:-1     # Two fields before the last, second to last row`
}
