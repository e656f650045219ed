package exit

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jacoelho/getitem/internal/config"
	"github.com/jacoelho/getitem/internal/line"
	"github.com/jacoelho/getitem/internal/slice"
	"github.com/jacoelho/getitem/internal/source"
)

func TestSuccess(t *testing.T) {
	message := "Operation completed successfully"
	result := Success(message)

	if result.ExitCode != 0 {
		t.Errorf("Success() ExitCode = %d, want 0", result.ExitCode)
	}

	if result.Message != message {
		t.Errorf("Success() Message = %q, want %q", result.Message, message)
	}

	if result.Output != os.Stdout {
		t.Error("Success() expected output to stdout")
	}
}

func TestErrorf(t *testing.T) {
	result := Errorf("Could not read %s (line %d)", "input.txt", 3)

	if result.ExitCode != 1 {
		t.Errorf("Errorf() ExitCode = %d, want 1", result.ExitCode)
	}

	expectedMessage := "Could not read input.txt (line 3)"
	if result.Message != expectedMessage {
		t.Errorf("Errorf() Message = %q, want %q", result.Message, expectedMessage)
	}

	if result.Output != os.Stderr {
		t.Error("Errorf() expected output to stderr")
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	result := &Result{
		Output:   &buf,
		ExitCode: 0,
		Message:  "test output",
	}

	result.Print()

	if buf.String() != "test output" {
		t.Errorf("Print() output = %q, want %q", buf.String(), "test output")
	}
}

func TestFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStdout bool
		wantUsage  bool
		contains   string
	}{
		{name: "help", err: config.ErrHelp, wantCode: CodeOK, wantStdout: true, wantUsage: true},
		{name: "missing spec", err: config.ErrMissingSpec, wantCode: CodeError, wantStdout: true, wantUsage: true},
		{name: "no arguments", err: config.ErrNoArguments, wantCode: CodeError, wantStdout: true, wantUsage: true},
		{
			name:     "missing flag value",
			err:      fmt.Errorf("%w: -f", config.ErrMissingValue),
			wantCode: CodeUsage,
			contains: "-f",
		},
		{
			name:     "value on a switch",
			err:      fmt.Errorf("%w: --debug=x", config.ErrUnexpectedValue),
			wantCode: CodeUsage,
			contains: "--debug=x",
		},
		{
			name:      "extra positional",
			err:       fmt.Errorf("%w 3", config.ErrUnexpectedArgument),
			wantCode:  CodeError,
			wantUsage: true,
			contains:  "unexpected argument 3",
		},
		{
			name:     "malformed spec",
			err:      fmt.Errorf("row_spec: %w \"x\"", slice.ErrInvalidSpec),
			wantCode: CodeError,
			contains: `"x"`,
		},
		{
			name:     "unreadable file",
			err:      fmt.Errorf("%w missing.txt: %w", source.ErrUnreadable, os.ErrNotExist),
			wantCode: CodeError,
			contains: "missing.txt",
		},
		{
			name:     "invalid text",
			err:      fmt.Errorf("stdin: %w: line 2", line.ErrInvalidUTF8),
			wantCode: CodeError,
			contains: "not valid UTF-8",
		},
		{name: "unknown", err: errors.New("boom"), wantCode: CodeError, contains: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			result := FromError(tt.err, &stdout, &stderr)
			if result.ExitCode != tt.wantCode {
				t.Fatalf("ExitCode = %d, want %d", result.ExitCode, tt.wantCode)
			}

			result.Print()

			written, silent := stderr.String(), stdout.String()
			if tt.wantStdout {
				written, silent = silent, written
			}
			if silent != "" {
				t.Fatalf("message went to the wrong stream: stdout %q stderr %q", stdout.String(), stderr.String())
			}
			if hasUsage := strings.Contains(written, "Usage:"); hasUsage != tt.wantUsage {
				t.Fatalf("usage shown = %v, want %v: %q", hasUsage, tt.wantUsage, written)
			}
			if !strings.Contains(written, tt.contains) {
				t.Fatalf("output %q does not contain %q", written, tt.contains)
			}
		})
	}
}
