package exit

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/getitem/internal/config"
)

const (
	// CodeOK is returned on success and for --help.
	CodeOK = 0
	// CodeError covers bad arguments, malformed specs and unreadable input.
	CodeError = 1
	// CodeUsage is returned when an option is missing its value or has one
	// it does not take.
	CodeUsage = 2
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success creates a successful exit result that outputs to stdout with exit code 0.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeOK,
		Message:  message,
	}
}

// Error creates an error exit result that outputs to stderr with exit code 1.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeError,
		Message:  message,
	}
}

// Errorf creates an error exit result with formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// FromError maps a failure to what the user sees and the process exit code.
// The result prints to stdout or stderr as given, so callers can substitute
// the process streams.
func FromError(err error, stdout, stderr io.Writer) *Result {
	r := classify(err)
	if r.Output == os.Stdout {
		r.Output = stdout
	} else {
		r.Output = stderr
	}
	return r
}

// classify picks message, code and process stream. Argument problems get the
// usage text; spec and input problems only the message.
func classify(err error) *Result {
	switch {
	case err == nil:
		return Success("")
	case errors.Is(err, config.ErrHelp):
		return Success(config.Usage() + "\n")
	case errors.Is(err, config.ErrMissingValue),
		errors.Is(err, config.ErrUnexpectedValue):
		r := Errorf("Error: %v\n", err)
		r.ExitCode = CodeUsage
		return r
	case errors.Is(err, config.ErrNoArguments),
		errors.Is(err, config.ErrMissingSpec):
		r := Errorf("%s\n", config.Usage())
		r.Output = os.Stdout
		return r
	case errors.Is(err, config.ErrUnexpectedArgument),
		errors.Is(err, config.ErrInvalidFormat),
		errors.Is(err, config.ErrInvalidJobs):
		return Errorf("Error: %v\n\n%s\n", err, config.Usage())
	default:
		return Errorf("Error: %v\n", err)
	}
}
