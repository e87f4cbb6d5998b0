package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

// Process exit codes.
const (
	ExitSuccess      = 0 // command succeeded
	ExitFailure      = 1 // input refused: fault raised, document invalid, scenario failed
	ExitCommandError = 2 // the command itself could not run: bad flags, missing files, bad config
)

// ErrCodeGeneric labels reported errors that carry no fault code.
const ErrCodeGeneric = "E_GENERIC"

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int    // ExitFailure or ExitCommandError
	Message string // short description, or the fault code once reported
	Err     error  // cause, may be nil

	// Reported is set when the error was already written to the output,
	// so main must not print it again.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError returns an unreported error with the given exit code.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches an exit code to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the exit code carried by err, or ExitFailure when
// err is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// CLIResponse is the envelope written in JSON mode.
type CLIResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
}

// CLIError describes a failure. Code is a fault code such as
// INSUFFICIENT_DEPOSIT, or an E_ code for errors raised by the CLI itself.
type CLIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// OutputFormatter writes command results as text or as a JSON envelope.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics; Writer when nil
	Verbose   bool
}

func (f *OutputFormatter) json() bool {
	return f.Format == "json"
}

// Success writes data. Text mode prints its fmt representation, so result
// types implement String for a readable form.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.json() {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: StatusOK, Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error writes a failure. Details are printed in text mode only with
// --verbose, in sorted key order.
func (f *OutputFormatter) Error(code, message string, details map[string]string) error {
	if f.json() {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: StatusError,
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && len(details) > 0 {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fault writes err with its fault code and details, then returns a
// reported ExitError wrapping it. The exit code is ExitFailure unless err
// already carries one.
func (f *OutputFormatter) Fault(err error) error {
	code := ErrCodeGeneric
	var details map[string]string
	var fe *fault.Error
	if errors.As(err, &fe) {
		code = string(fe.Code)
		details = fe.Details
	}
	if werr := f.Error(code, err.Error(), details); werr != nil {
		return werr
	}
	return &ExitError{Code: GetExitCode(err), Message: code, Err: err, Reported: true}
}

// VerboseLog prints a diagnostic line when --verbose is set. It goes to
// ErrWriter so JSON on Writer stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
