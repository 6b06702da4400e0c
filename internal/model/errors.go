// Package model defines the error and exit-code types shared by the
// docpub CLI commands.
//
// Every failure in docpub is fatal: there are no retries, rollbacks, or
// partial successes. A command either finishes with ExitSuccess or
// aborts on the first error with ExitFailure. The CLIError type exists
// so that each layer can attach a step-distinguishing message while the
// CLI layer decides how to print it and which code to exit with.
package model

import "fmt"

// ExitCode is the process exit status reported to the OS.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitFailure indicates any failure: a missing external tool, a git
	// subcommand returning non-zero, a dirty working tree after commit,
	// a push failure, or bad usage.
	ExitFailure ExitCode = 1
)

// CLIError is an error that carries an exit code and a human-readable
// message naming the step that failed.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message names the failed step (e.g. "git commit failed").
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
