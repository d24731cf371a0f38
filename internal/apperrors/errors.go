package apperrors

import (
	"fmt"
	"strings"
)

// MaxDiagnosticLength bounds the tool output carried by a ProcessError.
const MaxDiagnosticLength = 500

// ProcessError represents an external tool that could not be started or exited non-zero.
// ExitCode is -1 when the process never ran.
type ProcessError struct {
	Tool     string
	ExitCode int
	Output   string
	Err      error
}

// Error implements the error interface.
func (e *ProcessError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s could not be started: %v", e.Tool, e.Err)
	}
	if e.Output == "" {
		return fmt.Sprintf("%s failed with exit code %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s failed with exit code %d: %s", e.Tool, e.ExitCode, e.Output)
}

// Unwrap exposes the underlying exec error.
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ProcessError) Is(target error) bool {
	_, ok := target.(*ProcessError)
	return ok
}

// NewProcessError creates a ProcessError, truncating the captured output for reporting.
func NewProcessError(tool string, exitCode int, output string, err error) *ProcessError {
	return &ProcessError{
		Tool:     tool,
		ExitCode: exitCode,
		Output:   Truncate(strings.TrimSpace(output), MaxDiagnosticLength),
		Err:      err,
	}
}

// OutputMissingError is returned when a tool exited cleanly but its expected output
// file does not exist or is empty.
type OutputMissingError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *OutputMissingError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Path)
}

// Is allows for error checking with errors.Is().
func (e *OutputMissingError) Is(target error) bool {
	_, ok := target.(*OutputMissingError)
	return ok
}

// NewOutputMissingError creates an OutputMissingError with the given fixed message.
func NewOutputMissingError(path, message string) *OutputMissingError {
	return &OutputMissingError{Path: path, Message: message}
}

// ServiceError is returned when a remote HTTP service answers with a non-success status.
type ServiceError struct {
	URL        string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API error: %d", e.StatusCode)
	}
	return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Body)
}

// Is allows for error checking with errors.Is().
func (e *ServiceError) Is(target error) bool {
	_, ok := target.(*ServiceError)
	return ok
}

// NewServiceError creates a ServiceError, truncating the body for reporting.
func NewServiceError(url string, statusCode int, body string) *ServiceError {
	return &ServiceError{
		URL:        url,
		StatusCode: statusCode,
		Body:       Truncate(strings.TrimSpace(body), MaxDiagnosticLength),
	}
}

// DecodeError is returned when uploaded text cannot be decoded by any supported encoding.
type DecodeError struct {
	Tried []string
	Err   error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode text (tried %s): %v", strings.Join(e.Tried, ", "), e.Err)
}

// Unwrap exposes the last decoder error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *DecodeError) Is(target error) bool {
	_, ok := target.(*DecodeError)
	return ok
}

// Truncate shortens s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
