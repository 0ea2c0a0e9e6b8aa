// Package errs defines the typed errors the pipeline raises. Every error
// carries a machine code, a retryable flag, and structured details so the
// caller can render a useful message without string matching.
package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code is a stable, machine-readable error code.
type Code string

const (
	// CodeConfiguration: a required credential or setting is missing; the
	// call was never attempted.
	CodeConfiguration Code = "E010"
	// CodeTransport: a network/availability failure talking to a
	// collaborator.
	CodeTransport Code = "E020"
	// CodeMalformedOutput: a collaborator responded but the content violates
	// its output contract.
	CodeMalformedOutput Code = "E030"
	// CodeNoSegments: the oracle returned a well-formed but empty result.
	CodeNoSegments Code = "E031"
	// CodeMismatchedInput: an internal invariant between segments, words and
	// layouts was violated; a programming or data-integrity bug.
	CodeMismatchedInput Code = "E040"
)

// Error is the pipeline's structured error type.
type Error struct {
	Code      Code
	Message   string
	Retryable bool
	Details   map[string]any
	Cause     error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Details[k]))
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail records one structured detail and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// NotRetryable marks the error as terminal and returns the receiver.
func (e *Error) NotRetryable() *Error {
	e.Retryable = false
	return e
}

// Configuration reports a missing credential or setting.
func Configuration(msg string) *Error {
	return &Error{Code: CodeConfiguration, Message: msg}
}

// Transport reports a network/availability failure. Retryable by default.
func Transport(msg string) *Error {
	return &Error{Code: CodeTransport, Message: msg, Retryable: true}
}

// MalformedOutput reports a contract-violating collaborator response.
func MalformedOutput(msg string) *Error {
	return &Error{Code: CodeMalformedOutput, Message: msg}
}

// NoSegments reports a well-formed empty oracle result.
func NoSegments(msg string) *Error {
	return &Error{Code: CodeNoSegments, Message: msg}
}

// MismatchedInput reports an internal invariant violation.
func MismatchedInput(msg string) *Error {
	return &Error{Code: CodeMismatchedInput, Message: msg}
}

// CodeOf returns the code of err, or the empty string for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsRetryable reports whether err is a retryable pipeline error. Foreign
// errors are not retried: only failures the adapters have classified as
// transient qualify.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return CodeOf(err) == CodeConfiguration }

// IsTransport reports whether err is a transport error.
func IsTransport(err error) bool { return CodeOf(err) == CodeTransport }

// IsMalformedOutput reports whether err is a malformed-output error.
func IsMalformedOutput(err error) bool { return CodeOf(err) == CodeMalformedOutput }

// IsNoSegments reports whether err is an empty-result error.
func IsNoSegments(err error) bool { return CodeOf(err) == CodeNoSegments }

// IsMismatchedInput reports whether err is an invariant-violation error.
func IsMismatchedInput(err error) bool { return CodeOf(err) == CodeMismatchedInput }
