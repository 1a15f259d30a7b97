// Package errors provides structured error types for bcalm2dot.
//
// Every stage of the conversion pipeline reports failures with a
// machine-readable [Code] so the CLI can print a single, self-describing
// message and tests can assert on the failure category without matching
// strings.
//
// # Error Codes
//
//   - SYNTAX_ERROR: malformed header/sequence alternation
//   - UNKNOWN_NUCLEOTIDE: a sequence character outside A, C, G, T
//   - MALFORMED_COUNT, MALFORMED_LINK: numeric header fields that do not parse
//   - DANGLING_LINK: a link to a node index that was never declared
//   - IO_FAILURE: read/write failures on the surrounding streams
//   - RENDERER_NOT_FOUND, RENDER_FAILED, INVALID_FORMAT: rendering stage
//   - INVALID_CONFIG, INVALID_INPUT: configuration and command line
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Attach a 1-based input line
//	err := errors.WrapLine(errors.ErrCodeUnknownNucleotide, 12, cause, "invalid sequence")
//
// Domain packages may also define their own error structs; implementing
// [Coder] makes them visible to [Is] and [GetCode].
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input format errors
	ErrCodeSyntax            Code = "SYNTAX_ERROR"
	ErrCodeUnknownNucleotide Code = "UNKNOWN_NUCLEOTIDE"
	ErrCodeMalformedCount    Code = "MALFORMED_COUNT"
	ErrCodeMalformedLink     Code = "MALFORMED_LINK"
	ErrCodeDanglingLink      Code = "DANGLING_LINK"

	// Stream errors
	ErrCodeIO Code = "IO_FAILURE"

	// Rendering errors
	ErrCodeRendererNotFound Code = "RENDERER_NOT_FOUND"
	ErrCodeRenderFailed     Code = "RENDER_FAILED"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"

	// Configuration and command-line errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Coder is implemented by error types that carry their own [Code].
type Coder interface {
	Code() Code
}

// Error is a structured error with a code, an optional input line and an
// optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Line    int    // 1-based input line, 0 when not applicable
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// WrapLine is like [Wrap] but records the 1-based input line the failure
// refers to.
func WrapLine(code Code, line int, cause error, format string, args ...any) *Error {
	e := Wrap(code, cause, format, args...)
	e.Line = line
	return e
}

// Is reports whether err has the given error code.
// The outermost coded error in the chain decides.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case Coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// GetLine returns the first non-zero input line recorded in the error chain.
func GetLine(err error) int {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			if e.Line > 0 {
				return e.Line
			}
		case interface{ LineNumber() int }:
			return e.LineNumber()
		}
		err = errors.Unwrap(err)
	}
	return 0
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (with line and cause) without the
// code prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Cause != nil {
		msg += ": " + UserMessage(e.Cause)
	}
	return msg
}
