package domain

import (
	"errors"
	"fmt"
)

// Error codes. Handlers map them onto HTTP statuses.
const (
	EINVALID   = "invalid"
	ENOTFOUND  = "not_found"
	ECONFLICT  = "conflict"
	ETOOLARGE  = "too_large"
	ERATELIMIT = "rate_limit"
	EINTERNAL  = "internal"
	ENOTIMPL   = "not_impl"
)

// internalMessage replaces the message of internal errors shown to users.
const internalMessage = "An internal error occurred. Please try again later."

// Error is an application error. Code is machine readable, Message is safe
// to show to the user unless Code is EINTERNAL, and Op names the failing
// operation, e.g. "LeadService.Upload".
type Error struct {
	Code    string
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Op + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code, op, message string, err error) *Error {
	return &Error{Code: code, Op: op, Message: message, Err: err}
}

// Errorf builds an Error with a formatted message.
func Errorf(code, op, format string, args ...any) *Error {
	return newError(code, op, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches a code and a user-facing message to err.
func Wrap(err error, code, op, message string) *Error {
	return newError(code, op, message, err)
}

// NotFound reports a missing resource by id.
func NotFound(op, resource, id string) *Error {
	return newError(ENOTFOUND, op, fmt.Sprintf("%s with ID %q not found", resource, id), nil)
}

func Invalid(op, message string) *Error {
	return newError(EINVALID, op, message, nil)
}

func TooLarge(op, message string) *Error {
	return newError(ETOOLARGE, op, message, nil)
}

// Internal wraps an unexpected failure. Its message is logged, never shown.
func Internal(err error, op, message string) *Error {
	return newError(EINTERNAL, op, message, err)
}

// asError finds the outermost *Error in err's chain.
func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// ErrorCode returns the code of err. Errors that carry none are internal.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError(err); ok {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns a message fit for the user.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError(err); ok && e.Code != EINTERNAL {
		return e.Message
	}
	return internalMessage
}

// ErrorOp returns the failing operation, or "" when err carries none.
func ErrorOp(err error) string {
	if e, ok := asError(err); ok {
		return e.Op
	}
	return ""
}

// FieldError describes one invalid request field. Loc is the path to the
// field, e.g. ["body", "file"].
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError collects field-level problems of one request.
type ValidationError struct {
	Op     string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		f := e.Fields[0]
		return fmt.Sprintf("%s: %v: %s", e.Op, f.Loc, f.Msg)
	}
	return fmt.Sprintf("%s: %d invalid fields", e.Op, len(e.Fields))
}

// Add appends a field problem and returns e.
func (e *ValidationError) Add(loc []string, msg, typ string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Loc: loc, Msg: msg, Type: typ})
	return e
}

// MissingField reports a required body field that was not sent.
func MissingField(op, field string) *ValidationError {
	return (&ValidationError{Op: op}).Add([]string{"body", field}, "Field required", "missing")
}
