// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode defines supported error codes used across the engine and transports
// Values are stable for wire compatibility; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic is for panics recovered by middleware
	ErrorCodePanic

	// ErrorCodeUnavailable is for transient errors where retry may succeed
	ErrorCodeUnavailable

	// ErrorCodeInvalidArgument is for bad input parameters
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is for validation failures (request bodies, catalogue data)
	ErrorCodeValidation

	// ErrorCodeJSON is for JSON parsing errors
	ErrorCodeJSON

	// ErrorCodeNotFound is for missing resources
	ErrorCodeNotFound

	// ErrorCodeRange is for years or dates outside a calendar's coverage
	ErrorCodeRange

	// ErrorCodeConfig is for unknown entities, subdivisions or categories
	ErrorCodeConfig

	// ErrorCodeShiftExhausted is for observed-date shifts that ran out of room
	ErrorCodeShiftExhausted
)

// String names the code for logs
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodePanic:
		return "panic"
	case ErrorCodeUnavailable:
		return "unavailable"
	case ErrorCodeInvalidArgument:
		return "invalid_argument"
	case ErrorCodeValidation:
		return "validation"
	case ErrorCodeJSON:
		return "json"
	case ErrorCodeNotFound:
		return "not_found"
	case ErrorCodeRange:
		return "range"
	case ErrorCodeConfig:
		return "config"
	case ErrorCodeShiftExhausted:
		return "shift_exhausted"
	default:
		return "unknown"
	}
}

// HTTPStatusCode turns an ErrorCode into an http status code
func HTTPStatusCode(c ErrorCode) int {
	switch c {
	case ErrorCodeNotFound, ErrorCodeConfig:
		return http.StatusNotFound
	case ErrorCodeInvalidArgument, ErrorCodeRange:
		return http.StatusUnprocessableEntity
	case ErrorCodeValidation, ErrorCodeJSON:
		return http.StatusBadRequest
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeShiftExhausted, ErrorCodePanic, ErrorCodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing; field is optional (for validation)
// orig is the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
}

// Wire is the JSON-serializable form returned by the API
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// ToWire converts an *Error to a Wire payload
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom converts any error into a Wire payload with best-effort mapping
// If err is nil, returns the zero-value Wire (no error)
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus returns the mapped HTTP status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithField attaches a field to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Rewrap keeps the code and field of a project error and prefixes its message;
// foreign errors are wrapped with fallback
func Rewrap(err error, fallback ErrorCode, format string, a ...any) error {
	if err == nil {
		return nil
	}
	out := &Error{code: fallback, msg: fmt.Sprintf(format, a...), orig: err}
	if e, ok := As(err); ok {
		out.code, out.field = e.code, e.field
	}
	return out
}

// Sugar

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// Validationf returns a validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// JSONErrf returns a JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf returns a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unavailablef returns an unavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// Internalf returns a generic internal error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }

// Rangef returns a range error: a year or date outside what a calendar covers
func Rangef(format string, a ...any) error { return Newf(ErrorCodeRange, format, a...) }

// Configf returns a config error: an entity, subdivision or category that does not exist
func Configf(format string, a ...any) error { return Newf(ErrorCodeConfig, format, a...) }

// ShiftExhaustedf returns a shift exhausted error
func ShiftExhaustedf(format string, a ...any) error {
	return Newf(ErrorCodeShiftExhausted, format, a...)
}
