// Package errs defines the error taxonomy shared by the tool dispatcher,
// the downstream clients, and the transports.
//
// Every failure that crosses a package boundary carries a Code so callers
// can branch on the kind of failure without string matching. The HTTP
// bridge and the MCP transport both flatten errors to their message text;
// the codes exist for in-process routing (e.g. "was this a timeout?") and
// for the audit log.
package errs

import (
	"errors"
	"fmt"
)

// Code identifies a failure category.
type Code string

const (
	// CodeInvalidArgument means caller input failed validation or
	// identifier resolution found nothing to resolve.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeNotFound means a search-by-name or batch fetch yielded nothing.
	CodeNotFound Code = "NOT_FOUND"
	// CodeNotConfigured means a required external credential is absent.
	CodeNotConfigured Code = "NOT_CONFIGURED"
	// CodeHTTP means a downstream collaborator answered non-2xx.
	CodeHTTP Code = "HTTP_ERROR"
	// CodeTimeout means a downstream call exceeded its deadline.
	CodeTimeout Code = "TIMEOUT"
	// CodeUnknownTool means dispatch was attempted on an unregistered name.
	CodeUnknownTool Code = "UNKNOWN_TOOL"
	// CodeRouter means the free-text router did not produce a usable plan.
	CodeRouter Code = "ROUTER_ERROR"
	// CodeInvalidPayload means list normalization received a value that
	// is neither a sequence nor an object.
	CodeInvalidPayload Code = "INVALID_PAYLOAD"
)

// Error is a coded error. Status and Body are populated only for
// CodeHTTP, where they carry the downstream response verbatim.
type Error struct {
	Code    Code
	Message string
	Status  int
	Body    string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HTTPError creates a CodeHTTP error carrying the downstream status line
// and raw body.
func HTTPError(status int, statusText, body string) *Error {
	return &Error{
		Code:    CodeHTTP,
		Message: fmt.Sprintf("HTTP %d %s: %s", status, statusText, body),
		Status:  status,
		Body:    body,
	}
}

// CodeOf returns the code of err, or "" if err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
