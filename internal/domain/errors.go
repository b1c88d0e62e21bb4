// Package domain provides the canonical types and error taxonomy shared by
// the transport, registry, and storage layers.
package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the category of a procedure call error.
type Code string

const (
	// CodeParseError indicates malformed JSON in the query-string input or body.
	CodeParseError Code = "PARSE_ERROR"

	// CodeBadRequest indicates a structurally invalid request, such as a
	// batch input that is not an object.
	CodeBadRequest Code = "BAD_REQUEST"

	// CodeUnauthorized indicates a missing or failed authentication.
	CodeUnauthorized Code = "UNAUTHORIZED"

	// CodeForbidden indicates the caller is authenticated but not allowed.
	CodeForbidden Code = "FORBIDDEN"

	// CodeNotFound indicates the named procedure does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// CodeMethodNotSupported indicates the HTTP method is not servable
	// over this transport.
	CodeMethodNotSupported Code = "METHOD_NOT_SUPPORTED"

	// CodeTimeout indicates the call exceeded its deadline.
	CodeTimeout Code = "TIMEOUT"

	// CodeConflict indicates a state conflict.
	CodeConflict Code = "CONFLICT"

	// CodePreconditionFailed indicates a failed precondition.
	CodePreconditionFailed Code = "PRECONDITION_FAILED"

	// CodePayloadTooLarge indicates the input exceeded a size limit.
	CodePayloadTooLarge Code = "PAYLOAD_TOO_LARGE"

	// CodeTooManyRequests indicates rate limiting was triggered.
	CodeTooManyRequests Code = "TOO_MANY_REQUESTS"

	// CodeClientClosedRequest indicates the client went away mid-call.
	CodeClientClosedRequest Code = "CLIENT_CLOSED_REQUEST"

	// CodeNotImplemented indicates the procedure is registered but not built.
	CodeNotImplemented Code = "NOT_IMPLEMENTED"

	// CodeInternal is the default for any uncategorized failure.
	CodeInternal Code = "INTERNAL_SERVER_ERROR"
)

// Error is a canonical procedure call error. Procedures may return it
// directly to control the on-wire code; any other error is normalized to
// CodeInternal by FromError.
type Error struct {
	// Code is the taxonomy category.
	Code Code `json:"code"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Cause is the underlying error, if any.
	Cause error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the conventional HTTP status code for the error's code.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeParseError, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotSupported:
		return http.StatusMethodNotAllowed
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeConflict:
		return http.StatusConflict
	case CodePreconditionFailed:
		return http.StatusPreconditionFailed
	case CodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeClientClosedRequest:
		return 499
	case CodeNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// NewError creates a new canonical error.
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// FromError normalizes any error into a canonical *Error. A *Error passes
// through with its code preserved; everything else becomes CodeInternal with
// the original error kept as the cause.
func FromError(err error) *Error {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr
	}
	return &Error{
		Code:    CodeInternal,
		Message: err.Error(),
		Cause:   err,
	}
}

// Convenience constructors for common errors

// ErrParse creates a parse error wrapping the malformed-JSON cause.
func ErrParse(cause error) *Error {
	return NewError(CodeParseError, "failed to parse input").WithCause(cause)
}

// ErrBadRequest creates a bad request error.
func ErrBadRequest(message string) *Error {
	return NewError(CodeBadRequest, message)
}

// ErrNotFound creates a not found error.
func ErrNotFound(message string) *Error {
	return NewError(CodeNotFound, message)
}

// ErrMethodNotSupported creates a method not supported error.
func ErrMethodNotSupported(message string) *Error {
	return NewError(CodeMethodNotSupported, message)
}

// ErrInternal creates an internal server error.
func ErrInternal(message string) *Error {
	return NewError(CodeInternal, message)
}
