package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "code and message",
			err:      &Error{Code: CodeBadRequest, Message: "bad input"},
			expected: "BAD_REQUEST: bad input",
		},
		{
			name:     "code, message and cause",
			err:      &Error{Code: CodeParseError, Message: "failed to parse input", Cause: errors.New("unexpected EOF")},
			expected: "PARSE_ERROR: failed to parse input: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		code     Code
		expected int
	}{
		{CodeParseError, http.StatusBadRequest},
		{CodeBadRequest, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeMethodNotSupported, http.StatusMethodNotAllowed},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeConflict, http.StatusConflict},
		{CodePreconditionFailed, http.StatusPreconditionFailed},
		{CodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{CodeTooManyRequests, http.StatusTooManyRequests},
		{CodeClientClosedRequest, 499},
		{CodeNotImplemented, http.StatusNotImplemented},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := &Error{Code: tt.code}
			if got := err.HTTPStatus(); got != tt.expected {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFromError(t *testing.T) {
	t.Run("preserves tagged code", func(t *testing.T) {
		tagged := NewError(CodeNotFound, "no such procedure")
		got := FromError(tagged)
		if got.Code != CodeNotFound {
			t.Errorf("Code = %s, want %s", got.Code, CodeNotFound)
		}
	})

	t.Run("unwraps to find tagged code", func(t *testing.T) {
		wrapped := fmt.Errorf("call failed: %w", NewError(CodeForbidden, "denied"))
		got := FromError(wrapped)
		if got.Code != CodeForbidden {
			t.Errorf("Code = %s, want %s", got.Code, CodeForbidden)
		}
	})

	t.Run("defaults to internal", func(t *testing.T) {
		plain := errors.New("boom")
		got := FromError(plain)
		if got.Code != CodeInternal {
			t.Errorf("Code = %s, want %s", got.Code, CodeInternal)
		}
		if got.Message != "boom" {
			t.Errorf("Message = %q, want %q", got.Message, "boom")
		}
		if !errors.Is(got, plain) {
			t.Error("expected normalized error to wrap the original")
		}
	})
}

func TestKindFromMethod(t *testing.T) {
	tests := []struct {
		method   string
		expected ProcedureKind
	}{
		{http.MethodGet, KindQuery},
		{http.MethodPost, KindMutation},
		{http.MethodPatch, KindSubscription},
		{http.MethodPut, KindUnknown},
		{http.MethodDelete, KindUnknown},
		{http.MethodOptions, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			if got := KindFromMethod(tt.method); got != tt.expected {
				t.Errorf("KindFromMethod(%s) = %s, want %s", tt.method, got, tt.expected)
			}
		})
	}
}

func TestProcedureKind_Servable(t *testing.T) {
	if !KindQuery.Servable() || !KindMutation.Servable() {
		t.Error("query and mutation must be servable")
	}
	if KindSubscription.Servable() || KindUnknown.Servable() {
		t.Error("subscription and unknown must not be servable")
	}
}
