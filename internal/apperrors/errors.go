// Package apperrors defines the error kinds shared by the services and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorises an error for status mapping and logging.
type Kind string

const (
	KindUnauthenticated  Kind = "unauthenticated"
	KindInvalidToken     Kind = "invalid_token"
	KindForbidden        Kind = "forbidden"
	KindNotFound         Kind = "not_found"
	KindValidation       Kind = "validation"
	KindStoreUnavailable Kind = "store_unavailable"
	KindInternal         Kind = "internal"
)

// Error is a categorised error with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on Kind so sentinel values work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// HTTPStatus returns the status code for the error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnauthenticated, KindInvalidToken:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Sentinels for errors.Is checks.
var (
	ErrUnauthenticated  = &Error{Kind: KindUnauthenticated, Message: "Unauthorized Access"}
	ErrInvalidToken     = &Error{Kind: KindInvalidToken, Message: "Could not verify/decode token. Unauthorized access."}
	ErrForbidden        = &Error{Kind: KindForbidden, Message: "Forbidden Access"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
	ErrValidation       = &Error{Kind: KindValidation, Message: "invalid request"}
	ErrStoreUnavailable = &Error{Kind: KindStoreUnavailable, Message: "store unavailable"}
)

func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: ErrUnauthenticated.Message}
}

func InvalidToken(cause error) *Error {
	return &Error{Kind: KindInvalidToken, Message: ErrInvalidToken.Message, Cause: cause}
}

func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: ErrForbidden.Message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Validation(message string, cause error) *Error {
	return &Error{Kind: KindValidation, Message: message, Cause: cause}
}

func StoreUnavailable(cause error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: ErrStoreUnavailable.Message, Cause: cause}
}

func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// From extracts an *Error from err, wrapping unknown errors as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal server error", err)
}
