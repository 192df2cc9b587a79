package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
)

// Authentication failure codes. They stay distinct for logs and metrics,
// but every 401-family code renders the same generic message so a caller
// probing token validity cannot tell missing, malformed, expired, revoked,
// and orphaned tokens apart.
const (
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeStaleIdentity     = "STALE_IDENTITY"
	CodeForbidden         = "FORBIDDEN"
	CodeCorruptCredential = "CORRUPT_CREDENTIAL"
)

const genericAuthMessage = "unauthorized"

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// PublicMessage returns the message safe to expose to the caller. All
// 401-family auth codes collapse into one indistinguishable message.
func (e *DomainError) PublicMessage() string {
	switch e.Code {
	case CodeUnauthenticated, CodeInvalidToken, CodeStaleIdentity:
		return genericAuthMessage
	case CodeForbidden:
		return "forbidden"
	}
	return e.Message
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewUnauthenticated covers absent or garbled credentials.
func NewUnauthenticated(message string) error {
	return NewDomainError(CodeUnauthenticated, message, http.StatusUnauthorized, nil)
}

// NewInvalidToken covers signature, structure, expiry, and revocation failures.
func NewInvalidToken(message string) error {
	return NewDomainError(CodeInvalidToken, message, http.StatusUnauthorized, nil)
}

// NewStaleIdentity covers validly signed tokens whose subject no longer resolves.
func NewStaleIdentity(message string) error {
	return NewDomainError(CodeStaleIdentity, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

// NewCorruptCredential flags a stored password digest that failed
// structural parsing. This indicates data corruption, never caller error.
func NewCorruptCredential(err error) error {
	return &DomainError{
		Code:       CodeCorruptCredential,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
