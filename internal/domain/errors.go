package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Exam specific errors
	ErrParse               ErrorCode = "PARSE_ERROR"
	ErrEmptyExam           ErrorCode = "EMPTY_EXAM"
	ErrSessionNotFound     ErrorCode = "SESSION_NOT_FOUND"
	ErrInvalidPage         ErrorCode = "INVALID_PAGE"
	ErrInvalidSessionState ErrorCode = "INVALID_SESSION_STATE"
	ErrResultNotAvailable  ErrorCode = "RESULT_NOT_AVAILABLE"
	ErrSigning             ErrorCode = "SIGNING_ERROR"
	ErrRenderFailed        ErrorCode = "RENDER_FAILED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
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

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail entry that the HTTP layer exposes to clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HasCode reports whether err is a DomainError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewParseError(source string, err error) *DomainError {
	return NewError(ErrParse, fmt.Sprintf("Failed to parse question bank %s", source), err).
		WithContext("source", source)
}

func NewEmptyExamError(course string) *DomainError {
	return NewError(ErrEmptyExam, fmt.Sprintf("No questions available for course %s", course), nil).
		WithContext("course", course)
}

// NewSessionNotFoundError tells the caller to send the user back to exam selection.
func NewSessionNotFoundError() *DomainError {
	return NewError(ErrSessionNotFound, "No active quiz session", nil).
		WithContext("redirect", "/")
}

func NewInvalidPageError(page, totalPages int) *DomainError {
	return NewError(ErrInvalidPage, fmt.Sprintf("Page %d is outside [1, %d]", page, totalPages), nil)
}

func NewInvalidSessionStateError(state SessionState, op string) *DomainError {
	return NewError(ErrInvalidSessionState, fmt.Sprintf("Cannot %s a session in state %s", op, state), nil)
}

func NewResultNotAvailableError() *DomainError {
	return NewError(ErrResultNotAvailable, "No finished exam result available", nil).
		WithContext("redirect", "/")
}

func NewSigningError(message string, err error) *DomainError {
	return NewError(ErrSigning, message, err)
}

func NewRenderError(err error) *DomainError {
	return NewError(ErrRenderFailed, "Failed to render result document", err)
}
