package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	CodeNotFound   ErrorCode = "NOT_FOUND"

	// Generation pipeline errors
	CodeGenerationUnavailable ErrorCode = "GENERATION_UNAVAILABLE"
	CodeNoParsableQuestions   ErrorCode = "NO_PARSABLE_QUESTIONS"
	CodeEmptyResult           ErrorCode = "EMPTY_RESULT"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
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

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

// NewGenerationUnavailableError signals that the LLM provider is not
// configured or returned no usable text. Fatal to the request.
func NewGenerationUnavailableError(message string, err error) *DomainError {
	return NewError(CodeGenerationUnavailable, message, err)
}

// NewNoParsableQuestionsError signals that a completion was received but no
// block survived validation. Fatal to the request.
func NewNoParsableQuestionsError() *DomainError {
	return NewError(CodeNoParsableQuestions, "failed to parse AI response into valid questions", nil)
}

// NewEmptyResultError signals that no output records remain after
// truncation. Fatal to the request.
func NewEmptyResultError() *DomainError {
	return NewError(CodeEmptyResult, "no questions could be generated", nil)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func NewValidationError(message string) error {
	return ValidationErrors{{Message: message}}
}

func NewFieldError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// ValidationErrors aggregates field errors so a request can report all of
// them at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}
