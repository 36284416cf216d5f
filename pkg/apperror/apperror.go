package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrMissingField      = errors.New("missing field")
	ErrMissingParameter  = errors.New("missing parameter")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrNotFound          = errors.New("not found")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrNoOpUpdate        = errors.New("no-op update")
	ErrStoreValidation   = errors.New("validation error")
	ErrUnexpected        = errors.New("internal server error")
)

type AppError struct {
	BaseError error
	Message   string
	Details   string
	Fields    []string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewMissingField(fields ...string) *AppError {
	e := NewAppError(ErrMissingField,
		"Missing required fields: name, email, and all links (github, linkedin, portfolio) are required",
		fmt.Sprintf("missing: %s", strings.Join(fields, ", ")), nil)
	e.Fields = fields
	return e
}

func NewMissingParameter(name string) *AppError {
	msg := fmt.Sprintf("'%s' query parameter is required", name)
	return NewAppError(ErrMissingParameter, msg, msg, nil)
}

func NewDuplicateEmail(email string) *AppError {
	details := fmt.Sprintf("profile with email '%s' already exists", email)
	return NewAppError(ErrDuplicateEmail, "Profile with this email already exists", details, nil)
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

func NewInvalidIdentifier(id string, err error) *AppError {
	details := fmt.Sprintf("'%s' is not a valid profile identifier", id)
	return NewAppError(ErrInvalidIdentifier, "Invalid profile ID", details, err)
}

func NewNoOpUpdate() *AppError {
	return NewAppError(ErrNoOpUpdate, "No valid fields provided for update",
		"payload contained none of name, education, skills, projects, work, links", nil)
}

// NewStoreValidation carries one message per failing field in Fields.
func NewStoreValidation(messages []string, err error) *AppError {
	e := NewAppError(ErrStoreValidation, "Validation error", strings.Join(messages, "; "), err)
	e.Fields = messages
	return e
}

func NewUnexpected(details string, err error) *AppError {
	return NewAppError(ErrUnexpected, "Internal server error", details, err)
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, ErrMissingField),
		errors.Is(err, ErrMissingParameter),
		errors.Is(err, ErrInvalidIdentifier),
		errors.Is(err, ErrNoOpUpdate),
		errors.Is(err, ErrStoreValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Kind returns a short label for the taxonomy entry err belongs to.
func Kind(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrMissingParameter):
		return "missing_parameter"
	case errors.Is(err, ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidIdentifier):
		return "invalid_identifier"
	case errors.Is(err, ErrNoOpUpdate):
		return "noop_update"
	case errors.Is(err, ErrStoreValidation):
		return "store_validation"
	}
	return "unexpected"
}

// As extracts the *AppError from err, wrapping anything else as unexpected.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewUnexpected("unhandled error", err)
}
