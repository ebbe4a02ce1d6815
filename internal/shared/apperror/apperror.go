package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	CodeValidation    ErrorCode = "VAL_INVALID_INPUT"
	CodeAlreadyExists ErrorCode = "BIZ_ALREADY_EXISTS"
	CodeNotFound      ErrorCode = "RES_NOT_FOUND"
	CodeUnauthorized  ErrorCode = "AUTH_REQUIRED"
	CodeForbidden     ErrorCode = "AUTH_FORBIDDEN"
	CodeInternal      ErrorCode = "SYS_INTERNAL_ERROR"
)

// AppError is an error the API surfaces to the client as is.
// Fields carries per-field messages for validation failures.
type AppError struct {
	Code       ErrorCode
	Message    string
	Fields     map[string]string
	HTTPStatus int
	Err        error

	// sentinel is the value this error was copied from by Wrap
	sentinel *AppError
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel itself and copies made from it by Wrap.
// Distinct sentinels never match, even when they render the same message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.origin() == t.origin()
}

func (e *AppError) origin() *AppError {
	if e.sentinel != nil {
		return e.sentinel
	}
	return e
}

// Wrap keeps the sentinel identity while attaching the underlying cause
func (e *AppError) Wrap(err error) *AppError {
	cp := *e
	cp.Err = err
	cp.sentinel = e.origin()
	return &cp
}

func Validation(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// FieldError is a validation error bound to one request field
func FieldError(field, message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		Fields:     map[string]string{field: message},
		HTTPStatus: http.StatusBadRequest,
	}
}

// AlreadyExists is a uniqueness conflict. The API reports these as 400.
func AlreadyExists(message string) *AppError {
	return &AppError{Code: CodeAlreadyExists, Message: message, HTTPStatus: http.StatusBadRequest}
}

func NotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, HTTPStatus: http.StatusNotFound}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, HTTPStatus: http.StatusUnauthorized}
}

func Forbidden(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message, HTTPStatus: http.StatusForbidden}
}

// As extracts an *AppError from an error chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

var (
	ErrNotAuthenticated = Unauthorized("Authentication credentials were not provided.")
	ErrPermissionDenied = Forbidden("You do not have permission to perform this action.")
	ErrInvalidPage      = NotFound("Invalid page.")
)
