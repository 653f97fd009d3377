package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable machine-readable error identifier returned to clients.
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken       ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists         ErrorCode = "USER_EXISTS"
	ErrCodeInvalidRole        ErrorCode = "INVALID_ROLE"

	// Notification errors
	ErrCodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"
	ErrCodeNotificationFailed   ErrorCode = "NOTIFICATION_FAILED"

	// Content errors
	ErrCodeContentNotFound ErrorCode = "CONTENT_NOT_FOUND"
	ErrCodeSubjectNotFound ErrorCode = "SUBJECT_NOT_FOUND"
	ErrCodeSubjectInUse    ErrorCode = "SUBJECT_IN_USE"
	ErrCodeUploadFailed    ErrorCode = "UPLOAD_FAILED"

	// Database errors
	ErrCodeDBError ErrorCode = "DB_ERROR"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Kind is the closed set of failure classes the HTTP layer maps to status codes.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// AppError is the error type returned by every service.
type AppError struct {
	Code    ErrorCode
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an internal AppError wrapping err.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
}

func NotFound(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Kind: KindNotFound, Message: message}
}

func Forbidden(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Kind: KindForbidden, Message: message}
}

func Conflict(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Kind: KindConflict, Message: message}
}

func Unauthorized(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Kind: KindUnauthorized, Message: message}
}

func Validation(message string, err error) *AppError {
	return &AppError{Code: ErrCodeValidation, Kind: KindValidation, Message: message, Err: err}
}

// InvalidFormat is a validation failure for a malformed path or query value.
func InvalidFormat(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidFormat, Kind: KindValidation, Message: message}
}

// GetAppError returns the first AppError in err's chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// KindOf classifies err. Errors that are not AppErrors are internal.
func KindOf(err error) Kind {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsForbidden(err error) bool {
	return KindOf(err) == KindForbidden
}
