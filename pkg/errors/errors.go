package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     nil,
	}
}

// NotAvailable signals a funding attempt against a sponsorship that is no
// longer in the active state.
func NotAvailable(message string) *AppError {
	return &AppError{
		Code:    "NOT_AVAILABLE",
		Message: message,
		Status:  http.StatusConflict,
		Err:     nil,
	}
}

func PaymentInit(message string, err error) *AppError {
	return &AppError{
		Code:    "PAYMENT_INIT",
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    "TOO_MANY_REQUESTS",
		Message: message,
		Status:  http.StatusTooManyRequests,
		Err:     nil,
	}
}

// Identity provider failures, kept as distinct user-displayable kinds.

func EmailInUse(err error) *AppError {
	return &AppError{
		Code:    "EMAIL_IN_USE",
		Message: "Email address is already registered",
		Status:  http.StatusConflict,
		Err:     err,
	}
}

func WeakPassword(err error) *AppError {
	return &AppError{
		Code:    "WEAK_PASSWORD",
		Message: "Password must be at least 8 characters",
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func InvalidCredentials(err error) *AppError {
	return &AppError{
		Code:    "INVALID_CREDENTIALS",
		Message: "Invalid email or password",
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func UserNotFound(err error) *AppError {
	return &AppError{
		Code:    "USER_NOT_FOUND",
		Message: "No account found for this email",
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
