package errors

import (
	"errors"
	"fmt"
)

// Error codes used across the service boundary. Handlers map these onto
// HTTP statuses; nothing outside the delivery layer should branch on them.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeStateConflict   = "STATE_CONFLICT"
	CodeNotFound        = "NOT_FOUND"
	CodeTransport       = "TRANSPORT_FAILURE"
	CodeMalformedPacket = "MALFORMED_PACKET"
)

var (
	ErrDeviceNotFound    = errors.New("device not found")
	ErrMovementNotFound  = errors.New("movement not found")
	ErrWarehouseNotFound = errors.New("warehouse not found")
	ErrEngineerNotFound  = errors.New("field engineer not found")
	ErrVehicleNotFound   = errors.New("vehicle not found")

	ErrInvalidInput = errors.New("invalid input data")
)

type AppError struct {
	Code    string
	Message string
	Err     error
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

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation builds a field-level validation error.
func Validation(field, message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("%s: %s", field, message),
	}
}

// StateConflict builds an illegal-transition error.
func StateConflict(message string) *AppError {
	return &AppError{Code: CodeStateConflict, Message: message}
}

// NotFound wraps a missing-entity sentinel.
func NotFound(err error) *AppError {
	return &AppError{Code: CodeNotFound, Message: err.Error(), Err: err}
}

// CodeOf extracts the AppError code, or TRANSPORT_FAILURE for anything that
// is not an AppError, so raw errors never leak through the envelope.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeTransport
}
