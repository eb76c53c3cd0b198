package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed domain error with HTTP awareness. Fields carries
// field-keyed validation messages for form errors.
type Error struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	Fields  map[string][]string `json:"fields,omitempty"`
	Err     error               `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Validation builds a field-keyed validation error.
func Validation(fields map[string][]string) *Error {
	return &Error{
		Code:    ErrValidation.Code,
		Status:  ErrValidation.Status,
		Message: ErrValidation.Message,
		Fields:  fields,
	}
}

// FieldError builds a validation error for a single field.
func FieldError(field, message string) *Error {
	return Validation(map[string][]string{field: {message}})
}

// Predefined errors for common scenarios.
var (
	ErrNotFound         = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation       = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrConflict         = New("CONFLICT", http.StatusConflict, "conflict")
	ErrInternal         = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrSlotTaken        = New("SLOT_TAKEN", http.StatusConflict, "slot is no longer available")
	ErrAlreadyCanceled  = New("ALREADY_CANCELED", http.StatusConflict, "booking is already canceled")
	ErrNoAvailability   = New("NO_AVAILABILITY", http.StatusBadRequest, "availability not set")
	ErrHasBookings      = New("HAS_BOOKINGS", http.StatusConflict, "event type has upcoming confirmed bookings")
	ErrCacheMiss        = New("CACHE_MISS", http.StatusNotFound, "cache miss")
	ErrInvalidTimezone  = New("INVALID_TIMEZONE", http.StatusBadRequest, "unknown IANA timezone")
	ErrInvalidDate      = New("INVALID_DATE", http.StatusBadRequest, "date must be YYYY-MM-DD")
	ErrInvalidStartTime = New("INVALID_START_TIME", http.StatusBadRequest, "startAt must be an ISO-8601 timestamp")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
