package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeConflict         = "CONFLICT"
	CodeInternal         = "INTERNAL_ERROR"
	CodeTimeout          = "TIMEOUT"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
	CodeInvalidInput     = "INVALID_INPUT"
	CodePastSchedule     = "PAST_SCHEDULE"
	CodeUnknownParty     = "UNKNOWN_PARTY"
	CodeDuplicateBooking = "DUPLICATE_BOOKING"
	CodeTrainerBusy      = "TRAINER_BUSY"
	CodeRateLimited      = "RATE_LIMITED"
	CodeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	CodeIdempotencyReuse = "IDEMPOTENCY_KEY_REUSED"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
	return data
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// PastSchedule is returned when the requested slot is earlier than the
// moment the request was evaluated.
func PastSchedule(schedule string) *AppError {
	return &AppError{
		Code:       CodePastSchedule,
		Message:    "Bookings in the past are not allowed",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"schedule": schedule},
	}
}

// UnknownParty reports a customer or trainer missing from the directory.
func UnknownParty(role, id string) *AppError {
	return &AppError{
		Code:       CodeUnknownParty,
		Message:    fmt.Sprintf("%s does not exist", role),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"role": role,
			"id":   id,
		},
	}
}

func DuplicateBooking(schedule string) *AppError {
	return &AppError{
		Code:       CodeDuplicateBooking,
		Message:    fmt.Sprintf("Duplicate booking for %s", schedule),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"schedule": schedule},
	}
}

func TrainerBusy(trainerID, schedule string) *AppError {
	return &AppError{
		Code:       CodeTrainerBusy,
		Message:    fmt.Sprintf("Trainer already has a booking at %s", schedule),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"trainer_id": trainerID,
			"schedule":   schedule,
		},
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func Unavailable(service string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

func RateLimited() *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    "Rate limit exceeded",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

func UnsupportedMediaType(contentType string) *AppError {
	return &AppError{
		Code:       CodeUnsupportedMedia,
		Message:    "Content-Type must be application/json",
		HTTPStatus: http.StatusUnsupportedMediaType,
		Details:    map[string]any{"content_type": contentType},
	}
}

func PayloadTooLarge(limit int64) *AppError {
	return &AppError{
		Code:       CodePayloadTooLarge,
		Message:    fmt.Sprintf("Request body exceeds %d bytes", limit),
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}
}

// DNINotLinked is returned when a national ID has no identity link.
func DNINotLinked(dni string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    "DNI not linked",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"dni": dni},
	}
}

// IdempotencyKeyReused rejects a retried key whose request body differs
// from the one that produced the cached response.
func IdempotencyKeyReused(key string) *AppError {
	return &AppError{
		Code:       CodeIdempotencyReuse,
		Message:    "Idempotency key was already used with a different request body",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"key": key},
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
