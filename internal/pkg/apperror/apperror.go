package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes surfaced to API clients.
const (
	CodeNotConfigured  = "NOT_CONFIGURED"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeStageFailure   = "STAGE_FAILURE"
	CodeTimeout        = "TIMEOUT"
	CodeNotReady       = "NOT_READY"
	CodeUnknownSession = "UNKNOWN_SESSION"
)

// AppError is a protocol-visible failure. The error handler middleware maps
// it to an HTTP status and a JSON body.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Stage      string `json:"stage,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s (stage %s): %s", e.Code, e.Stage, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NotConfigured(reason string) *AppError {
	return &AppError{
		Code:       CodeNotConfigured,
		Message:    reason,
		HTTPStatus: fiber.StatusServiceUnavailable,
	}
}

func InvalidRequest(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidRequest,
		Message:    message,
		HTTPStatus: fiber.StatusBadRequest,
	}
}

func StageFailure(stage, message string) *AppError {
	return &AppError{
		Code:       CodeStageFailure,
		Message:    message,
		Stage:      stage,
		HTTPStatus: fiber.StatusInternalServerError,
	}
}

func Timeout(stage string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    "stage exceeded its time limit",
		Stage:      stage,
		HTTPStatus: fiber.StatusInternalServerError,
	}
}

// NotReady is not an error in the user-facing sense, just "poll again".
func NotReady() *AppError {
	return &AppError{
		Code:       CodeNotReady,
		Message:    "generation has not reached a terminal state yet",
		HTTPStatus: fiber.StatusAccepted,
	}
}

func UnknownSession(id string) *AppError {
	return &AppError{
		Code:       CodeUnknownSession,
		Message:    fmt.Sprintf("no session found for id %s", id),
		HTTPStatus: fiber.StatusNotFound,
	}
}

// As unwraps err into an *AppError if possible.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
