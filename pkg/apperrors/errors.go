package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"afisha_backend/internal/utils"
)

// AppError is the application error carried from services up to the HTTP layer.
// Reason is the short human-readable category rendered in the wire body.
type AppError struct {
	Code     ErrorCode `json:"-"`
	Reason   string    `json:"reason"`
	Message  string    `json:"message"`
	Err      error     `json:"-"`
	HTTPCode int       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New is the base constructor.
func New(code ErrorCode, reason, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Reason:   reason,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying error (e.g. from a repository) to an AppError.
func Wrap(err error, code ErrorCode, reason, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Reason:   reason,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// MarshalJSON renders the wire body:
// {"status": "...", "reason": "...", "message": "...", "timestamp": "yyyy-MM-dd HH:mm:ss"}
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Status    string `json:"status"`
		Reason    string `json:"reason"`
		Message   string `json:"message"`
		Timestamp string `json:"timestamp"`
	}
	return json.Marshal(&alias{
		Status:    http.StatusText(e.HTTPCode),
		Reason:    e.Reason,
		Message:   e.Message,
		Timestamp: utils.FormatDateTime(time.Now()),
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- Generic helpers (non-domain) ---

// InternalError wraps an unexpected system error.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Unexpected error", "Internal server error", http.StatusInternalServerError)
}

// ValidationError builds a 400 for failed field validation.
func ValidationError(message string) *AppError {
	return New(CodeValidationFailed, "Request is not valid", message, http.StatusBadRequest)
}

// NewBadRequestError builds a generic 400.
func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "Request is incorrect", message, http.StatusBadRequest)
}
