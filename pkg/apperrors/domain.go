package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for common business-rule errors.
*/

// ErrNotFound converts a repository "record not found" into a 404.
func ErrNotFound(err error, message string) *AppError {
	return Wrap(err, CodeNotFound, "The object was not found", message, http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness/integrity violation into a 409.
func ErrAlreadyExists(err error, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, "Integrity constraint has been violated", message, http.StatusConflict)
}

// ErrConflict builds a 409 for state conflicts (wrong lifecycle state, capacity, duplicates).
func ErrConflict(message string) *AppError {
	return New(CodeConflict, "For the requested operation the conditions are not met", message, http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations that are logically invalid.
func ErrInvalidOperation(message string) *AppError {
	return New(CodeInvalidOperation, "Incorrectly made request", message, http.StatusBadRequest)
}

// ErrInvalidDateTime builds a 400 for bad date parameters or windows.
func ErrInvalidDateTime(message string) *AppError {
	return New(CodeInvalidDateTime, "Date time of request is not valid", message, http.StatusBadRequest)
}

// ErrCapacityExceeded is raised when an event has no free participation slots.
var ErrCapacityExceeded = New(
	CodeLimitExceeded,
	"For the requested operation the conditions are not met",
	"The participant limit has been reached",
	http.StatusConflict,
)
