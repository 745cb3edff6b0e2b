package api

import (
	"errors"
	"net/http"

	"github.com/glossadev/glossa-api/internal/service/auth"
	"github.com/glossadev/glossa-api/internal/service/recommend"
	"github.com/glossadev/glossa-api/internal/service/review"
	"github.com/glossadev/glossa-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, review.ErrItemNotFound),
		errors.Is(err, recommend.ErrLearnerNotFound),
		errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrLearnerNotFound):
		return http.StatusNotFound

	// Concurrent-write races: the whole grading call is safe to retry
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, review.ErrInvalidGrade),
		errors.Is(err, review.ErrInvalidItemRef),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, review.ErrItemNotFound),
		errors.Is(err, store.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, recommend.ErrLearnerNotFound),
		errors.Is(err, store.ErrLearnerNotFound):
		return "Learner not found"

	case errors.Is(err, store.ErrConflict):
		return "The item was graded concurrently, please retry"

	case errors.Is(err, review.ErrInvalidGrade):
		return "Grade must be between 1 and 4"

	case errors.Is(err, review.ErrInvalidItemRef):
		return "Invalid item reference"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
