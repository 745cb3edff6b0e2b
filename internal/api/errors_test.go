package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glossadev/glossa-api/internal/service/auth"
	"github.com/glossadev/glossa-api/internal/service/recommend"
	"github.com/glossadev/glossa-api/internal/service/review"
	"github.com/glossadev/glossa-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"Invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"Expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"Item not found", review.ErrItemNotFound, http.StatusNotFound},
		{"Learner not found", recommend.ErrLearnerNotFound, http.StatusNotFound},
		{"Store item not found", store.ErrItemNotFound, http.StatusNotFound},
		{"Write conflict", store.ErrConflict, http.StatusConflict},
		{"Invalid grade", review.ErrInvalidGrade, http.StatusBadRequest},
		{"Invalid item ref", review.ErrInvalidItemRef, http.StatusBadRequest},
		{"Invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"Wrapped sentinel", fmt.Errorf("grading: %w", review.ErrItemNotFound), http.StatusNotFound},
		{"Unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"Nil error", nil, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{"Invalid token", auth.ErrInvalidToken, "Invalid token"},
		{"Item not found", review.ErrItemNotFound, "Item not found"},
		{"Learner not found", recommend.ErrLearnerNotFound, "Learner not found"},
		{"Conflict suggests retry", store.ErrConflict, "The item was graded concurrently, please retry"},
		{"Invalid grade", review.ErrInvalidGrade, "Grade must be between 1 and 4"},
		{"Unknown error stays generic", errors.New("pq: relation does not exist"), "An unexpected error occurred"},
		{"Nil error", nil, "An unexpected error occurred"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GetSafeErrorMessage(tc.err))
		})
	}
}
