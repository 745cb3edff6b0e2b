// Package review implements the grading transaction: the one mutating
// operation of the engine, applying the scheduling policy to a single
// grading event and persisting the result atomically.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/glossadev/glossa-api/internal/domain"
)

// GradeResult is what one grading event returns to the caller: the
// updated ledger row, the updated queue entry and whether this exact
// event reached mastery.
type GradeResult struct {
	Stats   *domain.ReviewStats `json:"stats"`
	Queue   *domain.QueueEntry  `json:"queue"`
	Mastery bool                `json:"mastery"`
}

// ReviewService provides grading and due-queue access.
type ReviewService interface {
	// Grade processes one grading event end-to-end: resolves the ref to
	// its primary word, applies the interval policy and mastery
	// classifier, and upserts the ledger and queue rows in a single
	// transaction.
	//
	// Returns ErrItemNotFound when the ref resolves to nothing and
	// ErrInvalidGrade for grades outside 1-4; both are rejected before
	// any state is touched. A persistence failure leaves the prior
	// state fully intact: the caller may retry the whole call.
	Grade(ctx context.Context, learnerID uuid.UUID, ref domain.ItemRef, grade domain.Grade) (*GradeResult, error)

	// DueQueue returns the learner's entries due as of now, most urgent
	// first. Due-ness is evaluated here, lazily - there is no ticking
	// scheduler anywhere in the engine.
	DueQueue(ctx context.Context, learnerID uuid.UUID, limit int) ([]domain.QueueEntry, error)
}

// Common error types for ReviewService
var (
	// ErrInvalidGrade indicates a grade outside the accepted 1-4 range.
	ErrInvalidGrade = errors.New("grade must be between 1 and 4")

	// ErrInvalidItemRef indicates a malformed item reference.
	ErrInvalidItemRef = errors.New("invalid item reference")

	// ErrItemNotFound indicates the referenced item does not exist.
	ErrItemNotFound = errors.New("item not found")
)

// ServiceError wraps errors from the review service with operation
// context, so consumers can differentiate failures with errors.As
// instead of string matching.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewGradeError returns a new ServiceError for the grade operation.
func NewGradeError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "grade", Message: message, Err: err}
}
