package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. Entity-specific variants wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a
	// duplicate of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation
	// before being stored. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrConflict is returned when a concurrent write raced on the same
	// ledger key. Callers should retry the whole grading call: a failed
	// attempt never partially commits.
	ErrConflict = errors.New("concurrent write conflict")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrItemNotFound indicates the referenced catalog item does not
	// exist (including a derived ref that resolves to nothing).
	ErrItemNotFound = fmt.Errorf("%w: catalog item", ErrNotFound)

	// ErrStatsNotFound indicates no review ledger row exists for the
	// (learner, word) key. This is a valid state for never-seen items.
	ErrStatsNotFound = fmt.Errorf("%w: review stats", ErrNotFound)

	// ErrQueueEntryNotFound indicates no due-queue row exists for the
	// (learner, item) key.
	ErrQueueEntryNotFound = fmt.Errorf("%w: queue entry", ErrNotFound)

	// ErrLearnerNotFound indicates the learner has no persisted profile.
	ErrLearnerNotFound = fmt.Errorf("%w: learner", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError carries entity and operation context for store failures.
type StoreError struct {
	Entity    string // e.g. "review_stats", "queue_entry"
	Operation string // e.g. "get", "upsert"
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v",
			e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
