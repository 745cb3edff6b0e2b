package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/glossadev/glossa-api/internal/domain"
)

// ReviewStatsStore persists the per-(learner, word) review ledger.
type ReviewStatsStore interface {
	// Get retrieves the ledger row for (learner, word).
	// Returns ErrStatsNotFound if no row exists; for a never-seen item
	// that is a valid state, not a failure.
	// This method takes no row lock; do not use it when you intend to
	// write the row back.
	Get(ctx context.Context, learnerID, wordID uuid.UUID) (*domain.ReviewStats, error)

	// GetForUpdate retrieves the ledger row under a per-(learner, word)
	// lock that holds until the surrounding transaction ends. Must be
	// called inside a transaction; it is what gives the grading
	// transaction per-key serializability. The lock covers the no-row
	// case as well, so concurrent first grades of the same key are
	// serialized too. Returns ErrStatsNotFound if no row exists.
	GetForUpdate(ctx context.Context, learnerID, wordID uuid.UUID) (*domain.ReviewStats, error)

	// Upsert writes the computed post-review state, creating the row on
	// the first grading event. Validates the stats before writing.
	Upsert(ctx context.Context, stats *domain.ReviewStats) error

	// WithTx returns a store bound to the given transaction.
	WithTx(tx *sql.Tx) ReviewStatsStore
}

// ReviewQueueStore persists the due queue, keyed on the original item
// ref rather than the resolved word.
type ReviewQueueStore interface {
	// Upsert applies one grading event to the queue row: due time is
	// replaced, priority moves by one in the stated direction and is
	// floored at zero. The adjustment is expressed relative to the
	// stored row inside a single statement, so concurrent events cannot
	// interleave partial writes. Returns the resulting entry.
	Upsert(
		ctx context.Context,
		learnerID uuid.UUID,
		ref domain.ItemRef,
		dueAt time.Time,
		pass bool,
	) (*domain.QueueEntry, error)

	// ListDue returns entries due at or before the given time, most
	// urgent first (priority descending, then due time). Due-ness is
	// evaluated lazily here; nothing in the system ticks a clock.
	ListDue(ctx context.Context, learnerID uuid.UUID, asOf time.Time, limit int) ([]domain.QueueEntry, error)

	// WithTx returns a store bound to the given transaction.
	WithTx(tx *sql.Tx) ReviewQueueStore
}
