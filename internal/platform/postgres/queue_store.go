package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/glossadev/glossa-api/internal/domain"
	"github.com/glossadev/glossa-api/internal/store"
)

// ReviewQueueStore implements store.ReviewQueueStore using a PostgreSQL
// database as the storage backend.
type ReviewQueueStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewQueueStore creates a new PostgreSQL implementation of the
// store.ReviewQueueStore interface.
func NewReviewQueueStore(db store.DBTX, logger *slog.Logger) *ReviewQueueStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewQueueStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_queue_store")),
	}
}

// Ensure ReviewQueueStore implements store.ReviewQueueStore
var _ store.ReviewQueueStore = (*ReviewQueueStore)(nil)

// Upsert implements store.ReviewQueueStore.Upsert.
//
// The priority adjustment is written relative to the stored row in one
// statement: a fresh row starts at 0 (pass) or 1 (fail); an existing row
// moves down one on pass, floored at zero, or up one on fail. Expressing
// the new state in terms of the stored state keeps concurrent events
// from losing an increment.
func (s *ReviewQueueStore) Upsert(
	ctx context.Context,
	learnerID uuid.UUID,
	ref domain.ItemRef,
	dueAt time.Time,
	pass bool,
) (*domain.QueueEntry, error) {
	query := `INSERT INTO review_queue (learner_id, item_kind, item_id, due_at, priority, updated_at)
		VALUES ($1, $2, $3, $4, CASE WHEN $5 THEN 0 ELSE 1 END, $6)
		ON CONFLICT (learner_id, item_kind, item_id) DO UPDATE SET
			due_at = EXCLUDED.due_at,
			priority = CASE WHEN $5
				THEN GREATEST(0, review_queue.priority - 1)
				ELSE review_queue.priority + 1
			END,
			updated_at = EXCLUDED.updated_at
		RETURNING due_at, priority, updated_at`

	entry := domain.QueueEntry{
		LearnerID: learnerID,
		Ref:       ref,
	}
	err := s.db.QueryRowContext(ctx, query,
		learnerID, ref.Kind, ref.ID, dueAt, pass, time.Now().UTC(),
	).Scan(&entry.DueAt, &entry.Priority, &entry.UpdatedAt)
	if err != nil {
		s.logger.Error("failed to upsert queue entry",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("item_kind", string(ref.Kind)),
			slog.String("item_id", ref.ID.String()))
		return nil, MapError(err)
	}

	return &entry, nil
}

// ListDue implements store.ReviewQueueStore.ListDue.
func (s *ReviewQueueStore) ListDue(
	ctx context.Context,
	learnerID uuid.UUID,
	asOf time.Time,
	limit int,
) ([]domain.QueueEntry, error) {
	query := `SELECT learner_id, item_kind, item_id, due_at, priority, updated_at
		FROM review_queue
		WHERE learner_id = $1 AND due_at <= $2
		ORDER BY priority DESC, due_at ASC
		LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, learnerID, asOf, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var entries []domain.QueueEntry
	for rows.Next() {
		var entry domain.QueueEntry
		if err := rows.Scan(
			&entry.LearnerID,
			&entry.Ref.Kind,
			&entry.Ref.ID,
			&entry.DueAt,
			&entry.Priority,
			&entry.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return entries, nil
}

// WithTx implements store.ReviewQueueStore.WithTx.
func (s *ReviewQueueStore) WithTx(tx *sql.Tx) store.ReviewQueueStore {
	return &ReviewQueueStore{db: tx, logger: s.logger}
}
