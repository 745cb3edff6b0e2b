package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/glossadev/glossa-api/internal/domain"
	"github.com/glossadev/glossa-api/internal/store"
)

// ReviewStatsStore implements store.ReviewStatsStore using a PostgreSQL
// database as the storage backend.
type ReviewStatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewStatsStore creates a new PostgreSQL implementation of the
// store.ReviewStatsStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewReviewStatsStore(db store.DBTX, logger *slog.Logger) *ReviewStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewStatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_stats_store")),
	}
}

// Ensure ReviewStatsStore implements store.ReviewStatsStore
var _ store.ReviewStatsStore = (*ReviewStatsStore)(nil)

const reviewStatsColumns = `learner_id, word_id, ease, streak_correct, status,
	interval_days, last_result, pass_count, fail_count,
	last_seen_at, next_due_at, created_at, updated_at`

// Get implements store.ReviewStatsStore.Get.
func (s *ReviewStatsStore) Get(
	ctx context.Context,
	learnerID, wordID uuid.UUID,
) (*domain.ReviewStats, error) {
	query := fmt.Sprintf(`SELECT %s FROM review_stats
		WHERE learner_id = $1 AND word_id = $2`, reviewStatsColumns)

	return s.scanRow(s.db.QueryRowContext(ctx, query, learnerID, wordID))
}

// GetForUpdate implements store.ReviewStatsStore.GetForUpdate.
// A transaction-scoped advisory lock on the (learner, word) key is taken
// before the read. SELECT ... FOR UPDATE alone locks nothing when the key
// has never been graded, so two concurrent first events would both read
// the empty state and the later commit would overwrite the earlier one.
// The advisory lock serializes the no-row case too; it is released when
// the surrounding transaction ends.
func (s *ReviewStatsStore) GetForUpdate(
	ctx context.Context,
	learnerID, wordID uuid.UUID,
) (*domain.ReviewStats, error) {
	lock := `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`
	if _, err := s.db.ExecContext(ctx, lock, learnerID.String()+":"+wordID.String()); err != nil {
		return nil, MapError(err)
	}

	query := fmt.Sprintf(`SELECT %s FROM review_stats
		WHERE learner_id = $1 AND word_id = $2 FOR UPDATE`, reviewStatsColumns)

	return s.scanRow(s.db.QueryRowContext(ctx, query, learnerID, wordID))
}

// Upsert implements store.ReviewStatsStore.Upsert.
func (s *ReviewStatsStore) Upsert(ctx context.Context, stats *domain.ReviewStats) error {
	if err := stats.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `INSERT INTO review_stats (learner_id, word_id, ease, streak_correct, status,
			interval_days, last_result, pass_count, fail_count,
			last_seen_at, next_due_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		ON CONFLICT (learner_id, word_id) DO UPDATE SET
			ease = EXCLUDED.ease,
			streak_correct = EXCLUDED.streak_correct,
			status = EXCLUDED.status,
			interval_days = EXCLUDED.interval_days,
			last_result = EXCLUDED.last_result,
			pass_count = EXCLUDED.pass_count,
			fail_count = EXCLUDED.fail_count,
			last_seen_at = EXCLUDED.last_seen_at,
			next_due_at = EXCLUDED.next_due_at,
			updated_at = EXCLUDED.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		stats.LearnerID,
		stats.WordID,
		stats.Ease,
		stats.StreakCorrect,
		stats.Status,
		stats.IntervalDays,
		stats.LastResult,
		stats.PassCount,
		stats.FailCount,
		stats.LastSeenAt,
		stats.NextDueAt,
		stats.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to upsert review stats",
			slog.String("error", err.Error()),
			slog.String("learner_id", stats.LearnerID.String()),
			slog.String("word_id", stats.WordID.String()))
		return MapError(err)
	}

	return nil
}

// WithTx implements store.ReviewStatsStore.WithTx.
func (s *ReviewStatsStore) WithTx(tx *sql.Tx) store.ReviewStatsStore {
	return &ReviewStatsStore{db: tx, logger: s.logger}
}

func (s *ReviewStatsStore) scanRow(row *sql.Row) (*domain.ReviewStats, error) {
	var stats domain.ReviewStats
	err := row.Scan(
		&stats.LearnerID,
		&stats.WordID,
		&stats.Ease,
		&stats.StreakCorrect,
		&stats.Status,
		&stats.IntervalDays,
		&stats.LastResult,
		&stats.PassCount,
		&stats.FailCount,
		&stats.LastSeenAt,
		&stats.NextDueAt,
		&stats.CreatedAt,
		&stats.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrStatsNotFound
		}
		return nil, MapError(err)
	}
	return &stats, nil
}
