package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/glossadev/glossa-api/internal/domain/recommend"
	"github.com/glossadev/glossa-api/internal/store"
)

// LearnerStore implements the read-side learner interfaces: profile
// metrics, fine-grained skill signals and session history. One struct
// serves all three because they share the learner tables and none of
// them mutates anything.
type LearnerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewLearnerStore creates a new PostgreSQL implementation of the
// learner read interfaces.
func NewLearnerStore(db store.DBTX, logger *slog.Logger) *LearnerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LearnerStore{
		db:     db,
		logger: logger.With(slog.String("component", "learner_store")),
	}
}

// Ensure LearnerStore implements the learner read interfaces
var (
	_ store.ProfileStore = (*LearnerStore)(nil)
	_ store.SignalStore  = (*LearnerStore)(nil)
	_ store.SessionStore = (*LearnerStore)(nil)
)

// GetTier implements store.ProfileStore.GetTier.
func (s *LearnerStore) GetTier(ctx context.Context, learnerID uuid.UUID) (recommend.Tier, error) {
	var tier recommend.Tier
	err := s.db.QueryRowContext(ctx,
		`SELECT tier FROM learners WHERE id = $1`, learnerID,
	).Scan(&tier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", store.ErrLearnerNotFound
		}
		return "", MapError(err)
	}
	return tier, nil
}

// GetMetrics implements store.ProfileStore.GetMetrics. Only the latest
// measurement per key is kept in the table, so this is a point read of
// the learner's current profile.
func (s *LearnerStore) GetMetrics(
	ctx context.Context,
	learnerID uuid.UUID,
) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT metric_key, value FROM profile_metrics WHERE learner_id = $1`,
		learnerID,
	)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	metrics := make(map[string]float64)
	for rows.Next() {
		var (
			key   string
			value float64
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, MapError(err)
		}
		metrics[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return metrics, nil
}

// ListRecent implements store.SignalStore.ListRecent.
func (s *LearnerStore) ListRecent(
	ctx context.Context,
	learnerID uuid.UUID,
	since time.Time,
) ([]recommend.SignalEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, value, observed_at FROM skill_signals
		WHERE learner_id = $1 AND observed_at >= $2
		ORDER BY observed_at ASC`,
		learnerID, since,
	)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var events []recommend.SignalEvent
	for rows.Next() {
		var ev recommend.SignalEvent
		if err := rows.Scan(&ev.Symbol, &ev.Value, &ev.ObservedAt); err != nil {
			// A single malformed signal row must not block scheduling.
			s.logger.Warn("skipping malformed signal row",
				slog.String("error", err.Error()),
				slog.String("learner_id", learnerID.String()))
			continue
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return events, nil
}

// RecentModules implements store.SessionStore.RecentModules.
func (s *LearnerStore) RecentModules(
	ctx context.Context,
	learnerID uuid.UUID,
	limit int,
) ([]recommend.Module, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT module FROM practice_sessions
		WHERE learner_id = $1
		ORDER BY started_at DESC
		LIMIT $2`,
		learnerID, limit,
	)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var modules []recommend.Module
	for rows.Next() {
		var module recommend.Module
		if err := rows.Scan(&module); err != nil {
			return nil, MapError(err)
		}
		modules = append(modules, module)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return modules, nil
}
