package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/glossadev/glossa-api/internal/domain"
	"github.com/glossadev/glossa-api/internal/domain/srs"
	"github.com/glossadev/glossa-api/internal/platform/logger"
	"github.com/glossadev/glossa-api/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	db         *sql.DB
	itemStore  store.ItemStore
	statsStore store.ReviewStatsStore
	queueStore store.ReviewQueueStore
	srsService srs.Service
	logger     *slog.Logger
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	db *sql.DB,
	itemStore store.ItemStore,
	statsStore store.ReviewStatsStore,
	queueStore store.ReviewQueueStore,
	srsService srs.Service,
	log *slog.Logger,
) ReviewService {
	if db == nil {
		panic("db cannot be nil")
	}
	if itemStore == nil {
		panic("itemStore cannot be nil")
	}
	if statsStore == nil {
		panic("statsStore cannot be nil")
	}
	if queueStore == nil {
		panic("queueStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &reviewServiceImpl{
		db:         db,
		itemStore:  itemStore,
		statsStore: statsStore,
		queueStore: queueStore,
		srsService: srsService,
		logger:     log.With(slog.String("component", "review_service")),
	}
}

// Grade implements ReviewService.Grade.
func (s *reviewServiceImpl) Grade(
	ctx context.Context,
	learnerID uuid.UUID,
	ref domain.ItemRef,
	grade domain.Grade,
) (*GradeResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing grading event",
		slog.String("learner_id", learnerID.String()),
		slog.String("item_kind", string(ref.Kind)),
		slog.String("item_id", ref.ID.String()),
		slog.Int("grade", int(grade)))

	// Reject malformed input before any state is touched.
	if !grade.Valid() {
		return nil, ErrInvalidGrade
	}
	if !ref.Kind.Valid() || ref.ID == uuid.Nil {
		return nil, ErrInvalidItemRef
	}
	if learnerID == uuid.Nil {
		return nil, ErrInvalidItemRef
	}

	// Resolve the ref to its primary word identity. Derived kinds that
	// point at nothing fail here, before any ledger mutation.
	wordID, err := s.itemStore.ResolveWordID(ctx, ref)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			log.Warn("grading event for unknown item",
				slog.String("learner_id", learnerID.String()),
				slog.String("item_kind", string(ref.Kind)),
				slog.String("item_id", ref.ID.String()))
			return nil, ErrItemNotFound
		}
		return nil, NewGradeError("failed to resolve item", err)
	}

	now := time.Now().UTC()

	// Both upserts run inside one transaction: the per-key lock taken by
	// GetForUpdate serializes concurrent grading of the same (learner,
	// word), including its first-ever grade, and a failure anywhere
	// leaves nothing partially committed.
	var result *GradeResult
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		statsStore := s.statsStore.WithTx(tx)
		queueStore := s.queueStore.WithTx(tx)

		prior, err := statsStore.GetForUpdate(ctx, learnerID, wordID)
		if err != nil && !errors.Is(err, store.ErrStatsNotFound) {
			return fmt.Errorf("failed to load review stats: %w", err)
		}
		// Absence of a row is the valid "new item" state; prior stays nil.

		schedule, err := s.srsService.NextSchedule(prior, grade, now)
		if err != nil {
			return fmt.Errorf("failed to compute schedule: %w", err)
		}

		stats := buildStats(learnerID, wordID, prior, schedule, grade, now)
		if err := statsStore.Upsert(ctx, stats); err != nil {
			return fmt.Errorf("failed to upsert review stats: %w", err)
		}

		// The queue keeps the original ref, not the resolved word; a
		// fail comes due immediately.
		dueAt := schedule.NextDueAt
		if !grade.IsPass() {
			dueAt = now
		}
		entry, err := queueStore.Upsert(ctx, learnerID, ref, dueAt, grade.IsPass())
		if err != nil {
			return fmt.Errorf("failed to upsert queue entry: %w", err)
		}

		result = &GradeResult{
			Stats:   stats,
			Queue:   entry,
			Mastery: schedule.Mastered,
		}
		return nil
	})
	if err != nil {
		log.Error("failed to process grading event",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("item_id", ref.ID.String()))
		return nil, NewGradeError("failed to grade item", err)
	}

	log.Debug("grading event processed",
		slog.String("learner_id", learnerID.String()),
		slog.String("word_id", wordID.String()),
		slog.String("status", string(result.Stats.Status)),
		slog.Int("streak", result.Stats.StreakCorrect),
		slog.Int("interval_days", result.Stats.IntervalDays),
		slog.Float64("ease", result.Stats.Ease),
		slog.Bool("mastery", result.Mastery))

	return result, nil
}

// DueQueue implements ReviewService.DueQueue.
func (s *reviewServiceImpl) DueQueue(
	ctx context.Context,
	learnerID uuid.UUID,
	limit int,
) ([]domain.QueueEntry, error) {
	if learnerID == uuid.Nil {
		return nil, ErrInvalidItemRef
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	entries, err := s.queueStore.ListDue(ctx, learnerID, time.Now().UTC(), limit)
	if err != nil {
		return nil, &ServiceError{Operation: "due_queue", Message: "failed to list due entries", Err: err}
	}
	return entries, nil
}

// buildStats assembles the post-review ledger row from the prior row
// and the computed schedule.
func buildStats(
	learnerID, wordID uuid.UUID,
	prior *domain.ReviewStats,
	schedule srs.Schedule,
	grade domain.Grade,
	now time.Time,
) *domain.ReviewStats {
	stats := &domain.ReviewStats{
		LearnerID:     learnerID,
		WordID:        wordID,
		Ease:          schedule.Ease,
		StreakCorrect: schedule.Streak,
		Status:        schedule.Status,
		IntervalDays:  schedule.IntervalDays,
		LastSeenAt:    now,
		NextDueAt:     schedule.NextDueAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if prior != nil {
		stats.CreatedAt = prior.CreatedAt
		stats.PassCount = prior.PassCount
		stats.FailCount = prior.FailCount
	}

	if grade.IsPass() {
		stats.LastResult = domain.ReviewResultPass
		stats.PassCount++
	} else {
		stats.LastResult = domain.ReviewResultFail
		stats.FailCount++
	}

	return stats
}
