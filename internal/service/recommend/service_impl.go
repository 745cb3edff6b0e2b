package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	domainrec "github.com/glossadev/glossa-api/internal/domain/recommend"
	"github.com/glossadev/glossa-api/internal/platform/logger"
	"github.com/glossadev/glossa-api/internal/store"
)

// signalLookback bounds the fine-grained signal window. Recommendation
// latency scales with this window and the catalog size, never with the
// learner's full history.
const signalLookback = 14 * 24 * time.Hour

// Verify interface compliance at compile time
var _ RecommendationService = (*recommendationServiceImpl)(nil)

// recommendationServiceImpl implements the RecommendationService interface.
type recommendationServiceImpl struct {
	profileStore store.ProfileStore
	signalStore  store.SignalStore
	sessionStore store.SessionStore
	taskStore    store.TaskStore
	policy       *domainrec.Policy
	logger       *slog.Logger
}

// NewRecommendationService creates a new RecommendationService
// implementation. A nil policy uses the default scoring policy.
func NewRecommendationService(
	profileStore store.ProfileStore,
	signalStore store.SignalStore,
	sessionStore store.SessionStore,
	taskStore store.TaskStore,
	policy *domainrec.Policy,
	log *slog.Logger,
) RecommendationService {
	if profileStore == nil {
		panic("profileStore cannot be nil")
	}
	if signalStore == nil {
		panic("signalStore cannot be nil")
	}
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if policy == nil {
		policy = domainrec.DefaultPolicy()
	}
	if log == nil {
		log = slog.Default()
	}

	return &recommendationServiceImpl{
		profileStore: profileStore,
		signalStore:  signalStore,
		sessionStore: sessionStore,
		taskStore:    taskStore,
		policy:       policy,
		logger:       log.With(slog.String("component", "recommendation_service")),
	}
}

// NextTask implements RecommendationService.NextTask.
//
// The four context reads are independent, so they fan out concurrently.
// Tier and catalog are load-bearing: without them no eligible set can be
// computed. Metrics, signals and session history degrade gracefully to
// worst-case/empty - a broken analytics table must not block scheduling.
func (s *recommendationServiceImpl) NextTask(
	ctx context.Context,
	learnerID uuid.UUID,
) (*domainrec.Recommendation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if learnerID == uuid.Nil {
		return nil, ErrLearnerNotFound
	}

	var (
		tier    domainrec.Tier
		metrics map[string]float64
		events  []domainrec.SignalEvent
		recent  []domainrec.Module
		catalog []domainrec.Task
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := s.profileStore.GetTier(gctx, learnerID)
		if err != nil {
			if errors.Is(err, store.ErrLearnerNotFound) {
				return ErrLearnerNotFound
			}
			return fmt.Errorf("failed to load learner tier: %w", err)
		}
		tier = t
		return nil
	})

	g.Go(func() error {
		tasks, err := s.taskStore.ListEnabled(gctx)
		if err != nil {
			return fmt.Errorf("failed to load task catalog: %w", err)
		}
		catalog = tasks
		return nil
	})

	g.Go(func() error {
		m, err := s.profileStore.GetMetrics(gctx, learnerID)
		if err != nil {
			// Missing profile data degrades to "no measurements": the
			// deficit model treats that as maximal uncertainty.
			log.Warn("failed to load profile metrics, treating as unmeasured",
				slog.String("error", err.Error()),
				slog.String("learner_id", learnerID.String()))
			return nil
		}
		metrics = m
		return nil
	})

	g.Go(func() error {
		evs, err := s.signalStore.ListRecent(gctx, learnerID, time.Now().UTC().Add(-signalLookback))
		if err != nil {
			log.Warn("failed to load skill signals, skipping weak-signal scan",
				slog.String("error", err.Error()),
				slog.String("learner_id", learnerID.String()))
			return nil
		}
		events = evs
		return nil
	})

	g.Go(func() error {
		modules, err := s.sessionStore.RecentModules(gctx, learnerID, s.policy.FatigueWindow)
		if err != nil {
			log.Warn("failed to load session history, skipping fatigue penalty",
				slog.String("error", err.Error()),
				slog.String("learner_id", learnerID.String()))
			return nil
		}
		recent = modules
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	input := domainrec.Input{
		Tier:          tier,
		Deficits:      domainrec.ComputeDeficits(metrics),
		Signals:       domainrec.DetectWeakSignals(events, s.policy),
		Catalog:       catalog,
		RecentModules: recent,
	}

	rec := domainrec.Recommend(input, s.policy)
	if rec == nil {
		log.Debug("no eligible task for learner",
			slog.String("learner_id", learnerID.String()),
			slog.String("tier", string(tier)),
			slog.Int("catalog_size", len(catalog)))
		return nil, nil
	}

	log.Debug("selected next task",
		slog.String("learner_id", learnerID.String()),
		slog.String("task_id", rec.Task.ID.String()),
		slog.String("module", string(rec.Task.Module)),
		slog.Float64("score", rec.Score))

	return rec, nil
}
