// Package recommend assembles the learner context and asks the scorer
// for the next practice task. Everything here is read-only: results are
// recomputed per request and may be served from stale-but-recent data.
package recommend

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domainrec "github.com/glossadev/glossa-api/internal/domain/recommend"
)

// RecommendationService selects the next practice task for a learner.
type RecommendationService interface {
	// NextTask returns the best eligible task with its rationale, or
	// nil when no task is eligible - an empty catalog or a learner
	// below every task's tier is a valid state, not an error.
	//
	// Returns ErrLearnerNotFound for an unknown learner.
	NextTask(ctx context.Context, learnerID uuid.UUID) (*domainrec.Recommendation, error)
}

// Common error types for RecommendationService
var (
	// ErrLearnerNotFound indicates the learner has no persisted profile.
	ErrLearnerNotFound = errors.New("learner not found")
)
