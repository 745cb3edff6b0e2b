package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glossadev/glossa-api/internal/domain/recommend"
)

// ProfileStore reads the learner's coarse measured skill profile.
type ProfileStore interface {
	// GetTier returns the learner's plan entitlement.
	// Returns ErrLearnerNotFound for an unknown learner.
	GetTier(ctx context.Context, learnerID uuid.UUID) (recommend.Tier, error)

	// GetMetrics returns the latest 0..1 score per tracked metric key.
	// A sparse or empty map is valid: the deficit model treats missing
	// keys as maximal uncertainty.
	GetMetrics(ctx context.Context, learnerID uuid.UUID) (map[string]float64, error)
}

// SignalStore reads fine-grained per-sub-skill accuracy events.
type SignalStore interface {
	// ListRecent returns events observed at or after since, oldest
	// first. The lookback is bounded by the caller; this is never an
	// unbounded history scan.
	ListRecent(ctx context.Context, learnerID uuid.UUID, since time.Time) ([]recommend.SignalEvent, error)
}

// SessionStore reads the learner's recent practice history.
type SessionStore interface {
	// RecentModules returns the modules of the learner's last sessions,
	// most recent first, up to limit.
	RecentModules(ctx context.Context, learnerID uuid.UUID, limit int) ([]recommend.Module, error)
}
