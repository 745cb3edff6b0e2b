package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/glossadev/glossa-api/internal/domain"
	"github.com/glossadev/glossa-api/internal/domain/recommend"
)

// ItemStore resolves item refs against the content catalog.
type ItemStore interface {
	// ResolveWordID maps an item ref to the primary word identity the
	// ledger is keyed on. Word refs resolve to themselves after an
	// existence check; expression and example refs resolve to their
	// parent word. Returns ErrItemNotFound when the ref points at
	// nothing.
	ResolveWordID(ctx context.Context, ref domain.ItemRef) (uuid.UUID, error)
}

// TaskStore reads the practice-task catalog.
type TaskStore interface {
	// ListEnabled returns the currently enabled tasks. Entitlement
	// filtering happens in the scorer, not here, so the same read
	// serves every tier.
	ListEnabled(ctx context.Context) ([]recommend.Task, error)
}
