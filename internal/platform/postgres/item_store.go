package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/glossadev/glossa-api/internal/domain"
	"github.com/glossadev/glossa-api/internal/store"
)

// ItemStore implements store.ItemStore over the content catalog tables.
type ItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewItemStore creates a new PostgreSQL implementation of the
// store.ItemStore interface.
func NewItemStore(db store.DBTX, logger *slog.Logger) *ItemStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure ItemStore implements store.ItemStore
var _ store.ItemStore = (*ItemStore)(nil)

// ResolveWordID implements store.ItemStore.ResolveWordID.
// Word refs resolve to themselves after an existence check; derived
// kinds resolve to their parent word through the catalog row.
func (s *ItemStore) ResolveWordID(ctx context.Context, ref domain.ItemRef) (uuid.UUID, error) {
	if !ref.Kind.Valid() {
		return uuid.Nil, domain.ErrInvalidItemKind
	}

	if !ref.Kind.IsDerived() {
		var id uuid.UUID
		err := s.db.QueryRowContext(ctx,
			`SELECT id FROM catalog_items WHERE id = $1 AND kind = $2`,
			ref.ID, ref.Kind,
		).Scan(&id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return uuid.Nil, store.ErrItemNotFound
			}
			return uuid.Nil, MapError(err)
		}
		return id, nil
	}

	var parentID uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`SELECT parent_word_id FROM catalog_items WHERE id = $1 AND kind = $2`,
		ref.ID, ref.Kind,
	).Scan(&parentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, store.ErrItemNotFound
		}
		return uuid.Nil, MapError(err)
	}
	if parentID == uuid.Nil {
		// A derived row without a parent linkage cannot be graded.
		return uuid.Nil, store.ErrItemNotFound
	}

	return parentID, nil
}
