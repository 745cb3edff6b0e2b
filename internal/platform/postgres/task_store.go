package postgres

import (
	"context"
	"log/slog"

	"github.com/glossadev/glossa-api/internal/domain/recommend"
	"github.com/glossadev/glossa-api/internal/store"
)

// TaskStore implements store.TaskStore over the practice-task catalog.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the
// store.TaskStore interface.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore
var _ store.TaskStore = (*TaskStore)(nil)

// ListEnabled implements store.TaskStore.ListEnabled. The catalog is
// tens to low hundreds of rows; one bounded read per recommendation.
func (s *TaskStore) ListEnabled(ctx context.Context) ([]recommend.Task, error) {
	query := `SELECT id, title, module, COALESCE(focus_key, ''), COALESCE(target_symbol, ''),
			estimated_minutes, min_tier, enabled
		FROM practice_tasks
		WHERE enabled
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var tasks []recommend.Task
	for rows.Next() {
		var task recommend.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Module,
			&task.FocusKey,
			&task.TargetSymbol,
			&task.EstimatedMinutes,
			&task.MinTier,
			&task.Enabled,
		); err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}
