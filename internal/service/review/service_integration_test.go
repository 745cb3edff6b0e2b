//go:build integration

package review

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/glossadev/glossa-api/internal/domain"
	"github.com/glossadev/glossa-api/internal/domain/srs"
	"github.com/glossadev/glossa-api/internal/platform/postgres"
	"github.com/glossadev/glossa-api/internal/testdb"
)

const testGradeTimeout = 10 * time.Second

// newIntegrationService wires the review service against a real
// database and registers cleanup for the rows the test will create.
// Grading commits its own transactions, so the usual rollback-based
// isolation does not apply here.
func newIntegrationService(t *testing.T, db *sql.DB, learnerID, wordID uuid.UUID) ReviewService {
	t.Helper()

	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO catalog_items (id, kind) VALUES ($1, 'word')`, wordID)
	require.NoError(t, err, "Failed to insert catalog word")

	t.Cleanup(func() {
		for _, stmt := range []string{
			`DELETE FROM review_queue WHERE learner_id = $1`,
			`DELETE FROM review_stats WHERE learner_id = $1`,
		} {
			if _, err := db.ExecContext(ctx, stmt, learnerID); err != nil {
				t.Logf("Warning: cleanup failed: %v", err)
			}
		}
		if _, err := db.ExecContext(ctx,
			`DELETE FROM catalog_items WHERE id = $1`, wordID); err != nil {
			t.Logf("Warning: cleanup failed: %v", err)
		}
	})

	return NewReviewService(
		db,
		postgres.NewItemStore(db, nil),
		postgres.NewReviewStatsStore(db, nil),
		postgres.NewReviewQueueStore(db, nil),
		srs.NewDefaultService(),
		nil,
	)
}

// TestGradeConcurrentFirstEvents grades a never-seen word from two
// goroutines at once. Both events must land in the ledger: the second
// transaction has to observe the first one's row rather than also
// computing from the empty state and overwriting it.
func TestGradeConcurrentFirstEvents(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	learnerID := uuid.New()
	wordID := uuid.New()
	svc := newIntegrationService(t, db, learnerID, wordID)
	ref := domain.ItemRef{Kind: domain.ItemKindWord, ID: wordID}

	ctx, cancel := context.WithTimeout(context.Background(), testGradeTimeout)
	defer cancel()

	var g errgroup.Group
	for i := 0; i < 2; i++ {
		g.Go(func() error {
			_, err := svc.Grade(ctx, learnerID, ref, domain.GradeGood)
			return err
		})
	}
	require.NoError(t, g.Wait(), "Both concurrent grades should succeed")

	statsStore := postgres.NewReviewStatsStore(db, nil)
	stats, err := statsStore.Get(ctx, learnerID, wordID)
	require.NoError(t, err, "Ledger row should exist after grading")

	assert.Equal(t, 2, stats.PassCount, "Both passes must be counted")
	assert.Equal(t, 2, stats.StreakCorrect, "Streak must reflect both events")
	assert.Equal(t, 0, stats.FailCount, "No fails were recorded")

	queueStore := postgres.NewReviewQueueStore(db, nil)
	entries, err := queueStore.ListDue(ctx, learnerID, time.Now().UTC().Add(90*24*time.Hour), 10)
	require.NoError(t, err, "Queue lookup should succeed")
	require.Len(t, entries, 1, "One queue row per item")
	assert.Equal(t, 0, entries[0].Priority, "Two passes hold priority at 0")
}

// TestGradeSequentialLifecycle runs a pass-fail sequence end to end
// through real transactions and checks the persisted ledger and queue
// state after each event.
func TestGradeSequentialLifecycle(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	learnerID := uuid.New()
	wordID := uuid.New()
	svc := newIntegrationService(t, db, learnerID, wordID)
	ref := domain.ItemRef{Kind: domain.ItemKindWord, ID: wordID}

	ctx, cancel := context.WithTimeout(context.Background(), testGradeTimeout)
	defer cancel()

	first, err := svc.Grade(ctx, learnerID, ref, domain.GradeGood)
	require.NoError(t, err, "First grade should succeed")
	assert.Equal(t, 1, first.Stats.StreakCorrect, "First pass starts the streak")
	assert.Equal(t, 1, first.Stats.IntervalDays, "First pass schedules one day out")
	assert.Equal(t, domain.ReviewStatusLearning, first.Stats.Status)
	assert.Equal(t, 0, first.Queue.Priority, "Pass keeps queue priority at 0")

	second, err := svc.Grade(ctx, learnerID, ref, domain.GradeFail)
	require.NoError(t, err, "Second grade should succeed")
	assert.Equal(t, 0, second.Stats.StreakCorrect, "Fail resets the streak")
	assert.Equal(t, 0, second.Stats.IntervalDays, "Fail resets the interval")
	assert.Equal(t, 1, second.Stats.PassCount, "Pass count survives the fail")
	assert.Equal(t, 1, second.Stats.FailCount, "Fail is counted")
	assert.Equal(t, 1, second.Queue.Priority, "Fail raises queue priority")
	assert.WithinDuration(t, time.Now().UTC(), second.Queue.DueAt, 5*time.Second,
		"Failed item comes due immediately")
}
