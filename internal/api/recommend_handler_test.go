package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainrec "github.com/glossadev/glossa-api/internal/domain/recommend"
	"github.com/glossadev/glossa-api/internal/service/recommend"
)

// mockRecommendationService implements recommend.RecommendationService
// for testing.
type mockRecommendationService struct {
	rec *domainrec.Recommendation
	err error
}

func (m *mockRecommendationService) NextTask(
	ctx context.Context,
	learnerID uuid.UUID,
) (*domainrec.Recommendation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rec, nil
}

func TestGetNextTask(t *testing.T) {
	t.Parallel() // Enable parallel execution

	learnerID := uuid.New()

	t.Run("Returns the recommendation", func(t *testing.T) {
		t.Parallel()
		rec := &domainrec.Recommendation{
			Task: domainrec.Task{
				ID:               uuid.New(),
				Title:            "Minimal pairs drill",
				Module:           domainrec.ModuleSpeaking,
				EstimatedMinutes: 10,
				MinTier:          domainrec.TierFree,
				Enabled:          true,
			},
			Score:  3.2,
			Reason: "Your pronunciation accuracy is 45 points below target.",
		}
		handler := NewRecommendHandler(&mockRecommendationService{rec: rec}, slog.Default())

		req := authenticatedRequest(http.MethodGet, "/api/practice/next", nil, learnerID)
		w := httptest.NewRecorder()

		handler.GetNextTask(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Recommendation *domainrec.Recommendation `json:"recommendation"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Recommendation)
		assert.Equal(t, rec.Task.ID, resp.Recommendation.Task.ID)
		assert.Equal(t, rec.Reason, resp.Recommendation.Reason)
	})

	t.Run("No eligible task yields a null recommendation", func(t *testing.T) {
		t.Parallel()
		handler := NewRecommendHandler(&mockRecommendationService{}, slog.Default())

		req := authenticatedRequest(http.MethodGet, "/api/practice/next", nil, learnerID)
		w := httptest.NewRecorder()

		handler.GetNextTask(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"recommendation":null}`, w.Body.String())
	})

	t.Run("Unknown learner maps to 404", func(t *testing.T) {
		t.Parallel()
		handler := NewRecommendHandler(
			&mockRecommendationService{err: recommend.ErrLearnerNotFound}, slog.Default())

		req := authenticatedRequest(http.MethodGet, "/api/practice/next", nil, learnerID)
		w := httptest.NewRecorder()

		handler.GetNextTask(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Internal failure maps to 500 without leaking detail", func(t *testing.T) {
		t.Parallel()
		handler := NewRecommendHandler(
			&mockRecommendationService{err: errors.New("connection refused")}, slog.Default())

		req := authenticatedRequest(http.MethodGet, "/api/practice/next", nil, learnerID)
		w := httptest.NewRecorder()

		handler.GetNextTask(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("Missing learner context", func(t *testing.T) {
		t.Parallel()
		handler := NewRecommendHandler(&mockRecommendationService{}, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/api/practice/next", nil)
		w := httptest.NewRecorder()

		handler.GetNextTask(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
