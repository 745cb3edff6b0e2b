package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/glossadev/glossa-api/internal/api/shared"
	"github.com/glossadev/glossa-api/internal/platform/logger"
	"github.com/glossadev/glossa-api/internal/service/recommend"
)

// RecommendHandler handles next-task recommendation HTTP requests.
type RecommendHandler struct {
	recommendationService recommend.RecommendationService
	logger                *slog.Logger
}

// NewRecommendHandler creates a new RecommendHandler.
func NewRecommendHandler(
	recommendationService recommend.RecommendationService,
	log *slog.Logger,
) *RecommendHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for RecommendHandler")
	}

	return &RecommendHandler{
		recommendationService: recommendationService,
		logger:                log.With(slog.String("component", "recommend_handler")),
	}
}

// RecommendationResponse wraps the recommendation, which is null when no
// task is eligible.
type RecommendationResponse struct {
	Recommendation interface{} `json:"recommendation"`
}

// GetNextTask handles GET /practice/next requests. A learner with no
// eligible task gets a null recommendation, not an error - the UI falls
// back to its static suggestion.
func (h *RecommendHandler) GetNextTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := r.Context().Value(shared.LearnerIDContextKey).(uuid.UUID)
	if !ok || learnerID == uuid.Nil {
		log.Warn("learner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Learner ID not found or invalid")
		return
	}

	rec, err := h.recommendationService.NextTask(r.Context(), learnerID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to compute recommendation"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := RecommendationResponse{}
	if rec != nil {
		response.Recommendation = rec
		log.Debug("returning recommendation",
			slog.String("learner_id", learnerID.String()),
			slog.String("task_id", rec.Task.ID.String()),
			slog.Float64("score", rec.Score))
	} else {
		log.Debug("no recommendation available",
			slog.String("learner_id", learnerID.String()))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
