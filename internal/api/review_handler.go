// Package api provides HTTP handlers for the engine's API surface.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/glossadev/glossa-api/internal/api/shared"
	"github.com/glossadev/glossa-api/internal/domain"
	"github.com/glossadev/glossa-api/internal/platform/logger"
	"github.com/glossadev/glossa-api/internal/redact"
	"github.com/glossadev/glossa-api/internal/service/review"
)

// ReviewHandler handles grading and due-queue HTTP requests.
type ReviewHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.ReviewService, log *slog.Logger) *ReviewHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        log.With(slog.String("component", "review_handler")),
	}
}

// GradeRequest represents the request body for submitting a grade.
type GradeRequest struct {
	ItemType string `json:"item_type" validate:"required,oneof=word expression example"`
	ItemID   string `json:"item_id"   validate:"required,uuid"`
	Grade    int    `json:"grade"     validate:"required,min=1,max=4"`
}

// ReviewStatsResponse represents the updated ledger row in the response.
type ReviewStatsResponse struct {
	ItemID          string         `json:"item_id"`
	Status          string         `json:"status"`
	StreakCorrect   int            `json:"streak_correct"`
	IntervalDays    int            `json:"interval_days"`
	Ease            float64        `json:"ease"`
	LastSeenAt      time.Time      `json:"last_seen_at"`
	NextDueAt       time.Time      `json:"next_due_at"`
	AttemptCounters map[string]int `json:"attempt_counters"`
}

// QueueEntryResponse represents the updated queue entry in the response.
type QueueEntryResponse struct {
	ItemType string    `json:"item_type"`
	ItemID   string    `json:"item_id"`
	DueAt    time.Time `json:"due_at"`
	Priority int       `json:"priority"`
}

// GradeResponse is the full response for a grading event.
type GradeResponse struct {
	Stats   ReviewStatsResponse `json:"stats"`
	Queue   QueueEntryResponse  `json:"queue"`
	Mastery bool                `json:"mastery"`
}

// SubmitGrade handles POST /reviews requests. It records one grading
// event and returns the updated schedule.
func (h *ReviewHandler) SubmitGrade(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := r.Context().Value(shared.LearnerIDContextKey).(uuid.UUID)
	if !ok || learnerID == uuid.Nil {
		log.Warn("learner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Learner ID not found or invalid")
		return
	}

	var req GradeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("learner_id", learnerID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("learner_id", learnerID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	ref := domain.ItemRef{Kind: domain.ItemKind(req.ItemType), ID: itemID}

	result, err := h.reviewService.Grade(r.Context(), learnerID, ref, domain.Grade(req.Grade))
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit grade"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("successfully submitted grade",
		slog.String("learner_id", learnerID.String()),
		slog.String("item_id", itemID.String()),
		slog.Int("grade", req.Grade),
		slog.Bool("mastery", result.Mastery))
	shared.RespondWithJSON(w, r, http.StatusOK, gradeResultToResponse(result))
}

// GetDueQueue handles GET /reviews/queue requests. Due-ness is decided
// here, at read time, against the stored due timestamps.
func (h *ReviewHandler) GetDueQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := r.Context().Value(shared.LearnerIDContextKey).(uuid.UUID)
	if !ok || learnerID == uuid.Nil {
		log.Warn("learner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Learner ID not found or invalid")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.reviewService.DueQueue(r.Context(), learnerID, limit)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to load due queue"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	responses := make([]QueueEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, queueEntryToResponse(&entry))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"due": responses,
	})
}

// gradeResultToResponse converts a review.GradeResult to a GradeResponse.
func gradeResultToResponse(result *review.GradeResult) GradeResponse {
	return GradeResponse{
		Stats: ReviewStatsResponse{
			ItemID:        result.Stats.WordID.String(),
			Status:        string(result.Stats.Status),
			StreakCorrect: result.Stats.StreakCorrect,
			IntervalDays:  result.Stats.IntervalDays,
			Ease:          result.Stats.Ease,
			LastSeenAt:    result.Stats.LastSeenAt,
			NextDueAt:     result.Stats.NextDueAt,
			AttemptCounters: map[string]int{
				"pass": result.Stats.PassCount,
				"fail": result.Stats.FailCount,
			},
		},
		Queue:   queueEntryToResponse(result.Queue),
		Mastery: result.Mastery,
	}
}

// queueEntryToResponse converts a domain.QueueEntry to a QueueEntryResponse.
func queueEntryToResponse(entry *domain.QueueEntry) QueueEntryResponse {
	return QueueEntryResponse{
		ItemType: string(entry.Ref.Kind),
		ItemID:   entry.Ref.ID.String(),
		DueAt:    entry.DueAt,
		Priority: entry.Priority,
	}
}
