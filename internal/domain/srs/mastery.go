package srs

import "github.com/glossadev/glossa-api/internal/domain"

// isMastered reports whether the post-update streak has reached the
// mastery threshold on this exact event.
func isMastered(streak int, params *Params) bool {
	return streak >= params.MasteryStreak
}

// nextStatus derives the persisted status after a grading event.
//
// The lifecycle is new -> learning -> mastered, with learning and
// mastered oscillating after the first graduation. An item that has been
// graded is never persisted as new: even a first-ever fail leaves a row
// behind, and that row records prior exposure. A mastered item that
// fails drops to learning, never back to new.
func nextStatus(priorStatus domain.ReviewStatus, newStreak int, params *Params) domain.ReviewStatus {
	if isMastered(newStreak, params) {
		return domain.ReviewStatusMastered
	}
	return domain.ReviewStatusLearning
}
