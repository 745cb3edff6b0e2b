package srs

import (
	"math"
	"time"

	"github.com/glossadev/glossa-api/internal/domain"
)

// calculateNewEase applies the per-grade delta to the previous ease and
// clamps the result at the configured floor, rounded to two decimals.
// A missing or non-finite previous ease falls back to the default, so a
// corrupt row can never poison the schedule.
func calculateNewEase(previousEase float64, grade domain.Grade, params *Params) float64 {
	if previousEase == 0 || math.IsNaN(previousEase) || math.IsInf(previousEase, 0) {
		previousEase = params.DefaultEase
	}

	newEase := previousEase + params.EaseDelta[grade]
	if newEase < params.MinEase {
		newEase = params.MinEase
	}

	return math.Round(newEase*100) / 100
}

// calculateNewInterval maps the post-update streak to a review interval
// in days. A fail always resets the interval to zero; passing intervals
// follow a monotone step table capped at MaxIntervalDays.
func calculateNewInterval(newStreak int, grade domain.Grade, params *Params) int {
	if !grade.IsPass() {
		return 0
	}

	if newStreak < len(params.PassIntervals) {
		return params.PassIntervals[newStreak]
	}
	return params.MaxIntervalDays
}

// calculateNextDue converts the interval into a due timestamp. Failed
// items come due immediately so the queue resurfaces them in the same
// session.
func calculateNextDue(intervalDays int, now time.Time) time.Time {
	if intervalDays <= 0 {
		return now
	}
	return now.AddDate(0, 0, intervalDays)
}

// Schedule is the outcome of applying the interval policy and mastery
// classifier to one grading event.
type Schedule struct {
	Ease         float64
	Streak       int
	IntervalDays int
	NextDueAt    time.Time
	Status       domain.ReviewStatus
	Mastered     bool
}

// calculateSchedule computes the complete post-review state from the
// prior state. It is pure and deterministic: identical inputs always
// yield identical outputs, which keeps grading safely replayable.
func calculateSchedule(
	priorEase float64,
	priorStreak int,
	priorStatus domain.ReviewStatus,
	grade domain.Grade,
	now time.Time,
	params *Params,
) Schedule {
	newStreak := 0
	if grade.IsPass() {
		newStreak = priorStreak + 1
	}

	ease := calculateNewEase(priorEase, grade, params)
	interval := calculateNewInterval(newStreak, grade, params)

	return Schedule{
		Ease:         ease,
		Streak:       newStreak,
		IntervalDays: interval,
		NextDueAt:    calculateNextDue(interval, now),
		Status:       nextStatus(priorStatus, newStreak, params),
		Mastered:     isMastered(newStreak, params),
	}
}
