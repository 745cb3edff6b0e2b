package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Grade is the learner's self-assessment of one review, on a 1-4 scale.
type Grade int

// Possible grade values
const (
	GradeFail Grade = 1
	GradeHard Grade = 2
	GradeGood Grade = 3
	GradeEasy Grade = 4
)

// Valid reports whether the grade is within the accepted 1-4 range.
func (g Grade) Valid() bool {
	return g >= GradeFail && g <= GradeEasy
}

// IsPass reports whether the grade counts as a successful recall.
// Only the lowest grade is a failure.
func (g Grade) IsPass() bool {
	return g > GradeFail
}

// ReviewStatus represents where an item sits in the learning lifecycle.
type ReviewStatus string

// Possible review status values
const (
	ReviewStatusNew      ReviewStatus = "new"
	ReviewStatusLearning ReviewStatus = "learning"
	ReviewStatusMastered ReviewStatus = "mastered"
)

// ReviewResult records the outcome of the most recent review.
type ReviewResult string

// Possible review result values
const (
	ReviewResultPass ReviewResult = "pass"
	ReviewResultFail ReviewResult = "fail"
)

// Common validation errors for review entities
var (
	ErrEmptyLearnerID    = errors.New("learner ID cannot be empty")
	ErrEmptyWordID       = errors.New("word ID cannot be empty")
	ErrEmptyItemID       = errors.New("item ID cannot be empty")
	ErrInvalidGrade      = errors.New("grade must be between 1 and 4")
	ErrInvalidEase       = errors.New("ease must be greater than 1.0")
	ErrInvalidStreak     = errors.New("streak must be greater than or equal to 0")
	ErrInvalidInterval   = errors.New("interval must be greater than or equal to 0")
	ErrInvalidStatus     = errors.New("invalid review status")
	ErrInvalidLastResult = errors.New("invalid last review result")
	ErrInvalidPriority   = errors.New("priority must be greater than or equal to 0")
)

// ReviewStats is the per-(learner, word) scheduling ledger row. Derived
// items (expressions, examples) share the parent word's row, so grading
// any surface form of a word moves one schedule.
type ReviewStats struct {
	LearnerID     uuid.UUID    `json:"learner_id"`
	WordID        uuid.UUID    `json:"word_id"`
	Ease          float64      `json:"ease"`
	StreakCorrect int          `json:"streak_correct"`
	Status        ReviewStatus `json:"status"`
	IntervalDays  int          `json:"interval_days"`
	LastResult    ReviewResult `json:"last_result"`
	PassCount     int          `json:"pass_count"`
	FailCount     int          `json:"fail_count"`
	LastSeenAt    time.Time    `json:"last_seen_at"`
	NextDueAt     time.Time    `json:"next_due_at"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Validate checks if the ReviewStats has valid data. A persisted row is
// always past its first review, so the status must be learning or
// mastered; new exists only as the in-memory prior state.
func (s *ReviewStats) Validate() error {
	if s.LearnerID == uuid.Nil {
		return ErrEmptyLearnerID
	}

	if s.WordID == uuid.Nil {
		return ErrEmptyWordID
	}

	if s.Ease <= 1.0 {
		return ErrInvalidEase
	}

	if s.StreakCorrect < 0 {
		return ErrInvalidStreak
	}

	if s.IntervalDays < 0 {
		return ErrInvalidInterval
	}

	if s.Status != ReviewStatusLearning && s.Status != ReviewStatusMastered {
		return ErrInvalidStatus
	}

	if s.LastResult != ReviewResultPass && s.LastResult != ReviewResultFail {
		return ErrInvalidLastResult
	}

	return nil
}

// QueueEntry is one row of the learner's review queue. The queue keys on
// the item as presented, not the resolved word, so a learner sees the
// exact expression or example they struggled with.
type QueueEntry struct {
	LearnerID uuid.UUID `json:"learner_id"`
	Ref       ItemRef   `json:"ref"`
	DueAt     time.Time `json:"due_at"`
	Priority  int       `json:"priority"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks if the QueueEntry has valid data.
func (e *QueueEntry) Validate() error {
	if e.LearnerID == uuid.Nil {
		return ErrEmptyLearnerID
	}

	if err := e.Ref.Validate(); err != nil {
		return err
	}

	if e.Priority < 0 {
		return ErrInvalidPriority
	}

	return nil
}
