package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func validStats() *ReviewStats {
	now := time.Now().UTC()
	return &ReviewStats{
		LearnerID:     uuid.New(),
		WordID:        uuid.New(),
		Ease:          2.3,
		StreakCorrect: 1,
		Status:        ReviewStatusLearning,
		IntervalDays:  1,
		LastResult:    ReviewResultPass,
		PassCount:     1,
		LastSeenAt:    now,
		NextDueAt:     now.AddDate(0, 0, 1),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestGradeValid(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		grade    Grade
		expected bool
	}{
		{0, false},
		{GradeFail, true},
		{GradeHard, true},
		{GradeGood, true},
		{GradeEasy, true},
		{5, false},
		{-1, false},
	}

	for _, tc := range testCases {
		if got := tc.grade.Valid(); got != tc.expected {
			t.Errorf("Grade(%d).Valid() = %v, expected %v", tc.grade, got, tc.expected)
		}
	}
}

func TestGradeIsPass(t *testing.T) {
	t.Parallel()

	if GradeFail.IsPass() {
		t.Error("Grade 1 must count as a fail")
	}
	for _, g := range []Grade{GradeHard, GradeGood, GradeEasy} {
		if !g.IsPass() {
			t.Errorf("Grade %d must count as a pass", g)
		}
	}
}

func TestItemKind(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		kind    ItemKind
		valid   bool
		derived bool
	}{
		{ItemKindWord, true, false},
		{ItemKindExpression, true, true},
		{ItemKindExample, true, true},
		{ItemKind("sentence"), false, false},
		{ItemKind(""), false, false},
	}

	for _, tc := range testCases {
		if got := tc.kind.Valid(); got != tc.valid {
			t.Errorf("ItemKind(%q).Valid() = %v, expected %v", tc.kind, got, tc.valid)
		}
		if got := tc.kind.IsDerived(); got != tc.derived {
			t.Errorf("ItemKind(%q).IsDerived() = %v, expected %v", tc.kind, got, tc.derived)
		}
	}
}

func TestReviewStatsValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		modify   func(*ReviewStats)
		expected error
	}{
		{
			name:     "Valid stats pass",
			modify:   func(s *ReviewStats) {},
			expected: nil,
		},
		{
			name:     "Empty learner ID",
			modify:   func(s *ReviewStats) { s.LearnerID = uuid.Nil },
			expected: ErrEmptyLearnerID,
		},
		{
			name:     "Empty word ID",
			modify:   func(s *ReviewStats) { s.WordID = uuid.Nil },
			expected: ErrEmptyWordID,
		},
		{
			name:     "Ease at or below 1.0",
			modify:   func(s *ReviewStats) { s.Ease = 1.0 },
			expected: ErrInvalidEase,
		},
		{
			name:     "Negative streak",
			modify:   func(s *ReviewStats) { s.StreakCorrect = -1 },
			expected: ErrInvalidStreak,
		},
		{
			name:     "Negative interval",
			modify:   func(s *ReviewStats) { s.IntervalDays = -1 },
			expected: ErrInvalidInterval,
		},
		{
			name:     "New status cannot be persisted",
			modify:   func(s *ReviewStats) { s.Status = ReviewStatusNew },
			expected: ErrInvalidStatus,
		},
		{
			name:     "Unknown last result",
			modify:   func(s *ReviewStats) { s.LastResult = "skipped" },
			expected: ErrInvalidLastResult,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stats := validStats()
			tc.modify(stats)

			err := stats.Validate()
			if !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestQueueEntryValidate(t *testing.T) {
	t.Parallel()

	valid := QueueEntry{
		LearnerID: uuid.New(),
		Ref:       ItemRef{Kind: ItemKindExpression, ID: uuid.New()},
		DueAt:     time.Now().UTC(),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid entry, got %v", err)
	}

	missing := valid
	missing.LearnerID = uuid.Nil
	if err := missing.Validate(); !errors.Is(err, ErrEmptyLearnerID) {
		t.Errorf("Expected ErrEmptyLearnerID, got %v", err)
	}

	badKind := valid
	badKind.Ref.Kind = "sentence"
	if err := badKind.Validate(); !errors.Is(err, ErrInvalidItemKind) {
		t.Errorf("Expected ErrInvalidItemKind, got %v", err)
	}

	negative := valid
	negative.Priority = -1
	if err := negative.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Expected ErrInvalidPriority, got %v", err)
	}
}
