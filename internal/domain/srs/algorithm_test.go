package srs

import (
	"testing"
	"time"

	"github.com/glossadev/glossa-api/internal/domain"
)

func TestCalculateNewEase(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		grade    domain.Grade
		expected float64
	}{
		{
			name:     "Fail grade should decrease ease",
			current:  2.3,
			grade:    domain.GradeFail,
			expected: 2.00, // 2.3 - 0.30
		},
		{
			name:     "Hard grade should slightly decrease ease",
			current:  2.3,
			grade:    domain.GradeHard,
			expected: 2.25, // 2.3 - 0.05
		},
		{
			name:     "Good grade should slightly increase ease",
			current:  2.3,
			grade:    domain.GradeGood,
			expected: 2.35, // 2.3 + 0.05
		},
		{
			name:     "Easy grade should increase ease",
			current:  2.3,
			grade:    domain.GradeEasy,
			expected: 2.45, // 2.3 + 0.15
		},
		{
			name:     "Ease never drops below the floor",
			current:  1.4,
			grade:    domain.GradeFail,
			expected: 1.30, // 1.4 - 0.30 = 1.1, clamped
		},
		{
			name:     "Ease at the floor stays at the floor",
			current:  1.3,
			grade:    domain.GradeFail,
			expected: 1.30,
		},
		{
			name:     "Zero ease falls back to the default",
			current:  0,
			grade:    domain.GradeGood,
			expected: 2.35, // 2.3 + 0.05
		},
		{
			name:     "Result is rounded to two decimals",
			current:  2.33,
			grade:    domain.GradeHard,
			expected: 2.28,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newEase := calculateNewEase(tc.current, tc.grade, params)

			if newEase != tc.expected {
				t.Errorf("Expected ease %.2f, got %.2f", tc.expected, newEase)
			}
		})
	}
}

func TestCalculateNewEaseFloorUnderRepeatedFails(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	ease := params.DefaultEase
	for i := 0; i < 20; i++ {
		ease = calculateNewEase(ease, domain.GradeFail, params)
		if ease < params.MinEase {
			t.Fatalf("Ease %.2f dropped below floor %.2f after %d fails", ease, params.MinEase, i+1)
		}
	}

	if ease != params.MinEase {
		t.Errorf("Expected ease to settle at floor %.2f, got %.2f", params.MinEase, ease)
	}
}

func TestCalculateNewInterval(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name      string
		newStreak int
		grade     domain.Grade
		expected  int
	}{
		{
			name:      "Fail resets the interval",
			newStreak: 0,
			grade:     domain.GradeFail,
			expected:  0,
		},
		{
			name:      "First pass schedules one day out",
			newStreak: 1,
			grade:     domain.GradeGood,
			expected:  1,
		},
		{
			name:      "Second pass schedules two days out",
			newStreak: 2,
			grade:     domain.GradeGood,
			expected:  2,
		},
		{
			name:      "Sixth pass uses the last table entry",
			newStreak: 6,
			grade:     domain.GradeEasy,
			expected:  24,
		},
		{
			name:      "Streak beyond the table uses the cap",
			newStreak: 7,
			grade:     domain.GradeGood,
			expected:  params.MaxIntervalDays,
		},
		{
			name:      "Long streak stays at the cap",
			newStreak: 40,
			grade:     domain.GradeEasy,
			expected:  params.MaxIntervalDays,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newInterval := calculateNewInterval(tc.newStreak, tc.grade, params)

			if newInterval != tc.expected {
				t.Errorf("Expected interval %d, got %d", tc.expected, newInterval)
			}
		})
	}
}

func TestIntervalMonotonicity(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	prev := 0
	for streak := 1; streak <= 12; streak++ {
		interval := calculateNewInterval(streak, domain.GradeGood, params)
		if interval < prev {
			t.Fatalf("Interval shrank from %d to %d at streak %d", prev, interval, streak)
		}
		if interval > params.MaxIntervalDays {
			t.Fatalf("Interval %d exceeds cap %d at streak %d", interval, params.MaxIntervalDays, streak)
		}
		prev = interval
	}
}

func TestCalculateNextDue(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		interval int
		expected time.Time
	}{
		{
			name:     "Zero interval is due immediately",
			interval: 0,
			expected: now,
		},
		{
			name:     "One day interval",
			interval: 1,
			expected: now.AddDate(0, 0, 1),
		},
		{
			name:     "Capped interval",
			interval: 35,
			expected: now.AddDate(0, 0, 35),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			due := calculateNextDue(tc.interval, now)

			if !due.Equal(tc.expected) {
				t.Errorf("Expected due at %v, got %v", tc.expected, due)
			}
		})
	}
}

func TestCalculateScheduleFirstFail(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// A never-seen item failed on first exposure.
	schedule := calculateSchedule(0, 0, domain.ReviewStatusNew, domain.GradeFail, now, params)

	if schedule.Ease != 2.00 {
		t.Errorf("Expected ease 2.00, got %.2f", schedule.Ease)
	}
	if schedule.Streak != 0 {
		t.Errorf("Expected streak 0, got %d", schedule.Streak)
	}
	if schedule.IntervalDays != 0 {
		t.Errorf("Expected interval 0, got %d", schedule.IntervalDays)
	}
	if !schedule.NextDueAt.Equal(now) {
		t.Errorf("Expected item due immediately, got %v", schedule.NextDueAt)
	}
	if schedule.Status != domain.ReviewStatusLearning {
		t.Errorf("Expected status learning, got %s", schedule.Status)
	}
	if schedule.Mastered {
		t.Error("A failed first review must not report mastery")
	}
}

func TestCalculateScheduleConsecutivePasses(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ease := 0.0
	streak := 0
	status := domain.ReviewStatusNew

	var schedule Schedule
	for i := 0; i < 7; i++ {
		schedule = calculateSchedule(ease, streak, status, domain.GradeEasy, now, params)
		ease = schedule.Ease
		streak = schedule.Streak
		status = schedule.Status
	}

	// Seven easy passes: ease 2.3 + 7*0.15, streak 7, capped interval.
	if schedule.Ease != 3.35 {
		t.Errorf("Expected ease 3.35 after seven easy passes, got %.2f", schedule.Ease)
	}
	if schedule.Streak != 7 {
		t.Errorf("Expected streak 7, got %d", schedule.Streak)
	}
	if schedule.IntervalDays != params.MaxIntervalDays {
		t.Errorf("Expected capped interval %d, got %d", params.MaxIntervalDays, schedule.IntervalDays)
	}
	if schedule.Status != domain.ReviewStatusLearning {
		t.Errorf("Expected status learning one pass short of mastery, got %s", schedule.Status)
	}
	if schedule.Mastered {
		t.Error("Mastery must not trigger at streak 7")
	}

	// The eighth pass graduates the item.
	schedule = calculateSchedule(ease, streak, status, domain.GradeEasy, now, params)
	if schedule.Streak != 8 {
		t.Errorf("Expected streak 8, got %d", schedule.Streak)
	}
	if schedule.Status != domain.ReviewStatusMastered {
		t.Errorf("Expected status mastered at streak 8, got %s", schedule.Status)
	}
	if !schedule.Mastered {
		t.Error("Expected mastery to trigger at streak 8")
	}
}

func TestCalculateScheduleFailAfterMastery(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	schedule := calculateSchedule(3.5, 10, domain.ReviewStatusMastered, domain.GradeFail, now, params)

	if schedule.Streak != 0 {
		t.Errorf("Expected streak reset to 0, got %d", schedule.Streak)
	}
	if schedule.IntervalDays != 0 {
		t.Errorf("Expected interval reset to 0, got %d", schedule.IntervalDays)
	}
	if schedule.Status != domain.ReviewStatusLearning {
		t.Errorf("Expected mastered item to drop to learning, got %s", schedule.Status)
	}
	if schedule.Mastered {
		t.Error("A fail must not report mastery")
	}
}

func TestCalculateScheduleDeterminism(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := calculateSchedule(2.45, 3, domain.ReviewStatusLearning, domain.GradeGood, now, params)
	second := calculateSchedule(2.45, 3, domain.ReviewStatusLearning, domain.GradeGood, now, params)

	if first != second {
		t.Errorf("Identical inputs produced different schedules: %+v vs %+v", first, second)
	}
}
