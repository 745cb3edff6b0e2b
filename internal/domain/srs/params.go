package srs

import "github.com/glossadev/glossa-api/internal/domain"

// Params holds every tunable constant of the scheduling policy. The pure
// calculation functions take a Params by reference so the numbers can be
// recalibrated without touching the grading state machine.
type Params struct {
	// DefaultEase is used when an item has no prior ease recorded.
	DefaultEase float64

	// MinEase is the floor the ease can never drop below, no matter how
	// many consecutive failures occur.
	MinEase float64

	// EaseDelta is the per-grade adjustment applied to the ease.
	EaseDelta map[domain.Grade]float64

	// PassIntervals maps the post-update streak to an interval in days.
	// Streaks beyond the table length use MaxIntervalDays.
	PassIntervals []int

	// MaxIntervalDays is the ceiling the interval approaches.
	MaxIntervalDays int

	// MasteryStreak is the consecutive-correct count at which an item
	// graduates to mastered.
	MasteryStreak int
}

// ParamsConfig overrides selected defaults when building Params.
// Zero values keep the default.
type ParamsConfig struct {
	DefaultEase     float64
	MinEase         float64
	MaxIntervalDays int
	MasteryStreak   int
}

// NewDefaultParams returns the production scheduling policy.
func NewDefaultParams() *Params {
	return &Params{
		DefaultEase: 2.3,
		MinEase:     1.3,

		EaseDelta: map[domain.Grade]float64{
			domain.GradeFail: -0.30,
			domain.GradeHard: -0.05,
			domain.GradeGood: 0.05,
			domain.GradeEasy: 0.15,
		},

		// Index 0 is unused: a passing review always has streak >= 1.
		PassIntervals: []int{0, 1, 2, 4, 8, 16, 24},

		MaxIntervalDays: 35,
		MasteryStreak:   8,
	}
}

// NewParams builds Params from the defaults with any overrides applied.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.DefaultEase > 0 {
		params.DefaultEase = config.DefaultEase
	}
	if config.MinEase > 0 {
		params.MinEase = config.MinEase
	}
	if config.MaxIntervalDays > 0 {
		params.MaxIntervalDays = config.MaxIntervalDays
	}
	if config.MasteryStreak > 0 {
		params.MasteryStreak = config.MasteryStreak
	}

	return params
}
