package srs

import (
	"errors"
	"time"

	"github.com/glossadev/glossa-api/internal/domain"
)

// Common errors
var (
	ErrInvalidGrade = errors.New("invalid review grade")
)

// Service exposes the scheduling policy to the grading transaction.
type Service interface {
	// NextSchedule computes the post-review schedule from the prior
	// ledger state. prior may be nil for a never-seen item.
	NextSchedule(prior *domain.ReviewStats, grade domain.Grade, now time.Time) (Schedule, error)

	// Params returns the policy constants in effect, for reporting.
	Params() *Params
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduling service with default policy.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a scheduling service with custom policy.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// NextSchedule implements Service.
func (s *defaultService) NextSchedule(
	prior *domain.ReviewStats,
	grade domain.Grade,
	now time.Time,
) (Schedule, error) {
	if !grade.Valid() {
		return Schedule{}, ErrInvalidGrade
	}

	priorEase := 0.0
	priorStreak := 0
	priorStatus := domain.ReviewStatusNew
	if prior != nil {
		priorEase = prior.Ease
		priorStreak = prior.StreakCorrect
		priorStatus = prior.Status
	}

	return calculateSchedule(priorEase, priorStreak, priorStatus, grade, now, s.params), nil
}

// Params implements Service.
func (s *defaultService) Params() *Params {
	return s.params
}
