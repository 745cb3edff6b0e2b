package recommend

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Tier is a plan entitlement level. Comparison uses the fixed rank
// order, never string comparison.
type Tier string

const (
	TierFree    Tier = "free"
	TierPlus    Tier = "plus"
	TierPremium Tier = "premium"
)

var tierRank = map[Tier]int{
	TierFree:    0,
	TierPlus:    1,
	TierPremium: 2,
}

// AtLeast reports whether t is at or above required in the tier order.
// Unknown tiers rank below free, so a malformed row never unlocks
// gated tasks.
func (t Tier) AtLeast(required Tier) bool {
	return tierRank[t] >= tierRank[required]
}

// Valid reports whether the tier is one of the known plan levels.
func (t Tier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}

// Task is one practice activity from the catalog.
type Task struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Module           Module    `json:"module"`
	FocusKey         string    `json:"focus_key,omitempty"`     // deficit key the task trains directly
	TargetSymbol     string    `json:"target_symbol,omitempty"` // weak sub-skill the task drills
	EstimatedMinutes int       `json:"estimated_minutes"`
	MinTier          Tier      `json:"min_tier"`
	Enabled          bool      `json:"enabled"`
}

// Input is the learner context the scorer works from, assembled by the
// caller from the latest persisted data.
type Input struct {
	Tier     Tier
	Deficits []Deficit
	Signals  []WeakSignal
	Catalog  []Task
	// RecentModules lists the modules practiced in recent sessions,
	// most recent first.
	RecentModules []Module
}

// Recommendation is the selected task with its score and a
// human-readable rationale. Recomputed per request, never persisted.
type Recommendation struct {
	Task     Task     `json:"task"`
	Score    float64  `json:"score"`
	Reason   string   `json:"reason"`
	Evidence []string `json:"evidence"`
}

// Recommend picks the best next practice task. A nil result means no
// task is eligible - an empty catalog or a learner below every task's
// tier is a valid state, not an error.
func Recommend(input Input, policy *Policy) *Recommendation {
	signalsBySymbol := make(map[string]WeakSignal, len(input.Signals))
	for _, sig := range input.Signals {
		signalsBySymbol[sig.Symbol] = sig
	}

	var best *Recommendation
	for _, task := range input.Catalog {
		if !task.Enabled || !input.Tier.AtLeast(task.MinTier) {
			continue
		}

		candidate := scoreTask(task, input, signalsBySymbol, policy)
		if best == nil || candidate.Score > best.Score {
			best = candidate
		}
	}

	return best
}

// scoreTask computes one candidate's score and rationale.
func scoreTask(
	task Task,
	input Input,
	signals map[string]WeakSignal,
	policy *Policy,
) *Recommendation {
	var (
		score    float64
		evidence []string
	)

	deficit, focused := matchDeficit(task, input.Deficits)
	if deficit != nil {
		score += policy.DeficitWeight * deficit.Severity
		if focused {
			score += policy.FocusBonus
		}
		evidence = append(evidence, deficitEvidence(deficit, focused))
	}

	var signal *WeakSignal
	if task.TargetSymbol != "" {
		if sig, ok := signals[task.TargetSymbol]; ok {
			signal = &sig
			score += policy.SignalWeight * (1 - sig.Value)
			evidence = append(evidence,
				fmt.Sprintf("recent accuracy on %s is %.0f%%", sig.Symbol, sig.Value*100))
		}
	}

	score += math.Max(0, 1-float64(task.EstimatedMinutes)/policy.BrevityMinutes)
	score -= fatiguePenalty(task.Module, input.RecentModules, policy)

	return &Recommendation{
		Task:     task,
		Score:    score,
		Reason:   buildReason(deficit, signal),
		Evidence: evidence,
	}
}

// matchDeficit finds the most relevant deficit for a task: an explicit
// focus-key match wins; otherwise the highest-severity deficit for the
// task's module (the deficits slice is already ranked). A module with no
// tracked key contributes nothing.
func matchDeficit(task Task, deficits []Deficit) (*Deficit, bool) {
	if task.FocusKey != "" {
		for i := range deficits {
			if deficits[i].Key == task.FocusKey {
				return &deficits[i], true
			}
		}
	}

	for i := range deficits {
		if deficits[i].Module == task.Module {
			return &deficits[i], false
		}
	}

	return nil, false
}

// fatiguePenalty discourages repeating a module without forbidding it: a
// learner with a single eligible module must still get a recommendation.
func fatiguePenalty(module Module, recent []Module, policy *Policy) float64 {
	if len(recent) == 0 {
		return 0
	}
	if recent[0] == module {
		return policy.FatigueRecent
	}

	window := policy.FatigueWindow
	if window > len(recent) {
		window = len(recent)
	}
	for _, m := range recent[1:window] {
		if m == module {
			return policy.FatigueWindowPenalty
		}
	}

	return 0
}

func deficitEvidence(d *Deficit, focused bool) string {
	relation := "module-level deficit"
	if focused {
		relation = "task focus"
	}
	if d.Current == nil {
		return fmt.Sprintf("%s (%s): no measurement yet", d.Key, relation)
	}
	return fmt.Sprintf("%s (%s): %.0f%% vs target %.0f%%",
		d.Key, relation, *d.Current*100, d.Target*100)
}

// buildReason produces the learner-facing justification. It leads with
// the matched deficit's gap when data exists, appends the weak sub-skill
// note when one contributed, and falls back to a generic consistency
// message when the score came entirely from brevity and fatigue terms.
func buildReason(deficit *Deficit, signal *WeakSignal) string {
	var reason string

	switch {
	case deficit != nil && deficit.Current != nil:
		gap := (deficit.Target - *deficit.Current) * 100
		if gap < 0 {
			gap = 0
		}
		reason = fmt.Sprintf("Your %s is %.0f points below target.",
			humanizeKey(deficit.Key), gap)
	case deficit != nil:
		reason = fmt.Sprintf("We have no measurement of your %s yet - this task helps us calibrate.",
			humanizeKey(deficit.Key))
	}

	if signal != nil {
		note := fmt.Sprintf("You have been struggling with %s recently.", signal.Symbol)
		if reason == "" {
			reason = note
		} else {
			reason += " " + note
		}
	}

	if reason == "" {
		reason = "A quick session here keeps your practice streak balanced."
	}

	return reason
}

// humanizeKey turns a metric key into readable text.
func humanizeKey(key string) string {
	out := make([]rune, 0, len(key))
	for _, r := range key {
		if r == '_' {
			out = append(out, ' ')
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
