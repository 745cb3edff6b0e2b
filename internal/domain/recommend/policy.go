package recommend

// Policy holds the tunable constants of the recommendation scorer.
// Like srs.Params it is passed by reference into the pure functions so
// recalibration never touches the selection logic.
type Policy struct {
	// WeakSignalBar is the accuracy at or above which a fine-grained
	// observation no longer counts as weak.
	WeakSignalBar float64

	// DeficitWeight scales the matched deficit's severity.
	DeficitWeight float64

	// FocusBonus is added when a task explicitly tags the matched
	// deficit key as its focus.
	FocusBonus float64

	// SignalWeight scales (1 - accuracy) of a targeted weak sub-skill.
	SignalWeight float64

	// BrevityMinutes is the duration at which the shorter-task
	// preference reaches zero.
	BrevityMinutes float64

	// FatigueRecent is the penalty when a task's module was practiced in
	// the immediately preceding session.
	FatigueRecent float64

	// FatigueWindowPenalty is the penalty when the module appears
	// anywhere else in the recent window.
	FatigueWindowPenalty float64

	// FatigueWindow is how many recent sessions count toward fatigue.
	FatigueWindow int
}

// DefaultPolicy returns the production scoring policy.
func DefaultPolicy() *Policy {
	return &Policy{
		WeakSignalBar:        0.85,
		DeficitWeight:        3.0,
		FocusBonus:           1.5,
		SignalWeight:         1.25,
		BrevityMinutes:       30,
		FatigueRecent:        0.4,
		FatigueWindowPenalty: 0.2,
		FatigueWindow:        3,
	}
}
