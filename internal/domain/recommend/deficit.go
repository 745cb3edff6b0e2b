package recommend

import (
	"math"
	"sort"
)

// Module is a practice area of the curriculum.
type Module string

const (
	ModuleSpeaking   Module = "speaking"
	ModuleReading    Module = "reading"
	ModuleWriting    Module = "writing"
	ModuleVocabulary Module = "vocabulary"
	ModuleListening  Module = "listening"
)

// MetricTarget pairs a tracked profile metric with its module and the
// level the curriculum expects.
type MetricTarget struct {
	Key    string
	Module Module
	Target float64
}

// metricTargets is the fixed table of tracked skill dimensions. Order
// matters: it is the tie-break for equal severities, so downstream
// consumers see a deterministic ranking.
var metricTargets = []MetricTarget{
	{Key: "pronunciation_accuracy", Module: ModuleSpeaking, Target: 0.85},
	{Key: "fluency", Module: ModuleSpeaking, Target: 0.75},
	{Key: "reading_comprehension", Module: ModuleReading, Target: 0.80},
	{Key: "reading_speed", Module: ModuleReading, Target: 0.70},
	{Key: "writing_accuracy", Module: ModuleWriting, Target: 0.75},
	{Key: "vocabulary_range", Module: ModuleVocabulary, Target: 0.80},
	{Key: "listening_accuracy", Module: ModuleListening, Target: 0.80},
}

// MetricTargets returns a copy of the tracked target table.
func MetricTargets() []MetricTarget {
	out := make([]MetricTarget, len(metricTargets))
	copy(out, metricTargets)
	return out
}

// Deficit is a learner's measured shortfall on one tracked skill
// dimension. Derived per call, never persisted.
type Deficit struct {
	Key     string   `json:"key"`
	Module  Module   `json:"module"`
	Current *float64 `json:"current"` // nil when no measurement exists
	Target  float64  `json:"target"`
	// Severity is 0 when the learner meets the target and 1 when no
	// measurement exists: absence of data is maximal uncertainty, not
	// competence.
	Severity float64 `json:"severity"`
}

// ComputeDeficits ranks the learner's shortfalls against the target
// table, worst first. profile maps metric keys to 0..1 scores; keys
// outside the table are ignored and missing keys score severity 1.
func ComputeDeficits(profile map[string]float64) []Deficit {
	deficits := make([]Deficit, 0, len(metricTargets))

	for _, target := range metricTargets {
		value, measured := profile[target.Key]

		d := Deficit{
			Key:    target.Key,
			Module: target.Module,
			Target: target.Target,
		}

		// NaN compares false against everything, so clamping would pass
		// it through into the severity; treat it as no measurement.
		if !measured || math.IsNaN(value) {
			d.Severity = 1
		} else {
			v := clamp01(value)
			d.Current = &v
			d.Severity = clamp01((target.Target - v) / target.Target)
		}

		deficits = append(deficits, d)
	}

	// Stable keeps the table order for ties.
	sort.SliceStable(deficits, func(i, j int) bool {
		return deficits[i].Severity > deficits[j].Severity
	})

	return deficits
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
