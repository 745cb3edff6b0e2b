package recommend

import (
	"sort"
	"time"
)

// SignalEvent is one fine-grained accuracy observation, e.g. a single
// phoneme scored during a pronunciation exercise. Symbol keys are
// namespaced ("phoneme:θ", "grapheme:ough").
type SignalEvent struct {
	Symbol     string
	Value      float64
	ObservedAt time.Time
}

// WeakSignal is a sub-skill whose most recent observation fell below the
// weak-signal bar. Derived per call, never persisted.
type WeakSignal struct {
	Symbol     string    `json:"symbol"`
	Value      float64   `json:"value"`
	ObservedAt time.Time `json:"observed_at"`
}

// DetectWeakSignals reduces a window of observations to the acute
// weaknesses: the latest observation per symbol, dropping anything at or
// above the bar, ordered worst first. Malformed rows (values outside
// 0..1 or empty symbols) are skipped rather than failing the scan - one
// bad signal row must never block scheduling for the learner.
func DetectWeakSignals(events []SignalEvent, policy *Policy) []WeakSignal {
	latest := make(map[string]SignalEvent)

	for _, ev := range events {
		if ev.Symbol == "" || ev.Value < 0 || ev.Value > 1 {
			continue
		}
		if prev, ok := latest[ev.Symbol]; !ok || ev.ObservedAt.After(prev.ObservedAt) {
			latest[ev.Symbol] = ev
		}
	}

	signals := make([]WeakSignal, 0, len(latest))
	for _, ev := range latest {
		if ev.Value >= policy.WeakSignalBar {
			continue
		}
		signals = append(signals, WeakSignal{
			Symbol:     ev.Symbol,
			Value:      ev.Value,
			ObservedAt: ev.ObservedAt,
		})
	}

	sort.Slice(signals, func(i, j int) bool {
		if signals[i].Value == signals[j].Value {
			return signals[i].Symbol < signals[j].Symbol
		}
		return signals[i].Value < signals[j].Value
	})

	return signals
}
