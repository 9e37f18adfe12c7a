// Package metrics accumulates scalar summaries of a recorded session. Every
// metric is a sim.Observer so it can be attached to a Runner.
package metrics

import "github.com/san-kum/orbsim/internal/sim"

type Metric interface {
	sim.Observer
	Name() string
	Value() float64
	Reset()
}

// Default returns a fresh set of the metrics stored with every run.
func Default() []Metric {
	return []Metric{
		NewIdleFraction(),
		NewMeanOpacity(),
		NewIdleTransitions(),
		NewPathLength(),
	}
}

// Collect folds metrics into the map the run store persists.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Replay feeds already recorded frames through ms.
func Replay(ms []Metric, frames []sim.Frame) {
	for _, f := range frames {
		for _, m := range ms {
			m.OnFrame(f)
		}
	}
}
