package metrics

import "github.com/san-kum/orbsim/internal/sim"

// IdleFraction is the share of frames spent idle.
type IdleFraction struct {
	idle    int
	samples int
}

func NewIdleFraction() *IdleFraction {
	return &IdleFraction{}
}

func (m *IdleFraction) Name() string {
	return "idle_fraction"
}

func (m *IdleFraction) OnFrame(f sim.Frame) {
	m.samples++
	if f.Idle {
		m.idle++
	}
}

func (m *IdleFraction) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.idle) / float64(m.samples)
}

func (m *IdleFraction) Reset() {
	m.idle = 0
	m.samples = 0
}

// IdleTransitions counts active -> idle edges, one per teleport.
type IdleTransitions struct {
	count   int
	last    bool
	started bool
}

func NewIdleTransitions() *IdleTransitions {
	return &IdleTransitions{}
}

func (m *IdleTransitions) Name() string { return "idle_transitions" }

func (m *IdleTransitions) OnFrame(f sim.Frame) {
	if m.started && f.Idle && !m.last {
		m.count++
	}
	m.last = f.Idle
	m.started = true
}

func (m *IdleTransitions) Value() float64 { return float64(m.count) }

func (m *IdleTransitions) Reset() {
	*m = IdleTransitions{}
}
