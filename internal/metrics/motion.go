package metrics

import "github.com/san-kum/orbsim/internal/sim"

type MeanOpacity struct {
	sum     float64
	samples int
}

func NewMeanOpacity() *MeanOpacity {
	return &MeanOpacity{}
}

func (m *MeanOpacity) Name() string {
	return "mean_opacity"
}

func (m *MeanOpacity) OnFrame(f sim.Frame) {
	m.sum += f.Opacity
	m.samples++
}

func (m *MeanOpacity) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanOpacity) Reset() {
	m.sum = 0
	m.samples = 0
}

// PathLength is the distance travelled by the orb, ignoring teleports.
type PathLength struct {
	total    float64
	prev     sim.Frame
	havePrev bool
}

func NewPathLength() *PathLength {
	return &PathLength{}
}

func (m *PathLength) Name() string {
	return "path_length"
}

func (m *PathLength) OnFrame(f sim.Frame) {
	if m.havePrev && f.Idle == m.prev.Idle {
		m.total += f.Position.Sub(m.prev.Position).Len()
	}
	m.prev = f
	m.havePrev = true
}

func (m *PathLength) Value() float64 {
	return m.total
}

func (m *PathLength) Reset() {
	m.total = 0
	m.havePrev = false
}
