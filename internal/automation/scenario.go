// Package automation loads pointer scenarios from yaml. A scenario is a
// sim.Script, so it can drive any run the built-in scripts can.
package automation

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/san-kum/orbsim/internal/orb"
	"github.com/san-kum/orbsim/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario is a timeline of pointer steps.
type Scenario struct {
	Title       string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step happens at At. Move is a world position [x, y]; with Glide set the
// pointer travels there from the previous move target over Glide, one
// sample per frame, instead of jumping.
type Step struct {
	At      time.Duration `yaml:"at"`
	Move    []float64     `yaml:"move,omitempty"`
	Glide   time.Duration `yaml:"glide,omitempty"`
	Press   bool          `yaml:"press,omitempty"`
	Release bool          `yaml:"release,omitempty"`
}

var _ sim.Script = (*Scenario)(nil)

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	sort.SliceStable(sc.Steps, func(i, j int) bool { return sc.Steps[i].At < sc.Steps[j].At })
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScenario)
	}
	for i, st := range s.Steps {
		switch {
		case st.At < 0 || st.Glide < 0:
			return fmt.Errorf("%w: step %d has a negative time", ErrInvalidScenario, i)
		case st.Move != nil && len(st.Move) != 2:
			return fmt.Errorf("%w: step %d move needs [x, y], got %v", ErrInvalidScenario, i, st.Move)
		case st.Move != nil && !(orb.Vec2{X: st.Move[0], Y: st.Move[1]}).IsValid():
			return fmt.Errorf("%w: step %d move is not finite", ErrInvalidScenario, i)
		case st.Move == nil && st.Glide > 0:
			return fmt.Errorf("%w: step %d glides without a move", ErrInvalidScenario, i)
		case st.Move == nil && !st.Press && !st.Release:
			return fmt.Errorf("%w: step %d does nothing", ErrInvalidScenario, i)
		}
	}
	return nil
}

func (s *Scenario) Name() string {
	if s.Title == "" {
		return "scenario"
	}
	return s.Title
}

// Length is the time of the last event.
func (s *Scenario) Length() time.Duration {
	var end time.Duration
	for _, st := range s.Steps {
		end = max(end, st.At+st.Glide)
	}
	return end
}

func (s *Scenario) Events(prev, now time.Duration) []orb.Event {
	var events []orb.Event
	in := func(at time.Duration) bool { return at > prev && at <= now }

	var from orb.Vec2
	for _, st := range s.Steps {
		if st.Move != nil {
			to := orb.Vec2{X: st.Move[0], Y: st.Move[1]}
			if st.Glide > 0 {
				if end := st.At + st.Glide; now >= st.At && prev < end {
					t := min(now, end)
					frac := float64(t-st.At) / float64(st.Glide)
					events = append(events, orb.Move(t, lerp(from, to, frac)))
				}
			} else if in(st.At) {
				events = append(events, orb.Move(st.At, to))
			}
			from = to
		}
		if st.Press && in(st.At) {
			events = append(events, orb.Down(st.At))
		}
		if st.Release && in(st.At) {
			events = append(events, orb.Up(st.At))
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })
	return events
}

func lerp(a, b orb.Vec2, t float64) orb.Vec2 {
	t = math.Max(0, math.Min(1, t))
	return a.Add(b.Sub(a).Scale(t))
}
