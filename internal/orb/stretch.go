package orb

import "time"

// Stretch turns press/release timing into a deformation fraction in [0,1].
type Stretch struct {
	duration   time.Duration
	active     bool
	toggled    bool
	lastToggle time.Duration
}

func NewStretch(duration time.Duration) *Stretch {
	return &Stretch{duration: duration}
}

func (s *Stretch) Press(now time.Duration) {
	s.active = true
	s.toggled = true
	s.lastToggle = now
}

func (s *Stretch) Release(now time.Duration) {
	s.active = false
	s.toggled = true
	s.lastToggle = now
}

func (s *Stretch) Pressed() bool { return s.active }

// Fraction is 1 while pressed and decays linearly to 0 over the click
// duration after release.
func (s *Stretch) Fraction(now time.Duration) float64 {
	if s.active {
		return 1
	}
	if !s.toggled {
		return 0
	}
	pct := 0.0
	if elapsed := now - s.lastToggle; elapsed < s.duration {
		pct = 1 - float64(elapsed)/float64(s.duration)
	}
	return clamp(pct, 0, 1)
}
