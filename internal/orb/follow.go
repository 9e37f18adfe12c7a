package orb

// Follower moves the orb toward a lagged trail sample with an upward drift,
// a short-range repulsion and per-axis exponential smoothing.
type Follower struct {
	settings Settings
}

func NewFollower(s Settings) *Follower {
	return &Follower{settings: s}
}

// Target is the bias-adjusted pursuit target. The trail sample itself is
// left untouched.
func (f *Follower) Target(pos Vec2, trail *Trail) Vec2 {
	target := trail.Lagged(f.settings.TrailLag, pos)
	target.Y += (f.settings.WorldTopY - target.Y) * f.settings.UpwardBias
	return target
}

// Desired returns the point the orb integrates toward this frame. Within
// the repulse radius, and only while active, the target is replaced by a
// point pushed away from it.
func (f *Follower) Desired(pos Vec2, trail *Trail, idle bool) Vec2 {
	target := f.Target(pos, trail)
	d := pos.Sub(target)
	dist := d.Len()
	if dist == 0 {
		dist = 1
	}
	if !idle && dist < f.settings.RepulseRadius {
		return pos.Add(d.Scale(f.settings.RepulseStrength / dist))
	}
	return target
}

// Step returns the smoothed next position and the desired point it used.
func (f *Follower) Step(pos Vec2, trail *Trail, idle bool) (Vec2, Vec2) {
	desired := f.Desired(pos, trail, idle)
	return Smooth(pos, desired, f.settings.FollowRateX, f.settings.FollowRateY), desired
}

// Smooth is a first-order low-pass step with independent axis rates.
func Smooth(pos, target Vec2, rateX, rateY float64) Vec2 {
	return Vec2{
		X: pos.X + (target.X-pos.X)*rateX,
		Y: pos.Y + (target.Y-pos.Y)*rateY,
	}
}
