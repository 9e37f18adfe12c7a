package orb

import (
	"math"
	"time"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsValid reports whether both coordinates are finite.
func (v Vec2) IsValid() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

type Vec3 struct {
	X, Y, Z float64
}

// State is the composed visual output of one frame.
type State struct {
	Position          Vec2
	Scale             Vec3
	Rotation          Vec2
	Opacity           float64
	TargetOpacity     float64
	Hue               float64
	ThemeHue          int
	Saturation        float64
	Lightness         float64
	EmissiveIntensity float64
	Idle              bool
	Time              time.Duration
}

// Appearance is the render target. The controller never touches rendering
// primitives beyond these calls.
type Appearance interface {
	SetPosition(x, y float64)
	SetScale(sx, sy, sz float64)
	SetColor(h, s, l float64)
	SetEmissive(h, s, l, intensity float64)
	SetOpacity(o float64)
	SetRotation(rx, ry float64)
}

// Light mirrors the orb position, e.g. a point light following it.
type Light interface {
	SetPosition(x, y float64)
}

// Theme receives the hue in whole degrees once per frame.
type Theme interface {
	SetHue(deg int)
}

// PositionStore persists the resting position across sessions.
type PositionStore interface {
	Load() (Vec2, bool)
	Save(p Vec2) error
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
