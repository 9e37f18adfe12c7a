package sim

import (
	"time"

	"github.com/san-kum/orbsim/internal/orb"
)

// Frame is the recorded output of one tick together with the input state
// that produced it.
type Frame struct {
	Time     time.Duration
	Position orb.Vec2
	Scale    orb.Vec3
	Opacity  float64
	Hue      float64
	ThemeHue int
	Emissive float64
	Idle     bool
	Pointer  orb.Vec2
	Pressed  bool
}

// Values flattens a frame in the column order of Columns.
func (f Frame) Values() []float64 {
	return []float64{
		f.Position.X, f.Position.Y,
		f.Scale.X, f.Scale.Y, f.Scale.Z,
		f.Opacity, f.Hue, float64(f.ThemeHue), f.Emissive,
		boolValue(f.Idle),
		f.Pointer.X, f.Pointer.Y,
		boolValue(f.Pressed),
	}
}

// Columns names the values returned by Frame.Values.
var Columns = []string{"x", "y", "sx", "sy", "sz", "opacity", "hue", "theme_hue", "emissive", "idle", "pointer_x", "pointer_y", "pressed"}

// FrameFromValues is the inverse of Frame.Values.
func FrameFromValues(t time.Duration, v []float64) Frame {
	get := func(i int) float64 {
		if i < len(v) {
			return v[i]
		}
		return 0
	}
	return Frame{
		Time:     t,
		Position: orb.Vec2{X: get(0), Y: get(1)},
		Scale:    orb.Vec3{X: get(2), Y: get(3), Z: get(4)},
		Opacity:  get(5),
		Hue:      get(6),
		ThemeHue: int(get(7)),
		Emissive: get(8),
		Idle:     get(9) != 0,
		Pointer:  orb.Vec2{X: get(10), Y: get(11)},
		Pressed:  get(12) != 0,
	}
}

type Config struct {
	FPS      int
	Duration time.Duration
	Seed     int64
}

// Step is the simulated time between frames.
func (c Config) Step() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

type Result struct {
	Script     string
	Config     Config
	Frames     []Frame
	StepsTaken int
	Start      orb.Vec2
	End        orb.Vec2
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
