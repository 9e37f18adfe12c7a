package sim

import "github.com/san-kum/orbsim/internal/orb"

// Recorder is an appearance sink that keeps the most recent values pushed
// to it and counts frames.
type Recorder struct {
	Position   orb.Vec2
	Scale      orb.Vec3
	Hue        float64
	Saturation float64
	Lightness  float64
	Emissive   float64
	Opacity    float64
	Rotation   orb.Vec2
	Frames     int
}

var _ orb.Appearance = (*Recorder)(nil)

func (r *Recorder) SetPosition(x, y float64) {
	r.Position = orb.Vec2{X: x, Y: y}
	r.Frames++
}

func (r *Recorder) SetScale(sx, sy, sz float64) {
	r.Scale = orb.Vec3{X: sx, Y: sy, Z: sz}
}

func (r *Recorder) SetColor(h, s, l float64) {
	r.Hue, r.Saturation, r.Lightness = h, s, l
}

func (r *Recorder) SetEmissive(h, s, l, intensity float64) {
	r.Emissive = intensity
}

func (r *Recorder) SetOpacity(o float64) { r.Opacity = o }

func (r *Recorder) SetRotation(rx, ry float64) { r.Rotation = orb.Vec2{X: rx, Y: ry} }

// HueLog is a theme sink that keeps every published hue.
type HueLog struct {
	Hues []int
}

func (h *HueLog) SetHue(deg int) { h.Hues = append(h.Hues, deg) }

func (h *HueLog) Last() int {
	if len(h.Hues) == 0 {
		return 0
	}
	return h.Hues[len(h.Hues)-1]
}
