package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbsim/internal/orb"
)

// Sink receives the controller's per-frame output. It is the orb's
// appearance and the theme target of the terminal front-end.
type Sink struct {
	Position   orb.Vec2
	Scale      orb.Vec3
	Rotation   orb.Vec2
	Hue        float64
	Saturation float64
	Lightness  float64
	Emissive   float64
	Opacity    float64
	ThemeHue   int

	glow Glow
}

// Glow is the light that travels with the orb.
type Glow struct {
	Position orb.Vec2
}

func (g *Glow) SetPosition(x, y float64) { g.Position = orb.Vec2{X: x, Y: y} }

func NewSink() *Sink {
	return &Sink{Emissive: 1}
}

func (s *Sink) Light() *Glow { return &s.glow }

func (s *Sink) SetPosition(x, y float64) { s.Position = orb.Vec2{X: x, Y: y} }

func (s *Sink) SetScale(x, y, z float64) { s.Scale = orb.Vec3{X: x, Y: y, Z: z} }

func (s *Sink) SetColor(h, sat, l float64) {
	s.Hue, s.Saturation, s.Lightness = h, sat, l
}

func (s *Sink) SetEmissive(h, sat, l, intensity float64) { s.Emissive = intensity }

func (s *Sink) SetOpacity(a float64) { s.Opacity = a }

func (s *Sink) SetRotation(x, y float64) { s.Rotation = orb.Vec2{X: x, Y: y} }

func (s *Sink) SetHue(deg int) { s.ThemeHue = deg }

// OrbColor is the orb's displayed color over bg: the material color, lit up
// or dimmed by the emissive pulse, then blended onto bg by opacity.
func (s *Sink) OrbColor(bg lipgloss.Color) lipgloss.Color {
	back, err := colorful.Hex(string(bg))
	if err != nil {
		back = colorful.Color{}
	}
	base := colorful.Hsl(s.Hue*360, s.Saturation, s.Lightness)
	lit := base
	if e := s.Emissive - 1; e > 0 {
		lit = base.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, math.Min(e, 1)*0.4)
	} else if e < 0 {
		lit = base.BlendRgb(colorful.Color{}, math.Min(-e, 1)*0.4)
	}
	shown := back.BlendRgb(lit, math.Max(0, math.Min(1, s.Opacity)))
	return lipgloss.Color(shown.Clamped().Hex())
}

// BorderColor is the panel border for the current theme hue.
func (s *Sink) BorderColor() lipgloss.Color {
	return lipgloss.Color(colorful.Hsl(float64(s.ThemeHue), 0.7, 0.55).Hex())
}
