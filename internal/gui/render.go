package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbsim/internal/orb"
)

// Surface is the orb material of the window front-end. The controller
// writes it once per frame and Draw reads it back.
type Surface struct {
	Position   orb.Vec2
	Scale      orb.Vec3
	Rotation   orb.Vec2
	Hue        float64
	Saturation float64
	Lightness  float64
	Emissive   float64
	Opacity    float64
	ThemeHue   int

	light PointLight
}

// PointLight follows the orb and is drawn as a soft glow behind it.
type PointLight struct {
	Position orb.Vec2
}

func (p *PointLight) SetPosition(x, y float64) { p.Position = orb.Vec2{X: x, Y: y} }

func NewSurface() *Surface {
	return &Surface{Emissive: 1}
}

func (s *Surface) Light() *PointLight { return &s.light }

func (s *Surface) SetPosition(x, y float64) { s.Position = orb.Vec2{X: x, Y: y} }

func (s *Surface) SetScale(x, y, z float64) { s.Scale = orb.Vec3{X: x, Y: y, Z: z} }

func (s *Surface) SetColor(h, sat, l float64) {
	s.Hue, s.Saturation, s.Lightness = h, sat, l
}

func (s *Surface) SetEmissive(h, sat, l, intensity float64) { s.Emissive = intensity }

func (s *Surface) SetOpacity(a float64) { s.Opacity = a }

func (s *Surface) SetRotation(x, y float64) { s.Rotation = orb.Vec2{X: x, Y: y} }

func (s *Surface) SetHue(deg int) { s.ThemeHue = deg }

func toRL(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, uint8(math.Round(255*math.Max(0, math.Min(1, alpha)))))
}

// Material is the diffuse color at the current opacity.
func (s *Surface) Material() rl.Color {
	return toRL(colorful.Hsl(s.Hue*360, s.Saturation, s.Lightness), s.Opacity)
}

// Glow is the emissive color; its alpha pulses with the intensity.
func (s *Surface) Glow() rl.Color {
	c := colorful.Hsl(s.Hue*360, s.Saturation, s.Lightness)
	return toRL(c, s.Opacity*0.35*s.Emissive)
}

// Accent is the HUD color for the theme hue.
func (s *Surface) Accent() rl.Color {
	return toRL(colorful.Hsl(float64(s.ThemeHue), 0.7, 0.55), 1)
}

// screen maps world coordinates to window pixels.
func screen(p orb.Vec2, s orb.Settings, w, h int32) rl.Vector2 {
	x := (p.X/s.WorldMaxX + 1) / 2 * float64(w)
	y := (1 - p.Y/s.WorldTopY) / 2 * float64(h)
	return rl.NewVector2(float32(x), float32(y))
}

func (a *App) drawOrb() {
	s := a.Surface
	center := screen(s.Position, a.Settings, a.Width, a.Height)
	rx := float32(s.Scale.X / (2 * a.Settings.WorldMaxX) * float64(a.Width))
	ry := float32(s.Scale.Y / (2 * a.Settings.WorldTopY) * float64(a.Height))

	glowAt := screen(s.Light().Position, a.Settings, a.Width, a.Height)
	glowScale := 4 * rx / float32(a.GlowTex.Width)
	if glowScale > 0 {
		size := float32(a.GlowTex.Width) * glowScale
		rl.DrawTextureEx(a.GlowTex, rl.NewVector2(glowAt.X-size/2, glowAt.Y-size/2), 0, glowScale, s.Glow())
	}

	rl.DrawEllipse(int32(center.X), int32(center.Y), rx, ry, s.Material())
	a.drawSeam(center, rx, ry)
}

// drawSeam outlines the front half of the rotated equator.
func (a *App) drawSeam(center rl.Vector2, rx, ry float32) {
	const steps = 64
	rot := a.Surface.Rotation
	sx, cx := math.Sincos(rot.X)
	sy, cy := math.Sincos(rot.Y)
	seam := rl.ColorAlpha(rl.Black, float32(0.25*a.Surface.Opacity))

	var strip []rl.Vector2
	flush := func() {
		if len(strip) > 1 {
			rl.DrawLineStrip(strip, seam)
		}
		strip = strip[:0]
	}
	for i := 0; i <= steps; i++ {
		t := 2 * math.Pi * float64(i) / steps
		x, y, z := math.Cos(t), 0.0, math.Sin(t)
		y, z = y*cx-z*sx, y*sx+z*cx
		x, z = x*cy+z*sy, -x*sy+z*cy
		if z < 0 {
			flush()
			continue
		}
		strip = append(strip, rl.NewVector2(center.X+float32(x)*rx, center.Y-float32(y)*ry))
	}
	flush()
}

func (a *App) drawHUD() {
	st := a.Ctrl.State()
	accent := a.Surface.Accent()
	rl.DrawRectangleLinesEx(rl.NewRectangle(20, 20, 260, 150), 2, accent)

	a.drawText("orbsim", 36, 32, 24, accent)
	status := "ACTIVE"
	if st.Idle {
		status = "IDLE"
	}
	a.drawText(status, 200, 36, 16, ColText)
	a.drawText(fmt.Sprintf("pos   %+.2f %+.2f", st.Position.X, st.Position.Y), 36, 70, 16, ColText)
	a.drawText(fmt.Sprintf("scale %.2f %.2f", st.Scale.X, st.Scale.Y), 36, 92, 16, ColText)
	a.drawText(fmt.Sprintf("hue   %d", st.ThemeHue), 36, 114, 16, ColText)
	a.drawText(fmt.Sprintf("alpha %.2f", st.Opacity), 36, 136, 16, ColText)

	a.drawTelemetry(accent)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, a.Height-30, 14, ColTextDim)
	a.drawText("[Q] SAVE AND QUIT", a.Width-180, a.Height-30, 14, ColTextDim)
}

// drawTelemetry plots the recent opacity history.
func (a *App) drawTelemetry(col rl.Color) {
	if len(a.Telemetry) < 2 {
		return
	}
	x0, y0 := float32(30), float32(a.Height-110)
	w, h := float32(300), float32(60)
	points := make([]rl.Vector2, len(a.Telemetry))
	for i, v := range a.Telemetry {
		px := x0 + float32(i)/float32(len(a.Telemetry)-1)*w
		py := y0 + h - float32(v)*h
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, col)
}
