// Package tui renders recorded frames as plain ANSI text while a headless
// run is in progress.
package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/orbsim/internal/orb"
	"github.com/san-kum/orbsim/internal/sim"
)

const (
	width       = 70
	height      = 20
	trailLength = 40
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// shades from faint to solid, indexed by opacity
var shades = []rune(" .:oO@")

type point struct{ x, y int }

// LiveRenderer is a sim.Observer that redraws the orb at most frameRate
// times per second of session time.
type LiveRenderer struct {
	out      io.Writer
	script   string
	settings orb.Settings
	interval time.Duration
	last     time.Duration
	drawn    bool
	canvas   [][]rune
	trail    []point
}

func NewLiveRenderer(out io.Writer, script string, settings orb.Settings, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:      out,
		script:   script,
		settings: settings,
		interval: time.Second / time.Duration(frameRate),
		canvas:   canvas,
		trail:    make([]point, 0, trailLength),
	}
}

func (r *LiveRenderer) OnFrame(f sim.Frame) {
	if r.drawn && f.Time-r.last < r.interval {
		return
	}
	r.last = f.Time
	r.drawn = true

	r.clear()
	r.drawOrb(f)
	r.render(f)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) project(p orb.Vec2) (int, int) {
	x := (p.X/r.settings.WorldMaxX + 1) / 2 * float64(width-1)
	y := (1 - p.Y/r.settings.WorldTopY) / 2 * float64(height-1)
	return int(math.Round(x)), int(math.Round(y))
}

func (r *LiveRenderer) drawOrb(f sim.Frame) {
	cx, cy := r.project(f.Position)
	if f.Idle {
		r.trail = r.trail[:0]
	} else {
		r.trail = append(r.trail, point{cx, cy})
		if len(r.trail) > trailLength {
			r.trail = r.trail[1:]
		}
	}
	for _, pt := range r.trail {
		r.set(pt.x, pt.y, '.')
	}

	px, py := r.project(f.Pointer)
	r.set(px, py, '+')

	shade := shades[int(math.Round(clamp01(f.Opacity)*float64(len(shades)-1)))]
	rx := f.Scale.X / (2 * r.settings.WorldMaxX) * float64(width-1)
	ry := f.Scale.Y / (2 * r.settings.WorldTopY) * float64(height-1)
	if rx < 0.5 || ry < 0.5 {
		r.set(cx, cy, shade)
		return
	}
	for y := int(float64(cy) - ry); y <= int(float64(cy)+ry); y++ {
		for x := int(float64(cx) - rx); x <= int(float64(cx)+rx); x++ {
			dx := float64(x-cx) / rx
			dy := float64(y-cy) / ry
			if dx*dx+dy*dy <= 1 {
				r.set(x, y, shade)
			}
		}
	}
}

func (r *LiveRenderer) render(f sim.Frame) {
	var b strings.Builder
	b.WriteString(clearScreen)
	status := "active"
	if f.Idle {
		status = "idle"
	}
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs  %s\n", r.script, f.Time.Seconds(), status))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  pos=%+.2f,%+.2f scale=%.2f opacity=%.2f hue=%d\n",
		f.Position.X, f.Position.Y, f.Scale.X, f.Opacity, f.ThemeHue))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
