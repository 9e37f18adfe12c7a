// Package export renders recorded runs as standalone files.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbsim/internal/orb"
	"github.com/san-kum/orbsim/internal/sim"
)

const (
	background   = "#0a0a0a"
	pointerColor = "#555555"
)

// PathSVG draws the orb and pointer paths of a run in world space, which
// is mapped onto a width x height viewport. The orb path is split into
// segments at every idle change so a teleport never draws a line, and each
// segment is stroked in the hue the orb had when it started.
func PathSVG(w io.Writer, frames []sim.Frame, s orb.Settings, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export: bad viewport %dx%d", width, height)
	}
	px := func(p orb.Vec2) (float64, float64) {
		x := (p.X/s.WorldMaxX + 1) / 2 * float64(width)
		y := (1 - (p.Y/s.WorldTopY+1)/2) * float64(height)
		return x, y
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	if len(frames) > 1 {
		sb.WriteString(`<path fill="none" stroke="` + pointerColor + `" stroke-width="0.75" stroke-dasharray="3,3" d="`)
		for i, f := range frames {
			x, y := px(f.Pointer)
			if i == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	for _, seg := range segments(frames) {
		if len(seg) < 2 {
			continue
		}
		stroke := colorful.Hsl(seg[0].Hue, s.Saturation, s.Lightness).Clamped().Hex()
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)
		for i, f := range seg {
			x, y := px(f.Position)
			if i == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	if n := len(frames); n > 0 {
		x, y := px(frames[n-1].Position)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>`+"\n", x, y,
			colorful.Hsl(frames[n-1].Hue, s.Saturation, s.Lightness).Clamped().Hex())
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// segments splits frames wherever Idle flips.
func segments(frames []sim.Frame) [][]sim.Frame {
	var out [][]sim.Frame
	start := 0
	for i := 1; i <= len(frames); i++ {
		if i == len(frames) || frames[i].Idle != frames[i-1].Idle {
			if i > start {
				out = append(out, frames[start:i])
			}
			start = i
		}
	}
	return out
}
