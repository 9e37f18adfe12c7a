package viz

import (
	"math"

	"github.com/san-kum/orbsim/internal/orb"
)

type vec3 struct{ X, Y, Z float64 }

// rotate applies the orb's X rotation then its Y rotation.
func rotate(p vec3, rot orb.Vec2) vec3 {
	sx, cx := math.Sincos(rot.X)
	p = vec3{p.X, p.Y*cx - p.Z*sx, p.Y*sx + p.Z*cx}
	sy, cy := math.Sincos(rot.Y)
	return vec3{p.X*cy + p.Z*sy, p.Y, -p.X*sy + p.Z*cy}
}

// carveSeam clears the front half of the orb's rotated equator from a filled
// ellipse so the spin is visible in a flat rendering.
func carveSeam(c *Canvas, cx, cy, rx, ry float64, rot orb.Vec2) {
	const steps = 96
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		p := rotate(vec3{math.Cos(a), 0, math.Sin(a)}, rot)
		if p.Z < 0 {
			continue
		}
		c.Unset(int(cx+p.X*rx), int(cy-p.Y*ry))
	}
}
