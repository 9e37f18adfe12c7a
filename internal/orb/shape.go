package orb

import "math"

// BaseScale is the breathing scale shared by all three axes.
func BaseScale(t float64, s Settings) float64 {
	omega := 2 * math.Pi / s.Period
	osc := 0.5 + 0.5*math.Sin(omega*t)
	return s.MinScale + (s.MaxScale-s.MinScale)*osc
}

// StretchScale widens X and flattens Y by half the stretch fraction.
func StretchScale(base, pct float64) Vec3 {
	pct = clamp(pct, 0, 1)
	return Vec3{
		X: base * (1 + 0.5*pct),
		Y: base * (1 - 0.5*pct),
		Z: base,
	}
}

// Wobble is a small per-axis perturbation with distinct phases and
// amplitudes.
func Wobble(t float64, s Settings) Vec3 {
	ft := t * s.WobbleFreq
	return Vec3{
		X: math.Sin(ft+0.7) * s.WobbleAmp * 0.2,
		Y: math.Cos(ft+0.9) * s.WobbleAmp * 0.3,
		Z: math.Sin(ft+1.4) * s.WobbleAmp * 0.25,
	}
}

// Shape composes base oscillation, stretch and wobble for time t.
func Shape(t, pct float64, s Settings) Vec3 {
	sc := StretchScale(BaseScale(t, s), pct)
	w := Wobble(t, s)
	return Vec3{
		X: math.Max(0, sc.X+w.X),
		Y: math.Max(0, sc.Y+w.Y),
		Z: math.Max(0, sc.Z+w.Z),
	}
}
