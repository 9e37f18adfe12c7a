package orb

import "math"

type Color struct {
	Hue        float64 // [0,1)
	Saturation float64
	Lightness  float64
	Emissive   float64
	ThemeHue   int // [0,360)
}

// CycleColor derives the rotating hue and the emissive pulse from t seconds.
func CycleColor(t float64, s Settings) Color {
	hue := math.Mod(t*s.HueSpeed, 1.0)
	if hue < 0 {
		hue++
	}
	if hue >= 1 || math.IsNaN(hue) {
		hue = 0
	}
	return Color{
		Hue:        hue,
		Saturation: s.Saturation,
		Lightness:  s.Lightness,
		Emissive:   1 + 0.5*math.Sin(2*t),
		ThemeHue:   ThemeHue(hue),
	}
}

// ThemeHue converts a hue fraction to whole degrees in [0,360).
func ThemeHue(hue float64) int {
	deg := int(math.Floor(hue * 360))
	if deg >= 360 {
		deg = 359
	}
	if deg < 0 {
		deg = 0
	}
	return deg
}

// FadeOpacity eases current toward target by rate, clamped to [0,1].
func FadeOpacity(current, target, rate float64) float64 {
	return clamp(current+(target-current)*rate, 0, 1)
}
