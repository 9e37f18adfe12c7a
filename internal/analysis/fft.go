package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of the first half of the spectrum of
// data after removing its mean and applying a Hann window. Bin i sits at
// i*fps/len(data) hertz.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range data {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = (v - mean) * w
	}

	spectrum := fft.FFTReal(windowed)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in hertz of the strongest bin
// above DC, or 0 for a constant or too short series.
func DominantFrequency(data []float64, fps int) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || fps <= 0 {
		return 0
	}

	maxIdx := 0
	maxPower := 1e-12
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	return float64(maxIdx) * float64(fps) / float64(len(data))
}
