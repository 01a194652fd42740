package dsp

import "math"

// HannWindow returns a periodic Hann window of the given length,
// suitable for overlap-add STFT processing.
func HannWindow(length int) []float64 {
	window := make([]float64, length)
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(length)))
	}

	return window
}
