package separation

import (
	"github.com/voxsplit/voxsplit-be/src/shared/audio"
)

// MidSide decomposes a stereo waveform into its mid (center) and side
// (stereo difference) signals.
func MidSide(waveform audio.Waveform) (mid []float64, side []float64) {
	left := waveform.Channels[0]
	right := waveform.Channels[1]

	mid = make([]float64, len(left))
	side = make([]float64, len(left))
	for i := range left {
		mid[i] = (left[i] + right[i]) / 2
		side[i] = (left[i] - right[i]) / 2
	}

	return mid, side
}

// FromMidSide reconstructs the stereo waveform. Exactly inverts
// MidSide: left = mid + side, right = mid - side.
func FromMidSide(mid []float64, side []float64, sampleRate int) audio.Waveform {
	left := make([]float64, len(mid))
	right := make([]float64, len(mid))
	for i := range mid {
		left[i] = mid[i] + side[i]
		right[i] = mid[i] - side[i]
	}

	waveform, _ := audio.NewWaveform([][]float64{left, right}, sampleRate)
	return waveform
}

// duplicateMono turns a single signal into a two channel waveform
// with identical content in both channels.
func duplicateMono(samples []float64, sampleRate int) audio.Waveform {
	left := make([]float64, len(samples))
	right := make([]float64, len(samples))
	copy(left, samples)
	copy(right, samples)

	waveform, _ := audio.NewWaveform([][]float64{left, right}, sampleRate)
	return waveform
}
