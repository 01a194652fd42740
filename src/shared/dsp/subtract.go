package dsp

import (
	"math/cmplx"
)

// SpectralSubtractor attenuates bins towards a noise magnitude
// profile. Alpha is the over subtraction factor and Beta is the
// spectral floor that caps how far any bin can be pushed down.
type SpectralSubtractor struct {
	Alpha float64
	Beta  float64
}

// Gains computes the per bin suppression gains for one frame.
func (s SpectralSubtractor) Gains(frameMags []float64, noiseMags []float64) []float64 {
	gains := make([]float64, len(frameMags))
	for bin, mag := range frameMags {
		if mag <= 1e-12 {
			gains[bin] = s.Beta
			continue
		}

		gain := 1 - s.Alpha*noiseMags[bin]/mag
		if gain < s.Beta {
			gain = s.Beta
		}
		gains[bin] = gain
	}

	return smoothGains(gains)
}

// smoothGains applies a three tap average across frequency to avoid
// musical noise from isolated bins flipping between gains.
func smoothGains(gains []float64) []float64 {
	if len(gains) < 3 {
		return gains
	}

	smoothed := make([]float64, len(gains))
	smoothed[0] = (gains[0] + gains[1]) / 2
	for bin := 1; bin < len(gains)-1; bin++ {
		smoothed[bin] = (gains[bin-1] + gains[bin] + gains[bin+1]) / 3
	}
	smoothed[len(gains)-1] = (gains[len(gains)-2] + gains[len(gains)-1]) / 2

	return smoothed
}

// Apply subtracts the noise profile from every frame in place.
func (s SpectralSubtractor) Apply(frames [][]complex128, noiseMags []float64) {
	for _, frame := range frames {
		mags := make([]float64, len(frame))
		for bin, coeff := range frame {
			mags[bin] = cmplx.Abs(coeff)
		}

		gains := s.Gains(mags, noiseMags)
		for bin := range frame {
			frame[bin] *= complex(gains[bin], 0)
		}
	}
}

// EstimateNoiseMagnitudes averages bin magnitudes over frames assumed
// to contain only noise, taken from the head and tail of the signal.
func EstimateNoiseMagnitudes(frames [][]complex128, headFrames int, tailFrames int) []float64 {
	if len(frames) == 0 {
		return nil
	}

	if headFrames > len(frames) {
		headFrames = len(frames)
	}
	if tailFrames > len(frames) {
		tailFrames = len(frames)
	}

	binCount := len(frames[0])
	noise := make([]float64, binCount)
	count := 0

	accumulate := func(frame []complex128) {
		for bin, coeff := range frame {
			noise[bin] += cmplx.Abs(coeff)
		}
		count++
	}

	for _, frame := range frames[:headFrames] {
		accumulate(frame)
	}
	for _, frame := range frames[len(frames)-tailFrames:] {
		accumulate(frame)
	}

	if count == 0 {
		return noise
	}

	for bin := range noise {
		noise[bin] /= float64(count)
	}

	return noise
}
