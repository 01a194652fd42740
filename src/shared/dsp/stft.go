package dsp

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// STFT computes windowed short time Fourier transforms over a real
// signal and reconstructs signals from modified spectra via
// overlap-add.
type STFT struct {
	fft        *fourier.FFT
	windowSize int
	hopSize    int
	window     []float64
}

func NewSTFT(windowSize int, hopSize int) *STFT {
	return &STFT{
		fft:        fourier.NewFFT(windowSize),
		windowSize: windowSize,
		hopSize:    hopSize,
		window:     HannWindow(windowSize),
	}
}

func (s *STFT) WindowSize() int {
	return s.windowSize
}

func (s *STFT) HopSize() int {
	return s.hopSize
}

func (s *STFT) numFrames(sampleCount int) int {
	if sampleCount <= s.windowSize {
		return 1
	}

	return 1 + (sampleCount-s.windowSize+s.hopSize-1)/s.hopSize
}

// Analyze returns one spectrum of windowSize/2+1 bins per frame.
// The tail of the signal is zero padded to fill the last frame.
func (s *STFT) Analyze(samples []float64) [][]complex128 {
	frameCount := s.numFrames(len(samples))
	frames := make([][]complex128, frameCount)

	windowed := make([]float64, s.windowSize)
	for frame := 0; frame < frameCount; frame++ {
		offset := frame * s.hopSize
		for i := 0; i < s.windowSize; i++ {
			if offset+i < len(samples) {
				windowed[i] = samples[offset+i] * s.window[i]
			} else {
				windowed[i] = 0
			}
		}

		frames[frame] = s.fft.Coefficients(nil, windowed)
	}

	return frames
}

// Synthesize reconstructs a signal of outLen samples from spectra
// produced by Analyze, using window squared overlap normalization.
func (s *STFT) Synthesize(frames [][]complex128, outLen int) []float64 {
	total := (len(frames)-1)*s.hopSize + s.windowSize
	out := make([]float64, total)
	norm := make([]float64, total)

	for frame, coeffs := range frames {
		offset := frame * s.hopSize
		segment := s.fft.Sequence(nil, coeffs)

		// gonum's inverse is unnormalized
		scale := 1.0 / float64(s.windowSize)
		for i := 0; i < s.windowSize; i++ {
			out[offset+i] += segment[i] * scale * s.window[i]
			norm[offset+i] += s.window[i] * s.window[i]
		}
	}

	for i := range out {
		if norm[i] > 1e-10 {
			out[i] /= norm[i]
		}
	}

	if outLen > len(out) {
		padded := make([]float64, outLen)
		copy(padded, out)
		return padded
	}

	return out[:outLen]
}
