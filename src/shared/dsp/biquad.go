package dsp

import "math"

// Biquad is a second order IIR section in direct form II transposed,
// with coefficients from the Audio EQ Cookbook.
type Biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	z1, z2     float64
}

func newBiquad(b0, b1, b2, a0, a1, a2 float64) *Biquad {
	return &Biquad{
		b0: b0 / a0,
		b1: b1 / a0,
		b2: b2 / a0,
		a1: a1 / a0,
		a2: a2 / a0,
	}
}

func angularFrequency(sampleRate int, freq float64) float64 {
	return 2 * math.Pi * freq / float64(sampleRate)
}

// NewNotch builds a notch filter centered at freq with the given Q.
func NewNotch(sampleRate int, freq float64, q float64) *Biquad {
	w0 := angularFrequency(sampleRate, freq)
	alpha := math.Sin(w0) / (2 * q)
	cosw0 := math.Cos(w0)

	return newBiquad(
		1, -2*cosw0, 1,
		1+alpha, -2*cosw0, 1-alpha,
	)
}

// NewBandPass builds a constant peak gain band pass filter.
func NewBandPass(sampleRate int, freq float64, q float64) *Biquad {
	w0 := angularFrequency(sampleRate, freq)
	alpha := math.Sin(w0) / (2 * q)
	cosw0 := math.Cos(w0)

	return newBiquad(
		alpha, 0, -alpha,
		1+alpha, -2*cosw0, 1-alpha,
	)
}

// NewPeakingEQ builds a peaking equalizer with gain in dB at freq.
func NewPeakingEQ(sampleRate int, freq float64, q float64, gainDB float64) *Biquad {
	w0 := angularFrequency(sampleRate, freq)
	alpha := math.Sin(w0) / (2 * q)
	cosw0 := math.Cos(w0)
	a := math.Pow(10, gainDB/40)

	return newBiquad(
		1+alpha*a, -2*cosw0, 1-alpha*a,
		1+alpha/a, -2*cosw0, 1-alpha/a,
	)
}

func newLowPass(sampleRate int, freq float64, q float64) *Biquad {
	w0 := angularFrequency(sampleRate, freq)
	alpha := math.Sin(w0) / (2 * q)
	cosw0 := math.Cos(w0)

	return newBiquad(
		(1-cosw0)/2, 1-cosw0, (1-cosw0)/2,
		1+alpha, -2*cosw0, 1-alpha,
	)
}

func newHighPass(sampleRate int, freq float64, q float64) *Biquad {
	w0 := angularFrequency(sampleRate, freq)
	alpha := math.Sin(w0) / (2 * q)
	cosw0 := math.Cos(w0)

	return newBiquad(
		(1+cosw0)/2, -(1 + cosw0), (1+cosw0)/2,
		1+alpha, -2*cosw0, 1-alpha,
	)
}

func (b *Biquad) Reset() {
	b.z1 = 0
	b.z2 = 0
}

func (b *Biquad) processSample(x float64) float64 {
	y := b.b0*x + b.z1
	b.z1 = b.b1*x - b.a1*y + b.z2
	b.z2 = b.b2*x - b.a2*y
	return y
}

// Process filters samples in place and returns the slice.
func (b *Biquad) Process(samples []float64) []float64 {
	for i, sample := range samples {
		samples[i] = b.processSample(sample)
	}

	return samples
}
