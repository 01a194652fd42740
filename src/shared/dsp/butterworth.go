package dsp

import (
	"math"

	"github.com/cockroachdb/errors"
)

// FilterChain is a cascade of biquad sections applied in sequence.
type FilterChain []*Biquad

func (f FilterChain) Reset() {
	for _, section := range f {
		section.Reset()
	}
}

func (f FilterChain) Process(samples []float64) []float64 {
	for _, section := range f {
		section.Process(samples)
	}

	return samples
}

// butterworthQs returns the pole Q values for an even order
// Butterworth filter realized as cascaded second order sections.
func butterworthQs(order int) ([]float64, error) {
	if order < 2 || order%2 != 0 {
		return nil, errors.Errorf("Butterworth order must be a positive even number, got %d", order)
	}

	sections := order / 2
	qs := make([]float64, sections)
	for k := 0; k < sections; k++ {
		theta := math.Pi * float64(2*k+1) / float64(2*order)
		qs[k] = 1 / (2 * math.Cos(theta))
	}

	return qs, nil
}

func NewButterworthHighPass(sampleRate int, cutoff float64, order int) (FilterChain, error) {
	qs, err := butterworthQs(order)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid high pass order")
	}

	chain := make(FilterChain, len(qs))
	for i, q := range qs {
		chain[i] = newHighPass(sampleRate, cutoff, q)
	}

	return chain, nil
}

func NewButterworthLowPass(sampleRate int, cutoff float64, order int) (FilterChain, error) {
	qs, err := butterworthQs(order)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid low pass order")
	}

	chain := make(FilterChain, len(qs))
	for i, q := range qs {
		chain[i] = newLowPass(sampleRate, cutoff, q)
	}

	return chain, nil
}
