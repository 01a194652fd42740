package dsp

// Filter applies a biquad chain causally over a copy of the signal.
func Filter(chain FilterChain, samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)

	chain.Reset()
	return chain.Process(out)
}

// ZeroPhaseFilter runs the chain forward and then backward over the
// signal, cancelling the filter's phase shift so transients stay put.
func ZeroPhaseFilter(chain FilterChain, samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)

	chain.Reset()
	chain.Process(out)

	reverse(out)
	chain.Reset()
	chain.Process(out)
	reverse(out)

	return out
}

func reverse(samples []float64) {
	for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
		samples[i], samples[j] = samples[j], samples[i]
	}
}
