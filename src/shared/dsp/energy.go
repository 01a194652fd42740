package dsp

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SignalEnergy is the sum of squared samples.
func SignalEnergy(samples []float64) float64 {
	energy := 0.0
	for _, sample := range samples {
		energy += sample * sample
	}

	return energy
}

// ReductionDB reports how much quieter the processed signal is than
// the original, in dB. Zero when either signal is silent.
func ReductionDB(original []float64, processed []float64) float64 {
	origEnergy := SignalEnergy(original)
	procEnergy := SignalEnergy(processed)

	if origEnergy <= 1e-20 || procEnergy <= 1e-20 {
		return 0
	}

	return 10 * math.Log10(origEnergy/procEnergy)
}

// Correlation is the Pearson correlation between two equal length
// signals, zero when either is constant.
func Correlation(x []float64, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}

	corr := stat.Correlation(x, y, nil)
	if math.IsNaN(corr) {
		return 0
	}

	return corr
}

// Percentile returns the p-th percentile of the samples, with p in
// [0, 100], using nearest rank on a sorted copy.
func Percentile(samples []float64, p float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}

	return sorted[rank-1]
}

// Median is the 50th percentile.
func Median(samples []float64) float64 {
	return Percentile(samples, 50)
}
