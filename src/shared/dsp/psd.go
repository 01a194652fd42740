package dsp

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	welchSegmentSize = 2048
	welchOverlap     = welchSegmentSize / 2
)

// WelchPSD estimates the power spectral density by averaging
// periodograms of Hann windowed, half overlapping segments.
// Returns bin center frequencies in Hz and power per bin.
func WelchPSD(samples []float64, sampleRate int) ([]float64, []float64) {
	segmentSize := welchSegmentSize
	if len(samples) < segmentSize {
		segmentSize = len(samples)
	}
	if segmentSize < 2 {
		return nil, nil
	}

	hop := segmentSize - segmentSize/2
	window := HannWindow(segmentSize)

	windowPower := 0.0
	for _, w := range window {
		windowPower += w * w
	}

	fft := fourier.NewFFT(segmentSize)
	binCount := segmentSize/2 + 1
	psd := make([]float64, binCount)

	windowed := make([]float64, segmentSize)
	segmentCount := 0
	for offset := 0; offset+segmentSize <= len(samples); offset += hop {
		for i := 0; i < segmentSize; i++ {
			windowed[i] = samples[offset+i] * window[i]
		}

		coeffs := fft.Coefficients(nil, windowed)
		for bin, coeff := range coeffs {
			power := real(coeff)*real(coeff) + imag(coeff)*imag(coeff)
			// one sided spectrum doubles the interior bins
			if bin != 0 && bin != binCount-1 {
				power *= 2
			}
			psd[bin] += power
		}
		segmentCount++
	}

	if segmentCount == 0 {
		return nil, nil
	}

	scale := 1.0 / (float64(segmentCount) * float64(sampleRate) * windowPower)
	for bin := range psd {
		psd[bin] *= scale
	}

	freqs := make([]float64, binCount)
	for bin := range freqs {
		freqs[bin] = float64(bin) * float64(sampleRate) / float64(segmentSize)
	}

	return freqs, psd
}

// BandEnergyShare returns the fraction of total spectral power that
// falls between loHz and hiHz.
func BandEnergyShare(freqs []float64, psd []float64, loHz float64, hiHz float64) float64 {
	total := 0.0
	band := 0.0
	for bin, power := range psd {
		total += power
		if freqs[bin] >= loHz && freqs[bin] < hiHz {
			band += power
		}
	}

	if total <= 1e-20 {
		return 0
	}

	return band / total
}
