package noise

import (
	"github.com/voxsplit/voxsplit-be/src/shared/audio"
	"github.com/voxsplit/voxsplit-be/src/shared/dsp"
)

const (
	humBandHz  = 200.0
	hissBandHz = 4000.0

	dominantLowShare = 0.4
	hissDensityRatio = 2.0
)

// Classify inspects where the signal's power sits and names the
// dominant noise profile. A signal whose energy piles up below the
// hum band is hum. One whose high band power density clearly exceeds
// the midrange is hiss. Broadband noise with a flat density lands on
// white.
//
// Classification is a pure function of the spectrum, so classifying
// the same audio twice always yields the same answer.
func Classify(waveform audio.Waveform) Type {
	mono := waveform.Mono()
	freqs, psd := dsp.WelchPSD(mono, waveform.SampleRate)
	if len(psd) == 0 {
		return TypeWhite
	}

	nyquist := float64(waveform.SampleRate) / 2

	lowShare := dsp.BandEnergyShare(freqs, psd, 0, humBandHz)
	if lowShare > dominantLowShare {
		return TypeHum
	}

	midDensity := bandDensity(freqs, psd, humBandHz, hissBandHz)
	highDensity := bandDensity(freqs, psd, hissBandHz, nyquist)
	if highDensity > hissDensityRatio*midDensity {
		return TypeHiss
	}

	return TypeWhite
}

// bandDensity is the average power per bin inside the band, so bands
// of different widths compare on equal footing.
func bandDensity(freqs []float64, psd []float64, loHz float64, hiHz float64) float64 {
	sum := 0.0
	count := 0
	for bin, power := range psd {
		if freqs[bin] >= loHz && freqs[bin] < hiHz {
			sum += power
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return sum / float64(count)
}
