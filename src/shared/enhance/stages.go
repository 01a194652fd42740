package enhance

import (
	"math/cmplx"

	"github.com/cockroachdb/errors"

	"github.com/voxsplit/voxsplit-be/src/shared/audio"
	"github.com/voxsplit/voxsplit-be/src/shared/dsp"
	"github.com/voxsplit/voxsplit-be/src/shared/separation"
)

const (
	subtractWindowSize = 2048
	subtractHopSize    = 512

	gateWindowSize = 1024
	gateFloorGain  = 0.1

	vocalHighPassHz = 85.0
)

// vocal energy centers: the fundamental range around 170 Hz plus the
// three formant bands that carry vowel intelligibility
var vocalBandsHz = []float64{170, 500, 1500, 2500}

// crossStemSubtraction removes residue of each stem from the other by
// spectrally subtracting the opposite stem's magnitudes, frame by
// frame. Both directions work from the original spectra, so cleaning
// one stem never weakens the noise estimate for the other. Stronger
// settings subtract harder and allow a deeper spectral floor.
func crossStemSubtraction(stems separation.Stems, strength float64) (separation.Stems, error) {
	vocals := stems.Vocals
	accompaniment := stems.Accompaniment

	if vocals.NumFrames() != accompaniment.NumFrames() {
		return stems, errors.New("Stems have mismatched lengths, cannot cross subtract")
	}
	if vocals.NumChannels() != accompaniment.NumChannels() {
		return stems, errors.New("Stems have mismatched channel counts, cannot cross subtract")
	}

	subtractor := dsp.SpectralSubtractor{
		Alpha: 0.8 + 1.2*strength,
		Beta:  0.3 - 0.2*strength,
	}

	stft := dsp.NewSTFT(subtractWindowSize, subtractHopSize)
	cleanedVocals := vocals.Clone()
	cleanedAccomp := accompaniment.Clone()

	for c := range cleanedVocals.Channels {
		vocalFrames := stft.Analyze(vocals.Channels[c])
		accompFrames := stft.Analyze(accompaniment.Channels[c])

		for frame := range vocalFrames {
			vocalMags := make([]float64, len(vocalFrames[frame]))
			accompMags := make([]float64, len(accompFrames[frame]))
			for bin := range vocalFrames[frame] {
				vocalMags[bin] = cmplx.Abs(vocalFrames[frame][bin])
				accompMags[bin] = cmplx.Abs(accompFrames[frame][bin])
			}

			vocalGains := subtractor.Gains(vocalMags, accompMags)
			accompGains := subtractor.Gains(accompMags, vocalMags)
			for bin := range vocalFrames[frame] {
				vocalFrames[frame][bin] *= complex(vocalGains[bin], 0)
				accompFrames[frame][bin] *= complex(accompGains[bin], 0)
			}
		}

		cleanedVocals.Channels[c] = stft.Synthesize(vocalFrames, len(cleanedVocals.Channels[c]))
		cleanedAccomp.Channels[c] = stft.Synthesize(accompFrames, len(cleanedAccomp.Channels[c]))
	}

	stems.Vocals = cleanedVocals
	stems.Accompaniment = cleanedAccomp
	return stems, nil
}

// adaptiveGate attenuates windows that sit near the stem's own noise
// floor, taken as the 10th percentile of window RMS. Anything below
// twice the floor is pulled down proportionally.
func adaptiveGate(waveform audio.Waveform, strength float64) (audio.Waveform, error) {
	if waveform.NumFrames() < gateWindowSize {
		return waveform, nil
	}

	gated := waveform.Clone()
	for _, channel := range gated.Channels {
		windowCount := len(channel) / gateWindowSize
		windowRMS := make([]float64, windowCount)
		for w := 0; w < windowCount; w++ {
			windowRMS[w] = audio.RMS(channel[w*gateWindowSize : (w+1)*gateWindowSize])
		}

		floor := dsp.Percentile(windowRMS, 10)
		threshold := 2 * floor
		if threshold <= 1e-10 {
			continue
		}

		// a floor close to the typical level means there is no quiet
		// residue to gate, only program material
		if floor > 0.5*dsp.Median(windowRMS) {
			continue
		}

		gains := make([]float64, windowCount)
		for w, rms := range windowRMS {
			if rms >= threshold {
				gains[w] = 1
				continue
			}

			gain := rms / threshold
			minGain := gateFloorGain + (1-strength)*(1-gateFloorGain)
			if gain < minGain {
				gain = minGain
			}
			gains[w] = gain
		}

		// interpolate gains between window centers so the gate
		// doesn't click at window boundaries
		for i := range channel {
			w := i / gateWindowSize
			frac := float64(i%gateWindowSize) / float64(gateWindowSize)

			gain := gains[w]
			if w+1 < windowCount {
				gain = gains[w]*(1-frac) + gains[w+1]*frac
			}

			channel[i] *= gain
		}
	}

	return gated, nil
}

// formantShaping tilts the stems apart around vocal energy. The
// vocal stem is high passed below its fundamental range and gently
// boosted at the vocal bands; the accompaniment gets the mirror
// image attenuation there, since energy at those exact bands in a
// separated accompaniment is more likely vocal leakage than
// instrument content.
func formantShaping(stems separation.Stems, strength float64) (separation.Stems, error) {
	gainDB := 2 * strength

	vocals, err := shapeBands(stems.Vocals, gainDB, true)
	if err != nil {
		return stems, err
	}

	accompaniment, err := shapeBands(stems.Accompaniment, -gainDB, false)
	if err != nil {
		return stems, err
	}

	stems.Vocals = vocals
	stems.Accompaniment = accompaniment
	return stems, nil
}

func shapeBands(waveform audio.Waveform, gainDB float64, withHighPass bool) (audio.Waveform, error) {
	chain := dsp.FilterChain{}
	if withHighPass {
		highPass, err := dsp.NewButterworthHighPass(waveform.SampleRate, vocalHighPassHz, 2)
		if err != nil {
			return waveform, errors.Wrap(err, "Failed to build vocal high pass")
		}
		chain = highPass
	}

	for _, freq := range vocalBandsHz {
		if freq < float64(waveform.SampleRate)/2 {
			chain = append(chain, dsp.NewPeakingEQ(waveform.SampleRate, freq, 1.0, gainDB))
		}
	}

	shaped := waveform.Clone()
	for c := range shaped.Channels {
		shaped.Channels[c] = dsp.Filter(chain, shaped.Channels[c])
	}

	return shaped, nil
}

const stereoWidthGain = 1.1

// widenStereo pushes the accompaniment outward by scaling its side
// signal, leaving mono accompaniment untouched.
func widenStereo(waveform audio.Waveform) (audio.Waveform, error) {
	if !waveform.IsStereo() {
		return waveform, nil
	}

	mid, side := separation.MidSide(waveform)
	for i := range side {
		side[i] *= stereoWidthGain
	}

	return separation.FromMidSide(mid, side, waveform.SampleRate), nil
}
