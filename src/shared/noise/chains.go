package noise

import (
	"math/cmplx"

	"github.com/cockroachdb/errors"

	"github.com/voxsplit/voxsplit-be/src/shared/dsp"
)

const (
	stftWindowSize = 2048
	stftHopSize    = 512

	noiseSampleSeconds = 0.5
)

// noiseProfileFrameCount bounds how many head and tail frames are
// treated as noise only: half a second of audio, or a quarter of the
// signal when it is shorter than two seconds.
func noiseProfileFrameCount(frameCount int, sampleRate int) int {
	bySeconds := int(noiseSampleSeconds * float64(sampleRate) / float64(stftHopSize))
	byShare := frameCount / 4

	count := bySeconds
	if byShare < count {
		count = byShare
	}
	if count < 1 {
		count = 1
	}

	return count
}

// removeWhite runs over subtraction against a noise profile averaged
// from the quiet head and tail of the signal.
func removeWhite(samples []float64, sampleRate int, strength float64) ([]float64, error) {
	stft := dsp.NewSTFT(stftWindowSize, stftHopSize)
	frames := stft.Analyze(samples)

	profileFrames := noiseProfileFrameCount(len(frames), sampleRate)
	noiseMags := dsp.EstimateNoiseMagnitudes(frames, profileFrames, profileFrames)

	subtractor := dsp.SpectralSubtractor{
		Alpha: 2.0 * strength,
		Beta:  0.3 - 0.2*strength,
	}
	subtractor.Apply(frames, noiseMags)

	return stft.Synthesize(frames, len(samples)), nil
}

const (
	hissFloorHz    = 4000.0
	hissMinCutHz   = 8000.0
	hissEnergyKeep = 0.99
)

// removeHiss attenuates high bins that sit near their own median
// level, then low passes above the point where nearly all of the
// signal's energy has been accounted for.
func removeHiss(samples []float64, sampleRate int, strength float64) ([]float64, error) {
	stft := dsp.NewSTFT(stftWindowSize, stftHopSize)
	frames := stft.Analyze(samples)

	if len(frames) > 0 {
		binCount := len(frames[0])
		binHz := float64(sampleRate) / float64(stftWindowSize)

		firstHissBin := int(hissFloorHz/binHz) + 1
		attenuation := 1 - strength*0.8

		for bin := firstHissBin; bin < binCount; bin++ {
			mags := make([]float64, len(frames))
			for frame := range frames {
				mags[frame] = cmplx.Abs(frames[frame][bin])
			}

			threshold := dsp.Median(mags) * (2 - strength)
			for frame := range frames {
				if mags[frame] < threshold {
					frames[frame][bin] *= complex(attenuation, 0)
				}
			}
		}
	}

	cleaned := stft.Synthesize(frames, len(samples))

	cutoff := energyCutoffHz(cleaned, sampleRate, hissEnergyKeep-strength*0.05)
	if cutoff < hissMinCutHz {
		cutoff = hissMinCutHz
	}

	nyquist := float64(sampleRate) / 2
	if cutoff >= nyquist*0.95 {
		return cleaned, nil
	}

	lowPass, err := dsp.NewButterworthLowPass(sampleRate, cutoff, 6)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to build hiss low pass")
	}

	return dsp.ZeroPhaseFilter(lowPass, cleaned), nil
}

// energyCutoffHz finds the frequency below which the given share of
// the signal's spectral energy lives.
func energyCutoffHz(samples []float64, sampleRate int, keepShare float64) float64 {
	freqs, psd := dsp.WelchPSD(samples, sampleRate)
	if len(psd) == 0 {
		return float64(sampleRate) / 2
	}

	total := 0.0
	for _, power := range psd {
		total += power
	}
	if total <= 1e-20 {
		return float64(sampleRate) / 2
	}

	cumulative := 0.0
	for bin, power := range psd {
		cumulative += power
		if cumulative/total >= keepShare {
			return freqs[bin]
		}
	}

	return float64(sampleRate) / 2
}

var humHarmonicsHz = []float64{50, 100, 150, 60, 120, 180}

// removeHum notches mains hum harmonics for both 50 and 60 Hz grids
// and high passes the subsonic rumble underneath them. All filtering
// is zero phase so the waveform doesn't smear.
func removeHum(samples []float64, sampleRate int, strength float64) ([]float64, error) {
	q := 30 * strength
	if q < 1 {
		q = 1
	}

	notches := make(dsp.FilterChain, 0, len(humHarmonicsHz))
	for _, freq := range humHarmonicsHz {
		if freq < float64(sampleRate)/2 {
			notches = append(notches, dsp.NewNotch(sampleRate, freq, q))
		}
	}

	cleaned := dsp.ZeroPhaseFilter(notches, samples)

	highPassHz := 20 * (1 + strength*2)
	highPass, err := dsp.NewButterworthHighPass(sampleRate, highPassHz, 4)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to build hum high pass")
	}

	return dsp.ZeroPhaseFilter(highPass, cleaned), nil
}

const (
	wienerFloorPercentile = 20.0

	attenuatorWindowMs = 100.0
)

// removeGeneric combines spectral subtraction with a Wiener style
// gain whose noise estimate is the quiet floor of each bin, then
// runs a sliding attenuator over stretches that stay near the
// signal's overall noise floor.
func removeGeneric(samples []float64, sampleRate int, strength float64) ([]float64, error) {
	stft := dsp.NewSTFT(stftWindowSize, stftHopSize)
	frames := stft.Analyze(samples)

	profileFrames := noiseProfileFrameCount(len(frames), sampleRate)
	noiseMags := dsp.EstimateNoiseMagnitudes(frames, profileFrames, profileFrames)

	subtractor := dsp.SpectralSubtractor{
		Alpha: 1.5 * strength,
		Beta:  0.2,
	}
	subtractor.Apply(frames, noiseMags)

	applyWienerGain(frames, strength)

	cleaned := stft.Synthesize(frames, len(samples))
	return slidingAttenuator(cleaned, sampleRate, strength), nil
}

// applyWienerGain scales each bin by snr/(snr + 1/strength), where
// the noise power per bin is its 20th percentile across frames.
func applyWienerGain(frames [][]complex128, strength float64) {
	if len(frames) == 0 || strength <= 0 {
		return
	}

	binCount := len(frames[0])
	powers := make([]float64, len(frames))

	for bin := 0; bin < binCount; bin++ {
		for frame := range frames {
			mag := cmplx.Abs(frames[frame][bin])
			powers[frame] = mag * mag
		}

		noisePower := dsp.Percentile(powers, wienerFloorPercentile)
		if noisePower <= 1e-20 {
			continue
		}

		for frame := range frames {
			snr := powers[frame] / noisePower
			gain := snr / (snr + 1/strength)
			frames[frame][bin] *= complex(gain, 0)
		}
	}
}

// slidingAttenuator pulls down 100ms windows whose level hugs the
// overall noise floor, smoothing residual noise between phrases.
func slidingAttenuator(samples []float64, sampleRate int, strength float64) []float64 {
	windowSize := int(attenuatorWindowMs / 1000 * float64(sampleRate))
	if windowSize < 1 || len(samples) < windowSize*2 {
		return samples
	}

	windowCount := len(samples) / windowSize
	windowRMS := make([]float64, windowCount)
	for w := 0; w < windowCount; w++ {
		sum := 0.0
		for _, sample := range samples[w*windowSize : (w+1)*windowSize] {
			sum += sample * sample
		}
		windowRMS[w] = sum / float64(windowSize)
	}

	floor := dsp.Percentile(windowRMS, wienerFloorPercentile)
	threshold := floor * 2
	if threshold <= 1e-20 {
		return samples
	}

	attenuation := 1 - strength*0.5
	for w := 0; w < windowCount; w++ {
		if windowRMS[w] < threshold {
			for i := w * windowSize; i < (w+1)*windowSize; i++ {
				samples[i] *= attenuation
			}
		}
	}

	return samples
}
