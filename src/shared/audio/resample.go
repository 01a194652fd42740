package audio

import (
	"github.com/cockroachdb/errors"
	resampling "github.com/tphakala/go-audio-resampling"
)

// Resample converts the waveform to the target sample rate using a
// bandlimited sinc resampler. A no-op when the rate already matches.
func Resample(waveform Waveform, targetRate int) (Waveform, error) {
	if targetRate <= 0 {
		return Waveform{}, errors.Errorf("Invalid target sample rate %d", targetRate)
	}

	if waveform.SampleRate == targetRate || waveform.IsEmpty() {
		resampled := waveform.Clone()
		resampled.SampleRate = targetRate
		return resampled, nil
	}

	ratio := float64(targetRate) / float64(waveform.SampleRate)
	outFrames := int(float64(waveform.NumFrames()) * ratio)

	channels := make([][]float64, waveform.NumChannels())
	for c, channel := range waveform.Channels {
		resampler, err := resampling.New(&resampling.Config{
			InputRate:  float64(waveform.SampleRate),
			OutputRate: float64(targetRate),
			Channels:   1,
			Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
		})
		if err != nil {
			return Waveform{}, errors.Wrap(err, "Failed to create resampler")
		}

		// pad the tail so the full signal makes it through the
		// resampler's internal filter delay
		padded := make([]float64, len(channel)+waveform.SampleRate/10)
		copy(padded, channel)

		out, err := resampler.Process(padded)
		if err != nil {
			return Waveform{}, errors.Wrap(err, "Failed to resample channel")
		}

		if len(out) > outFrames {
			out = out[:outFrames]
		} else if len(out) < outFrames {
			grown := make([]float64, outFrames)
			copy(grown, out)
			out = grown
		}

		channels[c] = out
	}

	return NewWaveform(channels, targetRate)
}
