package enhance

import (
	"math"

	"github.com/voxsplit/voxsplit-be/src/shared/audio"
)

const (
	compressorThresholdDB = -20.0
	compressorKneeDB      = 6.0
	compressorMaxRatio    = 3.0

	compressorAttackMs  = 5.0
	compressorReleaseMs = 100.0
)

// compress levels the vocal stem with a soft knee downward
// compressor. Strength scales the ratio from 1:1 up to 3:1.
func compress(waveform audio.Waveform, strength float64) audio.Waveform {
	ratio := 1 + (compressorMaxRatio-1)*strength
	if ratio <= 1 {
		return waveform
	}

	attackCoeff := envelopeCoeff(compressorAttackMs, waveform.SampleRate)
	releaseCoeff := envelopeCoeff(compressorReleaseMs, waveform.SampleRate)

	compressed := waveform.Clone()
	for _, channel := range compressed.Channels {
		envelope := 0.0
		for i, sample := range channel {
			level := math.Abs(sample)
			if level > envelope {
				envelope = attackCoeff*envelope + (1-attackCoeff)*level
			} else {
				envelope = releaseCoeff*envelope + (1-releaseCoeff)*level
			}

			channel[i] = sample * gainFor(envelope, ratio)
		}
	}

	return compressed
}

func envelopeCoeff(timeMs float64, sampleRate int) float64 {
	return math.Exp(-1 / (timeMs / 1000 * float64(sampleRate)))
}

// gainFor computes the soft knee gain for the current envelope level.
func gainFor(envelope float64, ratio float64) float64 {
	if envelope <= 1e-10 {
		return 1
	}

	levelDB := 20 * math.Log10(envelope)
	overDB := levelDB - compressorThresholdDB

	var reductionDB float64
	switch {
	case overDB <= -compressorKneeDB/2:
		reductionDB = 0
	case overDB >= compressorKneeDB/2:
		reductionDB = overDB * (1 - 1/ratio)
	default:
		// inside the knee, blend quadratically into the ratio
		kneeOver := overDB + compressorKneeDB/2
		reductionDB = (1 - 1/ratio) * kneeOver * kneeOver / (2 * compressorKneeDB)
	}

	return math.Pow(10, -reductionDB/20)
}
