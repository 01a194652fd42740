package noise

import (
	"github.com/apex/log"
	"github.com/cockroachdb/errors"

	"github.com/voxsplit/voxsplit-be/src/shared/audio"
	"github.com/voxsplit/voxsplit-be/src/shared/dsp"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
	"github.com/voxsplit/voxsplit-be/src/shared/separation"
)

// Result describes one noise removal run.
type Result struct {
	Audio audio.Waveform

	// NoiseType is the profile actually removed. When the caller
	// asked for auto, this is what the classifier picked.
	NoiseType Type

	Strength float64

	// ReductionDB reports how much energy the removal took out.
	ReductionDB float64
}

func NewRemover() Remover {
	return Remover{}
}

type Remover struct{}

// Remove cleans the given noise profile out of the waveform. The
// output always has the same length, channel count and sample rate
// as the input.
func (r Remover) Remove(waveform audio.Waveform, noiseType Type, strength float64) (Result, error) {
	if waveform.IsEmpty() {
		return Result{}, mark.Message(marks.InvalidParameter, "Input audio is empty")
	}

	if strength < 0 || strength > 1 {
		return Result{}, mark.Message(marks.InvalidParameter, "Noise removal strength must be between 0 and 1")
	}

	if noiseType == TypeAuto {
		noiseType = Classify(waveform)
	}

	log.WithFields(log.Fields{
		"noise_type": string(noiseType),
		"strength":   strength,
		"frames":     waveform.NumFrames(),
	}).Info("Removing noise")

	cleaned := waveform.Clone()
	for c := range cleaned.Channels {
		channel, err := r.removeChannel(cleaned.Channels[c], waveform.SampleRate, noiseType, strength)
		if err != nil {
			return Result{}, errors.Wrap(err, "Failed to remove noise from channel")
		}

		cleaned.Channels[c] = channel
	}

	if cleaned.IsStereo() {
		cleaned = reduceIncoherentSide(cleaned, strength)
	}

	cleaned = smooth(cleaned)
	cleaned = cleaned.Clip()

	return Result{
		Audio:       cleaned,
		NoiseType:   noiseType,
		Strength:    strength,
		ReductionDB: dsp.ReductionDB(waveform.Mono(), cleaned.Mono()),
	}, nil
}

func (r Remover) removeChannel(samples []float64, sampleRate int, noiseType Type, strength float64) ([]float64, error) {
	switch noiseType {
	case TypeWhite:
		return removeWhite(samples, sampleRate, strength)
	case TypeHiss:
		return removeHiss(samples, sampleRate, strength)
	case TypeHum:
		return removeHum(samples, sampleRate, strength)
	case TypeGeneric:
		return removeGeneric(samples, sampleRate, strength)
	default:
		return nil, mark.Message(marks.InvalidParameter, "Unknown noise type: "+string(noiseType))
	}
}

const (
	coherenceCorrThreshold = 0.5
	coherenceSideReduction = 0.3
)

// reduceIncoherentSide shrinks the side signal when the channels are
// strongly correlated. In that case the side holds little program
// material and mostly carries uncorrelated noise.
func reduceIncoherentSide(waveform audio.Waveform, strength float64) audio.Waveform {
	corr := dsp.Correlation(waveform.Channels[0], waveform.Channels[1])
	if corr <= coherenceCorrThreshold {
		return waveform
	}

	mid, side := separation.MidSide(waveform)
	sideGain := 1 - strength*coherenceSideReduction
	for i := range side {
		side[i] *= sideGain
	}

	return separation.FromMidSide(mid, side, waveform.SampleRate)
}

const (
	smoothCutoffShare = 0.4
	smoothBlend       = 0.95
)

// smooth rounds off processing artifacts near Nyquist with a gentle
// low pass, blended so the original still carries through.
func smooth(waveform audio.Waveform) audio.Waveform {
	cutoff := smoothCutoffShare * float64(waveform.SampleRate)

	lowPass, err := dsp.NewButterworthLowPass(waveform.SampleRate, cutoff, 2)
	if err != nil {
		return waveform
	}

	smoothed := waveform.Clone()
	for c := range smoothed.Channels {
		filtered := dsp.ZeroPhaseFilter(lowPass, smoothed.Channels[c])
		for i := range filtered {
			smoothed.Channels[c][i] = smoothBlend*filtered[i] + (1-smoothBlend)*smoothed.Channels[c][i]
		}
	}

	return smoothed
}
