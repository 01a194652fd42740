package audio

import (
	"math"

	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
)

var InvalidWaveformMark = mark.NewMark("InvalidWaveform")

// Waveform holds planar PCM samples, one slice per channel,
// all channels the same length.
type Waveform struct {
	Channels   [][]float64
	SampleRate int
}

func NewWaveform(channels [][]float64, sampleRate int) (Waveform, error) {
	if len(channels) == 0 {
		return Waveform{}, mark.Message(InvalidWaveformMark, "Waveform must have at least one channel")
	}

	if sampleRate <= 0 {
		return Waveform{}, mark.Message(InvalidWaveformMark, "Waveform sample rate must be positive")
	}

	frameCount := len(channels[0])
	for _, channel := range channels[1:] {
		if len(channel) != frameCount {
			return Waveform{}, mark.Message(InvalidWaveformMark, "Waveform channels must all be the same length")
		}
	}

	return Waveform{
		Channels:   channels,
		SampleRate: sampleRate,
	}, nil
}

func (w Waveform) NumChannels() int {
	return len(w.Channels)
}

func (w Waveform) NumFrames() int {
	if len(w.Channels) == 0 {
		return 0
	}

	return len(w.Channels[0])
}

func (w Waveform) IsEmpty() bool {
	return w.NumFrames() == 0
}

func (w Waveform) IsStereo() bool {
	return w.NumChannels() == 2
}

// Clone deep copies the sample data so callers can mutate freely.
func (w Waveform) Clone() Waveform {
	channels := make([][]float64, len(w.Channels))
	for i, channel := range w.Channels {
		channels[i] = make([]float64, len(channel))
		copy(channels[i], channel)
	}

	return Waveform{
		Channels:   channels,
		SampleRate: w.SampleRate,
	}
}

// Mono mixes all channels down to a single averaged channel.
func (w Waveform) Mono() []float64 {
	if w.NumChannels() == 1 {
		mono := make([]float64, w.NumFrames())
		copy(mono, w.Channels[0])
		return mono
	}

	mono := make([]float64, w.NumFrames())
	scale := 1.0 / float64(w.NumChannels())
	for _, channel := range w.Channels {
		for i, sample := range channel {
			mono[i] += sample * scale
		}
	}

	return mono
}

func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	sum := 0.0
	for _, sample := range samples {
		sum += sample * sample
	}

	return math.Sqrt(sum / float64(len(samples)))
}

func (w Waveform) RMS() float64 {
	return RMS(w.Mono())
}

func Peak(samples []float64) float64 {
	peak := 0.0
	for _, sample := range samples {
		abs := math.Abs(sample)
		if abs > peak {
			peak = abs
		}
	}

	return peak
}

func (w Waveform) Peak() float64 {
	peak := 0.0
	for _, channel := range w.Channels {
		channelPeak := Peak(channel)
		if channelPeak > peak {
			peak = channelPeak
		}
	}

	return peak
}

// Energy is the sum of squared samples across all channels.
func (w Waveform) Energy() float64 {
	energy := 0.0
	for _, channel := range w.Channels {
		for _, sample := range channel {
			energy += sample * sample
		}
	}

	return energy
}

const (
	normalizeRMSTargetDB = -23.0
	normalizePeakCeil    = 0.95
)

// Normalize scales the waveform towards a reference RMS level while
// keeping the peak at or below the ceiling. Silent audio is left alone.
func (w Waveform) Normalize() Waveform {
	normalized := w.Clone()

	rms := normalized.RMS()
	if rms <= 1e-10 {
		return normalized
	}

	gain := math.Pow(10, normalizeRMSTargetDB/20) / rms

	peak := normalized.Peak()
	if peak*gain > normalizePeakCeil {
		gain = normalizePeakCeil / peak
	}

	for _, channel := range normalized.Channels {
		for i := range channel {
			channel[i] *= gain
		}
	}

	return normalized
}

// Clip bounds every sample to [-1, 1].
func (w Waveform) Clip() Waveform {
	clipped := w.Clone()
	for _, channel := range clipped.Channels {
		for i, sample := range channel {
			if sample > 1.0 {
				channel[i] = 1.0
			} else if sample < -1.0 {
				channel[i] = -1.0
			}
		}
	}

	return clipped
}
