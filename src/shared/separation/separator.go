package separation

import (
	"context"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"

	"github.com/voxsplit/voxsplit-be/src/shared/audio"
	"github.com/voxsplit/voxsplit-be/src/shared/dsp"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
)

// Method records which extraction path produced the stems.
type Method string

const (
	MethodModel   Method = "model"
	MethodMidSide Method = "midside"
)

// Result holds the separated stems along with how they were made.
type Result struct {
	Stems      Stems
	Method     Method
	Mode       Mode
	Quality    Quality
	SampleRate int

	// Duration of the output stems in seconds.
	Duration float64

	// Warning is set when the mid/side path produced the stems, since
	// its quality depends on the mix being center panned.
	Warning string
}

const (
	// center correlation above which model vocals get reinforced
	// with the mid signal
	centerCorrThreshold = 0.7
	centerBlendModel    = 0.7
	centerBlendMid      = 0.3

	// relative side energy below which the input is effectively mono
	minSideEnergyRatio = 1e-6

	midSideWarning = "Stems were extracted with mid/side math, which assumes center panned vocals"
)

func NewSeparator(model StemModel) Separator {
	return Separator{model: model}
}

type Separator struct {
	model StemModel
}

// Separate splits a mix into vocal and accompaniment stems. Both
// output stems have the same length as the (resampled) input. Mono
// input is only separable by the model; the mid/side path needs the
// spatial cue of two distinct channels.
func (s Separator) Separate(ctx context.Context, waveform audio.Waveform, mode Mode, quality Quality) (Result, error) {
	if waveform.IsEmpty() {
		return Result{}, mark.Message(marks.InvalidParameter, "Input audio is empty")
	}

	if waveform.NumChannels() > 2 {
		return Result{}, mark.Message(marks.UnseparableInput, "Input audio has more than two channels")
	}

	targetRate := quality.SampleRate()
	resampled, err := audio.Resample(waveform, targetRate)
	if err != nil {
		return Result{}, errors.Wrap(err, "Failed to resample input for separation")
	}

	logger := log.WithFields(log.Fields{
		"mode":        string(mode),
		"quality":     string(quality),
		"sample_rate": targetRate,
		"frames":      resampled.NumFrames(),
	})

	var stems Stems
	var method Method

	switch mode {
	case ModeFallback:
		stems, err = s.midSideStems(resampled, quality)
		if err != nil {
			return Result{}, errors.Wrap(err, "Input cannot be separated")
		}
		method = MethodMidSide

	case ModeClean:
		stems, err = s.model.SeparateStems(ctx, modelInput(resampled))
		if err != nil {
			return Result{}, errors.Wrap(err, "Stem model failed to separate input")
		}
		method = MethodModel

	case ModeEnhanced:
		stems, err = s.model.SeparateStems(ctx, modelInput(resampled))
		switch {
		case err == nil:
			stems = s.enhanceCenter(resampled, stems)
			method = MethodModel
		case mark.Is(err, marks.ModelUnavailable):
			logger.Warn("Stem model unavailable, falling back to mid/side separation")
			stems, err = s.midSideStems(resampled, quality)
			if err != nil {
				return Result{}, errors.Wrap(err, "Input cannot be separated")
			}
			method = MethodMidSide
		default:
			return Result{}, errors.Wrap(err, "Stem model failed to separate input")
		}

	default:
		return Result{}, mark.Message(marks.InvalidParameter, "Unknown separation mode: "+string(mode))
	}

	stems.Vocals = stems.Vocals.Normalize().Clip()
	stems.Accompaniment = stems.Accompaniment.Normalize().Clip()

	logger.WithField("method", string(method)).Info("Separated stems")

	result := Result{
		Stems:      stems,
		Method:     method,
		Mode:       mode,
		Quality:    quality,
		SampleRate: targetRate,
		Duration:   float64(stems.Vocals.NumFrames()) / float64(targetRate),
	}
	if method == MethodMidSide {
		result.Warning = midSideWarning
	}

	return result, nil
}

// modelInput prepares the waveform for the stem model, which expects
// a stereo pair. Mono input is duplicated into synthetic stereo.
func modelInput(waveform audio.Waveform) audio.Waveform {
	if waveform.NumChannels() != 1 {
		return waveform
	}

	return duplicateMono(waveform.Channels[0], waveform.SampleRate)
}

// midSideStems treats the mid signal as vocals and the side signal as
// accompaniment, the classic karaoke style decomposition. High
// quality additionally refines both signals.
func (s Separator) midSideStems(waveform audio.Waveform, quality Quality) (Stems, error) {
	if !waveform.IsStereo() {
		return Stems{}, mark.Message(marks.UnseparableInput, "Mono audio carries no spatial cue, a stem model is required to separate it")
	}

	mid, side := MidSide(waveform)

	sideEnergy := dsp.SignalEnergy(side)
	totalEnergy := waveform.Energy()
	if totalEnergy > 0 && sideEnergy/totalEnergy < minSideEnergyRatio {
		return Stems{}, mark.Message(marks.UnseparableInput, "Input channels are identical, nothing to separate")
	}

	if quality == QualityHigh {
		mid, side = refineMidSide(waveform, mid, side)
	}

	return Stems{
		Vocals:        duplicateMono(mid, waveform.SampleRate),
		Accompaniment: duplicateMono(side, waveform.SampleRate),
	}, nil
}

const (
	// L/R correlation above which the mid signal is trusted as
	// genuinely centered content
	refineCorrThreshold = 0.7
	refineCenterBlend   = 0.5

	// bass sits center panned in most mixes but belongs to the
	// accompaniment, so the low end of mid is folded into side
	sideBassCutoffHz = 200.0
	sideBassBlend    = 0.5
)

// refineMidSide runs the high quality enhance-center and enhance-side
// passes over a mid/side decomposition. The center pass blends mid
// toward (L+R)/4 in proportion to how correlated the channels are.
// The side pass mixes the low passed low frequencies of mid into
// side, keeping center panned bass in the accompaniment stem.
func refineMidSide(waveform audio.Waveform, mid []float64, side []float64) ([]float64, []float64) {
	corr := dsp.Correlation(waveform.Channels[0], waveform.Channels[1])
	if corr > refineCorrThreshold {
		blend := refineCenterBlend * corr
		for i := range mid {
			quarterSum := (waveform.Channels[0][i] + waveform.Channels[1][i]) / 4
			mid[i] = (1-blend)*mid[i] + blend*quarterSum
		}
	}

	lowPass, err := dsp.NewButterworthLowPass(waveform.SampleRate, sideBassCutoffHz, 4)
	if err != nil {
		return mid, side
	}

	midLows := dsp.ZeroPhaseFilter(lowPass, mid)
	for i := range side {
		side[i] += sideBassBlend * midLows[i]
	}

	return mid, side
}

// enhanceCenter reinforces model vocals with the mid signal when the
// two clearly agree, which firms up center panned vocals the model
// only partially captured.
func (s Separator) enhanceCenter(input audio.Waveform, stems Stems) Stems {
	if !input.IsStereo() {
		return stems
	}

	mid, _ := MidSide(input)
	vocalsMono := stems.Vocals.Mono()

	if len(vocalsMono) != len(mid) {
		return stems
	}

	corr := dsp.Correlation(vocalsMono, mid)
	if corr <= centerCorrThreshold {
		return stems
	}

	enhanced := stems.Vocals.Clone()
	for _, channel := range enhanced.Channels {
		for i := range channel {
			channel[i] = centerBlendModel*channel[i] + centerBlendMid*mid[i]
		}
	}

	stems.Vocals = enhanced
	return stems
}
