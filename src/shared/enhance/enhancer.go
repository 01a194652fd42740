package enhance

import (
	"math"

	"github.com/apex/log"

	"github.com/voxsplit/voxsplit-be/src/shared/audio"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
	"github.com/voxsplit/voxsplit-be/src/shared/separation"
)

// StageStatus records the outcome of one enhancement stage.
type StageStatus struct {
	Name    string
	Applied bool
	Error   string
}

type stage struct {
	name string
	run  func(stems separation.Stems) (separation.Stems, error)
}

func NewEnhancer() Enhancer {
	return Enhancer{}
}

// Enhancer runs a chain of best effort refinement stages over
// separated stems. A stage that fails is skipped and its input
// passes through unchanged, so enhancement never loses audio.
type Enhancer struct{}

// Enhance refines the stems with intensity scaled by strength in
// [0, 1]. Values outside the range are clamped.
func (e Enhancer) Enhance(stems separation.Stems, strength float64) (separation.Stems, []StageStatus) {
	if strength < 0 {
		strength = 0
	}
	if strength > 1 {
		strength = 1
	}

	stages := []stage{
		{
			name: "cross_stem_subtraction",
			run: func(s separation.Stems) (separation.Stems, error) {
				return crossStemSubtraction(s, strength)
			},
		},
		{
			name: "adaptive_gate",
			run: func(s separation.Stems) (separation.Stems, error) {
				vocals, err := adaptiveGate(s.Vocals, strength)
				if err != nil {
					return s, err
				}
				s.Vocals = vocals
				return s, nil
			},
		},
		{
			name: "formant_shaping",
			run: func(s separation.Stems) (separation.Stems, error) {
				return formantShaping(s, strength)
			},
		},
		{
			name: "compression",
			run: func(s separation.Stems) (separation.Stems, error) {
				s.Vocals = compress(s.Vocals, strength)
				return s, nil
			},
		},
		{
			name: "stereo_width",
			run: func(s separation.Stems) (separation.Stems, error) {
				accompaniment, err := widenStereo(s.Accompaniment)
				if err != nil {
					return s, err
				}
				s.Accompaniment = accompaniment
				return s, nil
			},
		},
	}

	statuses := make([]StageStatus, 0, len(stages))
	for _, stage := range stages {
		next, err := stage.run(stems)
		if err == nil && hasInvalidSamples(next) {
			err = mark.Message(marks.StageFailure, "Stage produced NaN or Inf samples")
		}
		if err != nil {
			log.WithField("stage", stage.name).
				WithError(err).
				Warn("Enhancement stage failed, passing audio through")

			statuses = append(statuses, StageStatus{Name: stage.name, Error: err.Error()})
			continue
		}

		stems = next
		statuses = append(statuses, StageStatus{Name: stage.name, Applied: true})
	}

	stems.Vocals = stems.Vocals.Clip()
	stems.Accompaniment = stems.Accompaniment.Clip()

	return stems, statuses
}

func hasInvalidSamples(stems separation.Stems) bool {
	for _, waveform := range []audio.Waveform{stems.Vocals, stems.Accompaniment} {
		for _, channel := range waveform.Channels {
			for _, sample := range channel {
				if math.IsNaN(sample) || math.IsInf(sample, 0) {
					return true
				}
			}
		}
	}

	return false
}
