package separation

import (
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
)

// Mode selects how much refinement happens after stem extraction.
type Mode string

const (
	// ModeEnhanced runs the model and refines its output, falling back
	// to mid/side separation when the model is unavailable.
	ModeEnhanced Mode = "enhanced"

	// ModeClean returns the model output untouched and fails when the
	// model is unavailable.
	ModeClean Mode = "clean"

	// ModeFallback skips the model entirely and separates by mid/side.
	ModeFallback Mode = "fallback"
)

func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeEnhanced, ModeClean, ModeFallback:
		return Mode(value), nil
	case "":
		return ModeEnhanced, nil
	default:
		return "", mark.Message(marks.InvalidParameter, "Unknown separation mode: "+value)
	}
}

// Quality trades separation fidelity against processing time by
// working at a lower sample rate.
type Quality string

const (
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
)

func ParseQuality(value string) (Quality, error) {
	switch Quality(value) {
	case QualityHigh, QualityMedium, QualityLow:
		return Quality(value), nil
	case "":
		return QualityHigh, nil
	default:
		return "", mark.Message(marks.InvalidParameter, "Unknown separation quality: "+value)
	}
}

func (q Quality) SampleRate() int {
	switch q {
	case QualityHigh:
		return 44100
	case QualityMedium:
		return 22050
	case QualityLow:
		return 16000
	default:
		return 44100
	}
}
