package separation

import (
	"context"

	"github.com/voxsplit/voxsplit-be/src/shared/audio"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// Stems is the output of stem extraction, vocals and everything else.
type Stems struct {
	Vocals        audio.Waveform
	Accompaniment audio.Waveform
}

// StemModel extracts vocal and accompaniment stems from a mix.
//
//counterfeiter:generate . StemModel
type StemModel interface {
	SeparateStems(ctx context.Context, waveform audio.Waveform) (Stems, error)
}

// NullModel is the model used when no stem model is deployed. It
// always reports itself unavailable, pushing callers to fall back.
type NullModel struct{}

func (NullModel) SeparateStems(ctx context.Context, waveform audio.Waveform) (Stems, error) {
	return Stems{}, mark.Message(marks.ModelUnavailable, "No stem model is configured")
}
