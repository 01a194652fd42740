package usecase

import (
	"github.com/cockroachdb/errors"

	"github.com/voxsplit/voxsplit-be/src/server/internal/errors/api"
	"github.com/voxsplit/voxsplit-be/src/shared/audio"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
	"github.com/voxsplit/voxsplit-be/src/shared/noise"
)

func NewUsecase(remover noise.Remover) Usecase {
	return Usecase{remover: remover}
}

type Usecase struct {
	remover noise.Remover
}

// Cleaned is a denoised file ready to return to the caller.
type Cleaned struct {
	WAV         []byte
	NoiseType   noise.Type
	ReductionDB float64
}

// RemoveNoise decodes the upload, strips the requested noise profile,
// and re-encodes the result.
func (u Usecase) RemoveNoise(fileContents []byte, noiseTypeValue string, strength float64) (Cleaned, *api.Error) {
	noiseType, err := noise.ParseType(noiseTypeValue)
	if err != nil {
		return Cleaned{}, api.CommitError(err)
	}

	waveform, err := audio.DecodeWAVBytes(fileContents)
	if err != nil {
		err = mark.Wrap(err, marks.InvalidParameter, "Uploaded file is not a readable WAV file")
		return Cleaned{}, api.CommitError(err)
	}

	result, err := u.remover.Remove(waveform, noiseType, strength)
	if err != nil {
		return Cleaned{}, api.CommitError(errors.Wrap(err, "Failed to remove noise"))
	}

	encoded, err := audio.EncodeWAVBytes(result.Audio)
	if err != nil {
		return Cleaned{}, api.CommitError(errors.Wrap(err, "Failed to encode cleaned audio"))
	}

	return Cleaned{
		WAV:         encoded,
		NoiseType:   result.NoiseType,
		ReductionDB: result.ReductionDB,
	}, nil
}
