package noise

import (
	"github.com/apex/log"

	"github.com/voxsplit/voxsplit-be/src/shared/separation"
)

// StemStatus records the outcome of artifact removal for one stem.
type StemStatus struct {
	Stem    string
	Cleaned bool

	// NoiseType is the profile the classifier picked for this stem.
	NoiseType Type

	ReductionDB float64

	Error string
}

// artifact removal runs gentler than user requested noise removal
const artifactStrengthScale = 0.5

// RemoveSeparationArtifacts cleans residual separation noise out of
// each stem independently, classifying the noise per stem. A stem
// whose cleanup fails keeps its original audio and is reported in
// its status, so one bad stem never sinks the whole result. The
// returned dB figure averages the reduction over the cleaned stems.
func (r Remover) RemoveSeparationArtifacts(stems separation.Stems, strength float64) (separation.Stems, []StemStatus, float64) {
	artifactStrength := strength * artifactStrengthScale

	statuses := make([]StemStatus, 0, 2)

	vocalsResult, err := r.Remove(stems.Vocals, TypeAuto, artifactStrength)
	if err != nil {
		log.WithError(err).Warn("Artifact removal failed for vocals, keeping original stem")
		statuses = append(statuses, StemStatus{Stem: "vocals", Error: err.Error()})
	} else {
		stems.Vocals = vocalsResult.Audio
		statuses = append(statuses, StemStatus{
			Stem:        "vocals",
			Cleaned:     true,
			NoiseType:   vocalsResult.NoiseType,
			ReductionDB: vocalsResult.ReductionDB,
		})
	}

	accompResult, err := r.Remove(stems.Accompaniment, TypeAuto, artifactStrength)
	if err != nil {
		log.WithError(err).Warn("Artifact removal failed for accompaniment, keeping original stem")
		statuses = append(statuses, StemStatus{Stem: "accompaniment", Error: err.Error()})
	} else {
		stems.Accompaniment = accompResult.Audio
		statuses = append(statuses, StemStatus{
			Stem:        "accompaniment",
			Cleaned:     true,
			NoiseType:   accompResult.NoiseType,
			ReductionDB: accompResult.ReductionDB,
		})
	}

	return stems, statuses, averageReductionDB(statuses)
}

func averageReductionDB(statuses []StemStatus) float64 {
	sum := 0.0
	cleaned := 0
	for _, status := range statuses {
		if status.Cleaned {
			sum += status.ReductionDB
			cleaned++
		}
	}

	if cleaned == 0 {
		return 0
	}

	return sum / float64(cleaned)
}
