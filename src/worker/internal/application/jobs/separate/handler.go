package separate

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"

	"github.com/voxsplit/voxsplit-be/src/shared/audio"
	"github.com/voxsplit/voxsplit-be/src/shared/enhance"
	"github.com/voxsplit/voxsplit-be/src/shared/job/storage"
	"github.com/voxsplit/voxsplit-be/src/shared/jobmessage"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/cloudstorage"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/rabbitmq"
	"github.com/voxsplit/voxsplit-be/src/shared/noise"
	"github.com/voxsplit/voxsplit-be/src/shared/separation"
)

const (
	separatingProgress = 25
	uploadingProgress  = 75
)

func NewJobHandler(
	db storage.JobStore,
	fileStore cloudstorage.FileStore,
	separator separation.Separator,
	enhancer enhance.Enhancer,
	remover noise.Remover,
	publisher rabbitmq.Publisher,
) JobHandler {
	return JobHandler{
		db:        db,
		fileStore: fileStore,
		separator: separator,
		enhancer:  enhancer,
		remover:   remover,
		publisher: publisher,
	}
}

// JobHandler runs the heavy lifting of a job: fetch the source,
// separate it into stems, refine them, and upload the results.
type JobHandler struct {
	db        storage.JobStore
	fileStore cloudstorage.FileStore
	separator separation.Separator
	enhancer  enhance.Enhancer
	remover   noise.Remover
	publisher rabbitmq.Publisher
}

func (h JobHandler) Handle(ctx context.Context, payload jobmessage.SeparateStemsPayload) error {
	logger := log.WithField("job_id", payload.JobID)
	logger.Info("Separating stems")

	_, err := h.db.SetJobProcessing(ctx, payload.JobID, separatingProgress)
	if err != nil {
		return errors.Wrap(err, "Failed to update job progress")
	}

	mode, err := separation.ParseMode(payload.Mode)
	if err != nil {
		return errors.Wrap(err, "Job has an invalid mode")
	}

	quality, err := separation.ParseQuality(payload.Quality)
	if err != nil {
		return errors.Wrap(err, "Job has an invalid quality")
	}

	fileContents, err := h.fileStore.GetFile(ctx, payload.SourceURL)
	if err != nil {
		return errors.Wrap(err, "Failed to fetch source audio")
	}

	waveform, err := audio.DecodeWAVBytes(fileContents)
	if err != nil {
		return errors.Wrap(err, "Failed to decode source audio")
	}

	result, err := h.separator.Separate(ctx, waveform, mode, quality)
	if err != nil {
		return errors.Wrap(err, "Failed to separate stems")
	}

	if result.Warning != "" {
		logger.WithField("warning", result.Warning).Warn("Separation finished with a warning")
	}

	stems := result.Stems
	if mode == separation.ModeEnhanced {
		var stages []enhance.StageStatus
		stems, stages = h.enhancer.Enhance(stems, payload.Strength)
		logger.WithField("stages", len(stages)).Info("Enhanced stems")
	}

	if mode != separation.ModeClean {
		var statuses []noise.StemStatus
		var reductionDB float64
		stems, statuses, reductionDB = h.remover.RemoveSeparationArtifacts(stems, payload.Strength)
		for _, status := range statuses {
			if status.Error != "" {
				logger.WithField("stem", status.Stem).Warn("Artifact removal skipped for stem")
			}
		}
		logger.WithField("reduction_db", reductionDB).Info("Removed separation artifacts")
	}

	_, err = h.db.SetJobProcessing(ctx, payload.JobID, uploadingProgress)
	if err != nil {
		return errors.Wrap(err, "Failed to update job progress")
	}

	vocalsURL, err := h.uploadStem(ctx, payload.JobID, "vocals", stems.Vocals)
	if err != nil {
		return errors.Wrap(err, "Failed to upload vocals stem")
	}

	accompanimentURL, err := h.uploadStem(ctx, payload.JobID, "accompaniment", stems.Accompaniment)
	if err != nil {
		return errors.Wrap(err, "Failed to upload accompaniment stem")
	}

	message, err := jobmessage.Create(jobmessage.SaveStemsType, jobmessage.SaveStemsPayload{
		JobID:            payload.JobID,
		VocalsURL:        vocalsURL,
		AccompanimentURL: accompanimentURL,
	})
	if err != nil {
		return errors.Wrap(err, "Failed to create save message")
	}

	err = h.publisher.Publish(message)
	if err != nil {
		return errors.Wrap(err, "Failed to queue save stage")
	}

	return nil
}

func (h JobHandler) uploadStem(ctx context.Context, jobID string, stemName string, stem audio.Waveform) (string, error) {
	encoded, err := audio.EncodeWAVBytes(stem)
	if err != nil {
		return "", errors.Wrap(err, "Failed to encode stem")
	}

	stemURL := h.fileStore.FileURL(fmt.Sprintf("%s/%s.wav", jobID, stemName))
	err = h.fileStore.WriteFile(ctx, stemURL, encoded)
	if err != nil {
		return "", errors.Wrap(err, "Failed to write stem to storage")
	}

	return stemURL, nil
}
