package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/voxsplit/voxsplit-be/src/server/internal/errors/api"
	"github.com/voxsplit/voxsplit-be/src/shared/audio"
	"github.com/voxsplit/voxsplit-be/src/shared/job/entity"
	"github.com/voxsplit/voxsplit-be/src/shared/job/storage"
	"github.com/voxsplit/voxsplit-be/src/shared/jobmessage"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/cloudstorage"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/rabbitmq"
	"github.com/voxsplit/voxsplit-be/src/shared/separation"
)

func NewUsecase(db storage.JobStore, fileStore cloudstorage.FileStore, publisher rabbitmq.Publisher) Usecase {
	return Usecase{
		db:        db,
		fileStore: fileStore,
		publisher: publisher,
	}
}

type Usecase struct {
	db        storage.JobStore
	fileStore cloudstorage.FileStore
	publisher rabbitmq.Publisher
}

// CreateJob validates the upload, stages it in cloud storage, records
// the job, and queues it for the worker.
func (u Usecase) CreateJob(ctx context.Context, fileContents []byte, modeValue string, qualityValue string, strength float64) (entity.SeparationJob, *api.Error) {
	mode, err := separation.ParseMode(modeValue)
	if err != nil {
		return entity.SeparationJob{}, api.CommitError(err)
	}

	quality, err := separation.ParseQuality(qualityValue)
	if err != nil {
		return entity.SeparationJob{}, api.CommitError(err)
	}

	if strength < 0 || strength > 1 {
		err := mark.Message(marks.InvalidParameter, "Strength must be between 0 and 1")
		return entity.SeparationJob{}, api.CommitError(err)
	}

	waveform, err := audio.DecodeWAVBytes(fileContents)
	if err != nil {
		err = mark.Wrap(err, marks.InvalidParameter, "Uploaded file is not a readable WAV file")
		return entity.SeparationJob{}, api.CommitError(err)
	}

	if waveform.IsEmpty() {
		err := mark.Message(marks.InvalidParameter, "Uploaded audio is empty")
		return entity.SeparationJob{}, api.CommitError(err)
	}

	if waveform.NumChannels() > 2 {
		err := mark.Message(marks.UnseparableInput, "Uploaded audio has more than two channels")
		return entity.SeparationJob{}, api.CommitError(err)
	}

	// mid/side needs two distinct channels; model backed modes accept
	// mono and duplicate it for the model
	if mode == separation.ModeFallback && !waveform.IsStereo() {
		err := mark.Message(marks.UnseparableInput, "Uploaded audio must be stereo to separate without a stem model")
		return entity.SeparationJob{}, api.CommitError(err)
	}

	jobID := uuid.New().String()
	sourceURL := u.fileStore.FileURL(fmt.Sprintf("%s/source.wav", jobID))

	err = u.fileStore.WriteFile(ctx, sourceURL, fileContents)
	if err != nil {
		return entity.SeparationJob{}, api.CommitError(errors.Wrap(err, "Failed to stage uploaded audio"))
	}

	now := time.Now().UTC()
	job := entity.SeparationJob{
		ID:        jobID,
		Status:    entity.StatusRequested,
		SourceURL: sourceURL,
		Mode:      string(mode),
		Quality:   string(quality),
		Strength:  strength,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = u.db.CreateJob(ctx, job)
	if err != nil {
		return entity.SeparationJob{}, api.CommitError(errors.Wrap(err, "Failed to record separation job"))
	}

	message, err := jobmessage.Create(jobmessage.StartJobType, jobmessage.StartJobPayload{JobID: jobID})
	if err != nil {
		return entity.SeparationJob{}, api.CommitError(errors.Wrap(err, "Failed to create job message"))
	}

	err = u.publisher.Publish(message)
	if err != nil {
		return entity.SeparationJob{}, api.CommitError(errors.Wrap(err, "Failed to queue separation job"))
	}

	return job, nil
}

func (u Usecase) GetJob(ctx context.Context, jobID string) (entity.SeparationJob, *api.Error) {
	if jobID == "" {
		err := mark.Message(marks.InvalidParameter, "Job ID is required")
		return entity.SeparationJob{}, api.CommitError(err)
	}

	job, err := u.db.GetJob(ctx, jobID)
	if err != nil {
		return entity.SeparationJob{}, api.CommitError(errors.Wrap(err, "Failed to look up separation job"))
	}

	return job, nil
}

// QualityOption describes one quality setting for clients.
type QualityOption struct {
	Quality    string `json:"quality"`
	SampleRate int    `json:"sample_rate"`
}

func (u Usecase) QualityInfo() []QualityOption {
	qualities := []separation.Quality{
		separation.QualityHigh,
		separation.QualityMedium,
		separation.QualityLow,
	}

	options := make([]QualityOption, 0, len(qualities))
	for _, quality := range qualities {
		options = append(options, QualityOption{
			Quality:    string(quality),
			SampleRate: quality.SampleRate(),
		})
	}

	return options
}
