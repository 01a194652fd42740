package start

import (
	"context"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"

	"github.com/voxsplit/voxsplit-be/src/shared/job/storage"
	"github.com/voxsplit/voxsplit-be/src/shared/jobmessage"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/rabbitmq"
)

const startingProgress = 10

func NewJobHandler(db storage.JobStore, publisher rabbitmq.Publisher) JobHandler {
	return JobHandler{
		db:        db,
		publisher: publisher,
	}
}

// JobHandler moves a requested job into processing and hands it to
// the separation stage.
type JobHandler struct {
	db        storage.JobStore
	publisher rabbitmq.Publisher
}

func (h JobHandler) Handle(ctx context.Context, payload jobmessage.StartJobPayload) error {
	log.WithField("job_id", payload.JobID).Info("Starting separation job")

	job, err := h.db.GetJob(ctx, payload.JobID)
	if err != nil {
		return errors.Wrap(err, "Failed to load job to start")
	}

	// redelivered start messages must not restart a settled job
	if job.IsFinished() {
		log.WithField("job_id", job.ID).Warn("Job already finished, dropping start message")
		return nil
	}

	_, err = h.db.SetJobProcessing(ctx, job.ID, startingProgress)
	if err != nil {
		return errors.Wrap(err, "Failed to mark job as processing")
	}

	message, err := jobmessage.Create(jobmessage.SeparateStemsType, jobmessage.SeparateStemsPayload{
		JobID:     job.ID,
		SourceURL: job.SourceURL,
		Mode:      job.Mode,
		Quality:   job.Quality,
		Strength:  job.Strength,
	})
	if err != nil {
		return errors.Wrap(err, "Failed to create separation message")
	}

	err = h.publisher.Publish(message)
	if err != nil {
		return errors.Wrap(err, "Failed to queue separation stage")
	}

	return nil
}
