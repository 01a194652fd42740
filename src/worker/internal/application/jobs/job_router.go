package jobs

import (
	"context"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/voxsplit/voxsplit-be/src/shared/job/storage"
	"github.com/voxsplit/voxsplit-be/src/shared/jobmessage"
	"github.com/voxsplit/voxsplit-be/src/worker/internal/application/jobs/save_stems"
	"github.com/voxsplit/voxsplit-be/src/worker/internal/application/jobs/separate"
	"github.com/voxsplit/voxsplit-be/src/worker/internal/application/jobs/start"
)

func NewJobRouter(
	db storage.JobStore,
	startHandler start.JobHandler,
	separateHandler separate.JobHandler,
	saveHandler savestems.JobHandler,
) JobRouter {
	return JobRouter{
		db:              db,
		startHandler:    startHandler,
		separateHandler: separateHandler,
		saveHandler:     saveHandler,
	}
}

// JobRouter decodes queue messages and dispatches them to the stage
// handlers. When a stage fails, the job is marked failed so polling
// clients aren't left hanging.
type JobRouter struct {
	db              storage.JobStore
	startHandler    start.JobHandler
	separateHandler separate.JobHandler
	saveHandler     savestems.JobHandler
}

func (r JobRouter) HandleMessage(message amqp.Delivery) error {
	ctx := context.Background()

	envelope, err := jobmessage.Decode(message.Body)
	if err != nil {
		return errors.Wrap(err, "Failed to decode job message")
	}

	err = r.dispatch(ctx, envelope)
	if err != nil {
		r.markJobFailed(ctx, envelope, err)
		return errors.Wrap(err, "Failed to process job message")
	}

	return nil
}

func (r JobRouter) dispatch(ctx context.Context, envelope jobmessage.Envelope) error {
	switch envelope.Type {
	case jobmessage.StartJobType:
		payload, err := jobmessage.DecodePayload[jobmessage.StartJobPayload](envelope)
		if err != nil {
			return errors.Wrap(err, "Failed to decode start payload")
		}
		return r.startHandler.Handle(ctx, payload)

	case jobmessage.SeparateStemsType:
		payload, err := jobmessage.DecodePayload[jobmessage.SeparateStemsPayload](envelope)
		if err != nil {
			return errors.Wrap(err, "Failed to decode separate payload")
		}
		return r.separateHandler.Handle(ctx, payload)

	case jobmessage.SaveStemsType:
		payload, err := jobmessage.DecodePayload[jobmessage.SaveStemsPayload](envelope)
		if err != nil {
			return errors.Wrap(err, "Failed to decode save payload")
		}
		return r.saveHandler.Handle(ctx, payload)

	default:
		return errors.Errorf("Unknown job message type %s", envelope.Type)
	}
}

func (r JobRouter) markJobFailed(ctx context.Context, envelope jobmessage.Envelope, jobErr error) {
	payload, err := jobmessage.DecodePayload[jobmessage.StartJobPayload](envelope)
	if err != nil || payload.JobID == "" {
		log.Warn("Cannot mark failed job, message has no job ID")
		return
	}

	_, err = r.db.SetJobError(ctx, payload.JobID, jobErr.Error())
	if err != nil {
		log.WithField("job_id", payload.JobID).
			WithError(err).
			Error("Failed to mark job as failed")
	}
}
