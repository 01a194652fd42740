package savestems

import (
	"context"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"

	"github.com/voxsplit/voxsplit-be/src/shared/job/storage"
	"github.com/voxsplit/voxsplit-be/src/shared/jobmessage"
)

func NewJobHandler(db storage.JobStore) JobHandler {
	return JobHandler{db: db}
}

// JobHandler finalizes a job by recording the stem locations.
type JobHandler struct {
	db storage.JobStore
}

func (h JobHandler) Handle(ctx context.Context, payload jobmessage.SaveStemsPayload) error {
	log.WithField("job_id", payload.JobID).Info("Saving separated stems")

	_, err := h.db.SetJobStems(ctx, payload.JobID, payload.VocalsURL, payload.AccompanimentURL)
	if err != nil {
		return errors.Wrap(err, "Failed to record stem locations")
	}

	return nil
}
