package dummy

import (
	"context"
	"sync"
	"time"

	"github.com/voxsplit/voxsplit-be/src/shared/job/entity"
	"github.com/voxsplit/voxsplit-be/src/shared/job/storage"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
)

var _ storage.JobStore = &JobStore{}

func NewJobStore() *JobStore {
	return &JobStore{
		Jobs: map[string]entity.SeparationJob{},
	}
}

type JobStore struct {
	mutex sync.RWMutex
	Jobs  map[string]entity.SeparationJob
}

func (j *JobStore) GetJob(_ context.Context, jobID string) (entity.SeparationJob, error) {
	j.mutex.RLock()
	defer j.mutex.RUnlock()

	job, ok := j.Jobs[jobID]
	if !ok {
		return entity.SeparationJob{}, mark.Message(marks.NotFound, "Separation job not found")
	}

	return job, nil
}

func (j *JobStore) CreateJob(_ context.Context, job entity.SeparationJob) error {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	j.Jobs[job.ID] = job
	return nil
}

func (j *JobStore) SetJobProcessing(_ context.Context, jobID string, progress int) (entity.SeparationJob, error) {
	return j.update(jobID, func(job *entity.SeparationJob) {
		job.Status = entity.StatusProcessing
		job.Progress = progress
	})
}

func (j *JobStore) SetJobStems(_ context.Context, jobID string, vocalsURL string, accompanimentURL string) (entity.SeparationJob, error) {
	return j.update(jobID, func(job *entity.SeparationJob) {
		job.Status = entity.StatusDone
		job.Progress = 100
		job.VocalsURL = vocalsURL
		job.AccompanimentURL = accompanimentURL
	})
}

func (j *JobStore) SetJobError(_ context.Context, jobID string, message string) (entity.SeparationJob, error) {
	return j.update(jobID, func(job *entity.SeparationJob) {
		job.Status = entity.StatusError
		job.ErrorMessage = message
	})
}

func (j *JobStore) update(jobID string, apply func(job *entity.SeparationJob)) (entity.SeparationJob, error) {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	job, ok := j.Jobs[jobID]
	if !ok {
		return entity.SeparationJob{}, mark.Message(marks.NotFound, "Separation job not found")
	}

	apply(&job)
	job.UpdatedAt = time.Now().UTC()
	j.Jobs[jobID] = job

	return job, nil
}
