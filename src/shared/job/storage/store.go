package storage

import (
	"context"

	"github.com/voxsplit/voxsplit-be/src/shared/job/entity"
)

// JobStore is the persistence surface for separation jobs.
type JobStore interface {
	GetJob(ctx context.Context, jobID string) (entity.SeparationJob, error)
	CreateJob(ctx context.Context, job entity.SeparationJob) error
	SetJobProcessing(ctx context.Context, jobID string, progress int) (entity.SeparationJob, error)
	SetJobStems(ctx context.Context, jobID string, vocalsURL string, accompanimentURL string) (entity.SeparationJob, error)
	SetJobError(ctx context.Context, jobID string, message string) (entity.SeparationJob, error)
}

var _ JobStore = DB{}
