package storage

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"

	"github.com/cockroachdb/errors"
	"github.com/voxsplit/voxsplit-be/src/shared/job/entity"
	dynamolib "github.com/voxsplit/voxsplit-be/src/shared/lib/dynamo"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
)

const JobsTableName = "SeparationJobs"

func NewDB(dynamoDB dynamolib.DynamoDBWrapper) DB {
	return DB{dynamoDB: dynamoDB}
}

type DB struct {
	dynamoDB dynamolib.DynamoDBWrapper
}

func (d DB) jobsTable() dynamolib.DynamoTableWrapper {
	return d.dynamoDB.Table(JobsTableName)
}

func (d DB) GetJob(ctx context.Context, jobID string) (entity.SeparationJob, error) {
	job := entity.SeparationJob{}

	err := d.jobsTable().Get("id", jobID).Consistent(true).OneWithContext(ctx, &job)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return entity.SeparationJob{}, mark.Wrap(err, marks.NotFound, "Separation job not found")
		}

		return entity.SeparationJob{}, mark.Wrap(err, marks.DefaultError, "Failed to get separation job from dynamo")
	}

	return job, nil
}

func (d DB) CreateJob(ctx context.Context, job entity.SeparationJob) error {
	err := d.jobsTable().
		Put(map[string]any{
			"id":         job.ID,
			"status":     job.Status,
			"source_url": job.SourceURL,
			"mode":       job.Mode,
			"quality":    job.Quality,
			"strength":   job.Strength,
			"progress":   job.Progress,
			"created_at": job.CreatedAt,
			"updated_at": job.UpdatedAt,
		}).
		If("attribute_not_exists(id)").
		RunWithContext(ctx)
	if err != nil {
		return mark.Wrap(err, marks.DefaultError, "Failed to create separation job in dynamo")
	}

	return nil
}

func (d DB) SetJobProcessing(ctx context.Context, jobID string, progress int) (entity.SeparationJob, error) {
	return d.updateJob(ctx, jobID, map[string]any{
		"status":   entity.StatusProcessing,
		"progress": progress,
	})
}

func (d DB) SetJobStems(ctx context.Context, jobID string, vocalsURL string, accompanimentURL string) (entity.SeparationJob, error) {
	return d.updateJob(ctx, jobID, map[string]any{
		"status":            entity.StatusDone,
		"progress":          100,
		"vocals_url":        vocalsURL,
		"accompaniment_url": accompanimentURL,
	})
}

func (d DB) SetJobError(ctx context.Context, jobID string, message string) (entity.SeparationJob, error) {
	return d.updateJob(ctx, jobID, map[string]any{
		"status":        entity.StatusError,
		"error_message": message,
	})
}

func (d DB) updateJob(ctx context.Context, jobID string, fields map[string]any) (entity.SeparationJob, error) {
	update := d.jobsTable().
		Update("id", jobID).
		If("attribute_exists(id)").
		Set("updated_at", time.Now().UTC())

	for field, value := range fields {
		update = update.Set(field, value)
	}

	job := entity.SeparationJob{}
	err := update.ValueWithContext(ctx, &job)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) || isCondCheckFailed(err) {
			return entity.SeparationJob{}, mark.Wrap(err, marks.NotFound, "Separation job not found")
		}

		return entity.SeparationJob{}, mark.Wrap(err, marks.DefaultError, "Failed to update separation job in dynamo")
	}

	return job, nil
}

func isCondCheckFailed(err error) bool {
	var awsErr awserr.Error
	return errors.As(err, &awsErr) && awsErr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
}
