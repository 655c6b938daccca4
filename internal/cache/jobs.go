package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tanupriya0912/Job-portal/internal/models"
)

const jobKeyPrefix = "portal:job:"

// JobFetcher loads a job from the backend with the caller's credentials.
type JobFetcher interface {
	Get(ctx context.Context, id string) (models.Job, error)
}

// JobDetails is the job-detail cache shared by every visitor. Cache errors
// are logged and never fail a lookup.
type JobDetails struct {
	store JSONStore
	ttl   time.Duration
	log   zerolog.Logger
}

func NewJobDetails(store JSONStore, ttl time.Duration, log zerolog.Logger) *JobDetails {
	return &JobDetails{store: store, ttl: ttl, log: log}
}

func (d *JobDetails) Lookup(ctx context.Context, id string, fetch JobFetcher) (models.Job, error) {
	key := jobKeyPrefix + id

	var job models.Job
	hit, err := d.store.GetJSON(ctx, key, &job)
	if err != nil {
		d.log.Warn().Err(err).Str("job_id", id).Msg("job cache read failed")
	}
	if hit {
		return job, nil
	}

	job, err = fetch.Get(ctx, id)
	if err != nil {
		return models.Job{}, err
	}
	if err := d.store.SetJSON(ctx, key, job, d.ttl); err != nil {
		d.log.Warn().Err(err).Str("job_id", id).Msg("job cache write failed")
	}
	return job, nil
}

// Forget drops a job after it was changed or deleted.
func (d *JobDetails) Forget(ctx context.Context, id string) {
	if err := d.store.Delete(ctx, jobKeyPrefix+id); err != nil {
		d.log.Warn().Err(err).Str("job_id", id).Msg("job cache delete failed")
	}
}
