package views

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tanupriya0912/Job-portal/internal/cache"
	"github.com/Tanupriya0912/Job-portal/internal/models"
	"github.com/Tanupriya0912/Job-portal/internal/query"
	"github.com/Tanupriya0912/Job-portal/internal/workspace"
)

// Publisher spreads invalidations to other visitors and instances.
type Publisher interface {
	Publish(ctx context.Context, keys ...query.Key) error
}

type JobDetails interface {
	Lookup(ctx context.Context, id string, fetch cache.JobFetcher) (models.Job, error)
	Forget(ctx context.Context, id string)
}

// ResumeArchive stores a downloaded resume and returns a link to it.
type ResumeArchive interface {
	PutResume(ctx context.Context, applicationID, filename, contentType string, data []byte) (string, error)
}

type Deps struct {
	Bus          Publisher
	JobDetails   JobDetails
	Resumes      ResumeArchive
	PollInterval time.Duration
	FetchLimit   int
	Log          zerolog.Logger
}

// Views renders every page of the portal for a given workspace.
type Views struct {
	bus     Publisher
	details JobDetails
	resumes ResumeArchive
	poll    time.Duration
	limit   int
	log     zerolog.Logger
}

func New(deps Deps) *Views {
	v := &Views{
		bus:     deps.Bus,
		details: deps.JobDetails,
		resumes: deps.Resumes,
		poll:    deps.PollInterval,
		limit:   deps.FetchLimit,
		log:     deps.Log,
	}
	if v.details == nil {
		v.details = cache.NewJobDetails(cache.NewMemory(), time.Minute, deps.Log)
	}
	if v.poll <= 0 {
		v.poll = 5 * time.Second
	}
	if v.limit <= 0 {
		v.limit = 4
	}
	return v
}

// currentUser resolves the identity once per workspace; later calls read
// the store.
func (v *Views) currentUser(ctx context.Context, ws *workspace.Workspace) *models.User {
	snap := ws.Session.Current()
	if snap.Loading {
		snap = ws.Session.Refresh(ctx)
	}
	return snap.User
}

// invalidate marks keys stale for this visitor right away and tells
// everyone else through the bus.
func (v *Views) invalidate(ctx context.Context, ws *workspace.Workspace, keys ...query.Key) {
	ws.Query.Invalidate(keys...)
	if v.bus == nil {
		return
	}
	if err := v.bus.Publish(ctx, keys...); err != nil {
		v.log.Warn().Err(err).Str("workspace", ws.ID).Msg("invalidation not published")
	}
}

func (v *Views) jobLookup(ws *workspace.Workspace) func(context.Context, string) (models.Job, error) {
	return func(ctx context.Context, id string) (models.Job, error) {
		return v.details.Lookup(ctx, id, ws.Services.Jobs)
	}
}
