package views

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Tanupriya0912/Job-portal/internal/media/sniffer"
	"github.com/Tanupriya0912/Job-portal/internal/models"
	"github.com/Tanupriya0912/Job-portal/internal/query"
	"github.com/Tanupriya0912/Job-portal/internal/service"
	"github.com/Tanupriya0912/Job-portal/internal/session"
	"github.com/Tanupriya0912/Job-portal/internal/workspace"
)

const (
	emptyJobs         = "-- Job List is Empty --"
	recruitersOnly    = "Only recruiters can access this page. Please login as a recruiter to manage jobs."
	defaultPageSize   = 10
	applyFailedText   = "Failed to apply for job"
	deleteFailedText  = "Failed to delete job"
	loginRequiredText = "You need to login to apply for a job"

	// Every search and page is its own key; unread ones are dropped.
	listCacheTime = 5 * time.Minute
)

// Upload is a file the visitor attached to a form.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

func (u *Upload) resume() (service.Resume, error) {
	if _, err := sniffer.CheckResume(u.ContentType, u.Data); err != nil {
		return service.Resume{}, err
	}
	return service.Resume{Name: u.Name, ContentType: u.ContentType, Data: u.Data}, nil
}

type JobDetail struct {
	models.Job
	PostedOn string `json:"postedOn"`
}

func (v *Views) Jobs(ctx context.Context, ws *workspace.Workspace, search string, page int) Result {
	search = strings.TrimSpace(search)
	if page < 1 {
		page = 1
	}
	key := query.Key{"jobs", search, strconv.Itoa(page)}
	list, err := query.Get(ctx, ws.Query, key, func(ctx context.Context) (models.JobPage, error) {
		return ws.Services.Jobs.List(ctx, service.ListJobsInput{Search: search, Page: page, Size: defaultPageSize})
	}, query.Options{CacheTime: listCacheTime})
	if err != nil {
		v.log.Warn().Err(err).Msg("list jobs failed")
		return loadFailed(err, "Failed to fetch jobs")
	}
	if len(list.Content) == 0 {
		return empty(emptyJobs)
	}
	return data(list)
}

func (v *Views) Job(ctx context.Context, ws *workspace.Workspace, id string) Result {
	job, err := query.Get(ctx, ws.Query, query.JobKey(id), func(ctx context.Context) (models.Job, error) {
		return v.details.Lookup(ctx, id, ws.Services.Jobs)
	}, query.Options{CacheTime: listCacheTime})
	if err != nil {
		return loadFailed(err, "Failed to fetch job")
	}
	return data(JobDetail{Job: job, PostedOn: models.PostedOn(job.CreatedAt)})
}

// Apply submits an application. A nil upload still sends a resume part,
// an empty resume.pdf, because the backend requires one.
func (v *Views) Apply(ctx context.Context, ws *workspace.Workspace, jobID string, upload *Upload) Result {
	if v.currentUser(ctx, ws) == nil {
		return warning(http.StatusUnauthorized, "Please Login", loginRequiredText)
	}

	resume := service.PlaceholderResume()
	if upload != nil {
		r, err := upload.resume()
		if err != nil {
			return rejected(http.StatusUnsupportedMediaType, "Oops...", sniffer.NotAllowedMessage)
		}
		resume = r
	}

	msg, err := ws.Services.Applications.Apply(ctx, jobID, resume)
	if err != nil {
		if errors.Is(err, service.ErrJobIDRequired) {
			return rejected(http.StatusBadRequest, "Oops...", "Job id is required")
		}
		v.log.Warn().Err(err).Str("job_id", jobID).Msg("apply failed")
		return failure(err, "Oops...", applyFailedText)
	}

	v.invalidate(ctx, ws, query.KeyRecJobs, query.KeyApplicantJobs)
	return success("Hurray...", msg)
}

// ManageJobs lists the recruiter's own postings. Other roles get the denial
// without any request reaching the backend.
func (v *Views) ManageJobs(ctx context.Context, ws *workspace.Workspace) Result {
	if !session.IsRecruiter(v.currentUser(ctx, ws)) {
		return denied(recruitersOnly)
	}
	jobs, err := query.Get(ctx, ws.Query, query.KeyMyJobs, ws.Services.Jobs.Mine, query.Options{})
	if err != nil {
		return loadFailed(err, "Failed to fetch jobs")
	}
	if len(jobs) == 0 {
		return empty(emptyJobs)
	}
	return data(jobs)
}

func (v *Views) DeleteJob(ctx context.Context, ws *workspace.Workspace, id string) Result {
	if !session.IsRecruiter(v.currentUser(ctx, ws)) {
		return rejected(http.StatusForbidden, "Sorry!", session.RoleErrorMessage("delete jobs", models.UserRoleRecruiter))
	}
	msg, err := ws.Services.Jobs.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrJobIDRequired) {
			return rejected(http.StatusBadRequest, "Sorry!", "Job id is required")
		}
		return failure(err, "Sorry!", deleteFailedText)
	}

	v.details.Forget(ctx, id)
	v.invalidate(ctx, ws, query.KeyMyJobs, query.KeyJobs, query.JobKey(id))
	return success("Deleted!", orDefault(msg, "Your job has been deleted."))
}
