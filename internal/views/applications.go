package views

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Tanupriya0912/Job-portal/internal/gateway"
	"github.com/Tanupriya0912/Job-portal/internal/join"
	"github.com/Tanupriya0912/Job-portal/internal/models"
	"github.com/Tanupriya0912/Job-portal/internal/query"
	"github.com/Tanupriya0912/Job-portal/internal/service"
	"github.com/Tanupriya0912/Job-portal/internal/session"
	"github.com/Tanupriya0912/Job-portal/internal/workspace"
)

const (
	emptyApplications = "No Application found"
	defaultResumeName = "resume.pdf"
)

// ApplicationRow is one line of the applications table with the status
// changes its buttons offer.
type ApplicationRow struct {
	join.Row
	Actions []models.ApplicationStatus `json:"actions"`
}

// ResumeFile is either a presigned link to an archived copy or the file itself.
type ResumeFile struct {
	URL      string        `json:"url,omitempty"`
	Filename string        `json:"filename"`
	Blob     *gateway.Blob `json:"-"`
}

func (v *Views) RecruiterApplications(ctx context.Context, ws *workspace.Workspace) Result {
	if !session.IsRecruiter(v.currentUser(ctx, ws)) {
		return denied(session.RoleErrorMessage("view applications", models.UserRoleRecruiter))
	}
	rows, err := query.Get(ctx, ws.Query, query.KeyRecJobs, v.joined(ws, ws.Services.Applications.RecruiterApplications), query.Options{
		RefetchInterval: v.poll,
		RefetchOnFocus:  true,
		StaleTime:       v.poll,
	})
	if err != nil {
		return loadFailed(err, "Failed to fetch applications")
	}
	if len(rows) == 0 {
		return empty(emptyApplications)
	}
	return data(withActions(rows))
}

func (v *Views) ApplicantJobs(ctx context.Context, ws *workspace.Workspace) Result {
	if !session.IsCandidate(v.currentUser(ctx, ws)) {
		return denied(session.RoleErrorMessage("view applied jobs", models.UserRoleUser))
	}
	rows, err := query.Get(ctx, ws.Query, query.KeyApplicantJobs, v.joined(ws, ws.Services.Applications.ApplicantJobs), query.Options{
		RefetchOnFocus: true,
	})
	if err != nil {
		return loadFailed(err, "Failed to fetch applications")
	}
	if len(rows) == 0 {
		return empty(emptyApplications)
	}
	return data(rows)
}

// joined fetches applications and resolves their job fields; the cache
// holds the joined rows.
func (v *Views) joined(ws *workspace.Workspace, list func(context.Context) ([]models.Application, error)) func(context.Context) ([]join.Row, error) {
	return func(ctx context.Context) ([]join.Row, error) {
		apps, err := list(ctx)
		if err != nil {
			return nil, err
		}
		return join.EnrichApplications(ctx, apps, v.jobLookup(ws), v.limit), nil
	}
}

func withActions(rows []join.Row) []ApplicationRow {
	out := make([]ApplicationRow, len(rows))
	for i, r := range rows {
		out[i] = ApplicationRow{Row: r, Actions: r.Status.Transitions()}
	}
	return out
}

// SetApplicationStatus accepts or rejects an application. An empty
// recruiterID means the signed-in recruiter.
func (v *Views) SetApplicationStatus(ctx context.Context, ws *workspace.Workspace, id, recruiterID string, status models.ApplicationStatus) Result {
	user := v.currentUser(ctx, ws)
	if !session.IsRecruiter(user) {
		return rejected(http.StatusForbidden, "Oops...", session.RoleErrorMessage("update application status", models.UserRoleRecruiter))
	}
	if strings.TrimSpace(recruiterID) == "" {
		recruiterID = user.ID
	}
	if current, ok := cachedStatus(ws, id); ok && !current.CanBecome(status) {
		return rejected(http.StatusConflict, "Oops...", "Application is already "+string(current))
	}

	msg, err := ws.Services.Applications.UpdateStatus(ctx, id, recruiterID, status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			return rejected(http.StatusBadRequest, "Oops...", "Status must be accepted or rejected")
		}
		v.log.Warn().Err(err).Str("application_id", id).Msg("status update failed")
		return failure(err, "Oops...", "Failed to update status")
	}

	v.invalidate(ctx, ws, query.KeyRecJobs, query.KeyApplicantJobs)
	return success("Status Updated", orDefault(msg, "Status updated successfully"))
}

func cachedStatus(ws *workspace.Workspace, id string) (models.ApplicationStatus, bool) {
	cached, ok := ws.Query.Peek(query.KeyRecJobs)
	if !ok {
		return "", false
	}
	rows, ok := cached.([]join.Row)
	if !ok {
		return "", false
	}
	for _, r := range rows {
		if r.ID == id {
			return r.Status, r.Status != ""
		}
	}
	return "", false
}

// Resume fetches an applicant's resume. With an archive configured the
// file is stored there and a presigned link is returned instead.
func (v *Views) Resume(ctx context.Context, ws *workspace.Workspace, applicationID string) Result {
	if strings.TrimSpace(applicationID) == "" {
		return warning(http.StatusNotFound, "No Resume", "Applicant has not uploaded a resume yet")
	}
	blob, err := ws.Services.Applications.DownloadResume(ctx, applicationID)
	if err != nil {
		return failure(err, "Error", "Could not download resume")
	}
	name := orDefault(blob.Filename, defaultResumeName)

	if v.resumes != nil {
		url, err := v.resumes.PutResume(ctx, applicationID, name, blob.ContentType, blob.Data)
		if err == nil {
			return data(ResumeFile{URL: url, Filename: name})
		}
		v.log.Warn().Err(err).Str("application_id", applicationID).Msg("resume archive failed, streaming instead")
	}
	return data(ResumeFile{Filename: name, Blob: &blob})
}
