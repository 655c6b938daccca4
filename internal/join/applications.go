package join

import (
	"context"
	"strings"

	"github.com/Tanupriya0912/Job-portal/internal/fetchpool"
	"github.com/Tanupriya0912/Job-portal/internal/models"
)

// JobSource records where a row's job position and company came from.
type JobSource string

const (
	SourcePayload   JobSource = "payload"
	SourceJobDetail JobSource = "job-detail"
	SourceMissing   JobSource = "missing"
)

// JobLookup resolves one job by id.
type JobLookup func(ctx context.Context, id string) (models.Job, error)

// Row is an application with its job fields resolved.
type Row struct {
	models.Application
	JobSource JobSource `json:"jobSource"`
}

// EnrichApplications fills missing job position and company from job
// details. Non-empty payload values always win; a failed lookup leaves the
// row as it came. Each distinct job is fetched once, at most limit at a time.
func EnrichApplications(ctx context.Context, apps []models.Application, lookup JobLookup, limit int) []Row {
	rows := make([]Row, len(apps))
	wanted := make(map[string][]int)
	var ids []string

	for i, app := range apps {
		rows[i] = Row{Application: app, JobSource: SourcePayload}
		if complete(app) {
			continue
		}
		rows[i].JobSource = SourceMissing
		id := jobIDOf(app)
		if id == "" {
			continue
		}
		if _, seen := wanted[id]; !seen {
			ids = append(ids, id)
		}
		wanted[id] = append(wanted[id], i)
	}

	if len(ids) == 0 || lookup == nil {
		return rows
	}

	results := fetchpool.Map(ctx, limit, ids, func(ctx context.Context, id string) (models.Job, error) {
		return lookup(ctx, id)
	})
	for n, res := range results {
		if res.Err != nil {
			continue
		}
		for _, i := range wanted[ids[n]] {
			fill(&rows[i], res.Value)
		}
	}
	return rows
}

func complete(app models.Application) bool {
	return strings.TrimSpace(app.JobPosition) != "" && strings.TrimSpace(app.JobCompany) != ""
}

func jobIDOf(app models.Application) string {
	if id := strings.TrimSpace(app.JobID); id != "" {
		return id
	}
	return strings.TrimSpace(app.ID)
}

func fill(row *Row, job models.Job) {
	position := job.Position
	if position == "" {
		position = job.Title
	}
	if strings.TrimSpace(row.JobPosition) == "" {
		row.JobPosition = position
	}
	if strings.TrimSpace(row.JobCompany) == "" {
		row.JobCompany = job.Company
	}
	if strings.TrimSpace(row.JobTitle) == "" {
		row.JobTitle = job.Title
	}
	if complete(row.Application) {
		row.JobSource = SourceJobDetail
	}
}
