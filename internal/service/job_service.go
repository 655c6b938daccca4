package service

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/Tanupriya0912/Job-portal/internal/models"
)

var ErrJobIDRequired = errors.New("job id required")

type JobService struct {
	api Gateway
}

func NewJobService(api Gateway) *JobService {
	return &JobService{api: api}
}

type ListJobsInput struct {
	Search string
	Page   int
	Size   int
}

func (s *JobService) List(ctx context.Context, input ListJobsInput) (models.JobPage, error) {
	query := url.Values{}
	if search := strings.TrimSpace(input.Search); search != "" {
		query.Set("search", search)
	}
	if input.Page > 0 {
		query.Set("page", strconv.Itoa(input.Page))
	}
	if input.Size > 0 {
		query.Set("size", strconv.Itoa(input.Size))
	}

	path := "/api/v1/jobs"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page models.JobPage
	if _, err := s.api.Get(ctx, path, &page); err != nil {
		return models.JobPage{}, err
	}
	return page, nil
}

// Mine lists the postings created by the signed-in recruiter.
func (s *JobService) Mine(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if _, err := s.api.Get(ctx, "/api/v1/jobs/my-jobs", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id string) (models.Job, error) {
	if strings.TrimSpace(id) == "" {
		return models.Job{}, ErrJobIDRequired
	}
	var job models.Job
	if _, err := s.api.Get(ctx, "/api/v1/jobs/"+url.PathEscape(id), &job); err != nil {
		return models.Job{}, err
	}
	return job, nil
}

type JobInput struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Salary      string `json:"salary,omitempty"`
	Location    string `json:"location,omitempty"`
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	JobType     string `json:"jobType,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (s *JobService) Create(ctx context.Context, input JobInput) (models.Job, string, error) {
	var job models.Job
	env, err := s.api.Post(ctx, "/api/v1/jobs", input, &job)
	if err != nil {
		return models.Job{}, "", err
	}
	return job, env.Message, nil
}

func (s *JobService) Update(ctx context.Context, id string, input JobInput) (models.Job, string, error) {
	if strings.TrimSpace(id) == "" {
		return models.Job{}, "", ErrJobIDRequired
	}
	var job models.Job
	env, err := s.api.Patch(ctx, "/api/v1/jobs/"+url.PathEscape(id), input, &job)
	if err != nil {
		return models.Job{}, "", err
	}
	return job, env.Message, nil
}

func (s *JobService) Delete(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrJobIDRequired
	}
	env, err := s.api.Delete(ctx, "/api/v1/jobs/"+url.PathEscape(id), nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
