package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Tanupriya0912/Job-portal/internal/gateway"
	"github.com/Tanupriya0912/Job-portal/internal/models"
)

var (
	ErrApplicationIDRequired = errors.New("application id required")
	ErrInvalidStatus         = errors.New("status must be accepted or rejected")
)

type ApplicationService struct {
	api Gateway
}

func NewApplicationService(api Gateway) *ApplicationService {
	return &ApplicationService{api: api}
}

// Resume is the file part sent with an application.
type Resume struct {
	Name        string
	ContentType string
	Data        []byte
}

// Apply posts the multipart application. The resume part is always present:
// callers that have no file pass the placeholder from PlaceholderResume.
func (s *ApplicationService) Apply(ctx context.Context, jobID string, resume Resume) (string, error) {
	if strings.TrimSpace(jobID) == "" {
		return "", ErrJobIDRequired
	}
	path := "/api/v1/applications/apply?jobId=" + url.QueryEscape(jobID)
	files := []gateway.File{{
		Field:       "resume",
		Name:        resume.Name,
		ContentType: resume.ContentType,
		Data:        resume.Data,
	}}
	env, err := s.api.Upload(ctx, http.MethodPost, path, nil, files, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// PlaceholderResume is the empty resume.pdf sent when no file was chosen.
func PlaceholderResume() Resume {
	return Resume{Name: "resume.pdf", ContentType: "application/pdf"}
}

func (s *ApplicationService) RecruiterApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if _, err := s.api.Get(ctx, "/api/v1/application/recruiter-applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *ApplicationService) ApplicantJobs(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if _, err := s.api.Get(ctx, "/api/v1/application/applicant-jobs", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

type statusUpdate struct {
	RecruiterID string                   `json:"recruiterId"`
	Status      models.ApplicationStatus `json:"status"`
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, id, recruiterID string, status models.ApplicationStatus) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrApplicationIDRequired
	}
	if status != models.ApplicationAccepted && status != models.ApplicationRejected {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	env, err := s.api.Patch(ctx, "/api/v1/application/"+url.PathEscape(id), statusUpdate{
		RecruiterID: recruiterID,
		Status:      status,
	}, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (s *ApplicationService) DownloadResume(ctx context.Context, id string) (gateway.Blob, error) {
	if strings.TrimSpace(id) == "" {
		return gateway.Blob{}, ErrApplicationIDRequired
	}
	return s.api.Download(ctx, "/api/v1/application/"+url.PathEscape(id)+"/download-resume")
}
