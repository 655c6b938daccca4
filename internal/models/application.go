package models

import (
	"encoding/json"
	"strings"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s *ApplicationStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ApplicationStatus(strings.ToLower(strings.TrimSpace(raw)))
	return nil
}

// Transitions lists the statuses a recruiter may move an application to.
func (s ApplicationStatus) Transitions() []ApplicationStatus {
	switch s {
	case ApplicationPending:
		return []ApplicationStatus{ApplicationAccepted, ApplicationRejected}
	case ApplicationAccepted:
		return []ApplicationStatus{ApplicationRejected}
	case ApplicationRejected:
		return []ApplicationStatus{ApplicationAccepted}
	}
	return nil
}

func (s ApplicationStatus) CanBecome(next ApplicationStatus) bool {
	for _, allowed := range s.Transitions() {
		if allowed == next {
			return true
		}
	}
	return false
}

type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"jobId"`
	ApplicantID string            `json:"applicantId"`
	RecruiterID string            `json:"recruiterId"`
	Status      ApplicationStatus `json:"status"`
	ResumePath  string            `json:"resumePath,omitempty"`
	JobTitle    string            `json:"jobTitle,omitempty"`
	JobPosition string            `json:"jobPosition,omitempty"`
	JobCompany  string            `json:"jobCompany,omitempty"`
	CreatedAt   string            `json:"createdAt,omitempty"`
	UpdatedAt   string            `json:"updatedAt,omitempty"`
}
