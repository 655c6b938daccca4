package models

import (
	"encoding/json"
	"strings"
)

type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleRecruiter UserRole = "recruiter"
	UserRoleAdmin     UserRole = "admin"
)

// NormalizeRole lower-cases the backend's enum spelling ("RECRUITER").
func NormalizeRole(raw string) UserRole {
	return UserRole(strings.ToLower(strings.TrimSpace(raw)))
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = NormalizeRole(raw)
	return nil
}

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleUser, UserRoleRecruiter, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	Location  string   `json:"location,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	Resume    string   `json:"resume,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

type AdminStats struct {
	TotalUsers           int64 `json:"totalUsers"`
	TotalAdmins          int64 `json:"totalAdmins"`
	TotalRecruiters      int64 `json:"totalRecruiters"`
	TotalApplicants      int64 `json:"totalApplicants"`
	TotalJobs            int64 `json:"totalJobs"`
	PendingApplications  int64 `json:"pendingApplications"`
	AcceptedApplications int64 `json:"acceptedApplications"`
	RejectedApplications int64 `json:"rejectedApplications"`
}
