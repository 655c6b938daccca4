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
	ErrUserIDRequired = errors.New("user id required")
	ErrInvalidRole    = errors.New("role must be user, recruiter or admin")
	ErrEmptyPatch     = errors.New("nothing to update")
)

type UserService struct {
	api Gateway
}

func NewUserService(api Gateway) *UserService {
	return &UserService{api: api}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := s.api.Get(ctx, "/api/v1/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

type roleUpdate struct {
	Role models.UserRole `json:"role"`
}

func (s *UserService) UpdateRole(ctx context.Context, id string, role models.UserRole) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrUserIDRequired
	}
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	env, err := s.api.Patch(ctx, "/api/v1/users/"+url.PathEscape(id)+"/role", roleUpdate{Role: role}, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// ProfilePatch carries only the fields a form actually submitted. Nil
// pointers are left out of the request.
type ProfilePatch struct {
	Username *string
	Email    *string
	Location *string
	Gender   *string
	Resume   *Resume
}

func (p ProfilePatch) Fields() map[string]string {
	fields := make(map[string]string, 4)
	if p.Username != nil {
		fields["username"] = *p.Username
	}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	if p.Location != nil {
		fields["location"] = *p.Location
	}
	if p.Gender != nil {
		fields["gender"] = *p.Gender
	}
	return fields
}

func (p ProfilePatch) Empty() bool {
	return len(p.Fields()) == 0 && p.Resume == nil
}

// Update is the admin edit of another user's profile (JSON body).
func (s *UserService) Update(ctx context.Context, id string, patch ProfilePatch) (models.User, string, error) {
	if strings.TrimSpace(id) == "" {
		return models.User{}, "", ErrUserIDRequired
	}
	fields := patch.Fields()
	if len(fields) == 0 {
		return models.User{}, "", ErrEmptyPatch
	}
	var user models.User
	env, err := s.api.Patch(ctx, "/api/v1/users/"+url.PathEscape(id), fields, &user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, env.Message, nil
}

// UpdateProfile edits the signed-in user's own profile (multipart body).
func (s *UserService) UpdateProfile(ctx context.Context, patch ProfilePatch) (models.User, string, error) {
	if patch.Empty() {
		return models.User{}, "", ErrEmptyPatch
	}
	var files []gateway.File
	if patch.Resume != nil {
		files = append(files, gateway.File{
			Field:       "resume",
			Name:        patch.Resume.Name,
			ContentType: patch.Resume.ContentType,
			Data:        patch.Resume.Data,
		})
	}
	var user models.User
	env, err := s.api.Upload(ctx, http.MethodPatch, "/api/v1/users", patch.Fields(), files, &user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, env.Message, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrUserIDRequired
	}
	env, err := s.api.Delete(ctx, "/api/v1/users/"+url.PathEscape(id), nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (s *UserService) AdminStats(ctx context.Context) (models.AdminStats, error) {
	var stats models.AdminStats
	if _, err := s.api.Get(ctx, "/api/v1/admin/stats", &stats); err != nil {
		return models.AdminStats{}, err
	}
	return stats, nil
}
