package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Tanupriya0912/Job-portal/internal/models"
)

var ErrCredentialsRequired = errors.New("email and password required")

type AuthService struct {
	api Gateway
}

func NewAuthService(api Gateway) *AuthService {
	return &AuthService{api: api}
}

func (s *AuthService) Me(ctx context.Context) (models.User, error) {
	var user models.User
	if _, err := s.api.Get(ctx, "/api/v1/auth/me", &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login lets the backend set the session cookie on the gateway client's jar.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || input.Password == "" {
		return "", ErrCredentialsRequired
	}
	env, err := s.api.Post(ctx, "/api/v1/auth/login", input, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
	AdminCode       string `json:"adminCode,omitempty"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, string, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Role = strings.ToUpper(strings.TrimSpace(input.Role))
	if input.Role == "" {
		input.Role = "USER"
	}
	var user models.User
	env, err := s.api.Post(ctx, "/api/v1/auth/register", input, &user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, env.Message, nil
}

func (s *AuthService) Logout(ctx context.Context) (string, error) {
	env, err := s.api.Post(ctx, "/api/v1/auth/logout", nil, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
