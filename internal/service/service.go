package service

import (
	"context"

	"github.com/Tanupriya0912/Job-portal/internal/gateway"
)

// Gateway is the subset of *gateway.Client the resource services need.
type Gateway interface {
	Get(ctx context.Context, path string, out any) (gateway.Envelope, error)
	Post(ctx context.Context, path string, body any, out any) (gateway.Envelope, error)
	Patch(ctx context.Context, path string, body any, out any) (gateway.Envelope, error)
	Put(ctx context.Context, path string, body any, out any) (gateway.Envelope, error)
	Delete(ctx context.Context, path string, out any) (gateway.Envelope, error)
	Upload(ctx context.Context, method, path string, fields map[string]string, files []gateway.File, out any) (gateway.Envelope, error)
	Download(ctx context.Context, path string) (gateway.Blob, error)
}

var _ Gateway = (*gateway.Client)(nil)

// Services bundles one client per backend service.
type Services struct {
	Auth         *AuthService
	Jobs         *JobService
	Applications *ApplicationService
	Users        *UserService
}

func New(api Gateway) Services {
	return Services{
		Auth:         NewAuthService(api),
		Jobs:         NewJobService(api),
		Applications: NewApplicationService(api),
		Users:        NewUserService(api),
	}
}
