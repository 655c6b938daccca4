package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Tanupriya0912/Job-portal/internal/config"
	"github.com/Tanupriya0912/Job-portal/internal/media/sniffer"
	"github.com/Tanupriya0912/Job-portal/internal/middleware"
	"github.com/Tanupriya0912/Job-portal/internal/models"
	"github.com/Tanupriya0912/Job-portal/internal/views"
	"github.com/Tanupriya0912/Job-portal/internal/workspace"
)

const maxUploadBytes = 5 << 20

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	views    *views.Views
	registry *workspace.Registry
	cache    *redis.Client
}

// NewHandlerSet wires the portal surface. cache may be nil when Redis is
// not configured.
func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, v *views.Views, registry *workspace.Registry, cache *redis.Client) HandlerSet {
	return HandlerSet{
		log:      log,
		cfg:      cfg,
		views:    v,
		registry: registry,
		cache:    cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	portal := router.Group("")
	portal.Use(
		middleware.Sessions(h.cfg.Session),
		middleware.Workspace(h.registry, h.log),
	)
	portal.GET("/me", h.Me)
	portal.POST("/login", h.Login)
	portal.POST("/register", h.SignUp)
	portal.POST("/logout", h.Logout)
	portal.POST("/visibility", h.Visibility)

	portal.GET("/jobs", h.ListJobs)
	portal.GET("/jobs/:id", h.GetJob)
	portal.POST("/jobs/:id/apply", h.Apply)

	dashboard := portal.Group("/dashboard")
	dashboard.GET("/my-jobs", h.MyJobs)
	dashboard.DELETE("/jobs/:id", h.DeleteJob)
	dashboard.GET("/applications", h.Applications)
	dashboard.PATCH("/applications/:id", h.UpdateApplication)
	dashboard.GET("/applications/:id/resume", h.Resume)
	dashboard.GET("/applied", h.Applied)
	dashboard.PATCH("/profile", h.EditProfile)

	admin := dashboard.Group("")
	admin.Use(middleware.RequireRoles("manage users", models.UserRoleAdmin))
	admin.GET("/users", h.Users)
	admin.PATCH("/users/:id", h.EditUser)
	admin.PATCH("/users/:id/role", h.SetRole)
	admin.DELETE("/users/:id", h.DeleteUser)
	admin.GET("/stats", h.Stats)
}

func render(c *gin.Context, res views.Result) {
	c.JSON(res.HTTPStatus(), res)
}

func currentWorkspace(c *gin.Context) (*workspace.Workspace, bool) {
	ws := middleware.CurrentWorkspace(c)
	if ws == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "workspace missing"})
		return nil, false
	}
	return ws, true
}

// readUpload returns the optional file in field; nil when none was sent.
func readUpload(c *gin.Context, field string) (*views.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if fh.Size > maxUploadBytes {
		return nil, fmt.Errorf("%s larger than %d bytes", field, maxUploadBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	return &views.Upload{
		Name:        fh.Filename,
		ContentType: sniffer.MimeTypeFromHTTP(http.Header(fh.Header)),
		Data:        data,
	}, nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
