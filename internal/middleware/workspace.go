package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Tanupriya0912/Job-portal/internal/config"
	"github.com/Tanupriya0912/Job-portal/internal/workspace"
)

const (
	workspaceSessionKey = "workspace_id"
	workspaceContextKey = "workspace"
)

// Sessions installs the signed cookie that carries the visitor's workspace id.
func Sessions(cfg config.SessionConfig) gin.HandlerFunc {
	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.IdleTimeout.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(cfg.CookieName, store)
}

// Workspace resolves the visitor's workspace, creating one for new or
// expired visitors. Must run after Sessions.
func Workspace(registry *workspace.Registry, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id, _ := sess.Get(workspaceSessionKey).(string)

		ws, ok := registry.Get(id)
		if !ok {
			created, err := registry.Create()
			if err != nil {
				log.Error().Err(err).Msg("create workspace failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
				return
			}
			ws = created
			sess.Set(workspaceSessionKey, ws.ID)
			if err := sess.Save(); err != nil {
				log.Error().Err(err).Msg("save workspace cookie failed")
			}
		}

		registry.Touch(ws)
		c.Set(workspaceContextKey, ws)
		c.Next()
	}
}

func CurrentWorkspace(c *gin.Context) *workspace.Workspace {
	v, ok := c.Get(workspaceContextKey)
	if !ok {
		return nil
	}
	ws, _ := v.(*workspace.Workspace)
	return ws
}
