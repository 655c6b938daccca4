package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tanupriya0912/Job-portal/internal/models"
	"github.com/Tanupriya0912/Job-portal/internal/session"
)

// RequireRoles stops requests from visitors without one of the roles. It
// only guards the BFF surface; the backend checks again.
func RequireRoles(action string, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := CurrentWorkspace(c)
		if ws == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		snap := ws.Session.Current()
		if snap.Loading {
			snap = ws.Session.Refresh(c.Request.Context())
		}
		if !session.HasRole(snap.User, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"denied": session.RoleErrorMessage(action, roles[0]),
			})
			return
		}

		c.Next()
	}
}
