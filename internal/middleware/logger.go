package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Logger writes one access line per request, tagged with the visitor's
// workspace and role. Health probes log at debug.
func Logger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		case route == healthRoute:
			event = log.Debug()
		default:
			event = log.Info()
		}

		event = event.
			Str("method", c.Request.Method).
			Str("route", route).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", RequestIDFrom(c))
		event = withVisitor(event, c)
		event.Msg("portal request")
	}
}

const healthRoute = "/api/portal/healthz"

func withVisitor(event *zerolog.Event, c *gin.Context) *zerolog.Event {
	ws := CurrentWorkspace(c)
	if ws == nil {
		return event
	}
	event = event.Str("workspace", ws.ID)
	if user, ok := ws.Session.User(); ok {
		event = event.Str("user_id", user.ID).Str("role", string(user.Role))
	}
	return event
}
