package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) ListJobs(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	render(c, h.views.Jobs(c.Request.Context(), ws, c.Query("search"), page))
}

func (h HandlerSet) GetJob(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	render(c, h.views.Job(c.Request.Context(), ws, c.Param("id")))
}

// Apply accepts an optional "resume" file part.
func (h HandlerSet) Apply(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	upload, err := readUpload(c, "resume")
	if err != nil {
		badRequest(c, err)
		return
	}
	render(c, h.views.Apply(c.Request.Context(), ws, c.Param("id"), upload))
}

func (h HandlerSet) MyJobs(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	render(c, h.views.ManageJobs(c.Request.Context(), ws))
}

func (h HandlerSet) DeleteJob(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	render(c, h.views.DeleteJob(c.Request.Context(), ws, c.Param("id")))
}
