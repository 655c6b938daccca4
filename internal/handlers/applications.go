package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tanupriya0912/Job-portal/internal/models"
	"github.com/Tanupriya0912/Job-portal/internal/views"
)

type statusRequest struct {
	Status      models.ApplicationStatus `json:"status" binding:"required"`
	RecruiterID string                   `json:"recruiterId"`
}

func (h HandlerSet) Applications(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	render(c, h.views.RecruiterApplications(c.Request.Context(), ws))
}

func (h HandlerSet) UpdateApplication(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	render(c, h.views.SetApplicationStatus(c.Request.Context(), ws, c.Param("id"), req.RecruiterID, req.Status))
}

// Resume redirects to the archived copy when there is one and streams the
// file otherwise.
func (h HandlerSet) Resume(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	res := h.views.Resume(c.Request.Context(), ws, c.Param("id"))
	file, ok := res.Data.(views.ResumeFile)
	if !ok {
		render(c, res)
		return
	}
	if file.URL != "" {
		c.Redirect(http.StatusFound, file.URL)
		return
	}
	contentType := file.Blob.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, contentType, file.Blob.Data)
}

func (h HandlerSet) Applied(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	render(c, h.views.ApplicantJobs(c.Request.Context(), ws))
}
