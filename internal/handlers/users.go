package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Tanupriya0912/Job-portal/internal/models"
	"github.com/Tanupriya0912/Job-portal/internal/views"
)

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

type editUserRequest struct {
	Email    *string `json:"email"`
	Location *string `json:"location"`
	Gender   *string `json:"gender"`
}

func (h HandlerSet) Users(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	render(c, h.views.ManageUsers(c.Request.Context(), ws))
}

func (h HandlerSet) EditUser(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	var req editUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	render(c, h.views.EditUser(c.Request.Context(), ws, c.Param("id"), views.EditUserForm{
		Email:    req.Email,
		Location: req.Location,
		Gender:   req.Gender,
	}))
}

func (h HandlerSet) SetRole(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	render(c, h.views.SetUserRole(c.Request.Context(), ws, c.Param("id"), models.UserRole(req.Role)))
}

func (h HandlerSet) DeleteUser(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	render(c, h.views.DeleteUser(c.Request.Context(), ws, c.Param("id")))
}

// EditProfile reads a multipart form; fields left out of the form are left
// out of the update.
func (h HandlerSet) EditProfile(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	upload, err := readUpload(c, "resume")
	if err != nil {
		badRequest(c, err)
		return
	}
	render(c, h.views.EditProfile(c.Request.Context(), ws, views.ProfileForm{
		Username: postForm(c, "username"),
		Email:    postForm(c, "email"),
		Location: postForm(c, "location"),
		Gender:   postForm(c, "gender"),
		Resume:   upload,
	}))
}

func (h HandlerSet) Stats(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	render(c, h.views.AdminStats(c.Request.Context(), ws))
}

func postForm(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}
