package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tanupriya0912/Job-portal/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
	AdminCode       string `json:"adminCode"`
}

type visibilityRequest struct {
	Visible bool `json:"visible"`
}

func (h HandlerSet) Me(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	render(c, h.views.Me(c.Request.Context(), ws))
}

func (h HandlerSet) Login(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	render(c, h.views.Login(c.Request.Context(), ws, req.Email, req.Password))
}

func (h HandlerSet) SignUp(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	render(c, h.views.Register(c.Request.Context(), ws, service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
		AdminCode:       req.AdminCode,
	}))
}

func (h HandlerSet) Logout(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	render(c, h.views.Logout(c.Request.Context(), ws))
}

// Visibility is reported by the browser when the tab is shown or hidden.
func (h HandlerSet) Visibility(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !req.Visible {
		c.Status(http.StatusNoContent)
		return
	}
	render(c, h.views.Focus(c.Request.Context(), ws))
}
