package views

import (
	"context"
	"errors"
	"net/http"

	"github.com/Tanupriya0912/Job-portal/internal/service"
	"github.com/Tanupriya0912/Job-portal/internal/workspace"
)

// Me reports the visitor's session, resolving it on first use.
func (v *Views) Me(ctx context.Context, ws *workspace.Workspace) Result {
	snap := ws.Session.Current()
	if snap.Loading {
		snap = ws.Session.Refresh(ctx)
	}
	return data(snap)
}

func (v *Views) Login(ctx context.Context, ws *workspace.Workspace, email, password string) Result {
	msg, err := ws.Services.Auth.Login(ctx, service.LoginInput{Email: email, Password: password})
	if err != nil {
		if errors.Is(err, service.ErrCredentialsRequired) {
			return warning(http.StatusBadRequest, "Oops...", "Email and password are required")
		}
		return failure(err, "Oops...", "Login failed")
	}

	ws.Query.Clear()
	snap := ws.Session.Refresh(ctx)
	res := success("Login Successful", orDefault(msg, "Logged in successfully"))
	res.Data = snap
	return res
}

// Logout always ends the local session and sends the visitor home, even
// when the backend call fails.
func (v *Views) Logout(ctx context.Context, ws *workspace.Workspace) Result {
	msg, err := ws.Services.Auth.Logout(ctx)

	ws.Session.Clear()
	ws.Query.Clear()
	ws.Gateway.ForgetCookies()

	var res Result
	if err != nil {
		v.log.Warn().Err(err).Str("workspace", ws.ID).Msg("logout call failed")
		res = failure(err, "Oops...", "Logout failed")
		res.status = 0
	} else {
		res = success("Logout...", orDefault(msg, "Logged out successfully"))
	}
	res.Redirect = "/"
	return res
}

// Focus handles the tab coming back to the foreground.
func (v *Views) Focus(ctx context.Context, ws *workspace.Workspace) Result {
	n := ws.Query.Focus(ctx)
	return data(map[string]int{"refetched": n})
}

func (v *Views) Register(ctx context.Context, ws *workspace.Workspace, input service.RegisterInput) Result {
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		return warning(http.StatusBadRequest, "Oops...", "Passwords do not match")
	}
	user, msg, err := ws.Services.Auth.Register(ctx, input)
	if err != nil {
		return failure(err, "Oops...", "Registration failed")
	}
	res := success("Registration Successful", orDefault(msg, "Account created, please login"))
	res.Data = user
	return res
}
