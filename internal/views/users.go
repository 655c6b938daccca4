package views

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Tanupriya0912/Job-portal/internal/gateway"
	"github.com/Tanupriya0912/Job-portal/internal/media/sniffer"
	"github.com/Tanupriya0912/Job-portal/internal/models"
	"github.com/Tanupriya0912/Job-portal/internal/query"
	"github.com/Tanupriya0912/Job-portal/internal/service"
	"github.com/Tanupriya0912/Job-portal/internal/session"
	"github.com/Tanupriya0912/Job-portal/internal/workspace"
)

const emptyUsers = "-- User List is Empty --"

func adminOnly(action string) string {
	return session.RoleErrorMessage(action, models.UserRoleAdmin)
}

func (v *Views) ManageUsers(ctx context.Context, ws *workspace.Workspace) Result {
	if !session.IsAdmin(v.currentUser(ctx, ws)) {
		return denied(adminOnly("manage users"))
	}
	users, err := query.Get(ctx, ws.Query, query.KeyUsers, ws.Services.Users.List, query.Options{})
	if err != nil {
		return Result{
			Error:  "Error loading users: " + gateway.ErrorMessage(err, "Failed to fetch users"),
			status: statusFor(err),
		}
	}
	if len(users) == 0 {
		return empty(emptyUsers)
	}
	return data(users)
}

func (v *Views) SetUserRole(ctx context.Context, ws *workspace.Workspace, id string, role models.UserRole) Result {
	if !session.IsAdmin(v.currentUser(ctx, ws)) {
		return rejected(http.StatusForbidden, "Sorry!", adminOnly("change roles"))
	}
	if _, err := ws.Services.Users.UpdateRole(ctx, id, models.NormalizeRole(string(role))); err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			return rejected(http.StatusBadRequest, "Sorry!", "Role must be user, recruiter or admin")
		}
		return failure(err, "Sorry!", "Failed to update role")
	}
	v.invalidate(ctx, ws, query.KeyUsers, query.KeyAdminStats)
	return success("Done!", "Role Updated Successfully")
}

func (v *Views) DeleteUser(ctx context.Context, ws *workspace.Workspace, id string) Result {
	if !session.IsAdmin(v.currentUser(ctx, ws)) {
		return rejected(http.StatusForbidden, "Sorry!", adminOnly("delete users"))
	}
	if _, err := ws.Services.Users.Delete(ctx, id); err != nil {
		return failure(err, "Sorry!", "Failed to delete user")
	}
	v.invalidate(ctx, ws, query.KeyUsers, query.KeyAdminStats)
	return success("Deleted!", "User has been deleted successfully")
}

// EditUserForm is the admin's edit dialog. Username is shown but not editable.
type EditUserForm struct {
	Email    *string
	Location *string
	Gender   *string
}

func (v *Views) EditUser(ctx context.Context, ws *workspace.Workspace, id string, form EditUserForm) Result {
	if !session.IsAdmin(v.currentUser(ctx, ws)) {
		return rejected(http.StatusForbidden, "Sorry!", adminOnly("edit users"))
	}
	if form.Email == nil || strings.TrimSpace(*form.Email) == "" {
		return warning(http.StatusBadRequest, "Edit User", "Email is required!")
	}
	patch := service.ProfilePatch{Email: form.Email, Location: form.Location, Gender: form.Gender}
	if _, _, err := ws.Services.Users.Update(ctx, id, patch); err != nil {
		return failure(err, "Sorry!", "Failed to update user profile")
	}
	v.invalidate(ctx, ws, query.KeyUsers)
	return success("Updated!", "User profile has been updated successfully")
}

// ProfileForm holds whatever the profile form submitted; absent fields stay nil.
type ProfileForm struct {
	Username *string
	Email    *string
	Location *string
	Gender   *string
	Resume   *Upload
}

// EditProfile updates the signed-in user's own profile, sending only the
// fields present in the form.
func (v *Views) EditProfile(ctx context.Context, ws *workspace.Workspace, form ProfileForm) Result {
	if v.currentUser(ctx, ws) == nil {
		return warning(http.StatusUnauthorized, "Please Login", "You need to login to edit your profile")
	}

	patch := service.ProfilePatch{
		Username: form.Username,
		Email:    form.Email,
		Location: form.Location,
		Gender:   form.Gender,
	}
	if form.Resume != nil {
		resume, err := form.Resume.resume()
		if err != nil {
			return rejected(http.StatusUnsupportedMediaType, "Oops...", sniffer.NotAllowedMessage)
		}
		patch.Resume = &resume
	}

	user, msg, err := ws.Services.Users.UpdateProfile(ctx, patch)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPatch) {
			return warning(http.StatusBadRequest, "Nothing to update", "No profile fields were submitted")
		}
		return failure(err, "Oops...", "Failed to update profile")
	}

	snap := ws.Session.Refresh(ctx)
	res := success("Profile Updated", orDefault(msg, "Profile updated successfully"))
	if snap.User != nil {
		res.Data = *snap.User
	} else {
		res.Data = user
	}
	return res
}

func (v *Views) AdminStats(ctx context.Context, ws *workspace.Workspace) Result {
	if !session.IsAdmin(v.currentUser(ctx, ws)) {
		return denied(adminOnly("view statistics"))
	}
	stats, err := query.Get(ctx, ws.Query, query.KeyAdminStats, ws.Services.Users.AdminStats, query.Options{})
	if err != nil {
		return loadFailed(err, "Failed to fetch statistics")
	}
	return data(stats)
}
