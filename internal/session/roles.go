package session

import (
	"fmt"

	"github.com/Tanupriya0912/Job-portal/internal/models"
)

// Role gates only decide what to render. The backend re-checks every call.

func HasRole(user *models.User, roles ...models.UserRole) bool {
	if user == nil || user.Role == "" {
		return false
	}
	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	return false
}

func IsRecruiter(user *models.User) bool { return HasRole(user, models.UserRoleRecruiter) }

func IsAdmin(user *models.User) bool { return HasRole(user, models.UserRoleAdmin) }

func IsCandidate(user *models.User) bool { return HasRole(user, models.UserRoleUser) }

func RoleErrorMessage(action string, role models.UserRole) string {
	return fmt.Sprintf("You do not have permission to %s. Only %ss can perform this action.", action, role)
}
