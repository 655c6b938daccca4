package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Tanupriya0912/Job-portal/internal/models"
)

// SessionCookie is the name of the backend's HTTP-only auth cookie.
const SessionCookie = "jobPortalToken"

var ErrMalformedToken = errors.New("malformed session token")

// SessionClaims mirrors what the auth service signs: subject = user id,
// plus the role enum.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type TokenInfo struct {
	UserID    string
	Role      models.UserRole
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carried an expiry that has passed.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

// InspectToken reads the claims of the session cookie without verifying the
// signature. The gateway remains the only party that validates tokens; the
// client only uses the claims to skip calls it knows will be rejected.
func InspectToken(raw string) (TokenInfo, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TokenInfo{}, ErrMalformedToken
	}

	var claims SessionClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	info := TokenInfo{
		UserID: claims.Subject,
		Role:   models.NormalizeRole(claims.Role),
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
