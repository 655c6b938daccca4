package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Tanupriya0912/Job-portal/internal/gateway"
	"github.com/Tanupriya0912/Job-portal/internal/models"
	"github.com/Tanupriya0912/Job-portal/internal/security"
)

type fakeIdentity struct {
	user  models.User
	err   error
	calls int
}

func (f *fakeIdentity) Me(context.Context) (models.User, error) {
	f.calls++
	return f.user, f.err
}

type fakeCookies map[string]string

func (f fakeCookies) Cookie(name string) (*http.Cookie, bool) {
	v, ok := f[name]
	if !ok {
		return nil, false
	}
	return &http.Cookie{Name: name, Value: v}, true
}

func TestNewStoreStartsLoading(t *testing.T) {
	s := NewStore(&fakeIdentity{}, zerolog.Nop())
	if !s.Current().Loading {
		t.Error("new store should report loading until the first refresh")
	}
}

func TestRefreshNormalizesRole(t *testing.T) {
	id := &fakeIdentity{user: models.User{ID: "u1", Role: "RECRUITER"}}
	s := NewStore(id, zerolog.Nop())

	snap := s.Refresh(context.Background())
	if snap.Loading || snap.Err.Status {
		t.Fatalf("snap = %+v, want loaded without error", snap)
	}
	if snap.User == nil || snap.User.Role != models.UserRoleRecruiter {
		t.Fatalf("User = %+v, want recruiter", snap.User)
	}
	if !IsRecruiter(snap.User) {
		t.Error("IsRecruiter = false")
	}
}

func TestRefreshFailureClearsUser(t *testing.T) {
	id := &fakeIdentity{user: models.User{ID: "u1", Role: "user"}}
	s := NewStore(id, zerolog.Nop())
	s.Refresh(context.Background())

	id.err = &gateway.APIError{Status: http.StatusUnauthorized, Message: "Unauthorized"}
	snap := s.Refresh(context.Background())
	if snap.User != nil {
		t.Errorf("User = %+v, want nil", snap.User)
	}
	if !snap.Err.Status || snap.Err.Message != "Unauthorized" {
		t.Errorf("Err = %+v, want Unauthorized flag", snap.Err)
	}

	id.err = &gateway.APIError{Status: http.StatusInternalServerError}
	if got := s.Refresh(context.Background()).Err.Message; got != "Failed to fetch user" {
		t.Errorf("Err.Message = %q, want fallback", got)
	}

	id.err = errors.New("dial tcp: connection refused")
	if got := s.Refresh(context.Background()).Err.Message; got != "dial tcp: connection refused" {
		t.Errorf("Err.Message = %q, want transport message", got)
	}
}

func TestRefreshSkipsCallForExpiredToken(t *testing.T) {
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	id := &fakeIdentity{user: models.User{ID: "u1"}}
	s := NewStore(id, zerolog.Nop(),
		WithCookies(fakeCookies{security.SessionCookie: token}),
		WithClock(func() time.Time { return now }),
	)

	snap := s.Refresh(context.Background())
	if id.calls != 0 {
		t.Errorf("Me called %d times, want 0", id.calls)
	}
	if snap.User != nil || snap.Err.Message != "session expired" {
		t.Errorf("snap = %+v, want expired", snap)
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	s := NewStore(&fakeIdentity{user: models.User{ID: "u1", Role: "admin"}}, zerolog.Nop())
	s.Refresh(context.Background())

	snap := s.Current()
	snap.User.Role = models.UserRoleUser
	if user, _ := s.User(); user.Role != models.UserRoleAdmin {
		t.Errorf("store mutated through snapshot: %q", user.Role)
	}

	s.Clear()
	if _, ok := s.User(); ok {
		t.Error("User present after Clear")
	}
}

func TestRoleGates(t *testing.T) {
	admin := &models.User{Role: models.UserRoleAdmin}
	if !HasRole(admin, models.UserRoleRecruiter, models.UserRoleAdmin) {
		t.Error("HasRole with list should match admin")
	}
	if HasRole(nil, models.UserRoleAdmin) {
		t.Error("nil user has no role")
	}
	if IsCandidate(admin) || IsRecruiter(admin) || !IsAdmin(admin) {
		t.Error("admin gate mismatch")
	}
	want := "You do not have permission to manage users. Only admins can perform this action."
	if got := RoleErrorMessage("manage users", models.UserRoleAdmin); got != want {
		t.Errorf("RoleErrorMessage = %q, want %q", got, want)
	}
}
