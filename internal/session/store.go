package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tanupriya0912/Job-portal/internal/gateway"
	"github.com/Tanupriya0912/Job-portal/internal/models"
	"github.com/Tanupriya0912/Job-portal/internal/security"
)

const (
	fetchFailedMessage = "Failed to fetch user"
	expiredMessage     = "session expired"
)

// Identity resolves the signed-in user (GET /auth/me).
type Identity interface {
	Me(ctx context.Context) (models.User, error)
}

// CookieSource exposes the cookies the gateway client currently holds.
type CookieSource interface {
	Cookie(name string) (*http.Cookie, bool)
}

type Error struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// Snapshot is a copy of the session state; mutating it does not affect the store.
type Snapshot struct {
	User    *models.User `json:"user"`
	Loading bool         `json:"loading"`
	Err     Error        `json:"error"`
}

// Store holds the current identity of one visitor. It is created per
// workspace and handed to views explicitly.
type Store struct {
	identity Identity
	cookies  CookieSource
	now      func() time.Time
	log      zerolog.Logger

	mu   sync.RWMutex
	snap Snapshot
}

type Option func(*Store)

func WithCookies(src CookieSource) Option {
	return func(s *Store) { s.cookies = src }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(identity Identity, log zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		identity: identity,
		now:      time.Now,
		log:      log,
		snap:     Snapshot{Loading: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh re-fetches the identity. Failures clear the user and record the
// error flag; they are never returned to the caller.
func (s *Store) Refresh(ctx context.Context) Snapshot {
	s.mu.Lock()
	s.snap.Loading = true
	s.mu.Unlock()

	if s.tokenExpired() {
		s.fail(expiredMessage)
		return s.Current()
	}

	user, err := s.identity.Me(ctx)
	if err != nil {
		msg := gateway.ErrorMessage(err, fetchFailedMessage)
		s.log.Debug().Err(err).Int("status", gateway.StatusOf(err)).Msg("session refresh failed")
		s.fail(msg)
		return s.Current()
	}

	user.Role = models.NormalizeRole(string(user.Role))

	s.mu.Lock()
	s.snap = Snapshot{User: &user}
	s.mu.Unlock()
	return s.Current()
}

func (s *Store) tokenExpired() bool {
	if s.cookies == nil {
		return false
	}
	cookie, ok := s.cookies.Cookie(security.SessionCookie)
	if !ok {
		return false
	}
	info, err := security.InspectToken(cookie.Value)
	if err != nil {
		return false
	}
	return info.Expired(s.now())
}

func (s *Store) fail(message string) {
	s.mu.Lock()
	s.snap = Snapshot{Err: Error{Status: true, Message: message}}
	s.mu.Unlock()
}

func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.snap
	if s.snap.User != nil {
		user := *s.snap.User
		out.User = &user
	}
	return out
}

// User returns the signed-in user, if any.
func (s *Store) User() (models.User, bool) {
	snap := s.Current()
	if snap.User == nil {
		return models.User{}, false
	}
	return *snap.User, true
}

// Clear discards the identity, as after logout.
func (s *Store) Clear() {
	s.mu.Lock()
	s.snap = Snapshot{}
	s.mu.Unlock()
}
