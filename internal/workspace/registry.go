package workspace

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/Tanupriya0912/Job-portal/internal/config"
	"github.com/Tanupriya0912/Job-portal/internal/gateway"
	"github.com/Tanupriya0912/Job-portal/internal/query"
	"github.com/Tanupriya0912/Job-portal/internal/service"
	"github.com/Tanupriya0912/Job-portal/internal/session"
)

// Workspace is everything one browser holds: its backend credentials, its
// identity and its query cache.
type Workspace struct {
	ID       string
	Gateway  *gateway.Client
	Session  *session.Store
	Query    *query.Client
	Services service.Services

	mu       sync.Mutex
	lastSeen time.Time
}

func (w *Workspace) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

type Registry struct {
	api  config.APIConfig
	opts []gateway.Option
	log  zerolog.Logger
	now  func() time.Time

	mu    sync.RWMutex
	items map[string]*Workspace
}

func NewRegistry(api config.APIConfig, log zerolog.Logger, opts ...gateway.Option) *Registry {
	return &Registry{
		api:   api,
		opts:  opts,
		log:   log,
		now:   time.Now,
		items: make(map[string]*Workspace),
	}
}

// Create builds a fresh workspace with a new id.
func (r *Registry) Create() (*Workspace, error) {
	id := ksuid.New().String()
	log := r.log.With().Str("workspace", id).Logger()

	client, err := gateway.New(r.api.BaseURL, r.api.Timeout, log, r.opts...)
	if err != nil {
		return nil, fmt.Errorf("workspace gateway: %w", err)
	}
	services := service.New(client)

	ws := &Workspace{
		ID:       id,
		Gateway:  client,
		Session:  session.NewStore(services.Auth, log, session.WithCookies(client)),
		Query:    query.NewClient(log),
		Services: services,
		lastSeen: r.now(),
	}

	r.mu.Lock()
	r.items[id] = ws
	r.mu.Unlock()

	r.log.Debug().Str("workspace", id).Msg("workspace created")
	return ws, nil
}

func (r *Registry) Get(id string) (*Workspace, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.RLock()
	ws, ok := r.items[id]
	r.mu.RUnlock()
	return ws, ok
}

// Touch records activity so Sweep keeps the workspace.
func (r *Registry) Touch(ws *Workspace) {
	ws.touch(r.now())
}

// Sweep drops workspaces idle for longer than idle and returns how many went.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, ws := range r.items {
		if ws.LastSeen().Before(cutoff) {
			delete(r.items, id)
			n++
		}
	}
	return n
}

// Each calls fn for a snapshot of the live workspaces.
func (r *Registry) Each(fn func(*Workspace)) {
	r.mu.RLock()
	list := make([]*Workspace, 0, len(r.items))
	for _, ws := range r.items {
		list = append(list, ws)
	}
	r.mu.RUnlock()

	for _, ws := range list {
		fn(ws)
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
