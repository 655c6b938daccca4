package workspace

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tanupriya0912/Job-portal/internal/config"
	"github.com/Tanupriya0912/Job-portal/internal/query"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(config.APIConfig{BaseURL: "http://backend.test", Timeout: time.Second}, zerolog.Nop())
}

func TestCreateAndGet(t *testing.T) {
	r := newRegistry(t)
	ws, err := r.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ws.ID == "" || ws.Gateway == nil || ws.Session == nil || ws.Query == nil || ws.Services.Jobs == nil {
		t.Fatalf("workspace not fully wired: %+v", ws)
	}
	got, ok := r.Get(ws.ID)
	if !ok || got != ws {
		t.Errorf("Get(%q) = %v, %v", ws.ID, got, ok)
	}
	if _, ok := r.Get(""); ok {
		t.Error("empty id resolved")
	}
}

func TestWorkspacesAreIsolated(t *testing.T) {
	r := newRegistry(t)
	a, _ := r.Create()
	b, _ := r.Create()

	a.Query.SetData(query.KeyJobs, func(any) any { return "a" })
	if _, ok := b.Query.Peek(query.KeyJobs); ok {
		t.Error("query cache shared between workspaces")
	}
	if a.Gateway == b.Gateway {
		t.Error("gateway client shared between workspaces")
	}
}

func TestSweepDropsIdle(t *testing.T) {
	r := newRegistry(t)
	now := time.Now()
	r.now = func() time.Time { return now }

	idle, _ := r.Create()
	active, _ := r.Create()

	now = now.Add(time.Hour)
	r.Touch(active)

	if n := r.Sweep(30 * time.Minute); n != 1 {
		t.Errorf("Sweep = %d, want 1", n)
	}
	if _, ok := r.Get(idle.ID); ok {
		t.Error("idle workspace survived")
	}
	if _, ok := r.Get(active.ID); !ok {
		t.Error("active workspace swept")
	}

	seen := 0
	r.Each(func(*Workspace) { seen++ })
	if seen != 1 || r.Len() != 1 {
		t.Errorf("Each saw %d, Len = %d; want 1, 1", seen, r.Len())
	}
}
