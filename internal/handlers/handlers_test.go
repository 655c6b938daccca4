package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Tanupriya0912/Job-portal/internal/config"
	"github.com/Tanupriya0912/Job-portal/internal/views"
	"github.com/Tanupriya0912/Job-portal/internal/workspace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBackend struct {
	role string

	mu   sync.Mutex
	hits map[string]int
	// resume part sizes seen on apply, -1 when the part was missing
	applyParts []int64
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.Method+" "+r.URL.Path]++
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/api/v1/auth/me":
		if f.role == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status":false,"message":"Unauthorized"}`))
			return
		}
		w.Write([]byte(`{"status":true,"result":{"id":"u1","username":"ann","email":"a@x.io","role":"` + f.role + `"}}`))
	case r.URL.Path == "/api/v1/applications/apply":
		size := int64(-1)
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			if files := r.MultipartForm.File["resume"]; len(files) == 1 {
				size = files[0].Size
			}
		}
		f.mu.Lock()
		f.applyParts = append(f.applyParts, size)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status":true,"message":"Applied"}`))
	case r.URL.Path == "/api/v1/auth/logout":
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":false,"message":"logout broke"}`))
	default:
		w.Write([]byte(`{"status":true,"result":[]}`))
	}
}

func (f *fakeBackend) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func newPortal(t *testing.T, role string) (*http.Client, string, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{role: role, hits: make(map[string]int)}
	api := httptest.NewServer(backend)
	t.Cleanup(api.Close)

	cfg := &config.AppConfig{
		Environment: "test",
		API:         config.APIConfig{BaseURL: api.URL, Timeout: 5 * time.Second},
		Session:     config.SessionConfig{CookieName: "portal_session", Secret: "test-secret", IdleTimeout: time.Hour},
	}
	reg := workspace.NewRegistry(cfg.API, zerolog.Nop())
	v := views.New(views.Deps{Log: zerolog.Nop()})
	h := NewHandlerSet(zerolog.Nop(), cfg, v, reg, nil)

	engine := gin.New()
	h.Register(engine.Group("/api/portal"))
	portal := httptest.NewServer(engine)
	t.Cleanup(portal.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{Jar: jar}, portal.URL + "/api/portal", backend
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestHealth(t *testing.T) {
	client, base, _ := newPortal(t, "")
	resp, err := client.Get(base + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body := decode(t, resp)
	if body["cache"] != "disabled" || body["status"] != "ok" {
		t.Errorf("health = %v", body)
	}
}

func TestMyJobsDeniedForCandidate(t *testing.T) {
	client, base, backend := newPortal(t, "USER")
	resp, err := client.Get(base + "/dashboard/my-jobs")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
	body := decode(t, resp)
	denied, _ := body["denied"].(string)
	if !strings.HasPrefix(denied, "Only recruiters can access this page") {
		t.Errorf("denied = %v", body["denied"])
	}
	if n := backend.count("GET /api/v1/jobs/my-jobs"); n != 0 {
		t.Errorf("my-jobs hit %d times, want 0", n)
	}
}

func TestApplyWithoutFile(t *testing.T) {
	client, base, backend := newPortal(t, "USER")
	resp, err := client.Post(base+"/jobs/j1/apply", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	body := decode(t, resp)
	notice, _ := body["notice"].(map[string]any)
	if resp.StatusCode != http.StatusOK || notice["text"] != "Applied" {
		t.Errorf("status = %d body = %v", resp.StatusCode, body)
	}
	if len(backend.applyParts) != 1 || backend.applyParts[0] != 0 {
		t.Errorf("resume parts = %v, want one empty part", backend.applyParts)
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	client, base, backend := newPortal(t, "RECRUITER")
	resp, err := client.Get(base + "/dashboard/users")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
	body := decode(t, resp)
	want := "You do not have permission to manage users. Only admins can perform this action."
	if body["denied"] != want {
		t.Errorf("denied = %v, want %q", body["denied"], want)
	}
	if n := backend.count("GET /api/v1/users"); n != 0 {
		t.Errorf("users hit %d times, want 0", n)
	}
}

func TestLogoutAlwaysRedirects(t *testing.T) {
	client, base, _ := newPortal(t, "USER")
	if resp, err := client.Get(base + "/me"); err == nil {
		resp.Body.Close()
	}

	resp, err := client.Post(base+"/logout", "application/json", bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	body := decode(t, resp)
	if body["redirect"] != "/" {
		t.Errorf("redirect = %v, want /", body["redirect"])
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestVisibilityHidden(t *testing.T) {
	client, base, _ := newPortal(t, "")
	resp, err := client.Post(base+"/visibility", "application/json", strings.NewReader(`{"visible":false}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
}
