package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Tanupriya0912/Job-portal/internal/config"
	"github.com/Tanupriya0912/Job-portal/internal/gateway"
	"github.com/Tanupriya0912/Job-portal/internal/workspace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(reg *workspace.Registry) *gin.Engine {
	r := gin.New()
	r.Use(
		RequestID(),
		Recovery(zerolog.Nop()),
		CORS([]string{"http://localhost:5173"}),
		Sessions(config.SessionConfig{CookieName: "portal_session", Secret: "test-secret", IdleTimeout: time.Hour}),
		Workspace(reg, zerolog.Nop()),
	)
	r.GET("/ws", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentWorkspace(c).ID)
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/rid", func(c *gin.Context) {
		c.String(http.StatusOK, gateway.RequestIDFrom(c.Request.Context()))
	})
	return r
}

func TestWorkspaceCookieIsStable(t *testing.T) {
	reg := workspace.NewRegistry(config.APIConfig{BaseURL: "http://backend.test"}, zerolog.Nop())
	r := newEngine(reg)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	first := rec.Body.String()
	cookies := rec.Result().Cookies()
	if first == "" || len(cookies) == 0 {
		t.Fatalf("id = %q cookies = %d; want a workspace and a cookie", first, len(cookies))
	}

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Body.String(); got != first {
		t.Errorf("second request workspace = %q, want %q", got, first)
	}
	if reg.Len() != 1 {
		t.Errorf("registry size = %d, want 1", reg.Len())
	}
}

func TestRequestIDEchoedAndForwarded(t *testing.T) {
	r := newEngine(workspace.NewRegistry(config.APIConfig{BaseURL: "http://backend.test"}, zerolog.Nop()))
	req := httptest.NewRequest(http.MethodGet, "/rid", nil)
	req.Header.Set(gateway.RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(gateway.RequestIDHeader); got != "abc" {
		t.Errorf("%s = %q, want abc", gateway.RequestIDHeader, got)
	}
	if got := rec.Body.String(); got != "abc" {
		t.Errorf("context request id = %q, want abc", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/rid", nil)
	req.Header.Set(gateway.RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(gateway.RequestIDHeader); len(got) > maxRequestIDLen {
		t.Errorf("oversized request id kept (%d bytes)", len(got))
	}
}

func TestRecoveryReturnsErrorNotice(t *testing.T) {
	r := newEngine(workspace.NewRegistry(config.APIConfig{BaseURL: "http://backend.test"}, zerolog.Nop()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var body struct {
		Notice struct {
			Kind string `json:"kind"`
		} `json:"notice"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Notice.Kind != "error" {
		t.Errorf("notice kind = %q, want error", body.Notice.Kind)
	}
}

func TestAccessLogCarriesWorkspace(t *testing.T) {
	var buf bytes.Buffer
	reg := workspace.NewRegistry(config.APIConfig{BaseURL: "http://backend.test"}, zerolog.Nop())
	r := gin.New()
	r.Use(
		RequestID(),
		Logger(zerolog.New(&buf)),
		Sessions(config.SessionConfig{CookieName: "portal_session", Secret: "test-secret", IdleTimeout: time.Hour}),
		Workspace(reg, zerolog.Nop()),
	)
	r.GET("/ws", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentWorkspace(c).ID)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["workspace"] != rec.Body.String() {
		t.Errorf("workspace = %v, want %q", line["workspace"], rec.Body.String())
	}
	if line["route"] != "/ws" || line["request_id"] == "" {
		t.Errorf("log line = %v", line)
	}
	if _, ok := line["role"]; ok {
		t.Error("anonymous visitor logged with a role")
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newEngine(workspace.NewRegistry(config.APIConfig{BaseURL: "http://backend.test"}, zerolog.Nop()))

	req := httptest.NewRequest(http.MethodOptions, "/ws", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Errorf("allowed preflight = %d %v", rec.Code, rec.Header())
	}

	req = httptest.NewRequest(http.MethodOptions, "/ws", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign preflight = %d, want 403", rec.Code)
	}
}
