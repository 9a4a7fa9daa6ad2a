package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/apexdrive/internal/api/handlers"
	"github.com/osa911/apexdrive/internal/api/middleware"
	"github.com/osa911/apexdrive/internal/catalog"
	"github.com/osa911/apexdrive/internal/contact"
	"github.com/osa911/apexdrive/internal/cooldown"
	"github.com/osa911/apexdrive/internal/logging"
	"github.com/osa911/apexdrive/internal/mailer"
	"github.com/osa911/apexdrive/internal/metrics"
	"github.com/osa911/apexdrive/internal/server/routes"
	"github.com/osa911/apexdrive/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, staticDir string, opts ...func(*Config)) *Server {
	t.Helper()

	store := session.NewMemoryStore(time.Hour)
	m := metrics.New()
	svc := contact.NewService(contact.Config{
		Recipient: "info@apexdrive.ru",
		Sender:    "noreply@apexdrive.ru",
	}, mailer.TransportFunc(func(context.Context, mailer.Message) error { return nil }),
		cooldown.NewTracker(time.Minute, store),
		contact.WithRecorder(m),
	)

	cat, err := catalog.Load()
	require.NoError(t, err)
	site, err := handlers.NewSiteConfigHandler(handlers.SiteConfig{
		USDExchangeRate: 95,
		Contact:         handlers.SiteContactConfig{SubmissionCooldownSeconds: 60},
	})
	require.NoError(t, err)

	h := &routes.Handlers{
		Contact:    handlers.NewContactHandler(svc),
		Catalog:    handlers.NewCatalogHandler(cat, 95),
		Health:     handlers.NewHealthHandler(store),
		SiteConfig: site,
		Metrics:    m.Handler(),
	}
	mw := &routes.Middleware{
		RateLimiter: middleware.NewRateLimiter(middleware.RateLimitConfig{RPS: 10, Burst: 20}),
	}

	cfg := Config{
		Port:      "0",
		StaticDir: staticDir,
		Global:    routes.GlobalOptions{SessionTTL: time.Hour},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewServer(cfg, h, mw, logging.NewNop())
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t, "")

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/config.js", http.StatusOK},
		{http.MethodGet, "/api/v1/cars", http.StatusOK},
		{http.MethodGet, "/mail.php", http.StatusMethodNotAllowed},
		{http.MethodOptions, "/mail.php", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/v1/contact/submit", http.StatusMethodNotAllowed},
		{http.MethodGet, "/index.html", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}
}

func TestContactAliasAndMetrics(t *testing.T) {
	srv := newTestServer(t, "")

	form := url.Values{
		"name":    {"Anna"},
		"email":   {"anna@example.com"},
		"phone":   {"+7 912 345 67 89"},
		"message": {"Range Rover for a week"},
		"lang":    {"en"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `apexdrive_contact_submissions_total{outcome="sent"} 1`)
}

func countLimited(srv *Server, n int) int {
	limited := 0
	for i := 0; i < n; i++ {
		// httptest peers come from 192.0.2.1
		req := httptest.NewRequest(http.MethodPost, "/mail.php", nil)
		req.Header.Set("X-Real-IP", fmt.Sprintf("203.0.113.%d", i))
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	return limited
}

func TestRateLimitIgnoresSpoofedForwarding(t *testing.T) {
	srv := newTestServer(t, "")
	assert.Greater(t, countLimited(srv, 40), 10)
}

func TestRateLimitHonoursTrustedProxy(t *testing.T) {
	srv := newTestServer(t, "", func(cfg *Config) {
		cfg.TrustedProxies = []string{"192.0.2.0/24"}
	})
	assert.Zero(t, countLimited(srv, 40))
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>APEX DRIVE</h1>"), 0o644))
	srv := newTestServer(t, dir)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	// http.FileServer redirects /index.html to /
	assert.Equal(t, http.StatusMovedPermanently, w.Code)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "APEX DRIVE")

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t, "")
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
