package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	httpHandlers "github.com/nyaysathi/core/internal/adapters/http"
	"github.com/nyaysathi/core/internal/adapters/cache"
	"github.com/nyaysathi/core/internal/infrastructure/config"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
	"github.com/nyaysathi/core/internal/testfixtures"
)

const testPassword = "s3cret"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWithLogger(t, logger.NewNop())
}

func newTestServerWithLogger(t *testing.T, log *logger.Logger) *Server {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		App:   config.AppConfig{Name: "nyaysathi", Version: "test"},
		Admin: config.AdminConfig{PasswordHash: string(hash)},
		JWT: config.JWTConfig{
			Secret:    "test-secret",
			ExpiresIn: time.Hour,
			Issuer:    "nyaysathi-test",
		},
		Metrics: config.MetricsConfig{Enabled: true},
		Translation: config.TranslationConfig{
			HTTPTimeout:    time.Second,
			CacheTTL:       time.Minute,
			SummaryChunk:   900,
			PublicBasePath: "/api/v1",
		},
	}

	srv, err := New(cfg, testfixtures.NewSQLiteDB(t), cache.NewNoopCache(), log)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func serve(s *Server, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/health/detailed", "/ready"} {
		rec := serve(srv, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, body %s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestRequestLogCarriesRequestID(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	srv := newTestServerWithLogger(t, logger.NewFromZap(zap.New(core)))

	rec := serve(srv, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	entries := observed.FilterMessage("HTTP request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 request entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] == "" || fields["request_id"] != rec.Header().Get("X-Request-Id") {
		t.Fatalf("request_id = %v, header %q", fields["request_id"], rec.Header().Get("X-Request-Id"))
	}
	if fields["path"] != "/health" {
		t.Fatalf("path = %v", fields["path"])
	}
	if fields["status_code"] != int64(http.StatusOK) {
		t.Fatalf("status_code = %v", fields["status_code"])
	}
}

func TestUnsupportedMethodAndRoute(t *testing.T) {
	srv := newTestServer(t)

	rec := serve(srv, http.MethodPatch, "/api/v1/contacts", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	var body httpHandlers.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Error == "" {
		t.Fatalf("expected error body, got %q", rec.Body.String())
	}

	rec = serve(srv, http.MethodGet, "/api/v1/nothing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAdminTokenAuthorizesDeleteAll(t *testing.T) {
	srv := newTestServer(t)

	serve(srv, http.MethodPost, "/api/v1/tasks", `{"title":"T"}`, nil)

	rec := serve(srv, http.MethodPost, "/api/v1/admin/login", `{"password":"wrong"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", rec.Code)
	}

	rec = serve(srv, http.MethodPost, "/api/v1/admin/login", `{"password":"`+testPassword+`"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var token ports.TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &token); err != nil {
		t.Fatal(err)
	}

	rec = serve(srv, http.MethodDelete, "/api/v1/tasks", "", http.Header{"Authorization": {"Bearer garbage"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token status = %d, want 401", rec.Code)
	}

	rec = serve(srv, http.MethodDelete, "/api/v1/tasks", "", http.Header{"Authorization": {"Bearer " + token.AccessToken}})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete-all status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp ports.DeleteAllResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Deleted != 1 {
		t.Fatalf("deleted = %d, want 1", resp.Deleted)
	}
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	srv := newTestServer(t)

	serve(srv, http.MethodGet, "/health", "", nil)
	rec := serve(srv, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `http_requests_total{method="GET",path="/health",status="200"} 1`) {
		t.Fatalf("request counter missing from:\n%s", rec.Body.String())
	}
}

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{"*"}},
		{"http://a.test, http://b.test", []string{"http://a.test", "http://b.test"}},
		{" , ", []string{"*"}},
	}
	for _, tt := range tests {
		got := splitOrigins(tt.raw)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Fatalf("splitOrigins(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
