package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vdavid/chatlens/internal/config"
	"github.com/vdavid/chatlens/internal/testutil"
)

const export = `Alice lundi 3 mars 2025 10:15
Salut Bob, zut
Bob lundi 3 mars 2025 10:16
Salut Alice
`

func getTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	return &config.Config{
		Environment: "test",
		Port:        "8080",
		Store:       config.StoreSQLite,
		SQLitePath:  filepath.Join(dir, "chatlens.db"),
		UploadDir:   filepath.Join(dir, "uploads"),
		MaxUploadMB: 1,
		Language:    "en",
		APIToken:    "test-token",
	}
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			t.Fatalf("failed to close response body: %v", err)
		}
	}(res.Body)

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(body)
}

func TestHandleHealth(t *testing.T) {
	w := httptest.NewRecorder()
	handleHealth(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	res := w.Result()
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", res.StatusCode)
	}
	if contentType := res.Header.Get("Content-Type"); contentType != "text/plain" {
		t.Errorf("expected Content-Type 'text/plain', got '%s'", contentType)
	}
	if body := readBody(t, res); body != "chatlens is running" {
		t.Errorf("expected body 'chatlens is running', got '%s'", body)
	}
}

func TestNewServer(t *testing.T) {
	cfg := getTestConfig(t)
	store := testutil.NewTestSQLiteStore(t)

	server, err := NewServer(cfg, store)
	if err != nil {
		t.Fatalf("NewServer() returned error: %v", err)
	}

	do := func(method, target, token string, body []byte) *http.Response {
		req := httptest.NewRequest(method, target, bytes.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		return w.Result()
	}

	if res := do(http.MethodGet, "/api/summary", "", nil); res.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 before any upload, got %d", res.StatusCode)
	}

	if res := do(http.MethodPost, "/api/exports?filename=chat.txt", "", []byte(export)); res.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", res.StatusCode)
	}

	if res := do(http.MethodPost, "/api/exports?filename=chat.txt", "test-token", []byte(export)); res.StatusCode != http.StatusCreated {
		t.Errorf("expected 201 with token, got %d", res.StatusCode)
	}

	res := do(http.MethodGet, "/", "", nil)
	body := readBody(t, res)
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", res.StatusCode)
	}
	if !strings.Contains(body, "<li>Alice: 1 messages</li>") {
		t.Errorf("expected participants list in dashboard, got:\n%s", body)
	}
	if strings.Contains(body, `id="profanity-list"`) {
		t.Error("expected no profanity section without a profanity list")
	}

	if res := do(http.MethodDelete, "/api/exports", "test-token", nil); res.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", res.StatusCode)
	}

	res = do(http.MethodGet, "/metrics", "", nil)
	if metrics := readBody(t, res); !strings.Contains(metrics, `chatlens_uploads_total{outcome="success"} 1`) {
		t.Errorf("expected upload counter in metrics, got:\n%s", metrics)
	}
}

func TestNewServerWithProfanityList(t *testing.T) {
	cfg := getTestConfig(t)
	cfg.ProfanityListPath = filepath.Join(t.TempDir(), "profanity.csv")
	if err := os.WriteFile(cfg.ProfanityListPath, []byte("zut,mince\n"), 0o600); err != nil {
		t.Fatalf("failed to write profanity list: %v", err)
	}
	cfg.EncryptionKeyBase64 = testutil.TestEncryptionKey

	server, err := NewServer(cfg, testutil.NewTestSQLiteStore(t))
	if err != nil {
		t.Fatalf("NewServer() returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/exports", bytes.NewReader([]byte(export)))
	req.Header.Set("Authorization", "Bearer test-token")
	server.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))
	body := readBody(t, w.Result())
	if !strings.Contains(body, "<li>Alice: 1</li>") {
		t.Errorf("expected profanity list in dashboard, got:\n%s", body)
	}

	entries, err := os.ReadDir(cfg.UploadDir)
	if err != nil {
		t.Fatalf("failed to read upload dir: %v", err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".sealed") {
		t.Errorf("expected one sealed archive, got %v", entries)
	}
}

func TestNewServerRejectsMissingProfanityList(t *testing.T) {
	cfg := getTestConfig(t)
	cfg.ProfanityListPath = filepath.Join(t.TempDir(), "missing.csv")

	if _, err := NewServer(cfg, testutil.NewTestSQLiteStore(t)); err == nil {
		t.Error("expected error for missing profanity list")
	}
}

func TestMainWithConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHATLENS_ENV", "production")
	t.Setenv("CHATLENS_STORE", "sqlite")
	t.Setenv("CHATLENS_SQLITE_PATH", filepath.Join(dir, "chatlens.db"))
	t.Setenv("CHATLENS_UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("PORT", "9999")

	cfg, err := config.NewConfig()
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("expected port '9999', got '%s'", cfg.Port)
	}

	store := testutil.NewTestSQLiteStore(t)
	server, err := NewServer(cfg, store)
	if err != nil || server == nil {
		t.Fatalf("NewServer() failed with valid config: %v", err)
	}
}
