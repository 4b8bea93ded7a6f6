package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Atiwari330/asana-agent/internal/agent"
	"github.com/Atiwari330/asana-agent/internal/asana"
	"github.com/Atiwari330/asana-agent/internal/duedate"
	"github.com/Atiwari330/asana-agent/internal/registry"
	"github.com/Atiwari330/asana-agent/internal/testutil"
	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	regPath := filepath.Join(t.TempDir(), "registry.yaml")
	if err := os.WriteFile(regPath, []byte(testutil.SampleRegistryYAML), 0644); err != nil {
		t.Fatalf("Failed to write registry: %v", err)
	}
	store := registry.NewStore(regPath)

	asanaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"data":{"gid":"12345"}}`))
			return
		}
		w.Write([]byte(`{"data":{"gid":"12345","permalink_url":"https://app.asana.com/0/101/12345","assignee":{"name":"Jordan Smith"}}}`))
	}))
	t.Cleanup(asanaSrv.Close)

	client := asana.NewClient("t", asana.WithBaseURL(asanaSrv.URL))
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	orch := agent.New(store, client).
		WithDates(duedate.NewWithClock(func() time.Time { return now })).
		WithRetryPolicy(asana.RetryPolicy{MaxAttempts: 3, Sleep: func(time.Duration) {}})

	return NewServer(orch, store, nil)
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestCreateTaskEndpoint(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	body := `{"project":"rev ops","assignee":"me","title":"review forecast","due_on":"tomorrow"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var result agent.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !result.Success {
		t.Errorf("Expected success, got: %s", result.Error)
	}
	if result.Details.DueDate != "2026-03-03" {
		t.Errorf("Expected tomorrow's date, got %s", result.Details.DueDate)
	}
}

func TestCreateTaskEndpointValidationFailure(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	body := `{"project":"unknown","assignee":"me","title":"x"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", w.Code)
	}
}

func TestRegistryEndpointRedacts(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/registry", nil)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Revenue Operations") {
		t.Errorf("Expected project name in response: %s", body)
	}
	if strings.Contains(body, "jordan@example.com") {
		t.Errorf("Email leaked in registry summary: %s", body)
	}
	if strings.Contains(body, "1205551234567890") {
		t.Errorf("Project GID leaked in registry summary: %s", body)
	}
}
