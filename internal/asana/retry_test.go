package asana

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// fakeSleeper records sleep durations instead of sleeping
type fakeSleeper struct {
	slept []time.Duration
}

func (f *fakeSleeper) Sleep(d time.Duration) {
	f.slept = append(f.slept, d)
}

func TestCreateWithRetryRecoversFromRateLimit(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.Header().Set("Retry-After", "2")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(`{"data":{"gid":"12345"}}`))
			return
		}
		w.Write([]byte(`{"data":{"gid":"12345","permalink_url":"https://app.asana.com/0/101/12345","assignee":{"name":"Jordan Smith"}}}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient("t", WithBaseURL(srv.URL))
	sleeper := &fakeSleeper{}

	result, err := client.CreateWithRetry(context.Background(), &TaskRequest{Name: "x", Projects: []string{"101"}},
		RetryPolicy{MaxAttempts: 3, Sleep: sleeper.Sleep})
	if err != nil {
		t.Fatalf("CreateWithRetry failed: %v", err)
	}

	if result.TaskGID != "12345" {
		t.Errorf("Expected gid 12345, got %s", result.TaskGID)
	}
	if result.AssigneeName != "Jordan Smith" {
		t.Errorf("Expected assignee name, got %q", result.AssigneeName)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("Expected 2 create attempts, got %d", calls)
	}
	if len(sleeper.slept) != 1 {
		t.Fatalf("Expected 1 sleep, got %d", len(sleeper.slept))
	}
	// Retry-After plus the half-second pad
	if want := 2*time.Second + 500*time.Millisecond; sleeper.slept[0] < want {
		t.Errorf("Slept %v, want at least %v", sleeper.slept[0], want)
	}
}

func TestCreateWithRetryExhaustsAttempts(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	client := NewClient("t", WithBaseURL(srv.URL))
	sleeper := &fakeSleeper{}

	_, err := client.CreateWithRetry(context.Background(), &TaskRequest{Name: "x", Projects: []string{"101"}},
		RetryPolicy{MaxAttempts: 3, Sleep: sleeper.Sleep})

	if !errors.Is(err, ErrMaxRetries) {
		t.Fatalf("Expected ErrMaxRetries, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls)
	}
	// No sleep after the final attempt
	if len(sleeper.slept) != 2 {
		t.Errorf("Expected 2 sleeps, got %d", len(sleeper.slept))
	}
}

func TestCreateWithRetryDoesNotRetryPermanentFaults(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client := NewClient("t", WithBaseURL(srv.URL))
	sleeper := &fakeSleeper{}

	_, err := client.CreateWithRetry(context.Background(), &TaskRequest{Name: "x", Projects: []string{"101"}},
		RetryPolicy{MaxAttempts: 3, Sleep: sleeper.Sleep})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("Permanent fault retried: %d attempts", calls)
	}
	if len(sleeper.slept) != 0 {
		t.Errorf("Slept on a permanent fault")
	}
}

func TestCreateWithRetryPermalinkFailureSurfaces(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"data":{"gid":"12345"}}`))
			return
		}
		// Permalink fetch comes back without a permalink
		w.Write([]byte(`{"data":{"gid":"12345"}}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient("t", WithBaseURL(srv.URL))

	_, err := client.CreateWithRetry(context.Background(), &TaskRequest{Name: "x", Projects: []string{"101"}},
		RetryPolicy{MaxAttempts: 3, Sleep: func(time.Duration) {}})

	if !errors.Is(err, ErrNoPermalink) {
		t.Fatalf("Expected ErrNoPermalink in chain, got %v", err)
	}
}
