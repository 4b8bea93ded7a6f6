package asana

import (
	"errors"
	"fmt"
)

// ErrMaxRetries is returned when CreateWithRetry exhausts its attempt
// budget against a rate-limited API
var ErrMaxRetries = errors.New("max retries exceeded creating task")

// ErrNoPermalink is returned when a created task comes back without a
// permalink URL
var ErrNoPermalink = errors.New("task created but no permalink returned")

// RateLimitError is the distinguished 429 condition carrying the
// server-specified backoff
type RateLimitError struct {
	RetryAfter float64 // seconds
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %.0fs", e.RetryAfter)
}

// APIError is any non-success, non-429 response from the Asana API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("asana API error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("asana API error (%d)", e.StatusCode)
}

// Hint maps permanent API faults to a short human-readable explanation
func (e *APIError) Hint() string {
	switch e.StatusCode {
	case 401, 403:
		return "check that ASANA_ACCESS_TOKEN is set and valid"
	case 404:
		return "the project or assignee does not exist in Asana"
	case 400:
		return "the task request was malformed"
	default:
		return ""
	}
}
