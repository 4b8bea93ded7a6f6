// Package asana is a minimal client for the Asana task API: task
// creation and permalink retrieval, with rate-limit-aware retry.
package asana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const defaultBaseURL = "https://app.asana.com/api/1.0"

// Client talks to the Asana API with a bearer token
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (used by tests)
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.client = hc }
}

// NewClient creates an Asana client. The token comes from process
// configuration and never appears in the request path.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		token:   token,
		baseURL: defaultBaseURL,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TaskRequest is the task-creation payload
type TaskRequest struct {
	Name     string   `json:"name"`
	Notes    string   `json:"notes,omitempty"`
	Assignee string   `json:"assignee,omitempty"`
	DueOn    string   `json:"due_on,omitempty"`
	Projects []string `json:"projects"`
}

// TaskInfo is the subset of task fields retrieved after creation
type TaskInfo struct {
	GID          string `json:"gid"`
	PermalinkURL string `json:"permalink_url"`
	Assignee     struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"assignee"`
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type apiErrorBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// CreateTask creates a task and returns its GID. A 429 response
// surfaces as *RateLimitError; any other non-success status surfaces as
// *APIError.
func (c *Client) CreateTask(ctx context.Context, task *TaskRequest) (string, error) {
	body, err := json.Marshal(map[string]*TaskRequest{"data": task})
	if err != nil {
		return "", fmt.Errorf("failed to marshal task: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tasks", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.do(req)
	if err != nil {
		return "", err
	}

	var envelope dataEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	var info TaskInfo
	if err := json.Unmarshal(envelope.Data, &info); err != nil {
		return "", fmt.Errorf("failed to decode task: %w", err)
	}
	if info.GID == "" {
		return "", fmt.Errorf("no task id in response")
	}
	return info.GID, nil
}

// GetTaskPermalink fetches the permalink and assignee identity for a
// created task. A missing permalink is a distinguished error.
func (c *Client) GetTaskPermalink(ctx context.Context, taskGID string) (*TaskInfo, error) {
	u := fmt.Sprintf("%s/tasks/%s?opt_fields=%s", c.baseURL, url.PathEscape(taskGID),
		url.QueryEscape("permalink_url,assignee.name,assignee.email"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var envelope dataEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	var info TaskInfo
	if err := json.Unmarshal(envelope.Data, &info); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	if info.PermalinkURL == "" {
		return nil, ErrNoPermalink
	}
	return &info, nil
}

// do executes a request and maps non-success statuses onto the error
// taxonomy. The response body is fully read and closed here.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := 1.0
		if v := resp.Header.Get("Retry-After"); v != "" {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				retryAfter = parsed
			}
		}
		return nil, &RateLimitError{RetryAfter: retryAfter}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var parsed apiErrorBody
		if json.Unmarshal(body, &parsed) == nil && len(parsed.Errors) > 0 {
			apiErr.Message = parsed.Errors[0].Message
		}
		return nil, apiErr
	}

	return body, nil
}
