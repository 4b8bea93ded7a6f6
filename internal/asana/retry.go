package asana

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultMaxAttempts bounds the create-with-retry loop
const DefaultMaxAttempts = 3

// retryPad is added to the server-specified Retry-After before sleeping
const retryPad = 500 * time.Millisecond

// Sleeper suspends the calling flow between attempts. Injected so retry
// logic can be tested without real timers.
type Sleeper func(time.Duration)

// RetryPolicy bounds the retry loop and owns the inter-attempt sleep
type RetryPolicy struct {
	MaxAttempts int
	Sleep       Sleeper
}

// DefaultRetryPolicy sleeps for real and allows DefaultMaxAttempts
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, Sleep: time.Sleep}
}

// CreateResult is the confirmation artifact for a created task
type CreateResult struct {
	TaskGID      string
	PermalinkURL string
	AssigneeName string
}

// CreateWithRetry creates a task and fetches its permalink, retrying
// the full create step on rate limiting. The sleep between attempts is
// the server's Retry-After plus half a second. Any error other than
// rate limiting propagates immediately; exhausting the attempt budget
// returns ErrMaxRetries.
func (c *Client) CreateWithRetry(ctx context.Context, task *TaskRequest, policy RetryPolicy) (*CreateResult, error) {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultMaxAttempts
	}
	if policy.Sleep == nil {
		policy.Sleep = time.Sleep
	}

	var lastRateLimit *RateLimitError
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		gid, err := c.CreateTask(ctx, task)
		if err != nil {
			var rl *RateLimitError
			if errors.As(err, &rl) && attempt < policy.MaxAttempts {
				lastRateLimit = rl
				policy.Sleep(time.Duration(rl.RetryAfter*float64(time.Second)) + retryPad)
				continue
			}
			if errors.As(err, &rl) {
				lastRateLimit = rl
				break
			}
			return nil, err
		}

		info, err := c.GetTaskPermalink(ctx, gid)
		if err != nil {
			// The task exists at this point; report the permalink
			// failure rather than pretending nothing was created.
			return nil, fmt.Errorf("task %s created but permalink retrieval failed: %w", gid, err)
		}

		return &CreateResult{
			TaskGID:      gid,
			PermalinkURL: info.PermalinkURL,
			AssigneeName: info.Assignee.Name,
		}, nil
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrMaxRetries, policy.MaxAttempts, lastRateLimit)
}
