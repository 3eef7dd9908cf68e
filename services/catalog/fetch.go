package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// retryBaseDelay is the linear backoff unit between attempts: the sleep before
// retry N is N times this value.
const retryBaseDelay = 400 * time.Millisecond

// UpstreamError is returned after all attempts against a third-party API have
// been exhausted. Status is the last HTTP status (0 for transport failures);
// Timeout marks attempts cut off by their per-attempt deadline.
type UpstreamError struct {
	Source  string
	Status  int
	Timeout bool
	Err     error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s: upstream timeout", e.Source)
	case e.Status != 0:
		return fmt.Sprintf("%s: upstream returned status %d", e.Source, e.Status)
	default:
		return fmt.Sprintf("%s: upstream request failed: %v", e.Source, e.Err)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// fetchPolicy bounds a single logical fetch: each attempt gets its own
// deadline, and a non-2xx response or transport error is retried up to
// Retries additional times.
type fetchPolicy struct {
	Retries uint
	Timeout time.Duration
}

// fetchJSON performs a GET against url and decodes the body into v. The
// request is retried per policy with linear backoff; the returned error is
// always an *UpstreamError once attempts are exhausted.
func fetchJSON(ctx context.Context, httpc *http.Client, source, url string, header http.Header, policy fetchPolicy, v any) error {
	attempt := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, policy.Timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
		if err != nil {
			return retry.Unrecoverable(&UpstreamError{Source: source, Err: err})
		}
		for k, vals := range header {
			for _, val := range vals {
				req.Header.Add(k, val)
			}
		}

		resp, err := httpc.Do(req)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return &UpstreamError{Source: source, Timeout: true, Err: err}
			}
			return &UpstreamError{Source: source, Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &UpstreamError{Source: source, Status: resp.StatusCode}
		}

		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return &UpstreamError{Source: source, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}

	return retry.Do(attempt,
		retry.Context(ctx),
		retry.Attempts(policy.Retries+1),
		retry.Delay(retryBaseDelay),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			// retry-go numbers attempts from 0; backoff is 400ms, 800ms, ...
			return time.Duration(n+1) * retryBaseDelay
		}),
		retry.LastErrorOnly(true),
	)
}
