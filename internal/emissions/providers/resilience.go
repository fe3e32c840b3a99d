package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// backoff controls retry behaviour for upstream calls.
type backoff struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// getJSON issues a GET through the circuit breaker with retries and
// exponential backoff, decoding a 2xx body into out. 429 and 5xx responses
// count as breaker failures and are retried; other non-2xx codes fail the
// attempt without tripping special handling.
func getJSON(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, bo backoff, url string, out any) error {
	delay := bo.initialInterval

	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := fetchOnce(ctx, client, cb, url, out)
		if err == nil {
			return nil
		}

		// An open breaker means the upstream is known-bad; retrying inside
		// this request would only burn the caller's deadline.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		if attempt >= bo.maxRetries {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if bo.maxInterval > 0 && delay > bo.maxInterval {
			delay = bo.maxInterval
		}
	}
}

func fetchOnce(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, url string, out any) error {
	_, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, errRateLimited
		case resp.StatusCode >= 500:
			return nil, errServerError
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return nil, nil
	})
	return err
}
