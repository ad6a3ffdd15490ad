// Package fetch retrieves directory pages over HTTP with retries and a fixed
// inter-request delay. The directory is a shared public service, so the
// fetcher paces requests; the delay runs through an injected clock so tests
// do not sleep.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jonboulle/clockwork"
	"github.com/playamaps/brc-directory/internal/config"
)

// Fetcher retrieves pages one at a time.
type Fetcher struct {
	client    *http.Client
	userAgent string
	delay     time.Duration
	retry     config.Retry
	clock     clockwork.Clock

	mu   sync.Mutex
	last time.Time
}

// New creates a Fetcher from the collector configuration.
func New(cfg *config.Config) *Fetcher {
	return NewWithClock(cfg, clockwork.NewRealClock())
}

// NewWithClock creates a Fetcher with an explicit clock for the inter-request
// delay.
func NewWithClock(cfg *config.Config, clock clockwork.Clock) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		userAgent: cfg.UserAgent,
		delay:     cfg.RequestDelay(),
		retry:     cfg.Retry,
		clock:     clock,
	}
}

// Get fetches one page and returns its body as decoded text. Server errors
// are retried with exponential backoff per the configured policy; client
// errors fail immediately.
func (f *Fetcher) Get(ctx context.Context, url string) (string, error) {
	if err := f.pace(ctx); err != nil {
		return "", err
	}

	var body string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", f.userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
				return err
			}
			return backoff.Permanent(err)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		body = string(data)
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Duration(f.retry.InitialDelayMs) * time.Millisecond
	bo.MaxInterval = time.Duration(f.retry.MaxDelayMs) * time.Millisecond

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(f.retry.MaxAttempts-1)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	return body, nil
}

// pace waits until the configured delay has elapsed since the previous
// request. The first request never waits.
func (f *Fetcher) pace(ctx context.Context) error {
	f.mu.Lock()
	wait := time.Duration(0)
	if !f.last.IsZero() {
		wait = f.delay - f.clock.Now().Sub(f.last)
	}
	if wait > 0 {
		f.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.clock.After(wait):
		}
		f.mu.Lock()
	}
	f.last = f.clock.Now()
	f.mu.Unlock()
	return nil
}
