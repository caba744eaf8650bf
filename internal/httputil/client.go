// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/pdiddy/media-engine/internal/logging"
	"github.com/pdiddy/media-engine/internal/metrics"
	"github.com/pdiddy/media-engine/pkg/types"
)

// Client performs JSON GET requests against one provider. It is safe for
// concurrent use; the breaker and limiter are shared by all callers.
type Client struct {
	name        string
	http        *http.Client
	userAgent   string
	maxAttempts int
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[[]byte]
}

// NewClient builds a provider client from cfg. When httpClient is nil a new
// one is created with cfg.Timeout.
func NewClient(name string, cfg types.ProviderConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Client{
		name:        name,
		http:        httpClient,
		userAgent:   cfg.UserAgent,
		maxAttempts: cfg.MaxAttempts,
		limiter:     rate.NewLimiter(limit, 1),
		breaker:     newBreaker(name),
	}
}

// Name returns the provider name used in logs and metrics.
func (c *Client) Name() string { return c.name }

// newBreaker opens after at least 10 logical calls in a one-minute window
// with a failure rate of 60% or more, and probes again after one minute.
func newBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("provider", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// GetJSON fetches reqURL and decodes the body into out. The whole retry loop
// counts as one call for the circuit breaker. A decode failure is not retried.
func (c *Client) GetJSON(ctx context.Context, reqURL string, out any) error {
	start := time.Now()
	defer func() {
		metrics.ProviderDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
	}()

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, reqURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.ProviderRequests.WithLabelValues(c.name, "rejected").Inc()
			logging.Ctx(ctx).Warn().Err(err).Str("provider", c.name).Msg("request rejected by circuit breaker")
		} else {
			metrics.ProviderRequests.WithLabelValues(c.name, "exhausted").Inc()
		}
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.ProviderRequests.WithLabelValues(c.name, "decode_error").Inc()
		return fmt.Errorf("parsing %s response: %w", c.name, err)
	}
	metrics.ProviderRequests.WithLabelValues(c.name, "success").Inc()
	return nil
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := DoWithRetryLimited(ctx, c.http, req, c.name, c.maxAttempts, c.limiter.Wait)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", c.name, err)
	}
	return body, nil
}
