// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP plumbing shared by provider adapters:
// a fixed-budget retry loop and a Client that adds a circuit breaker, a rate
// limiter and JSON decoding on top of it.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/media-engine/internal/logging"
	"github.com/pdiddy/media-engine/internal/metrics"
)

// RetryDelay is the fixed pause between attempts. There is no escalation.
// Tests may lower it; the default keeps retries immediate.
var RetryDelay time.Duration

const defaultMaxAttempts = 3

// ErrAttemptsExhausted is returned when every attempt failed.
var ErrAttemptsExhausted = errors.New("all attempts failed")

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// DoWithRetry executes req up to maxAttempts times and returns the first 2xx
// response. Transport failures and every non-2xx response are retried after
// RetryDelay. Every attempt is logged under the given provider name.
//
// When maxAttempts is 0 the default (3) is used. When all attempts fail the
// returned error wraps ErrAttemptsExhausted and the last failure. A cancelled
// context stops the loop and returns ctx.Err().
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, provider string, maxAttempts int) (*http.Response, error) {
	return DoWithRetryLimited(ctx, client, req, provider, maxAttempts, nil)
}

// DoWithRetryLimited is DoWithRetry with wait called before every attempt,
// typically a rate limiter's Wait. A wait error ends the loop. A nil wait never blocks.
func DoWithRetryLimited(ctx context.Context, client *http.Client, req *http.Request, provider string, maxAttempts int, wait func(context.Context) error) (*http.Response, error) {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if wait != nil {
			if err := wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", err)
			}
		}

		logging.Ctx(ctx).Debug().
			Str("provider", provider).
			Int("attempt", attempt).
			Int("max_attempts", maxAttempts).
			Str("url", redactURL(req)).
			Msg("provider request")

		resp, err := client.Do(req.Clone(ctx))
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			metrics.ProviderAttempts.WithLabelValues(provider, "ok").Inc()
			return resp, nil
		}
		if err == nil {
			// Drain and close the body before retrying.
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			err = &StatusError{StatusCode: resp.StatusCode}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		lastErr = err
		metrics.ProviderAttempts.WithLabelValues(provider, "failed").Inc()
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("provider", provider).
			Int("attempt", attempt).
			Int("max_attempts", maxAttempts).
			Msg("provider request failed")

		if attempt < maxAttempts && RetryDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(RetryDelay):
			}
		}
	}
	return nil, fmt.Errorf("%s: %w: %w", provider, ErrAttemptsExhausted, lastErr)
}

// redactURL returns the request URL without credentials in the query string.
func redactURL(req *http.Request) string {
	u := *req.URL
	q := u.Query()
	for _, k := range []string{"apikey", "api_key", "key"} {
		if q.Has(k) {
			q.Set(k, "REDACTED")
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
