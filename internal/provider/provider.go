// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider holds one adapter per external metadata source: Google
// Books for books, OMDb for movie search and detail, and TMDb as a poster
// fallback. It also carries the static fallback dataset served when those
// sources come back empty.
//
// Adapters never surface transport failures. Exhausted retries, an open
// circuit breaker and provider-reported errors inside a 200 body are all
// logged and returned as an empty result, so callers treat "no data" the
// same way regardless of cause.
package provider

import (
	"context"
	"errors"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/pdiddy/media-engine/internal/logging"
	"github.com/pdiddy/media-engine/internal/metrics"
)

// logFailure records a failed logical call. It never returns an error; the
// caller proceeds with an empty result.
func logFailure(ctx context.Context, provider, op string, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logging.Ctx(ctx).Debug().Err(err).Str("provider", provider).Str("op", op).Msg("provider call abandoned")
		return
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		// Already logged by the client.
		return
	}
	logging.Ctx(ctx).Warn().Err(err).Str("provider", provider).Str("op", op).Msg("provider call failed, returning empty result")
}

// logProviderError records an error reported inside a successful response.
func logProviderError(ctx context.Context, provider, op, msg string) {
	if msg == "" {
		msg = "unknown error"
	}
	metrics.ProviderRequests.WithLabelValues(provider, "provider_error").Inc()
	logging.Ctx(ctx).Warn().Str("provider", provider).Str("op", op).Str("error", msg).Msg("provider reported an error")
}
