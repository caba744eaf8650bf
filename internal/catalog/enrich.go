// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/media-engine/internal/logging"
	"github.com/pdiddy/media-engine/internal/metrics"
	"github.com/pdiddy/media-engine/pkg/types"
)

// DefaultConcurrency bounds parallel detail lookups when none is configured.
const DefaultConcurrency = 10

// Enricher upgrades search-level records of type R to detail-level Titles.
// Each record with a provider id that NeedsDetail gets its own Detail call;
// at most Concurrency calls run at once. A failed or panicking lookup
// degrades the item to its search-level form; items are never dropped by
// enrichment, only by Normalize rejecting them.
type Enricher[R any] struct {
	Kind        types.Kind
	Concurrency int

	// ID returns the provider id of r, or "".
	ID func(r R) string

	// NeedsDetail reports whether a detail lookup would add data to r.
	NeedsDetail func(r R) bool

	// Detail fetches the detail record, or nil when unavailable.
	Detail func(ctx context.Context, id string) *R

	// Normalize converts a raw record, returning nil to reject it.
	Normalize func(ctx context.Context, r R) *types.Title
}

// Enrich returns one entry per input record, in input order. Rejected
// records are nil. It returns once every lookup has finished.
func (e Enricher[R]) Enrich(ctx context.Context, records []R) []*types.Title {
	out := make([]*types.Title, len(records))
	if len(records) == 0 {
		return out
	}

	limit := e.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	limit = min(limit, len(records))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, r := range records {
		g.Go(func() error {
			out[i] = e.enrichOne(ctx, r)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return out
}

func (e Enricher[R]) enrichOne(ctx context.Context, r R) *types.Title {
	id := e.ID(r)
	if id == "" {
		e.record("no_id")
		return e.normalize(ctx, r)
	}
	if e.NeedsDetail != nil && !e.NeedsDetail(r) {
		e.record("skipped")
		return e.normalize(ctx, r)
	}

	detailed, err := e.detail(ctx, id)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("kind", string(e.Kind)).Str("id", id).
			Msg("detail lookup panicked, keeping search-level record")
		e.record("recovered_panic")
		return e.normalize(ctx, r)
	}
	if detailed != nil {
		e.record("detail")
		return detailed
	}

	logging.Ctx(ctx).Debug().Str("kind", string(e.Kind)).Str("id", id).
		Msg("detail unavailable, keeping search-level record")
	e.record("search_level")
	return e.normalize(ctx, r)
}

// detail runs the lookup and normalization of the detail record, turning a
// panic into an error.
func (e Enricher[R]) detail(ctx context.Context, id string) (t *types.Title, err error) {
	defer func() {
		if p := recover(); p != nil {
			t, err = nil, fmt.Errorf("recovered: %v", p)
		}
	}()

	rec := e.Detail(ctx, id)
	if rec == nil {
		return nil, nil
	}
	return e.Normalize(ctx, *rec), nil
}

// normalize converts the search-level record. A panic rejects the item.
func (e Enricher[R]) normalize(ctx context.Context, r R) (t *types.Title) {
	defer func() {
		if p := recover(); p != nil {
			logging.Ctx(ctx).Error().Str("kind", string(e.Kind)).Interface("panic", p).
				Msg("normalizing search-level record panicked")
			t = nil
		}
	}()
	return e.Normalize(ctx, r)
}

func (e Enricher[R]) record(outcome string) {
	metrics.EnrichmentOutcomes.WithLabelValues(string(e.Kind), outcome).Inc()
}
