// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pdiddy/media-engine/internal/provider"
)

// fakeMovies is an in-memory MovieSource. Detail lookups for ids in failing
// return nil, ids in panicking panic, and delays slows individual ids.
type fakeMovies struct {
	results  []provider.MovieRecord
	details  map[string]provider.MovieRecord
	failing  map[string]bool
	panicky  map[string]bool
	delays   map[string]time.Duration
	searches []provider.MovieQuery

	mu          sync.Mutex
	detailCalls []string
	inFlight    int32
	maxInFlight int32
}

func (f *fakeMovies) SearchMovies(_ context.Context, q provider.MovieQuery) []provider.MovieRecord {
	f.mu.Lock()
	f.searches = append(f.searches, q)
	f.mu.Unlock()
	return append([]provider.MovieRecord(nil), f.results...)
}

func (f *fakeMovies) MovieDetail(_ context.Context, id string) *provider.MovieRecord {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		old := atomic.LoadInt32(&f.maxInFlight)
		if n <= old || atomic.CompareAndSwapInt32(&f.maxInFlight, old, n) {
			break
		}
	}

	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, id)
	f.mu.Unlock()

	if d := f.delays[id]; d > 0 {
		time.Sleep(d)
	}
	if f.panicky[id] {
		panic("detail exploded for " + id)
	}
	if f.failing[id] {
		return nil
	}
	rec, ok := f.details[id]
	if !ok {
		return nil
	}
	return &rec
}

type fakeBooks struct {
	results []provider.Volume
	volumes map[string]provider.Volume

	mu          sync.Mutex
	detailCalls []string
	queries     []provider.BookQuery
}

func (f *fakeBooks) SearchVolumes(_ context.Context, q provider.BookQuery) []provider.Volume {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	return append([]provider.Volume(nil), f.results...)
}

func (f *fakeBooks) Volume(_ context.Context, id string) *provider.Volume {
	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, id)
	f.mu.Unlock()
	v, ok := f.volumes[id]
	if !ok {
		return nil
	}
	return &v
}

type fakePosters struct {
	url string
}

func (f fakePosters) Poster(context.Context, string) string { return f.url }
