// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"strings"

	"github.com/pdiddy/media-engine/pkg/types"
)

// orderedSet keeps distinct strings in first-seen order. Comparison ignores
// case and surrounding space; the first spelling wins.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		s.items = append(s.items, v)
	}
}

func (s *orderedSet) len() int { return len(s.items) }

// first returns up to n items.
func (s *orderedSet) first(n int) []string {
	if n < 0 || n > len(s.items) {
		n = len(s.items)
	}
	return s.items[:n]
}

// Signals are the genre and people values extracted from a library. They
// live for one recommendation call.
type Signals struct {
	genres *orderedSet
	people *orderedSet
}

func newSignals() Signals {
	return Signals{genres: newOrderedSet(), people: newOrderedSet()}
}

func (s Signals) addTitle(t types.Title) {
	s.genres.add(t.Genres...)
	s.people.add(t.People...)
}

// Empty reports whether no signal was found.
func (s Signals) Empty() bool {
	return s.genres.len() == 0 && s.people.len() == 0
}

// Genres returns the genre signals in first-seen order.
func (s Signals) Genres() []string { return s.genres.first(-1) }

// People returns the author or cast signals in first-seen order.
func (s Signals) People() []string { return s.people.first(-1) }

// pool accumulates candidates, skipping excluded and already-seen ids, and
// stops accepting once it holds max titles.
type pool struct {
	seen   map[string]struct{}
	titles []types.Title
	max    int
}

func newPool(exclude []string, max int) *pool {
	p := &pool{seen: make(map[string]struct{}, len(exclude)), max: max}
	for _, id := range exclude {
		p.seen[id] = struct{}{}
	}
	return p
}

// add appends t unless it is excluded, seen, id-less or the pool is full.
// It reports whether t was added.
func (p *pool) add(t types.Title) bool {
	if p.full() || t.ExternalID == "" {
		return false
	}
	if _, ok := p.seen[t.ExternalID]; ok {
		return false
	}
	p.seen[t.ExternalID] = struct{}{}
	p.titles = append(p.titles, t)
	return true
}

func (p *pool) full() bool { return p.max > 0 && len(p.titles) >= p.max }

func (p *pool) len() int { return len(p.titles) }
