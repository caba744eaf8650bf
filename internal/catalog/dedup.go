// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import "github.com/pdiddy/media-engine/pkg/types"

// Deduplicate folds titles by ExternalID, keeping the first occurrence in
// first-seen order. Nil entries and titles without an id are dropped. It
// returns the surviving titles and how many duplicates were removed.
func Deduplicate(titles []*types.Title) ([]types.Title, int) {
	seen := make(map[string]struct{}, len(titles))
	out := make([]types.Title, 0, len(titles))
	removed := 0

	for _, t := range titles {
		if t == nil || t.ExternalID == "" {
			continue
		}
		if _, ok := seen[t.ExternalID]; ok {
			removed++
			continue
		}
		seen[t.ExternalID] = struct{}{}
		out = append(out, *t)
	}
	return out, removed
}
