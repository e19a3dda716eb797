package engine

import (
	"context"
	"sort"
)

// Borders returns border systems reachable from origin within maxJumps,
// ordered by jump distance then id, truncated to limit. The origin itself
// counts when it satisfies the border predicate.
func (n *Navigator) Borders(ctx context.Context, origin int32, maxJumps, limit int) (*BordersResult, error) {
	if err := n.requireSystem(origin); err != nil {
		return nil, err
	}
	if maxJumps < 0 {
		return nil, invalidQueryf("max_jumps must not be negative, got %d", maxJumps)
	}
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	if err := ctx.Err(); err != nil {
		return nil, &TimedOutError{Op: "borders"}
	}

	u := n.Data.Universe
	hits := collectRanked(u.WithinRadius(origin, maxJumps), u.IsBorder)

	result := &BordersResult{
		Origin:   n.systemRef(origin),
		MaxJumps: maxJumps,
		Borders:  n.rankAndTruncate(hits, limit),
	}
	return result, nil
}

// rankedID pairs a system with its jump distance during collection.
type rankedID struct {
	id    int32
	jumps int
}

func collectRanked(distances map[int32]int, match func(int32) bool) []rankedID {
	var hits []rankedID
	for id, jumps := range distances {
		if match(id) {
			hits = append(hits, rankedID{id: id, jumps: jumps})
		}
	}
	return hits
}

func (n *Navigator) rankAndTruncate(hits []rankedID, limit int) []RankedSystem {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].jumps == hits[j].jumps {
			return hits[i].id < hits[j].id
		}
		return hits[i].jumps < hits[j].jumps
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]RankedSystem, len(hits))
	for i, h := range hits {
		out[i] = RankedSystem{SystemRef: n.systemRef(h.id), Jumps: h.jumps}
	}
	return out
}
