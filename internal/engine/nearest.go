package engine

import (
	"context"
	"math"

	"eve-navigator/internal/graph"
)

// Predicate selects which systems a nearest query matches.
type Predicate int

const (
	PredicateHighsec Predicate = iota
	PredicateLowsec
	PredicateNullsec
	PredicateBorder
)

// ParsePredicate maps the wire/CLI string onto the closed predicate set.
func ParsePredicate(s string) (Predicate, error) {
	switch s {
	case "highsec":
		return PredicateHighsec, nil
	case "lowsec":
		return PredicateLowsec, nil
	case "nullsec":
		return PredicateNullsec, nil
	case "border":
		return PredicateBorder, nil
	default:
		return PredicateHighsec, invalidQueryf("unknown predicate %q (want highsec, lowsec, nullsec, or border)", s)
	}
}

func (p Predicate) String() string {
	switch p {
	case PredicateLowsec:
		return "lowsec"
	case PredicateNullsec:
		return "nullsec"
	case PredicateBorder:
		return "border"
	default:
		return "highsec"
	}
}

func (p Predicate) matches(u *graph.Universe, id int32) bool {
	sec := u.Security(id)
	switch p {
	case PredicateHighsec:
		return sec >= graph.HighSecThreshold
	case PredicateLowsec:
		return sec > graph.NullSecThreshold && sec < graph.HighSecThreshold
	case PredicateNullsec:
		return sec <= graph.NullSecThreshold
	case PredicateBorder:
		return u.IsBorder(id)
	}
	return false
}

// Nearest returns the closest systems matching the predicate, ordered by jump
// distance then id. The origin itself is included at distance zero when it
// matches.
func (n *Navigator) Nearest(ctx context.Context, origin int32, predicate Predicate, limit int) (*NearestResult, error) {
	if err := n.requireSystem(origin); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	if err := ctx.Err(); err != nil {
		return nil, &TimedOutError{Op: "nearest"}
	}

	u := n.Data.Universe
	hits := collectRanked(u.WithinRadius(origin, math.MaxInt32), func(id int32) bool {
		return predicate.matches(u, id)
	})

	result := &NearestResult{
		Origin:    n.systemRef(origin),
		Predicate: predicate.String(),
		Matches:   n.rankAndTruncate(hits, limit),
	}
	return result, nil
}
