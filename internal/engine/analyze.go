package engine

import (
	"context"
	"errors"
	"sort"
)

// Analyze validates a route and reports its chokepoints: systems on the route
// whose removal disconnects the route's endpoints in the full graph, not just
// along the given path. Endpoints are excluded; removing either trivially
// disconnects the pair.
func (n *Navigator) Analyze(ctx context.Context, route []int32) (*AnalyzeResult, error) {
	if len(route) == 0 {
		return nil, invalidQueryf("route must not be empty")
	}
	for _, id := range route {
		if err := n.requireSystem(id); err != nil {
			return nil, err
		}
	}
	u := n.Data.Universe
	for i := 1; i < len(route); i++ {
		if route[i] == route[i-1] || !u.Linked(route[i-1], route[i]) {
			return nil, invalidQueryf("systems %d and %d are not linked", route[i-1], route[i])
		}
	}

	origin := route[0]
	dest := route[len(route)-1]

	// Each distinct intermediate is individually added to the avoid set; the
	// pair disconnecting under that removal marks a chokepoint.
	seen := make(map[int32]bool, len(route))
	var chokepoints []int32
	var intermediates []int32
	if len(route) > 2 {
		intermediates = route[1 : len(route)-1]
	}
	for _, id := range intermediates {
		if id == origin || id == dest || seen[id] {
			continue
		}
		seen[id] = true
		_, _, err := n.solve(ctx, origin, dest, ModeShortest, map[int32]bool{id: true})
		if err != nil {
			var noRoute *NoRouteError
			if errors.As(err, &noRoute) {
				chokepoints = append(chokepoints, id)
				continue
			}
			return nil, err
		}
	}
	sort.Slice(chokepoints, func(i, j int) bool { return chokepoints[i] < chokepoints[j] })

	return &AnalyzeResult{
		Origin:      n.systemRef(origin),
		Destination: n.systemRef(dest),
		Jumps:       len(route) - 1,
		Chokepoints: n.systemRefs(chokepoints),
		Security:    summarize(u, route),
	}, nil
}
