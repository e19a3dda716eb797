package engine

import (
	"context"
	"math"
	"sort"
)

// Loop planning constants. Tolerance and the attempt cap are the recorded
// defaults for the bounded greedy strategy; the expansion budget is a hard
// iteration cap independent of any wall-clock deadline.
const (
	loopTolerance       = 0.25
	loopAttempts        = 8
	loopExpansionBudget = 500000
)

// Loop constructs a closed tour from origin back to origin that visits at
// least minBorders distinct border systems, keeps the total jump count within
// the tolerance band around targetJumps, and repeats no system except the
// origin at the start and end.
//
// Construction is greedy nearest-unvisited-border stitched with shortest-path
// segments. If an attempt overshoots the jump budget or strands itself, the
// planner restarts with an alternative first border, up to loopAttempts
// times, then fails with NoLoopError.
func (n *Navigator) Loop(ctx context.Context, origin int32, targetJumps, minBorders int, avoid []int32) (*LoopResult, error) {
	if err := n.requireSystem(origin); err != nil {
		return nil, err
	}
	if targetJumps < 2 {
		return nil, invalidQueryf("target_jumps must be at least 2, got %d", targetJumps)
	}
	if minBorders < 1 {
		return nil, invalidQueryf("min_borders must be at least 1, got %d", minBorders)
	}
	avoidSet, err := n.avoidSet(avoid, origin)
	if err != nil {
		return nil, err
	}

	lo := int(math.Ceil(float64(targetJumps) * (1 - loopTolerance)))
	hi := int(math.Floor(float64(targetJumps) * (1 + loopTolerance)))

	budget := loopExpansionBudget
	for attempt := 0; attempt < loopAttempts; attempt++ {
		path, borders, err := n.tryLoop(ctx, origin, minBorders, hi, avoidSet, attempt, &budget)
		if err != nil {
			return nil, err
		}
		if path == nil {
			continue
		}
		jumps := len(path) - 1
		if jumps < lo || jumps > hi {
			continue
		}
		return &LoopResult{
			Origin:         n.systemRef(origin),
			TargetJumps:    targetJumps,
			Jumps:          jumps,
			BordersVisited: borders,
			Systems:        n.systemRefs(path),
			Security:       summarize(n.Data.Universe, path),
		}, nil
	}
	return nil, &NoLoopError{Origin: origin, Reason: "no tour within the jump tolerance after all attempts"}
}

// tryLoop runs one greedy construction. It returns a nil path (without error)
// when the attempt dead-ends or overshoots; hard failures (deadline, budget)
// surface as errors.
func (n *Navigator) tryLoop(ctx context.Context, origin int32, minBorders, maxJumps int, avoid map[int32]bool, attempt int, budget *int) ([]int32, int, error) {
	u := n.Data.Universe

	visited := make(map[int32]bool, len(avoid)+maxJumps)
	for id := range avoid {
		visited[id] = true
	}
	visited[origin] = true

	path := []int32{origin}
	current := origin
	borders := 0

	// The origin does not count toward minBorders even when it is itself a
	// border: the tour has to travel out to the borders it claims.
	for borders < minBorders {
		dist, parent, err := n.bfsAvoiding(ctx, current, visited, 0, budget)
		if err != nil {
			return nil, 0, err
		}

		var candidates []rankedID
		for id, d := range dist {
			if id != current && u.IsBorder(id) && !visited[id] {
				candidates = append(candidates, rankedID{id: id, jumps: d})
			}
		}
		if len(candidates) == 0 {
			return nil, 0, nil
		}
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].jumps == candidates[j].jumps {
				return candidates[i].id < candidates[j].id
			}
			return candidates[i].jumps < candidates[j].jumps
		})

		// Later attempts start from a different first border to escape
		// constructions that overshoot.
		pick := 0
		if len(path) == 1 {
			pick = attempt % len(candidates)
		}
		chosen := candidates[pick]

		for _, id := range bfsPath(parent, current, chosen.id)[1:] {
			path = append(path, id)
			visited[id] = true
			if u.IsBorder(id) {
				borders++
			}
		}
		if len(path)-1 > maxJumps {
			return nil, 0, nil
		}
		current = chosen.id
	}

	// Return leg: back to origin without touching anything already visited.
	dist, parent, err := n.bfsAvoiding(ctx, current, visited, origin, budget)
	if err != nil {
		return nil, 0, err
	}
	if _, ok := dist[origin]; !ok {
		return nil, 0, nil
	}
	for _, id := range bfsPath(parent, current, origin)[1:] {
		path = append(path, id)
		if id != origin && u.IsBorder(id) {
			borders++
		}
	}
	return path, borders, nil
}

// bfsAvoiding is a hop-count BFS from `from` that never enters blocked
// systems, except that `allow` (the loop origin on the return leg) is
// traversable as a terminal. Every dequeue draws down the shared expansion
// budget so loop planning has a hard iteration cap.
func (n *Navigator) bfsAvoiding(ctx context.Context, from int32, blocked map[int32]bool, allow int32, budget *int) (map[int32]int, map[int32]int32, error) {
	u := n.Data.Universe
	dist := map[int32]int{from: 0}
	parent := make(map[int32]int32)
	queue := []int32{from}

	pops := 0
	for len(queue) > 0 {
		pops++
		*budget--
		if *budget <= 0 {
			return nil, nil, &TimedOutError{Op: "loop"}
		}
		if pops%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, &TimedOutError{Op: "loop"}
			}
		}

		current := queue[0]
		queue = queue[1:]
		for _, neighbor := range u.Neighbors(current) {
			if _, seen := dist[neighbor]; seen {
				continue
			}
			if blocked[neighbor] && neighbor != allow {
				continue
			}
			dist[neighbor] = dist[current] + 1
			parent[neighbor] = current
			if neighbor != allow {
				queue = append(queue, neighbor)
			}
		}
	}
	return dist, parent, nil
}

func bfsPath(parent map[int32]int32, from, to int32) []int32 {
	path := []int32{to}
	for current := to; current != from; {
		current = parent[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
