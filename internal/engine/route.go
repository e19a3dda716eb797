package engine

import (
	"container/heap"
	"context"
)

// Route computes the cheapest path between two systems under the given cost
// mode, with the avoid set removed from the search space. origin == dest is a
// valid zero-length route.
func (n *Navigator) Route(ctx context.Context, origin, dest int32, mode Mode, avoid []int32) (*RouteResult, error) {
	if err := n.requireSystem(origin); err != nil {
		return nil, err
	}
	if err := n.requireSystem(dest); err != nil {
		return nil, err
	}
	avoidSet, err := n.avoidSet(avoid, origin, dest)
	if err != nil {
		return nil, err
	}

	path, cost, err := n.solve(ctx, origin, dest, mode, avoidSet)
	if err != nil {
		return nil, err
	}

	result := &RouteResult{
		Origin:      n.systemRef(origin),
		Destination: n.systemRef(dest),
		Mode:        mode,
		Jumps:       len(path) - 1,
		Cost:        cost,
		Systems:     n.systemRefs(path),
		Security:    summarize(n.Data.Universe, path),
	}
	return result, nil
}

// solve is the uniform-cost search shared by Route, Analyze, and the loop
// planner. Ties are broken by system id, so results are deterministic for a
// fixed graph. The context is checked periodically so a caller deadline
// aborts cleanly with TimedOutError.
func (n *Navigator) solve(ctx context.Context, origin, dest int32, mode Mode, avoid map[int32]bool) ([]int32, float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, &TimedOutError{Op: "route"}
	}
	if origin == dest {
		return []int32{origin}, 0, nil
	}
	u := n.Data.Universe

	dist := make(map[int32]float64)
	prev := make(map[int32]int32)
	dist[origin] = 0

	pq := &priorityQueue{{systemID: origin, cost: 0}}
	heap.Init(pq)

	pops := 0
	for pq.Len() > 0 {
		pops++
		if pops%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, &TimedOutError{Op: "route"}
			}
		}

		item := heap.Pop(pq).(pqItem)
		if item.systemID == dest {
			return reconstruct(prev, origin, dest), item.cost, nil
		}
		if d, ok := dist[item.systemID]; ok && item.cost > d {
			continue
		}
		for _, neighbor := range u.Neighbors(item.systemID) {
			if avoid[neighbor] {
				continue
			}
			nd := item.cost + mode.EdgeCost(u.Security(neighbor))
			if d, ok := dist[neighbor]; !ok || nd < d {
				dist[neighbor] = nd
				prev[neighbor] = item.systemID
				heap.Push(pq, pqItem{systemID: neighbor, cost: nd})
			}
		}
	}
	return nil, 0, &NoRouteError{Origin: origin, Destination: dest}
}

func reconstruct(prev map[int32]int32, origin, dest int32) []int32 {
	path := []int32{dest}
	for current := dest; current != origin; {
		current = prev[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Priority queue for the uniform-cost search. Equal costs order by system id
// so the pop sequence never depends on heap internals.
type pqItem struct {
	systemID int32
	cost     float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].cost == pq[j].cost {
		return pq[i].systemID < pq[j].systemID
	}
	return pq[i].cost < pq[j].cost
}
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
