package graph

import "sort"

// HighSecThreshold splits high-security systems from the rest.
// NullSecThreshold splits null-security systems from low-security ones.
const (
	HighSecThreshold = 0.5
	NullSecThreshold = 0.0
)

// Universe holds the adjacency list of solar systems connected by stargates,
// plus per-system security, region, and constellation mappings. It is built
// once at load time, frozen, and thereafter shared read-only by any number of
// concurrent queries.
type Universe struct {
	adj           map[int32][]int32
	security      map[int32]float64
	region        map[int32]int32
	constellation map[int32]int32

	// Computed by Freeze.
	borders map[int32]bool
	ids     []int32
	links   int
	frozen  bool
}

// NewUniverse creates an empty Universe with initialized maps.
func NewUniverse() *Universe {
	return &Universe{
		adj:           make(map[int32][]int32),
		security:      make(map[int32]float64),
		region:        make(map[int32]int32),
		constellation: make(map[int32]int32),
	}
}

// AddSystem registers a system with its security value and parent ids.
func (u *Universe) AddSystem(systemID int32, security float64, regionID, constellationID int32) {
	if u.frozen {
		panic("graph: AddSystem after Freeze")
	}
	u.security[systemID] = security
	u.region[systemID] = regionID
	u.constellation[systemID] = constellationID
	if _, ok := u.adj[systemID]; !ok {
		u.adj[systemID] = nil
	}
}

// AddLink adds a bidirectional stargate connection.
func (u *Universe) AddLink(a, b int32) {
	if u.frozen {
		panic("graph: AddLink after Freeze")
	}
	u.adj[a] = append(u.adj[a], b)
	u.adj[b] = append(u.adj[b], a)
}

// Freeze finalizes the Universe: neighbor lists are deduplicated and sorted
// by system id so every traversal is deterministic, the border index is
// computed, and all further mutation panics.
func (u *Universe) Freeze() {
	if u.frozen {
		return
	}
	u.ids = make([]int32, 0, len(u.security))
	for id := range u.security {
		u.ids = append(u.ids, id)
	}
	sort.Slice(u.ids, func(i, j int) bool { return u.ids[i] < u.ids[j] })

	u.links = 0
	for id, neighbors := range u.adj {
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })
		deduped := neighbors[:0]
		var prev int32 = -1
		for i, n := range neighbors {
			if i == 0 || n != prev {
				deduped = append(deduped, n)
			}
			prev = n
		}
		u.adj[id] = deduped
		u.links += len(deduped)
	}
	u.links /= 2

	u.borders = make(map[int32]bool)
	for _, id := range u.ids {
		if u.security[id] < HighSecThreshold {
			continue
		}
		for _, n := range u.adj[id] {
			if u.security[n] < HighSecThreshold {
				u.borders[id] = true
				break
			}
		}
	}
	u.frozen = true
}

// Contains reports whether the system is part of the topology.
func (u *Universe) Contains(systemID int32) bool {
	_, ok := u.security[systemID]
	return ok
}

// Neighbors returns the sorted neighbor list of a system. The returned slice
// is shared and must not be modified.
func (u *Universe) Neighbors(systemID int32) []int32 {
	return u.adj[systemID]
}

// Linked reports whether two systems share a direct stargate connection.
func (u *Universe) Linked(a, b int32) bool {
	neighbors := u.adj[a]
	i := sort.Search(len(neighbors), func(i int) bool { return neighbors[i] >= b })
	return i < len(neighbors) && neighbors[i] == b
}

// Security returns the security value of a system.
func (u *Universe) Security(systemID int32) float64 {
	return u.security[systemID]
}

// Region returns the region id of a system.
func (u *Universe) Region(systemID int32) int32 {
	return u.region[systemID]
}

// Constellation returns the constellation id of a system.
func (u *Universe) Constellation(systemID int32) int32 {
	return u.constellation[systemID]
}

// IsBorder reports whether a system is high-security with at least one
// directly linked neighbor below the high-security threshold.
func (u *Universe) IsBorder(systemID int32) bool {
	return u.borders[systemID]
}

// SystemIDs returns all system ids in ascending order. The returned slice is
// shared and must not be modified.
func (u *Universe) SystemIDs() []int32 {
	return u.ids
}

// Len returns the number of systems.
func (u *Universe) Len() int { return len(u.security) }

// Links returns the number of undirected stargate links.
func (u *Universe) Links() int { return u.links }

// Borders returns the number of border systems.
func (u *Universe) Borders() int { return len(u.borders) }

// WithinRadius returns all systems reachable from origin within maxJumps,
// mapped to their distance in jumps. Neighbor expansion follows the sorted
// adjacency lists, so insertion order is deterministic.
func (u *Universe) WithinRadius(origin int32, maxJumps int) map[int32]int {
	result := make(map[int32]int)
	if !u.Contains(origin) {
		return result
	}
	result[origin] = 0

	queue := []int32{origin}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		dist := result[current]
		if dist >= maxJumps {
			continue
		}
		for _, neighbor := range u.adj[current] {
			if _, visited := result[neighbor]; !visited {
				result[neighbor] = dist + 1
				queue = append(queue, neighbor)
			}
		}
	}
	return result
}
