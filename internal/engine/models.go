package engine

import (
	"strconv"
	"strings"

	"eve-navigator/internal/dataset"
	"eve-navigator/internal/graph"
)

const (
	// DefaultMaxResults is the default number of results returned when no
	// limit is specified.
	DefaultMaxResults = 50
	// ctxCheckInterval is how many queue pops pass between deadline checks.
	ctxCheckInterval = 64
)

// Navigator answers all read-only queries over a loaded dataset. It holds no
// mutable state; every method is a pure function of (data, parameters) and is
// safe to call from any number of goroutines.
type Navigator struct {
	Data *dataset.Data
}

// NewNavigator creates a Navigator over the given immutable dataset.
func NewNavigator(data *dataset.Data) *Navigator {
	return &Navigator{Data: data}
}

// ThreatLevel grades the security composition of a route.
type ThreatLevel string

const (
	ThreatMinimal  ThreatLevel = "MINIMAL"
	ThreatElevated ThreatLevel = "ELEVATED"
	ThreatHigh     ThreatLevel = "HIGH"
	ThreatCritical ThreatLevel = "CRITICAL"
)

// Thresholds for grading a route's security composition.
const (
	criticalNullCount = 5
	highLowCount      = 10
)

// SecuritySummary counts route systems per security bucket.
type SecuritySummary struct {
	High   int         `json:"high"`
	Low    int         `json:"low"`
	Null   int         `json:"null"`
	Threat ThreatLevel `json:"threat_level"`
}

func summarize(u *graph.Universe, ids []int32) SecuritySummary {
	var s SecuritySummary
	for _, id := range ids {
		sec := u.Security(id)
		switch {
		case sec >= graph.HighSecThreshold:
			s.High++
		case sec <= graph.NullSecThreshold:
			s.Null++
		default:
			s.Low++
		}
	}
	switch {
	case s.Null >= criticalNullCount:
		s.Threat = ThreatCritical
	case s.Null >= 1 || s.Low >= highLowCount:
		s.Threat = ThreatHigh
	case s.Low >= 1:
		s.Threat = ThreatElevated
	default:
		s.Threat = ThreatMinimal
	}
	return s
}

// SystemRef is the system projection carried in every response.
type SystemRef struct {
	ID              int32   `json:"id"`
	Name            string  `json:"name"`
	Security        float64 `json:"security"`
	SecurityClass   string  `json:"security_class"`
	RegionID        int32   `json:"region_id"`
	ConstellationID int32   `json:"constellation_id"`
	Border          bool    `json:"border"`
}

// RankedSystem is a SystemRef at a jump distance from some origin.
type RankedSystem struct {
	SystemRef
	Jumps int `json:"jumps"`
}

// RouteResult is the outcome of a route query. It is derived and ephemeral;
// nothing about it is ever persisted.
type RouteResult struct {
	Origin      SystemRef       `json:"origin"`
	Destination SystemRef       `json:"destination"`
	Mode        Mode            `json:"mode"`
	Jumps       int             `json:"jumps"`
	Cost        float64         `json:"cost"`
	Systems     []SystemRef     `json:"systems"`
	Security    SecuritySummary `json:"security"`
}

// BordersResult lists border systems reachable from an origin.
type BordersResult struct {
	Origin   SystemRef      `json:"origin"`
	MaxJumps int            `json:"max_jumps"`
	Borders  []RankedSystem `json:"borders"`
}

// NearestResult lists the closest systems matching a predicate.
type NearestResult struct {
	Origin    SystemRef      `json:"origin"`
	Predicate string         `json:"predicate"`
	Matches   []RankedSystem `json:"matches"`
}

// LoopResult is a closed tour through border systems.
type LoopResult struct {
	Origin         SystemRef       `json:"origin"`
	TargetJumps    int             `json:"target_jumps"`
	Jumps          int             `json:"jumps"`
	BordersVisited int             `json:"borders_visited"`
	Systems        []SystemRef     `json:"systems"`
	Security       SecuritySummary `json:"security"`
}

// AnalyzeResult reports chokepoints and the threat summary for a route.
type AnalyzeResult struct {
	Origin      SystemRef       `json:"origin"`
	Destination SystemRef       `json:"destination"`
	Jumps       int             `json:"jumps"`
	Chokepoints []SystemRef     `json:"chokepoints"`
	Security    SecuritySummary `json:"security"`
}

// SystemDetail is the enriched projection returned by the systems operation.
type SystemDetail struct {
	SystemRef
	RegionName        string `json:"region_name,omitempty"`
	ConstellationName string `json:"constellation_name,omitempty"`
	Neighbors         int    `json:"neighbors"`
}

func securityClass(sec float64) string {
	switch {
	case sec >= graph.HighSecThreshold:
		return "high"
	case sec <= graph.NullSecThreshold:
		return "null"
	default:
		return "low"
	}
}

func (n *Navigator) systemRef(id int32) SystemRef {
	u := n.Data.Universe
	ref := SystemRef{
		ID:              id,
		Security:        u.Security(id),
		SecurityClass:   securityClass(u.Security(id)),
		RegionID:        u.Region(id),
		ConstellationID: u.Constellation(id),
		Border:          u.IsBorder(id),
	}
	if sys, ok := n.Data.Systems[id]; ok {
		ref.Name = sys.Name
	}
	return ref
}

func (n *Navigator) systemRefs(ids []int32) []SystemRef {
	refs := make([]SystemRef, len(ids))
	for i, id := range ids {
		refs[i] = n.systemRef(id)
	}
	return refs
}

// ResolveSystem maps a numeric id or a case-insensitive system name onto a
// system id. Both the HTTP surface and the CLI resolve through here, so the
// two cannot drift.
func (n *Navigator) ResolveSystem(ref string) (int32, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return 0, &UnknownSystemError{Ref: ref}
	}
	if id64, err := strconv.ParseInt(trimmed, 10, 32); err == nil {
		id := int32(id64)
		if n.Data.Universe.Contains(id) {
			return id, nil
		}
		return 0, &UnknownSystemError{Ref: trimmed}
	}
	if id, ok := n.Data.SystemByName[strings.ToLower(trimmed)]; ok {
		return id, nil
	}
	return 0, &UnknownSystemError{Ref: trimmed}
}

// ResolveSystems maps a list of refs, failing on the first unknown one.
func (n *Navigator) ResolveSystems(refs []string) ([]int32, error) {
	ids := make([]int32, 0, len(refs))
	for _, ref := range refs {
		id, err := n.ResolveSystem(ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (n *Navigator) requireSystem(id int32) error {
	if !n.Data.Universe.Contains(id) {
		return &UnknownSystemError{Ref: strconv.FormatInt(int64(id), 10)}
	}
	return nil
}

// avoidSet validates the avoid list and materializes it as a set. Avoided ids
// are removed from the search space entirely; avoiding an endpoint is a
// contradiction and fails rather than being silently ignored.
func (n *Navigator) avoidSet(avoid []int32, endpoints ...int32) (map[int32]bool, error) {
	set := make(map[int32]bool, len(avoid))
	for _, id := range avoid {
		if err := n.requireSystem(id); err != nil {
			return nil, err
		}
		for _, ep := range endpoints {
			if id == ep {
				return nil, invalidQueryf("avoid list contains endpoint system %d", id)
			}
		}
		set[id] = true
	}
	return set, nil
}
