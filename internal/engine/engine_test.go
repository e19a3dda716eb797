package engine

import (
	"testing"

	"eve-navigator/internal/dataset"
)

// testData assembles a validated Data from bare systems and links.
func testData(t *testing.T, systems []dataset.System, links []dataset.Link) *dataset.Data {
	t.Helper()
	a := &dataset.Artifact{
		SchemaVersion: dataset.SchemaVersion,
		Systems:       systems,
		Links:         links,
	}
	data, err := a.Build()
	if err != nil {
		t.Fatalf("build test data: %v", err)
	}
	return data
}

func sys(id int32, name string, security float64) dataset.System {
	return dataset.System{ID: id, Name: name, Security: security, RegionID: 1, ConstellationID: 1}
}

func link(a, b int32) dataset.Link { return dataset.Link{A: a, B: b} }

// lineNavigator is 1(0.9)-2(0.6)-3(0.3)-4(-0.2) plus isolated 5(1.0).
func lineNavigator(t *testing.T) *Navigator {
	data := testData(t,
		[]dataset.System{
			sys(1, "Alpha", 0.9), sys(2, "Beta", 0.6), sys(3, "Gamma", 0.3),
			sys(4, "Delta", -0.2), sys(5, "Epsilon", 1.0),
		},
		[]dataset.Link{link(1, 2), link(2, 3), link(3, 4)},
	)
	return NewNavigator(data)
}

// diamondNavigator has a 2-jump low-sec path 1-2-4 and a 3-jump high-sec
// path 1-3-5-4 between systems 1 and 4.
func diamondNavigator(t *testing.T) *Navigator {
	data := testData(t,
		[]dataset.System{
			sys(1, "Origin", 0.9), sys(2, "Shortcut", 0.3), sys(3, "SafeOne", 0.6),
			sys(4, "Target", 0.9), sys(5, "SafeTwo", 0.7),
		},
		[]dataset.Link{link(1, 2), link(2, 4), link(1, 3), link(3, 5), link(5, 4)},
	)
	return NewNavigator(data)
}

func routeIDs(r *RouteResult) []int32 {
	ids := make([]int32, len(r.Systems))
	for i, s := range r.Systems {
		ids[i] = s.ID
	}
	return ids
}

func equalIDs(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
