package engine

import (
	"context"
	"errors"
	"testing"

	"eve-navigator/internal/dataset"
)

// bridgeNavigator joins two triangles through a single corridor 3-4.
func bridgeNavigator(t *testing.T) *Navigator {
	data := testData(t,
		[]dataset.System{
			sys(1, "WestA", 0.9), sys(2, "WestB", 0.8), sys(3, "WestGate", 0.7),
			sys(4, "EastGate", 0.6), sys(5, "EastA", 0.4), sys(6, "EastB", 0.3),
		},
		[]dataset.Link{
			link(1, 2), link(2, 3), link(1, 3),
			link(3, 4),
			link(4, 5), link(5, 6), link(4, 6),
		},
	)
	return NewNavigator(data)
}

func TestAnalyze_BridgeChokepoints(t *testing.T) {
	n := bridgeNavigator(t)
	r, err := n.Route(context.Background(), 1, 5, ModeShortest, nil)
	if err != nil {
		t.Fatal(err)
	}

	analysis, err := n.Analyze(context.Background(), routeIDs(r))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	// Route is 1-3-4-5; both gate systems are the only crossing.
	if len(analysis.Chokepoints) != 2 {
		t.Fatalf("chokepoints = %+v, want the two gates", analysis.Chokepoints)
	}
	if analysis.Chokepoints[0].ID != 3 || analysis.Chokepoints[1].ID != 4 {
		t.Fatalf("chokepoints = %+v, want ids 3 and 4 in id order", analysis.Chokepoints)
	}
	if analysis.Jumps != 3 {
		t.Fatalf("jumps = %d", analysis.Jumps)
	}
}

func TestAnalyze_CycleHasNoChokepoints(t *testing.T) {
	// Square 1-2-3-4-1: removing any single intermediate leaves the long way.
	data := testData(t,
		[]dataset.System{sys(1, "SqA", 0.9), sys(2, "SqB", 0.9), sys(3, "SqC", 0.9), sys(4, "SqD", 0.9)},
		[]dataset.Link{link(1, 2), link(2, 3), link(3, 4), link(4, 1)},
	)
	n := NewNavigator(data)

	analysis, err := n.Analyze(context.Background(), []int32{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(analysis.Chokepoints) != 0 {
		t.Fatalf("chokepoints = %+v, want none on a cycle", analysis.Chokepoints)
	}
}

func TestAnalyze_ThreatSummary(t *testing.T) {
	n := bridgeNavigator(t)
	analysis, err := n.Analyze(context.Background(), []int32{3, 4, 5})
	if err != nil {
		t.Fatal(err)
	}
	if analysis.Security.High != 2 || analysis.Security.Low != 1 {
		t.Fatalf("security = %+v", analysis.Security)
	}
	if analysis.Security.Threat != ThreatElevated {
		t.Fatalf("threat = %s, want ELEVATED", analysis.Security.Threat)
	}
}

func TestAnalyze_RejectsBrokenRoutes(t *testing.T) {
	n := bridgeNavigator(t)

	var invalid *InvalidQueryError
	if _, err := n.Analyze(context.Background(), nil); !errors.As(err, &invalid) {
		t.Fatalf("empty route: got %v", err)
	}
	// 1 and 4 share no direct link.
	if _, err := n.Analyze(context.Background(), []int32{1, 4}); !errors.As(err, &invalid) {
		t.Fatalf("unlinked pair: got %v", err)
	}

	var unknown *UnknownSystemError
	if _, err := n.Analyze(context.Background(), []int32{1, 99}); !errors.As(err, &unknown) {
		t.Fatalf("unknown system: got %v", err)
	}
}

func TestAnalyze_SingleSystemRoute(t *testing.T) {
	n := bridgeNavigator(t)
	analysis, err := n.Analyze(context.Background(), []int32{1})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Jumps != 0 || len(analysis.Chokepoints) != 0 {
		t.Fatalf("analysis = %+v", analysis)
	}
}

func TestSystems_BatchLookup(t *testing.T) {
	n := lineNavigator(t)
	details, err := n.Systems([]string{"Alpha", "4", "beta"})
	if err != nil {
		t.Fatalf("Systems: %v", err)
	}
	if len(details) != 3 {
		t.Fatalf("got %d details", len(details))
	}
	if details[0].ID != 1 || details[1].ID != 4 || details[2].ID != 2 {
		t.Fatalf("details = %+v", details)
	}
	if details[0].Neighbors != 1 {
		t.Fatalf("Alpha neighbors = %d, want 1", details[0].Neighbors)
	}
	if details[1].SecurityClass != "null" {
		t.Fatalf("Delta class = %q, want null", details[1].SecurityClass)
	}

	var unknown *UnknownSystemError
	if _, err := n.Systems([]string{"Alpha", "Nowhere"}); !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSystemError, got %v", err)
	}
	var invalid *InvalidQueryError
	if _, err := n.Systems(nil); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidQueryError, got %v", err)
	}
}
