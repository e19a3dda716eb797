package engine

import (
	"context"
	"errors"
	"testing"

	"eve-navigator/internal/dataset"
)

// ringNavigator is an 8-system ring with border systems at 2, 4, 6, and 8.
func ringNavigator(t *testing.T) *Navigator {
	data := testData(t,
		[]dataset.System{
			sys(1, "RingA", 0.9), sys(2, "RingB", 0.6), sys(3, "RingC", 0.4),
			sys(4, "RingD", 0.6), sys(5, "RingE", 0.9), sys(6, "RingF", 0.6),
			sys(7, "RingG", 0.4), sys(8, "RingH", 0.6),
		},
		[]dataset.Link{
			link(1, 2), link(2, 3), link(3, 4), link(4, 5),
			link(5, 6), link(6, 7), link(7, 8), link(8, 1),
		},
	)
	return NewNavigator(data)
}

func TestLoop_RingTour(t *testing.T) {
	n := ringNavigator(t)
	r, err := n.Loop(context.Background(), 1, 8, 2, nil)
	if err != nil {
		t.Fatalf("Loop: %v", err)
	}
	if r.Jumps != 8 {
		t.Fatalf("jumps = %d, want the full ring (8)", r.Jumps)
	}
	if r.BordersVisited < 2 {
		t.Fatalf("borders visited = %d, want >= 2", r.BordersVisited)
	}

	ids := make([]int32, len(r.Systems))
	for i, s := range r.Systems {
		ids[i] = s.ID
	}
	if ids[0] != 1 || ids[len(ids)-1] != 1 {
		t.Fatalf("tour must start and end at origin, got %v", ids)
	}
	seen := make(map[int32]bool)
	for _, id := range ids[:len(ids)-1] {
		if seen[id] {
			t.Fatalf("system %d repeated in tour %v", id, ids)
		}
		seen[id] = true
	}
}

func TestLoop_Deterministic(t *testing.T) {
	n := ringNavigator(t)
	first, err := n.Loop(context.Background(), 1, 8, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := n.Loop(context.Background(), 1, 8, 2, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(again.Systems) != len(first.Systems) || again.Jumps != first.Jumps {
			t.Fatalf("run %d differs", i)
		}
		for j := range again.Systems {
			if again.Systems[j].ID != first.Systems[j].ID {
				t.Fatalf("run %d path differs at %d", i, j)
			}
		}
	}
}

func TestLoop_InfeasibleBorderCount(t *testing.T) {
	// Only 2 border systems exist; demanding 5 within 2 jumps cannot work.
	n := ringNavigator(t)
	_, err := n.Loop(context.Background(), 1, 2, 5, nil)
	var noLoop *NoLoopError
	if !errors.As(err, &noLoop) {
		t.Fatalf("expected NoLoopError, got %v", err)
	}
}

func TestLoop_ToleranceBandEnforced(t *testing.T) {
	// The only closed tour on a ring is all 8 jumps; a target of 20 puts the
	// band at 15..25, which the ring can never satisfy.
	n := ringNavigator(t)
	_, err := n.Loop(context.Background(), 1, 20, 1, nil)
	var noLoop *NoLoopError
	if !errors.As(err, &noLoop) {
		t.Fatalf("expected NoLoopError, got %v", err)
	}
}

func TestLoop_AvoidRespected(t *testing.T) {
	n := ringNavigator(t)
	// Avoiding 5 cuts the ring; no closed tour remains.
	_, err := n.Loop(context.Background(), 1, 8, 2, []int32{5})
	var noLoop *NoLoopError
	if !errors.As(err, &noLoop) {
		t.Fatalf("expected NoLoopError, got %v", err)
	}

	// Avoiding the origin is contradictory.
	_, err = n.Loop(context.Background(), 1, 8, 2, []int32{1})
	var invalid *InvalidQueryError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidQueryError, got %v", err)
	}
}

func TestLoop_Validation(t *testing.T) {
	n := ringNavigator(t)
	if _, err := n.Loop(context.Background(), 99, 8, 2, nil); err == nil {
		t.Fatal("expected error for unknown origin")
	}
	var invalid *InvalidQueryError
	if _, err := n.Loop(context.Background(), 1, 1, 2, nil); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidQueryError for tiny target_jumps")
	}
	if _, err := n.Loop(context.Background(), 1, 8, 0, nil); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidQueryError for min_borders=0")
	}
}
