package sokoban_test

import (
	"errors"
	"testing"

	"github.com/t-kuester/sokoban/internal/sokoban"
)

func TestReachableReflexive(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)

	region, err := sokoban.Reachable(g, s.Boxes, s.Player)
	if err != nil {
		t.Fatalf("Reachable() failed: %v", err)
	}
	if !region[s.Player] {
		t.Errorf("region does not contain the start cell %v", s.Player)
	}
}

func TestReachableExcludesWallsAndBoxes(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)

	region, err := sokoban.Reachable(g, s.Boxes, s.Player)
	if err != nil {
		t.Fatalf("Reachable() failed: %v", err)
	}
	for c := range region {
		if g.Kind(c) == sokoban.Wall {
			t.Errorf("region contains wall cell %v", c)
		}
		if s.Boxes.Has(c) {
			t.Errorf("region contains box cell %v", c)
		}
	}
}

func TestReachableSymmetric(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)

	region, err := sokoban.Reachable(g, s.Boxes, s.Player)
	if err != nil {
		t.Fatalf("Reachable() failed: %v", err)
	}
	for c := range region {
		back, err := sokoban.Reachable(g, s.Boxes, c)
		if err != nil {
			t.Fatalf("Reachable(%v) failed: %v", c, err)
		}
		if !back[s.Player] {
			t.Errorf("symmetry broken: %v reaches %v but not back", s.Player, c)
		}
	}
}

func TestRegionIDCanonical(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)

	region, err := sokoban.Reachable(g, s.Boxes, s.Player)
	if err != nil {
		t.Fatalf("Reachable() failed: %v", err)
	}

	want, err := sokoban.RegionID(g, s.Boxes, s.Player)
	if err != nil {
		t.Fatalf("RegionID() failed: %v", err)
	}
	for c := range region {
		got, err := sokoban.RegionID(g, s.Boxes, c)
		if err != nil {
			t.Fatalf("RegionID(%v) failed: %v", c, err)
		}
		if got != want {
			t.Errorf("RegionID(%v) = %v, want %v for every cell of one region", c, got, want)
		}
		if c.Less(want) {
			t.Errorf("representative %v is not minimal, region contains %v", want, c)
		}
	}
}

func TestReachableSplitRegions(t *testing.T) {
	// The box in the corridor splits the floor into two regions.
	g, s := mustLevel(t, `
#####
#@$.#
#####
`)
	ok, err := sokoban.IsReachable(g, s.Boxes, s.Player, sokoban.At(1, 3))
	if err != nil {
		t.Fatalf("IsReachable() failed: %v", err)
	}
	if ok {
		t.Error("cell behind the box should be unreachable")
	}
}

func TestReachableInvalidStart(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)

	if _, err := sokoban.Reachable(g, s.Boxes, sokoban.At(0, 0)); err == nil {
		t.Error("expected error for wall start cell")
	}
	var invalid *sokoban.InvalidRequestError
	_, err := sokoban.Reachable(g, s.Boxes, s.Boxes.Cells()[0])
	if err == nil {
		t.Fatal("expected error for box start cell")
	}
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidRequestError, got %v", err)
	}
}
