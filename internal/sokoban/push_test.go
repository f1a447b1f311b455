package sokoban_test

import (
	"errors"
	"testing"

	"github.com/t-kuester/sokoban/internal/sokoban"
)

func TestPlanPushAcrossRoom(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)

	// The player has to walk around through the lower room to get behind
	// the box before pushing it left twice.
	box := sokoban.At(4, 3)
	dest := sokoban.At(4, 1)
	plan, err := sokoban.PlanPush(g, s.Boxes, s.Player, box, dest)
	if err != nil {
		t.Fatalf("PlanPush() failed: %v", err)
	}
	if plan.Pushes() != 2 {
		t.Errorf("expected 2 pushes, got %d (%s)", plan.Pushes(), plan.LURD())
	}

	end := applyAll(t, g, s, plan)
	if !end.Boxes.Has(dest) {
		t.Errorf("box did not end on %v, boxes: %v", dest, end.Boxes.Cells())
	}
	// Every other box untouched.
	for _, b := range s.Boxes.Cells() {
		if b == box {
			continue
		}
		if !end.Boxes.Has(b) {
			t.Errorf("unrelated box moved away from %v", b)
		}
	}
}

func TestPlanPushSameCell(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)

	box := sokoban.At(4, 3)
	plan, err := sokoban.PlanPush(g, s.Boxes, s.Player, box, box)
	if err != nil {
		t.Fatalf("PlanPush() to current cell failed: %v", err)
	}
	if len(plan) != 0 {
		t.Errorf("expected empty plan, got %d moves", len(plan))
	}
}

func TestPlanPushReapproach(t *testing.T) {
	// Any route to the goal corner changes push direction once, so the
	// player has to walk around the box between pushes.
	g, s := mustLevel(t, `
#####
#   #
#@$ #
#   #
#  .#
#####
`)
	box := sokoban.At(2, 2)
	dest := sokoban.At(4, 3)
	plan, err := sokoban.PlanPush(g, s.Boxes, s.Player, box, dest)
	if err != nil {
		t.Fatalf("PlanPush() failed: %v", err)
	}
	if plan.Pushes() != 3 {
		t.Errorf("expected 3 pushes, got %d (%s)", plan.Pushes(), plan.LURD())
	}
	if plan.Steps() == 0 {
		t.Errorf("expected repositioning steps between pushes (%s)", plan.LURD())
	}

	end := applyAll(t, g, s, plan)
	if !end.Boxes.Has(dest) {
		t.Errorf("box did not end on %v", dest)
	}
}

func TestPlanPushMinimizesPushes(t *testing.T) {
	// A straight line of two pushes reaches the destination; any detour
	// through the open room costs more pushes.
	g, s := mustLevel(t, `
######
#@$  #
#    #
# .  #
######
`)
	box := sokoban.At(1, 2)
	dest := sokoban.At(1, 4)
	plan, err := sokoban.PlanPush(g, s.Boxes, s.Player, box, dest)
	if err != nil {
		t.Fatalf("PlanPush() failed: %v", err)
	}
	if plan.Pushes() != 2 {
		t.Errorf("expected 2 pushes, got %d (%s)", plan.Pushes(), plan.LURD())
	}
}

func TestPlanPushNoPath(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)
	box := sokoban.At(4, 3)

	tests := []struct {
		name string
		dest sokoban.Cell
	}{
		{"wall destination", sokoban.At(0, 0)},
		{"other box", sokoban.At(3, 1)},
		{"unreachable pocket", sokoban.At(6, 4)},
		// Reaching the upper goal needs the box on (3,1) out of the way,
		// and the push planner never moves other boxes.
		{"behind another box", sokoban.At(1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sokoban.PlanPush(g, s.Boxes, s.Player, box, tt.dest)
			if !errors.Is(err, sokoban.ErrNoPath) {
				t.Errorf("expected ErrNoPath, got %v", err)
			}
		})
	}
}

func TestPlanPushInvalidRequest(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)

	var invalid *sokoban.InvalidRequestError
	_, err := sokoban.PlanPush(g, s.Boxes, s.Player, sokoban.At(2, 2), sokoban.At(1, 2))
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidRequestError for empty box cell, got %v", err)
	}
	_, err = sokoban.PlanPush(g, s.Boxes, s.Player, sokoban.At(4, 3), sokoban.At(99, 99))
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidRequestError for out-of-bounds destination, got %v", err)
	}
}
