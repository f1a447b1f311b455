package sokoban_test

import (
	"errors"
	"testing"

	"github.com/t-kuester/sokoban/internal/sokoban"
)

func TestStateValidate(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)

	if err := s.Validate(g); err != nil {
		t.Fatalf("start state invalid: %v", err)
	}

	var invalid *sokoban.InvalidRequestError
	bad := sokoban.State{Player: sokoban.At(0, 0), Boxes: s.Boxes}
	if err := bad.Validate(g); !errors.As(err, &invalid) {
		t.Errorf("expected InvalidRequestError for player on wall, got %v", err)
	}
	bad = sokoban.State{Player: sokoban.At(4, 3), Boxes: s.Boxes}
	if err := bad.Validate(g); !errors.As(err, &invalid) {
		t.Errorf("expected InvalidRequestError for player on box, got %v", err)
	}
	bad = sokoban.State{Player: s.Player, Boxes: s.Boxes.With(sokoban.At(0, 0))}
	if err := bad.Validate(g); !errors.As(err, &invalid) {
		t.Errorf("expected InvalidRequestError for box on wall, got %v", err)
	}
}

func TestStateApplyStep(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)

	next, err := s.Apply(g, sokoban.Move{Dir: sokoban.DirRight})
	if err != nil {
		t.Fatalf("Apply(step right) failed: %v", err)
	}
	if next.Player != sokoban.At(3, 3) {
		t.Errorf("player at %v, want (3,3)", next.Player)
	}
	if !next.Boxes.Equal(s.Boxes) {
		t.Errorf("step moved a box: %v", next.Boxes.Cells())
	}
	if s.Player != sokoban.At(3, 2) {
		t.Error("Apply mutated the receiver")
	}
}

func TestStateApplyPush(t *testing.T) {
	// Walk below the box, then push it left.
	g, s := mustLevel(t, scenarioLevel)

	s, err := s.ApplyPlan(g, sokoban.Plan{
		{Dir: sokoban.DirRight},
		{Dir: sokoban.DirRight},
		{Dir: sokoban.DirDown},
		{Dir: sokoban.DirLeft, Push: true},
	})
	if err != nil {
		t.Fatalf("ApplyPlan failed: %v", err)
	}
	if s.Player != sokoban.At(4, 3) {
		t.Errorf("player at %v, want (4,3)", s.Player)
	}
	if !s.Boxes.Has(sokoban.At(4, 2)) || s.Boxes.Has(sokoban.At(4, 3)) {
		t.Errorf("box not pushed to (4,2): %v", s.Boxes.Cells())
	}
}

func TestStateApplyIllegal(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)

	var invalid *sokoban.InvalidRequestError
	// Up from (3,2) is floor (2,2), fine; up twice hits the wall row.
	s2, err := s.Apply(g, sokoban.Move{Dir: sokoban.DirUp})
	if err != nil {
		t.Fatalf("Apply(up) failed: %v", err)
	}
	s3, err := s2.Apply(g, sokoban.Move{Dir: sokoban.DirRight})
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidRequestError stepping into wall, got %v (state %v)", err, s3)
	}

	// Pushing the box left from (3,2) fails: a box sits on (3,1) and the
	// cell beyond it is a wall.
	_, err = s.Apply(g, sokoban.Move{Dir: sokoban.DirLeft, Push: true})
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidRequestError for blocked push, got %v", err)
	}
}

func TestStateMoveDir(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)

	// Step: nothing adjacent to push.
	_, m, err := s.MoveDir(g, sokoban.DirRight)
	if err != nil {
		t.Fatalf("MoveDir(right) failed: %v", err)
	}
	if m.Push {
		t.Error("step reported as push")
	}

	// Push: walk around and below the box first.
	s2, err := s.ApplyPlan(g, sokoban.Plan{
		{Dir: sokoban.DirRight},
		{Dir: sokoban.DirRight},
		{Dir: sokoban.DirDown},
	})
	if err != nil {
		t.Fatalf("ApplyPlan failed: %v", err)
	}
	next, m, err := s2.MoveDir(g, sokoban.DirLeft)
	if err != nil {
		t.Fatalf("MoveDir(left) failed: %v", err)
	}
	if !m.Push {
		t.Error("push reported as step")
	}
	if !next.Boxes.Has(sokoban.At(4, 2)) {
		t.Errorf("box not moved: %v", next.Boxes.Cells())
	}
}

func TestStateUndo(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)

	plan := sokoban.Plan{
		{Dir: sokoban.DirRight},
		{Dir: sokoban.DirRight},
		{Dir: sokoban.DirDown},
		{Dir: sokoban.DirLeft, Push: true},
	}
	cur := s
	var moves []sokoban.Move
	for _, m := range plan {
		next, err := cur.Apply(g, m)
		if err != nil {
			t.Fatalf("Apply(%v) failed: %v", m, err)
		}
		cur = next
		moves = append(moves, m)
	}
	for i := len(moves) - 1; i >= 0; i-- {
		cur = cur.Undo(g, moves[i])
	}
	if cur.Player != s.Player || !cur.Boxes.Equal(s.Boxes) {
		t.Errorf("undo did not restore the start: %v vs %v", cur, s)
	}
}

func TestStateSolved(t *testing.T) {
	g, s := mustLevel(t, scenarioLevel)
	if s.Solved(g) {
		t.Error("start state reported solved")
	}
	done := sokoban.State{
		Player: sokoban.At(3, 2),
		Boxes:  sokoban.NewBoxSet(sokoban.At(1, 2), sokoban.At(3, 1)),
	}
	if !done.Solved(g) {
		t.Error("all boxes on goals not reported solved")
	}
}
