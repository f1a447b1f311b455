package sokoban_test

import (
	"errors"
	"testing"

	"github.com/t-kuester/sokoban/internal/sokoban"
)

func TestGridKinds(t *testing.T) {
	g, _ := mustLevel(t, scenarioLevel)

	tests := []struct {
		cell sokoban.Cell
		want sokoban.CellKind
	}{
		{sokoban.At(0, 0), sokoban.Wall},
		{sokoban.At(1, 2), sokoban.Goal},
		{sokoban.At(3, 1), sokoban.Goal},
		{sokoban.At(3, 2), sokoban.Floor},
		{sokoban.At(-1, 0), sokoban.Wall},
		{sokoban.At(0, 99), sokoban.Wall},
	}
	for _, tt := range tests {
		if got := g.Kind(tt.cell); got != tt.want {
			t.Errorf("Kind(%v) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}

func TestGridGoalsSorted(t *testing.T) {
	g, _ := mustLevel(t, scenarioLevel)
	goals := g.Goals()
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals, got %v", goals)
	}
	for i := 1; i < len(goals); i++ {
		if !goals[i-1].Less(goals[i]) {
			t.Errorf("Goals() not sorted: %v", goals)
		}
	}
}

func TestNewGridValidation(t *testing.T) {
	var invalid *sokoban.InvalidRequestError

	_, err := sokoban.NewGrid(0, 3, nil, nil)
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidRequestError for zero width, got %v", err)
	}
	_, err = sokoban.NewGrid(3, 3, []sokoban.Cell{sokoban.At(5, 5)}, nil)
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidRequestError for out-of-bounds wall, got %v", err)
	}
	_, err = sokoban.NewGrid(3, 3, []sokoban.Cell{sokoban.At(1, 1)}, []sokoban.Cell{sokoban.At(1, 1)})
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidRequestError for goal on wall, got %v", err)
	}
}
