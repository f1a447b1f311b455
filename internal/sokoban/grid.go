package sokoban

import (
	"sort"
	"sync"
)

// CellKind classifies a grid position.
type CellKind uint8

const (
	Wall CellKind = iota
	Floor
	Goal
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case Wall:
		return "Wall"
	case Floor:
		return "Floor"
	case Goal:
		return "Goal"
	default:
		return "Unknown"
	}
}

// Grid is the immutable static geometry of one level: walls, floor and goal
// cells. It is created once at level load and shared read-only by every
// planning call for the level's lifetime. Cells are stored in row-major
// order: index = row*width + col.
type Grid struct {
	width     int
	height    int
	walls     []bool // true where a wall blocks the cell
	goals     []bool // true on goal cells, always paired with !walls
	goalCells []Cell // sorted, for deterministic iteration

	deadOnce sync.Once
	dead     []bool // lazily computed dead-cell flags, see deadcells.go
}

// NewGrid builds a grid of the given dimensions. Every in-bounds cell that is
// not listed in walls is floor; goals marks the subset of floor cells that
// boxes must reach.
func NewGrid(width, height int, walls, goals []Cell) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidRequestf("grid dimensions %dx%d", width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		walls:  make([]bool, width*height),
		goals:  make([]bool, width*height),
	}
	for _, c := range walls {
		if !g.InBounds(c) {
			return nil, invalidRequestf("wall cell %v outside %dx%d grid", c, width, height)
		}
		g.walls[g.index(c)] = true
	}
	for _, c := range goals {
		if !g.InBounds(c) {
			return nil, invalidRequestf("goal cell %v outside %dx%d grid", c, width, height)
		}
		if g.walls[g.index(c)] {
			return nil, invalidRequestf("goal cell %v is a wall", c)
		}
		if !g.goals[g.index(c)] {
			g.goals[g.index(c)] = true
			g.goalCells = append(g.goalCells, c)
		}
	}
	sortCells(g.goalCells)
	return g, nil
}

// index converts a cell to a flat array index. Caller checks bounds.
func (g *Grid) index(c Cell) int {
	return c.Row*g.width + c.Col
}

// Width returns the grid width in cells.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in cells.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether the cell lies within the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

// Kind classifies a cell. Out-of-bounds cells count as walls, so planners
// never need separate bounds checks.
func (g *Grid) Kind(c Cell) CellKind {
	if !g.InBounds(c) || g.walls[g.index(c)] {
		return Wall
	}
	if g.goals[g.index(c)] {
		return Goal
	}
	return Floor
}

// IsFree reports whether a box or the player may occupy the cell as far as
// static geometry is concerned (floor or goal).
func (g *Grid) IsFree(c Cell) bool {
	return g.Kind(c) != Wall
}

// IsGoal reports whether the cell is a goal.
func (g *Grid) IsGoal(c Cell) bool {
	return g.Kind(c) == Goal
}

// Goals returns the goal cells in canonical order. The returned slice is
// shared; callers must not modify it.
func (g *Grid) Goals() []Cell {
	return g.goalCells
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
}
