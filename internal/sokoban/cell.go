// Package sokoban provides the planning and search engine for the Sokoban
// puzzle: player path planning, box push planning, dead-cell analysis and a
// full-level solver. It contains no external dependencies (and no UI) to keep
// the planning logic pure and testable.
package sokoban

import (
	"fmt"
	"strings"
)

// Cell identifies a grid position by row and column.
// Row increases downward, Col increases to the right.
type Cell struct {
	Row int
	Col int
}

// At is a convenience constructor for Cell.
func At(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Step returns the cell one step in the given direction.
func (c Cell) Step(d Dir) Cell {
	dr, dc := d.Delta()
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// Less orders cells by row, then column. Used wherever deterministic
// iteration or a canonical representative is needed.
func (c Cell) Less(other Cell) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// Manhattan returns the Manhattan distance to another cell.
func (c Cell) Manhattan(other Cell) int {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Dir represents one of the four push/step directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// Dirs lists all directions in the fixed order used by every search in this
// package. Keeping the order fixed makes tie-breaking reproducible.
var Dirs = [4]Dir{DirUp, DirDown, DirLeft, DirRight}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the (row, col) offset for one step in this direction.
func (d Dir) Delta() (dr, dc int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return +1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, +1
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// Move is a single player action: a step into an empty cell, or a push that
// also relocates the adjacent box one cell further in the same direction.
type Move struct {
	Dir  Dir
	Push bool
}

// Plan is an ordered sequence of moves produced by a planner.
type Plan []Move

// Pushes returns the number of push moves in the plan.
func (p Plan) Pushes() int {
	n := 0
	for _, m := range p {
		if m.Push {
			n++
		}
	}
	return n
}

// Steps returns the number of non-push moves in the plan.
func (p Plan) Steps() int {
	return len(p) - p.Pushes()
}

var lurdRunes = map[Dir]rune{
	DirUp:    'u',
	DirDown:  'd',
	DirLeft:  'l',
	DirRight: 'r',
}

// LURD encodes the plan in standard Sokoban solution notation: one letter per
// move (u/d/l/r), uppercase for pushes.
func (p Plan) LURD() string {
	var sb strings.Builder
	sb.Grow(len(p))
	for _, m := range p {
		r := lurdRunes[m.Dir]
		if m.Push {
			r = r - 'a' + 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// ParseLURD decodes a plan from LURD notation.
func ParseLURD(s string) (Plan, error) {
	plan := make(Plan, 0, len(s))
	for _, r := range s {
		push := r >= 'A' && r <= 'Z'
		if push {
			r = r + 'a' - 'A'
		}
		var d Dir
		switch r {
		case 'u':
			d = DirUp
		case 'd':
			d = DirDown
		case 'l':
			d = DirLeft
		case 'r':
			d = DirRight
		default:
			return nil, fmt.Errorf("sokoban: invalid move character %q", r)
		}
		plan = append(plan, Move{Dir: d, Push: push})
	}
	return plan, nil
}
