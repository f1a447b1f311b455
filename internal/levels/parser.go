// Package levels loads Sokoban levels in the standard text format and turns
// them into the engine's grid and state values. It depends on the engine
// package but the engine does not depend on it.
package levels

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/t-kuester/sokoban/internal/sokoban"
)

// Level file symbols, standard Sokoban text format.
const (
	symWall       = '#'
	symFloor      = ' '
	symGoal       = '.'
	symBox        = '$'
	symBoxGoal    = '*'
	symPlayer     = '@'
	symPlayerGoal = '+'
	symComment    = ';'
)

// Level is one parsed level: immutable geometry plus its initial state.
type Level struct {
	Title string
	Grid  *sokoban.Grid
	Start sokoban.State
}

// ParseLevel parses the rows of a single level.
func ParseLevel(rows []string) (Level, error) {
	if len(rows) == 0 {
		return Level{}, fmt.Errorf("levels: empty level")
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	var walls, goals, boxes []sokoban.Cell
	var players []sokoban.Cell
	for r, row := range rows {
		for c, sym := range row {
			cell := sokoban.At(r, c)
			switch sym {
			case symWall:
				walls = append(walls, cell)
			case symFloor:
			case symGoal:
				goals = append(goals, cell)
			case symBox:
				boxes = append(boxes, cell)
			case symBoxGoal:
				goals = append(goals, cell)
				boxes = append(boxes, cell)
			case symPlayer:
				players = append(players, cell)
			case symPlayerGoal:
				goals = append(goals, cell)
				players = append(players, cell)
			default:
				return Level{}, fmt.Errorf("levels: invalid symbol %q at row %d col %d", sym, r, c)
			}
		}
	}

	if len(players) != 1 {
		return Level{}, fmt.Errorf("levels: level needs exactly one player, found %d", len(players))
	}
	if len(goals) == 0 {
		return Level{}, fmt.Errorf("levels: level has no goal cells")
	}
	if len(boxes) != len(goals) {
		return Level{}, fmt.Errorf("levels: %d boxes for %d goals", len(boxes), len(goals))
	}

	grid, err := sokoban.NewGrid(width, len(rows), walls, goals)
	if err != nil {
		return Level{}, fmt.Errorf("levels: %w", err)
	}
	start, err := sokoban.NewState(grid, players[0], sokoban.NewBoxSet(boxes...))
	if err != nil {
		return Level{}, fmt.Errorf("levels: %w", err)
	}
	return Level{Grid: grid, Start: start}, nil
}

// ParseLevelString parses a single level from one multi-line string.
// Convenient for tests and embedded fixtures.
func ParseLevelString(s string) (Level, error) {
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), string(symWall)) {
			rows = append(rows, strings.TrimRight(line, " \t\r"))
		}
	}
	return ParseLevel(rows)
}

// ParseCollection reads a level collection: level rows are lines whose first
// non-space character is a wall symbol, levels are separated by anything
// else. A comment line introduced by ';' names the level it follows, or the
// next one when it comes first.
func ParseCollection(r io.Reader) ([]Level, error) {
	var (
		out     []Level
		rows    []string
		pending string
	)

	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		lvl, err := ParseLevel(rows)
		if err != nil {
			return fmt.Errorf("level %d: %w", len(out)+1, err)
		}
		lvl.Title = pending
		pending = ""
		out = append(out, lvl)
		rows = nil
		return nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(trimmed, string(symWall)):
			rows = append(rows, line)
		case strings.HasPrefix(trimmed, string(symComment)):
			title := strings.TrimSpace(strings.TrimPrefix(trimmed, string(symComment)))
			if len(rows) > 0 {
				// Trailing comment names the level just read.
				pending = title
				if err := flush(); err != nil {
					return nil, err
				}
			} else if len(out) > 0 && out[len(out)-1].Title == "" {
				out[len(out)-1].Title = title
			} else {
				pending = title
			}
		default:
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("levels: no levels found")
	}
	return out, nil
}
