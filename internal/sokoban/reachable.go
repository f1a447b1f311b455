package sokoban

// Reachable returns the set of cells the player can reach from the given cell
// by stepping alone, with the given boxes as obstacles. This flood fill is
// the shared primitive under the path planner, the push planner and the
// solver's region abstraction.
func Reachable(g *Grid, boxes BoxSet, from Cell) (map[Cell]bool, error) {
	if err := validateFree(g, boxes, from, "start"); err != nil {
		return nil, err
	}
	seen := make(map[Cell]bool)
	queue := []Cell{from}
	seen[from] = true
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range Dirs {
			next := c.Step(d)
			if !seen[next] && g.IsFree(next) && !boxes.Has(next) {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen, nil
}

// IsReachable reports whether the player can walk from one cell to another
// without pushing any box.
func IsReachable(g *Grid, boxes BoxSet, from, to Cell) (bool, error) {
	region, err := Reachable(g, boxes, from)
	if err != nil {
		return false, err
	}
	return region[to], nil
}

// RegionID returns the canonical representative of the connected component
// containing the given cell: its lexicographically smallest member. Two
// player positions with the same boxes and the same RegionID allow exactly
// the same future pushes, which is what lets the solver collapse them into
// one search state.
func RegionID(g *Grid, boxes BoxSet, from Cell) (Cell, error) {
	region, err := Reachable(g, boxes, from)
	if err != nil {
		return Cell{}, err
	}
	return minCell(region), nil
}

func minCell(region map[Cell]bool) Cell {
	var min Cell
	first := true
	for c := range region {
		if first || c.Less(min) {
			min = c
			first = false
		}
	}
	return min
}

// stepDistances runs the same flood fill but records the step distance to
// every reachable cell. Used by the planners to cost repositioning walks
// without a second search. Assumes from is already validated.
func stepDistances(g *Grid, boxes BoxSet, from Cell) map[Cell]int {
	dist := map[Cell]int{from: 0}
	queue := []Cell{from}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range Dirs {
			next := c.Step(d)
			if _, ok := dist[next]; !ok && g.IsFree(next) && !boxes.Has(next) {
				dist[next] = dist[c] + 1
				queue = append(queue, next)
			}
		}
	}
	return dist
}

func validateFree(g *Grid, boxes BoxSet, c Cell, what string) error {
	if !g.IsFree(c) {
		return invalidRequestf("%s cell %v is not floor", what, c)
	}
	if boxes.Has(c) {
		return invalidRequestf("%s cell %v holds a box", what, c)
	}
	return nil
}
