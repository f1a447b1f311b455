package sokoban

// Dead-cell analysis: a floor cell is dead when no sequence of pulls starting
// from a box on some goal can ever reach it walking backward. A box pushed
// onto such a cell can never be brought to a goal again, so the solver never
// generates those pushes and the UI can highlight the cells. The analysis
// looks at static geometry only; other boxes blocking a path are the job of
// the per-configuration planners.

// IsDead reports whether a box on the given cell can never reach any goal,
// regardless of the other boxes. Walls count as dead.
func (g *Grid) IsDead(c Cell) bool {
	if !g.IsFree(c) {
		return true
	}
	g.deadOnce.Do(g.computeDeadCells)
	return g.dead[g.index(c)]
}

// DeadCells returns all dead floor cells in canonical order. The result is
// computed once per grid and cached; it depends only on walls and goals,
// never on the current box configuration.
func (g *Grid) DeadCells() []Cell {
	g.deadOnce.Do(g.computeDeadCells)
	var cells []Cell
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			c := At(row, col)
			if g.dead[g.index(c)] {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// computeDeadCells runs a breadth-first search backward from every goal at
// once. A cell next to a frontier cell is alive when a real pull onto it is
// geometrically possible: the cell itself and the cell one further in the
// same direction (where the pulling player stands) are both floor.
func (g *Grid) computeDeadCells() {
	alive := make([]bool, g.width*g.height)
	queue := make([]Cell, 0, len(g.goalCells))
	for _, goal := range g.goalCells {
		alive[g.index(goal)] = true
		queue = append(queue, goal)
	}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range Dirs {
			next := c.Step(d)
			if !g.IsFree(next) || alive[g.index(next)] {
				continue
			}
			if !g.IsFree(next.Step(d)) {
				continue
			}
			alive[g.index(next)] = true
			queue = append(queue, next)
		}
	}

	g.dead = make([]bool, g.width*g.height)
	for i := range g.dead {
		c := At(i/g.width, i%g.width)
		g.dead[i] = g.IsFree(c) && !alive[i]
	}
}
