package sokoban

// PlanPath finds a shortest walk for the player from one cell to another
// using step moves only, never pushing a box. Ties between equally short
// paths are broken by the fixed direction order, so identical inputs always
// produce the identical plan. Returns ErrNoPath when the destination lies
// outside the player's current region; from == to succeeds with the empty
// plan. A destination on a wall or a box is an InvalidRequestError, not
// ErrNoPath: walking onto it could never succeed in any box configuration,
// so it is rejected as a malformed request rather than a failed search.
func PlanPath(g *Grid, boxes BoxSet, from, to Cell) (Plan, error) {
	if err := validateFree(g, boxes, from, "start"); err != nil {
		return nil, err
	}
	if err := validateFree(g, boxes, to, "destination"); err != nil {
		return nil, err
	}
	if from == to {
		return Plan{}, nil
	}

	// BFS recording the move that first reached each cell.
	cameBy := map[Cell]Dir{}
	seen := map[Cell]bool{from: true}
	queue := []Cell{from}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range Dirs {
			next := c.Step(d)
			if seen[next] || !g.IsFree(next) || boxes.Has(next) {
				continue
			}
			seen[next] = true
			cameBy[next] = d
			if next == to {
				return reconstructWalk(cameBy, from, to), nil
			}
			queue = append(queue, next)
		}
	}
	return nil, ErrNoPath
}

// reconstructWalk rebuilds the move sequence by following the recorded
// arrival directions backward from the destination.
func reconstructWalk(cameBy map[Cell]Dir, from, to Cell) Plan {
	var reversed []Dir
	for c := to; c != from; {
		d := cameBy[c]
		reversed = append(reversed, d)
		c = c.Step(d.Opposite())
	}
	plan := make(Plan, len(reversed))
	for i, d := range reversed {
		plan[len(reversed)-1-i] = Move{Dir: d}
	}
	return plan
}
