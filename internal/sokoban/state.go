package sokoban

// State is the dynamic part of a level: the player cell and the box
// configuration. Planners treat a State as a read-only snapshot and return
// Plans for the caller to apply; only the caller's own copies are mutated.
type State struct {
	Player Cell
	Boxes  BoxSet
}

// NewState creates a state and validates it against the grid.
func NewState(g *Grid, player Cell, boxes BoxSet) (State, error) {
	s := State{Player: player, Boxes: boxes}
	if err := s.Validate(g); err != nil {
		return State{}, err
	}
	return s, nil
}

// Validate checks the state invariants: the player and every box occupy
// distinct in-bounds floor cells.
func (s State) Validate(g *Grid) error {
	if !g.IsFree(s.Player) {
		return invalidRequestf("player cell %v is not floor", s.Player)
	}
	for _, b := range s.Boxes.Cells() {
		if !g.IsFree(b) {
			return invalidRequestf("box cell %v is not floor", b)
		}
	}
	if s.Boxes.Has(s.Player) {
		return invalidRequestf("player cell %v holds a box", s.Player)
	}
	return nil
}

// IsFree reports whether a cell is floor and not occupied by a box.
func (s State) IsFree(g *Grid, c Cell) bool {
	return g.IsFree(c) && !s.Boxes.Has(c)
}

// CanMove reports whether the move is legal in this state. A step needs the
// adjacent cell free; a push additionally needs a box there and the cell
// beyond it free.
func (s State) CanMove(g *Grid, m Move) bool {
	next := s.Player.Step(m.Dir)
	if s.IsFree(g, next) {
		return true
	}
	return m.Push && s.Boxes.Has(next) && s.IsFree(g, next.Step(m.Dir))
}

// Apply returns the state after performing the move, or an error if the move
// is illegal. The receiver is unchanged.
func (s State) Apply(g *Grid, m Move) (State, error) {
	if !s.CanMove(g, m) {
		return State{}, invalidRequestf("illegal move %v from %v", m.Dir, s.Player)
	}
	next := s.Player.Step(m.Dir)
	out := State{Player: next, Boxes: s.Boxes}
	if s.Boxes.Has(next) {
		out.Boxes = s.Boxes.Moved(next, next.Step(m.Dir))
	}
	return out, nil
}

// MoveDir performs a directional move the way a player would: stepping when
// the adjacent cell is free, pushing when it holds a pushable box. It returns
// the resulting state together with the move that actually happened, with the
// Push flag reflecting whether a box moved.
func (s State) MoveDir(g *Grid, d Dir) (State, Move, error) {
	m := Move{Dir: d, Push: s.Boxes.Has(s.Player.Step(d))}
	out, err := s.Apply(g, m)
	if err != nil {
		return State{}, Move{}, err
	}
	return out, m, nil
}

// ApplyPlan returns the state after performing all moves of a plan in order.
func (s State) ApplyPlan(g *Grid, p Plan) (State, error) {
	out := s
	var err error
	for _, m := range p {
		if out, err = out.Apply(g, m); err != nil {
			return State{}, err
		}
	}
	return out, nil
}

// Undo returns the state before the given move was applied: the player moves
// back one cell and, if the move was a push, the box is pulled back with it.
func (s State) Undo(g *Grid, m Move) State {
	prev := s.Player.Step(m.Dir.Opposite())
	out := State{Player: prev, Boxes: s.Boxes}
	if m.Push {
		out.Boxes = s.Boxes.Moved(s.Player.Step(m.Dir), s.Player)
	}
	return out
}

// Solved reports whether every goal cell holds a box.
func (s State) Solved(g *Grid) bool {
	for _, goal := range g.Goals() {
		if !s.Boxes.Has(goal) {
			return false
		}
	}
	return true
}
