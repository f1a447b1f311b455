package sokoban

import (
	"container/heap"
	"context"
)

// solveNode is one state of the full-level search. The player cell is the
// concrete position after the last push; deduplication uses the region
// representative instead, so it only matters for move reconstruction.
type solveNode struct {
	boxes  BoxSet
	player Cell
	pushes int
	moves  int
	parent *solveNode
	box    Cell // cell the box was pushed from, valid when parent != nil
	dir    Dir
}

type solveQueue []*solveQueueItem

type solveQueueItem struct {
	node     *solveNode
	priority int // pushes + admissible lower bound on remaining pushes
	seq      int
}

func (q solveQueue) Len() int { return len(q) }

func (q solveQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	if q[i].node.moves != q[j].node.moves {
		return q[i].node.moves < q[j].node.moves
	}
	return q[i].seq < q[j].seq
}

func (q solveQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *solveQueue) Push(x any) { *q = append(*q, x.(*solveQueueItem)) }

func (q *solveQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// Solve searches for a complete push sequence that puts every box on a goal
// cell, returning it expanded into raw moves. The search space is the set of
// canonical (box configuration, player region) states: boxes have no
// identity and the player's exact cell within a region never changes which
// pushes are possible next. Pushes onto dead cells are never generated.
//
// States are ordered by push count plus the sum of each box's Manhattan
// distance to its nearest goal, an admissible bound, so the first solution
// found uses a minimal number of pushes; walks between pushes follow the
// push planner's objective (fewest moves for the chosen pushes).
//
// The search is exponential in the number of boxes and practical only for
// small instances, roughly five boxes or fewer. Long runs are stopped through
// ctx: cancellation is checked at every dequeued state and reported as
// ErrCancelled, distinct from ErrNoSolution which means the whole reachable
// state space was exhausted.
func Solve(ctx context.Context, g *Grid, start State) (Plan, error) {
	if err := start.Validate(g); err != nil {
		return nil, err
	}
	if start.Solved(g) {
		return Plan{}, nil
	}
	for _, b := range start.Boxes.Cells() {
		if g.IsDead(b) {
			return nil, ErrNoSolution
		}
	}

	root := &solveNode{boxes: start.Boxes, player: start.Player}
	queue := solveQueue{{node: root, priority: pushLowerBound(g, start.Boxes)}}
	seq := 1
	visited := make(map[string]bool)

	for queue.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil, ErrCancelled
		default:
		}

		node := heap.Pop(&queue).(*solveQueueItem).node

		if solvedBoxes(g, node.boxes) {
			return expandSolution(g, start, node)
		}

		dist := stepDistances(g, node.boxes, node.player)
		key := node.boxes.Key() + minDistCell(dist).String()
		if visited[key] {
			continue
		}
		visited[key] = true

		for _, box := range node.boxes.Cells() {
			for _, d := range Dirs {
				boxDest := box.Step(d)
				if !g.IsFree(boxDest) || node.boxes.Has(boxDest) || g.IsDead(boxDest) {
					continue
				}
				walk, ok := dist[box.Step(d.Opposite())]
				if !ok {
					continue
				}
				next := &solveNode{
					boxes:  node.boxes.Moved(box, boxDest),
					player: box,
					pushes: node.pushes + 1,
					moves:  node.moves + walk + 1,
					parent: node,
					box:    box,
					dir:    d,
				}
				heap.Push(&queue, &solveQueueItem{
					node:     next,
					priority: next.pushes + pushLowerBound(g, next.boxes),
					seq:      seq,
				})
				seq++
			}
		}
	}
	return nil, ErrNoSolution
}

func solvedBoxes(g *Grid, boxes BoxSet) bool {
	for _, goal := range g.Goals() {
		if !boxes.Has(goal) {
			return false
		}
	}
	return true
}

// pushLowerBound sums, over all boxes not yet on a goal, the Manhattan
// distance to the nearest goal. Obstacles are ignored, so the bound never
// overestimates the remaining pushes.
func pushLowerBound(g *Grid, boxes BoxSet) int {
	total := 0
	for _, b := range boxes.Cells() {
		if g.IsGoal(b) {
			continue
		}
		best := -1
		for _, goal := range g.Goals() {
			if d := b.Manhattan(goal); best < 0 || d < best {
				best = d
			}
		}
		if best > 0 {
			total += best
		}
	}
	return total
}

// expandSolution replays the push chain from the initial state, planning the
// interleaved walks with the path planner, and returns the raw move plan.
func expandSolution(g *Grid, start State, node *solveNode) (Plan, error) {
	var chain []*solveNode
	for n := node; n.parent != nil; n = n.parent {
		chain = append(chain, n)
	}

	var plan Plan
	state := start
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		walk, err := PlanPath(g, state.Boxes, state.Player, n.box.Step(n.dir.Opposite()))
		if err != nil {
			// The search only generates pushes whose side is reachable.
			return nil, err
		}
		var applyErr error
		if state, applyErr = state.ApplyPlan(g, walk); applyErr != nil {
			return nil, applyErr
		}
		push := Move{Dir: n.dir, Push: true}
		if state, applyErr = state.Apply(g, push); applyErr != nil {
			return nil, applyErr
		}
		plan = append(plan, walk...)
		plan = append(plan, push)
	}
	return plan, nil
}
