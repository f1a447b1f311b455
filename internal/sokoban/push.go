package sokoban

import "container/heap"

// pushNode is one state of the push search: the tracked box together with the
// concrete player cell it was pushed from. The rest of the box configuration
// is frozen for the whole search.
type pushNode struct {
	box    Cell
	player Cell
	pushes int
	moves  int
	parent *pushNode
	dir    Dir // push that produced this node, valid when parent != nil
}

// pushKey deduplicates states by the box cell and the player's region, not
// the player's exact cell: every cell of one region can attack the box from
// the same sides.
type pushKey struct {
	box    Cell
	region Cell
}

type pushQueue []*pushQueueItem

type pushQueueItem struct {
	node     *pushNode
	priority int // pushes + Manhattan lower bound to the destination
	seq      int // insertion order, breaks remaining ties deterministically
}

func (q pushQueue) Len() int { return len(q) }

func (q pushQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	if q[i].node.moves != q[j].node.moves {
		return q[i].node.moves < q[j].node.moves
	}
	return q[i].seq < q[j].seq
}

func (q pushQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *pushQueue) Push(x any) { *q = append(*q, x.(*pushQueueItem)) }

func (q *pushQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// PlanPush plans a move sequence that relocates the box at boxCell to
// destCell while leaving every other box in place. The search runs over
// macro-actions (walk to a push side, then push once), ordered by push count
// first and total moves second: a plan that re-approaches the box from a new
// side may cross the same cells many times, so raw move count alone is not
// the objective. The same ordering drives the solver's move expansion.
//
// Returns ErrNoPath when no sequence exists, including a blocked or
// box-occupied destination. Dead cells are not checked here; callers filter
// hopeless destinations with Grid.IsDead beforehand.
func PlanPush(g *Grid, boxes BoxSet, player, boxCell, destCell Cell) (Plan, error) {
	if err := validateFree(g, boxes, player, "player"); err != nil {
		return nil, err
	}
	if !boxes.Has(boxCell) {
		return nil, invalidRequestf("cell %v holds no box", boxCell)
	}
	if !g.InBounds(destCell) {
		return nil, invalidRequestf("destination cell %v outside grid", destCell)
	}
	if boxCell == destCell {
		return Plan{}, nil
	}
	others := boxes.Without(boxCell)
	if !g.IsFree(destCell) || others.Has(destCell) {
		return nil, ErrNoPath
	}

	start := &pushNode{box: boxCell, player: player}
	queue := pushQueue{{node: start, priority: boxCell.Manhattan(destCell)}}
	seq := 1
	visited := make(map[pushKey]bool)

	for queue.Len() > 0 {
		item := heap.Pop(&queue).(*pushQueueItem)
		node := item.node

		if node.box == destCell {
			return reconstructPushes(g, others, node)
		}

		obstacles := others.With(node.box)
		dist := stepDistances(g, obstacles, node.player)
		key := pushKey{box: node.box, region: minDistCell(dist)}
		if visited[key] {
			continue
		}
		visited[key] = true

		for _, d := range Dirs {
			boxDest := node.box.Step(d)
			if !g.IsFree(boxDest) || others.Has(boxDest) {
				continue
			}
			walk, ok := dist[node.box.Step(d.Opposite())]
			if !ok {
				continue
			}
			next := &pushNode{
				box:    boxDest,
				player: node.box,
				pushes: node.pushes + 1,
				moves:  node.moves + walk + 1,
				parent: node,
				dir:    d,
			}
			heap.Push(&queue, &pushQueueItem{
				node:     next,
				priority: next.pushes + boxDest.Manhattan(destCell),
				seq:      seq,
			})
			seq++
		}
	}
	return nil, ErrNoPath
}

// minDistCell returns the lexicographically smallest reachable cell, the
// region representative, straight from a distance map.
func minDistCell(dist map[Cell]int) Cell {
	var min Cell
	first := true
	for c := range dist {
		if first || c.Less(min) {
			min = c
			first = false
		}
	}
	return min
}

// reconstructPushes turns the node chain back into a concrete move sequence,
// re-deriving each repositioning walk with the path planner.
func reconstructPushes(g *Grid, others BoxSet, node *pushNode) (Plan, error) {
	var chain []*pushNode
	for n := node; n.parent != nil; n = n.parent {
		chain = append(chain, n)
	}

	var plan Plan
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		prev := n.parent
		obstacles := others.With(prev.box)
		walk, err := PlanPath(g, obstacles, prev.player, prev.box.Step(n.dir.Opposite()))
		if err != nil {
			// The search only generates reachable push sides.
			return nil, err
		}
		plan = append(plan, walk...)
		plan = append(plan, Move{Dir: n.dir, Push: true})
	}
	return plan, nil
}
