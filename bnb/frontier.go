package bnb

import (
	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/katalvlaran/bnbmilp/lp"
)

// Frontier holds the nodes awaiting exploration.
type Frontier interface {
	// Push adds a node.
	Push(n *Node)
	// Pop removes and returns the next node to explore; false when empty.
	Pop() (*Node, bool)
	// Len returns the number of held nodes.
	Len() int
}

// Discipline builds a fresh, empty Frontier for one search of the given sense.
type Discipline func(sense lp.Sense) Frontier

// DepthFirst is the LIFO discipline: the most recently pushed node is explored
// next. Memory grows with tree depth.
func DepthFirst(lp.Sense) Frontier {
	return &stackFrontier{s: arraystack.New()}
}

// BestBound selects the held node with the most favorable key (largest for
// maximize, smallest for minimize). Ties go to the deeper node, then to the
// older node.
//
// Keys are inherited from the parent's bound at creation time, so they may be
// weaker than the node's own relaxation. They only decide the order: the node's
// own relaxation is solved when it is selected, and every pruning decision is
// taken on that fresh result against the incumbent of that moment.
func BestBound(sense lp.Sense) Frontier {
	cmp := func(a, b interface{}) int {
		na, nb := a.(*Node), b.(*Node)
		switch {
		case na.Key != nb.Key:
			if sense.Better(na.Key, nb.Key) {
				return -1
			}
			return 1
		case na.Depth != nb.Depth:
			if na.Depth > nb.Depth {
				return -1
			}
			return 1
		case na.ID < nb.ID:
			return -1
		case na.ID > nb.ID:
			return 1
		}

		return 0
	}

	return &heapFrontier{q: priorityqueue.NewWith(cmp)}
}

type stackFrontier struct{ s *arraystack.Stack }

func (f *stackFrontier) Push(n *Node) { f.s.Push(n) }

func (f *stackFrontier) Pop() (*Node, bool) {
	v, ok := f.s.Pop()
	if !ok {
		return nil, false
	}

	return v.(*Node), true
}

func (f *stackFrontier) Len() int { return f.s.Size() }

type heapFrontier struct{ q *priorityqueue.Queue }

func (f *heapFrontier) Push(n *Node) { f.q.Enqueue(n) }

func (f *heapFrontier) Pop() (*Node, bool) {
	v, ok := f.q.Dequeue()
	if !ok {
		return nil, false
	}

	return v.(*Node), true
}

func (f *heapFrontier) Len() int { return f.q.Size() }
