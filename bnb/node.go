package bnb

import "github.com/katalvlaran/bnbmilp/lp"

// Node is one subproblem of the search tree: a delta over the root formulation.
//
// Bounds is owned by the node. A child receives a fresh slice holding its
// parent's bounds plus exactly one new bound (copy-on-branch), so siblings never
// alias and parents are never rewritten.
type Node struct {
	ID       int
	ParentID int
	Depth    int
	Bounds   []lp.Bound

	// Key is the bound inherited from the parent: a valid optimistic estimate for
	// every integral point of this node. Best-bound frontiers order by it.
	Key float64

	result *lp.Relaxation
}

// newRoot returns the root node: no deltas, optimistic key.
func newRoot(sense lp.Sense) *Node {
	return &Node{ID: 0, ParentID: -1, Key: -sense.Sentinel()}
}

// child returns a new node with the parent's bounds plus b.
func (n *Node) child(id int, b lp.Bound, key float64) *Node {
	bounds := make([]lp.Bound, len(n.Bounds)+1)
	copy(bounds, n.Bounds)
	bounds[len(n.Bounds)] = b

	return &Node{
		ID:       id,
		ParentID: n.ID,
		Depth:    n.Depth + 1,
		Bounds:   bounds,
		Key:      key,
	}
}

// Effective returns the node's effective formulation over base.
func (n *Node) Effective(base *lp.Formulation) lp.Effective {
	return lp.Effective{Base: base, Bounds: n.Bounds}
}

// Added returns the delta that created the node (zero value for the root).
func (n *Node) Added() lp.Bound {
	if len(n.Bounds) == 0 {
		return lp.Bound{}
	}

	return n.Bounds[len(n.Bounds)-1]
}

// Solved reports whether the node's relaxation has been cached.
func (n *Node) Solved() bool { return n.result != nil }

// Relaxation returns the cached relaxation (zero value when unsolved).
func (n *Node) Relaxation() lp.Relaxation {
	if n.result == nil {
		return lp.Relaxation{}
	}

	return *n.result
}
