package bnb

import "github.com/katalvlaran/bnbmilp/lp"

// Test-only access to unexported helpers.

func NewRoot(sense lp.Sense) *Node { return newRoot(sense) }

func (n *Node) Child(id int, b lp.Bound, key float64) *Node { return n.child(id, b, key) }

func Decide(sense lp.Sense, eps float64, rounded bool, r lp.Relaxation, candidates []int, incumbent float64) (Decision, float64) {
	return policy{sense: sense, eps: eps, rounded: rounded}.decide(r, candidates, incumbent)
}

func NodeBound(sense lp.Sense, eps float64, rounded bool, obj float64) float64 {
	return policy{sense: sense, eps: eps, rounded: rounded}.bound(obj)
}

func Fractional(f *lp.Formulation, x []float64, eps float64) []int {
	return policy{eps: eps}.fractional(f, x)
}
