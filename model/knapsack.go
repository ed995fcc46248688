package model

import (
	"fmt"
	"io"
	"math"

	"github.com/juju/errors"

	"github.com/katalvlaran/bnbmilp/bnb"
	"github.com/katalvlaran/bnbmilp/lp"
)

// Knapsack is a 0/1 knapsack: pick items maximizing value within Capacity.
type Knapsack struct {
	Values   []float64
	Weights  []float64
	Capacity float64
}

// ParseKnapsack reads "n W" followed by n lines "value weight".
func ParseKnapsack(r io.Reader) (Knapsack, error) {
	lr := newLineReader(r)
	head, err := lr.floats("knapsack header", 2)
	if err != nil {
		return Knapsack{}, errors.Annotate(err, "parse knapsack")
	}
	n := int(head[0])
	if float64(n) != head[0] || n <= 0 {
		return Knapsack{}, errors.NotValidf("knapsack item count %v", head[0])
	}
	k := Knapsack{Capacity: head[1], Values: make([]float64, n), Weights: make([]float64, n)}
	if !finiteNonNeg(k.Capacity) {
		return Knapsack{}, errors.NotValidf("knapsack capacity %v", k.Capacity)
	}
	for i := 0; i < n; i++ {
		it, err := lr.floats("item", 2)
		if err != nil {
			return Knapsack{}, errors.Annotatef(err, "parse knapsack item %d", i)
		}
		if !finiteNonNeg(it[0]) || !finiteNonNeg(it[1]) {
			return Knapsack{}, errors.NotValidf("item %d value=%v weight=%v", i, it[0], it[1])
		}
		k.Values[i], k.Weights[i] = it[0], it[1]
	}
	if err = lr.done(); err != nil {
		return Knapsack{}, errors.Annotate(err, "parse knapsack")
	}

	return k, nil
}

func itemName(i int) string { return fmt.Sprintf("item_%d", i) }

// Formulation returns maximize Σ v_i·x_i s.t. Σ w_i·x_i ≤ W, x binary.
func (k Knapsack) Formulation() *lp.Formulation {
	f := lp.NewFormulation(lp.Maximize)
	obj := make([]lp.Term, len(k.Values))
	row := make([]lp.Term, len(k.Values))
	for i := range k.Values {
		j := f.AddVar(lp.Binary(itemName(i)))
		obj[i] = lp.T(j, k.Values[i])
		row[i] = lp.T(j, k.Weights[i])
	}
	f.SetObjective(obj...)
	f.AddConstraint("capacity", lp.LessEq, k.Capacity, row...)

	return f
}

// Picked returns the indices of the selected items.
func (k Knapsack) Picked(res bnb.Result) ([]int, error) {
	if res.Status != bnb.OptimalFound {
		return nil, errors.NotFoundf("knapsack selection in %s result", res.Status)
	}
	var out []int
	for i := range k.Values {
		if res.Values[itemName(i)] == 1 {
			out = append(out, i)
		}
	}

	return out, nil
}

func finiteNonNeg(x float64) bool { return x >= 0 && !math.IsInf(x, 1) }
