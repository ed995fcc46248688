package model

import (
	"fmt"
	"io"

	"github.com/juju/errors"

	"github.com/katalvlaran/bnbmilp/bnb"
	"github.com/katalvlaran/bnbmilp/lp"
)

// Graph is an undirected graph on vertices 0..N-1.
type Graph struct {
	N     int
	Edges [][2]int
}

// ParseGraph reads "n m" followed by m lines "u v" (0-based vertex indices).
func ParseGraph(r io.Reader) (Graph, error) {
	lr := newLineReader(r)
	head, err := lr.ints("graph header", 2)
	if err != nil {
		return Graph{}, errors.Annotate(err, "parse graph")
	}
	n, m := head[0], head[1]
	if n <= 0 || m < 0 {
		return Graph{}, errors.NotValidf("graph header n=%d m=%d", n, m)
	}

	g := Graph{N: n, Edges: make([][2]int, 0, m)}
	for i := 0; i < m; i++ {
		e, err := lr.ints("edge", 2)
		if err != nil {
			return Graph{}, errors.Annotatef(err, "parse graph edge %d", i)
		}
		u, v := e[0], e[1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return Graph{}, errors.NotValidf("edge %d (%d,%d) outside 0..%d", i, u, v, n-1)
		}
		if u == v {
			return Graph{}, errors.NotValidf("edge %d is a self-loop on %d", i, u)
		}
		g.Edges = append(g.Edges, [2]int{u, v})
	}
	if err = lr.done(); err != nil {
		return Graph{}, errors.Annotate(err, "parse graph")
	}

	return g, nil
}

// Coloring is a vertex colouring model of a Graph.
type Coloring interface {
	// Formulation returns the MILP; minimizing it yields the chromatic number.
	Formulation() *lp.Formulation
	// Colors extracts the colour of each vertex (0-based) from a solved result.
	Colors(res bnb.Result) ([]int, error)
}

// BinaryColoring is the assignment model: x_v_i = 1 iff vertex v has colour i,
// c_i = 1 iff colour i is used. At most N colours are needed.
//
//	minimize  Σ_i c_i
//	Σ_i x_v_i = 1              every vertex has exactly one colour
//	x_v_i + x_w_i ≤ c_i        adjacent vertices differ, on used colours only
//	x_v_i ≤ c_i                only used colours are assigned
//	Σ_v x_v_i ≥ c_i            every used colour is assigned
//	c_i ≥ c_{i+1}              colours are used in order
//	x_v_i = 0 for i > v        vertex v picks among the first v+1 colours
//
// The last two rows remove relabelled copies of the same colouring; every
// colouring renumbered by first use satisfies them.
type BinaryColoring struct{ G Graph }

func xName(v, i int) string { return fmt.Sprintf("x_%d_%d", v, i) }
func cName(i int) string    { return fmt.Sprintf("c_%d", i) }

// Formulation implements Coloring.
func (m BinaryColoring) Formulation() *lp.Formulation {
	n := m.G.N
	f := lp.NewFormulation(lp.Minimize)

	x := make([][]int, n)
	for v := 0; v < n; v++ {
		x[v] = make([]int, n)
		for i := 0; i < n; i++ {
			xv := lp.Binary(xName(v, i))
			if i > v {
				xv.Upper = 0
			}
			x[v][i] = f.AddVar(xv)
		}
	}
	c := make([]int, n)
	obj := make([]lp.Term, n)
	for i := 0; i < n; i++ {
		c[i] = f.AddVar(lp.Binary(cName(i)))
		obj[i] = lp.T(c[i], 1)
	}
	f.SetObjective(obj...)

	for v := 0; v < n; v++ {
		row := make([]lp.Term, n)
		for i := 0; i < n; i++ {
			row[i] = lp.T(x[v][i], 1)
		}
		f.AddConstraint(fmt.Sprintf("one_%d", v), lp.Equal, 1, row...)
	}
	for k, e := range m.G.Edges {
		for i := 0; i < n; i++ {
			f.AddConstraint(fmt.Sprintf("edge_%d_%d", k, i), lp.LessEq, 0,
				lp.T(x[e[0]][i], 1), lp.T(x[e[1]][i], 1), lp.T(c[i], -1))
		}
	}
	for v := 0; v < n; v++ {
		for i := 0; i < n; i++ {
			f.AddConstraint(fmt.Sprintf("used_%d_%d", v, i), lp.LessEq, 0,
				lp.T(x[v][i], 1), lp.T(c[i], -1))
		}
	}
	for i := 0; i < n; i++ {
		row := make([]lp.Term, 0, n+1)
		for v := 0; v < n; v++ {
			row = append(row, lp.T(x[v][i], 1))
		}
		row = append(row, lp.T(c[i], -1))
		f.AddConstraint(fmt.Sprintf("assigned_%d", i), lp.GreaterEq, 0, row...)
	}
	for i := 0; i+1 < n; i++ {
		f.AddConstraint(fmt.Sprintf("order_%d", i), lp.GreaterEq, 0, lp.T(c[i], 1), lp.T(c[i+1], -1))
	}

	return f
}

// Colors implements Coloring. Colours are renumbered densely in order of first use.
func (m BinaryColoring) Colors(res bnb.Result) ([]int, error) {
	if res.Status != bnb.OptimalFound {
		return nil, errors.NotFoundf("colouring in %s result", res.Status)
	}
	raw := make([]int, m.G.N)
	for v := 0; v < m.G.N; v++ {
		raw[v] = -1
		for i := 0; i < m.G.N; i++ {
			if res.Values[xName(v, i)] == 1 {
				raw[v] = i
				break
			}
		}
		if raw[v] < 0 {
			return nil, errors.NotFoundf("colour of vertex %d", v)
		}
	}

	return renumber(raw), nil
}

// IntegerColoring is the big-M model: x_v ∈ [1, N] is the colour of v,
// z_e orients edge e, c ∈ [1, N] is the number of colours.
//
//	minimize  c
//	x_u − x_w + N·z_e ≥ 1      for e = (u, w)
//	x_w − x_u − N·z_e ≥ 1 − N
//	x_v ≤ c
type IntegerColoring struct{ G Graph }

func colName(v int) string { return fmt.Sprintf("x_%d", v) }

// Formulation implements Coloring.
func (m IntegerColoring) Formulation() *lp.Formulation {
	n := m.G.N
	big := float64(n)
	f := lp.NewFormulation(lp.Minimize)

	x := make([]int, n)
	for v := 0; v < n; v++ {
		x[v] = f.AddVar(lp.Variable{Name: colName(v), Integer: true, Upper: big})
	}
	c := f.AddVar(lp.Variable{Name: "c", Integer: true, Upper: big})
	f.SetObjective(lp.T(c, 1))
	f.AddConstraint("c_min", lp.GreaterEq, 1, lp.T(c, 1))

	for v := 0; v < n; v++ {
		f.AddConstraint(fmt.Sprintf("x_min_%d", v), lp.GreaterEq, 1, lp.T(x[v], 1))
		f.AddConstraint(fmt.Sprintf("x_le_c_%d", v), lp.LessEq, 0, lp.T(x[v], 1), lp.T(c, -1))
	}
	for k, e := range m.G.Edges {
		z := f.AddVar(lp.Binary(fmt.Sprintf("z_%d", k)))
		u, w := x[e[0]], x[e[1]]
		f.AddConstraint(fmt.Sprintf("or1_%d", k), lp.GreaterEq, 1, lp.T(u, 1), lp.T(w, -1), lp.T(z, big))
		f.AddConstraint(fmt.Sprintf("or2_%d", k), lp.GreaterEq, 1-big, lp.T(w, 1), lp.T(u, -1), lp.T(z, -big))
	}

	return f
}

// Colors implements Coloring. Colours are renumbered densely in order of first use.
func (m IntegerColoring) Colors(res bnb.Result) ([]int, error) {
	if res.Status != bnb.OptimalFound {
		return nil, errors.NotFoundf("colouring in %s result", res.Status)
	}
	raw := make([]int, m.G.N)
	for v := range raw {
		c, ok := res.Int(colName(v))
		if !ok {
			return nil, errors.NotFoundf("colour of vertex %d", v)
		}
		raw[v] = int(c)
	}

	return renumber(raw), nil
}

// Proper reports whether colors assigns different colours to adjacent vertices.
func (g Graph) Proper(colors []int) bool {
	if len(colors) != g.N {
		return false
	}
	for _, e := range g.Edges {
		if colors[e[0]] == colors[e[1]] {
			return false
		}
	}

	return true
}

func renumber(raw []int) []int {
	ids := make(map[int]int)
	out := make([]int, len(raw))
	for v, c := range raw {
		id, ok := ids[c]
		if !ok {
			id = len(ids)
			ids[c] = id
		}
		out[v] = id
	}

	return out
}
