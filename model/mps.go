package model

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/juju/errors"

	"github.com/katalvlaran/bnbmilp/bnb"
	"github.com/katalvlaran/bnbmilp/lp"
)

// MPS is a model read from a free-format MPS file.
//
// Supported sections: NAME, OBJSENSE, ROWS, COLUMNS (with INTORG/INTEND
// markers), RHS, RANGES, BOUNDS (UP, LO, FX, BV, LI, UI, PL) and ENDATA.
// Variables must stay non-negative: MI, FR and negative bounds are rejected,
// as is a constant term on the objective row.
type MPS struct {
	Name string
	f    *lp.Formulation
}

// Formulation returns the parsed program.
func (m *MPS) Formulation() *lp.Formulation { return m.f }

// Nonzeros lists "name = value" for every non-zero variable of a solved result,
// in column order.
func (m *MPS) Nonzeros(res bnb.Result) ([]string, error) {
	if res.Status != bnb.OptimalFound {
		return nil, errors.NotFoundf("solution in %s result", res.Status)
	}
	var out []string
	for _, v := range m.f.Vars {
		if x := res.Values[v.Name]; x != 0 {
			out = append(out, fmt.Sprintf("%s = %g", v.Name, x))
		}
	}

	return out, nil
}

type mpsRow struct {
	name   string
	rel    lp.Relation
	terms  []lp.Term
	rhs    float64
	rng    float64
	ranged bool
}

type mpsParser struct {
	m      *MPS
	line   int
	obj    string
	free   map[string]bool // further N rows, ignored
	rows   []*mpsRow
	byName map[string]*mpsRow
	lo     map[int]float64
	intSec bool
}

// ParseMPS reads a free-format MPS model. Fields are separated by whitespace,
// section headers start in the first column and lines starting with '*' are
// comments. Without OBJSENSE the model is minimized.
func ParseMPS(r io.Reader) (*MPS, error) {
	p := &mpsParser{
		m:      &MPS{f: lp.NewFormulation(lp.Minimize)},
		byName: make(map[string]*mpsRow),
		free:   make(map[string]bool),
		lo:     make(map[int]float64),
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	section := ""
	ended := false
	for sc.Scan() {
		p.line++
		text := sc.Text()
		if strings.HasPrefix(text, "*") || strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Fields(text)
		if text[0] != ' ' && text[0] != '\t' {
			section = fields[0]
			switch section {
			case "NAME":
				if len(fields) > 1 {
					p.m.Name = fields[1]
				}
			case "OBJSENSE":
				if len(fields) > 1 {
					if err := p.sense(fields[1]); err != nil {
						return nil, err
					}
				}
			case "ROWS", "COLUMNS", "RHS", "RANGES", "BOUNDS":
			case "ENDATA":
				ended = true
			default:
				return nil, errors.NotSupportedf("MPS section %q on line %d", section, p.line)
			}
			if ended {
				break
			}
			continue
		}

		var err error
		switch section {
		case "OBJSENSE":
			err = p.sense(fields[0])
		case "ROWS":
			err = p.row(fields)
		case "COLUMNS":
			err = p.column(fields)
		case "RHS":
			err = p.pairs(fields, func(row *mpsRow, v float64) error {
				if row == nil {
					if v != 0 {
						return errors.NotSupportedf("objective constant on line %d", p.line)
					}
					return nil
				}
				row.rhs = v
				return nil
			})
		case "RANGES":
			err = p.pairs(fields, func(row *mpsRow, v float64) error {
				if row == nil {
					return errors.NotValidf("range on the objective row, line %d", p.line)
				}
				row.rng, row.ranged = v, true
				return nil
			})
		case "BOUNDS":
			err = p.bound(fields)
		default:
			err = errors.NotValidf("data outside a section on line %d", p.line)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	if !ended {
		return nil, errors.NotValidf("MPS file without ENDATA")
	}
	if p.m.f.NumVars() == 0 {
		return nil, errors.NotValidf("MPS file without columns")
	}
	p.finish()

	return p.m, nil
}

func (p *mpsParser) sense(word string) error {
	switch strings.ToUpper(word) {
	case "MIN", "MINIMIZE":
		p.m.f.Sense = lp.Minimize
	case "MAX", "MAXIMIZE":
		p.m.f.Sense = lp.Maximize
	default:
		return errors.NotValidf("objective sense %q on line %d", word, p.line)
	}

	return nil
}

func (p *mpsParser) row(fields []string) error {
	if len(fields) != 2 {
		return errors.NotValidf("row on line %d: %d fields, expected 2", p.line, len(fields))
	}
	name := fields[1]
	if _, dup := p.byName[name]; dup || name == p.obj || p.free[name] {
		return errors.AlreadyExistsf("row %q on line %d", name, p.line)
	}
	var rel lp.Relation
	switch fields[0] {
	case "N":
		if p.obj == "" {
			p.obj = name
		} else {
			p.free[name] = true
		}
		return nil
	case "L":
		rel = lp.LessEq
	case "G":
		rel = lp.GreaterEq
	case "E":
		rel = lp.Equal
	default:
		return errors.NotValidf("row type %q on line %d", fields[0], p.line)
	}
	r := &mpsRow{name: name, rel: rel}
	p.rows = append(p.rows, r)
	p.byName[name] = r

	return nil
}

func (p *mpsParser) column(fields []string) error {
	if len(fields) == 3 && fields[1] == "'MARKER'" {
		switch fields[2] {
		case "'INTORG'":
			p.intSec = true
		case "'INTEND'":
			p.intSec = false
		default:
			return errors.NotValidf("marker %s on line %d", fields[2], p.line)
		}
		return nil
	}
	if len(fields) != 3 && len(fields) != 5 {
		return errors.NotValidf("column entry on line %d: %d fields", p.line, len(fields))
	}

	f := p.m.f
	j, ok := f.Index(fields[0])
	if !ok {
		j = f.AddVar(lp.Variable{Name: fields[0], Integer: p.intSec, Upper: math.Inf(1)})
	}
	for k := 1; k+1 < len(fields); k += 2 {
		v, err := p.number(fields[k+1])
		if err != nil {
			return err
		}
		if fields[k] == p.obj {
			f.Objective[j] = v
			continue
		}
		if p.free[fields[k]] {
			continue
		}
		row, ok := p.byName[fields[k]]
		if !ok {
			return errors.NotFoundf("row %q on line %d", fields[k], p.line)
		}
		row.terms = append(row.terms, lp.T(j, v))
	}

	return nil
}

// pairs handles "SET row value [row value]" lines of RHS and RANGES. The set
// name is optional; apply receives nil for the objective row.
func (p *mpsParser) pairs(fields []string, apply func(*mpsRow, float64) error) error {
	if len(fields)%2 == 1 {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return errors.NotValidf("empty entry on line %d", p.line)
	}
	for k := 0; k+1 < len(fields); k += 2 {
		v, err := p.number(fields[k+1])
		if err != nil {
			return err
		}
		if fields[k] == p.obj {
			if err = apply(nil, v); err != nil {
				return err
			}
			continue
		}
		if p.free[fields[k]] {
			continue
		}
		row, ok := p.byName[fields[k]]
		if !ok {
			return errors.NotFoundf("row %q on line %d", fields[k], p.line)
		}
		if err = apply(row, v); err != nil {
			return err
		}
	}

	return nil
}

func (p *mpsParser) bound(fields []string) error {
	kind := fields[0]
	switch {
	case (kind == "BV" || kind == "PL" || kind == "MI" || kind == "FR") && (len(fields) == 3 || len(fields) == 4):
		// the value field is optional
	case len(fields) != 4:
		return errors.NotValidf("bound on line %d: %d fields, expected 4", p.line, len(fields))
	}
	f := p.m.f
	j, ok := f.Index(fields[2])
	if !ok {
		return errors.NotFoundf("column %q on line %d", fields[2], p.line)
	}
	v := 0.0
	if len(fields) == 4 {
		var err error
		if v, err = p.number(fields[3]); err != nil {
			return err
		}
	}

	switch kind {
	case "UP", "UI":
		if v < 0 {
			return errors.NotSupportedf("negative upper bound on %q, line %d", fields[2], p.line)
		}
		f.Vars[j].Upper = v
	case "LO", "LI":
		if v < 0 {
			return errors.NotSupportedf("negative lower bound on %q, line %d", fields[2], p.line)
		}
		p.lo[j] = v
	case "FX":
		if v < 0 {
			return errors.NotSupportedf("negative fixed value on %q, line %d", fields[2], p.line)
		}
		p.lo[j] = v
		f.Vars[j].Upper = v
	case "BV":
		f.Vars[j].Integer = true
		f.Vars[j].Upper = 1
	case "PL":
		f.Vars[j].Upper = math.Inf(1)
	case "MI", "FR":
		return errors.NotSupportedf("free variable %q on line %d", fields[2], p.line)
	default:
		return errors.NotValidf("bound type %q on line %d", kind, p.line)
	}
	if kind == "UI" || kind == "LI" {
		f.Vars[j].Integer = true
	}

	return nil
}

// finish turns rows into constraints. A ranged row becomes a pair of rows
// bounding it from both sides; a positive lower bound becomes a ≥ row.
func (p *mpsParser) finish() {
	f := p.m.f
	for _, r := range p.rows {
		if !r.ranged {
			f.AddConstraint(r.name, r.rel, r.rhs, r.terms...)
			continue
		}
		lo, hi := r.rhs, r.rhs
		switch {
		case r.rel == lp.LessEq:
			lo = r.rhs - math.Abs(r.rng)
		case r.rel == lp.GreaterEq:
			hi = r.rhs + math.Abs(r.rng)
		case r.rng > 0:
			hi = r.rhs + r.rng
		default:
			lo = r.rhs + r.rng
		}
		f.AddConstraint(r.name+"_lo", lp.GreaterEq, lo, r.terms...)
		f.AddConstraint(r.name+"_hi", lp.LessEq, hi, r.terms...)
	}
	for j, v := range f.Vars {
		if lo := p.lo[j]; lo > 0 {
			f.AddConstraint("lo_"+v.Name, lp.GreaterEq, lo, lp.T(j, 1))
		}
	}
}

func (p *mpsParser) number(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.NotValidf("number %q on line %d", s, p.line)
	}

	return v, nil
}
