package simplex

// TableauOnly restricts a Solver to the Bland tableau.
func TableauOnly() Option {
	return func(s *Solver) { s.methods = []method{(*Solver).bland} }
}

// GonumOnly restricts a Solver to gonum's Simplex.
func GonumOnly() Option {
	return func(s *Solver) { s.methods = []method{(*Solver).gonum} }
}
