package bnb

import (
	"io"
	"log/slog"
	"math"
	"time"
)

// DefaultEpsilon is the default integrality tolerance.
const DefaultEpsilon = 1e-6

// Options configures an Engine.
//
// Branching – strategy choosing the fractional variable to split on.
// Frontier  – discipline ordering the open nodes (DepthFirst or BestBound).
// Epsilon   – integrality tolerance; must be > 0 and finite.
// TimeLimit – wall-clock cap of one Solve call; 0 means no limit.
// Logger    – structured logger; nil discards everything.
// OnStep    – optional hook called synchronously once per consumed node.
type Options struct {
	Branching BranchingStrategy
	Frontier  Discipline
	Epsilon   float64
	TimeLimit time.Duration
	Logger    *slog.Logger
	OnStep    func(Step)
}

// Option represents a functional option for configuring an Engine.
type Option func(*Options)

// DefaultOptions returns ClosestToHalf branching over a DepthFirst frontier with
// ε = DefaultEpsilon and no time limit.
func DefaultOptions() Options {
	return Options{
		Branching: ClosestToHalf{},
		Frontier:  DepthFirst,
		Epsilon:   DefaultEpsilon,
	}
}

// WithBranching sets the branching strategy.
func WithBranching(s BranchingStrategy) Option {
	return func(o *Options) { o.Branching = s }
}

// WithFrontier sets the frontier discipline.
func WithFrontier(d Discipline) Option {
	return func(o *Options) { o.Frontier = d }
}

// WithEpsilon sets the integrality tolerance.
func WithEpsilon(eps float64) Option {
	return func(o *Options) { o.Epsilon = eps }
}

// WithTimeLimit caps the wall-clock duration of each Solve call.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithLogger routes engine logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnStep installs a per-node trace hook.
func WithOnStep(fn func(Step)) Option {
	return func(o *Options) { o.OnStep = fn }
}

// validate checks o and fills the logger default.
func (o *Options) validate() error {
	if o.Epsilon <= 0 || math.IsNaN(o.Epsilon) || math.IsInf(o.Epsilon, 0) {
		return ErrBadEpsilon
	}
	if o.Branching == nil {
		return ErrNilStrategy
	}
	if o.Frontier == nil {
		return ErrNilFrontier
	}
	if o.TimeLimit < 0 {
		return ErrBadTimeLimit
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return nil
}
