// Package cli implements the bnbsolve command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bnbmilp/bnb"
	"github.com/katalvlaran/bnbmilp/internal/config"
	"github.com/katalvlaran/bnbmilp/internal/logging"
	"github.com/katalvlaran/bnbmilp/lp"
	"github.com/katalvlaran/bnbmilp/model"
	"github.com/katalvlaran/bnbmilp/simplex"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitInfeasible = 2
	ExitTimeout    = 3
)

// ErrNoSolution is reported when a search proves that no integral solution exists.
var ErrNoSolution = errors.New("no integral solution exists")

// ExitError attaches a process exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}

	return ExitFailure
}

// flags are the persistent solver flags shared by every subcommand.
type flags struct {
	configPath string
	branching  string
	frontier   string
	seed       int64
	epsilon    float64
	timeLimit  time.Duration
	logFile    string
	verbose    bool
}

// NewRootCmd creates the root cobra command.
func NewRootCmd(version string) *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:     "bnbsolve",
		Short:   "Solve integer programs by Branch-and-Bound",
		Version: version,
		Long: `bnbsolve encodes a problem instance as an integer linear program and
solves it exactly with a Branch-and-Bound search over LP relaxations.

Exit codes: 0 optimal, 2 infeasible, 3 time limit reached, 1 any other error.

Examples:
  bnbsolve coloring graph.txt --frontier best-bound
  bnbsolve testcover cover.txt --branching random-fractional --seed 7
  bnbsolve knapsack items.txt --time-limit 30s -v
  bnbsolve mps model.mps --frontier best-bound`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML solver configuration file")
	pf.StringVar(&f.branching, "branching", config.BranchingClosestToHalf,
		"branching strategy: closest-to-half, first-fractional, random-fractional")
	pf.StringVar(&f.frontier, "frontier", config.FrontierDepthFirst, "frontier discipline: depth-first, best-bound")
	pf.Int64Var(&f.seed, "seed", 0, "seed for random-fractional branching")
	pf.Float64Var(&f.epsilon, "epsilon", bnb.DefaultEpsilon, "integrality tolerance")
	pf.DurationVar(&f.timeLimit, "time-limit", 0, "abandon the search after this long (0 = no limit)")
	pf.StringVar(&f.logFile, "log-file", "", "also write debug logs to this rotating file")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log every search node")

	rootCmd.AddCommand(newColoringCmd(f))
	rootCmd.AddCommand(newTestCoverCmd(f))
	rootCmd.AddCommand(newKnapsackCmd(f))
	rootCmd.AddCommand(newMPSCmd(f))

	return rootCmd
}

// instance is a parsed problem ready to solve. When search is set it replaces
// the branch-and-bound engine.
type instance struct {
	name     string
	f        *lp.Formulation
	describe func(bnb.Result) ([]string, error)
	search   func(context.Context) (bnb.Result, error)
}

func newColoringCmd(f *flags) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "coloring <file>",
		Short: "Minimum graph colouring (chromatic number)",
		Long: `Minimum graph colouring. The file holds "n m" followed by m lines "u v"
with 0-based vertex indices.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0], func(r io.Reader) (instance, error) {
				g, err := model.ParseGraph(r)
				if err != nil {
					return instance{}, err
				}
				var m model.Coloring
				switch kind {
				case "binary":
					m = model.BinaryColoring{G: g}
				case "integer":
					m = model.IntegerColoring{G: g}
				default:
					return instance{}, fmt.Errorf("unknown colouring model %q", kind)
				}
				return instance{
					name: "coloring/" + kind,
					f:    m.Formulation(),
					describe: func(res bnb.Result) ([]string, error) {
						colors, err := m.Colors(res)
						if err != nil {
							return nil, err
						}
						lines := make([]string, len(colors))
						for v, c := range colors {
							lines[v] = fmt.Sprintf("vertex %d: colour %d", v, c)
						}
						return lines, nil
					},
				}, nil
			})
		},
	}
	cmd.Flags().StringVar(&kind, "model", "binary", "colouring model: binary, integer")

	return cmd
}

func newTestCoverCmd(f *flags) *cobra.Command {
	var method string
	cmd := &cobra.Command{
		Use:   "testcover <file>",
		Short: "Smallest hitting set of size at most k",
		Long: `Minimum test cover. The file holds "n m k" followed by m lines, each
listing the elements of one subset. Infeasible means no hitting set of size k exists.

--method tree skips the LP and runs a bounded search tree of depth k instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0], func(r io.Reader) (instance, error) {
				tc, err := model.ParseTestCover(r)
				if err != nil {
					return instance{}, err
				}
				inst := instance{
					name: "testcover",
					f:    tc.Formulation(),
					describe: func(res bnb.Result) ([]string, error) {
						h, err := tc.Chosen(res)
						if err != nil {
							return nil, err
						}
						return []string{"H = " + joinInts(h)}, nil
					},
				}
				switch method {
				case "ilp":
				case "tree":
					inst.name = "testcover/tree"
					inst.search = func(ctx context.Context) (bnb.Result, error) {
						return treeSearch(ctx, tc)
					}
				default:
					return instance{}, fmt.Errorf("unknown test cover method %q", method)
				}
				return inst, nil
			})
		},
	}
	cmd.Flags().StringVar(&method, "method", "ilp", "solution method: ilp, tree")

	return cmd
}

// treeSearch finds a smallest hitting set with the bounded search tree and
// reports it in the shape of an engine result.
func treeSearch(ctx context.Context, tc model.TestCover) (bnb.Result, error) {
	start := time.Now()
	res := bnb.Result{Status: bnb.Infeasible, Objective: lp.Minimize.Sentinel(), Values: map[string]float64{}}
	h, ok, err := tc.Smallest(ctx)
	res.Stats.Elapsed = time.Since(start)
	if err != nil {
		if ctx.Err() != nil {
			return bnb.Result{}, errors.Join(bnb.ErrSearchTimedOut, err)
		}
		return bnb.Result{}, err
	}
	if !ok {
		return res, nil
	}
	res.Status = bnb.OptimalFound
	res.Objective = float64(len(h))
	for i := 0; i < tc.N; i++ {
		res.Values[fmt.Sprintf("h_%d", i)] = 0
	}
	for _, e := range h {
		res.Values[fmt.Sprintf("h_%d", e)] = 1
	}

	return res, nil
}

func newMPSCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "mps <file>",
		Short: "Any (mixed) integer program in free MPS format",
		Long: `Solve a model read from a free-format MPS file. Columns between
INTORG and INTEND markers, and BV/LI/UI bounds, are integer; all others are
continuous. Variables must be non-negative.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0], func(r io.Reader) (instance, error) {
				m, err := model.ParseMPS(r)
				if err != nil {
					return instance{}, err
				}
				name := "mps"
				if m.Name != "" {
					name += "/" + m.Name
				}
				return instance{name: name, f: m.Formulation(), describe: m.Nonzeros}, nil
			})
		},
	}
}

func newKnapsackCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "knapsack <file>",
		Short: "0/1 knapsack",
		Long:  `0/1 knapsack. The file holds "n W" followed by n lines "value weight".`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0], func(r io.Reader) (instance, error) {
				k, err := model.ParseKnapsack(r)
				if err != nil {
					return instance{}, err
				}
				return instance{
					name: "knapsack",
					f:    k.Formulation(),
					describe: func(res bnb.Result) ([]string, error) {
						items, err := k.Picked(res)
						if err != nil {
							return nil, err
						}
						return []string{"items = " + joinInts(items)}, nil
					},
				}, nil
			})
		},
	}
}

// resolve merges the config file, the environment and explicitly set flags.
func resolve(cmd *cobra.Command, f *flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg.ApplyEnv(os.Getenv)

	fs := cmd.Flags()
	if fs.Changed("branching") {
		cfg.Branching = f.branching
	}
	if fs.Changed("frontier") {
		cfg.Frontier = f.frontier
	}
	if fs.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fs.Changed("epsilon") {
		cfg.Epsilon = f.epsilon
	}
	if fs.Changed("time-limit") {
		cfg.TimeLimit = f.timeLimit
	}
	if fs.Changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if f.verbose {
		cfg.Log.Level = "debug"
	}

	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, f *flags, path string, load func(io.Reader) (instance, error)) (err error) {
	cfg, err := resolve(cmd, f)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	log, closer, err := logging.New(logging.Options{Console: cmd.ErrOrStderr(), Level: level, File: cfg.Log.File})
	if err != nil {
		return err
	}
	defer closeInto(&err, closer, "log file")

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	inst, err := load(file)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	log = log.With(slog.String("problem", inst.name))
	res, err := solve(cmd.Context(), cfg, inst, log)
	if err != nil {
		if errors.Is(err, bnb.ErrSearchTimedOut) {
			return &ExitError{Code: ExitTimeout, Err: err}
		}
		return err
	}

	rep := report{Problem: inst.name, Result: res}
	if res.Status == bnb.OptimalFound {
		if rep.Lines, err = inst.describe(res); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()
	if err = colorFor(out).render(out, rep); err != nil {
		return err
	}
	if res.Status == bnb.Infeasible {
		return &ExitError{Code: ExitInfeasible, Err: ErrNoSolution}
	}

	return nil
}

func solve(ctx context.Context, cfg config.Config, inst instance, log *slog.Logger) (bnb.Result, error) {
	if inst.search != nil {
		if cfg.TimeLimit > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
			defer cancel()
		}
		log.Info("searching", slog.Duration("time_limit", cfg.TimeLimit))
		return inst.search(ctx)
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		return bnb.Result{}, err
	}
	eng, err := bnb.New(inst.f.Sense, simplex.New(), append(opts, bnb.WithLogger(log))...)
	if err != nil {
		return bnb.Result{}, err
	}
	log.Info("solving",
		slog.Int("vars", inst.f.NumVars()),
		slog.Int("constraints", len(inst.f.Constraints)),
		slog.String("branching", cfg.Branching),
		slog.String("frontier", cfg.Frontier),
	)

	return eng.Solve(ctx, inst.f)
}

// closeInto closes c and joins a failure into *err.
func closeInto(err *error, c io.Closer, what string) {
	if cerr := c.Close(); cerr != nil {
		*err = errors.Join(*err, fmt.Errorf("close %s: %w", what, cerr))
	}
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
