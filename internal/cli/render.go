package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/katalvlaran/bnbmilp/bnb"
)

// report is what a subcommand prints after a completed search.
type report struct {
	Problem string
	Result  bnb.Result
	Lines   []string // problem-specific solution lines
}

// styles renders report fragments; the zero value prints plain text.
type styles struct {
	color bool
}

func (s styles) status(st bnb.Status) string {
	text := st.String()
	if !s.color {
		return text
	}
	c := lipgloss.Color("2") // green
	if st != bnb.OptimalFound {
		c = lipgloss.Color("3") // yellow
	}

	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(text)
}

func (s styles) label(text string) string {
	if !s.color {
		return text
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render(text)
}

// colorFor enables styling only when w is a terminal.
func colorFor(w io.Writer) styles {
	f, ok := w.(*os.File)
	if !ok {
		return styles{}
	}
	fd := f.Fd()

	return styles{color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

func (s styles) render(w io.Writer, r report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", s.label("problem:"), r.Problem)
	fmt.Fprintf(&b, "%s %s\n", s.label("status:"), s.status(r.Result.Status))
	if r.Result.Status == bnb.OptimalFound {
		fmt.Fprintf(&b, "%s %g\n", s.label("objective:"), r.Result.Objective)
	}
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "  %s\n", l)
	}
	if st := r.Result.Stats; st.Nodes > 0 {
		fmt.Fprintf(&b, "%s nodes=%d oracle_calls=%d branched=%d pruned(infeasible=%d optimal=%d bound=%d) max_depth=%d elapsed=%s\n",
			s.label("stats:"), st.Nodes, st.OracleCalls, st.Branched,
			st.PrunedInfeasible, st.PrunedOptimal, st.PrunedBound, st.MaxDepth, st.Elapsed.Round(time.Microsecond))
	} else {
		fmt.Fprintf(&b, "%s elapsed=%s\n", s.label("stats:"), st.Elapsed.Round(time.Microsecond))
	}
	_, err := io.WriteString(w, b.String())

	return err
}
