package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/galois/internal/config"
	"github.com/agbru/galois/internal/service"
	"github.com/agbru/galois/internal/solver"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Precision is the number of decimals used to display roots.
	Precision int
	// Timeout is the maximum duration for each command.
	Timeout time.Duration
	// Seed seeds the first random equation; 0 seeds from the clock.
	Seed int64
}

// REPL is an interactive solving session. It remembers the last solved
// equation so that actions can be applied to its roots.
type REPL struct {
	config REPLConfig
	svc    service.Service
	last   *service.Result
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - svc: The service used to solve equations.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(svc service.Service, config REPLConfig) *REPL {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &REPL{
		config: config,
		svc:    svc,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ColorGreen()+"galois> "+ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ColorRed(), err, ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sGalois Equation Solver - Interactive Mode%s            %s║%s\n",
		ColorCyan(), ColorReset(), ColorBold(), ColorReset(), ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ColorCyan(), ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  %ssolve <c...>%s         - Solve the equation with these coefficients (e.g. solve 1 -5 6)\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %srandom [deg] [seed]%s  - Solve a random equation of degree 2-4\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sactions [deg]%s        - List the symmetry actions for a degree\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sapply <id>%s           - Apply a symmetry action to the last roots\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sunit <n>%s             - Show the n-th roots of unity\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sprecision <p>%s        - Set the number of displayed decimals\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s               - Display current configuration\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                 - Display this help\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s          - Exit interactive mode\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "solve", "s":
		r.cmdSolve(args)
	case "random", "r":
		r.cmdRandom(args)
	case "actions", "a":
		r.cmdActions(args)
	case "apply", "ap":
		r.cmdApply(args)
	case "unit", "u":
		r.cmdUnit(args)
	case "precision", "p":
		r.cmdPrecision(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ColorGreen(), ColorReset())
		return false
	default:
		// A line starting with a number is a coefficient list.
		if _, err := solver.ParseCoefficients(input); err == nil {
			r.cmdSolve(parts)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ColorRed(), cmd, ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ColorYellow(), ColorReset())
		}
	}

	return true
}

func (r *REPL) printError(err error) {
	fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
}

func (r *REPL) cmdSolve(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: solve <c_n> ... <c_0>%s\n", ColorRed(), ColorReset())
		return
	}
	coeffs, err := solver.ParseCoefficients(strings.Join(args, " "))
	if err != nil {
		r.printError(err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	res, err := r.svc.Solve(ctx, coeffs)
	if err != nil {
		r.printError(err)
		return
	}
	r.show(res)
}

func (r *REPL) cmdRandom(args []string) {
	degree := config.DefaultDegree
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid degree: %s%s\n", ColorRed(), args[0], ColorReset())
			return
		}
		degree = d
	}
	seed := r.config.Seed
	if len(args) > 1 {
		s, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid seed: %s%s\n", ColorRed(), args[1], ColorReset())
			return
		}
		seed = s
	}
	// A configured seed only fixes the first draw; later draws vary.
	r.config.Seed = 0

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	res, err := r.svc.Random(ctx, degree, seed)
	if err != nil {
		r.printError(err)
		return
	}
	r.show(res)
}

func (r *REPL) show(res service.Result) {
	r.last = &res
	fmt.Fprintln(r.out)
	DisplaySolve(r.out, res, r.config.Precision)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdActions(args []string) {
	degree := config.DefaultDegree
	if r.last != nil {
		degree = r.last.Equation.Degree
	}
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid degree: %s%s\n", ColorRed(), args[0], ColorReset())
			return
		}
		degree = d
	}
	actions, err := r.svc.Actions(degree)
	if err != nil {
		r.printError(err)
		return
	}
	DisplayActions(r.out, degree, actions)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdApply(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: apply <action id>%s\n", ColorRed(), ColorReset())
		return
	}
	if r.last == nil {
		fmt.Fprintf(r.out, "%sNo roots yet: solve an equation first.%s\n", ColorRed(), ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	res, err := r.svc.Apply(ctx, r.last.Equation.Coefficients, args[0])
	if err != nil {
		r.printError(err)
		return
	}
	DisplayApply(r.out, res, r.config.Precision)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdUnit(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: unit <n>%s\n", ColorRed(), ColorReset())
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ColorRed(), args[0], ColorReset())
		return
	}
	roots, err := r.svc.UnitRoots(n)
	if err != nil {
		r.printError(err)
		return
	}
	DisplayUnitRoots(r.out, n, roots, r.config.Precision)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdPrecision(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: precision <0-%d>%s\n", ColorRed(), config.MaxPrecision, ColorReset())
		return
	}
	p, err := strconv.Atoi(args[0])
	if err != nil || p < 0 || p > config.MaxPrecision {
		fmt.Fprintf(r.out, "%sInvalid precision: %s (must be between 0 and %d)%s\n", ColorRed(), args[0], config.MaxPrecision, ColorReset())
		return
	}
	r.config.Precision = p
	fmt.Fprintf(r.out, "Precision set to: %s%d%s decimals\n", ColorGreen(), p, ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  Precision:      %s%d%s decimals\n", ColorCyan(), r.config.Precision, ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ColorCyan(), r.config.Timeout, ColorReset())
	last := "none"
	if r.last != nil {
		last = r.last.Equation.String()
	}
	fmt.Fprintf(r.out, "  Last equation:  %s%s%s\n", ColorCyan(), last, ColorReset())
	fmt.Fprintf(r.out, "  Solvers:        %s%s%s\n", ColorCyan(), r.solverList(), ColorReset())
	fmt.Fprintln(r.out)
}

func (r *REPL) solverList() string {
	solvers := r.svc.Solvers()
	names := make([]string, len(solvers))
	for i, s := range solvers {
		names[i] = fmt.Sprintf("%s (%s)", s.Name(), s.Method())
	}
	return strings.Join(names, ", ")
}
