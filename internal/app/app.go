package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/agbru/galois/internal/cli"
	"github.com/agbru/galois/internal/config"
	apperrors "github.com/agbru/galois/internal/errors"
	"github.com/agbru/galois/internal/logging"
	"github.com/agbru/galois/internal/orchestration"
	"github.com/agbru/galois/internal/server"
	"github.com/agbru/galois/internal/service"
	"github.com/agbru/galois/internal/solver"
	"github.com/agbru/galois/internal/ui"
)

// Application represents the galois application instance.
// It encapsulates the configuration and provides methods to run
// the application in its various modes (CLI, server, REPL, verification).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Registry maps each supported degree to its closed-form solver.
	Registry *solver.Registry
	// Service solves equations and applies symmetries. Every mode goes
	// through it so that solve observers see all work.
	Service service.Service
	// ErrWriter is the writer for error output and structured logs
	// (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	// args[0] is program name, args[1:] are the actual arguments
	programName := "galois"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	registry := solver.DefaultRegistry()
	return &Application{
		Config:    cfg,
		Registry:  registry,
		Service:   newService(registry, cfg, errWriter),
		ErrWriter: errWriter,
	}, nil
}

// newService wires the solve observers (structured log lines and Prometheus
// counters) into a SolverService.
func newService(registry *solver.Registry, cfg config.AppConfig, logOut io.Writer) *service.SolverService {
	logger := logging.NewLevelLogger(logOut, "solver", cfg.LogLevel)
	subject := solver.NewSolveSubject(
		solver.NewLoggingObserver(logger.Zerolog(), 0),
		solver.NewMetricsObserver(),
	)
	return service.NewSolverService(registry, subject)
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (completion, server, REPL,
// verification, unit roots, catalog or solve).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.ServerMode:
		return a.runServer()
	case a.Config.Interactive:
		return a.runREPL(out)
	case a.Config.Verify > 0:
		return a.runVerify(ctx, out)
	case a.Config.Unit > 0:
		return a.runUnitRoots(out)
	case a.Config.ShowActions:
		return a.runActions(out)
	default:
		return a.runSolve(ctx, out)
	}
}

// runCompletion generates shell completion scripts, offering every action
// ID of the catalogs for degrees 2 to 4.
func (a *Application) runCompletion(out io.Writer) int {
	var ids []string
	seen := make(map[string]bool)
	for degree := solver.MinDegree; degree <= solver.MaxDegree; degree++ {
		actions, err := a.Service.Actions(degree)
		if err != nil {
			continue
		}
		for _, act := range actions {
			if !seen[act.ID] {
				seen[act.ID] = true
				ids = append(ids, act.ID)
			}
		}
	}
	if err := cli.GenerateCompletion(out, a.Config.Completion, ids); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Registry, a.Config,
		server.WithService(a.Service),
		server.WithLogger(logging.NewLevelLogger(a.ErrWriter, "server", a.Config.LogLevel)),
	)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive REPL mode.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Service, cli.REPLConfig{
		Precision: a.Config.Precision,
		Timeout:   a.Config.Timeout,
		Seed:      a.Config.Seed,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runVerify runs the round-trip verification batch and reports its outcome.
func (a *Application) runVerify(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	verbose := !a.Config.JSONOutput && !a.Config.Quiet
	if verbose {
		cli.PrintExecutionConfig(a.Config, out)
	}

	// Progress is only drawn for the human-readable report
	progressOut := out
	if !verbose {
		progressOut = io.Discard
	}

	report, err := orchestration.VerifyRoundTrips(ctx, a.Service, a.Config, progressOut)
	if err != nil {
		return apperrors.HandleSolveError(err, report.Duration, out, cli.CLIColorProvider{})
	}

	summary := report.Summary()
	switch {
	case a.Config.JSONOutput:
		if err := cli.WriteJSON(out, summary); err != nil {
			return apperrors.ExitErrorGeneric
		}
	case a.Config.Quiet:
		fmt.Fprintf(out, "%d/%d\n", summary.Matched, summary.Total)
	default:
		return orchestration.AnalyzeVerifyResults(report, out)
	}
	if summary.Mismatched > 0 {
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

// runUnitRoots prints the n-th roots of unity.
func (a *Application) runUnitRoots(out io.Writer) int {
	roots, err := a.Service.UnitRoots(a.Config.Unit)
	if err != nil {
		return apperrors.HandleSolveError(err, 0, out, cli.CLIColorProvider{})
	}
	switch {
	case a.Config.JSONOutput:
		return writeJSON(out, service.NewUnitRootsResponse(a.Config.Unit, roots, a.Config.Precision))
	case a.Config.Quiet:
		cli.DisplayQuietRoots(out, roots, a.Config.Precision)
	default:
		cli.DisplayUnitRoots(out, a.Config.Unit, roots, a.Config.Precision)
	}
	return apperrors.ExitSuccess
}

// runActions prints the symmetry catalog for the configured degree.
func (a *Application) runActions(out io.Writer) int {
	degree := a.Config.Degree()
	actions, err := a.Service.Actions(degree)
	if err != nil {
		return apperrors.HandleSolveError(err, 0, out, cli.CLIColorProvider{})
	}
	if a.Config.JSONOutput {
		return writeJSON(out, service.NewActionsResponse(degree, actions))
	}
	cli.DisplayActions(out, degree, actions)
	return apperrors.ExitSuccess
}

// runSolve solves the equation given by -coeffs (or a random one) and, with
// -action, applies a symmetry to its roots.
func (a *Application) runSolve(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	var (
		res service.Result
		err error
	)
	if len(a.Config.Coefficients) > 0 {
		res, err = a.Service.Solve(ctx, a.Config.Coefficients)
	} else {
		res, err = a.Service.Random(ctx, a.Config.Degree(), a.Config.Seed)
	}
	if err != nil {
		return apperrors.HandleSolveError(err, 0, out, cli.CLIColorProvider{})
	}

	if a.Config.Action != "" {
		return a.applyAction(ctx, res, out)
	}

	switch {
	case a.Config.JSONOutput:
		return writeJSON(out, service.NewSolveResponse(res, a.Config.Precision))
	case a.Config.Quiet:
		cli.DisplayQuietRoots(out, res.Roots, a.Config.Precision)
	default:
		cli.DisplaySolve(out, res, a.Config.Precision)
	}
	return apperrors.ExitSuccess
}

func (a *Application) applyAction(ctx context.Context, res service.Result, out io.Writer) int {
	applied, err := a.Service.Apply(ctx, res.Equation.Coefficients, a.Config.Action)
	if err != nil {
		return apperrors.HandleSolveError(err, 0, out, cli.CLIColorProvider{})
	}
	// Keep the generated roots and seed of a random equation.
	applied.Result = res

	switch {
	case a.Config.JSONOutput:
		return writeJSON(out, service.NewApplyResponse(applied, a.Config.Precision))
	case a.Config.Quiet:
		cli.DisplayQuietRoots(out, applied.After, a.Config.Precision)
	default:
		cli.DisplaySolve(out, res, a.Config.Precision)
		cli.DisplayApply(out, applied, a.Config.Precision)
	}
	return apperrors.ExitSuccess
}

func writeJSON(out io.Writer, v any) int {
	if err := cli.WriteJSON(out, v); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
