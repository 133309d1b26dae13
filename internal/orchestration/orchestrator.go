// Package orchestration runs batches of round-trip checks: random roots are
// expanded into coefficients, re-solved in closed form and matched against
// the roots they were generated from.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/galois/internal/cli"
	"github.com/agbru/galois/internal/config"
	apperrors "github.com/agbru/galois/internal/errors"
	"github.com/agbru/galois/internal/service"
	"github.com/agbru/galois/internal/solver"
	"github.com/agbru/galois/internal/ui"
	"github.com/agbru/galois/pkg/models"
)

// MatchTolerance is the component-wise tolerance within which re-solved
// roots must agree with the generated ones.
const MatchTolerance = 1e-6

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking workers when
// the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// progressSteps is the number of progress updates a worker sends over its
// share of the batch.
const progressSteps = 100

// CheckResult is the outcome of one round-trip check.
type CheckResult struct {
	// Index is the position of the check in the batch.
	Index int
	// Degree is the degree of the generated equation.
	Degree int
	// Seed reproduces the check with `galois -random <Degree> -seed <Seed>`.
	Seed     int64
	Equation solver.Equation
	Residual float64
	// Matched reports whether the re-solved roots match the generated ones
	// within MatchTolerance.
	Matched bool
	// Err is set when the equation could not be generated or solved.
	Err error
}

// Report collects the results of a verification batch.
type Report struct {
	Checks   []CheckResult
	Duration time.Duration
}

// Summary condenses the report for JSON output.
func (r Report) Summary() models.VerifySummary {
	s := models.VerifySummary{Total: len(r.Checks), Duration: r.Duration.String()}
	for _, c := range r.Checks {
		if c.Matched {
			s.Matched++
		} else {
			s.Mismatched++
		}
		if c.Residual > s.WorstResidual {
			s.WorstResidual = c.Residual
		}
	}
	return s
}

// Failures returns the checks that did not match, in batch order.
func (r Report) Failures() []CheckResult {
	var failed []CheckResult
	for _, c := range r.Checks {
		if !c.Matched {
			failed = append(failed, c)
		}
	}
	return failed
}

// checkDegree returns the degree of check i: the configured degree, or the
// supported degrees in turn.
func checkDegree(cfg config.AppConfig, i int) int {
	if cfg.Random != 0 {
		return cfg.Random
	}
	return solver.MinDegree + i%(solver.MaxDegree-solver.MinDegree+1)
}

// checkSeed derives the seed of check i from the batch seed. Zero seeds the
// service from the clock, so it is mapped to a negative seed no other check
// of the batch uses.
func checkSeed(base int64, i int) int64 {
	s := base + int64(i)
	if s == 0 {
		return -1 - int64(i)
	}
	return s
}

// VerifyRoundTrips runs cfg.Verify round-trip checks on up to cfg.Workers
// concurrent workers and reports their progress to out.
//
// Each worker takes every Workers-th check, so the batch is reproducible
// from cfg.Seed whatever the scheduling. Mismatches are recorded, not
// returned as errors: the returned error is only set when ctx ends before
// the batch completes.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - svc: The service used to generate and solve the equations.
//   - cfg: The application configuration (Verify, Random, Seed, Workers).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - Report: The results of the completed checks.
//   - error: The context error if the batch was interrupted.
func VerifyRoundTrips(ctx context.Context, svc service.Service, cfg config.AppConfig, out io.Writer) (Report, error) {
	start := time.Now()
	total := cfg.Verify
	workers := cfg.Workers
	if workers > total {
		workers = total
	}
	if workers < 1 {
		workers = 1
	}
	base := cfg.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	results := make([]CheckResult, total)
	done := make([]bool, total)
	progressChan := make(chan cli.ProgressUpdate, workers*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, workers, out)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		worker := w
		g.Go(func() error {
			share := (total - worker + workers - 1) / workers
			step := share / progressSteps
			if step < 1 {
				step = 1
			}
			completed := 0
			for i := worker; i < total; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i] = runCheck(ctx, svc, i, checkDegree(cfg, i), checkSeed(base, i))
				if apperrors.IsContextError(results[i].Err) {
					return results[i].Err
				}
				done[i] = true
				completed++
				if completed%step == 0 || completed == share {
					select {
					case progressChan <- cli.ProgressUpdate{WorkerIndex: worker, Value: float64(completed) / float64(share)}:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
			return nil
		})
	}

	err := g.Wait()
	close(progressChan)
	displayWg.Wait()

	report := Report{Duration: time.Since(start)}
	for i, ok := range done {
		if ok {
			report.Checks = append(report.Checks, results[i])
		}
	}
	return report, err
}

func runCheck(ctx context.Context, svc service.Service, index, degree int, seed int64) CheckResult {
	res, err := svc.Random(ctx, degree, seed)
	c := CheckResult{Index: index, Degree: degree, Seed: seed, Err: err}
	if err != nil {
		return c
	}
	c.Equation = res.Equation
	c.Residual = res.Residual
	c.Matched = solver.MatchRoots(res.Roots, res.Generated, MatchTolerance)
	return c
}

// maxListedFailures bounds the failing checks printed by AnalyzeVerifyResults.
const maxListedFailures = 5

type degreeStats struct {
	total, matched int
	worst          float64
}

// AnalyzeVerifyResults prints a per-degree summary of a verification batch
// and lists the first failing checks with the seeds that reproduce them.
//
// Parameters:
//   - report: The batch results.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: ExitSuccess when every check matched, ExitErrorMismatch otherwise.
func AnalyzeVerifyResults(report Report, out io.Writer) int {
	stats := make(map[int]*degreeStats)
	for _, c := range report.Checks {
		s, ok := stats[c.Degree]
		if !ok {
			s = &degreeStats{}
			stats[c.Degree] = s
		}
		s.total++
		if c.Matched {
			s.matched++
		}
		if c.Residual > s.worst {
			s.worst = c.Residual
		}
	}
	degrees := make([]int, 0, len(stats))
	for d := range stats {
		degrees = append(degrees, d)
	}
	sort.Ints(degrees)

	fmt.Fprintf(out, "\n--- Verification Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sDegree%s\t%sMethod%s\t%sChecks%s\t%sMatched%s\t%sWorst residual%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	for _, d := range degrees {
		s := stats[d]
		method := "?"
		if sv, err := solver.DefaultRegistry().Get(d); err == nil {
			method = sv.Method()
		}
		color := ui.ColorGreen()
		if s.matched != s.total {
			color = ui.ColorRed()
		}
		fmt.Fprintf(tw, "%s%d%s\t%s\t%d\t%s%d%s\t%s%.3e%s\n",
			ui.ColorBlue(), d, ui.ColorReset(), method, s.total,
			color, s.matched, ui.ColorReset(),
			ui.ColorYellow(), s.worst, ui.ColorReset())
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	failures := report.Failures()
	if len(failures) == 0 {
		fmt.Fprintf(out, "\nGlobal Status: %sSuccess%s. %d equations re-solved within %g in %s.\n",
			ui.ColorGreen(), ui.ColorReset(), len(report.Checks), MatchTolerance, cli.FormatExecutionDuration(report.Duration))
		return apperrors.ExitSuccess
	}

	fmt.Fprintf(out, "\nGlobal Status: %sCRITICAL ERROR!%s %d of %d equations did not re-solve to their roots.\n",
		ui.ColorRed(), ui.ColorReset(), len(failures), len(report.Checks))
	for i, c := range failures {
		if i == maxListedFailures {
			fmt.Fprintf(out, "  ... and %d more\n", len(failures)-maxListedFailures)
			break
		}
		if c.Err != nil {
			fmt.Fprintf(out, "  degree %d, seed %d: %v\n", c.Degree, c.Seed, c.Err)
			continue
		}
		fmt.Fprintf(out, "  degree %d, seed %d: %s (residual %.3e)\n", c.Degree, c.Seed, c.Equation, c.Residual)
	}
	return apperrors.ExitErrorMismatch
}
