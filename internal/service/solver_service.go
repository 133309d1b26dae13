// Package service holds the solving logic shared by the HTTP server and the
// CLI: validation, solver lookup, observer notification and tracing.
package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/galois/internal/cplx"
	apperrors "github.com/agbru/galois/internal/errors"
	"github.com/agbru/galois/internal/galois"
	"github.com/agbru/galois/internal/solver"
)

// DefaultMaxUnitRoots bounds UnitRoots requests.
const DefaultMaxUnitRoots = 1024

// Result is the outcome of one solve.
type Result struct {
	Equation solver.Equation
	// Method names the closed form that produced the roots.
	Method string
	Roots  []cplx.Complex
	// Generated holds the roots a random equation was built from; nil for
	// equations given by coefficients.
	Generated []cplx.Complex
	// Seed is the seed of a random equation (0 for given coefficients).
	Seed     int64
	Residual float64
	Duration time.Duration
}

// ApplyResult pairs a solve with a symmetry action applied to its roots.
type ApplyResult struct {
	Result
	Action galois.GroupAction
	// After is Roots permuted by Action.
	After []cplx.Complex
}

// Service defines the operations exposed to the CLI and the HTTP server.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Solve validates and solves the equation with the given coefficients,
	// highest power first.
	Solve(ctx context.Context, coeffs []float64) (Result, error)
	// Random generates roots of the given degree from seed (0 picks a seed
	// from the clock), expands them and solves the resulting equation.
	Random(ctx context.Context, degree int, seed int64) (Result, error)
	// Apply solves the equation and permutes its roots with the catalog
	// action actionID.
	Apply(ctx context.Context, coeffs []float64, actionID string) (ApplyResult, error)
	// Actions returns the symmetry catalog for degree.
	Actions(degree int) ([]galois.GroupAction, error)
	// UnitRoots returns the n-th roots of unity.
	UnitRoots(n int) ([]cplx.Complex, error)
	// Solvers lists the registered solvers.
	Solvers() []solver.Solver
}

// SolverService implements Service on top of a solver.Registry. Every solve
// is traced with OpenTelemetry and reported to the observers of its subject.
type SolverService struct {
	registry     *solver.Registry
	subject      *solver.SolveSubject
	tracer       trace.Tracer
	maxUnitRoots int
}

// Ensure SolverService implements Service interface.
var _ Service = (*SolverService)(nil)

// NewSolverService creates a new instance of SolverService.
//
// Parameters:
//   - registry: The solvers to dispatch to (nil uses solver.DefaultRegistry).
//   - subject: The observers to notify after each solve (nil notifies nobody).
//
// Returns:
//   - *SolverService: The service.
func NewSolverService(registry *solver.Registry, subject *solver.SolveSubject) *SolverService {
	if registry == nil {
		registry = solver.DefaultRegistry()
	}
	if subject == nil {
		subject = solver.NewSolveSubject()
	}
	return &SolverService{
		registry:     registry,
		subject:      subject,
		tracer:       otel.Tracer("github.com/agbru/galois/internal/service"),
		maxUnitRoots: DefaultMaxUnitRoots,
	}
}

// WithMaxUnitRoots returns a copy of s that rejects UnitRoots requests above
// limit.
func (s *SolverService) WithMaxUnitRoots(limit int) *SolverService {
	cp := *s
	cp.maxUnitRoots = limit
	return &cp
}

// Solve implements Service.
func (s *SolverService) Solve(ctx context.Context, coeffs []float64) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "Solve")
	defer span.End()
	return s.solve(ctx, span, solver.NewEquation(coeffs...))
}

func (s *SolverService) solve(ctx context.Context, span trace.Span, eq solver.Equation) (Result, error) {
	span.SetAttributes(attribute.Int("galois.degree", eq.Degree))
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "canceled")
		return Result{}, err
	}

	start := time.Now()
	roots, err := s.registry.Solve(eq)
	duration := time.Since(start)
	if err != nil {
		s.subject.Notify(solver.SolveEvent{Equation: eq, Duration: duration, Err: err})
		span.RecordError(err)
		span.SetStatus(codes.Error, "rejected")
		return Result{}, apperrors.SolveError{Degree: eq.Degree, Cause: err}
	}

	residual := solver.MaxResidual(eq.Coefficients, roots)
	if math.IsNaN(residual) || math.IsInf(residual, 0) {
		err = apperrors.NewValidationError("coefficients",
			"coefficients are out of range: the residual is not finite in double precision", residual)
		s.subject.Notify(solver.SolveEvent{Equation: eq, Duration: duration, Err: err})
		span.RecordError(err)
		span.SetStatus(codes.Error, "rejected")
		return Result{}, apperrors.SolveError{Degree: eq.Degree, Cause: err}
	}
	s.subject.Notify(solver.SolveEvent{Equation: eq, Roots: roots, Residual: residual, Duration: duration})
	span.SetAttributes(attribute.Float64("galois.residual", residual))

	method := ""
	if sv, err := s.registry.Get(eq.Degree); err == nil {
		method = sv.Method()
	}
	return Result{
		Equation: eq,
		Method:   method,
		Roots:    roots,
		Residual: residual,
		Duration: duration,
	}, nil
}

// remnantTolerance bounds the imaginary parts dropped when a generated
// root set is expanded to real coefficients.
const remnantTolerance = 1e-9

// Random implements Service.
func (s *SolverService) Random(ctx context.Context, degree int, seed int64) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "Random")
	defer span.End()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	span.SetAttributes(attribute.Int64("galois.seed", seed))

	generated, err := solver.GenerateRandomRoots(solver.NewRand(seed), degree)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rejected")
		return Result{}, apperrors.SolveError{Degree: degree, Cause: err}
	}
	coeffs, err := solver.RootsToCoefficientsChecked(generated, remnantTolerance)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rejected")
		return Result{}, apperrors.SolveError{Degree: degree, Cause: err}
	}
	res, err := s.solve(ctx, span, solver.NewEquation(coeffs...))
	if err != nil {
		return Result{}, err
	}
	res.Generated = generated
	res.Seed = seed
	return res, nil
}

// Apply implements Service.
func (s *SolverService) Apply(ctx context.Context, coeffs []float64, actionID string) (ApplyResult, error) {
	ctx, span := s.tracer.Start(ctx, "Apply", trace.WithAttributes(attribute.String("galois.action", actionID)))
	defer span.End()

	res, err := s.solve(ctx, span, solver.NewEquation(coeffs...))
	if err != nil {
		return ApplyResult{}, err
	}
	return s.applyTo(span, res, actionID)
}

func (s *SolverService) applyTo(span trace.Span, res Result, actionID string) (ApplyResult, error) {
	action, err := galois.FindAction(res.Equation.Degree, actionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown action")
		return ApplyResult{}, err
	}
	after, err := galois.ApplyToRoots(action.Perm, res.Roots)
	if err != nil {
		span.RecordError(err)
		return ApplyResult{}, err
	}
	return ApplyResult{Result: res, Action: action, After: after}, nil
}

// Actions implements Service.
func (s *SolverService) Actions(degree int) ([]galois.GroupAction, error) {
	return galois.Actions(degree)
}

// UnitRoots implements Service.
func (s *SolverService) UnitRoots(n int) ([]cplx.Complex, error) {
	if n < 1 || (s.maxUnitRoots > 0 && n > s.maxUnitRoots) {
		return nil, apperrors.NewValidationError("n",
			fmt.Sprintf("must be between 1 and %d", s.maxUnitRoots), n)
	}
	return solver.UnitRoots(n), nil
}

// Solvers implements Service.
func (s *SolverService) Solvers() []solver.Solver {
	return s.registry.List()
}
