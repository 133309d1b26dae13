package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/agbru/galois/internal/cplx"
	apperrors "github.com/agbru/galois/internal/errors"
	"github.com/agbru/galois/internal/solver"
)

// recordingObserver captures solve events for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []solver.SolveEvent
}

func (r *recordingObserver) OnSolve(e solver.SolveEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func newTestService() (*SolverService, *recordingObserver) {
	rec := &recordingObserver{}
	return NewSolverService(nil, solver.NewSolveSubject(rec)), rec
}

func TestNewSolverServiceDefaults(t *testing.T) {
	t.Parallel()
	svc := NewSolverService(nil, nil)
	if svc.registry == nil || svc.subject == nil || svc.tracer == nil {
		t.Fatal("constructor must fill nil dependencies")
	}
	if len(svc.Solvers()) != 3 {
		t.Errorf("expected 3 default solvers, got %d", len(svc.Solvers()))
	}
}

func TestSolve(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		coeffs []float64
		want   []cplx.Complex
		method string
	}{
		{"quadratic", []float64{1, -5, 6}, []cplx.Complex{cplx.Real(3), cplx.Real(2)}, "quadratic formula"},
		{"cubic", []float64{1, -6, 11, -6}, []cplx.Complex{cplx.Real(1), cplx.Real(2), cplx.Real(3)}, "Cardano"},
		{"quartic", []float64{1, 0, -5, 0, 4}, []cplx.Complex{cplx.Real(1), cplx.Real(-1), cplx.Real(2), cplx.Real(-2)}, "Ferrari"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, rec := newTestService()
			res, err := svc.Solve(context.Background(), tt.coeffs)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !solver.MatchRoots(res.Roots, tt.want, 1e-9) {
				t.Errorf("roots %v, want %v", res.Roots, tt.want)
			}
			if res.Method != tt.method {
				t.Errorf("method %q, want %q", res.Method, tt.method)
			}
			if res.Residual > 1e-9 {
				t.Errorf("residual too large: %g", res.Residual)
			}
			if res.Generated != nil || res.Seed != 0 {
				t.Error("given equations carry no generated roots")
			}
			if rec.count() != 1 {
				t.Errorf("expected 1 event, got %d", rec.count())
			}
		})
	}
}

func TestSolveRejectsInvalid(t *testing.T) {
	t.Parallel()
	svc, rec := newTestService()

	_, err := svc.Solve(context.Background(), []float64{0, 1, 2})
	if !apperrors.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var se apperrors.SolveError
	if !errors.As(err, &se) || se.Degree != 2 {
		t.Errorf("expected SolveError for degree 2, got %#v", err)
	}
	if rec.count() != 1 || rec.events[0].Err == nil {
		t.Error("rejections must be reported to observers")
	}

	if _, err := svc.Solve(context.Background(), []float64{1, 2}); !apperrors.IsValidationError(err) {
		t.Errorf("linear equation should be rejected, got %v", err)
	}
}

func TestSolveRejectsOverflow(t *testing.T) {
	t.Parallel()
	svc, rec := newTestService()

	for _, coeffs := range [][]float64{{1, 1e200, 1}, {1, 0, 0, 1e300}} {
		res, err := svc.Solve(context.Background(), coeffs)
		if !apperrors.IsValidationError(err) {
			t.Fatalf("Solve(%v): expected validation error, got %v", coeffs, err)
		}
		if res.Roots != nil {
			t.Errorf("Solve(%v) returned roots %v", coeffs, res.Roots)
		}
	}
	if rec.count() != 2 {
		t.Errorf("observers saw %d events, want 2", rec.count())
	}

	if _, err := svc.Apply(context.Background(), []float64{1, 1e200, 1}, "swap"); !apperrors.IsValidationError(err) {
		t.Errorf("Apply: expected validation error, got %v", err)
	}
}

func TestSolveCanceledContext(t *testing.T) {
	t.Parallel()
	svc, rec := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Solve(ctx, []float64{1, 0, -1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if rec.count() != 0 {
		t.Error("canceled solves must not be reported")
	}
}

func TestRandom(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	for degree := solver.MinDegree; degree <= solver.MaxDegree; degree++ {
		res, err := svc.Random(context.Background(), degree, 42)
		if err != nil {
			t.Fatalf("degree %d: %v", degree, err)
		}
		if res.Seed != 42 || len(res.Generated) != degree {
			t.Errorf("degree %d: seed %d, %d generated roots", degree, res.Seed, len(res.Generated))
		}
		if !solver.MatchRoots(res.Roots, res.Generated, 1e-6) {
			t.Errorf("degree %d: solved %v, generated %v", degree, res.Roots, res.Generated)
		}
	}

	a, _ := svc.Random(context.Background(), 3, 7)
	b, _ := svc.Random(context.Background(), 3, 7)
	for i := range a.Generated {
		if a.Generated[i] != b.Generated[i] {
			t.Fatal("the same seed must generate the same roots")
		}
	}

	c, err := svc.Random(context.Background(), 2, 0)
	if err != nil || c.Seed == 0 {
		t.Errorf("seed 0 should be replaced by a clock seed, got %d (%v)", c.Seed, err)
	}

	if _, err := svc.Random(context.Background(), 5, 1); !apperrors.IsValidationError(err) {
		t.Errorf("degree 5 should be rejected, got %v", err)
	}
}

func TestApply(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	res, err := svc.Apply(context.Background(), []float64{1, -6, 11, -6}, "r1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Action.Label != "(123)" {
		t.Errorf("label %q", res.Action.Label)
	}
	for i := range res.After {
		if res.After[i] != res.Roots[res.Action.Perm[i]] {
			t.Errorf("after[%d] = %v, want roots[%d]", i, res.After[i], res.Action.Perm[i])
		}
	}

	if _, err := svc.Apply(context.Background(), []float64{1, -6, 11, -6}, "r90"); !apperrors.IsValidationError(err) {
		t.Errorf("a degree-4 action on a cubic should be rejected, got %v", err)
	}

	swapped, err := svc.Apply(context.Background(), []float64{1, 0, -1}, "swap")
	if err != nil || swapped.After[0] != swapped.Roots[1] || swapped.After[1] != swapped.Roots[0] {
		t.Errorf("swap: %v %v", swapped.After, err)
	}
}

func TestActionsAndUnitRoots(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	actions, err := svc.Actions(4)
	if err != nil || len(actions) != 8 {
		t.Errorf("expected 8 quartic actions, got %d (%v)", len(actions), err)
	}
	if _, err := svc.Actions(1); !apperrors.IsValidationError(err) {
		t.Errorf("degree 1 should be rejected, got %v", err)
	}

	roots, err := svc.UnitRoots(6)
	if err != nil || len(roots) != 6 {
		t.Fatalf("expected 6 roots, got %d (%v)", len(roots), err)
	}
	for _, n := range []int{0, -1, DefaultMaxUnitRoots + 1} {
		if _, err := svc.UnitRoots(n); !apperrors.IsValidationError(err) {
			t.Errorf("n=%d should be rejected, got %v", n, err)
		}
	}

	limited := svc.WithMaxUnitRoots(4)
	if _, err := limited.UnitRoots(5); err == nil {
		t.Error("limit should apply to the copy")
	}
	if _, err := svc.UnitRoots(5); err != nil {
		t.Error("limit must not leak into the original")
	}
}

func TestResponses(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	res, err := svc.Random(context.Background(), 2, 11)
	if err != nil {
		t.Fatal(err)
	}
	resp := NewSolveResponse(res, 2)
	if resp.Degree != 2 || len(resp.Roots) != 2 || len(resp.Generated) != 2 {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.Seed == nil || *resp.Seed != 11 {
		t.Error("random responses carry their seed")
	}
	if resp.Roots[0].Text != res.Roots[0].Format(2) {
		t.Errorf("text %q", resp.Roots[0].Text)
	}

	given, _ := svc.Solve(context.Background(), []float64{1, -5, 6})
	if r := NewSolveResponse(given, 3); r.Seed != nil || r.Generated != nil || r.Equation != "x^2 - 5x + 6 = 0" {
		t.Errorf("unexpected response for given equation %+v", r)
	}

	actions, _ := svc.Actions(3)
	ar := NewActionsResponse(3, actions)
	if ar.Group != "S3" || len(ar.Actions) != 6 || ar.Actions[1].Order != 3 || ar.Actions[3].Sign != -1 {
		t.Errorf("unexpected actions response %+v", ar)
	}

	sr := NewSolversResponse(svc.Solvers())
	if len(sr.Solvers) != 3 || sr.Solvers[0].Degree != 2 || sr.Solvers[2].Method != "Ferrari" {
		t.Errorf("unexpected solvers response %+v", sr)
	}

	ur := NewUnitRootsResponse(4, solver.UnitRoots(4), 3)
	if ur.Roots[1].Text != "1.000i" {
		t.Errorf("i should render as 1.000i, got %q", ur.Roots[1].Text)
	}
}
