package solver

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/galois/internal/cplx"
	apperrors "github.com/agbru/galois/internal/errors"
)

// Solver is a closed-form solver for a single polynomial degree.
type Solver interface {
	// Name is a short identifier such as "cubic".
	Name() string
	// Method names the formula used, e.g. "Cardano".
	Method() string
	// Degree is the polynomial degree this solver handles.
	Degree() int
	// Solve returns the roots for coefficients ordered highest power first.
	// The coefficient count must be Degree()+1.
	Solve(coeffs []float64) []cplx.Complex
}

type formulaSolver struct {
	name   string
	method string
	degree int
	fn     func(c []float64) []cplx.Complex
}

func (s formulaSolver) Name() string                          { return s.name }
func (s formulaSolver) Method() string                        { return s.method }
func (s formulaSolver) Degree() int                           { return s.degree }
func (s formulaSolver) Solve(coeffs []float64) []cplx.Complex { return s.fn(coeffs) }

// QuadraticSolver returns the Solver backed by Quadratic.
func QuadraticSolver() Solver {
	return formulaSolver{name: "quadratic", method: "quadratic formula", degree: 2,
		fn: func(c []float64) []cplx.Complex { return Quadratic(c[0], c[1], c[2]) }}
}

// CubicSolver returns the Solver backed by Cubic.
func CubicSolver() Solver {
	return formulaSolver{name: "cubic", method: "Cardano", degree: 3,
		fn: func(c []float64) []cplx.Complex { return Cubic(c[0], c[1], c[2], c[3]) }}
}

// QuarticSolver returns the Solver backed by Quartic.
func QuarticSolver() Solver {
	return formulaSolver{name: "quartic", method: "Ferrari", degree: 4,
		fn: func(c []float64) []cplx.Complex { return Quartic(c[0], c[1], c[2], c[3], c[4]) }}
}

// Registry maps a polynomial degree to the Solver that handles it.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	solvers map[int]Solver
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{solvers: make(map[int]Solver)}
}

// NewDefaultRegistry creates a Registry with the quadratic, cubic and quartic
// solvers pre-registered.
//
// Returns:
//   - *Registry: A registry covering degrees 2 to 4.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(QuadraticSolver())
	_ = r.Register(CubicSolver())
	_ = r.Register(QuarticSolver())
	return r
}

// Register adds s, replacing any solver previously registered for the same
// degree.
//
// Parameters:
//   - s: The solver to register.
//
// Returns:
//   - error: An error if s is nil or its degree is outside the supported range.
func (r *Registry) Register(s Solver) error {
	if s == nil {
		return fmt.Errorf("cannot register a nil solver")
	}
	if d := s.Degree(); d < MinDegree || d > MaxDegree {
		return fmt.Errorf("solver %q has unsupported degree %d", s.Name(), d)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.solvers[s.Degree()] = s
	return nil
}

// Get returns the solver registered for degree.
//
// Returns:
//   - Solver: The registered solver.
//   - error: An apperrors.ValidationError on field "degree" if none is registered.
func (r *Registry) Get(degree int) (Solver, error) {
	r.mu.RLock()
	s, ok := r.solvers[degree]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewValidationError("degree", fmt.Sprintf("no solver registered for degree %d", degree), degree)
	}
	return s, nil
}

// List returns the registered solvers ordered by degree.
func (r *Registry) List() []Solver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Solver, 0, len(r.solvers))
	for _, s := range r.solvers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Degree() < out[j].Degree() })
	return out
}

// Solve validates eq and runs the solver registered for its degree.
func (r *Registry) Solve(eq Equation) ([]cplx.Complex, error) {
	if err := eq.Validate(); err != nil {
		return nil, err
	}
	s, err := r.Get(eq.Degree)
	if err != nil {
		return nil, err
	}
	return checkFinite(s.Solve(eq.Coefficients))
}

var defaultRegistry = NewDefaultRegistry()

// DefaultRegistry returns the process-wide registry with the built-in
// solvers.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
