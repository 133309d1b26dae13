package solver

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/agbru/galois/internal/cplx"
)

// SolveEvent describes one completed solve.
type SolveEvent struct {
	Equation Equation
	Roots    []cplx.Complex
	// Residual is MaxResidual of the roots against the equation.
	Residual float64
	Duration time.Duration
	// Err is set when validation failed; Roots is then nil.
	Err error
}

// SolveObserver is notified after each solve.
type SolveObserver interface {
	OnSolve(event SolveEvent)
}

// SolveSubject fans SolveEvents out to registered observers in registration
// order. It is safe for concurrent use.
type SolveSubject struct {
	observers []SolveObserver
	mu        sync.RWMutex
}

// NewSolveSubject creates a subject with the given observers registered.
func NewSolveSubject(observers ...SolveObserver) *SolveSubject {
	s := &SolveSubject{observers: make([]SolveObserver, 0, len(observers))}
	for _, o := range observers {
		s.Register(o)
	}
	return s
}

// Register adds an observer. A nil observer is ignored.
func (s *SolveSubject) Register(observer SolveObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unregister removes an observer. Unknown observers are ignored.
func (s *SolveSubject) Unregister(observer SolveObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify delivers event to every registered observer.
func (s *SolveSubject) Notify(event SolveEvent) {
	s.mu.RLock()
	observers := make([]SolveObserver, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, o := range observers {
		o.OnSolve(event)
	}
}

// ObserverCount returns the number of registered observers.
func (s *SolveSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging Observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver logs each solve with zerolog: debug level for successes,
// warn level when the residual exceeds the configured threshold or the
// equation was rejected.
type LoggingObserver struct {
	logger            zerolog.Logger
	residualThreshold float64
}

// NewLoggingObserver creates an observer that logs solves.
//
// Parameters:
//   - logger: The zerolog logger to use.
//   - residualThreshold: Residuals above this are logged as warnings
//     (defaults to 1e-6 when non-positive).
//
// Returns:
//   - *LoggingObserver: A new observer that logs to zerolog.
func NewLoggingObserver(logger zerolog.Logger, residualThreshold float64) *LoggingObserver {
	if residualThreshold <= 0 {
		residualThreshold = 1e-6
	}
	return &LoggingObserver{logger: logger, residualThreshold: residualThreshold}
}

// OnSolve implements SolveObserver.
func (o *LoggingObserver) OnSolve(event SolveEvent) {
	if event.Err != nil {
		o.logger.Warn().
			Err(event.Err).
			Int("degree", event.Equation.Degree).
			Msg("equation rejected")
		return
	}
	e := o.logger.Debug()
	if event.Residual > o.residualThreshold {
		e = o.logger.Warn()
	}
	e.Int("degree", event.Equation.Degree).
		Str("equation", event.Equation.String()).
		Float64("residual", event.Residual).
		Dur("duration", event.Duration).
		Msg("equation solved")
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics Observer (Prometheus)
// ─────────────────────────────────────────────────────────────────────────────

var (
	// Registered once globally to avoid duplicate registration errors.
	solvesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "galois_solves_total",
			Help: "Total number of equations solved, by degree and outcome.",
		},
		[]string{"degree", "outcome"},
	)
	residualHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "galois_solve_residual",
			Help:    "Maximum residual |P(root)| of computed roots.",
			Buckets: prometheus.ExponentialBuckets(1e-16, 10, 14),
		},
		[]string{"degree"},
	)
)

// MetricsObserver exports solve counts and residuals to Prometheus.
type MetricsObserver struct {
	solves   *prometheus.CounterVec
	residual *prometheus.HistogramVec
}

// NewMetricsObserver creates an observer that updates Prometheus metrics.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{solves: solvesTotal, residual: residualHistogram}
}

// OnSolve implements SolveObserver.
func (o *MetricsObserver) OnSolve(event SolveEvent) {
	degree := strconv.Itoa(event.Equation.Degree)
	if event.Err != nil {
		o.solves.WithLabelValues(degree, "rejected").Inc()
		return
	}
	o.solves.WithLabelValues(degree, "solved").Inc()
	o.residual.WithLabelValues(degree).Observe(event.Residual)
}

// ─────────────────────────────────────────────────────────────────────────────
// No-Op Observer (Null Object Pattern)
// ─────────────────────────────────────────────────────────────────────────────

// NoOpObserver discards all events.
type NoOpObserver struct{}

// OnSolve implements SolveObserver by doing nothing.
func (NoOpObserver) OnSolve(SolveEvent) {}
