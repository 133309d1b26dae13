// Package models defines the JSON payloads exchanged by the galois HTTP API
// and emitted by the CLI's -json mode.
package models

// Root is one computed root. Text is the formatted value at the requested
// precision ("2.000", "-0.500 + 0.866i").
type Root struct {
	Re   float64 `json:"re"`
	Im   float64 `json:"im"`
	Text string  `json:"text"`
}

// SolveResponse is the result of solving one equation.
type SolveResponse struct {
	// Equation is the human-readable equation ("x^2 - 5x + 6 = 0").
	Equation     string    `json:"equation"`
	Degree       int       `json:"degree"`
	Coefficients []float64 `json:"coefficients"`
	// Method names the closed form used ("Cardano").
	Method string `json:"method"`
	Roots  []Root `json:"roots"`
	// Generated holds the roots a random equation was built from.
	Generated []Root `json:"generated,omitempty"`
	// Seed is set for random equations.
	Seed *int64 `json:"seed,omitempty"`
	// MaxResidual is max |p(root)| over the computed roots.
	MaxResidual float64 `json:"max_residual"`
	Duration    string  `json:"duration"`
}

// Action is one catalog entry of a symmetry group.
type Action struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Perm        []int  `json:"perm"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Sign        int    `json:"sign"`
}

// ActionsResponse lists the symmetry actions for a degree.
type ActionsResponse struct {
	Degree  int      `json:"degree"`
	Group   string   `json:"group"`
	Actions []Action `json:"actions"`
}

// ApplyResponse shows the roots of an equation before and after a symmetry
// action permutes them.
type ApplyResponse struct {
	Equation string `json:"equation"`
	Action   Action `json:"action"`
	Before   []Root `json:"before"`
	After    []Root `json:"after"`
}

// UnitRootsResponse lists the n-th roots of unity.
type UnitRootsResponse struct {
	N     int    `json:"n"`
	Roots []Root `json:"roots"`
}

// SolverInfo describes a registered solver.
type SolverInfo struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	Degree int    `json:"degree"`
}

// SolversResponse lists the registered solvers.
type SolversResponse struct {
	Solvers []SolverInfo `json:"solvers"`
}

// VerifySummary reports a batch of round-trip checks.
type VerifySummary struct {
	Total         int     `json:"total"`
	Matched       int     `json:"matched"`
	Mismatched    int     `json:"mismatched"`
	WorstResidual float64 `json:"worst_residual"`
	Duration      string  `json:"duration"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
	// Field names the offending input for validation failures.
	Field string `json:"field,omitempty"`
}
