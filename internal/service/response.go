package service

import (
	"fmt"

	"github.com/agbru/galois/internal/cplx"
	"github.com/agbru/galois/internal/galois"
	"github.com/agbru/galois/internal/solver"
	"github.com/agbru/galois/pkg/models"
)

// ToRoots converts roots to their JSON form, formatted with precision
// decimals.
func ToRoots(roots []cplx.Complex, precision int) []models.Root {
	out := make([]models.Root, len(roots))
	for i, r := range roots {
		out[i] = models.Root{Re: r.Re, Im: r.Im, Text: r.Format(precision)}
	}
	return out
}

// ToAction converts a catalog action to its JSON form.
func ToAction(a galois.GroupAction) models.Action {
	return models.Action{
		ID:          a.ID,
		Label:       a.Label,
		Perm:        append([]int(nil), a.Perm...),
		Description: a.Description,
		Order:       galois.Order(a.Perm),
		Sign:        galois.Sign(a.Perm),
	}
}

// GroupName returns the symmetric group acting on degree roots ("S3").
func GroupName(degree int) string {
	return fmt.Sprintf("S%d", degree)
}

// NewSolveResponse builds the JSON payload for a solve.
func NewSolveResponse(res Result, precision int) models.SolveResponse {
	resp := models.SolveResponse{
		Equation:     res.Equation.String(),
		Degree:       res.Equation.Degree,
		Coefficients: res.Equation.Coefficients,
		Method:       res.Method,
		Roots:        ToRoots(res.Roots, precision),
		MaxResidual:  res.Residual,
		Duration:     res.Duration.String(),
	}
	if res.Generated != nil {
		resp.Generated = ToRoots(res.Generated, precision)
		seed := res.Seed
		resp.Seed = &seed
	}
	return resp
}

// NewActionsResponse builds the JSON payload for a degree's catalog.
func NewActionsResponse(degree int, actions []galois.GroupAction) models.ActionsResponse {
	resp := models.ActionsResponse{Degree: degree, Group: GroupName(degree), Actions: make([]models.Action, len(actions))}
	for i, a := range actions {
		resp.Actions[i] = ToAction(a)
	}
	return resp
}

// NewApplyResponse builds the JSON payload for an applied action.
func NewApplyResponse(res ApplyResult, precision int) models.ApplyResponse {
	return models.ApplyResponse{
		Equation: res.Equation.String(),
		Action:   ToAction(res.Action),
		Before:   ToRoots(res.Roots, precision),
		After:    ToRoots(res.After, precision),
	}
}

// NewUnitRootsResponse builds the JSON payload for the n-th roots of unity.
func NewUnitRootsResponse(n int, roots []cplx.Complex, precision int) models.UnitRootsResponse {
	return models.UnitRootsResponse{N: n, Roots: ToRoots(roots, precision)}
}

// NewSolversResponse builds the JSON payload listing the registered solvers.
func NewSolversResponse(solvers []solver.Solver) models.SolversResponse {
	resp := models.SolversResponse{Solvers: make([]models.SolverInfo, len(solvers))}
	for i, s := range solvers {
		resp.Solvers[i] = models.SolverInfo{Name: s.Name(), Method: s.Method(), Degree: s.Degree()}
	}
	return resp
}
