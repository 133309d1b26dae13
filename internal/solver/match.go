package solver

import (
	"math"

	"github.com/agbru/galois/internal/cplx"
)

// MatchRoots reports whether got and want are the same multiset of complex
// numbers up to reordering, each root agreeing component-wise within tol.
// Each expected root is paired with the nearest unused computed root.
func MatchRoots(got, want []cplx.Complex, tol float64) bool {
	if len(got) != len(want) {
		return false
	}
	used := make([]bool, len(got))
	for _, w := range want {
		best, bestDist := -1, math.Inf(1)
		for i, g := range got {
			if used[i] {
				continue
			}
			if d := g.Sub(w).Abs(); d < bestDist {
				best, bestDist = i, d
			}
		}
		if best < 0 || !got[best].ApproxEqual(w, tol) {
			return false
		}
		used[best] = true
	}
	return true
}
