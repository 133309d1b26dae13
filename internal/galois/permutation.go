// Package galois models permutations of an ordered root list and the fixed
// catalogs of named symmetry actions for S2, S3 and S4 used to visualize
// how the symmetric group acts on the roots of a polynomial.
//
// A Permutation p of length n is a bijection on 0..n-1. p[i] = j is read as
// "the element at position i moves to position j". Apply uses the gather
// form out[i] = items[p[i]]; Compose(a, b) applies a first, then b.
package galois

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/agbru/galois/internal/errors"
)

// Permutation is a bijection on {0..n-1}.
type Permutation []int

// Identity returns the identity permutation 0..n-1.
func Identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Validate checks that p is a bijection on 0..len(p)-1.
//
// Returns:
//   - error: An apperrors.ValidationError on field "perm" naming the first
//     out-of-range or repeated value, or nil.
func Validate(p Permutation) error {
	seen := make([]bool, len(p))
	for i, v := range p {
		if v < 0 || v >= len(p) {
			return apperrors.NewValidationError("perm",
				fmt.Sprintf("value %d at index %d is out of range [0, %d)", v, i, len(p)), []int(p))
		}
		if seen[v] {
			return apperrors.NewValidationError("perm",
				fmt.Sprintf("value %d appears more than once", v), []int(p))
		}
		seen[v] = true
	}
	return nil
}

// Compose returns the permutation result[i] = b[a[i]]: a is applied first,
// then b. Composition is not commutative. Both must have the same length.
func Compose(a, b Permutation) Permutation {
	result := make(Permutation, len(a))
	for i, v := range a {
		result[i] = b[v]
	}
	return result
}

// Inverse returns the permutation inv with inv[p[i]] = i for all i.
func Inverse(p Permutation) Permutation {
	inv := make(Permutation, len(p))
	for from, to := range p {
		inv[to] = from
	}
	return inv
}

// Apply returns a new slice whose position i holds items[p[i]]. items is
// not modified and must have at least len(p) elements.
func Apply[T any](p Permutation, items []T) []T {
	out := make([]T, len(p))
	for i, v := range p {
		out[i] = items[v]
	}
	return out
}

// IsIdentity reports whether p[i] = i for all i.
func IsIdentity(p Permutation) bool {
	for i, v := range p {
		if v != i {
			return false
		}
	}
	return true
}

// Equal reports whether a and b are the same permutation.
func Equal(a, b Permutation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Cycles returns the non-trivial cycles of p, following i → p[i]. Each
// cycle starts at its smallest element and cycles are ordered by that
// element. Fixed points are omitted.
func Cycles(p Permutation) [][]int {
	visited := make([]bool, len(p))
	var cycles [][]int
	for start := range p {
		if visited[start] || p[start] == start {
			visited[start] = true
			continue
		}
		var cycle []int
		for i := start; !visited[i]; i = p[i] {
			visited[i] = true
			cycle = append(cycle, i)
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}

// CycleNotation renders p in 1-based cycle notation, e.g. "(123)" or
// "(13)(24)". The identity renders as "e". Positions above 9 are separated
// by spaces.
func CycleNotation(p Permutation) string {
	cycles := Cycles(p)
	if len(cycles) == 0 {
		return "e"
	}
	sep := ""
	if len(p) > 9 {
		sep = " "
	}
	var b strings.Builder
	for _, c := range cycles {
		labels := make([]string, len(c))
		for i, v := range c {
			labels[i] = strconv.Itoa(v + 1)
		}
		b.WriteString("(" + strings.Join(labels, sep) + ")")
	}
	return b.String()
}

// Order returns the smallest k ≥ 1 such that p composed with itself k times
// is the identity.
func Order(p Permutation) int {
	order := 1
	for _, c := range Cycles(p) {
		order = lcm(order, len(c))
	}
	return order
}

// Sign returns +1 for even permutations and -1 for odd ones.
func Sign(p Permutation) int {
	sign := 1
	for _, c := range Cycles(p) {
		if len(c)%2 == 0 {
			sign = -sign
		}
	}
	return sign
}

// Closure returns the group generated by perms under Compose, starting with
// the identity and listing elements in discovery order. All generators must
// have the same length; an empty input yields nil.
func Closure(perms []Permutation) []Permutation {
	if len(perms) == 0 {
		return nil
	}
	n := len(perms[0])
	group := []Permutation{Identity(n)}
	seen := map[string]bool{key(group[0]): true}

	for i := 0; i < len(group); i++ {
		for _, g := range perms {
			next := Compose(group[i], g)
			k := key(next)
			if seen[k] {
				continue
			}
			seen[k] = true
			group = append(group, next)
		}
	}
	return group
}

func key(p Permutation) string {
	return fmt.Sprint([]int(p))
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
