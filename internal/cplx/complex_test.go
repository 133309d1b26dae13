package cplx

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

func TestArithmetic(t *testing.T) {
	t.Parallel()
	a := New(1, 2)
	b := New(3, -4)

	tests := []struct {
		name string
		got  Complex
		want Complex
	}{
		{"Add", a.Add(b), New(4, -2)},
		{"Sub", a.Sub(b), New(-2, 6)},
		{"Mul", a.Mul(b), New(11, 2)},
		{"Div", a.Div(b), New(-0.2, 0.4)},
		{"Conj", a.Conj(), New(1, -2)},
		{"Neg", a.Neg(), New(-1, -2)},
		{"Scale", a.Scale(-2), New(-2, -4)},
		{"Pow0", a.Pow(0), One},
		{"Pow3", a.Pow(3), New(-11, -2)},
		{"RotateHalfTurn", a.Rotate(math.Pi), New(-1, -2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Truef(t, tt.got.ApproxEqual(tt.want, tol), "got %v, want %v", tt.got, tt.want)
		})
	}
}

func TestImmutability(t *testing.T) {
	t.Parallel()
	a := New(1, 2)
	_ = a.Add(New(5, 5))
	_ = a.Mul(New(5, 5))
	_ = a.Sqrt()
	assert.Equal(t, New(1, 2), a)
}

func TestDivByZeroIsNonFinite(t *testing.T) {
	t.Parallel()
	got := New(1, 1).Div(Zero)
	assert.False(t, got.IsFinite())
	assert.True(t, New(1, 1).IsFinite())
}

func TestAbsArg(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 5.0, New(3, 4).Abs(), tol)
	assert.InDelta(t, 0.0, Zero.Arg(), tol)
	assert.InDelta(t, math.Pi, Real(-1).Arg(), tol)
	assert.InDelta(t, math.Pi/2, I.Arg(), tol)
	assert.InDelta(t, -math.Pi/2, I.Neg().Arg(), tol)
}

func TestPrincipalRoots(t *testing.T) {
	t.Parallel()

	t.Run("Sqrt of negative real is +i", func(t *testing.T) {
		got := Real(-4).Sqrt()
		assert.True(t, got.ApproxEqual(New(0, 2), tol), "got %v", got)
	})

	t.Run("Sqrt of i", func(t *testing.T) {
		got := I.Sqrt()
		h := math.Sqrt(2) / 2
		assert.True(t, got.ApproxEqual(New(h, h), tol), "got %v", got)
	})

	t.Run("Cbrt of -8 is principal not real", func(t *testing.T) {
		got := Real(-8).Cbrt()
		assert.True(t, got.ApproxEqual(New(1, math.Sqrt(3)), 1e-12), "got %v", got)
		assert.True(t, got.Pow(3).ApproxEqual(Real(-8), 1e-12))
	})

	t.Run("Cbrt of 27", func(t *testing.T) {
		assert.True(t, Real(27).Cbrt().ApproxEqual(Real(3), tol))
	})
}

func TestNthRootBranches(t *testing.T) {
	t.Parallel()
	z := New(-3, 7)
	for n := 1; n <= 6; n++ {
		seen := make([]Complex, 0, n)
		for k := 0; k < n; k++ {
			w := z.NthRoot(n, k)
			require.Truef(t, w.Pow(n).ApproxEqual(z, 1e-9), "n=%d k=%d: %v^%d != %v", n, k, w, n, z)
			for _, s := range seen {
				assert.Falsef(t, s.ApproxEqual(w, 1e-9), "n=%d: branch %d duplicates an earlier root", n, k)
			}
			seen = append(seen, w)
		}
	}
	assert.True(t, z.NthRoot(2, 0).ApproxEqual(z.Sqrt(), tol))
	assert.True(t, z.NthRoot(3, 0).ApproxEqual(z.Cbrt(), tol))
}

func TestOmega(t *testing.T) {
	t.Parallel()
	w := Omega()
	assert.True(t, w.Pow(3).ApproxEqual(One, tol))
	assert.True(t, w.Mul(w).ApproxEqual(Omega2(), tol))
	assert.True(t, One.Add(w).Add(Omega2()).ApproxEqual(Zero, tol))
}

func TestComplex128RoundTrip(t *testing.T) {
	t.Parallel()
	z := New(1.5, -2.5)
	assert.Equal(t, z, FromComplex128(z.Complex128()))
}

func TestFieldProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	component := gen.Float64Range(-1e3, 1e3)

	properties.Property("multiplication by inverse is one", prop.ForAll(
		func(re, im float64) bool {
			z := New(re, im)
			if z.Abs() < 1e-6 {
				return true
			}
			return One.Div(z).Mul(z).ApproxEqual(One, 1e-9)
		},
		component, component,
	))

	properties.Property("|z·w| = |z|·|w|", prop.ForAll(
		func(a, b, c, d float64) bool {
			z, w := New(a, b), New(c, d)
			return math.Abs(z.Mul(w).Abs()-z.Abs()*w.Abs()) <= 1e-9*(1+z.Abs()*w.Abs())
		},
		component, component, component, component,
	))

	properties.Property("principal sqrt squares back and has non-negative real part", prop.ForAll(
		func(re, im float64) bool {
			z := New(re, im)
			s := z.Sqrt()
			return s.Mul(s).ApproxEqual(z, 1e-9*(1+z.Abs())) && s.Re >= -1e-12
		},
		component, component,
	))

	properties.Property("cube root cubes back", prop.ForAll(
		func(re, im float64) bool {
			z := New(re, im)
			return z.Cbrt().Pow(3).ApproxEqual(z, 1e-9*(1+z.Abs()))
		},
		component, component,
	))

	properties.TestingRun(t)
}
