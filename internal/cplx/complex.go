// Package cplx provides the immutable complex value type used by the
// polynomial solvers. Every operation returns a new value; nothing mutates
// its receiver.
//
// Multi-valued functions (Sqrt, Cbrt) always return the principal branch,
// i.e. the root whose angle is arg(z)/n with arg in (-π, π]. Callers that
// need another branch must use NthRoot with an explicit branch index, or
// rotate the principal value themselves.
package cplx

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the magnitude below which a component is treated as zero for
// display and degeneracy checks.
const Epsilon = 1e-10

// Complex is an ordered pair (real, imaginary) of float64 components.
type Complex struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

var (
	// Zero is the additive identity.
	Zero = Complex{}
	// One is the multiplicative identity.
	One = Complex{Re: 1}
	// I is the imaginary unit.
	I = Complex{Im: 1}
)

// New returns the complex value re + im·i.
func New(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// Real returns the complex value x + 0i.
func Real(x float64) Complex {
	return Complex{Re: x}
}

// FromComplex128 converts a builtin complex128.
func FromComplex128(z complex128) Complex {
	return Complex{Re: real(z), Im: imag(z)}
}

// Complex128 converts to the builtin complex128 type.
func (z Complex) Complex128() complex128 {
	return complex(z.Re, z.Im)
}

// Add returns z + w.
func (z Complex) Add(w Complex) Complex {
	return Complex{Re: z.Re + w.Re, Im: z.Im + w.Im}
}

// Sub returns z - w.
func (z Complex) Sub(w Complex) Complex {
	return Complex{Re: z.Re - w.Re, Im: z.Im - w.Im}
}

// Mul returns z · w.
func (z Complex) Mul(w Complex) Complex {
	return Complex{
		Re: z.Re*w.Re - z.Im*w.Im,
		Im: z.Re*w.Im + z.Im*w.Re,
	}
}

// Div returns z / w computed as (z·conj(w))/|w|².
//
// Division by the zero value is not checked: the result then has NaN or
// infinite components, and it is up to the caller to guard the divisor or
// detect the non-finite result with IsFinite.
func (z Complex) Div(w Complex) Complex {
	denom := w.Re*w.Re + w.Im*w.Im
	return Complex{
		Re: (z.Re*w.Re + z.Im*w.Im) / denom,
		Im: (z.Im*w.Re - z.Re*w.Im) / denom,
	}
}

// Abs returns the Euclidean modulus |z|.
func (z Complex) Abs() float64 {
	return math.Hypot(z.Re, z.Im)
}

// Arg returns the four-quadrant angle of z in (-π, π]. The zero value maps
// to 0, following math.Atan2.
func (z Complex) Arg() float64 {
	return math.Atan2(z.Im, z.Re)
}

// Conj returns the complex conjugate of z.
func (z Complex) Conj() Complex {
	return Complex{Re: z.Re, Im: -z.Im}
}

// Neg returns -z.
func (z Complex) Neg() Complex {
	return Complex{Re: -z.Re, Im: -z.Im}
}

// Scale returns k·z for a real factor k.
func (z Complex) Scale(k float64) Complex {
	return Complex{Re: z.Re * k, Im: z.Im * k}
}

// Rotate returns z multiplied by e^(iθ).
func (z Complex) Rotate(theta float64) Complex {
	s, c := math.Sincos(theta)
	return z.Mul(Complex{Re: c, Im: s})
}

// Sqrt returns the principal square root of z: modulus √|z|, angle arg(z)/2.
// The other root is Sqrt().Neg().
func (z Complex) Sqrt() Complex {
	return fromPolar(math.Sqrt(z.Abs()), z.Arg()/2)
}

// Cbrt returns the principal cube root of z: modulus ∛|z|, angle arg(z)/3.
// The other two roots are obtained by multiplying with Omega and Omega².
func (z Complex) Cbrt() Complex {
	return fromPolar(math.Cbrt(z.Abs()), z.Arg()/3)
}

// NthRoot returns the k-th of the n roots of z, with angle
// (arg(z) + 2πk)/n. Branch k = 0 is the principal root; k ranges over
// 0..n-1 to enumerate all of them.
func (z Complex) NthRoot(n, k int) Complex {
	r := math.Pow(z.Abs(), 1/float64(n))
	theta := (z.Arg() + 2*math.Pi*float64(k)) / float64(n)
	return fromPolar(r, theta)
}

// Pow returns z raised to a non-negative integer power by repeated squaring.
func (z Complex) Pow(n int) Complex {
	result := One
	base := z
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result
}

// IsFinite reports whether both components are finite.
func (z Complex) IsFinite() bool {
	return !math.IsNaN(z.Re) && !math.IsNaN(z.Im) && !math.IsInf(z.Re, 0) && !math.IsInf(z.Im, 0)
}

// IsZero reports whether |z| is below eps.
func (z Complex) IsZero(eps float64) bool {
	return z.Abs() < eps
}

// IsReal reports whether the imaginary part is below eps in magnitude.
func (z Complex) IsReal(eps float64) bool {
	return math.Abs(z.Im) < eps
}

// ApproxEqual reports whether z and w agree component-wise within tol.
func (z Complex) ApproxEqual(w Complex, tol float64) bool {
	return scalar.EqualWithinAbs(z.Re, w.Re, tol) && scalar.EqualWithinAbs(z.Im, w.Im, tol)
}

// Omega returns the primitive cube root of unity e^(2πi/3) = -1/2 + (√3/2)i.
func Omega() Complex {
	return Complex{Re: -0.5, Im: math.Sqrt(3) / 2}
}

// Omega2 returns ω² = e^(-2πi/3) = -1/2 - (√3/2)i.
func Omega2() Complex {
	return Complex{Re: -0.5, Im: -math.Sqrt(3) / 2}
}

func fromPolar(r, theta float64) Complex {
	return FromComplex128(cmplx.Rect(r, theta))
}
