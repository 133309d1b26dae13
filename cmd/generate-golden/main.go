package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenRoot is a root in the golden file.
type GoldenRoot struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// GoldenData represents a single test case in the golden file
type GoldenData struct {
	Name         string       `json:"name"`
	Degree       int          `json:"degree"`
	Coefficients []float64    `json:"coefficients"`
	Roots        []GoldenRoot `json:"roots"`
}

// factor is either a real linear factor (x - re) or, when imSq > 0, the
// real quadratic (x - re)² + imSq with roots re ± i√imSq.
type factor struct {
	re   string
	imSq string
}

type goldenCase struct {
	name    string
	factors []factor
}

func main() {
	outputDir := flag.String("out", "internal/solver/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "solver_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Coefficients are expanded in exact rational arithmetic so the file does
	// not depend on the solver under test.
	cases := []goldenCase{
		{"quadratic-real", []factor{{re: "2"}, {re: "3"}}},
		{"quadratic-complex", []factor{{re: "-1", imSq: "4"}}},
		{"cubic-integer", []factor{{re: "1"}, {re: "2"}, {re: "3"}}},
		{"cubic-one-real", []factor{{re: "2"}, {re: "-1", imSq: "3"}}},
		{"cubic-double", []factor{{re: "1"}, {re: "1"}, {re: "-2"}}},
		{"cubic-triple", []factor{{re: "1"}, {re: "1"}, {re: "1"}}},
		{"quartic-biquadratic", []factor{{re: "1"}, {re: "-1"}, {re: "2"}, {re: "-2"}}},
		{"quartic-real", []factor{{re: "1"}, {re: "2"}, {re: "3"}, {re: "-1"}}},
		{"quartic-complex", []factor{{re: "0", imSq: "1"}, {re: "1", imSq: "4"}}},
		{"quartic-mixed", []factor{{re: "1/2"}, {re: "-3/2"}, {re: "-1/2", imSq: "3/4"}}},
	}

	var data []GoldenData

	fmt.Println("Generating golden data...")

	for _, c := range cases {
		entry, err := build(c)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building case %s: %v\n", c.name, err)
			os.Exit(1)
		}
		data = append(data, entry)
		fmt.Printf("Generated %s (degree %d)\n", c.name, entry.Degree)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

func build(c goldenCase) (GoldenData, error) {
	poly := []*big.Rat{big.NewRat(1, 1)}
	var roots []GoldenRoot

	for _, f := range c.factors {
		re, ok := new(big.Rat).SetString(f.re)
		if !ok {
			return GoldenData{}, fmt.Errorf("bad real part %q", f.re)
		}
		reF, _ := re.Float64()

		if f.imSq == "" {
			// x - re
			poly = multiply(poly, []*big.Rat{big.NewRat(1, 1), new(big.Rat).Neg(re)})
			roots = append(roots, GoldenRoot{Re: reF})
			continue
		}

		imSq, ok := new(big.Rat).SetString(f.imSq)
		if !ok {
			return GoldenData{}, fmt.Errorf("bad squared imaginary part %q", f.imSq)
		}
		// x² - 2re·x + re² + imSq
		b := new(big.Rat).Mul(big.NewRat(-2, 1), re)
		c0 := new(big.Rat).Add(new(big.Rat).Mul(re, re), imSq)
		poly = multiply(poly, []*big.Rat{big.NewRat(1, 1), b, c0})

		imSqF, _ := imSq.Float64()
		im := math.Sqrt(imSqF)
		roots = append(roots, GoldenRoot{Re: reF, Im: im}, GoldenRoot{Re: reF, Im: -im})
	}

	coeffs := make([]float64, len(poly))
	for i, p := range poly {
		coeffs[i], _ = p.Float64()
	}
	return GoldenData{Name: c.name, Degree: len(roots), Coefficients: coeffs, Roots: roots}, nil
}

// multiply returns the product of two polynomials, highest power first.
func multiply(a, b []*big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(a)+len(b)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	for i, x := range a {
		for j, y := range b {
			out[i+j].Add(out[i+j], new(big.Rat).Mul(x, y))
		}
	}
	return out
}
