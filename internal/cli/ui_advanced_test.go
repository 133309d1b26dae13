package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/galois/internal/config"
	"github.com/agbru/galois/internal/cplx"
	"github.com/agbru/galois/internal/galois"
	"github.com/agbru/galois/internal/service"
	"github.com/agbru/galois/internal/solver"
	"github.com/agbru/galois/internal/testutil"
	"github.com/agbru/galois/internal/ui"
)

// TestDisplayProgress_LoopCoverage ensures the ticker and updates are processed
func TestDisplayProgress_LoopCoverage(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan ProgressUpdate)

	go func() {
		for i := 0; i < 5; i++ {
			progressChan <- ProgressUpdate{WorkerIndex: 0, Value: float64(i+1) * 0.2}
			time.Sleep(60 * time.Millisecond) // long enough to cross a refresh tick
		}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 1, io.Discard)
	wg.Wait()

	mockS.mu.Lock()
	defer mockS.mu.Unlock()
	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !strings.Contains(mockS.suffix, "ETA:") {
		t.Errorf("spinner suffix should carry the ETA, got %q", mockS.suffix)
	}
}

// TestFormatExecutionDuration_MoreCases covers microsecond formatting
func TestFormatExecutionDuration_MoreCases(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Nanosecond, "0µs"},
		{1500 * time.Nanosecond, "1µs"},
		{999 * time.Microsecond, "999µs"},
		{1001 * time.Microsecond, "1ms"},
	}
	for _, c := range cases {
		got := FormatExecutionDuration(c.in)
		if got != c.want {
			t.Errorf("FormatExecutionDuration(%v) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestDisplaySolve_RandomEquation(t *testing.T) {
	ui.InitTheme(true)
	roots := []cplx.Complex{cplx.New(1, 2), cplx.New(1, -2)}
	res := service.Result{
		Equation:  solver.NewEquation(solver.RootsToCoefficients(roots)...),
		Method:    "quadratic formula",
		Roots:     roots,
		Generated: roots,
		Seed:      42,
		Duration:  2 * time.Millisecond,
	}

	var buf bytes.Buffer
	DisplaySolve(&buf, res, 2)
	out := testutil.StripAnsiCodes(buf.String())
	for _, want := range []string{
		"Equation: x^2 - 2x + 5 = 0",
		"Seed: 42",
		"Generated roots: 1.00 + 2.00i, 1.00 - 2.00i",
		"x2 = 1.00 - 2.00i",
		"Solved in 2ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayApply(t *testing.T) {
	ui.InitTheme(true)
	action, err := galois.FindAction(2, "swap")
	if err != nil {
		t.Fatal(err)
	}
	res := service.ApplyResult{
		Result: service.Result{Roots: []cplx.Complex{cplx.Real(1), cplx.Real(-1)}},
		Action: action,
		After:  []cplx.Complex{cplx.Real(-1), cplx.Real(1)},
	}

	var buf bytes.Buffer
	DisplayApply(&buf, res, 1)
	out := buf.String()
	if !strings.Contains(out, "--- Action swap (12): ") {
		t.Errorf("missing action header:\n%s", out)
	}
	if !strings.Contains(out, "x1    1.0     -1.0") || !strings.Contains(out, "x2    -1.0    1.0") {
		t.Errorf("unexpected before/after table:\n%s", out)
	}
}

func TestDisplayUnitRoots(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer
	DisplayUnitRoots(&buf, 4, solver.UnitRoots(4), 1)
	want := "\n--- Roots of z^4 = 1 ---\nw0 = 1.0\nw1 = 1.0i\nw2 = -1.0\nw3 = -1.0i\n"
	if buf.String() != want {
		t.Errorf("DisplayUnitRoots = %q, want %q", buf.String(), want)
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]int{"degree": 3}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{\n  \"degree\": 3\n}\n" {
		t.Errorf("unexpected JSON %q", buf.String())
	}
}

func TestPrintExecutionConfig(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer
	PrintExecutionConfig(config.AppConfig{Verify: 50, Random: 4, Workers: 2, Timeout: time.Minute}, &buf)
	out := buf.String()
	for _, want := range []string{"Verifying 50 random equations (degree 4)", "2 workers", "--- Starting Execution ---"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintExecutionConfig(config.AppConfig{Verify: 5, Workers: 1, Timeout: time.Second}, &buf)
	if !strings.Contains(buf.String(), "(all degrees)") {
		t.Errorf("a zero degree should verify every degree:\n%s", buf.String())
	}
}
