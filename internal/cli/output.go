package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/agbru/galois/internal/config"
	"github.com/agbru/galois/internal/cplx"
	"github.com/agbru/galois/internal/galois"
	"github.com/agbru/galois/internal/service"
	"github.com/agbru/galois/internal/ui"
)

// formatDuration is FormatExecutionDuration with a floor for timings the
// clock could not resolve.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "< 1µs"
	}
	return FormatExecutionDuration(d)
}

// formatRoot renders a root colored by whether it is real.
func formatRoot(r cplx.Complex, precision int) string {
	return ui.ColorRoot(r.IsReal(cplx.Epsilon)) + r.Format(precision) + ColorReset()
}

// joinRoots renders roots as a comma-separated list.
func joinRoots(roots []cplx.Complex, precision int) string {
	parts := make([]string, len(roots))
	for i, r := range roots {
		parts[i] = formatRoot(r, precision)
	}
	return strings.Join(parts, ", ")
}

// DisplaySolve prints an equation, its roots and the quality of the
// solution. Random equations also show their seed and generating roots.
//
// Parameters:
//   - out: The io.Writer for the output.
//   - res: The solve result.
//   - precision: The number of decimals for the roots.
func DisplaySolve(out io.Writer, res service.Result, precision int) {
	fmt.Fprintf(out, "Equation: %s%s%s\n", ColorBold(), res.Equation, ColorReset())
	if res.Generated != nil {
		fmt.Fprintf(out, "Seed: %s%d%s\n", ColorCyan(), res.Seed, ColorReset())
		fmt.Fprintf(out, "Generated roots: %s\n", joinRoots(res.Generated, precision))
	}
	fmt.Fprintf(out, "Method: %s%s%s (degree %d)\n", ColorCyan(), res.Method, ColorReset(), res.Equation.Degree)

	fmt.Fprintf(out, "\n%s--- Roots ---%s\n", ColorBold(), ColorReset())
	for i, r := range res.Roots {
		fmt.Fprintf(out, "x%d = %s\n", i+1, formatRoot(r, precision))
	}
	fmt.Fprintf(out, "\nMax residual: %s%.3e%s\n", ColorYellow(), res.Residual, ColorReset())
	fmt.Fprintf(out, "Solved in %s%s%s\n", ColorGreen(), formatDuration(res.Duration), ColorReset())
}

// DisplayActions prints the symmetry catalog for a degree as a table.
//
// Parameters:
//   - out: The io.Writer for the output.
//   - degree: The degree whose roots the actions permute.
//   - actions: The catalog.
func DisplayActions(out io.Writer, degree int, actions []galois.GroupAction) {
	fmt.Fprintf(out, "\n%s--- Symmetries of the roots (%s, %d actions) ---%s\n",
		ColorBold(), service.GroupName(degree), len(actions), ColorReset())
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tCycles\tOrder\tSign\tDescription\n")
	for _, a := range actions {
		fmt.Fprintf(tw, "%s%s%s\t%s\t%d\t%+d\t%s\n",
			ColorBlue(), a.ID, ColorReset(), a.Label, galois.Order(a.Perm), galois.Sign(a.Perm), a.Description)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}
}

// DisplayApply prints the roots before and after a symmetry action.
//
// Parameters:
//   - out: The io.Writer for the output.
//   - res: The applied action and both root orderings.
//   - precision: The number of decimals for the roots.
func DisplayApply(out io.Writer, res service.ApplyResult, precision int) {
	fmt.Fprintf(out, "\n%s--- Action %s %s: %s ---%s\n", ColorBold(), res.Action.ID, res.Action.Label, res.Action.Description, ColorReset())
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Slot\tBefore\tAfter\n")
	for i := range res.Roots {
		fmt.Fprintf(tw, "x%d\t%s\t%s\n", i+1, res.Roots[i].Format(precision), res.After[i].Format(precision))
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}
}

// DisplayUnitRoots prints the n-th roots of unity.
func DisplayUnitRoots(out io.Writer, n int, roots []cplx.Complex, precision int) {
	fmt.Fprintf(out, "\n%s--- Roots of z^%d = 1 ---%s\n", ColorBold(), n, ColorReset())
	for k, r := range roots {
		fmt.Fprintf(out, "w%d = %s\n", k, formatRoot(r, precision))
	}
}

// DisplayQuietRoots prints one root per line without decoration, for
// scripting.
func DisplayQuietRoots(out io.Writer, roots []cplx.Complex, precision int) {
	for _, r := range roots {
		fmt.Fprintln(out, r.Format(precision))
	}
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintExecutionConfig displays the configuration of a verification batch.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	degrees := "all degrees"
	if cfg.Random != 0 {
		degrees = fmt.Sprintf("degree %d", cfg.Random)
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Verifying %s%d%s random equations (%s) with a timeout of %s%s%s.\n",
		ColorMagenta(), cfg.Verify, ColorReset(), degrees, ColorYellow(), cfg.Timeout, ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s workers, %s%d%s logical processors, Go %s%s%s.\n",
		ColorCyan(), cfg.Workers, ColorReset(), ColorCyan(), runtime.NumCPU(), ColorReset(), ColorCyan(), runtime.Version(), ColorReset())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
