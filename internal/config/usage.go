package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/galois/internal/ui"
)

// setCustomUsage configures the flag set with a colored usage function.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// Respect NO_COLOR even before app initialization
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()

		fmt.Fprintf(out, "\n%sGalois Equation Solver%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Closed-form roots of degree 2-4 polynomials and their symmetry actions.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags] [coefficients...]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := fmt.Sprintf("-%s", f.Name)
			if len(name) > 0 {
				flagSig += " " + name
			}

			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, flagSig, t.Reset, usage)

			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})

		fmt.Fprintf(out, "\n%sExamples:%s\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "  %s -coeffs 1,-5,6\n", fs.Name())
		fmt.Fprintf(out, "  %s -random 4 -seed 7 -actions\n", fs.Name())
		fmt.Fprintf(out, "  %s -verify 1000 -workers 8\n", fs.Name())
		fmt.Fprintln(out)
	}
}
