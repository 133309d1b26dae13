// Command galois solves polynomial equations of degree 2 to 4 in closed
// form and explores the symmetries of their roots.
package main

import (
	"context"
	"os"

	"github.com/agbru/galois/internal/app"
	apperrors "github.com/agbru/galois/internal/errors"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if app.HasVersionFlag(args[1:]) {
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}

	application, err := app.New(args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}

	return application.Run(context.Background(), os.Stdout)
}
