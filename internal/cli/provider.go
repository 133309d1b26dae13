package cli

import apperrors "github.com/agbru/galois/internal/errors"

// Ensure CLIColorProvider implements apperrors.ColorProvider at compile time.
var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider implements apperrors.ColorProvider using the current CLI
// theme, so that HandleSolveError can color its status lines.
type CLIColorProvider struct{}

// Yellow returns the warning color code from the current CLI theme.
func (c CLIColorProvider) Yellow() string { return ColorYellow() }

// Reset returns the reset color code from the current CLI theme.
func (c CLIColorProvider) Reset() string { return ColorReset() }
