// Package ui holds the terminal color themes shared by the CLI, the REPL and
// the usage screen. Roots, statuses and tables all read their escape codes
// from the active theme, so a single switch turns color off everywhere.
package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Theme is a set of ANSI escape codes, one per output role.
type Theme struct {
	Name string
	// Primary marks identifiers such as action IDs.
	Primary string
	// Secondary marks method names, seeds and other metadata.
	Secondary string
	// Success marks real roots and passed checks.
	Success string
	// Warning marks residuals, durations and timeouts.
	Warning string
	// Error marks failed checks.
	Error string
	// Info marks complex roots.
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// palette lists 256-color indexes in Theme field order:
// primary, secondary, success, warning, error, info.
type palette [6]int

func fg(code int) string { return fmt.Sprintf("\033[38;5;%dm", code) }

func newTheme(name string, p palette) Theme {
	return Theme{
		Name:      name,
		Primary:   fg(p[0]),
		Secondary: fg(p[1]),
		Success:   fg(p[2]),
		Warning:   fg(p[3]),
		Error:     fg(p[4]),
		Info:      fg(p[5]),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}
}

var (
	// DarkTheme uses bright colors for dark backgrounds.
	DarkTheme = newTheme("dark", palette{39, 245, 82, 220, 196, 141})
	// LightTheme uses darker shades for light backgrounds.
	LightTheme = newTheme("light", palette{27, 240, 28, 130, 124, 54})
	// NoColorTheme has every code empty.
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeByName returns the theme called name ("dark", "light" or "none"),
// case-insensitively.
func ThemeByName(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name. Unknown names select DarkTheme.
func SetTheme(name string) {
	t, ok := ThemeByName(name)
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// isTerminal reports whether stdout is attached to a terminal. It is a
// variable so tests can force either answer.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// InitTheme picks the theme for this run. Colors are off when noColor is
// set, when NO_COLOR exists in the environment (any value, see
// https://no-color.org/) or when stdout is not a terminal. Otherwise
// GALOIS_THEME may name a theme; the default is dark.
//
// Parameters:
//   - noColor: The value of the -no-color flag.
func InitTheme(noColor bool) {
	_, noColorEnv := os.LookupEnv("NO_COLOR")
	SetCurrentTheme(resolveTheme(noColor || noColorEnv, isTerminal(), os.Getenv("GALOIS_THEME")))
}

func resolveTheme(disabled, tty bool, requested string) Theme {
	if disabled || !tty {
		return NoColorTheme
	}
	if t, ok := ThemeByName(requested); ok {
		return t
	}
	return DarkTheme
}
