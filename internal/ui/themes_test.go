package ui

import (
	"os"
	"testing"
)

// Tests in this file mutate the global theme and must not run in parallel.

func withTerminal(t *testing.T, tty bool) {
	t.Helper()
	if v, ok := os.LookupEnv("NO_COLOR"); ok {
		t.Setenv("NO_COLOR", v)
		os.Unsetenv("NO_COLOR")
	}
	t.Setenv("GALOIS_THEME", "")
	prevTheme := GetCurrentTheme()
	prevTTY := isTerminal
	isTerminal = func() bool { return tty }
	t.Cleanup(func() {
		isTerminal = prevTTY
		SetCurrentTheme(prevTheme)
	})
}

func TestInitThemeNoColorFlag(t *testing.T) {
	withTerminal(t, true)
	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("expected no-color theme, got %s", GetCurrentTheme().Name)
	}
}

func TestInitThemeNoColorEnv(t *testing.T) {
	withTerminal(t, true)
	t.Setenv("NO_COLOR", "")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR should disable colors even when empty, got %s", GetCurrentTheme().Name)
	}
}

func TestInitThemeNotATerminal(t *testing.T) {
	withTerminal(t, false)
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("non-terminal output should disable colors, got %s", GetCurrentTheme().Name)
	}
}

func TestInitThemeTerminal(t *testing.T) {
	withTerminal(t, true)
	InitTheme(false)
	if GetCurrentTheme().Name != "dark" {
		t.Errorf("expected dark theme on a terminal, got %s", GetCurrentTheme().Name)
	}

	t.Setenv("GALOIS_THEME", "light")
	InitTheme(false)
	if GetCurrentTheme().Name != "light" {
		t.Errorf("GALOIS_THEME=light should select the light theme, got %s", GetCurrentTheme().Name)
	}
}

func TestSetTheme(t *testing.T) {
	withTerminal(t, true)
	tests := map[string]string{"dark": "dark", "light": "light", "none": "none", "unknown": "dark"}
	for in, want := range tests {
		SetTheme(in)
		if got := GetCurrentTheme().Name; got != want {
			t.Errorf("SetTheme(%q) -> %s, want %s", in, got, want)
		}
	}
}

func TestColorFunctions(t *testing.T) {
	withTerminal(t, true)
	SetCurrentTheme(DarkTheme)
	if ColorGreen() != DarkTheme.Success || ColorRed() != DarkTheme.Error || ColorReset() != DarkTheme.Reset {
		t.Error("color functions must read the current theme")
	}
	if ColorRoot(true) != DarkTheme.Success || ColorRoot(false) != DarkTheme.Info {
		t.Error("ColorRoot must distinguish real and complex roots")
	}

	SetCurrentTheme(NoColorTheme)
	for _, c := range []string{ColorBlue(), ColorBold(), ColorRoot(false), ColorYellow()} {
		if c != "" {
			t.Errorf("no-color theme returned %q", c)
		}
	}
}

func TestThemeByName(t *testing.T) {
	t.Parallel()
	if th, ok := ThemeByName(" Light "); !ok || th.Name != "light" {
		t.Errorf("ThemeByName should trim and ignore case, got %v %v", th.Name, ok)
	}
	if _, ok := ThemeByName("solarized"); ok {
		t.Error("unknown theme names must not resolve")
	}
	if DarkTheme.Primary != "\033[38;5;39m" || LightTheme.Error != "\033[38;5;124m" {
		t.Error("palette indexes are not mapped to the right roles")
	}
}

func TestResolveTheme(t *testing.T) {
	t.Parallel()
	tests := []struct {
		disabled, tty bool
		requested     string
		want          string
	}{
		{false, true, "", "dark"},
		{false, true, "light", "light"},
		{false, true, "none", "none"},
		{false, true, "bogus", "dark"},
		{true, true, "light", "none"},
		{false, false, "light", "none"},
	}
	for _, tt := range tests {
		if got := resolveTheme(tt.disabled, tt.tty, tt.requested).Name; got != tt.want {
			t.Errorf("resolveTheme(%v, %v, %q) = %s, want %s", tt.disabled, tt.tty, tt.requested, got, tt.want)
		}
	}
}
