package config

import (
	"bytes"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("galois", []string{}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if len(cfg.Coefficients) != 0 {
			t.Errorf("Expected no coefficients, got %v", cfg.Coefficients)
		}
		if cfg.Degree() != DefaultDegree {
			t.Errorf("Expected default degree %d, got %d", DefaultDegree, cfg.Degree())
		}
		if cfg.Precision != DefaultPrecision {
			t.Errorf("Expected default precision %d, got %d", DefaultPrecision, cfg.Precision)
		}
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("Expected default Timeout %v, got %v", DefaultTimeout, cfg.Timeout)
		}
		if cfg.Workers != runtime.NumCPU() {
			t.Errorf("Expected default workers %d, got %d", runtime.NumCPU(), cfg.Workers)
		}
		if cfg.Port != DefaultPort {
			t.Errorf("Expected default port %s, got %s", DefaultPort, cfg.Port)
		}
		if cfg.LogLevel != DefaultLogLevel {
			t.Errorf("Expected default log level %s, got %s", DefaultLogLevel, cfg.LogLevel)
		}
	})

	t.Run("ValidFlags", func(t *testing.T) {
		t.Parallel()
		args := []string{
			"-coeffs", "1,-5,6",
			"-precision", "6",
			"-actions",
			"-action", "s1",
			"-timeout", "10s",
			"-json",
			"-log-level", "DEBUG",
		}
		cfg, err := ParseConfig("galois", args, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		want := []float64{1, -5, 6}
		if len(cfg.Coefficients) != len(want) {
			t.Fatalf("Expected coefficients %v, got %v", want, cfg.Coefficients)
		}
		for i := range want {
			if cfg.Coefficients[i] != want[i] {
				t.Errorf("coefficient %d: expected %v, got %v", i, want[i], cfg.Coefficients[i])
			}
		}
		if cfg.Degree() != 2 {
			t.Errorf("Expected degree 2, got %d", cfg.Degree())
		}
		if cfg.Precision != 6 {
			t.Errorf("Expected precision 6, got %d", cfg.Precision)
		}
		if !cfg.ShowActions || cfg.Action != "s1" {
			t.Errorf("Expected actions listing and action s1, got %v %q", cfg.ShowActions, cfg.Action)
		}
		if cfg.Timeout != 10*time.Second {
			t.Errorf("Expected Timeout 10s, got %v", cfg.Timeout)
		}
		if !cfg.JSONOutput {
			t.Error("Expected JSONOutput true")
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Expected log level normalized to debug, got %s", cfg.LogLevel)
		}
	})

	t.Run("PositionalCoefficients", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("galois", []string{"-q", "1", "0", "0", "-8"}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Degree() != 3 || cfg.Coefficients[3] != -8 {
			t.Errorf("Expected x^3 - 8, got %v", cfg.Coefficients)
		}
		if !cfg.Quiet {
			t.Error("Expected Quiet true from -q")
		}
	})

	t.Run("RandomAndVerify", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("galois", []string{"-random", "4", "-seed", "42", "-verify", "100", "-workers", "2"}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Random != 4 || cfg.Degree() != 4 {
			t.Errorf("Expected random degree 4, got %d", cfg.Random)
		}
		if cfg.Seed != 42 || cfg.Verify != 100 || cfg.Workers != 2 {
			t.Errorf("Unexpected seed/verify/workers: %d/%d/%d", cfg.Seed, cfg.Verify, cfg.Workers)
		}
	})

	t.Run("ServerFlags", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("galois", []string{"-server", "-port", "9090"}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !cfg.ServerMode || cfg.Port != "9090" {
			t.Errorf("Expected server on 9090, got %v %s", cfg.ServerMode, cfg.Port)
		}
	})

	t.Run("MalformedCoefficients", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := ParseConfig("galois", []string{"-coeffs", "1,x,2"}, &buf); err == nil {
			t.Error("Expected error for non-numeric coefficient")
		}
		if !strings.Contains(buf.String(), "coeffs") {
			t.Errorf("Expected the flag name in the error output, got %q", buf.String())
		}
	})

	t.Run("MalformedPositional", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := ParseConfig("galois", []string{"1", "two", "3"}, &buf); err == nil {
			t.Error("Expected error for non-numeric positional coefficient")
		}
		if !strings.Contains(buf.String(), "Configuration error") {
			t.Errorf("Expected a configuration error message, got %q", buf.String())
		}
	})

	t.Run("ZeroLeadingCoefficient", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := ParseConfig("galois", []string{"-coeffs", "0,1,2"}, &buf); err == nil {
			t.Error("Expected error for zero leading coefficient")
		}
		if !strings.Contains(buf.String(), "Usage:") {
			t.Error("Expected usage to be printed after a validation failure")
		}
	})

	t.Run("UnsupportedDegree", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseConfig("galois", []string{"-coeffs", "1,2,3,4,5,6"}, io.Discard); err == nil {
			t.Error("Expected error for a quintic")
		}
		if _, err := ParseConfig("galois", []string{"-random", "5"}, io.Discard); err == nil {
			t.Error("Expected error for random degree 5")
		}
	})

	t.Run("CoeffsAndRandomConflict", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseConfig("galois", []string{"-coeffs", "1,0,-1", "-random", "2"}, io.Discard); err == nil {
			t.Error("Expected error when both -coeffs and -random are given")
		}
	})
}

func TestParseConfigUsage(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	_, err := ParseConfig("galois", []string{"-h"}, &buf)
	if err == nil {
		t.Fatal("Expected flag.ErrHelp for -h")
	}
	out := buf.String()
	for _, want := range []string{"Galois Equation Solver", "-coeffs", "-verify", "(default 3)", "Examples:"} {
		if !strings.Contains(out, want) {
			t.Errorf("usage missing %q", want)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("usage must not contain ANSI codes when NO_COLOR is set")
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	env := map[string]string{
		"GALOIS_COEFFS":      "1;0;-4",
		"GALOIS_SEED":        "7",
		"GALOIS_PRECISION":   "5",
		"GALOIS_UNIT":        "6",
		"GALOIS_WORKERS":     "3",
		"GALOIS_TIMEOUT":     "2m",
		"GALOIS_ACTION":      "s",
		"GALOIS_PORT":        "3000",
		"GALOIS_LOG_LEVEL":   "warn",
		"GALOIS_ACTIONS":     "yes",
		"GALOIS_SERVER":      "true",
		"GALOIS_JSON":        "1",
		"GALOIS_QUIET":       "true",
		"GALOIS_INTERACTIVE": "false",
		"GALOIS_NO_COLOR":    "true",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := ParseConfig("galois", []string{}, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(cfg.Coefficients) != 3 || cfg.Coefficients[2] != -4 {
		t.Errorf("Expected coefficients from env, got %v", cfg.Coefficients)
	}
	if cfg.Seed != 7 || cfg.Precision != 5 || cfg.Unit != 6 || cfg.Workers != 3 {
		t.Errorf("numeric overrides not applied: %+v", cfg)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Expected Timeout 2m, got %v", cfg.Timeout)
	}
	if cfg.Action != "s" || cfg.Port != "3000" || cfg.LogLevel != "warn" {
		t.Errorf("string overrides not applied: %q %q %q", cfg.Action, cfg.Port, cfg.LogLevel)
	}
	if !cfg.ShowActions || !cfg.ServerMode || !cfg.JSONOutput || !cfg.Quiet || cfg.Interactive || !cfg.NoColor {
		t.Errorf("boolean overrides not applied: %+v", cfg)
	}
}

func TestParseConfigFlagsBeatEnv(t *testing.T) {
	t.Setenv("GALOIS_PORT", "3000")
	t.Setenv("GALOIS_PRECISION", "9")
	t.Setenv("GALOIS_QUIET", "true")
	t.Setenv("GALOIS_COEFFS", "1,0,-4")

	cfg, err := ParseConfig("galois", []string{"-port", "4000", "-p", "2", "-q=false", "-coeffs", "1,-3,2"}, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Port != "4000" {
		t.Errorf("flag should win over env: port %s", cfg.Port)
	}
	if cfg.Precision != 2 {
		t.Errorf("shorthand flag should win over env: precision %d", cfg.Precision)
	}
	if cfg.Quiet {
		t.Error("explicit -q=false should win over GALOIS_QUIET")
	}
	if cfg.Coefficients[1] != -3 {
		t.Errorf("-coeffs should win over GALOIS_COEFFS, got %v", cfg.Coefficients)
	}
}

func TestParseConfigMalformedEnvCoefficients(t *testing.T) {
	t.Setenv("GALOIS_COEFFS", "1,,oops")
	var buf bytes.Buffer
	if _, err := ParseConfig("galois", nil, &buf); err == nil {
		t.Fatal("Expected error for malformed GALOIS_COEFFS")
	}
	if !strings.Contains(buf.String(), "GALOIS_COEFFS") {
		t.Errorf("Expected the variable name in the error, got %q", buf.String())
	}
}

func TestParseConfigInvalidEnvValuesIgnored(t *testing.T) {
	t.Setenv("GALOIS_WORKERS", "many")
	t.Setenv("GALOIS_TIMEOUT", "soon")
	t.Setenv("GALOIS_JSON", "maybe")

	cfg, err := ParseConfig("galois", nil, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Workers != runtime.NumCPU() || cfg.Timeout != DefaultTimeout || cfg.JSONOutput {
		t.Errorf("unparsable env values should keep defaults: %+v", cfg)
	}
}
