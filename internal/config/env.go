// This file contains environment variable utilities for configuration override.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/galois/internal/solver"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt64 returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int64, or the default value if not set
// or invalid.
func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as time.Duration, or the default value if not
// set or invalid. Accepts formats like "5m", "30s", "1h30m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - GALOIS_COEFFS: Equation coefficients (string: "1,-5,6")
//   - GALOIS_RANDOM: Degree of a random equation (int)
//   - GALOIS_SEED: Random seed (int64)
//   - GALOIS_PRECISION: Display precision (int)
//   - GALOIS_UNIT: Print the n-th roots of unity (int)
//   - GALOIS_VERIFY: Number of round-trip checks (int)
//   - GALOIS_WORKERS: Maximum concurrent checks (int)
//   - GALOIS_TIMEOUT: Batch and request timeout (duration: "5m", "30s")
//   - GALOIS_ACTION: Symmetry action to apply (string)
//   - GALOIS_PORT: Port for server mode (string)
//   - GALOIS_LOG_LEVEL: Minimum log level (string)
//   - GALOIS_ACTIONS: List symmetry actions (bool: true/false, 1/0, yes/no)
//   - GALOIS_SERVER: Enable server mode (bool)
//   - GALOIS_JSON: Enable JSON output (bool)
//   - GALOIS_QUIET: Enable quiet mode (bool)
//   - GALOIS_INTERACTIVE: Enable interactive REPL mode (bool)
//   - GALOIS_NO_COLOR: Disable colored output (bool)
//
// Returns an error only when GALOIS_COEFFS is set but malformed; other
// unparsable values are ignored and the current value is kept.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	if err := applyCoefficientOverride(config, fs); err != nil {
		return err
	}
	applyNumericOverrides(config, fs)
	applyDurationOverrides(config, fs)
	applyStringOverrides(config, fs)
	applyBooleanOverrides(config, fs)
	return nil
}

func applyCoefficientOverride(config *AppConfig, fs *flag.FlagSet) error {
	if len(config.Coefficients) > 0 {
		return nil
	}
	raw := getEnvString("COEFFS", "")
	if raw == "" {
		return nil
	}
	coeffs, err := solver.ParseCoefficients(raw)
	if err != nil {
		return fmt.Errorf("%sCOEFFS: %w", EnvPrefix, err)
	}
	config.Coefficients = coeffs
	return nil
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "random") {
		config.Random = getEnvInt("RANDOM", config.Random)
	}
	if !isFlagSet(fs, "seed") {
		config.Seed = getEnvInt64("SEED", config.Seed)
	}
	if !isFlagSet(fs, "precision", "p") {
		config.Precision = getEnvInt("PRECISION", config.Precision)
	}
	if !isFlagSet(fs, "unit") {
		config.Unit = getEnvInt("UNIT", config.Unit)
	}
	if !isFlagSet(fs, "verify") {
		config.Verify = getEnvInt("VERIFY", config.Verify)
	}
	if !isFlagSet(fs, "workers") {
		config.Workers = getEnvInt("WORKERS", config.Workers)
	}
}

func applyDurationOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "action") {
		config.Action = getEnvString("ACTION", config.Action)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "log-level") {
		config.LogLevel = getEnvString("LOG_LEVEL", config.LogLevel)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "actions") {
		config.ShowActions = getEnvBool("ACTIONS", config.ShowActions)
	}
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "quiet", "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "interactive", "i") {
		config.Interactive = getEnvBool("INTERACTIVE", config.Interactive)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
}
