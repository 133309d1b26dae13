// Package config provides the configuration management for the galois
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments and environment overrides, and
// performs validation on the configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	apperrors "github.com/agbru/galois/internal/errors"
	"github.com/agbru/galois/internal/solver"
)

const (
	// EnvPrefix is the prefix for all environment variables used by galois.
	// Environment variables provide an alternative to CLI flags for configuration,
	// following the 12-Factor App methodology.
	EnvPrefix = "GALOIS_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultDegree is the degree of the random equation solved when no
	// coefficients are given.
	DefaultDegree = 3
	// DefaultPrecision is the number of decimals used to display roots.
	DefaultPrecision = 3
	// MaxPrecision bounds the display precision.
	MaxPrecision = 15
	// MaxUnitRoots bounds -unit.
	MaxUnitRoots = 64
	// DefaultTimeout bounds a verification batch or a server request.
	DefaultTimeout = 1 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultLogLevel is the default minimum log level.
	DefaultLogLevel = "info"
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags and GALOIS_* environment variables.
type AppConfig struct {
	// Coefficients are the equation's coefficients, highest power first.
	// Empty when no -coeffs flag was given.
	Coefficients []float64
	// Random is the degree of a randomly generated equation (0 when unset).
	// With -verify it selects the degree to verify (0 means every degree).
	Random int
	// Seed seeds the random generator; 0 seeds from the clock.
	Seed int64
	// Precision is the number of decimals used to display roots.
	Precision int
	// ShowActions prints the symmetry catalog for the equation's degree.
	ShowActions bool
	// Action is the ID of a catalog action to apply to the computed roots.
	Action string
	// Unit, when positive, prints the n-th roots of unity.
	Unit int
	// Verify, when positive, runs that many round-trip checks.
	Verify int
	// Workers bounds the number of concurrent round-trip checks.
	Workers int
	// Timeout bounds a verification batch and each server request.
	Timeout time.Duration
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// Quiet mode - minimal output for scripting purposes.
	Quiet bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// Interactive, if true, starts the application in REPL mode.
	Interactive bool
	// Completion, if set, generates shell completion script for the specified shell.
	// Valid values are: "bash", "zsh", "fish", "powershell".
	Completion string
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// LogLevel is the minimum level of structured logs.
	LogLevel string
}

// Degree returns the degree of the equation to solve: the coefficient count
// minus one when coefficients were given, otherwise Random, otherwise
// DefaultDegree.
func (c AppConfig) Degree() int {
	if len(c.Coefficients) > 0 {
		return len(c.Coefficients) - 1
	}
	if c.Random > 0 {
		return c.Random
	}
	return DefaultDegree
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Precision < 0 || c.Precision > MaxPrecision {
		return apperrors.NewConfigError("precision must be between 0 and %d: %d", MaxPrecision, c.Precision)
	}
	if c.Random != 0 && (c.Random < solver.MinDegree || c.Random > solver.MaxDegree) {
		return apperrors.NewConfigError("random degree must be between %d and %d: %d", solver.MinDegree, solver.MaxDegree, c.Random)
	}
	if len(c.Coefficients) > 0 {
		if c.Random != 0 {
			return apperrors.NewConfigError("-coeffs and -random are mutually exclusive")
		}
		eq := solver.NewEquation(c.Coefficients...)
		if err := eq.Validate(); err != nil {
			return apperrors.NewConfigError("invalid equation %s: %v", eq, err)
		}
	}
	if c.Unit < 0 || c.Unit > MaxUnitRoots {
		return apperrors.NewConfigError("unit must be between 0 and %d: %d", MaxUnitRoots, c.Unit)
	}
	if c.Verify < 0 {
		return apperrors.NewConfigError("verify count cannot be negative: %d", c.Verify)
	}
	if c.Workers < 1 {
		return apperrors.NewConfigError("workers must be at least 1: %d", c.Workers)
	}
	switch c.Completion {
	case "", "bash", "zsh", "fish", "powershell", "ps":
	default:
		return apperrors.NewConfigError("unsupported shell for completion: '%s'. Valid shells are: bash, zsh, fish, powershell", c.Completion)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "disabled":
	default:
		return apperrors.NewConfigError("unrecognized log level: '%s'. Valid levels are: debug, info, warn, error, disabled", c.LogLevel)
	}
	return nil
}

// coefficientsFlag is a flag.Value parsing a coefficient list.
type coefficientsFlag struct {
	target *[]float64
}

func (f coefficientsFlag) String() string {
	if f.target == nil || len(*f.target) == 0 {
		return ""
	}
	parts := make([]string, len(*f.target))
	for i, v := range *f.target {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}

func (f coefficientsFlag) Set(s string) error {
	coeffs, err := solver.ParseCoefficients(s)
	if err != nil {
		return err
	}
	*f.target = coeffs
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// applies environment overrides and validates the result.
//
// The function is designed to be testable by allowing the input arguments and
// output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.Var(coefficientsFlag{&config.Coefficients}, "coeffs", "Equation coefficients, highest power first (e.g. \"1,-5,6\").")
	fs.IntVar(&config.Random, "random", 0, "Solve a random equation of this degree (2-4); with -verify, the degree to verify.")
	fs.Int64Var(&config.Seed, "seed", 0, "Seed for random equations (0 seeds from the clock).")
	fs.IntVar(&config.Precision, "precision", DefaultPrecision, "Number of decimals used to display roots.")
	fs.IntVar(&config.Precision, "p", DefaultPrecision, "Display precision (shorthand).")
	fs.BoolVar(&config.ShowActions, "actions", false, "List the symmetry actions for the equation's degree.")
	fs.StringVar(&config.Action, "action", "", "Apply the symmetry action with this ID (e.g. r1) to the roots.")
	fs.IntVar(&config.Unit, "unit", 0, "Print the n-th roots of unity.")
	fs.IntVar(&config.Verify, "verify", 0, "Run N random round-trip checks (roots -> coefficients -> roots).")
	fs.IntVar(&config.Workers, "workers", runtime.NumCPU(), "Maximum concurrent round-trip checks.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for a verification batch or request.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.BoolVar(&config.Interactive, "i", false, "Interactive mode (shorthand).")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Minimum log level: debug, info, warn, error, disabled.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 && len(config.Coefficients) == 0 {
		// Positional coefficients: galois 1 -5 6
		coeffs, err := solver.ParseCoefficients(strings.Join(fs.Args(), " "))
		if err != nil {
			fmt.Fprintln(errorWriter, "Configuration error:", err)
			fs.Usage()
			return AppConfig{}, errors.New("invalid configuration")
		}
		config.Coefficients = coeffs
	}

	// Apply environment variable overrides for flags not explicitly set
	if err := applyEnvOverrides(&config, fs); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, errors.New("invalid configuration")
	}

	config.LogLevel = strings.ToLower(config.LogLevel)
	config.Completion = strings.ToLower(config.Completion)
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
