package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/mstoykov/envconfig"
	"gopkg.in/guregu/null.v3"
)

// Options configures a link run.
type Options struct {
	// Workers bounds stage-internal parallelism. Zero means one per CPU.
	Workers null.Int `json:"workers" envconfig:"IRLINK_WORKERS"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel null.String `json:"logLevel" envconfig:"IRLINK_LOG_LEVEL"`
	// LogFormat is text or json.
	LogFormat null.String `json:"logFormat" envconfig:"IRLINK_LOG_FORMAT"`
	// CatalogPath lists extension catalog files or directories, separated
	// like PATH.
	CatalogPath null.String `json:"catalogPath" envconfig:"IRLINK_CATALOG_PATH"`
}

// NewOptions returns the defaults. None of them counts as explicitly set.
func NewOptions() Options {
	return Options{
		Workers:   null.NewInt(0, false),
		LogLevel:  null.NewString("info", false),
		LogFormat: null.NewString("text", false),
	}
}

// Apply returns o overridden by every option set in other.
func (o Options) Apply(other Options) Options {
	if other.Workers.Valid {
		o.Workers = other.Workers
	}
	if other.LogLevel.Valid {
		o.LogLevel = other.LogLevel
	}
	if other.LogFormat.Valid {
		o.LogFormat = other.LogFormat
	}
	if other.CatalogPath.Valid {
		o.CatalogPath = other.CatalogPath
	}
	return o
}

// FromEnv reads the options set in env. Unset keys stay invalid so that
// Apply leaves the lower layer alone.
func FromEnv(env map[string]string) (Options, error) {
	var o Options
	err := envconfig.Process("", &o, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	if err != nil {
		return Options{}, fmt.Errorf("reading environment: %w", err)
	}
	return o, nil
}

// Consolidate layers the defaults, the environment and the flag options.
func Consolidate(env map[string]string, flags Options) (Options, error) {
	fromEnv, err := FromEnv(env)
	if err != nil {
		return Options{}, err
	}
	o := NewOptions().Apply(fromEnv).Apply(flags)
	return o, o.Validate()
}

// Validate reports every invalid option.
func (o Options) Validate() error {
	var errs []error
	if o.Workers.Int64 < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", o.Workers.Int64))
	}
	if _, err := ParseLevel(o.LogLevel.String); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(o.LogFormat.String) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", o.LogFormat.String))
	}
	return errors.Join(errs...)
}

// Level returns the configured log level, or info if it is invalid.
func (o Options) Level() slog.Level {
	l, err := ParseLevel(o.LogLevel.String)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// CatalogPaths splits CatalogPath into its entries.
func (o Options) CatalogPaths() []string {
	if o.CatalogPath.String == "" {
		return nil
	}
	var out []string
	for _, p := range filepath.SplitList(o.CatalogPath.String) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
