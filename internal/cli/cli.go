package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/irlink/internal/app"
	"github.com/specialistvlad/irlink/internal/config"
	"gopkg.in/guregu/null.v3"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes.
const (
	CodeLinkFailed = 1
	CodeUsage      = 2
)

// Parse processes command-line arguments on top of the given environment.
// It returns a populated Config, a boolean indicating if the program should
// exit cleanly, or an ExitError.
func Parse(args []string, env map[string]string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("irlink", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
irlink - links installer sections into one resolved package model.

Usage:
  irlink [options] SECTION_PATH...

Arguments:
  SECTION_PATH
    Path to a single .hcl section file or a directory containing them.

Environment:
  IRLINK_WORKERS, IRLINK_LOG_LEVEL, IRLINK_LOG_FORMAT, IRLINK_CATALOG_PATH
    Defaults for the options below. Flags take precedence.

Options:
`)
		flagSet.PrintDefaults()
	}

	catalogFlag := flagSet.String("catalog", "", "Extension catalog files or directories, separated like PATH.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent workers per stage. 0 is one per CPU.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: CodeUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No section path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	// Only flags given on the command line override the environment.
	var flags config.Options
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "catalog":
			flags.CatalogPath = null.StringFrom(*catalogFlag)
		case "workers":
			flags.Workers = null.IntFrom(int64(*workersFlag))
		case "log-format":
			flags.LogFormat = null.StringFrom(*logFormatFlag)
		case "log-level":
			flags.LogLevel = null.StringFrom(*logLevelFlag)
		}
	})

	opts, err := config.Consolidate(env, flags)
	if err != nil {
		return nil, false, &ExitError{Code: CodeUsage, Message: err.Error()}
	}

	cfg, err := app.NewConfig(app.Config{
		SectionPaths: flagSet.Args(),
		Options:      opts,
	})
	if err != nil {
		return nil, false, &ExitError{Code: CodeUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "sections", len(cfg.SectionPaths))
	return cfg, false, nil
}
