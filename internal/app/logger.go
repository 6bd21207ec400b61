package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/irlink/internal/config"
)

// newLogger builds the run's logger from the consolidated options. It does
// not touch the global logger, so several apps can coexist in one process.
func newLogger(opts config.Options, w io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level()}
	if strings.EqualFold(opts.LogFormat.String, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
