package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/irlink/internal/ctxlog"
	"github.com/specialistvlad/irlink/internal/fsutil"
	"github.com/specialistvlad/irlink/internal/symdef"
)

// Extension is one decoded extension catalog.
type Extension struct {
	Name        string
	Source      string
	Definitions []symdef.Definition
}

// Load walks the given paths, decodes every catalog file found and returns
// the extensions in discovery order. Paths that do not exist are skipped.
func Load(ctx context.Context, paths ...string) ([]Extension, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Catalog loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".hcl", ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered catalog files.", "count", len(files))

	var out []Extension
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading catalog %s: %w", file, err)
		}

		var exts []Extension
		switch filepath.Ext(file) {
		case ".hcl":
			exts, err = ParseHCL(src, file)
		default:
			exts, err = ParseYAML(src, file)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, exts...)
	}

	logger.Debug("Catalog loading complete.", "extensions", len(out))
	return out, nil
}

// Register loads every extension into reg. All failures are reported
// together; extensions that load cleanly stay registered.
func Register(ctx context.Context, reg *symdef.Registry, exts ...Extension) error {
	logger := ctxlog.FromContext(ctx)

	var errs []error
	for _, ext := range exts {
		if err := reg.LoadExtension(ext.Name, ext.Definitions...); err != nil {
			errs = append(errs, fmt.Errorf("%s: extension %q: %w", ext.Source, ext.Name, err))
			continue
		}
		logger.Debug("Extension registered.", "extension", ext.Name, "definitions", len(ext.Definitions))
	}
	return errors.Join(errs...)
}
