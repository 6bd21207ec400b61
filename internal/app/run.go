package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/irlink/internal/ctxlog"
	"github.com/specialistvlad/irlink/internal/diag"
	"github.com/specialistvlad/irlink/internal/hclsection"
)

// ErrLinkFailed is returned by Run after the diagnostics of a failed load
// or link have been written to the report.
var ErrLinkFailed = errors.New("link failed")

// Run loads the configured sections, links them and writes the report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	loader := hclsection.NewLoader(a.Registry())
	sections, err := loader.Load(ctx, a.config.SectionPaths...)
	if err != nil {
		var hdiags hcl.Diagnostics
		if errors.As(err, &hdiags) {
			a.writeDiagnostics(loader.Files(), hdiags)
			return ErrLinkFailed
		}
		return fmt.Errorf("failed to load sections: %w", err)
	}
	if len(sections) == 0 {
		a.logger.Warn("No sections found.", "paths", a.config.SectionPaths)
	}

	result, err := a.linker.Link(ctx, sections...)
	if err != nil {
		var ldiags diag.Diagnostics
		if errors.As(err, &ldiags) {
			a.writeDiagnostics(loader.Files(), ldiags.HCL())
			a.logger.Info("Link failed.", "diagnostics", len(ldiags))
			return ErrLinkFailed
		}
		return fmt.Errorf("link aborted: %w", err)
	}

	a.logger.Info("Link complete.", "sections", len(sections), "symbols", result.Universe.Len())
	return writeReport(a.outW, result)
}

func (a *App) writeDiagnostics(files map[string]*hcl.File, diags hcl.Diagnostics) {
	wr := hcl.NewDiagnosticTextWriter(a.outW, files, 100, false)
	if err := wr.WriteDiagnostics(diags); err != nil {
		a.logger.Error("Writing diagnostics failed.", "error", err)
	}
}
