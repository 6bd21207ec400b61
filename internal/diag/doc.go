// Package diag is the linker's error channel. Every resolution stage returns
// either its result or a non-empty Diagnostics list; a Diagnostic names its
// kind, the source location that caused it and the identifiers involved.
//
// Diagnostics convert to hcl.Diagnostics so a driver can render them with
// source snippets through the HCL diagnostic writer.
package diag
