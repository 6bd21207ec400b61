// Package app wires the irlink command together: it loads extension
// catalogs into a registry, decodes section files, links them and writes a
// report. It is decoupled from the entrypoint so tests can drive it with
// in-memory writers.
package app
