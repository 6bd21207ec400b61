// Package linker runs the resolution pipeline over a set of compiled
// sections: merge, deduplicate, resolve references, sequence actions.
//
// Each stage consumes the complete output of the previous one and a stage
// that reports diagnostics stops the pipeline, so no partial result is ever
// returned. The caller may cancel ctx to abort between stages.
package linker
