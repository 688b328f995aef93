// Package backend runs a parsed program and surfaces its result. The
// Backend interface keeps execution swappable behind the pipeline.
package backend

import (
	"github.com/funvibe/numpad/internal/evaluator"
	"github.com/funvibe/numpad/internal/pipeline"
)

// Backend is the interface for execution backends
type Backend interface {
	// Run executes the program from pipeline context and returns the result
	Run(ctx *pipeline.PipelineContext) (evaluator.Object, error)

	// Name returns the backend name for display
	Name() string
}
