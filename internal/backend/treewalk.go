package backend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/funvibe/numpad/internal/ast"
	"github.com/funvibe/numpad/internal/config"
	"github.com/funvibe/numpad/internal/evaluator"
	"github.com/funvibe/numpad/internal/pipeline"
)

// TreeWalkBackend executes programs with the tree-walk interpreter.
type TreeWalkBackend struct {
	// Context, when set, is handed to the evaluator for cancellation.
	Context context.Context
}

// NewTreeWalk creates a new tree-walk backend
func NewTreeWalk() *TreeWalkBackend {
	return &TreeWalkBackend{}
}

// Run executes the program and returns the final value of the
// accumulator slot. Parameters from the context seed the root scope as
// *00, *01, *02, ... in order; the accumulator is then zeroed before the
// first statement runs, so only parameters past the first are readable.
func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) (evaluator.Object, error) {
	if ctx.AstRoot == nil {
		return nil, fmt.Errorf("no program to execute")
	}
	if len(ctx.Errors) > 0 {
		return nil, ctx.Errors[0]
	}

	return b.run(ctx.AstRoot, ctx.Params, ctx.Logger)
}

// Name returns the backend name
func (b *TreeWalkBackend) Name() string {
	return "tree-walk"
}

// RunProgram is a convenience method that takes a Program directly
func (b *TreeWalkBackend) RunProgram(program *ast.Program, params []int64) (evaluator.Object, error) {
	return b.run(program, params, zerolog.Nop())
}

func (b *TreeWalkBackend) run(program *ast.Program, params []int64, logger zerolog.Logger) (evaluator.Object, error) {
	eval := evaluator.New()
	eval.Logger = logger
	if b.Context != nil {
		eval.Context = b.Context
	}

	env := evaluator.NewEnvironment()
	for i, v := range params {
		env.Set(config.ParamSlot(i), &evaluator.Integer{Value: v})
	}
	env.Set(config.AccumulatorSlot, &evaluator.Integer{Value: 0})

	result := eval.Eval(program, env)
	if result != nil && result.Type() == evaluator.ERROR_OBJ {
		return result, nil
	}

	value, ok := env.Get(config.AccumulatorSlot)
	if !ok {
		return &evaluator.Integer{Value: 0}, nil
	}
	return value, nil
}
