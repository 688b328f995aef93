package backend

import (
	"github.com/funvibe/numpad/internal/diagnostics"
	"github.com/funvibe/numpad/internal/evaluator"
	"github.com/funvibe/numpad/internal/pipeline"
	"github.com/funvibe/numpad/internal/token"
)

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend Backend
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	result, err := p.Backend.Run(ctx)
	if err != nil {
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(
			diagnostics.ErrR001,
			token.Token{},
			err.Error(),
		))
		return ctx
	}

	// Runtime failures come back as error objects carrying a position.
	if result != nil && result.Type() == evaluator.ERROR_OBJ {
		if errObj, ok := result.(*evaluator.Error); ok {
			diag := diagnostics.NewError(
				diagnostics.ErrR001,
				token.Token{Line: errObj.Line, Column: errObj.Column},
				errObj.Message,
			)
			diag.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, diag)
		} else {
			ctx.Errors = append(ctx.Errors, diagnostics.NewError(
				diagnostics.ErrR001,
				token.Token{},
				result.Inspect(),
			))
		}
		return ctx
	}

	ctx.Result = result
	ctx.Logger.Debug().Str("backend", p.Backend.Name()).Msg("execution finished")
	return ctx
}
